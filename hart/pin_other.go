//go:build !linux

package hart

import "errors"

func pin(int) (int, error) {
	return -1, errors.New("hart: CPU affinity not supported on this host")
}
