package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/hartmatrix/matrix"
)

// ExampleMatrix_Split shows four one-element sections of a 2×2 product computed
// independently into one accumulator.
func ExampleMatrix_Split() {
	a, _ := matrix.FromSlice(2, []matrix.Number{1, 2, 3, 4})
	out, _ := matrix.NewZeros(2)

	sections, _ := out.Split(4)
	for _, s := range sections {
		_ = s.Multiply(a, a)
	}
	fmt.Print(out)

	// Output:
	// [7, 10]
	// [15, 22]
}

// ExampleSection_Convolute applies a 3×3 box kernel with zero padding.
func ExampleSection_Convolute() {
	a, _ := matrix.FromSlice(3, []matrix.Number{1, 1, 1, 1, 1, 1, 1, 1, 1})
	box, _ := matrix.NewKernel(3, []matrix.Number{1, 1, 1, 1, 1, 1, 1, 1, 1})
	out, _ := matrix.NewZeros(3)

	sections, _ := out.Split(1)
	_ = sections[0].Convolute(a, box)
	fmt.Print(out)

	// Output:
	// [4, 6, 4]
	// [6, 9, 6]
	// [4, 6, 4]
}
