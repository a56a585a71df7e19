package element

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PackedSize returns the packed length of an n×n symmetric matrix
func PackedSize(n int) int { return n * (n + 1) / 2 }

// PackColumns stores the upper triangle of k column by column, each column
// starting at its diagonal and moving upward:
//
//	packed[j*(j+1)/2 + (j-i)] = k(i, j), i <= j
//
// This is the layout skyline.Matrix.AddElement consumes.
func PackColumns(k mat.Symmetric) []float64 {
	n := k.SymmetricDim()
	packed := make([]float64, PackedSize(n))
	for j := 0; j < n; j++ {
		base := j * (j + 1) / 2
		for i := 0; i <= j; i++ {
			packed[base+j-i] = k.At(i, j)
		}
	}
	return packed
}

// UnpackColumns is the inverse of PackColumns
func UnpackColumns(n int, packed []float64) (*mat.SymDense, error) {
	if len(packed) != PackedSize(n) {
		return nil, fmt.Errorf("packed length %d does not match order %d", len(packed), n)
	}
	if n == 0 {
		return &mat.SymDense{}, nil
	}
	k := mat.NewSymDense(n, nil)
	for j := 0; j < n; j++ {
		base := j * (j + 1) / 2
		for i := 0; i <= j; i++ {
			k.SetSym(i, j, packed[base+j-i])
		}
	}
	return k, nil
}
