package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPackColumns(t *testing.T) {
	k := mat.NewSymDense(3, []float64{
		1, 2, 4,
		2, 3, 5,
		4, 5, 6,
	})
	packed := PackColumns(k)
	// column 0: k00; column 1: k11 k01; column 2: k22 k12 k02
	assert.Equal(t, []float64{1, 3, 2, 6, 5, 4}, packed)

	back, err := UnpackColumns(3, packed)
	require.NoError(t, err)
	assert.True(t, mat.Equal(k, back))

	_, err = UnpackColumns(2, packed)
	assert.Error(t, err)
}

func TestPackColumns_Index(t *testing.T) {
	// Every (i, j) lands where the assembler expects it
	n := 6
	k := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			k.SetSym(i, j, float64(10*i+j))
		}
	}
	packed := PackColumns(k)
	require.Len(t, packed, PackedSize(n))
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			assert.Equal(t, k.At(i, j), packed[j*(j+1)/2+j-i], "(%d,%d)", i, j)
		}
	}
}

func TestParseType(t *testing.T) {
	testCases := []struct {
		in   string
		want Type
		ok   bool
	}{
		{"1", Bar, true},
		{"Bar", Bar, true},
		{"2", Spring, true},
		{"spring", Spring, true},
		{"7", Unknown, false},
	}
	for _, tc := range testCases {
		got, err := ParseType(tc.in)
		if tc.ok {
			require.NoError(t, err)
		} else {
			assert.Error(t, err)
		}
		assert.Equal(t, tc.want, got)
	}
	assert.Equal(t, "Bar", Bar.String())
	assert.Equal(t, "Type(9)", Type(9).String())
}
