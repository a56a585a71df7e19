package mesh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignEquationNumbers(t *testing.T) {
	nodes := []*Node{
		NewNode(1, [3]float64{0, 0, 0}, [NDF]int{1, 1, 1}),
		NewNode(2, [3]float64{1, 0, 0}, [NDF]int{0, 1, 0}),
		NewNode(3, [3]float64{2, 0, 0}, [NDF]int{0, 0, 0}),
	}
	require.NoError(t, ValidateNodes(nodes))

	neq := AssignEquationNumbers(nodes)
	assert.Equal(t, 5, neq)
	assert.Equal(t, [NDF]int{0, 0, 0}, nodes[0].BCode)
	assert.Equal(t, [NDF]int{1, 0, 2}, nodes[1].BCode)
	assert.Equal(t, [NDF]int{3, 4, 5}, nodes[2].BCode)

	eq, free := nodes[1].Equation(1)
	assert.False(t, free)
	assert.Equal(t, 0, eq)
	assert.True(t, nodes[1].Fixed(1))
	assert.False(t, nodes[1].Fixed(0))

	// A second pass must be refused by validation
	assert.Error(t, ValidateNodes(nodes))
}

func TestAssignEquationNumbers_DenseRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		numNodes := 1 + rng.Intn(20)
		nodes := make([]*Node, numNodes)
		expectedFree := 0
		for i := range nodes {
			var bc [NDF]int
			for d := range bc {
				bc[d] = rng.Intn(2)
				if bc[d] == 0 {
					expectedFree++
				}
			}
			nodes[i] = NewNode(i+1, [3]float64{float64(i), 0, 0}, bc)
		}
		raw := make([][NDF]int, numNodes)
		for i, n := range nodes {
			raw[i] = n.BCode
		}

		neq := AssignEquationNumbers(nodes)
		require.Equal(t, expectedFree, neq)

		next := 1
		for i, n := range nodes {
			for d := 0; d < NDF; d++ {
				if raw[i][d] != 0 {
					assert.Equal(t, 0, n.BCode[d], "fixed dof must map to 0")
					continue
				}
				assert.Equal(t, next, n.BCode[d], "free dofs must be numbered densely in order")
				next++
			}
		}
		assert.Equal(t, neq+1, next)
	}
}

func TestAssignEquationNumbers_FullyConstrained(t *testing.T) {
	nodes := []*Node{
		NewNode(1, [3]float64{}, [NDF]int{1, 1, 1}),
		NewNode(2, [3]float64{1, 0, 0}, [NDF]int{1, 1, 1}),
	}
	assert.Equal(t, 0, AssignEquationNumbers(nodes))
}

func TestValidateNodes(t *testing.T) {
	nodes := []*Node{
		NewNode(1, [3]float64{}, [NDF]int{}),
		NewNode(3, [3]float64{}, [NDF]int{}),
	}
	assert.Error(t, ValidateNodes(nodes))
	assert.Error(t, ValidateNodes([]*Node{nil}))
}

func TestLoadCaseScatter(t *testing.T) {
	nodes := []*Node{
		NewNode(1, [3]float64{}, [NDF]int{1, 1, 1}),
		NewNode(2, [3]float64{1, 0, 0}, [NDF]int{0, 1, 1}),
	}
	neq := AssignEquationNumbers(nodes)
	require.Equal(t, 1, neq)

	lc := LoadCase{ID: 1, Loads: []Load{
		{Node: 2, DOF: 1, Magnitude: 10},
		{Node: 2, DOF: 1, Magnitude: 5},
		{Node: 1, DOF: 2, Magnitude: 99}, // fixed, dropped
	}}
	force := make([]float64, neq)
	require.NoError(t, lc.Scatter(nodes, force))
	assert.Equal(t, []float64{15}, force)

	bad := LoadCase{ID: 2, Loads: []Load{{Node: 3, DOF: 1, Magnitude: 1}}}
	assert.ErrorIs(t, bad.Scatter(nodes, force), ErrNodeNotFound)
	bad = LoadCase{ID: 3, Loads: []Load{{Node: 1, DOF: 4, Magnitude: 1}}}
	assert.ErrorIs(t, bad.Scatter(nodes, force), ErrInvalidDOF)
}
