package library

import (
	"testing"

	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBar_AxialStiffness(t *testing.T) {
	n1 := mesh.NewNode(1, [3]float64{0, 0, 0}, [mesh.NDF]int{})
	n2 := mesh.NewNode(2, [3]float64{2, 0, 0}, [mesh.NDF]int{})
	bar := NewBar(1, n1, n2, &BarMaterial{Set: 1, E: 200, Area: 3})

	ke, err := bar.ComputeLocalStiffness()
	require.NoError(t, err)
	require.Equal(t, 6, ke.SymmetricDim())
	assert.Equal(t, 6, element.LocalSize(bar))

	k := 200.0 * 3 / 2
	want := mat.NewSymDense(6, nil)
	want.SetSym(0, 0, k)
	want.SetSym(3, 3, k)
	want.SetSym(0, 3, -k)
	assert.True(t, mat.EqualApprox(want, ke, 1e-12), "got\n%v", mat.Formatted(ke))
}

func TestBar_InclinedStiffness(t *testing.T) {
	n1 := mesh.NewNode(1, [3]float64{0, 0, 0}, [mesh.NDF]int{})
	n2 := mesh.NewNode(2, [3]float64{3, 4, 0}, [mesh.NDF]int{})
	bar := NewBar(1, n1, n2, &BarMaterial{Set: 1, E: 10, Area: 5})

	ke, err := bar.ComputeLocalStiffness()
	require.NoError(t, err)
	k := 10.0 * 5 / 5
	assert.InDelta(t, k*0.36, ke.At(0, 0), 1e-12)
	assert.InDelta(t, k*0.48, ke.At(0, 1), 1e-12)
	assert.InDelta(t, k*0.64, ke.At(1, 1), 1e-12)
	assert.InDelta(t, -k*0.48, ke.At(1, 3), 1e-12)
	assert.InDelta(t, 0, ke.At(2, 2), 1e-12)

	// Rigid translation produces no force
	u := mat.NewVecDense(6, []float64{1, 2, 3, 1, 2, 3})
	var f mat.VecDense
	f.MulVec(ke, u)
	assert.InDelta(t, 0, mat.Norm(&f, 2), 1e-12)
}

func TestBar_Stress(t *testing.T) {
	nodes := []*mesh.Node{
		mesh.NewNode(1, [3]float64{0, 0, 0}, [mesh.NDF]int{1, 1, 1}),
		mesh.NewNode(2, [3]float64{0, 4, 0}, [mesh.NDF]int{1, 0, 1}),
	}
	neq := mesh.AssignEquationNumbers(nodes)
	require.Equal(t, 1, neq)
	bar := NewBar(1, nodes[0], nodes[1], &BarMaterial{Set: 1, E: 100, Area: 1})

	assert.Equal(t, []int{0, 0, 0, 0, 1, 0}, element.LocationMatrix(bar))

	stress, err := bar.Stress([]float64{0.02})
	require.NoError(t, err)
	assert.InDelta(t, 100*0.02/4, stress, 1e-12)

	_, err = bar.Stress(nil)
	assert.Error(t, err)
}

func TestSpring(t *testing.T) {
	n1 := mesh.NewNode(1, [3]float64{1, 1, 1}, [mesh.NDF]int{})
	n2 := mesh.NewNode(2, [3]float64{1, 1, 3}, [mesh.NDF]int{})
	s := NewSpring(4, n1, n2, &SpringMaterial{Set: 1, K: 50})
	assert.Equal(t, element.Spring, s.Type())
	assert.Equal(t, 4, s.ID())

	ke, err := s.ComputeLocalStiffness()
	require.NoError(t, err)
	assert.InDelta(t, 50, ke.At(2, 2), 1e-12)
	assert.InDelta(t, -50, ke.At(2, 5), 1e-12)
	assert.InDelta(t, 0, ke.At(0, 0), 1e-12)

	mesh.AssignEquationNumbers([]*mesh.Node{n1, n2})
	u := make([]float64, 6)
	u[5] = 0.1 // node 2, z
	force, err := s.Stress(u)
	require.NoError(t, err)
	assert.InDelta(t, 5, force, 1e-12)
}

func TestCoincidentNodes(t *testing.T) {
	n := mesh.NewNode(1, [3]float64{1, 2, 3}, [mesh.NDF]int{})
	bar := NewBar(1, n, n, &BarMaterial{Set: 1, E: 1, Area: 1})
	_, err := bar.ComputeLocalStiffness()
	assert.Error(t, err)
}

func TestFactory(t *testing.T) {
	n1 := mesh.NewNode(1, [3]float64{0, 0, 0}, [mesh.NDF]int{})
	n2 := mesh.NewNode(2, [3]float64{1, 0, 0}, [mesh.NDF]int{})

	np, err := MaterialProperties(element.Bar)
	require.NoError(t, err)
	assert.Equal(t, 2, np)

	m, err := NewMaterial(element.Bar, 1, []float64{1e6, 0.01})
	require.NoError(t, err)
	e, err := NewElement(element.Bar, 1, []*mesh.Node{n1, n2}, m)
	require.NoError(t, err)
	assert.Equal(t, element.Bar, e.Type())
	assert.Same(t, m, e.Material(), "material is shared, not copied")

	_, err = NewMaterial(element.Bar, 1, []float64{1e6})
	assert.Error(t, err)
	_, err = NewMaterial(element.Bar, 1, []float64{-1, 1})
	assert.Error(t, err)
	_, err = NewElement(element.Bar, 1, []*mesh.Node{n1}, m)
	assert.Error(t, err)
	_, err = NewElement(element.Bar, 1, []*mesh.Node{n1, nil}, m)
	assert.ErrorIs(t, err, mesh.ErrNodeNotFound)

	sm, err := NewMaterial(element.Spring, 1, []float64{10})
	require.NoError(t, err)
	_, err = NewElement(element.Bar, 1, []*mesh.Node{n1, n2}, sm)
	assert.Error(t, err, "spring material cannot back a bar")

	_, err = NewMaterial(element.Unknown, 1, nil)
	assert.Error(t, err)
	_, err = NodeCount(element.Type(42))
	assert.Error(t, err)
}

func TestGroupValidate(t *testing.T) {
	n1 := mesh.NewNode(1, [3]float64{0, 0, 0}, [mesh.NDF]int{})
	n2 := mesh.NewNode(2, [3]float64{1, 0, 0}, [mesh.NDF]int{})
	m := &BarMaterial{Set: 1, E: 1, Area: 1}

	g := element.NewGroup(element.Bar)
	g.Materials = []element.Material{m}
	g.Elements = []element.Element{NewBar(1, n1, n2, m), NewBar(2, n2, n1, m)}
	require.NoError(t, g.Validate())
	assert.Contains(t, g.String(), "2 elements")

	g.Elements = append(g.Elements, NewBar(4, n1, n2, m))
	assert.Error(t, g.Validate())

	g.Elements = []element.Element{NewSpring(1, n1, n2, &SpringMaterial{Set: 1, K: 1})}
	assert.Error(t, g.Validate(), "type mismatch")

	g.Elements = nil
	g.Materials = []element.Material{&BarMaterial{Set: 2}}
	assert.Error(t, g.Validate())
}
