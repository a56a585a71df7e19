package library

import (
	"fmt"
	"math"

	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/mesh"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// axial holds the geometry shared by two-node elements acting along their
// own axis
type axial struct {
	id    int
	nodes []*mesh.Node
}

func newAxial(id int, n1, n2 *mesh.Node) axial {
	return axial{id: id, nodes: []*mesh.Node{n1, n2}}
}

func (a *axial) ID() int                      { return a.id }
func (a *axial) NodeCount() int               { return 2 }
func (a *axial) DegreesOfFreedomPerNode() int { return mesh.NDF }
func (a *axial) Nodes() []*mesh.Node          { return a.nodes }

// direction returns the unit vector from node 1 to node 2 and the length
func (a *axial) direction() (c []float64, length float64, err error) {
	c = make([]float64, 3)
	floats.SubTo(c, a.nodes[1].XYZ[:], a.nodes[0].XYZ[:])
	length = floats.Norm(c, 2)
	if length == 0 || math.IsNaN(length) {
		return nil, 0, fmt.Errorf("element %d: nodes %d and %d coincide",
			a.id, a.nodes[0].ID, a.nodes[1].ID)
	}
	floats.Scale(1/length, c)
	return c, length, nil
}

// stiffness returns k·[c; -c][c; -c]ᵀ, the 6×6 stiffness of an axial member
// of axial stiffness k
func (a *axial) stiffness(k float64) (*mat.SymDense, error) {
	c, _, err := a.direction()
	if err != nil {
		return nil, err
	}
	v := make([]float64, 2*mesh.NDF)
	copy(v, c)
	floats.ScaleTo(v[mesh.NDF:], -1, c)
	var ke mat.SymDense
	ke.SymOuterK(k, mat.NewVecDense(len(v), v))
	return &ke, nil
}

// elongation returns the change of length along the axis under displacement
func (a *axial) elongation(displacement []float64) (float64, error) {
	c, _, err := a.direction()
	if err != nil {
		return 0, err
	}
	du := make([]float64, mesh.NDF)
	for d := 0; d < mesh.NDF; d++ {
		u1, err := nodalValue(a.nodes[0], d, displacement)
		if err != nil {
			return 0, err
		}
		u2, err := nodalValue(a.nodes[1], d, displacement)
		if err != nil {
			return 0, err
		}
		du[d] = u2 - u1
	}
	return floats.Dot(c, du), nil
}

func nodalValue(n *mesh.Node, dof int, displacement []float64) (float64, error) {
	eq, free := n.Equation(dof)
	if !free {
		return 0, nil
	}
	if eq > len(displacement) {
		return 0, fmt.Errorf("node %d: equation %d outside displacement vector of length %d",
			n.ID, eq, len(displacement))
	}
	return displacement[eq-1], nil
}

var (
	_ element.StressElement = (*BarElement)(nil)
	_ element.StressElement = (*SpringElement)(nil)
)
