package library

import (
	"fmt"

	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/mesh"
	"gonum.org/v1/gonum/mat"
)

// BarMaterial holds Young's modulus and cross-sectional area of a bar set
type BarMaterial struct {
	Set  int
	E    float64 // Young's modulus
	Area float64 // Cross-sectional area
}

func (m *BarMaterial) ID() int { return m.Set }

func (m *BarMaterial) String() string {
	return fmt.Sprintf("set %d: E=%g A=%g", m.Set, m.E, m.Area)
}

// BarElement is a two-node 3D truss member
type BarElement struct {
	axial
	material *BarMaterial
}

// NewBar creates a bar between n1 and n2
func NewBar(id int, n1, n2 *mesh.Node, m *BarMaterial) *BarElement {
	return &BarElement{axial: newAxial(id, n1, n2), material: m}
}

func (b *BarElement) Type() element.Type         { return element.Bar }
func (b *BarElement) Material() element.Material { return b.material }

// ComputeLocalStiffness returns EA/L·[c; -c][c; -c]ᵀ in global axes
func (b *BarElement) ComputeLocalStiffness() (*mat.SymDense, error) {
	_, length, err := b.direction()
	if err != nil {
		return nil, err
	}
	return b.stiffness(b.material.E * b.material.Area / length)
}

// Stress returns the axial stress E·ΔL/L
func (b *BarElement) Stress(displacement []float64) (float64, error) {
	_, length, err := b.direction()
	if err != nil {
		return 0, err
	}
	dl, err := b.elongation(displacement)
	if err != nil {
		return 0, err
	}
	return b.material.E * dl / length, nil
}
