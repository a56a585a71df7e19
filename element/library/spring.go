package library

import (
	"fmt"

	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/mesh"
	"gonum.org/v1/gonum/mat"
)

// SpringMaterial holds the axial stiffness of a spring set
type SpringMaterial struct {
	Set int
	K   float64
}

func (m *SpringMaterial) ID() int { return m.Set }

func (m *SpringMaterial) String() string {
	return fmt.Sprintf("set %d: k=%g", m.Set, m.K)
}

// SpringElement is a discrete axial spring acting along the line joining its nodes
type SpringElement struct {
	axial
	material *SpringMaterial
}

// NewSpring creates a spring between n1 and n2
func NewSpring(id int, n1, n2 *mesh.Node, m *SpringMaterial) *SpringElement {
	return &SpringElement{axial: newAxial(id, n1, n2), material: m}
}

func (s *SpringElement) Type() element.Type         { return element.Spring }
func (s *SpringElement) Material() element.Material { return s.material }

func (s *SpringElement) ComputeLocalStiffness() (*mat.SymDense, error) {
	return s.stiffness(s.material.K)
}

// Stress returns the spring force k·ΔL
func (s *SpringElement) Stress(displacement []float64) (float64, error) {
	dl, err := s.elongation(displacement)
	if err != nil {
		return 0, err
	}
	return s.material.K * dl, nil
}
