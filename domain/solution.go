package domain

import (
	"errors"
	"fmt"

	"github.com/notargets/SkylineFEM/mesh"
	"github.com/notargets/SkylineFEM/skyline"
)

// State tags the meaning of the values held by a Solution
type State uint8

const (
	LoadState         State = iota // Assembled nodal forces
	DisplacementState              // Nodal displacements after solving
)

func (s State) String() string {
	if s == LoadState {
		return "load"
	}
	return "displacement"
}

var (
	ErrNotSolved = errors.New("solution holds loads, not displacements")
	ErrSolved    = errors.New("solution holds displacements, loads were overwritten")
)

// Solution is the force vector of one load case, overwritten in place by the
// displacements when solved. The State records which one it currently holds.
type Solution struct {
	LoadCase int

	state  State
	values []float64
}

func newSolution(loadCase, neq int) *Solution {
	return &Solution{LoadCase: loadCase, values: make([]float64, neq)}
}

// State returns what the values currently represent
func (s *Solution) State() State { return s.state }

// Values returns the raw buffer, whatever its state
func (s *Solution) Values() []float64 { return s.values }

// Force returns the nodal force vector, indexed by equation number minus one
func (s *Solution) Force() ([]float64, error) {
	if s.state != LoadState {
		return nil, ErrSolved
	}
	return s.values, nil
}

// Displacement returns the displacement vector, indexed by equation number minus one
func (s *Solution) Displacement() ([]float64, error) {
	if s.state != DisplacementState {
		return nil, ErrNotSolved
	}
	return s.values, nil
}

// NodalDisplacement expands the displacement of node n to all NDF components,
// with zero for constrained components
func (s *Solution) NodalDisplacement(n *mesh.Node) (u [mesh.NDF]float64, err error) {
	disp, err := s.Displacement()
	if err != nil {
		return u, err
	}
	for dof := 0; dof < mesh.NDF; dof++ {
		eq, free := n.Equation(dof)
		if !free {
			continue
		}
		if eq > len(disp) {
			return u, fmt.Errorf("node %d: equation %d outside solution of length %d", n.ID, eq, len(disp))
		}
		u[dof] = disp[eq-1]
	}
	return u, nil
}

// solveWith runs the substitutions of a factorized matrix on the buffer
func (s *Solution) solveWith(m *skyline.Matrix) error {
	if s.state != LoadState {
		return ErrSolved
	}
	if err := m.Solve(s.values); err != nil {
		return fmt.Errorf("load case %d: %w", s.LoadCase, err)
	}
	s.state = DisplacementState
	return nil
}
