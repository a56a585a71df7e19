package domain

import (
	"fmt"
	"time"

	"github.com/notargets/SkylineFEM/element"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// AssembleForce builds the nodal force vector of load case lc (1-based)
func (d *Domain) AssembleForce(lc int) (*Solution, error) {
	if d.phase == Failed {
		return nil, d.require(Factored, "force assembly")
	}
	if d.phase < Numbered {
		return nil, fmt.Errorf("force assembly needs equation numbers: %w", ErrPhase)
	}
	if lc < 1 || lc > len(d.LoadCases) {
		return nil, fmt.Errorf("load case %d outside 1..%d", lc, len(d.LoadCases))
	}
	s := newSolution(lc, d.neq)
	if err := d.LoadCases[lc-1].Scatter(d.Nodes, s.values); err != nil {
		return nil, err
	}
	return s, nil
}

// Factorize decomposes the assembled stiffness matrix in place. A singular or
// indefinite system is returned as *skyline.SingularError and ends the
// analysis: the domain moves to Failed and refuses every later operation.
func (d *Domain) Factorize() error {
	if err := d.require(Assembled, "factorization"); err != nil {
		return err
	}
	start := time.Now()
	if err := d.stiffness.Factorize(); err != nil {
		d.phase, d.failure = Failed, err
		d.logf("Factorization failed: %v", err)
		return fmt.Errorf("factorization: %w", err)
	}
	d.phase = Factored
	d.logf("Stiffness matrix factorized in %v", time.Since(start))
	return nil
}

// Solve returns the displacements of load case lc. The stiffness matrix is
// factorized on the first call only; later load cases reuse the factors.
func (d *Domain) Solve(lc int) (*Solution, error) {
	if d.phase == Assembled {
		if err := d.Factorize(); err != nil {
			return nil, err
		}
	}
	if err := d.require(Factored, "solution"); err != nil {
		return nil, err
	}
	s, err := d.AssembleForce(lc)
	if err != nil {
		return nil, err
	}
	if err := s.solveWith(d.stiffness); err != nil {
		return nil, err
	}
	d.logf("Load case %d solved", lc)
	return s, nil
}

// Run takes the domain through its whole lifecycle and solves every load
// case. In DataCheck mode it stops after equation numbering and returns no
// solutions.
func (d *Domain) Run() ([]*Solution, error) {
	if err := d.CalculateEquationNumber(); err != nil {
		return nil, err
	}
	if d.Mode == DataCheck {
		return nil, nil
	}
	if err := d.AllocateMatrices(); err != nil {
		return nil, err
	}
	if err := d.AssembleStiffnessMatrix(); err != nil {
		return nil, err
	}
	solutions := make([]*Solution, 0, len(d.LoadCases))
	for lc := 1; lc <= len(d.LoadCases); lc++ {
		s, err := d.Solve(lc)
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, s)
	}
	return solutions, nil
}

// Residual returns ‖K·u − f‖₂ for a solved load case. K·u is rebuilt from the
// element matrices, so it does not depend on the factorized storage.
func (d *Domain) Residual(s *Solution) (float64, error) {
	u, err := s.Displacement()
	if err != nil {
		return 0, err
	}
	f, err := d.AssembleForce(s.LoadCase)
	if err != nil {
		return 0, err
	}
	ku := make([]float64, d.neq)
	for _, e := range d.elements {
		ke, err := e.ComputeLocalStiffness()
		if err != nil {
			return 0, fmt.Errorf("%v element %d: %w", e.Type(), e.ID(), err)
		}
		lm := element.LocationMatrix(e)
		ul := mat.NewVecDense(len(lm), nil)
		for i, eq := range lm {
			if eq != 0 {
				ul.SetVec(i, u[eq-1])
			}
		}
		var fl mat.VecDense
		fl.MulVec(ke, ul)
		for i, eq := range lm {
			if eq != 0 {
				ku[eq-1] += fl.AtVec(i)
			}
		}
	}
	if d.neq == 0 {
		return 0, nil
	}
	floats.Sub(ku, f.values)
	return floats.Norm(ku, 2), nil
}
