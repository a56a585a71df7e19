package skyline

import (
	"errors"
	"fmt"
)

var (
	ErrOutsideProfile = errors.New("entry outside skyline profile")
	ErrFactorized     = errors.New("matrix already factorized")
	ErrNotFactorized  = errors.New("matrix not factorized")
	ErrDimension      = errors.New("dimension mismatch")
	ErrNotBuilt       = errors.New("profile not built")
)

// SingularError reports a non-positive or vanishing pivot found during
// factorization. The system is singular or indefinite at Equation.
type SingularError struct {
	Equation int     // 1-based equation number
	Pivot    float64 // Offending pivot value
}

func (e *SingularError) Error() string {
	if e.Pivot < 0 {
		return fmt.Sprintf("negative pivot %g at equation %d: stiffness matrix is not positive definite", e.Pivot, e.Equation)
	}
	return fmt.Sprintf("zero pivot %g at equation %d: stiffness matrix is singular (unconstrained rigid body mode?)", e.Pivot, e.Equation)
}
