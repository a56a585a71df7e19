package skyline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultPivotTolerance is the relative size below which a pivot is treated as zero
const DefaultPivotTolerance = 1e-12

// Matrix is a symmetric matrix held in skyline (profile) storage.
//
// The packed values are written in two strictly ordered phases: additive
// assembly, then in-place LDLᵗ factorization. After Factorize the array holds
// D on the diagonals and the unit upper factor Lᵗ above them; further additions
// are rejected. A failed factorization leaves the array partly overwritten;
// the matrix then refuses every operation except Reset. Matrix is not safe
// for concurrent writers to the same equation.
type Matrix struct {
	Profile        *Profile
	PivotTolerance float64 // Relative pivot threshold, see Factorize

	values   []float64
	factored bool
	failure  error // Set by a failed Factorize, cleared by Reset
}

var _ mat.Symmetric = (*Matrix)(nil)

// NewMatrix allocates zeroed packed storage for a built profile
func NewMatrix(p *Profile) (*Matrix, error) {
	if p == nil || !p.Built() {
		return nil, ErrNotBuilt
	}
	return &Matrix{
		Profile:        p,
		PivotTolerance: DefaultPivotTolerance,
		values:         make([]float64, p.Size()),
	}, nil
}

// Values returns the packed array. Offset k holds the entry whose 1-based
// address in DiagonalAddress terms is k+1.
func (m *Matrix) Values() []float64 { return m.values }

// Factored reports whether the matrix holds its LDLᵗ factors
func (m *Matrix) Factored() bool { return m.factored }

// Failure returns the error of a failed factorization, nil otherwise
func (m *Matrix) Failure() error { return m.failure }

// Dims returns the matrix dimensions
func (m *Matrix) Dims() (r, c int) { return m.Profile.NEQ, m.Profile.NEQ }

// SymmetricDim returns the number of equations
func (m *Matrix) SymmetricDim() int { return m.Profile.NEQ }

// T returns the receiver, the matrix is symmetric
func (m *Matrix) T() mat.Matrix { return m }

// At returns the stored element at 0-based (i, j). Entries above the skyline
// are zero. After factorization the stored factors are returned.
func (m *Matrix) At(i, j int) float64 {
	n := m.Profile.NEQ
	if i < 0 || i >= n || j < 0 || j >= n {
		panic(mat.ErrIndexOutOfRange)
	}
	idx, ok := m.Profile.Index(i+1, j+1)
	if !ok {
		return 0
	}
	return m.values[idx]
}

// Add accumulates v into the 1-based (row, col) entry and its symmetric image
func (m *Matrix) Add(row, col int, v float64) error {
	if m.failure != nil {
		return m.failure
	}
	if m.factored {
		return ErrFactorized
	}
	idx, ok := m.Profile.Index(row, col)
	if !ok {
		return fmt.Errorf("(%d, %d): %w", row, col, ErrOutsideProfile)
	}
	m.values[idx] += v
	return nil
}

// AddElement scatters a column-packed element matrix ke into the global array.
// lm maps local DOF index to global equation number (0 = constrained). For
// local column j, ke holds the diagonal first and then the entries upward:
//
//	ke[j*(j+1)/2 + (j-i)] = K(i, j), i <= j
//
// Terms with a constrained row or column are dropped.
func (m *Matrix) AddElement(lm []int, ke []float64) error {
	if m.failure != nil {
		return m.failure
	}
	if m.factored {
		return ErrFactorized
	}
	nd := len(lm)
	if len(ke) != nd*(nd+1)/2 {
		return fmt.Errorf("element matrix has %d packed entries, location matrix needs %d: %w",
			len(ke), nd*(nd+1)/2, ErrDimension)
	}
	for j := 0; j < nd; j++ {
		lj := lm[j]
		if lj == 0 {
			continue
		}
		diagElement := j * (j + 1) / 2
		for i := 0; i <= j; i++ {
			li := lm[i]
			if li == 0 {
				continue
			}
			idx, ok := m.Profile.Index(li, lj)
			if !ok {
				return fmt.Errorf("element dofs (%d, %d) -> equations (%d, %d): %w", i, j, li, lj, ErrOutsideProfile)
			}
			m.values[idx] += ke[diagElement+j-i]
		}
	}
	return nil
}

// Reset zeroes the packed values and clears the factorization
func (m *Matrix) Reset() {
	for i := range m.values {
		m.values[i] = 0
	}
	m.factored = false
	m.failure = nil
}

// Factorize decomposes the matrix in place into LDLᵗ without pivoting.
//
// Column j only reads columns whose rows overlap its profile. A pivot d_j is
// rejected when d_j <= 0 or |d_j| <= PivotTolerance·|K_jj|; the returned
// *SingularError names the equation. The same error is returned by every later
// call until Reset.
func (m *Matrix) Factorize() error {
	if m.failure != nil {
		return m.failure
	}
	if m.factored {
		return ErrFactorized
	}
	p := m.Profile
	a := m.values
	for j := 1; j <= p.NEQ; j++ {
		dj := p.diag(j)
		top := p.Top(j)
		// g(i,j) = K(i,j) - Σ L(r,i) g(r,j), overwritten in place
		for i := top + 1; i < j; i++ {
			di := p.diag(i)
			r0 := p.Top(i)
			if top > r0 {
				r0 = top
			}
			var sum float64
			for r := r0; r < i; r++ {
				sum += a[di+i-r] * a[dj+j-r]
			}
			a[dj+j-i] -= sum
		}
		kjj := a[dj]
		d := kjj
		for i := top; i < j; i++ {
			g := a[dj+j-i]
			l := g / a[p.diag(i)]
			d -= l * g
			a[dj+j-i] = l
		}
		if d <= 0 || math.Abs(d) <= m.PivotTolerance*math.Abs(kjj) {
			m.failure = &SingularError{Equation: j, Pivot: d}
			return m.failure
		}
		a[dj] = d
	}
	m.factored = true
	return nil
}

// Solve overwrites b with the solution of K x = b using the factors: forward
// substitution, diagonal scaling, back substitution. It can be called any number
// of times per factorization.
func (m *Matrix) Solve(b []float64) error {
	if m.failure != nil {
		return m.failure
	}
	if !m.factored {
		return ErrNotFactorized
	}
	p := m.Profile
	if len(b) != p.NEQ {
		return fmt.Errorf("right hand side length %d, expected %d: %w", len(b), p.NEQ, ErrDimension)
	}
	a := m.values
	// Forward: L v = b
	for j := 1; j <= p.NEQ; j++ {
		dj := p.diag(j)
		var sum float64
		for i := p.Top(j); i < j; i++ {
			sum += a[dj+j-i] * b[i-1]
		}
		b[j-1] -= sum
	}
	// Scale: D w = v
	for j := 1; j <= p.NEQ; j++ {
		b[j-1] /= a[p.diag(j)]
	}
	// Back: Lᵗ x = w
	for j := p.NEQ; j > 1; j-- {
		dj := p.diag(j)
		xj := b[j-1]
		for i := p.Top(j); i < j; i++ {
			b[i-1] -= a[dj+j-i] * xj
		}
	}
	return nil
}

// Dense returns a dense copy of the stored values, useful for debugging and
// for checking the assembly against a reference.
func (m *Matrix) Dense() *mat.SymDense {
	n := m.Profile.NEQ
	if n == 0 {
		return &mat.SymDense{}
	}
	s := mat.NewSymDense(n, nil)
	for j := 1; j <= n; j++ {
		for i := m.Profile.Top(j); i <= j; i++ {
			idx, _ := m.Profile.Index(i, j)
			s.SetSym(i-1, j-1, m.values[idx])
		}
	}
	return s
}
