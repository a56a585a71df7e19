package skyline

import (
	"fmt"
	"strings"
)

// Profile describes the skyline layout of a symmetric NEQ×NEQ matrix.
//
// Equations are 1-based throughout, matching the location matrices they are
// built from. Column j stores the entries from its diagonal up to row
// j-ColumnHeights[j-1], diagonal first, in one contiguous run of the packed
// array:
//
//	DiagonalAddress[j-1]                 -> (j, j)
//	DiagonalAddress[j-1] + 1             -> (j-1, j)
//	...
//	DiagonalAddress[j-1] + height(j)     -> (j-height, j)
//
// DiagonalAddress is 1-based and has NEQ+1 entries; the last one is the packed
// length plus one.
type Profile struct {
	NEQ             int
	ColumnHeights   []int // Length NEQ
	DiagonalAddress []int // Length NEQ+1, empty until Build

	built bool
}

// NewProfile creates an empty profile for neq equations
func NewProfile(neq int) (*Profile, error) {
	if neq < 0 {
		return nil, fmt.Errorf("invalid number of equations: %d", neq)
	}
	return &Profile{
		NEQ:           neq,
		ColumnHeights: make([]int, neq),
	}, nil
}

// AddLocationMatrix folds one element's location matrix into the column heights.
// Zero entries are constrained degrees of freedom and are ignored; an element
// with no free degree of freedom contributes nothing.
func (p *Profile) AddLocationMatrix(lm []int) error {
	if p.built {
		return fmt.Errorf("profile already built: column heights are frozen")
	}
	first := 0
	for _, eq := range lm {
		if eq == 0 {
			continue
		}
		if eq < 0 || eq > p.NEQ {
			return fmt.Errorf("equation %d outside 1..%d: %w", eq, p.NEQ, ErrOutsideProfile)
		}
		if first == 0 || eq < first {
			first = eq
		}
	}
	if first == 0 {
		return nil
	}
	for _, col := range lm {
		if col == 0 {
			continue
		}
		if h := col - first; h > p.ColumnHeights[col-1] {
			p.ColumnHeights[col-1] = h
		}
	}
	return nil
}

// Build computes the diagonal addresses as the prefix sum of the column heights.
// The profile is immutable afterwards.
func (p *Profile) Build() {
	p.DiagonalAddress = make([]int, p.NEQ+1)
	p.DiagonalAddress[0] = 1
	for j := 0; j < p.NEQ; j++ {
		p.DiagonalAddress[j+1] = p.DiagonalAddress[j] + p.ColumnHeights[j] + 1
	}
	p.built = true
}

// Built reports whether the diagonal addresses are available
func (p *Profile) Built() bool { return p.built }

// Size returns the packed array length
func (p *Profile) Size() int {
	if !p.built {
		return 0
	}
	return p.DiagonalAddress[p.NEQ] - 1
}

// Top returns the first stored row (1-based) of column j
func (p *Profile) Top(j int) int {
	return j - p.ColumnHeights[j-1]
}

// Index maps the 1-based (row, col) pair to a 0-based offset into the packed
// array. The pair is symmetrized so that col is the larger equation. ok is
// false when the entry lies above the skyline or outside 1..NEQ, in which case
// it is implicitly zero and not stored.
func (p *Profile) Index(row, col int) (idx int, ok bool) {
	if row > col {
		row, col = col, row
	}
	if row < 1 || col > p.NEQ || !p.built {
		return 0, false
	}
	d := col - row
	if d > p.ColumnHeights[col-1] {
		return 0, false
	}
	return p.DiagonalAddress[col-1] - 1 + d, true
}

// diag returns the 0-based offset of the diagonal of 1-based column j
func (p *Profile) diag(j int) int {
	return p.DiagonalAddress[j-1] - 1
}

// Stats summarizes the profile
type Stats struct {
	NEQ               int
	StoredEntries     int
	MaxHalfBandwidth  int
	MeanHalfBandwidth float64
}

// Stats returns storage statistics of the profile
func (p *Profile) Stats() Stats {
	s := Stats{NEQ: p.NEQ, StoredEntries: p.Size()}
	if p.NEQ == 0 {
		return s
	}
	total := 0
	for _, h := range p.ColumnHeights {
		total += h + 1
		if h+1 > s.MaxHalfBandwidth {
			s.MaxHalfBandwidth = h + 1
		}
	}
	s.MeanHalfBandwidth = float64(total) / float64(p.NEQ)
	return s
}

// String returns a summary of the profile
func (p *Profile) String() string {
	var sb strings.Builder
	st := p.Stats()
	sb.WriteString(fmt.Sprintf("Profile: NEQ=%d, stored=%d, max half-bandwidth=%d, mean half-bandwidth=%.2f\n",
		st.NEQ, st.StoredEntries, st.MaxHalfBandwidth, st.MeanHalfBandwidth))
	return sb.String()
}
