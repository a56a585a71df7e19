package domain

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/mesh"
	"github.com/notargets/SkylineFEM/partitions"
	"github.com/notargets/SkylineFEM/skyline"
)

// SolutionMode selects how far Run takes the analysis
type SolutionMode uint8

const (
	DataCheck SolutionMode = iota // Read, number equations and report input only
	Execute                       // Full analysis
)

func (m SolutionMode) String() string {
	if m == DataCheck {
		return "data check"
	}
	return "execution"
}

// Phase is the position of a Domain in its build lifecycle
type Phase uint8

const (
	Constructed Phase = iota
	Numbered          // Equation numbers assigned
	Allocated         // Profile built, packed storage allocated
	Assembled         // Stiffness matrix assembled
	Factored          // Stiffness matrix factorized
	Failed            // Factorization failed, the analysis is over
)

func (p Phase) String() string {
	return [...]string{"constructed", "numbered", "allocated", "assembled", "factored", "failed"}[p]
}

var ErrPhase = errors.New("operation not allowed in current phase")

// Domain is one self-contained static analysis: nodes, element groups, load
// cases and the global system built from them. Its methods run in lifecycle
// order: CalculateEquationNumber, AllocateMatrices, AssembleStiffnessMatrix,
// then Solve per load case.
type Domain struct {
	Title     string
	Mode      SolutionMode
	Nodes     []*mesh.Node
	Groups    []*element.Group
	LoadCases []*mesh.LoadCase

	Workers int         // Assembly goroutines; <= 1 assembles serially
	Logger  *log.Logger // Optional progress log

	phase     Phase
	neq       int
	elements  []element.Element
	profile   *skyline.Profile
	stiffness *skyline.Matrix
	layout    *partitions.PartitionLayout
	failure   error
}

// NewDomain validates the input collections and creates a domain in the
// Constructed phase
func NewDomain(title string, nodes []*mesh.Node, groups []*element.Group, loadCases []*mesh.LoadCase) (*Domain, error) {
	if err := mesh.ValidateNodes(nodes); err != nil {
		return nil, fmt.Errorf("nodal point data: %w", err)
	}
	known := make(map[*mesh.Node]bool, len(nodes))
	for _, n := range nodes {
		known[n] = true
	}
	var elements []element.Element
	for i, g := range groups {
		if g == nil {
			return nil, fmt.Errorf("element group %d is nil", i+1)
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("element group %d: %w", i+1, err)
		}
		for _, e := range g.Elements {
			if e.DegreesOfFreedomPerNode() > mesh.NDF || e.DegreesOfFreedomPerNode() < 1 {
				return nil, fmt.Errorf("element group %d, element %d: %d DOFs per node: %w",
					i+1, e.ID(), e.DegreesOfFreedomPerNode(), mesh.ErrInvalidDOF)
			}
			for _, n := range e.Nodes() {
				if !known[n] {
					return nil, fmt.Errorf("element group %d, element %d: node %d: %w",
						i+1, e.ID(), n.ID, mesh.ErrNodeNotFound)
				}
			}
			elements = append(elements, e)
		}
	}
	for i, lc := range loadCases {
		if lc == nil || lc.ID != i+1 {
			return nil, fmt.Errorf("load cases must be numbered consecutively from 1 (position %d)", i+1)
		}
		if err := lc.Validate(len(nodes)); err != nil {
			return nil, err
		}
	}
	return &Domain{
		Title:     title,
		Mode:      Execute,
		Nodes:     nodes,
		Groups:    groups,
		LoadCases: loadCases,
		elements:  elements,
	}, nil
}

// Phase returns the current lifecycle phase
func (d *Domain) Phase() Phase { return d.phase }

// NEQ returns the number of equations, valid from the Numbered phase on
func (d *Domain) NEQ() int { return d.neq }

// Elements returns every element, group by group
func (d *Domain) Elements() []element.Element { return d.elements }

// Profile returns the skyline profile, nil before AllocateMatrices
func (d *Domain) Profile() *skyline.Profile { return d.profile }

// StiffnessMatrix returns the packed global matrix, nil before AllocateMatrices
func (d *Domain) StiffnessMatrix() *skyline.Matrix { return d.stiffness }

// DiagonalAddress returns the 1-based diagonal address table of length NEQ+1
func (d *Domain) DiagonalAddress() []int {
	if d.profile == nil {
		return nil
	}
	return d.profile.DiagonalAddress
}

// ColumnHeights returns the column height of every equation
func (d *Domain) ColumnHeights() []int {
	if d.profile == nil {
		return nil
	}
	return d.profile.ColumnHeights
}

// Layout returns the element coloring used for parallel assembly, nil when
// assembly ran serially
func (d *Domain) Layout() *partitions.PartitionLayout { return d.layout }

func (d *Domain) require(want Phase, op string) error {
	if d.phase == Failed {
		return fmt.Errorf("%s: %w: %w", op, ErrPhase, d.failure)
	}
	if d.phase != want {
		return fmt.Errorf("%s requires phase %v, domain is %v: %w", op, want, d.phase, ErrPhase)
	}
	return nil
}

func (d *Domain) logf(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}

// CalculateEquationNumber turns the nodal boundary flags into equation numbers
func (d *Domain) CalculateEquationNumber() error {
	if err := d.require(Constructed, "equation numbering"); err != nil {
		return err
	}
	d.neq = mesh.AssignEquationNumbers(d.Nodes)
	d.phase = Numbered
	d.logf("Equation numbers assigned: NEQ=%d", d.neq)
	return nil
}

// CalculateColumnHeights builds the column heights of the profile from every
// element's location matrix
func (d *Domain) CalculateColumnHeights() (*skyline.Profile, error) {
	if err := d.require(Numbered, "column heights"); err != nil {
		return nil, err
	}
	p, err := skyline.NewProfile(d.neq)
	if err != nil {
		return nil, err
	}
	for _, e := range d.elements {
		if err := p.AddLocationMatrix(element.LocationMatrix(e)); err != nil {
			return nil, fmt.Errorf("%v element %d: %w", e.Type(), e.ID(), err)
		}
	}
	return p, nil
}

// AllocateMatrices computes column heights and diagonal addresses and
// allocates the packed stiffness matrix. The profile is immutable afterwards.
func (d *Domain) AllocateMatrices() error {
	p, err := d.CalculateColumnHeights()
	if err != nil {
		return err
	}
	p.Build()
	m, err := skyline.NewMatrix(p)
	if err != nil {
		return err
	}
	d.profile, d.stiffness = p, m
	d.phase = Allocated
	st := p.Stats()
	d.logf("Stiffness storage allocated: %d entries, max half-bandwidth %d, mean half-bandwidth %.2f",
		st.StoredEntries, st.MaxHalfBandwidth, st.MeanHalfBandwidth)
	return nil
}

// String returns a summary of the domain
func (d *Domain) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== Domain: %s ===\n", d.Title))
	sb.WriteString(fmt.Sprintf("  Mode: %v, phase: %v\n", d.Mode, d.phase))
	sb.WriteString(fmt.Sprintf("  Nodes: %d, element groups: %d, elements: %d, load cases: %d\n",
		len(d.Nodes), len(d.Groups), len(d.elements), len(d.LoadCases)))
	for i, g := range d.Groups {
		sb.WriteString(fmt.Sprintf("  Group %d: %v\n", i+1, g))
	}
	if d.phase >= Numbered {
		sb.WriteString(fmt.Sprintf("  Equations: %d\n", d.neq))
	}
	if d.profile != nil {
		sb.WriteString("  " + d.profile.String())
	}
	return sb.String()
}
