package element

import (
	"fmt"
	"strings"
)

// Group is a set of elements of one type together with the material sets they
// reference
type Group struct {
	Type      Type
	Elements  []Element
	Materials []Material
}

// NewGroup creates an empty element group of type t
func NewGroup(t Type) *Group {
	return &Group{Type: t}
}

// Validate checks element types, numbering and material references
func (g *Group) Validate() error {
	for i, m := range g.Materials {
		if m == nil || m.ID() != i+1 {
			return fmt.Errorf("%v group: material sets must be numbered consecutively from 1 (position %d)", g.Type, i+1)
		}
	}
	for i, e := range g.Elements {
		if e == nil {
			return fmt.Errorf("%v group: element at position %d is nil", g.Type, i+1)
		}
		if e.ID() != i+1 {
			return fmt.Errorf("%v group: elements must be numbered consecutively: expected %d, got %d", g.Type, i+1, e.ID())
		}
		if e.Type() != g.Type {
			return fmt.Errorf("%v group: element %d has type %v", g.Type, e.ID(), e.Type())
		}
		if len(e.Nodes()) != e.NodeCount() {
			return fmt.Errorf("%v group: element %d references %d nodes, expected %d",
				g.Type, e.ID(), len(e.Nodes()), e.NodeCount())
		}
		for _, n := range e.Nodes() {
			if n == nil {
				return fmt.Errorf("%v group: element %d references an undefined node", g.Type, e.ID())
			}
		}
		if e.Material() == nil {
			return fmt.Errorf("%v group: element %d has no material set", g.Type, e.ID())
		}
	}
	return nil
}

// String returns a one line summary
func (g *Group) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v group: %d elements, %d material sets", g.Type, len(g.Elements), len(g.Materials)))
	return sb.String()
}
