package library

import (
	"fmt"

	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/mesh"
)

// MaterialAllocator builds a material set from its numeric properties
type MaterialAllocator func(set int, props []float64) (element.Material, error)

// ElementAllocator builds an element from its nodes and material set
type ElementAllocator func(id int, nodes []*mesh.Node, m element.Material) (element.Element, error)

type allocator struct {
	numProps  int
	nodeCount int
	material  MaterialAllocator
	element   ElementAllocator
}

var allocators = map[element.Type]allocator{
	element.Bar: {
		numProps:  2,
		nodeCount: 2,
		material: func(set int, props []float64) (element.Material, error) {
			if props[0] <= 0 || props[1] <= 0 {
				return nil, fmt.Errorf("bar material set %d: E and A must be positive, got E=%g A=%g",
					set, props[0], props[1])
			}
			return &BarMaterial{Set: set, E: props[0], Area: props[1]}, nil
		},
		element: func(id int, nodes []*mesh.Node, m element.Material) (element.Element, error) {
			bm, ok := m.(*BarMaterial)
			if !ok {
				return nil, fmt.Errorf("bar element %d: material set %d is not a bar material", id, m.ID())
			}
			return NewBar(id, nodes[0], nodes[1], bm), nil
		},
	},
	element.Spring: {
		numProps:  1,
		nodeCount: 2,
		material: func(set int, props []float64) (element.Material, error) {
			if props[0] <= 0 {
				return nil, fmt.Errorf("spring material set %d: k must be positive, got %g", set, props[0])
			}
			return &SpringMaterial{Set: set, K: props[0]}, nil
		},
		element: func(id int, nodes []*mesh.Node, m element.Material) (element.Element, error) {
			sm, ok := m.(*SpringMaterial)
			if !ok {
				return nil, fmt.Errorf("spring element %d: material set %d is not a spring material", id, m.ID())
			}
			return NewSpring(id, nodes[0], nodes[1], sm), nil
		},
	},
}

// MaterialProperties returns the number of numeric properties of a material set of type t
func MaterialProperties(t element.Type) (int, error) {
	a, ok := allocators[t]
	if !ok {
		return 0, fmt.Errorf("no allocator for element type %v", t)
	}
	return a.numProps, nil
}

// NodeCount returns the number of nodes of an element of type t
func NodeCount(t element.Type) (int, error) {
	a, ok := allocators[t]
	if !ok {
		return 0, fmt.Errorf("no allocator for element type %v", t)
	}
	return a.nodeCount, nil
}

// NewMaterial allocates a material set of type t
func NewMaterial(t element.Type, set int, props []float64) (element.Material, error) {
	a, ok := allocators[t]
	if !ok {
		return nil, fmt.Errorf("no allocator for element type %v", t)
	}
	if len(props) != a.numProps {
		return nil, fmt.Errorf("%v material set %d: expected %d properties, got %d", t, set, a.numProps, len(props))
	}
	return a.material(set, props)
}

// NewElement allocates an element of type t
func NewElement(t element.Type, id int, nodes []*mesh.Node, m element.Material) (element.Element, error) {
	a, ok := allocators[t]
	if !ok {
		return nil, fmt.Errorf("no allocator for element type %v", t)
	}
	if len(nodes) != a.nodeCount {
		return nil, fmt.Errorf("%v element %d: expected %d nodes, got %d", t, id, a.nodeCount, len(nodes))
	}
	for _, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("%v element %d: %w", t, id, mesh.ErrNodeNotFound)
		}
	}
	if m == nil {
		return nil, fmt.Errorf("%v element %d: missing material set", t, id)
	}
	return a.element(id, nodes, m)
}
