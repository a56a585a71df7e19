package element

import (
	"fmt"

	"github.com/notargets/SkylineFEM/mesh"
	"gonum.org/v1/gonum/mat"
)

// Type identifies an element formulation. The numeric codes are the ones used
// in the input file.
type Type uint8

const (
	Unknown Type = iota
	Bar          // 3D two-node truss, EA/L
	Spring       // 3D two-node axial spring, k
)

func (t Type) String() string {
	switch t {
	case Bar:
		return "Bar"
	case Spring:
		return "Spring"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType converts an input code or name into a Type
func ParseType(s string) (Type, error) {
	switch s {
	case "1", "Bar", "bar", "BAR":
		return Bar, nil
	case "2", "Spring", "spring", "SPRING":
		return Spring, nil
	}
	return Unknown, fmt.Errorf("unknown element type %q", s)
}

// Material is a set of material/section properties shared by reference between
// the elements of a group
type Material interface {
	ID() int
	String() string
}

// Element is the capability every element formulation provides to the assembler
type Element interface {
	ID() int
	Type() Type
	NodeCount() int               // NEN, fixed per type
	DegreesOfFreedomPerNode() int // Leading node DOFs used by the element, <= mesh.NDF
	Nodes() []*mesh.Node
	Material() Material

	// ComputeLocalStiffness returns the symmetric element stiffness matrix of
	// size NodeCount()*DegreesOfFreedomPerNode(), ordered node by node, DOF by
	// DOF within the node.
	ComputeLocalStiffness() (*mat.SymDense, error)
}

// StressElement is implemented by elements that can recover an internal force
// quantity from the global displacement vector
type StressElement interface {
	Element
	// Stress returns the element stress (or force for discrete elements).
	// displacement is indexed by equation number minus one.
	Stress(displacement []float64) (float64, error)
}

// LocationMatrix returns the global equation number of every local DOF of e,
// 0 for constrained DOFs. It is rebuilt on every call.
func LocationMatrix(e Element) []int {
	ndf := e.DegreesOfFreedomPerNode()
	lm := make([]int, 0, e.NodeCount()*ndf)
	for _, n := range e.Nodes() {
		for d := 0; d < ndf; d++ {
			lm = append(lm, n.BCode[d])
		}
	}
	return lm
}

// LocalSize returns the number of local DOFs of e
func LocalSize(e Element) int {
	return e.NodeCount() * e.DegreesOfFreedomPerNode()
}
