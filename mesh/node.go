package mesh

import (
	"errors"
	"fmt"
)

// NDF is the number of degrees of freedom carried by every node (x, y, z translations)
const NDF = 3

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrInvalidDOF   = errors.New("degree of freedom out of range")
)

// Node holds the coordinates and the boundary condition codes of a mesh point.
//
// BCode is overlaid: before AssignEquationNumbers it carries raw boundary
// condition flags (0 = free, nonzero = fixed), afterwards it carries the global
// equation number of each degree of freedom, with 0 marking a constrained DOF.
type Node struct {
	ID       int        // 1-based node number
	XYZ      [3]float64 // Spatial coordinates
	BCode    [NDF]int   // Boundary codes, then equation numbers
	fixed    [NDF]bool  // Raw flags, retained for reporting after numbering
	numbered bool
}

// NewNode creates a node with raw boundary condition flags
func NewNode(id int, xyz [3]float64, bc [NDF]int) *Node {
	return &Node{ID: id, XYZ: xyz, BCode: bc}
}

// Equation returns the global equation number of dof (0-based) and whether the
// dof is free. A constrained dof returns (0, false).
func (n *Node) Equation(dof int) (eq int, free bool) {
	if dof < 0 || dof >= NDF {
		return 0, false
	}
	eq = n.BCode[dof]
	return eq, eq != 0
}

// Fixed reports whether dof (0-based) was constrained by the input flags
func (n *Node) Fixed(dof int) bool {
	if n.numbered {
		return n.fixed[dof]
	}
	return n.BCode[dof] != 0
}

// Numbered reports whether BCode holds equation numbers
func (n *Node) Numbered() bool { return n.numbered }

func (n *Node) String() string {
	return fmt.Sprintf("Node %d (%g, %g, %g) codes %v", n.ID, n.XYZ[0], n.XYZ[1], n.XYZ[2], n.BCode)
}
