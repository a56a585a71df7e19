package mesh

import "fmt"

// AssignEquationNumbers converts the raw boundary flags of every node into
// global equation numbers. Free degrees of freedom are numbered 1..NEQ in node
// order, then DOF order within the node; fixed ones become 0. It returns NEQ.
func AssignEquationNumbers(nodes []*Node) (neq int) {
	for _, n := range nodes {
		for d := 0; d < NDF; d++ {
			if n.BCode[d] == 0 {
				neq++
				n.BCode[d] = neq
				n.fixed[d] = false
			} else {
				n.BCode[d] = 0
				n.fixed[d] = true
			}
		}
		n.numbered = true
	}
	return
}

// ValidateNodes checks that node IDs run consecutively from 1 and that no node
// has already been numbered
func ValidateNodes(nodes []*Node) error {
	for i, n := range nodes {
		if n == nil {
			return fmt.Errorf("node at position %d is nil", i)
		}
		if n.ID != i+1 {
			return fmt.Errorf("nodes must be numbered consecutively: expected %d, got %d", i+1, n.ID)
		}
		if n.numbered {
			return fmt.Errorf("node %d already carries equation numbers", n.ID)
		}
	}
	return nil
}
