package mesh

import "fmt"

// Load is a concentrated nodal load
type Load struct {
	Node      int     // 1-based node number
	DOF       int     // 1-based degree of freedom within the node
	Magnitude float64 // Load value
}

// LoadCase is an ordered list of concentrated loads
type LoadCase struct {
	ID    int
	Loads []Load
}

// Validate checks every load against the node list
func (lc *LoadCase) Validate(numNodes int) error {
	for i, l := range lc.Loads {
		if l.Node < 1 || l.Node > numNodes {
			return fmt.Errorf("load case %d, load %d: node %d: %w", lc.ID, i+1, l.Node, ErrNodeNotFound)
		}
		if l.DOF < 1 || l.DOF > NDF {
			return fmt.Errorf("load case %d, load %d: dof %d: %w", lc.ID, i+1, l.DOF, ErrInvalidDOF)
		}
	}
	return nil
}

// Scatter adds the loads of the case into force using the equation numbers of
// nodes. Loads on constrained degrees of freedom are dropped.
func (lc *LoadCase) Scatter(nodes []*Node, force []float64) error {
	if err := lc.Validate(len(nodes)); err != nil {
		return err
	}
	for _, l := range lc.Loads {
		eq, free := nodes[l.Node-1].Equation(l.DOF - 1)
		if !free {
			continue
		}
		if eq > len(force) {
			return fmt.Errorf("load case %d: equation %d exceeds force vector length %d", lc.ID, eq, len(force))
		}
		force[eq-1] += l.Magnitude
	}
	return nil
}
