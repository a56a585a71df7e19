package report

import (
	"fmt"
	"io"
	"time"

	"github.com/notargets/SkylineFEM/domain"
	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/mesh"
)

// Outputter writes the analysis report. Write errors are sticky: after the
// first failure nothing more is written and Err returns it.
type Outputter struct {
	w   io.Writer
	err error
}

// NewOutputter creates an outputter writing to w
func NewOutputter(w io.Writer) *Outputter {
	return &Outputter{w: w}
}

// Err returns the first write error
func (o *Outputter) Err() error { return o.err }

func (o *Outputter) printf(format string, args ...interface{}) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

// OutputHeading writes the title and a time stamp
func (o *Outputter) OutputHeading(d *domain.Domain, now time.Time) {
	o.printf("TITLE : %s\n", d.Title)
	o.printf("Analysis started %s\n\n", now.Format(time.RFC1123))
}

// OutputControlInfo writes the problem size summary
func (o *Outputter) OutputControlInfo(d *domain.Domain) {
	o.printf("C O N T R O L   I N F O R M A T I O N\n\n")
	o.printf("\t  NUMBER OF NODAL POINTS . . . . . . . . . . (NUMNP)  = %6d\n", len(d.Nodes))
	o.printf("\t  NUMBER OF ELEMENT GROUPS . . . . . . . . . (NUMEG)  = %6d\n", len(d.Groups))
	o.printf("\t  NUMBER OF LOAD CASES . . . . . . . . . . . (NLCASE) = %6d\n", len(d.LoadCases))
	o.printf("\t  SOLUTION MODE  . . . . . . . . . . . . . . (MODEX)  = %6d\n", modex(d.Mode))
	o.printf("\t\t EQ.0, DATA CHECK\n\t\t EQ.1, EXECUTION\n\n")
}

func modex(m domain.SolutionMode) int {
	if m == domain.DataCheck {
		return 0
	}
	return 1
}

// OutputNodeInfo writes boundary condition codes and coordinates of every node
func (o *Outputter) OutputNodeInfo(d *domain.Domain) {
	o.printf("N O D A L   P O I N T   D A T A\n\n")
	o.printf("    NODE       BOUNDARY                         NODAL POINT\n")
	o.printf("   NUMBER  CONDITION  CODES                     COORDINATES\n")
	for _, n := range d.Nodes {
		o.printf("%9d", n.ID)
		for dof := 0; dof < mesh.NDF; dof++ {
			code := 0
			if n.Fixed(dof) {
				code = 1
			}
			o.printf("%5d", code)
		}
		o.printf("       %13.5e%13.5e%13.5e\n", n.XYZ[0], n.XYZ[1], n.XYZ[2])
	}
	o.printf("\n")
}

// OutputEquationNumber writes the equation number of every node DOF
func (o *Outputter) OutputEquationNumber(d *domain.Domain) {
	o.printf(" EQUATION NUMBERS\n\n")
	o.printf("   NODE NUMBER   DEGREES OF FREEDOM\n")
	o.printf("        N           X    Y    Z\n")
	for _, n := range d.Nodes {
		o.printf("%9d       ", n.ID)
		for dof := 0; dof < mesh.NDF; dof++ {
			eq, _ := n.Equation(dof)
			o.printf("%5d", eq)
		}
		o.printf("\n")
	}
	o.printf("\n")
}

// OutputElementInfo writes the material sets and connectivity of every group
func (o *Outputter) OutputElementInfo(d *domain.Domain) {
	o.printf("E L E M E N T   G R O U P   D A T A\n\n")
	for i, g := range d.Groups {
		o.printf(" E L E M E N T   D E F I N I T I O N   (GROUP %d)\n\n", i+1)
		o.printf(" ELEMENT TYPE  . . . . . . . . . . . . .( NPAR(1) ) . . = %5d  (%v)\n", int(g.Type), g.Type)
		o.printf(" NUMBER OF ELEMENTS. . . . . . . . . . .( NPAR(2) ) . . = %5d\n\n", len(g.Elements))
		o.printf(" M A T E R I A L   D E F I N I T I O N\n\n")
		o.printf(" NUMBER OF DIFFERENT SETS OF MATERIAL\n")
		o.printf(" AND CROSS-SECTIONAL  CONSTANTS  . . . .( NPAR(3) ) . . = %5d\n\n", len(g.Materials))
		for _, m := range g.Materials {
			o.printf("   %s\n", m)
		}
		o.printf("\n ELEMENT     NODES          MATERIAL\n")
		for _, e := range g.Elements {
			o.printf("%8d", e.ID())
			for _, n := range e.Nodes() {
				o.printf("%7d", n.ID)
			}
			o.printf("%12d\n", e.Material().ID())
		}
		o.printf("\n")
	}
}

// OutputLoadInfo writes the concentrated loads of every load case
func (o *Outputter) OutputLoadInfo(d *domain.Domain) {
	o.printf("L O A D   C A S E   D A T A\n\n")
	for _, lc := range d.LoadCases {
		o.printf("     LOAD CASE NUMBER . . . . . . . = %6d\n", lc.ID)
		o.printf("     NUMBER OF CONCENTRATED LOADS . = %6d\n\n", len(lc.Loads))
		o.printf("    NODE       DIRECTION      LOAD\n")
		o.printf("   NUMBER                   MAGNITUDE\n")
		for _, l := range lc.Loads {
			o.printf("%9d%13d%19.6e\n", l.Node, l.DOF, l.Magnitude)
		}
		o.printf("\n")
	}
}

// OutputTotalSystemData writes equation count and skyline storage figures
func (o *Outputter) OutputTotalSystemData(d *domain.Domain) {
	o.printf(" TOTAL SYSTEM DATA\n\n")
	o.printf("     NUMBER OF EQUATIONS . . . . . . . . . . . . . .(NEQ) = %9d\n", d.NEQ())
	if p := d.Profile(); p != nil {
		st := p.Stats()
		o.printf("     NUMBER OF MATRIX ELEMENTS . . . . . . . . . . .(NWK) = %9d\n", st.StoredEntries)
		o.printf("     MAXIMUM HALF BANDWIDTH  . . . . . . . . . . . .(MK ) = %9d\n", st.MaxHalfBandwidth)
		o.printf("     MEAN HALF BANDWIDTH . . . . . . . . . . . . . .(MM ) = %9.2f\n", st.MeanHalfBandwidth)
	}
	o.printf("\n")
}

// OutputNodalDisplacement writes the displacements of a solved load case
func (o *Outputter) OutputNodalDisplacement(d *domain.Domain, s *domain.Solution) error {
	o.printf(" LOAD CASE %5d\n\n", s.LoadCase)
	o.printf(" D I S P L A C E M E N T S\n\n")
	o.printf("  NODE           X-DISPLACEMENT    Y-DISPLACEMENT    Z-DISPLACEMENT\n")
	for _, n := range d.Nodes {
		u, err := s.NodalDisplacement(n)
		if err != nil {
			return err
		}
		o.printf("%5d        %18.6e%18.6e%18.6e\n", n.ID, u[0], u[1], u[2])
	}
	o.printf("\n")
	return o.err
}

// OutputElementStress writes the stresses of every element that can recover them
func (o *Outputter) OutputElementStress(d *domain.Domain, s *domain.Solution) error {
	u, err := s.Displacement()
	if err != nil {
		return err
	}
	o.printf(" S T R E S S  C A L C U L A T I O N S  F O R  E A C H  E L E M E N T  G R O U P\n\n")
	for i, g := range d.Groups {
		o.printf("  ELEMENT GROUP %d (%v)\n\n", i+1, g.Type)
		o.printf("  ELEMENT         STRESS\n  NUMBER\n")
		for _, e := range g.Elements {
			se, ok := e.(element.StressElement)
			if !ok {
				continue
			}
			stress, err := se.Stress(u)
			if err != nil {
				return fmt.Errorf("element group %d: %w", i+1, err)
			}
			o.printf("%7d        %13.6e\n", e.ID(), stress)
		}
		o.printf("\n")
	}
	return o.err
}

// Report writes the full report: input echo, equation numbers, system data and
// the results of every solution
func (o *Outputter) Report(d *domain.Domain, solutions []*domain.Solution, now time.Time) error {
	o.OutputHeading(d, now)
	o.OutputControlInfo(d)
	o.OutputNodeInfo(d)
	if d.Phase() >= domain.Numbered {
		o.OutputEquationNumber(d)
	}
	o.OutputElementInfo(d)
	o.OutputLoadInfo(d)
	if d.Mode == domain.DataCheck {
		o.printf(" *** DATA CHECK ONLY: NO SOLUTION ***\n")
		return o.err
	}
	o.OutputTotalSystemData(d)
	for _, s := range solutions {
		if err := o.OutputNodalDisplacement(d, s); err != nil {
			return err
		}
		if err := o.OutputElementStress(d, s); err != nil {
			return err
		}
	}
	return o.err
}
