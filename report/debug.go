package report

import (
	"github.com/notargets/SkylineFEM/domain"
	"gonum.org/v1/gonum/mat"
)

// PrintColumnHeights writes the column height of every equation, ten per row
func (o *Outputter) PrintColumnHeights(d *domain.Domain) {
	o.printf("*** Column Heights ***\n")
	printInts(o, d.ColumnHeights())
}

// PrintDiagonalAddress writes the 1-based diagonal address table
func (o *Outputter) PrintDiagonalAddress(d *domain.Domain) {
	o.printf("*** Diagonal Address ***\n")
	printInts(o, d.DiagonalAddress())
}

func printInts(o *Outputter, v []int) {
	for i, x := range v {
		o.printf("%6d", x)
		if (i+1)%10 == 0 {
			o.printf("\n")
		}
	}
	o.printf("\n\n")
}

// PrintStiffnessMatrix writes the packed skyline array and the full matrix it
// represents. After factorization the factors are printed instead.
func (o *Outputter) PrintStiffnessMatrix(d *domain.Domain) {
	m := d.StiffnessMatrix()
	if m == nil {
		o.printf("*** Stiffness matrix not allocated ***\n\n")
		return
	}
	o.printf("*** Banded stiffness matrix ***\n")
	for i, v := range m.Values() {
		o.printf("%14.6e", v)
		if (i+1)%6 == 0 {
			o.printf("\n")
		}
	}
	o.printf("\n\n")
	if d.NEQ() == 0 {
		return
	}
	o.printf("*** Full stiffness matrix ***\n")
	o.printf("%11.4e\n\n", mat.Formatted(m.Dense(), mat.Squeeze()))
}
