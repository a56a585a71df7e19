package report

import (
	"fmt"
	"image/color"

	"github.com/notargets/SkylineFEM/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotDeformedShape draws the x-y projection of the undeformed mesh and of the
// mesh displaced by scale times the solution of s. The image format follows
// the extension of filename (png, svg, pdf, ...).
func PlotDeformedShape(d *domain.Domain, s *domain.Solution, scale float64, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: load case %d (scale %g)", d.Title, s.LoadCase, scale)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	var undeformedThumb, deformedThumb plot.Thumbnailer
	for _, e := range d.Elements() {
		nodes := e.Nodes()
		before := make(plotter.XYs, len(nodes))
		after := make(plotter.XYs, len(nodes))
		for i, n := range nodes {
			u, err := s.NodalDisplacement(n)
			if err != nil {
				return err
			}
			before[i] = plotter.XY{X: n.XYZ[0], Y: n.XYZ[1]}
			after[i] = plotter.XY{X: n.XYZ[0] + scale*u[0], Y: n.XYZ[1] + scale*u[1]}
		}

		l0, err := plotter.NewLine(before)
		if err != nil {
			return fmt.Errorf("element %d: %w", e.ID(), err)
		}
		l0.LineStyle.Color = color.Gray{Y: 150}
		l0.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

		l1, err := plotter.NewLine(after)
		if err != nil {
			return fmt.Errorf("element %d: %w", e.ID(), err)
		}
		l1.LineStyle.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
		l1.LineStyle.Width = vg.Points(1.5)

		p.Add(l0, l1)
		undeformedThumb, deformedThumb = l0, l1
	}
	if undeformedThumb != nil {
		p.Legend.Add("undeformed", undeformedThumb)
		p.Legend.Add("deformed", deformedThumb)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, filename); err != nil {
		return fmt.Errorf("saving plot %s: %w", filename, err)
	}
	return nil
}
