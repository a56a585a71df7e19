package domain

import (
	"fmt"

	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/partitions"
	"golang.org/x/sync/errgroup"
)

// AssembleStiffnessMatrix scatter-adds every element stiffness matrix into the
// packed global matrix. With Workers > 1 the elements are colored so that no
// two elements assembled at the same time share an equation; colors are
// processed one after another.
func (d *Domain) AssembleStiffnessMatrix() error {
	if err := d.require(Allocated, "stiffness assembly"); err != nil {
		return err
	}
	var err error
	if d.Workers > 1 && len(d.elements) > 1 {
		err = d.assembleParallel()
	} else {
		order := make([]int, len(d.elements))
		for i := range order {
			order[i] = i
		}
		err = d.assembleElements(order)
	}
	if err != nil {
		// Drop the partial sums so a later call starts from zero
		d.stiffness.Reset()
		return err
	}
	d.phase = Assembled
	d.logf("Stiffness matrix assembled from %d elements", len(d.elements))
	return nil
}

// assembleElements adds the elements at the given indices, in that order
func (d *Domain) assembleElements(indices []int) error {
	for _, i := range indices {
		if err := d.assembleElement(d.elements[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Domain) assembleElement(e element.Element) error {
	ke, err := e.ComputeLocalStiffness()
	if err != nil {
		return fmt.Errorf("%v element %d: %w", e.Type(), e.ID(), err)
	}
	lm := element.LocationMatrix(e)
	if n := ke.SymmetricDim(); n != len(lm) {
		return fmt.Errorf("%v element %d: stiffness order %d, location matrix length %d",
			e.Type(), e.ID(), n, len(lm))
	}
	if err := d.stiffness.AddElement(lm, element.PackColumns(ke)); err != nil {
		return fmt.Errorf("%v element %d: %w", e.Type(), e.ID(), err)
	}
	return nil
}

// ColorElements builds the conflict-free element coloring used by parallel
// assembly
func (d *Domain) ColorElements() (*partitions.PartitionLayout, error) {
	if d.phase < Numbered {
		return nil, fmt.Errorf("element coloring needs equation numbers: %w", ErrPhase)
	}
	lms := make([][]int, len(d.elements))
	for i, e := range d.elements {
		lms[i] = element.LocationMatrix(e)
	}
	pb := &partitions.PartitionBuilder{
		Mesh: &partitions.MeshConnectivity{
			NumElements:      len(d.elements),
			NEQ:              d.neq,
			LocationMatrices: lms,
		},
		Strategy: partitions.LargestFirst,
	}
	return pb.BuildPartitions()
}

func (d *Domain) assembleParallel() error {
	layout, err := d.ColorElements()
	if err != nil {
		return err
	}
	d.layout = layout
	d.logf("Parallel assembly: %d workers, %d colors, largest color %d elements",
		d.Workers, layout.NumPartitions, layout.KpartMax)

	for p := range layout.Partitions {
		var g errgroup.Group
		g.SetLimit(d.Workers)
		for _, block := range layout.Blocks(p, d.Workers) {
			g.Go(func() error {
				return d.assembleElements(block)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}
