package partitions

import (
	"fmt"
)

// Partition is a set of elements that can be assembled concurrently: no two
// of its elements share a global equation, so their scatter-adds never touch
// the same address of the profile array
type Partition struct {
	// Unique identifier for this partition (the color)
	ID int

	// Element membership
	Elements    []int // Global element indices in this partition
	NumElements int   // Number of elements
	Equations   int   // Distinct equations touched by the partition
}

// PartitionLayout manages the complete element coloring
type PartitionLayout struct {
	// All partitions in assembly order
	Partitions []Partition

	// Global sizing information
	KpartMax      int // max(NumElements) across all partitions
	TotalElements int // Sum of all elements across partitions
	NumPartitions int // Total number of partitions

	// Element to partition mapping
	EToP []int // Length TotalElements: element k belongs to partition EToP[k]
}

// GetPartition returns the partition containing element k
func (pl *PartitionLayout) GetPartition(elementID int) int {
	if elementID < 0 || elementID >= len(pl.EToP) {
		return -1
	}
	return pl.EToP[elementID]
}

// ValidateLayout checks partition consistency and that no two elements of one
// partition share an equation
func (pl *PartitionLayout) ValidateLayout(mesh *MeshConnectivity) error {
	actualMax := 0
	total := 0
	for _, p := range pl.Partitions {
		if p.NumElements > actualMax {
			actualMax = p.NumElements
		}
		if p.NumElements != len(p.Elements) {
			return fmt.Errorf("partition %d: NumElements %d != len(Elements) %d",
				p.ID, p.NumElements, len(p.Elements))
		}
		total += p.NumElements
	}
	if actualMax != pl.KpartMax {
		return fmt.Errorf("computed KpartMax %d != stored KpartMax %d",
			actualMax, pl.KpartMax)
	}
	if total != pl.TotalElements {
		return fmt.Errorf("partitions hold %d elements, expected %d", total, pl.TotalElements)
	}
	if mesh == nil {
		return nil
	}
	owner := make([]int, mesh.NEQ+1)
	for _, p := range pl.Partitions {
		for i := range owner {
			owner[i] = -1
		}
		for _, elem := range p.Elements {
			if pl.EToP[elem] != p.ID {
				return fmt.Errorf("element %d listed in partition %d but mapped to %d", elem, p.ID, pl.EToP[elem])
			}
			for _, eq := range mesh.LocationMatrices[elem] {
				if eq == 0 {
					continue
				}
				if owner[eq] >= 0 && owner[eq] != elem {
					return fmt.Errorf("partition %d: elements %d and %d share equation %d",
						p.ID, owner[eq], elem, eq)
				}
				owner[eq] = elem
			}
		}
	}
	return nil
}

// Blocks splits the elements of partition p into at most n consecutive blocks
// of near equal size, one per worker
func (pl *PartitionLayout) Blocks(partitionID, n int) [][]int {
	if partitionID < 0 || partitionID >= len(pl.Partitions) {
		return nil
	}
	elems := pl.Partitions[partitionID].Elements
	if len(elems) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > len(elems) {
		n = len(elems)
	}
	size := (len(elems) + n - 1) / n
	blocks := make([][]int, 0, n)
	for start := 0; start < len(elems); start += size {
		end := start + size
		if end > len(elems) {
			end = len(elems)
		}
		blocks = append(blocks, elems[start:end])
	}
	return blocks
}
