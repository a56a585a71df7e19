package partitions

import (
	"fmt"
)

// PartitionBuilder colors elements into conflict-free partitions
type PartitionBuilder struct {
	// Mesh connectivity
	Mesh *MeshConnectivity

	// Coloring parameters
	MaxPartitionSize int // Upper bound on elements per partition, 0 = unbounded
	Strategy         PartitionStrategy
}

// MeshConnectivity provides the element to equation map needed for coloring
type MeshConnectivity struct {
	NumElements      int
	NEQ              int
	LocationMatrices [][]int // Per element, global equation of each local DOF (0 = constrained)
}

// PartitionStrategy defines how elements are assigned to colors
type PartitionStrategy int

const (
	// GreedyFirstFit puts each element, in order, into the lowest color it
	// does not conflict with
	GreedyFirstFit PartitionStrategy = iota
	// LargestFirst colors elements with the most free DOFs first
	LargestFirst
)

// BuildPartitions creates a partition layout from mesh connectivity
func (pb *PartitionBuilder) BuildPartitions() (*PartitionLayout, error) {
	if pb.Mesh == nil {
		return nil, fmt.Errorf("no mesh connectivity")
	}
	if len(pb.Mesh.LocationMatrices) != pb.Mesh.NumElements {
		return nil, fmt.Errorf("%d location matrices for %d elements",
			len(pb.Mesh.LocationMatrices), pb.Mesh.NumElements)
	}

	// Color the elements
	eToP, numPartitions, err := pb.partitionElements()
	if err != nil {
		return nil, err
	}

	// Create partition structures
	partitions := pb.createPartitions(eToP, numPartitions)

	layout := &PartitionLayout{
		Partitions:    partitions,
		KpartMax:      pb.calculateKpartMax(partitions),
		TotalElements: pb.Mesh.NumElements,
		NumPartitions: numPartitions,
		EToP:          eToP,
	}

	// Validate the layout
	if err := layout.ValidateLayout(pb.Mesh); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}

	return layout, nil
}

// elementOrder returns the order in which elements are colored
func (pb *PartitionBuilder) elementOrder() []int {
	order := make([]int, pb.Mesh.NumElements)
	for i := range order {
		order[i] = i
	}
	if pb.Strategy != LargestFirst {
		return order
	}
	free := make([]int, pb.Mesh.NumElements)
	for e, lm := range pb.Mesh.LocationMatrices {
		for _, eq := range lm {
			if eq != 0 {
				free[e]++
			}
		}
	}
	// Stable insertion sort keeps ties in element order
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && free[order[j]] > free[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

// partitionElements assigns every element the first color with none of its
// equations taken
func (pb *PartitionBuilder) partitionElements() (eToP []int, numPartitions int, err error) {
	eToP = make([]int, pb.Mesh.NumElements)
	var (
		taken [][]bool // [color][equation]
		count []int    // elements per color
	)
	for _, elem := range pb.elementOrder() {
		lm := pb.Mesh.LocationMatrices[elem]
		for _, eq := range lm {
			if eq < 0 || eq > pb.Mesh.NEQ {
				return nil, 0, fmt.Errorf("element %d: equation %d outside 1..%d", elem, eq, pb.Mesh.NEQ)
			}
		}
		color := 0
		for ; color < len(taken); color++ {
			if pb.MaxPartitionSize > 0 && count[color] >= pb.MaxPartitionSize {
				continue
			}
			if !conflicts(taken[color], lm) {
				break
			}
		}
		if color == len(taken) {
			taken = append(taken, make([]bool, pb.Mesh.NEQ+1))
			count = append(count, 0)
		}
		for _, eq := range lm {
			if eq != 0 {
				taken[color][eq] = true
			}
		}
		count[color]++
		eToP[elem] = color
	}
	numPartitions = len(taken)
	return
}

func conflicts(taken []bool, lm []int) bool {
	for _, eq := range lm {
		if eq != 0 && taken[eq] {
			return true
		}
	}
	return false
}

// createPartitions builds partition structures from element assignments
func (pb *PartitionBuilder) createPartitions(eToP []int, numPartitions int) []Partition {
	partitions := make([]Partition, numPartitions)

	// Initialize partitions
	for i := range partitions {
		partitions[i] = Partition{
			ID:       i,
			Elements: make([]int, 0),
		}
	}

	// Assign elements to partitions in element order
	for elem, part := range eToP {
		partitions[part].Elements = append(partitions[part].Elements, elem)
		partitions[part].NumElements++
		for _, eq := range pb.Mesh.LocationMatrices[elem] {
			if eq != 0 {
				partitions[part].Equations++
			}
		}
	}

	return partitions
}

// calculateKpartMax finds maximum elements across all partitions
func (pb *PartitionBuilder) calculateKpartMax(partitions []Partition) int {
	kpartMax := 0
	for _, p := range partitions {
		if p.NumElements > kpartMax {
			kpartMax = p.NumElements
		}
	}
	return kpartMax
}
