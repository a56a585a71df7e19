package domain

import (
	"testing"

	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/element/library"
	"github.com/notargets/SkylineFEM/mesh"
	"github.com/stretchr/testify/require"
)

// singleBar returns a bar of length L along x, fixed at node 1, free only in x
// at node 2, loaded by F in x
func singleBar(t *testing.T, E, A, L, F float64) *Domain {
	t.Helper()
	nodes := []*mesh.Node{
		mesh.NewNode(1, [3]float64{0, 0, 0}, [mesh.NDF]int{1, 1, 1}),
		mesh.NewNode(2, [3]float64{L, 0, 0}, [mesh.NDF]int{0, 1, 1}),
	}
	mat := &library.BarMaterial{Set: 1, E: E, Area: A}
	g := element.NewGroup(element.Bar)
	g.Materials = []element.Material{mat}
	g.Elements = []element.Element{library.NewBar(1, nodes[0], nodes[1], mat)}
	lc := &mesh.LoadCase{ID: 1, Loads: []mesh.Load{{Node: 2, DOF: 1, Magnitude: F}}}

	d, err := NewDomain("single bar", nodes, []*element.Group{g}, []*mesh.LoadCase{lc})
	require.NoError(t, err)
	return d
}

// gridTruss returns a planar nx×ny braced truss in the x-y plane. The left
// column is pinned, z is fixed everywhere. Load case 1 pulls the right column
// down, load case 2 doubles it, load case 3 pushes along x.
func gridTruss(t *testing.T, nx, ny int) *Domain {
	t.Helper()
	id := func(i, j int) int { return j*nx + i }
	nodes := make([]*mesh.Node, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			bc := [mesh.NDF]int{0, 0, 1}
			if i == 0 {
				bc = [mesh.NDF]int{1, 1, 1}
			}
			nodes[id(i, j)] = mesh.NewNode(id(i, j)+1, [3]float64{float64(i), float64(j), 0}, bc)
		}
	}

	steel := &library.BarMaterial{Set: 1, E: 2.1e5, Area: 1.5}
	brace := &library.BarMaterial{Set: 2, E: 2.1e5, Area: 0.8}
	g := element.NewGroup(element.Bar)
	g.Materials = []element.Material{steel, brace}
	add := func(a, b int, m *library.BarMaterial) {
		g.Elements = append(g.Elements, library.NewBar(len(g.Elements)+1, nodes[a], nodes[b], m))
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if i+1 < nx {
				add(id(i, j), id(i+1, j), steel)
			}
			if j+1 < ny {
				add(id(i, j), id(i, j+1), steel)
			}
			if i+1 < nx && j+1 < ny {
				add(id(i, j), id(i+1, j+1), brace)
				add(id(i+1, j), id(i, j+1), brace)
			}
		}
	}

	// A spring group tying the top right corner to the bottom right corner
	k := &library.SpringMaterial{Set: 1, K: 500}
	sg := element.NewGroup(element.Spring)
	sg.Materials = []element.Material{k}
	sg.Elements = []element.Element{library.NewSpring(1, nodes[id(nx-1, 0)], nodes[id(nx-1, ny-1)], k)}

	var lc1, lc2, lc3 mesh.LoadCase
	lc1.ID, lc2.ID, lc3.ID = 1, 2, 3
	for j := 0; j < ny; j++ {
		n := id(nx-1, j) + 1
		lc1.Loads = append(lc1.Loads, mesh.Load{Node: n, DOF: 2, Magnitude: -10})
		lc2.Loads = append(lc2.Loads, mesh.Load{Node: n, DOF: 2, Magnitude: -20})
		lc3.Loads = append(lc3.Loads, mesh.Load{Node: n, DOF: 1, Magnitude: 5})
	}
	// Load on a fixed DOF is accepted and ignored
	lc3.Loads = append(lc3.Loads, mesh.Load{Node: 1, DOF: 1, Magnitude: 1e9})

	d, err := NewDomain("grid truss", nodes, []*element.Group{g, sg}, []*mesh.LoadCase{&lc1, &lc2, &lc3})
	require.NoError(t, err)
	return d
}

func allocated(t *testing.T, d *Domain) *Domain {
	t.Helper()
	require.NoError(t, d.CalculateEquationNumber())
	require.NoError(t, d.AllocateMatrices())
	return d
}
