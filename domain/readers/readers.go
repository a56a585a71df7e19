package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/SkylineFEM/domain"
	"github.com/notargets/SkylineFEM/element"
	"github.com/notargets/SkylineFEM/element/library"
	"github.com/notargets/SkylineFEM/mesh"
)

// ReadInputFile reads a FEM++ input data file
func ReadInputFile(filename string) (*domain.Domain, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	d, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

// lineReader hands out non-blank lines split into fields, tracking line numbers
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func (lr *lineReader) next(what string) ([]string, error) {
	for lr.scanner.Scan() {
		lr.line++
		text := strings.TrimSpace(lr.scanner.Text())
		if text == "" {
			continue
		}
		return strings.Fields(text), nil
	}
	if err := lr.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unexpected end of file reading %s", what)
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", lr.line, fmt.Sprintf(format, args...))
}

// ints parses the leading n fields as integers
func (lr *lineReader) ints(fields []string, n int, what string) ([]int, error) {
	if len(fields) < n {
		return nil, lr.errorf("%s: expected %d values, got %d", what, n, len(fields))
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, lr.errorf("%s: %v", what, err)
		}
		out[i] = v
	}
	return out, nil
}

// floats parses the n fields after offset as floating point values
func (lr *lineReader) floats(fields []string, offset, n int, what string) ([]float64, error) {
	if len(fields) < offset+n {
		return nil, lr.errorf("%s: expected %d values, got %d", what, offset+n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[offset+i], 64)
		if err != nil {
			return nil, lr.errorf("%s: %v", what, err)
		}
		out[i] = v
	}
	return out, nil
}

// Read parses the FEM++ input format:
//
//	Title line
//	NUMNP NUMEG NLCASE MODEX
//	N BCx BCy BCz X Y Z              NUMNP lines
//	LL NLOAD                         per load case
//	NODE DOF LOAD                    NLOAD lines
//	ELEMTYPE NUME NUMMAT             per element group
//	MSET props...                    NUMMAT lines
//	ELEM N1 N2 ... MSET              NUME lines
func Read(r io.Reader) (*domain.Domain, error) {
	lr := &lineReader{scanner: bufio.NewScanner(r)}

	// Heading
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty input")
	}
	lr.line++
	title := strings.TrimSpace(lr.scanner.Text())

	// Control line
	fields, err := lr.next("control line")
	if err != nil {
		return nil, err
	}
	ctl, err := lr.ints(fields, 4, "control line")
	if err != nil {
		return nil, err
	}
	numnp, numeg, nlcase, modex := ctl[0], ctl[1], ctl[2], ctl[3]
	if numnp < 0 || numeg < 0 || nlcase < 0 {
		return nil, lr.errorf("negative count in control line")
	}
	if modex != 0 && modex != 1 {
		return nil, lr.errorf("MODEX must be 0 (data check) or 1 (execution), got %d", modex)
	}

	nodes, err := readNodes(lr, numnp)
	if err != nil {
		return nil, err
	}
	loadCases, err := readLoadCases(lr, nlcase)
	if err != nil {
		return nil, err
	}
	groups, err := readElementGroups(lr, numeg, nodes)
	if err != nil {
		return nil, err
	}

	d, err := domain.NewDomain(title, nodes, groups, loadCases)
	if err != nil {
		return nil, err
	}
	if modex == 0 {
		d.Mode = domain.DataCheck
	}
	return d, nil
}

func readNodes(lr *lineReader, numnp int) ([]*mesh.Node, error) {
	nodes := make([]*mesh.Node, numnp)
	for i := 0; i < numnp; i++ {
		fields, err := lr.next("nodal point data")
		if err != nil {
			return nil, err
		}
		head, err := lr.ints(fields, 1+mesh.NDF, "nodal point data")
		if err != nil {
			return nil, err
		}
		if head[0] != i+1 {
			return nil, lr.errorf("nodes must be input in order: expected %d, got %d", i+1, head[0])
		}
		xyz, err := lr.floats(fields, 1+mesh.NDF, 3, "nodal coordinates")
		if err != nil {
			return nil, err
		}
		var bc [mesh.NDF]int
		copy(bc[:], head[1:])
		nodes[i] = mesh.NewNode(head[0], [3]float64{xyz[0], xyz[1], xyz[2]}, bc)
	}
	return nodes, nil
}

func readLoadCases(lr *lineReader, nlcase int) ([]*mesh.LoadCase, error) {
	cases := make([]*mesh.LoadCase, nlcase)
	for lc := 0; lc < nlcase; lc++ {
		fields, err := lr.next("load case header")
		if err != nil {
			return nil, err
		}
		head, err := lr.ints(fields, 2, "load case header")
		if err != nil {
			return nil, err
		}
		if head[0] != lc+1 {
			return nil, lr.errorf("load cases must be input in order: expected %d, got %d", lc+1, head[0])
		}
		if head[1] < 0 {
			return nil, lr.errorf("load case %d: negative number of loads %d", head[0], head[1])
		}
		c := &mesh.LoadCase{ID: head[0], Loads: make([]mesh.Load, 0, head[1])}
		for i := 0; i < head[1]; i++ {
			fields, err := lr.next("load data")
			if err != nil {
				return nil, err
			}
			nd, err := lr.ints(fields, 2, "load data")
			if err != nil {
				return nil, err
			}
			v, err := lr.floats(fields, 2, 1, "load magnitude")
			if err != nil {
				return nil, err
			}
			c.Loads = append(c.Loads, mesh.Load{Node: nd[0], DOF: nd[1], Magnitude: v[0]})
		}
		cases[lc] = c
	}
	return cases, nil
}

func readElementGroups(lr *lineReader, numeg int, nodes []*mesh.Node) ([]*element.Group, error) {
	groups := make([]*element.Group, numeg)
	for eg := 0; eg < numeg; eg++ {
		fields, err := lr.next("element group header")
		if err != nil {
			return nil, err
		}
		if len(fields) < 3 {
			return nil, lr.errorf("element group header: expected ELEMTYPE NUME NUMMAT")
		}
		t, err := element.ParseType(fields[0])
		if err != nil {
			return nil, lr.errorf("%v", err)
		}
		counts, err := lr.ints(fields[1:], 2, "element group header")
		if err != nil {
			return nil, err
		}
		nume, nummat := counts[0], counts[1]
		if nume < 0 || nummat < 0 {
			return nil, lr.errorf("element group %d: negative count (NUME=%d, NUMMAT=%d)", eg+1, nume, nummat)
		}

		g := element.NewGroup(t)
		numProps, err := library.MaterialProperties(t)
		if err != nil {
			return nil, lr.errorf("%v", err)
		}
		for m := 0; m < nummat; m++ {
			fields, err := lr.next("material data")
			if err != nil {
				return nil, err
			}
			set, err := lr.ints(fields, 1, "material set number")
			if err != nil {
				return nil, err
			}
			if set[0] != m+1 {
				return nil, lr.errorf("material sets must be input in order: expected %d, got %d", m+1, set[0])
			}
			props, err := lr.floats(fields, 1, numProps, "material properties")
			if err != nil {
				return nil, err
			}
			mat, err := library.NewMaterial(t, set[0], props)
			if err != nil {
				return nil, lr.errorf("%v", err)
			}
			g.Materials = append(g.Materials, mat)
		}

		nen, err := library.NodeCount(t)
		if err != nil {
			return nil, lr.errorf("%v", err)
		}
		for e := 0; e < nume; e++ {
			fields, err := lr.next("element data")
			if err != nil {
				return nil, err
			}
			vals, err := lr.ints(fields, nen+2, "element data")
			if err != nil {
				return nil, err
			}
			if vals[0] != e+1 {
				return nil, lr.errorf("elements must be input in order: expected %d, got %d", e+1, vals[0])
			}
			enodes := make([]*mesh.Node, nen)
			for k := 0; k < nen; k++ {
				n := vals[1+k]
				if n < 1 || n > len(nodes) {
					return nil, lr.errorf("element %d: node %d: %v", vals[0], n, mesh.ErrNodeNotFound)
				}
				enodes[k] = nodes[n-1]
			}
			set := vals[nen+1]
			if set < 1 || set > len(g.Materials) {
				return nil, lr.errorf("element %d: material set %d undefined", vals[0], set)
			}
			el, err := library.NewElement(t, vals[0], enodes, g.Materials[set-1])
			if err != nil {
				return nil, lr.errorf("%v", err)
			}
			g.Elements = append(g.Elements, el)
		}
		groups[eg] = g
	}
	return groups, nil
}
