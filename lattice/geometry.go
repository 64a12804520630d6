package lattice

import (
	"fmt"
	"sort"
)

// Registered geometry names.
const (
	NameCubic               = "cubic"
	NameKagome              = "kagome"
	NameCenteredRectangular = "centered-rectangular"
	NameP6mm                = "p6mm"
)

var registry = map[string]func() *Geometry{
	NameCubic:               Cubic,
	NameKagome:              Kagome,
	NameCenteredRectangular: CenteredRectangular,
	NameP6mm:                P6mm,
}

// NewGeometry returns the registered geometry called name.
func NewGeometry(name string) (*Geometry, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, wrapf("NewGeometry", ErrUnknownGeometry, "%q", name)
	}
	return ctor(), nil
}

// Geometries lists the registered geometry names in sorted order.
func Geometries() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cubic is simple cubic with a doubled 2×2×2 cell: 8 sublattices, one per
// corner of the doubled cell. Shells: Ja nearest (6), Jb face diagonals (12),
// Jc body diagonals (8).
func Cubic() *Geometry {
	basis := make([][3]int, 0, 8)
	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				basis = append(basis, [3]int{x, y, z})
			}
		}
	}
	var nn, face, body [][3]int
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				switch abs(dx) + abs(dy) + abs(dz) {
				case 1:
					nn = append(nn, [3]int{dx, dy, dz})
				case 2:
					face = append(face, [3]int{dx, dy, dz})
				case 3:
					body = append(body, [3]int{dx, dy, dz})
				}
			}
		}
	}
	return mustGeometry(&Geometry{
		Name:            NameCubic,
		SublatticeShape: []int{2, 2, 2},
		Period:          [3]int{2, 2, 2},
		Basis:           basis,
		Shells: []Shell{
			{Coupling: "Ja", Displacements: nn},
			{Coupling: "Jb", Displacements: face},
			{Coupling: "Jc", Displacements: body},
		},
		Spatial: 3,
	})
}

// Kagome uses half-Bravais units: A=(0,0), B=(1,0), C=(0,1); (1,1) is the
// hexagon center and holds no site.
func Kagome() *Geometry {
	return mustGeometry(&Geometry{
		Name:            NameKagome,
		SublatticeShape: []int{3},
		Period:          [3]int{2, 2, 1},
		Basis:           [][3]int{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Shells: []Shell{
			{Coupling: "Ja", Displacements: symmetric([3]int{1, 0, 0}, [3]int{0, 1, 0}, [3]int{1, -1, 0})},
			{Coupling: "Jb", Displacements: symmetric([3]int{1, 1, 0}, [3]int{2, -1, 0}, [3]int{1, -2, 0})},
		},
		Spatial: 2,
	})
}

// CenteredRectangular places sites on the even-parity points of a half-cell
// grid; the magnetic cell is two conventional cells wide, giving 4 sublattices.
func CenteredRectangular() *Geometry {
	return mustGeometry(&Geometry{
		Name:            NameCenteredRectangular,
		SublatticeShape: []int{4},
		Period:          [3]int{4, 2, 1},
		Basis:           [][3]int{{0, 0, 0}, {1, 1, 0}, {2, 0, 0}, {3, 1, 0}},
		Shells: []Shell{
			{Coupling: "Ja", Displacements: symmetric([3]int{1, 1, 0}, [3]int{1, -1, 0})},
			{Coupling: "Jb", Displacements: symmetric([3]int{2, 0, 0})},
			{Coupling: "Jc", Displacements: symmetric([3]int{0, 2, 0})},
		},
		Spatial: 2,
	})
}

// P6mm stacks three triangular layers, each with a 2×2 in-plane cell. The
// layer index is periodic inside the cell, so the geometry stays planar.
// Sublattice s = layer·4 + q·2 + p sits at (p, q, layer).
func P6mm() *Geometry {
	basis := make([][3]int, 0, 12)
	for layer := 0; layer < 3; layer++ {
		for q := 0; q < 2; q++ {
			for p := 0; p < 2; p++ {
				basis = append(basis, [3]int{p, q, layer})
			}
		}
	}
	return mustGeometry(&Geometry{
		Name:            NameP6mm,
		SublatticeShape: []int{3, 4},
		Period:          [3]int{2, 2, 3},
		Basis:           basis,
		Shells: []Shell{
			{Coupling: "J1", Displacements: symmetric([3]int{1, 0, 0}, [3]int{0, 1, 0}, [3]int{1, -1, 0})},
			{Coupling: "J0", Displacements: symmetric([3]int{0, 0, 1})},
		},
		Spatial: 2,
	})
}

// mustGeometry resolves the bond list of a statically defined geometry.
// It panics on an inconsistent definition; that is a programming error.
func mustGeometry(g *Geometry) *Geometry {
	if err := g.build(); err != nil {
		panic(err)
	}
	return g
}

// build checks the definition and derives bonds[s] for every sublattice.
//
// For basis point b and displacement d the target point is p = b+d. Its cell
// shift is floor(p/Period) and its in-cell position p mod Period; if that
// position is a basis point the bond exists.
func (g *Geometry) build() error {
	n := 1
	for _, d := range g.SublatticeShape {
		n *= d
	}
	if n != len(g.Basis) {
		return fmt.Errorf("lattice: %s: sublattice shape %v has %d sites, basis has %d",
			g.Name, g.SublatticeShape, n, len(g.Basis))
	}
	index := make(map[[3]int]int, len(g.Basis))
	for s, b := range g.Basis {
		for a := 0; a < 3; a++ {
			if b[a] < 0 || b[a] >= g.Period[a] {
				return fmt.Errorf("lattice: %s: basis %v outside period %v", g.Name, b, g.Period)
			}
		}
		if _, dup := index[b]; dup {
			return fmt.Errorf("lattice: %s: duplicate basis point %v", g.Name, b)
		}
		index[b] = s
	}

	g.bonds = make([][]bond, len(g.Basis))
	for s, b := range g.Basis {
		for k, sh := range g.Shells {
			for _, d := range sh.Displacements {
				var cell, pos [3]int
				for a := 0; a < 3; a++ {
					cell[a] = floorDiv(b[a]+d[a], g.Period[a])
					pos[a] = b[a] + d[a] - cell[a]*g.Period[a]
				}
				t, ok := index[pos]
				if !ok {
					continue
				}
				g.bonds[s] = append(g.bonds[s], bond{to: t, cell: cell, shell: k})
			}
		}
	}
	return nil
}

// symmetric returns every vector together with its negation.
func symmetric(vs ...[3]int) [][3]int {
	out := make([][3]int, 0, 2*len(vs))
	for _, v := range vs {
		out = append(out, v, [3]int{-v[0], -v[1], -v[2]})
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// mod returns a mod m in [0, m).
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
