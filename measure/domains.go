package measure

import (
	"github.com/katalvlaran/isinglat/lattice"
)

// Domains finds the connected regions of equal spin, linking sites through
// the bonds of the given shell. Each domain is a slice of flat site indices
// in BFS order; domains appear in order of their lowest site index.
//
// Time:   O(N·d).
// Memory: O(N) for the seen flags and the output.
func Domains(t *lattice.Table, l *lattice.Lattice, shell int) ([][]int, error) {
	if err := t.Matches(l); err != nil {
		return nil, err
	}
	spins := l.Spins()
	seen := make([]bool, len(spins))
	var comps [][]int

	for i0 := range spins {
		if seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			idx, sh := t.Neighbors(u)
			for n, j := range idx {
				v := int(j)
				if int(sh[n]) != shell || seen[v] || spins[v] != spins[u] {
					continue
				}
				seen[v] = true
				queue = append(queue, v)
			}
		}
		comps = append(comps, queue)
	}
	return comps, nil
}

// LargestDomain returns the size of the largest domain, 0 for no domains.
func LargestDomain(domains [][]int) int {
	best := 0
	for _, d := range domains {
		if len(d) > best {
			best = len(d)
		}
	}
	return best
}
