package probgrid

import "sort"

// TopK returns the positions of the k highest-valued cells, highest first.
// Equal values rank by row-major flattened index, lower index first, so the
// ordering is deterministic on any grid shape. k is clamped to the cell count.
func (g *Grid) TopK(k int) []Point {
	if k <= 0 {
		return nil
	}
	if k > len(g.cells) {
		k = len(g.cells)
	}

	idx := make([]int, len(g.cells))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if g.cells[ia] != g.cells[ib] {
			return g.cells[ia] > g.cells[ib]
		}
		return ia < ib
	})

	out := make([]Point, k)
	for i := 0; i < k; i++ {
		out[i] = Point{Row: idx[i] / g.cfg.Cols, Col: idx[i] % g.cfg.Cols}
	}
	return out
}
