package canvas

import (
	"math"
	"sort"
)

// rowTolerance is the vertical band within which two nodes count as
// the same row. Canvas drags leave sub-pixel y drift; without the band
// a strict (y, x) sort shuffles visually-aligned rows.
const rowTolerance = 50

// SortNodesByPosition orders nodes into reading order: top to bottom,
// with nodes whose y differ by at most the tolerance band treated as
// one row and ordered left to right. The band is a comparator rule,
// not a second sort key, and the sort is stable.
func SortNodesByPosition(nodes []Node) []Node {
	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if math.Abs(a.Y-b.Y) <= rowTolerance {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return sorted
}
