package render

import (
	"cmp"
	"slices"
)

// Depthed is a draw item with a painter's depth, smaller is painted first
type Depthed interface {
	DrawDepth() float64
}

// DepthSort orders items ascending by depth so far items are painted first, stable on ties
func DepthSort[T Depthed](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(a.DrawDepth(), b.DrawDepth())
	})
}
