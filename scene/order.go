package scene

import "sort"

// PaintOrder returns parent's children sorted by (ZIndex, insertion index),
// matching spec §4.7's "sorted per-level by (z_index, insertion order)".
// The sort is stable, so equal z-index ties keep Children's original order.
func (a *Arena) PaintOrder(parent NodeId) []NodeId {
	n := a.Get(parent)
	if n == nil {
		return nil
	}
	order := append([]NodeId(nil), n.Children...)
	zIndex := make(map[NodeId]int, len(order))
	for _, c := range order {
		if cn := a.Get(c); cn != nil {
			zIndex[c] = cn.ZIndex
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return zIndex[order[i]] < zIndex[order[j]]
	})
	return order
}
