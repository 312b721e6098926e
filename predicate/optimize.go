package predicate

import "sort"

// Optimize walks the tree top-down and, for every And/Or node, sorts its
// children ascending by cached cost so cheap eliminators run first and
// AND/OR evaluation short-circuits sooner in the rows phase. It does not
// fold redundant structure (nested And/Or, single-child nodes); it is
// idempotent and does not change the predicate's semantics, only its
// evaluation order.
func Optimize(p *Predicate) *Predicate {
	switch p.kind {
	case KindAnd, KindOr:
		sorted := make([]*Predicate, len(p.children))
		copy(sorted, p.children)
		for i, c := range sorted {
			sorted[i] = Optimize(c)
		}
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].cost < sorted[j].cost
		})
		return &Predicate{kind: p.kind, children: sorted, cost: p.cost}
	case KindNot:
		return &Predicate{kind: KindNot, child: Optimize(p.child), cost: p.cost}
	default:
		return p
	}
}
