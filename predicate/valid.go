package predicate

import "github.com/solidcoredata/columnix/column"

type rowGroupView interface {
	ColumnCount() int
	ColumnType(i int) column.Type
}

// Valid recursively checks that every leaf's column reference is in range
// and that its operator/literal type matches the column's type.
func Valid(p *Predicate, rg rowGroupView) bool {
	switch p.kind {
	case KindTrue:
		return true
	case KindNull:
		return inRange(p.column, rg)
	case KindCmp:
		if !inRange(p.column, rg) {
			return false
		}
		return rg.ColumnType(p.column) == p.lit.typ
	case KindStrContains:
		if !inRange(p.column, rg) {
			return false
		}
		return rg.ColumnType(p.column) == column.TypeStr
	case KindCustom:
		if !inRange(p.column, rg) {
			return false
		}
		return rg.ColumnType(p.column) == p.customType
	case KindNot:
		return Valid(p.child, rg)
	case KindAnd, KindOr:
		for _, c := range p.children {
			if !Valid(c, rg) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func inRange(col int, rg rowGroupView) bool {
	return col >= 0 && col < rg.ColumnCount()
}
