package predicate

import "github.com/solidcoredata/columnix/column"

type indexedRowGroup interface {
	rowGroupView
	ColumnIndex(i int) *column.Index
}

// MatchIndexes evaluates predicate against row group's column indexes only,
// without reading any row data, returning ALL (every row matches), NONE (no
// row matches, a whole-row-group elimination) or UNKNOWN (a row-level scan
// is required).
func MatchIndexes(p *Predicate, rg indexedRowGroup) IndexMatch {
	switch p.kind {
	case KindTrue:
		return MatchAll
	case KindNull:
		// No writer path ever produces nulls in this core; a null check is
		// therefore always false for every row, never fully absent rows.
		return MatchNone
	case KindCmp:
		return matchIndexesCmp(p, rg.ColumnIndex(p.column))
	case KindStrContains:
		return MatchUnknown
	case KindCustom:
		if p.customIdxFn == nil {
			return MatchUnknown
		}
		return p.customIdxFn(p.customType, rg.ColumnIndex(p.column), p.customData)
	case KindNot:
		switch MatchIndexes(p.child, rg) {
		case MatchAll:
			return MatchNone
		case MatchNone:
			return MatchAll
		default:
			return MatchUnknown
		}
	case KindAnd:
		allAll := true
		for _, c := range p.children {
			switch MatchIndexes(c, rg) {
			case MatchNone:
				return MatchNone
			case MatchUnknown:
				allAll = false
			}
		}
		if allAll {
			return MatchAll
		}
		return MatchUnknown
	case KindOr:
		allNone := true
		for _, c := range p.children {
			switch MatchIndexes(c, rg) {
			case MatchAll:
				return MatchAll
			case MatchUnknown:
				allNone = false
			}
		}
		if allNone {
			return MatchNone
		}
		return MatchUnknown
	default:
		return MatchUnknown
	}
}

func matchIndexesCmp(p *Predicate, idx *column.Index) IndexMatch {
	switch p.lit.typ {
	case column.TypeI32:
		return matchIndexesOrdered(p.op, p.lit.i32, idx.MinI32, idx.MaxI32)
	case column.TypeI64:
		return matchIndexesOrdered(p.op, p.lit.i64, idx.MinI64, idx.MaxI64)
	case column.TypeF32:
		return matchIndexesOrdered(p.op, p.lit.f32, idx.MinF32, idx.MaxF32)
	case column.TypeF64:
		return matchIndexesOrdered(p.op, p.lit.f64, idx.MinF64, idx.MaxF64)
	case column.TypeStr:
		// The bloom filter and min/max bounds hold the exact bytes appended,
		// so they only decide case-sensitive comparisons.
		if !p.caseSensitive {
			return MatchUnknown
		}
		if p.op == OpEq && !idx.MayContainStr(p.lit.str) {
			return MatchNone
		}
		return matchIndexesOrdered(p.op, p.lit.str, idx.MinStr, idx.MaxStr)
	case column.TypeBit:
		return matchIndexesBit(p.lit.bit, idx)
	default:
		return MatchUnknown
	}
}

type ordered interface {
	~int32 | ~int64 | ~float32 | ~float64 | ~string
}

func matchIndexesOrdered[T ordered](op Op, v, min, max T) IndexMatch {
	switch op {
	case OpEq:
		if v < min || v > max {
			return MatchNone
		}
		if min == max && min == v {
			return MatchAll
		}
		return MatchUnknown
	case OpLt:
		if v > max {
			return MatchAll
		}
		if v <= min {
			return MatchNone
		}
		return MatchUnknown
	case OpGt:
		if v < min {
			return MatchAll
		}
		if v >= max {
			return MatchNone
		}
		return MatchUnknown
	default:
		return MatchUnknown
	}
}

func matchIndexesBit(v bool, idx *column.Index) IndexMatch {
	if idx.Count == 0 {
		return MatchNone
	}
	if v {
		if idx.TrueCount == idx.Count {
			return MatchAll
		}
		if idx.TrueCount == 0 {
			return MatchNone
		}
		return MatchUnknown
	}
	if idx.FalseCount == idx.Count {
		return MatchAll
	}
	if idx.FalseCount == 0 {
		return MatchNone
	}
	return MatchUnknown
}
