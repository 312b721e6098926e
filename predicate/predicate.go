// Package predicate implements the spec's C6: a compositional boolean
// expression tree over row-group columns, with an index-level elimination
// phase (match_indexes) and a batch-level evaluation phase (match_rows)
// built on package match's kernels.
package predicate

import (
	"github.com/solidcoredata/columnix/column"
	"github.com/solidcoredata/columnix/match"
)

// Kind is the closed set of predicate tree node kinds.
type Kind int

const (
	KindTrue Kind = iota
	KindNull
	KindCmp
	KindStrContains
	KindAnd
	KindOr
	KindNot
	KindCustom
)

// Op is a leaf comparison operator.
type Op int

const (
	OpEq Op = iota
	OpLt
	OpGt
)

// Per spec §4.6: cheap eliminators sort first within AND/OR.
const (
	costTrivial        = 0
	costNumericCompare = 1
	costBitCompare     = 4
	costStrEquality    = 8
	costStrContains    = 16
)

// IndexMatch is the coarse, index-only outcome of evaluating a predicate
// against a row group's per-column summaries.
type IndexMatch int

const (
	MatchUnknown IndexMatch = iota
	MatchAll
	MatchNone
)

// IndexFunc is the custom predicate's index-elimination hook: given the
// column's type, its running index, and the predicate's opaque data, it
// decides ALL/NONE/UNKNOWN without touching row data.
type IndexFunc func(typ column.Type, idx *column.Index, data any) IndexMatch

// RowsFunc is the custom predicate's row-evaluation hook: given the
// column's type, the batch size, the batch's values (typed per column.Type,
// see package column's cursor batch accessors), and the predicate's opaque
// data, it produces a match mask. Returning an error is fatal and aborts
// the whole evaluation, per spec ("UserCallbackFailure").
type RowsFunc func(typ column.Type, count int, values any, data any) (match.Mask, error)

// Predicate is an immutable node in a predicate tree. Construct leaves with
// the type-specific constructors below, combine with And/Or/Negate, then
// call Optimize before repeated evaluation against a row group.
type Predicate struct {
	kind Kind
	cost int

	column int // Null, Cmp, StrContains, Custom

	op  Op
	lit literal

	needle        string
	caseSensitive bool
	location      match.Location

	children []*Predicate // And, Or
	child    *Predicate   // Not

	customType   column.Type
	customRowsFn RowsFunc
	customIdxFn  IndexFunc
	customData   any
}

type literal struct {
	typ column.Type
	bit bool
	i32 int32
	i64 int64
	f32 float32
	f64 float64
	str string
}

// Cost returns the node's cached reordering hint; cheaper nodes sort first
// within AND/OR after Optimize.
func (p *Predicate) Cost() int { return p.cost }

// Kind returns the node's tag.
func (p *Predicate) Kind() Kind { return p.kind }

// True builds the always-matching predicate.
func True() *Predicate {
	return &Predicate{kind: KindTrue, cost: costTrivial}
}

// Null builds a predicate over column's null-ness. Per spec, the core never
// produces nulls (no writer path defines them), so Null predicates are
// always false; this constructor is kept for forward compatibility.
func Null(col int) *Predicate {
	return &Predicate{kind: KindNull, column: col, cost: costTrivial}
}

// Negate builds the logical complement of p.
func Negate(p *Predicate) *Predicate {
	return &Predicate{kind: KindNot, child: p, cost: p.cost}
}

// And builds a variadic conjunction. Redundant structure (nested And, a
// single child) is allowed; Optimize does not fold it, only reorders.
func And(children ...*Predicate) *Predicate {
	return &Predicate{kind: KindAnd, children: children, cost: sumCost(children)}
}

// Or builds a variadic disjunction.
func Or(children ...*Predicate) *Predicate {
	return &Predicate{kind: KindOr, children: children, cost: sumCost(children)}
}

func sumCost(children []*Predicate) int {
	total := 0
	for _, c := range children {
		total += c.cost
	}
	return total
}

// BitEq builds a bit-column equality leaf.
func BitEq(col int, v bool) *Predicate {
	return &Predicate{kind: KindCmp, column: col, op: OpEq, cost: costBitCompare,
		lit: literal{typ: column.TypeBit, bit: v}}
}

// I32Eq, I32Lt, I32Gt build int32-column comparison leaves.
func I32Eq(col int, v int32) *Predicate { return cmpI32(col, OpEq, v) }
func I32Lt(col int, v int32) *Predicate { return cmpI32(col, OpLt, v) }
func I32Gt(col int, v int32) *Predicate { return cmpI32(col, OpGt, v) }

func cmpI32(col int, op Op, v int32) *Predicate {
	return &Predicate{kind: KindCmp, column: col, op: op, cost: costNumericCompare,
		lit: literal{typ: column.TypeI32, i32: v}}
}

// I64Eq, I64Lt, I64Gt build int64-column comparison leaves.
func I64Eq(col int, v int64) *Predicate { return cmpI64(col, OpEq, v) }
func I64Lt(col int, v int64) *Predicate { return cmpI64(col, OpLt, v) }
func I64Gt(col int, v int64) *Predicate { return cmpI64(col, OpGt, v) }

func cmpI64(col int, op Op, v int64) *Predicate {
	return &Predicate{kind: KindCmp, column: col, op: op, cost: costNumericCompare,
		lit: literal{typ: column.TypeI64, i64: v}}
}

// F32Eq, F32Lt, F32Gt build float32-column comparison leaves.
func F32Eq(col int, v float32) *Predicate { return cmpF32(col, OpEq, v) }
func F32Lt(col int, v float32) *Predicate { return cmpF32(col, OpLt, v) }
func F32Gt(col int, v float32) *Predicate { return cmpF32(col, OpGt, v) }

func cmpF32(col int, op Op, v float32) *Predicate {
	return &Predicate{kind: KindCmp, column: col, op: op, cost: costNumericCompare,
		lit: literal{typ: column.TypeF32, f32: v}}
}

// F64Eq, F64Lt, F64Gt build float64-column comparison leaves.
func F64Eq(col int, v float64) *Predicate { return cmpF64(col, OpEq, v) }
func F64Lt(col int, v float64) *Predicate { return cmpF64(col, OpLt, v) }
func F64Gt(col int, v float64) *Predicate { return cmpF64(col, OpGt, v) }

func cmpF64(col int, op Op, v float64) *Predicate {
	return &Predicate{kind: KindCmp, column: col, op: op, cost: costNumericCompare,
		lit: literal{typ: column.TypeF64, f64: v}}
}

// StrEq, StrLt, StrGt build string-column comparison leaves.
func StrEq(col int, v string, caseSensitive bool) *Predicate { return cmpStr(col, OpEq, v, caseSensitive) }
func StrLt(col int, v string, caseSensitive bool) *Predicate { return cmpStr(col, OpLt, v, caseSensitive) }
func StrGt(col int, v string, caseSensitive bool) *Predicate { return cmpStr(col, OpGt, v, caseSensitive) }

func cmpStr(col int, op Op, v string, caseSensitive bool) *Predicate {
	return &Predicate{kind: KindCmp, column: col, op: op, cost: costStrEquality,
		caseSensitive: caseSensitive, lit: literal{typ: column.TypeStr, str: v}}
}

// StrContains builds a STR_CONTAINS leaf: needle must appear at location
// (start/end/anywhere) within the column's string value.
func StrContains(col int, needle string, caseSensitive bool, loc match.Location) *Predicate {
	return &Predicate{kind: KindStrContains, column: col, needle: needle,
		caseSensitive: caseSensitive, location: loc, cost: costStrContains}
}

// Custom builds the open extension point: an index-elimination hook, a
// row-evaluation hook, a declared cost, and an opaque data value threaded
// through both.
func Custom(col int, typ column.Type, rowsFn RowsFunc, idxFn IndexFunc, cost int, data any) *Predicate {
	return &Predicate{kind: KindCustom, column: col, customType: typ,
		customRowsFn: rowsFn, customIdxFn: idxFn, customData: data, cost: cost}
}

// Operands returns the children of a logical node (And, Or, Not); leaves
// return nil.
func Operands(p *Predicate) []*Predicate {
	switch p.kind {
	case KindAnd, KindOr:
		return p.children
	case KindNot:
		return []*Predicate{p.child}
	default:
		return nil
	}
}
