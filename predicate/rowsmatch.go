package predicate

import (
	"errors"

	"github.com/solidcoredata/columnix/column"
	"github.com/solidcoredata/columnix/match"
)

// ErrUserCallbackFailure wraps a failure returned by a Custom predicate's
// RowsFunc; it is always fatal and aborts the whole evaluation.
var ErrUserCallbackFailure = errors.New("predicate: user callback failed")

type batchRowGroup interface {
	indexedRowGroup
	BatchBit(i int) (uint64, int)
	BatchI32(i int) ([]int32, int)
	BatchI64(i int) ([]int64, int)
	BatchF32(i int) ([]float32, int)
	BatchF64(i int) ([]float64, int)
	BatchStr(i int) ([][]byte, int)
}

// rowsCursor is the subset of rowgroup.Cursor the rows phase drives:
// advance to the next batch and report its row count.
type rowsCursor interface {
	Next() bool
	BatchSize() int
}

// MatchRows advances cur to its next batch and evaluates predicate over it,
// returning the batch's match mask and row count. It returns ok == false
// once cur is exhausted, distinct from a custom-callback error, which is
// returned as err.
func MatchRows(p *Predicate, rg batchRowGroup, cur rowsCursor) (mask match.Mask, count int, ok bool, err error) {
	if !cur.Next() {
		return 0, 0, false, nil
	}
	count = cur.BatchSize()
	mask, err = evalRows(p, rg, count)
	if err != nil {
		return 0, count, true, err
	}
	return mask, count, true, nil
}

func evalRows(p *Predicate, rg batchRowGroup, count int) (match.Mask, error) {
	switch p.kind {
	case KindTrue:
		return match.Full(count), nil
	case KindNull:
		return 0, nil
	case KindCmp:
		return evalCmp(p, rg, count)
	case KindStrContains:
		batch, n := rg.BatchStr(p.column)
		return match.ContainsStr(n, batch, []byte(p.needle), p.caseSensitive, p.location), nil
	case KindCustom:
		values, n := fetchTyped(p.customType, p.column, rg)
		m, err := p.customRowsFn(p.customType, n, values, p.customData)
		if err != nil {
			return 0, errors.Join(ErrUserCallbackFailure, err)
		}
		return m, nil
	case KindNot:
		child, err := evalRows(p.child, rg, count)
		if err != nil {
			return 0, err
		}
		return ^child & match.Full(count), nil
	case KindAnd:
		running := match.Full(count)
		for _, c := range p.children {
			if running == 0 {
				break
			}
			m, err := evalRows(c, rg, count)
			if err != nil {
				return 0, err
			}
			running &= m
		}
		return running, nil
	case KindOr:
		var running match.Mask
		full := match.Full(count)
		for _, c := range p.children {
			if running == full {
				break
			}
			m, err := evalRows(c, rg, count)
			if err != nil {
				return 0, err
			}
			running |= m
		}
		return running, nil
	default:
		return 0, errors.New("predicate: unknown node kind")
	}
}

func fetchTyped(typ column.Type, col int, rg batchRowGroup) (any, int) {
	switch typ {
	case column.TypeBit:
		word, n := rg.BatchBit(col)
		return word, n
	case column.TypeI32:
		return rg.BatchI32(col)
	case column.TypeI64:
		return rg.BatchI64(col)
	case column.TypeF32:
		return rg.BatchF32(col)
	case column.TypeF64:
		return rg.BatchF64(col)
	case column.TypeStr:
		return rg.BatchStr(col)
	default:
		return nil, 0
	}
}

func evalCmp(p *Predicate, rg batchRowGroup, count int) (match.Mask, error) {
	switch p.lit.typ {
	case column.TypeBit:
		word, n := rg.BatchBit(p.column)
		return match.EqBit(n, word, p.lit.bit), nil
	case column.TypeI32:
		batch, n := rg.BatchI32(p.column)
		return dispatchI32(p.op, n, batch, p.lit.i32)
	case column.TypeI64:
		batch, n := rg.BatchI64(p.column)
		return dispatchI64(p.op, n, batch, p.lit.i64)
	case column.TypeF32:
		batch, n := rg.BatchF32(p.column)
		return dispatchF32(p.op, n, batch, p.lit.f32)
	case column.TypeF64:
		batch, n := rg.BatchF64(p.column)
		return dispatchF64(p.op, n, batch, p.lit.f64)
	case column.TypeStr:
		batch, n := rg.BatchStr(p.column)
		return dispatchStr(p.op, n, batch, p.lit.str, p.caseSensitive)
	default:
		return 0, errors.New("predicate: unsupported comparison type")
	}
}

func dispatchI32(op Op, n int, batch []int32, cmp int32) (match.Mask, error) {
	switch op {
	case OpEq:
		return match.EqI32(n, batch, cmp), nil
	case OpLt:
		return match.LtI32(n, batch, cmp), nil
	case OpGt:
		return match.GtI32(n, batch, cmp), nil
	default:
		return 0, errors.New("predicate: unknown op")
	}
}

func dispatchI64(op Op, n int, batch []int64, cmp int64) (match.Mask, error) {
	switch op {
	case OpEq:
		return match.EqI64(n, batch, cmp), nil
	case OpLt:
		return match.LtI64(n, batch, cmp), nil
	case OpGt:
		return match.GtI64(n, batch, cmp), nil
	default:
		return 0, errors.New("predicate: unknown op")
	}
}

func dispatchF32(op Op, n int, batch []float32, cmp float32) (match.Mask, error) {
	switch op {
	case OpEq:
		return match.EqF32(n, batch, cmp), nil
	case OpLt:
		return match.LtF32(n, batch, cmp), nil
	case OpGt:
		return match.GtF32(n, batch, cmp), nil
	default:
		return 0, errors.New("predicate: unknown op")
	}
}

func dispatchF64(op Op, n int, batch []float64, cmp float64) (match.Mask, error) {
	switch op {
	case OpEq:
		return match.EqF64(n, batch, cmp), nil
	case OpLt:
		return match.LtF64(n, batch, cmp), nil
	case OpGt:
		return match.GtF64(n, batch, cmp), nil
	default:
		return 0, errors.New("predicate: unknown op")
	}
}

func dispatchStr(op Op, n int, batch [][]byte, cmp string, caseSensitive bool) (match.Mask, error) {
	cb := []byte(cmp)
	switch op {
	case OpEq:
		return match.EqStr(n, batch, cb, caseSensitive), nil
	case OpLt:
		return match.LtStr(n, batch, cb, caseSensitive), nil
	case OpGt:
		return match.GtStr(n, batch, cb, caseSensitive), nil
	default:
		return 0, errors.New("predicate: unknown op")
	}
}
