// Package rowgroup bundles same-length columns together with their indexes
// and exposes a lock-step batch cursor over all of them: the spec's C5.
package rowgroup

import (
	"errors"

	"github.com/solidcoredata/columnix/column"
)

// ErrCountMismatch is returned when attaching a column whose row count
// differs from the row group's existing row count.
var ErrCountMismatch = errors.New("rowgroup: column count mismatch")

// RowGroup is an ordered collection of columns of identical row count, plus
// the parallel sequence of their indexes. Column position in the slice is
// its column index for predicate references.
type RowGroup struct {
	columns []*column.Column
	rows    int
}

// New creates an empty row group.
func New() *RowGroup {
	return &RowGroup{}
}

// AddColumn attaches col, which becomes column index ColumnCount()-1. The first
// column attached sets the row group's row count; every later column must
// match it exactly.
func (rg *RowGroup) AddColumn(col *column.Column) error {
	if len(rg.columns) == 0 {
		rg.rows = col.Count()
	} else if col.Count() != rg.rows {
		return ErrCountMismatch
	}
	rg.columns = append(rg.columns, col)
	return nil
}

// Count returns the row group's row count (shared by every attached
// column).
func (rg *RowGroup) Count() int { return rg.rows }

// ColumnCount returns the number of attached columns.
func (rg *RowGroup) ColumnCount() int { return len(rg.columns) }

// Column returns the column at position i.
func (rg *RowGroup) Column(i int) *column.Column { return rg.columns[i] }

// ColumnType returns the type of the column at position i.
func (rg *RowGroup) ColumnType(i int) column.Type { return rg.columns[i].Type() }

// ColumnIndex returns the min/max/null summary of the column at position i.
func (rg *RowGroup) ColumnIndex(i int) *column.Index { return rg.columns[i].Index() }

// Cursor returns a new row-group cursor starting at Unstarted.
func (rg *RowGroup) Cursor() *Cursor {
	return newCursor(rg)
}
