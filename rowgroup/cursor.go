package rowgroup

import "github.com/solidcoredata/columnix/column"

// State is the row-group cursor's position in its batch walk.
type State int

const (
	StateUnstarted State = iota
	StateBatch
	StateExhausted
)

// Cursor advances one or more per-column cursors in lock-step, in batches of
// column.BatchSize rows. Per-column cursors are instantiated lazily, only
// once a predicate first references that column, and are re-created lazily
// again after Rewind.
type Cursor struct {
	rg      *RowGroup
	state   State
	batch   int // current 0-based batch index, meaningful only in StateBatch
	size    int // row count of the current batch
	cursors []*column.Cursor
	// touched tracks, for the batch currently in progress, whether each
	// column's cursor has been advanced past it yet. A column cursor that
	// is instantiated but never referenced during a batch must still be
	// fast-forwarded past it before the walk moves on, to keep every
	// column pointing at the same logical row.
	touched []bool
}

func newCursor(rg *RowGroup) *Cursor {
	n := rg.ColumnCount()
	return &Cursor{
		rg:      rg,
		state:   StateUnstarted,
		cursors: make([]*column.Cursor, n),
		touched: make([]bool, n),
	}
}

// ColumnCount returns the row group's column count, so a Cursor alone
// satisfies predicate package's row-group views without exposing RowGroup.
func (c *Cursor) ColumnCount() int { return c.rg.ColumnCount() }

// ColumnType returns the type of column i.
func (c *Cursor) ColumnType(i int) column.Type { return c.rg.ColumnType(i) }

// ColumnIndex returns the min/max/null summary of column i.
func (c *Cursor) ColumnIndex(i int) *column.Index { return c.rg.ColumnIndex(i) }

// State returns the cursor's current state.
func (c *Cursor) State() State { return c.state }

// BatchIndex returns the 0-based index of the current batch. Only
// meaningful in StateBatch.
func (c *Cursor) BatchIndex() int { return c.batch }

// BatchSize returns the row count of the current batch: column.BatchSize
// for every batch except possibly the last.
func (c *Cursor) BatchSize() int { return c.size }

// Next advances to the next batch, returning false once the row group is
// exhausted.
func (c *Cursor) Next() bool {
	rows := c.rg.Count()
	nextBatch := c.batch
	if c.state != StateUnstarted {
		nextBatch++
	}
	nextStart := nextBatch * column.BatchSize

	if c.state == StateBatch && nextStart < rows {
		// Catch up any column cursor that was instantiated but not read
		// from during the batch we're leaving, so it stays aligned for the
		// batch we're about to enter. Skipped only when another batch
		// actually follows: a column cursor left mid-batch on the
		// transition into StateExhausted needs no further alignment.
		for i, cur := range c.cursors {
			if cur != nil && !c.touched[i] {
				cur.Skip(c.size)
			}
		}
	}

	if c.state == StateExhausted {
		return false
	}
	c.batch = nextBatch

	if nextStart >= rows {
		c.state = StateExhausted
		return false
	}

	c.size = rows - nextStart
	if c.size > column.BatchSize {
		c.size = column.BatchSize
	}
	c.state = StateBatch
	for i := range c.touched {
		c.touched[i] = false
	}
	return true
}

// columnCursor returns the lazily-instantiated per-column cursor for
// column i, creating and fast-forwarding it to the start of the current
// batch the first time it is referenced. A column referenced again within
// the same batch gets a fresh cursor at that batch's start, so every
// reference reads the current batch rather than the one after it.
func (c *Cursor) columnCursor(i int) *column.Cursor {
	cur := c.cursors[i]
	if cur == nil || c.touched[i] {
		cur = column.NewCursor(c.rg.Column(i))
		cur.Skip(c.batch * column.BatchSize)
		c.cursors[i] = cur
	}
	c.touched[i] = true
	return cur
}

// BatchBit returns the current batch's bit column i as a packed word plus
// its actual row count.
func (c *Cursor) BatchBit(i int) (uint64, int) {
	return c.columnCursor(i).NextBatchBit()
}

// BatchI32 returns a zero-copy view of the current batch of column i.
func (c *Cursor) BatchI32(i int) ([]int32, int) {
	return c.columnCursor(i).NextBatchI32()
}

// BatchI64 returns a zero-copy view of the current batch of column i.
func (c *Cursor) BatchI64(i int) ([]int64, int) {
	return c.columnCursor(i).NextBatchI64()
}

// BatchF32 returns a zero-copy view of the current batch of column i.
func (c *Cursor) BatchF32(i int) ([]float32, int) {
	return c.columnCursor(i).NextBatchF32()
}

// BatchF64 returns a zero-copy view of the current batch of column i.
func (c *Cursor) BatchF64(i int) ([]float64, int) {
	return c.columnCursor(i).NextBatchF64()
}

// BatchStr returns the current batch's string views of column i.
func (c *Cursor) BatchStr(i int) ([][]byte, int) {
	return c.columnCursor(i).NextBatchStr()
}

// Rewind resets the cursor to Unstarted; all per-column cursors are
// discarded and will be lazily re-instantiated as they're referenced again.
func (c *Cursor) Rewind() {
	c.state = StateUnstarted
	c.batch = 0
	c.size = 0
	for i := range c.cursors {
		c.cursors[i] = nil
		c.touched[i] = false
	}
}
