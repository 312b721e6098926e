package column

import (
	"encoding/binary"
	"math"
	"unsafe"
)

const (
	initialCapacity = 64
	// overAllocPad keeps at least this many zeroed bytes past the used
	// region so that wide (128/256/512-bit) loads over the tail of a batch
	// never read unmapped or uninitialized memory, per spec.
	overAllocPad = 16
)

// Column is the append-only, typed value buffer a row group attaches. Its
// backing byte slice is either heap-owned and growable, or external
// (memory-mapped or a caller-filled decompression target) and permanently
// read-only.
type Column struct {
	typ      Type
	encoding Encoding
	buf      []byte
	count    int
	offset   int
	readOnly bool

	idx *Index
}

// New creates an empty, growable column of the given type and encoding.
func New(typ Type, enc Encoding) *Column {
	return &Column{
		typ:      typ,
		encoding: enc,
		buf:      make([]byte, initialCapacity+overAllocPad),
		idx:      newIndex(typ),
	}
}

// NewExternal wraps an already-encoded byte slice (typically a memory-mapped
// file region) as a read-only column of count logical rows. The slice is
// borrowed, never copied and never grown; the caller must keep it alive for
// at least as long as the column and any cursors over it.
func NewExternal(typ Type, enc Encoding, buf []byte, count int) *Column {
	return &Column{
		typ:      typ,
		encoding: enc,
		buf:      buf,
		count:    count,
		offset:   len(buf),
		readOnly: true,
	}
}

// NewForDecompression allocates a mutable buffer of size bytes for a caller
// (typically a block decompressor) to fill directly, then returns a column
// that exposes those bytes as-is once filled. Unlike NewExternal the buffer
// is owned by the column, but it is still frozen for appends: the
// compressed-blob caller is expected to fill it once via the returned slice,
// not through Put*.
func NewForDecompression(typ Type, enc Encoding, size, count int) (*Column, []byte) {
	buf := make([]byte, size)
	col := &Column{
		typ:      typ,
		encoding: enc,
		buf:      buf,
		count:    count,
		offset:   size,
		readOnly: true,
	}
	return col, buf
}

// Type returns the column's value type.
func (c *Column) Type() Type { return c.typ }

// Encoding returns the column's encoding.
func (c *Column) Encoding() Encoding { return c.encoding }

// Count returns the number of logical rows appended so far.
func (c *Column) Count() int { return c.count }

// Index returns the running min/max/null summary for this column. Nil for
// externally backed columns that were never appended through, since no
// summary was ever computed for them.
func (c *Column) Index() *Index { return c.idx }

// SetIndex attaches a pre-computed index to the column, for readers that
// reconstruct a column from a serialized blob and its serialized index
// rather than rebuilding the summary by replaying every Put call.
func (c *Column) SetIndex(idx *Index) { c.idx = idx }

// Export returns the used portion of the backing buffer and its length, with
// no copy. Safe to call repeatedly; the returned slice aliases the column's
// storage and must not be retained past the column's lifetime if the column
// is later grown.
func (c *Column) Export() ([]byte, int) {
	return c.buf[:c.offset], c.offset
}

func (c *Column) ensure(additional int) {
	needed := c.offset + additional + overAllocPad
	if needed <= len(c.buf) {
		return
	}
	size := len(c.buf)
	if size == 0 {
		size = initialCapacity + overAllocPad
	}
	for size < needed {
		size *= 2
	}
	next := make([]byte, size)
	copy(next, c.buf[:c.offset])
	c.buf = next
}

func (c *Column) putFixed(typ Type, data []byte) error {
	if c.readOnly {
		return ErrImmutable
	}
	if c.typ != typ {
		return ErrTypeMismatch
	}
	c.ensure(len(data))
	copy(c.buf[c.offset:], data)
	c.offset += len(data)
	c.count++
	return nil
}

// PutI32 appends a 32-bit signed integer.
func (c *Column) PutI32(v int32) error {
	if c.readOnly {
		return ErrImmutable
	}
	if c.typ != TypeI32 {
		return ErrTypeMismatch
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	if err := c.putFixed(TypeI32, b[:]); err != nil {
		return err
	}
	c.idx.updateI32(v)
	return nil
}

// PutI64 appends a 64-bit signed integer.
func (c *Column) PutI64(v int64) error {
	if c.readOnly {
		return ErrImmutable
	}
	if c.typ != TypeI64 {
		return ErrTypeMismatch
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	if err := c.putFixed(TypeI64, b[:]); err != nil {
		return err
	}
	c.idx.updateI64(v)
	return nil
}

// PutF32 appends a 32-bit float.
func (c *Column) PutF32(v float32) error {
	if c.readOnly {
		return ErrImmutable
	}
	if c.typ != TypeF32 {
		return ErrTypeMismatch
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	if err := c.putFixed(TypeF32, b[:]); err != nil {
		return err
	}
	c.idx.updateF32(v)
	return nil
}

// PutF64 appends a 64-bit float.
func (c *Column) PutF64(v float64) error {
	if c.readOnly {
		return ErrImmutable
	}
	if c.typ != TypeF64 {
		return ErrTypeMismatch
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	if err := c.putFixed(TypeF64, b[:]); err != nil {
		return err
	}
	c.idx.updateF64(v)
	return nil
}

// PutStr appends a string as its bytes plus a single NUL terminator. No
// length prefix is stored; a scan recomputes length from the terminator.
func (c *Column) PutStr(v string) error {
	if c.readOnly {
		return ErrImmutable
	}
	if c.typ != TypeStr {
		return ErrTypeMismatch
	}
	c.ensure(len(v) + 1)
	n := copy(c.buf[c.offset:], v)
	c.buf[c.offset+n] = 0
	c.offset += n + 1
	c.count++
	c.idx.updateStr(v)
	return nil
}

// PutBit appends a single boolean row, packed 64 bits per 8-byte word: bit
// (count mod 64) of the current word holds the new row. A fresh
// zero-initialized word is appended every 64th row.
func (c *Column) PutBit(v bool) error {
	if c.readOnly {
		return ErrImmutable
	}
	if c.typ != TypeBit {
		return ErrTypeMismatch
	}
	if c.count%64 == 0 {
		var word uint64
		if v {
			word = 1
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], word)
		c.ensure(8)
		copy(c.buf[c.offset:], b[:])
		c.offset += 8
	} else if v {
		wordOff := c.offset - 8
		word := binary.LittleEndian.Uint64(c.buf[wordOff:])
		word |= uint64(1) << uint(c.count%64)
		binary.LittleEndian.PutUint64(c.buf[wordOff:], word)
	}
	c.count++
	c.idx.updateBit(v)
	return nil
}

// PutZero appends the type-appropriate zero value without the caller
// needing to branch on column type: false, 0, 0.0 or "".
func (c *Column) PutZero() error {
	switch c.typ {
	case TypeBit:
		return c.PutBit(false)
	case TypeI32:
		return c.PutI32(0)
	case TypeI64:
		return c.PutI64(0)
	case TypeF32:
		return c.PutF32(0)
	case TypeF64:
		return c.PutF64(0)
	case TypeStr:
		return c.PutStr("")
	default:
		return ErrTypeMismatch
	}
}

// viewI32 reinterprets n int32 values starting at byte offset off as a view
// into the column's own backing array, with no copy. This is load-bearing
// for the match kernels in package match, which must operate directly on
// the column's bytes rather than a materialized copy.
func viewI32(buf []byte, off, n int) []int32 {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&buf[off])), n)
}

func viewI64(buf []byte, off, n int) []int64 {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&buf[off])), n)
}

func viewF32(buf []byte, off, n int) []float32 {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&buf[off])), n)
}

func viewF64(buf []byte, off, n int) []float64 {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&buf[off])), n)
}
