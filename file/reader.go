package file

import (
	"encoding/binary"
	"fmt"

	"github.com/solidcoredata/columnix/column"
	"github.com/solidcoredata/columnix/compress"
	"github.com/solidcoredata/columnix/rowgroup"
)

// Schema describes one column's file-wide, row-group-invariant properties.
type Schema struct {
	Name        string
	Type        column.Type
	Encoding    column.Encoding
	Compression compress.Type
	Level       int32
}

// Reader parses a complete in-memory image of a columnix file. The engine
// never requires streaming reads: row-group bodies are meant to be
// memory-mapped or fully loaded, per spec's "shared-resource policy".
type Reader struct {
	data   []byte
	tail   footerTail
	schema []Schema

	rowGroups []rowGroupHeader
}

// Open parses data's header and footer and validates the two magic values
// agree. It does not read any row-group body until RowGroup is called.
func Open(data []byte) (*Reader, error) {
	if len(data) < 8+footerTailSize {
		return nil, ErrTruncated
	}
	headerMagic := binary.LittleEndian.Uint64(data[0:8])
	if headerMagic != magic {
		return nil, ErrBadMagic
	}

	tailStart := len(data) - footerTailSize
	tail := getFooterTail(data[tailStart:])
	if tail.magic != magic {
		return nil, ErrBadMagic
	}

	rgTableSize := int(tail.rowGroupCount) * rowGroupHeaderSize
	descTableSize := int(tail.columnCount) * descriptorSize
	rgTableStart := tailStart - rgTableSize
	descTableStart := rgTableStart - descTableSize
	if descTableStart < 0 || rgTableStart < 0 {
		return nil, ErrTruncated
	}

	stringsEnd := int(tail.stringsOffset + tail.stringsSize)
	if uint64(stringsEnd) > uint64(len(data)) {
		return nil, ErrTruncated
	}
	blob := data[tail.stringsOffset:stringsEnd]

	schema := make([]Schema, tail.columnCount)
	for i := 0; i < int(tail.columnCount); i++ {
		off := descTableStart + i*descriptorSize
		d := getDescriptor(data[off : off+descriptorSize])
		schema[i] = Schema{
			Name:        stringAt(blob, d.name),
			Type:        uint32ToType(d.typ),
			Encoding:    column.Encoding(d.encoding),
			Compression: compress.Type(d.compression),
			Level:       d.level,
		}
	}

	rowGroups := make([]rowGroupHeader, tail.rowGroupCount)
	for i := 0; i < int(tail.rowGroupCount); i++ {
		off := rgTableStart + i*rowGroupHeaderSize
		rowGroups[i] = getRowGroupHeader(data[off : off+rowGroupHeaderSize])
	}

	return &Reader{data: data, tail: tail, schema: schema, rowGroups: rowGroups}, nil
}

// Schema returns the file's column schema, in column-index order.
func (r *Reader) Schema() []Schema { return r.schema }

// RowGroupCount returns the number of row groups the file holds.
func (r *Reader) RowGroupCount() int { return len(r.rowGroups) }

// RowCount returns the file's total row count across every row group.
func (r *Reader) RowCount() uint64 { return r.tail.rowCount }

// RowGroup parses and decompresses row group i into a live rowgroup.RowGroup.
// Uncompressed columns are attached as zero-copy external views into data;
// compressed columns are decompressed into a freshly allocated buffer.
//
// Every column's header sits at the start of the row-group section, in
// column order, each self-delimiting (see decodeColumnHeader); each
// header's offset field is an absolute, already-resolved file offset for
// its blob, so blobs are read directly without needing to locate where the
// header table itself ends.
func (r *Reader) RowGroup(i int) (*rowgroup.RowGroup, error) {
	if i < 0 || i >= len(r.rowGroups) {
		return nil, fmt.Errorf("file: row group %d out of range", i)
	}
	rgh := r.rowGroups[i]
	pos := int(rgh.offset)

	headers := make([]columnHeader, len(r.schema))
	for c := range r.schema {
		h, n, err := decodeColumnHeader(r.data[pos:], r.schema[c].Type)
		if err != nil {
			return nil, err
		}
		headers[c] = h
		pos += n
	}

	rg := rowgroup.New()
	for c, h := range headers {
		col, err := r.materializeColumn(h, r.schema[c].Type)
		if err != nil {
			return nil, err
		}
		if err := rg.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return rg, nil
}

func (r *Reader) materializeColumn(h columnHeader, typ column.Type) (*column.Column, error) {
	blob := r.data[h.offset : h.offset+h.size]
	if compress.Type(h.compression) == compress.TypeNone {
		col := column.NewExternal(typ, column.EncodingNone, blob, indexRowCount(h.index))
		col.SetIndex(h.index)
		return col, nil
	}
	codec, err := compress.Lookup(compress.Type(h.compression))
	if err != nil {
		return nil, err
	}
	col, dst := column.NewForDecompression(typ, column.EncodingNone, int(h.decompressedSize), indexRowCount(h.index))
	if _, err := codec.Decode(dst, blob); err != nil {
		return nil, err
	}
	col.SetIndex(h.index)
	return col, nil
}

// indexRowCount reads the row count a column's serialized index already
// recorded, so RowGroup does not need a separate, redundant row-count field
// per column (every column in a row group shares the row group's row
// count, but decoding the index is already mandatory for predicate
// pruning, so reusing idx.Count here avoids storing it twice).
func indexRowCount(idx *column.Index) int {
	if idx == nil {
		return 0
	}
	return idx.Count
}
