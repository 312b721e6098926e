package file

import (
	"encoding/binary"
	"io"

	"github.com/solidcoredata/columnix/column"
	"github.com/solidcoredata/columnix/compress"
	"github.com/solidcoredata/columnix/rowgroup"
)

// ColumnSpec names a row group's column and chooses how its blob is stored.
type ColumnSpec struct {
	Name        string
	Compression compress.Type
	// Level is recorded in the column descriptor for reference; the codecs
	// in package compress presently derive their own effort level from
	// Compression alone (LZ4 vs LZ4HC), not from this field.
	Level int32
}

// Writer serializes a sequence of row groups into the engine's file format.
// Row groups are written in the order Add is called; the schema (column
// names, types, encodings, compression choices) must be identical across
// every row group added to one Writer.
type Writer struct {
	w       io.WriteSeeker
	strings *stringTable
	specs   []ColumnSpec
	types   []column.Type
	encs    []column.Encoding

	rowGroups []rowGroupHeader
	rowCount  uint64

	started bool
}

// NewWriter creates a Writer over w, which must be empty; w's current
// position becomes the file's start.
func NewWriter(w io.WriteSeeker) *Writer {
	return &Writer{w: w, strings: newStringTable()}
}

func (fw *Writer) writeHeader() error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], magic)
	_, err := fw.w.Write(b[:])
	return err
}

// Add appends rg as the next row group, compressing each column's blob per
// specs (parallel to rg's column order). The first call fixes the file's
// schema; later calls must pass specs of the same length as the first.
//
// Layout of the row-group section this writes (grounded in the teacher's
// sst.Writer "write placeholder, compute actual, seek back and patch"
// pattern, generalized from one patched length field to one patched offset
// field per column): every column's header is written first, in column
// order, each self-delimiting (fixed fields plus an index encoding whose
// length follows from the column's type);
// then every column's blob follows, 8-byte aligned. Each header's offset
// field is a placeholder until its blob is placed, then patched in a final
// backward seek — so reads never need to infer where the header table ends.
func (fw *Writer) Add(rg *rowgroup.RowGroup, specs []ColumnSpec) error {
	if len(specs) != rg.ColumnCount() {
		return errSpecMismatch
	}
	if !fw.started {
		if err := fw.writeHeader(); err != nil {
			return err
		}
		fw.specs = specs
		for i := 0; i < rg.ColumnCount(); i++ {
			fw.types = append(fw.types, rg.ColumnType(i))
			fw.encs = append(fw.encs, column.EncodingNone)
		}
		fw.started = true
	}

	rgStart, err := fw.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	payloads := make([][]byte, rg.ColumnCount())
	headers := make([]columnHeader, rg.ColumnCount())
	for i := 0; i < rg.ColumnCount(); i++ {
		payload, h, err := fw.preparePayload(rg, i, specs[i])
		if err != nil {
			return err
		}
		payloads[i] = payload
		headers[i] = h
	}

	offsetFieldPos := make([]int64, rg.ColumnCount())
	for i, h := range headers {
		pos, err := fw.w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		offsetFieldPos[i] = pos
		if err := fw.writeColumnHeader(h); err != nil {
			return err
		}
	}

	for i, payload := range payloads {
		if err := fw.padToAlignment(); err != nil {
			return err
		}
		blobStart, err := fw.w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		if _, err := fw.w.Write(payload); err != nil {
			return err
		}
		headers[i].offset = uint64(blobStart)
	}

	rgEnd, err := fw.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	for i, pos := range offsetFieldPos {
		if _, err := fw.w.Seek(pos, io.SeekStart); err != nil {
			return err
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], headers[i].offset)
		if _, err := fw.w.Write(b[:]); err != nil {
			return err
		}
	}
	if _, err := fw.w.Seek(rgEnd, io.SeekStart); err != nil {
		return err
	}

	fw.rowGroups = append(fw.rowGroups, rowGroupHeader{
		size:   uint64(rgEnd - rgStart),
		offset: uint64(rgStart),
	})
	fw.rowCount += uint64(rg.Count())
	return nil
}

func (fw *Writer) preparePayload(rg *rowgroup.RowGroup, i int, spec ColumnSpec) ([]byte, columnHeader, error) {
	raw, decompressedSize := rg.Column(i).Export()
	payload := raw
	compression := spec.Compression
	if compression != compress.TypeNone {
		codec, err := compress.Lookup(compression)
		if err != nil {
			return nil, columnHeader{}, err
		}
		encoded, err := codec.Encode(nil, raw)
		if err != nil {
			return nil, columnHeader{}, err
		}
		payload = encoded
	}
	h := columnHeader{
		size:             uint64(len(payload)),
		decompressedSize: uint64(decompressedSize),
		compression:      uint32(compression),
		index:            rg.ColumnIndex(i),
	}
	return payload, h, nil
}

func (fw *Writer) padToAlignment() error {
	pos, err := fw.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	aligned := alignUp(int(pos))
	if aligned == int(pos) {
		return nil
	}
	pad := make([]byte, aligned-int(pos))
	_, err = fw.w.Write(pad)
	return err
}

func (fw *Writer) writeColumnHeader(h columnHeader) error {
	var fixed [columnHeaderFixedSize]byte
	binary.LittleEndian.PutUint64(fixed[0:8], h.offset)
	binary.LittleEndian.PutUint64(fixed[8:16], h.size)
	binary.LittleEndian.PutUint64(fixed[16:24], h.decompressedSize)
	binary.LittleEndian.PutUint32(fixed[24:28], h.compression)
	binary.LittleEndian.PutUint32(fixed[28:32], h._pad)
	if _, err := fw.w.Write(fixed[:]); err != nil {
		return err
	}
	idxBytes, err := encodeIndex(h.index)
	if err != nil {
		return err
	}
	_, err = fw.w.Write(idxBytes)
	return err
}

// Close writes the string table, descriptor table, row-group header table,
// and footer, in that order, sealing the file. The Writer must not be used
// again afterward.
func (fw *Writer) Close() error {
	if !fw.started {
		if err := fw.writeHeader(); err != nil {
			return err
		}
	}

	for _, spec := range fw.specs {
		fw.strings.intern(spec.Name)
	}
	stringsOffset, err := fw.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	blob := fw.strings.bytes()
	if _, err := fw.w.Write(blob); err != nil {
		return err
	}

	for i, spec := range fw.specs {
		d := descriptor{
			name:        fw.strings.intern(spec.Name),
			typ:         typeToUint32(fw.types[i]),
			encoding:    uint32(fw.encs[i]),
			compression: uint32(spec.Compression),
			level:       spec.Level,
		}
		var b [descriptorSize]byte
		putDescriptor(b[:], d)
		if _, err := fw.w.Write(b[:]); err != nil {
			return err
		}
	}

	for _, rgh := range fw.rowGroups {
		var b [rowGroupHeaderSize]byte
		putRowGroupHeader(b[:], rgh)
		if _, err := fw.w.Write(b[:]); err != nil {
			return err
		}
	}

	tail := footerTail{
		stringsOffset: uint64(stringsOffset),
		stringsSize:   uint64(len(blob)),
		rowGroupCount: uint32(len(fw.rowGroups)),
		columnCount:   uint32(len(fw.specs)),
		rowCount:      fw.rowCount,
		magic:         magic,
	}
	var b [footerTailSize]byte
	putFooterTail(b[:], tail)
	_, err = fw.w.Write(b[:])
	return err
}

var errSpecMismatch = errSpecMismatchError("file: column spec count does not match row group")

type errSpecMismatchError string

func (e errSpecMismatchError) Error() string { return string(e) }
