// Package file implements the engine's on-disk row-group file format: a
// header magic, a body of row-group sections (each opening with per-column
// headers carrying offsets, sizes, and a serialized column.Index, followed
// by that row group's 8-byte-aligned column blobs), and a footer carrying
// an interned column-name string table, per-column descriptors, and
// per-row-group headers. It is grounded in the teacher's sst.Writer
// (footer/CRC/offset-patching style) generalized from a single sorted KV
// file to a sequence of typed, indexed column blobs.
package file

import (
	"encoding/binary"
	"errors"

	"github.com/solidcoredata/columnix/column"
)

// magic identifies a columnix file, both at the header and trailing the
// footer, per spec.
const magic uint64 = 0x65726F7473637A1D

// writeAlign is the byte alignment every column blob's start is padded to.
const writeAlign = 8

var (
	// ErrBadMagic is returned when a file's header or footer magic does not
	// match, indicating a non-columnix or truncated file.
	ErrBadMagic = errors.New("file: bad magic")
	// ErrTruncated is returned when a file is shorter than its footer
	// requires.
	ErrTruncated = errors.New("file: truncated")
)

// descriptor is the per-column, file-wide schema entry: name is an offset
// into the string table, not the name itself.
type descriptor struct {
	name        uint32
	typ         uint32
	encoding    uint32
	compression uint32
	level       int32
	_pad        uint32
}

const descriptorSize = 4 + 4 + 4 + 4 + 4 + 4

func putDescriptor(buf []byte, d descriptor) {
	binary.LittleEndian.PutUint32(buf[0:4], d.name)
	binary.LittleEndian.PutUint32(buf[4:8], d.typ)
	binary.LittleEndian.PutUint32(buf[8:12], d.encoding)
	binary.LittleEndian.PutUint32(buf[12:16], d.compression)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(d.level))
	binary.LittleEndian.PutUint32(buf[20:24], d._pad)
}

func getDescriptor(buf []byte) descriptor {
	return descriptor{
		name:        binary.LittleEndian.Uint32(buf[0:4]),
		typ:         binary.LittleEndian.Uint32(buf[4:8]),
		encoding:    binary.LittleEndian.Uint32(buf[8:12]),
		compression: binary.LittleEndian.Uint32(buf[12:16]),
		level:       int32(binary.LittleEndian.Uint32(buf[16:20])),
		_pad:        binary.LittleEndian.Uint32(buf[20:24]),
	}
}

// rowGroupHeader locates one row group's section within the file.
type rowGroupHeader struct {
	size   uint64
	offset uint64
}

const rowGroupHeaderSize = 8 + 8

func putRowGroupHeader(buf []byte, h rowGroupHeader) {
	binary.LittleEndian.PutUint64(buf[0:8], h.size)
	binary.LittleEndian.PutUint64(buf[8:16], h.offset)
}

func getRowGroupHeader(buf []byte) rowGroupHeader {
	return rowGroupHeader{
		size:   binary.LittleEndian.Uint64(buf[0:8]),
		offset: binary.LittleEndian.Uint64(buf[8:16]),
	}
}

// columnHeader locates and describes one column's blob within a row group's
// section, plus the index summarizing its values.
type columnHeader struct {
	offset           uint64
	size             uint64
	decompressedSize uint64
	compression      uint32
	_pad             uint32
	index            *column.Index
}

const columnHeaderFixedSize = 8 + 8 + 8 + 4 + 4

// footerTail is the fixed-size region at the very end of the file.
type footerTail struct {
	stringsOffset  uint64
	stringsSize    uint64
	rowGroupCount  uint32
	columnCount    uint32
	rowCount       uint64
	magic          uint64
}

const footerTailSize = 8 + 8 + 4 + 4 + 8 + 8

func putFooterTail(buf []byte, f footerTail) {
	binary.LittleEndian.PutUint64(buf[0:8], f.stringsOffset)
	binary.LittleEndian.PutUint64(buf[8:16], f.stringsSize)
	binary.LittleEndian.PutUint32(buf[16:20], f.rowGroupCount)
	binary.LittleEndian.PutUint32(buf[20:24], f.columnCount)
	binary.LittleEndian.PutUint64(buf[24:32], f.rowCount)
	binary.LittleEndian.PutUint64(buf[32:40], f.magic)
}

func getFooterTail(buf []byte) footerTail {
	return footerTail{
		stringsOffset: binary.LittleEndian.Uint64(buf[0:8]),
		stringsSize:   binary.LittleEndian.Uint64(buf[8:16]),
		rowGroupCount: binary.LittleEndian.Uint32(buf[16:20]),
		columnCount:   binary.LittleEndian.Uint32(buf[20:24]),
		rowCount:      binary.LittleEndian.Uint64(buf[24:32]),
		magic:         binary.LittleEndian.Uint64(buf[32:40]),
	}
}

func alignUp(n int) int {
	rem := n % writeAlign
	if rem == 0 {
		return n
	}
	return n + (writeAlign - rem)
}

func typeToUint32(t column.Type) uint32 { return uint32(t) }
func uint32ToType(v uint32) column.Type { return column.Type(v) }
