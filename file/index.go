package file

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/solidcoredata/columnix/column"
)

// encodeIndex serializes idx per spec's "column index whose layout mirrors
// §3's index fields for the column's type": a common row count, then only
// the fields relevant to the column's type. String columns additionally
// carry their bloom filter, length-prefixed since its encoded size varies
// with the estimates it was built from.
func encodeIndex(idx *column.Index) ([]byte, error) {
	var buf bytes.Buffer
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], uint64(idx.Count))
	buf.Write(countBuf[:])

	switch idx.Type {
	case column.TypeBit:
		var b [16]byte
		binary.LittleEndian.PutUint64(b[0:8], uint64(idx.TrueCount))
		binary.LittleEndian.PutUint64(b[8:16], uint64(idx.FalseCount))
		buf.Write(b[:])
	case column.TypeI32:
		var b [8]byte
		binary.LittleEndian.PutUint32(b[0:4], uint32(idx.MinI32))
		binary.LittleEndian.PutUint32(b[4:8], uint32(idx.MaxI32))
		buf.Write(b[:])
	case column.TypeI64:
		var b [16]byte
		binary.LittleEndian.PutUint64(b[0:8], uint64(idx.MinI64))
		binary.LittleEndian.PutUint64(b[8:16], uint64(idx.MaxI64))
		buf.Write(b[:])
	case column.TypeF32:
		var b [8]byte
		binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(idx.MinF32))
		binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(idx.MaxF32))
		buf.Write(b[:])
	case column.TypeF64:
		var b [16]byte
		binary.LittleEndian.PutUint64(b[0:8], math.Float64bits(idx.MinF64))
		binary.LittleEndian.PutUint64(b[8:16], math.Float64bits(idx.MaxF64))
		buf.Write(b[:])
	case column.TypeStr:
		writeLenPrefixed(&buf, []byte(idx.MinStr))
		writeLenPrefixed(&buf, []byte(idx.MaxStr))
		var filterBuf bytes.Buffer
		if idx.Filter() != nil {
			if _, err := idx.Filter().WriteTo(&filterBuf); err != nil {
				return nil, err
			}
		}
		writeLenPrefixed(&buf, filterBuf.Bytes())
	}
	return buf.Bytes(), nil
}

func writeLenPrefixed(buf *bytes.Buffer, data []byte) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf.Write(lenBuf[:])
	buf.Write(data)
}

// decodeIndex parses the layout encodeIndex produces for a column of typ,
// returning the index and the number of bytes consumed from buf.
func decodeIndex(typ column.Type, buf []byte) (*column.Index, int, error) {
	idx := &column.Index{Type: typ}
	idx.Count = int(binary.LittleEndian.Uint64(buf[0:8]))
	pos := 8

	switch typ {
	case column.TypeBit:
		idx.TrueCount = int(binary.LittleEndian.Uint64(buf[pos : pos+8]))
		idx.FalseCount = int(binary.LittleEndian.Uint64(buf[pos+8 : pos+16]))
		pos += 16
	case column.TypeI32:
		idx.MinI32 = int32(binary.LittleEndian.Uint32(buf[pos : pos+4]))
		idx.MaxI32 = int32(binary.LittleEndian.Uint32(buf[pos+4 : pos+8]))
		pos += 8
	case column.TypeI64:
		idx.MinI64 = int64(binary.LittleEndian.Uint64(buf[pos : pos+8]))
		idx.MaxI64 = int64(binary.LittleEndian.Uint64(buf[pos+8 : pos+16]))
		pos += 16
	case column.TypeF32:
		idx.MinF32 = math.Float32frombits(binary.LittleEndian.Uint32(buf[pos : pos+4]))
		idx.MaxF32 = math.Float32frombits(binary.LittleEndian.Uint32(buf[pos+4 : pos+8]))
		pos += 8
	case column.TypeF64:
		idx.MinF64 = math.Float64frombits(binary.LittleEndian.Uint64(buf[pos : pos+8]))
		idx.MaxF64 = math.Float64frombits(binary.LittleEndian.Uint64(buf[pos+8 : pos+16]))
		pos += 16
	case column.TypeStr:
		minStr, n := readLenPrefixed(buf[pos:])
		pos += n
		maxStr, n := readLenPrefixed(buf[pos:])
		pos += n
		idx.MinStr = string(minStr)
		idx.MaxStr = string(maxStr)
		filterBytes, n := readLenPrefixed(buf[pos:])
		pos += n
		if len(filterBytes) > 0 {
			filter := &bloom.BloomFilter{}
			if _, err := filter.ReadFrom(bytes.NewReader(filterBytes)); err != nil {
				return nil, 0, err
			}
			idx.SetFilter(filter)
		}
	}
	return idx, pos, nil
}

func readLenPrefixed(buf []byte) ([]byte, int) {
	n := int(binary.LittleEndian.Uint32(buf[0:4]))
	return buf[4 : 4+n], 4 + n
}

// decodeColumnHeader parses one column header (fixed fields plus its
// serialized index) starting at buf[0], returning the header and the
// number of bytes consumed — the caller's cue for where the next column's
// header begins.
func decodeColumnHeader(buf []byte, typ column.Type) (columnHeader, int, error) {
	h := columnHeader{
		offset:           binary.LittleEndian.Uint64(buf[0:8]),
		size:             binary.LittleEndian.Uint64(buf[8:16]),
		decompressedSize: binary.LittleEndian.Uint64(buf[16:24]),
		compression:      binary.LittleEndian.Uint32(buf[24:28]),
		_pad:             binary.LittleEndian.Uint32(buf[28:32]),
	}
	idx, n, err := decodeIndex(typ, buf[columnHeaderFixedSize:])
	if err != nil {
		return columnHeader{}, 0, err
	}
	h.index = idx
	return h, columnHeaderFixedSize + n, nil
}
