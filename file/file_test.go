package file

import (
	"bytes"
	"testing"

	"github.com/solidcoredata/columnix/column"
	"github.com/solidcoredata/columnix/compress"
	"github.com/solidcoredata/columnix/rowgroup"
)

// seekBuffer adapts a bytes.Buffer into an io.WriteSeeker backed by an
// in-memory slice, standing in for a real *os.File in tests.
type seekBuffer struct {
	buf []byte
	pos int
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	end := s.pos + len(p)
	if end > len(s.buf) {
		s.buf = append(s.buf, make([]byte, end-len(s.buf))...)
	}
	copy(s.buf[s.pos:end], p)
	s.pos = end
	return len(p), nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		s.pos = int(offset)
	case 1:
		s.pos += int(offset)
	case 2:
		s.pos = len(s.buf) + int(offset)
	}
	return int64(s.pos), nil
}

func buildRowGroup(t *testing.T, rows int) *rowgroup.RowGroup {
	t.Helper()
	i32Col := column.New(column.TypeI32, column.EncodingNone)
	strCol := column.New(column.TypeStr, column.EncodingNone)
	for i := 0; i < rows; i++ {
		if err := i32Col.PutI32(int32(i)); err != nil {
			t.Fatalf("PutI32: %v", err)
		}
		if err := strCol.PutStr("row"); err != nil {
			t.Fatalf("PutStr: %v", err)
		}
	}
	rg := rowgroup.New()
	_ = rg.AddColumn(i32Col)
	_ = rg.AddColumn(strCol)
	return rg
}

func TestWriteReadRoundTripUncompressed(t *testing.T) {
	rg := buildRowGroup(t, 100)
	sb := &seekBuffer{}
	w := NewWriter(sb)
	specs := []ColumnSpec{{Name: "id", Compression: compress.TypeNone}, {Name: "label", Compression: compress.TypeNone}}
	if err := w.Add(rg, specs); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := Open(sb.buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r.RowGroupCount() != 1 {
		t.Fatalf("RowGroupCount = %d, want 1", r.RowGroupCount())
	}
	if r.RowCount() != 100 {
		t.Fatalf("RowCount = %d, want 100", r.RowCount())
	}
	schema := r.Schema()
	if len(schema) != 2 || schema[0].Name != "id" || schema[1].Name != "label" {
		t.Fatalf("Schema = %+v", schema)
	}

	readRG, err := r.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	if readRG.Count() != 100 {
		t.Fatalf("row group count = %d, want 100", readRG.Count())
	}
	cur := column.NewCursor(readRG.Column(0))
	batch, n := cur.NextBatchI32()
	if n != 64 || batch[0] != 0 || batch[63] != 63 {
		t.Fatalf("first batch wrong: n=%d batch[0]=%d batch[63]=%d", n, batch[0], batch[63])
	}
	if readRG.ColumnIndex(0).MaxI32 != 99 {
		t.Fatalf("index MaxI32 = %d, want 99", readRG.ColumnIndex(0).MaxI32)
	}
}

func TestWriteReadRoundTripCompressed(t *testing.T) {
	rg := buildRowGroup(t, 200)
	sb := &seekBuffer{}
	w := NewWriter(sb)
	specs := []ColumnSpec{{Name: "id", Compression: compress.TypeLZ4}, {Name: "label", Compression: compress.TypeZSTD}}
	if err := w.Add(rg, specs); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := Open(sb.buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	readRG, err := r.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	wantRaw, wantLen := rg.Column(0).Export()
	gotRaw, gotLen := readRG.Column(0).Export()
	if gotLen != wantLen || !bytes.Equal(gotRaw, wantRaw) {
		t.Fatal("decompressed column 0 bytes do not match original")
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	data := make([]byte, 64)
	if _, err := Open(data); err != ErrBadMagic {
		t.Fatalf("Open err = %v, want ErrBadMagic", err)
	}
}

func TestOpenRejectsTruncated(t *testing.T) {
	if _, err := Open([]byte{1, 2, 3}); err != ErrTruncated {
		t.Fatalf("Open err = %v, want ErrTruncated", err)
	}
}

func TestMultipleRowGroupsPreserveOrderAndAlignment(t *testing.T) {
	sb := &seekBuffer{}
	w := NewWriter(sb)
	specs := []ColumnSpec{{Name: "id", Compression: compress.TypeNone}, {Name: "label", Compression: compress.TypeNone}}
	for _, rows := range []int{10, 70, 1} {
		rg := buildRowGroup(t, rows)
		if err := w.Add(rg, specs); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := Open(sb.buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r.RowGroupCount() != 3 {
		t.Fatalf("RowGroupCount = %d, want 3", r.RowGroupCount())
	}
	wantRows := []int{10, 70, 1}
	for i, want := range wantRows {
		rg, err := r.RowGroup(i)
		if err != nil {
			t.Fatalf("RowGroup(%d): %v", i, err)
		}
		if rg.Count() != want {
			t.Fatalf("RowGroup(%d).Count() = %d, want %d", i, rg.Count(), want)
		}
	}
}
