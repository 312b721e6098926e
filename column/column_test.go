package column

import "testing"

func TestPutAndCursorRoundTripI32(t *testing.T) {
	col := New(TypeI32, EncodingNone)
	want := []int32{0, 1, 2, 3, 100, -5}
	for _, v := range want {
		if err := col.PutI32(v); err != nil {
			t.Fatalf("PutI32(%d): %v", v, err)
		}
	}

	cur := NewCursor(col)
	var got []int32
	for cur.Valid() {
		batch, n := cur.NextBatchI32()
		got = append(got, batch[:n]...)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestPutWrongTypeFails(t *testing.T) {
	col := New(TypeI32, EncodingNone)
	if err := col.PutI64(1); err != ErrTypeMismatch {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestExternalColumnIsImmutable(t *testing.T) {
	col := New(TypeI32, EncodingNone)
	_ = col.PutI32(42)
	buf, n := col.Export()

	ext := NewExternal(TypeI32, EncodingNone, buf, col.Count())
	if err := ext.PutI32(1); err != ErrImmutable {
		t.Fatalf("expected ErrImmutable, got %v", err)
	}

	cur := NewCursor(ext)
	batch, got := cur.NextBatchI32()
	if got != 1 || batch[0] != 42 {
		t.Fatalf("round trip through external column failed: %v %d", batch, got)
	}
	if n != 4 {
		t.Fatalf("expected offset 4, got %d", n)
	}
}

func TestBitPackingRoundTrip(t *testing.T) {
	col := New(TypeBit, EncodingNone)
	pattern := make([]bool, 130)
	for i := range pattern {
		pattern[i] = i%3 == 0
	}
	for _, v := range pattern {
		if err := col.PutBit(v); err != nil {
			t.Fatalf("PutBit: %v", err)
		}
	}

	cur := NewCursor(col)
	var got []bool
	for cur.Valid() {
		word, n := cur.NextBatchBit()
		for i := 0; i < n; i++ {
			got = append(got, (word>>uint(i))&1 == 1)
		}
	}
	if len(got) != len(pattern) {
		t.Fatalf("got %d bits, want %d", len(got), len(pattern))
	}
	for i := range pattern {
		if got[i] != pattern[i] {
			t.Fatalf("bit %d: got %v want %v", i, got[i], pattern[i])
		}
	}
}

func TestStringAppendOffsetInvariant(t *testing.T) {
	col := New(TypeStr, EncodingNone)
	strs := []string{"a", "bb", "ccc", ""}
	wantOffset := 0
	for _, s := range strs {
		if err := col.PutStr(s); err != nil {
			t.Fatalf("PutStr: %v", err)
		}
		wantOffset += len(s) + 1
	}
	_, offset := col.Export()
	if offset != wantOffset {
		t.Fatalf("offset = %d, want %d", offset, wantOffset)
	}

	cur := NewCursor(col)
	var got []string
	for cur.Valid() {
		batch, n := cur.NextBatchStr()
		for i := 0; i < n; i++ {
			got = append(got, string(batch[i]))
		}
	}
	if len(got) != len(strs) {
		t.Fatalf("got %v, want %v", got, strs)
	}
	for i := range strs {
		if got[i] != strs[i] {
			t.Fatalf("index %d: got %q want %q", i, got[i], strs[i])
		}
	}
}

func TestIndexMinMaxMonotonic(t *testing.T) {
	col := New(TypeI32, EncodingNone)
	values := []int32{5, 1, 9, -3, 4}
	for _, v := range values {
		_ = col.PutI32(v)
	}
	idx := col.Index()
	if idx.MinI32 != -3 || idx.MaxI32 != 9 {
		t.Fatalf("index = [%d, %d], want [-3, 9]", idx.MinI32, idx.MaxI32)
	}
	if idx.Count != len(values) {
		t.Fatalf("count = %d, want %d", idx.Count, len(values))
	}
}

func TestRewind(t *testing.T) {
	col := New(TypeI32, EncodingNone)
	for i := int32(0); i < 5; i++ {
		_ = col.PutI32(i)
	}
	cur := NewCursor(col)
	_, _ = cur.NextBatchI32()
	if cur.Valid() {
		t.Fatalf("expected exhausted cursor after one batch of 5")
	}
	cur.Rewind()
	if !cur.Valid() {
		t.Fatalf("expected cursor valid after rewind")
	}
	batch, n := cur.NextBatchI32()
	if n != 5 || batch[0] != 0 {
		t.Fatalf("rewind did not reset to start: %v", batch)
	}
}

func TestGrowthAcrossManyAppends(t *testing.T) {
	col := New(TypeI64, EncodingNone)
	const n = 10000
	for i := int64(0); i < n; i++ {
		if err := col.PutI64(i); err != nil {
			t.Fatalf("PutI64(%d): %v", i, err)
		}
	}
	cur := NewCursor(col)
	var count int64
	for cur.Valid() {
		batch, got := cur.NextBatchI64()
		for i := 0; i < got; i++ {
			if batch[i] != count {
				t.Fatalf("value at %d = %d, want %d", count, batch[i], count)
			}
			count++
		}
	}
	if count != n {
		t.Fatalf("read %d values, want %d", count, n)
	}
}
