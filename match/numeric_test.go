package match

import "testing"

func TestEqLtGtI32Scalar(t *testing.T) {
	batch := []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if got := LtI32(len(batch), batch, 10); got != 0x3FF {
		t.Fatalf("LtI32(<10) = %#x, want 0x3FF", got)
	}
	if got := LtI32(len(batch), batch, 0); got != 0 {
		t.Fatalf("LtI32(<0) = %#x, want 0", got)
	}
	if got := EqI32(len(batch), batch, 3); got != 0x008 {
		t.Fatalf("EqI32(==3) = %#x, want 0x008", got)
	}
	if got := GtI32(len(batch), batch, 8); got != 0x200 {
		t.Fatalf("GtI32(>8) = %#x, want 0x200", got)
	}
}

func TestScalarAndWideAgree(t *testing.T) {
	batch := make([]int32, 64)
	for i := range batch {
		batch[i] = int32(i)
	}
	for _, cmp := range []int32{-1, 0, 1, 31, 32, 63, 64, 1000} {
		wide := EqI32(64, batch, cmp)
		var scalar Mask
		for i, v := range batch {
			if v == cmp {
				scalar |= Mask(1) << uint(i)
			}
		}
		if wide != scalar {
			t.Fatalf("eq cmp=%d: wide=%#x scalar=%#x", cmp, wide, scalar)
		}

		wideLt := LtI32(64, batch, cmp)
		var scalarLt Mask
		for i, v := range batch {
			if v < cmp {
				scalarLt |= Mask(1) << uint(i)
			}
		}
		if wideLt != scalarLt {
			t.Fatalf("lt cmp=%d: wide=%#x scalar=%#x", cmp, wideLt, scalarLt)
		}
	}
}

func TestEmptyBatchIsZero(t *testing.T) {
	if got := EqI32(0, nil, 5); got != 0 {
		t.Fatalf("EqI32 on empty batch = %#x, want 0", got)
	}
	if got := EqF64(0, nil, 5); got != 0 {
		t.Fatalf("EqF64 on empty batch = %#x, want 0", got)
	}
}

func TestNaNNeverMatches(t *testing.T) {
	nan := float64(0)
	nan /= nan // produces NaN without relying on math.NaN constant folding
	batch := []float64{1, 2, nan, 4}
	if got := EqF64(len(batch), batch, nan); got != 0 {
		t.Fatalf("EqF64(nan) = %#x, want 0", got)
	}
	if got := LtF64(len(batch), batch, nan); got != 0 {
		t.Fatalf("LtF64(nan) = %#x, want 0", got)
	}
	if got := GtF64(len(batch), batch, nan); got != 0 {
		t.Fatalf("GtF64(nan) = %#x, want 0", got)
	}
	// cmp is not NaN, but batch[2] is: that row must never match either.
	if got := EqF64(len(batch), batch, 1); got&(1<<2) != 0 {
		t.Fatalf("EqF64 matched the NaN row")
	}
}

func TestEqBit(t *testing.T) {
	word := uint64(0b1010)
	if got := EqBit(4, word, true); got != 0b1010 {
		t.Fatalf("EqBit(true) = %#b, want 0b1010", got)
	}
	if got := EqBit(4, word, false); got != 0b0101 {
		t.Fatalf("EqBit(false) = %#b, want 0b0101", got)
	}
}
