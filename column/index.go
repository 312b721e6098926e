package column

import (
	"github.com/bits-and-blooms/bloom/v3"
)

// Index holds the running min/max/null summary the engine maintains per
// column per row group, updated incrementally on every successful append.
// It mirrors the original columnix cx_index tagged union, but keeps one
// struct with per-type fields rather than an untagged C union, since Go has
// no union type and the closed Type set makes a flat struct cheaper than
// an interface per value.
type Index struct {
	Type  Type
	Count int

	MinI32, MaxI32 int32
	MinI64, MaxI64 int64
	MinF32, MaxF32 float32
	MinF64, MaxF64 float64
	MinStr, MaxStr string

	// TrueCount and FalseCount apply only to TypeBit; FalseCount is always
	// Count-TrueCount but kept explicit to match the spec's description of
	// "counts of true/false rows" rather than a derived value.
	TrueCount, FalseCount int

	seeded bool

	// strFilter is a probabilistic "definitely absent" check over every
	// string ever appended to the column, consulted by the predicate
	// engine's index-match phase before falling back to lexical min/max
	// bounds. Reserved for TypeStr; nil otherwise.
	strFilter *bloom.BloomFilter
}

// newIndex builds an Index for typ. String columns get a bloom filter sized
// for a few thousand distinct values per row group; it only ever shrinks the
// set of batches a scan needs to visit, so an undersized estimate costs
// extra scanning, never incorrect results.
func newIndex(typ Type) *Index {
	idx := &Index{Type: typ}
	if typ == TypeStr {
		idx.strFilter = bloom.NewWithEstimates(4096, 0.01)
	}
	return idx
}

func (idx *Index) updateI32(v int32) {
	if !idx.seeded {
		idx.MinI32, idx.MaxI32 = v, v
		idx.seeded = true
	} else {
		if v < idx.MinI32 {
			idx.MinI32 = v
		}
		if v > idx.MaxI32 {
			idx.MaxI32 = v
		}
	}
	idx.Count++
}

func (idx *Index) updateI64(v int64) {
	if !idx.seeded {
		idx.MinI64, idx.MaxI64 = v, v
		idx.seeded = true
	} else {
		if v < idx.MinI64 {
			idx.MinI64 = v
		}
		if v > idx.MaxI64 {
			idx.MaxI64 = v
		}
	}
	idx.Count++
}

func (idx *Index) updateF32(v float32) {
	if !idx.seeded {
		idx.MinF32, idx.MaxF32 = v, v
		idx.seeded = true
	} else {
		if v < idx.MinF32 {
			idx.MinF32 = v
		}
		if v > idx.MaxF32 {
			idx.MaxF32 = v
		}
	}
	idx.Count++
}

func (idx *Index) updateF64(v float64) {
	if !idx.seeded {
		idx.MinF64, idx.MaxF64 = v, v
		idx.seeded = true
	} else {
		if v < idx.MinF64 {
			idx.MinF64 = v
		}
		if v > idx.MaxF64 {
			idx.MaxF64 = v
		}
	}
	idx.Count++
}

func (idx *Index) updateStr(v string) {
	// Copy on the way in: v may alias caller-owned or transient memory.
	// The original C implementation retained pointers into caller memory
	// here, which the spec calls out as a bug; Go's string assignment
	// already copies the header but not the backing array, so we force an
	// independent copy via []byte round-trip.
	owned := string([]byte(v))
	if !idx.seeded {
		idx.MinStr, idx.MaxStr = owned, owned
		idx.seeded = true
	} else {
		if owned < idx.MinStr {
			idx.MinStr = owned
		}
		if owned > idx.MaxStr {
			idx.MaxStr = owned
		}
	}
	idx.Count++
	idx.strFilter.AddString(owned)
}

func (idx *Index) updateBit(v bool) {
	if v {
		idx.TrueCount++
	} else {
		idx.FalseCount++
	}
	idx.Count++
}

// Filter returns the column's string bloom filter, or nil for non-string
// columns. Exposed so package file can serialize and restore it without
// replaying every PutStr call.
func (idx *Index) Filter() *bloom.BloomFilter { return idx.strFilter }

// SetFilter installs a bloom filter reconstructed from a serialized file,
// bypassing the incremental AddString path updateStr uses.
func (idx *Index) SetFilter(f *bloom.BloomFilter) { idx.strFilter = f }

// MayContainStr reports whether a string value could possibly be present in
// the column, using the bloom filter. A false result is exact (the value is
// definitely absent); a true result means "maybe" and callers must still
// fall back to a full scan or other bounds. Only valid for TypeStr.
func (idx *Index) MayContainStr(v string) bool {
	if idx.strFilter == nil {
		return true
	}
	return idx.strFilter.TestString(v)
}
