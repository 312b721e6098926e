package match

// simdWidthBytes is the vector width this build targets. The spec allows
// 128, 256 or 512-bit widths and asks only that the choice be singular and
// that the scalar fallback agree bit-for-bit; 256 (AVX2-shaped) is picked
// here as the portable middle ground, matching the width
// janpfeifer-go-highway's ops_avx2.go targets.
const simdWidthBytes = 32

// Numeric is the closed set of primitive column value types the match
// kernels compare.
type Numeric interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// scalarMatch is the source of truth: a plain loop comparing every element
// below size. NaN comparisons against float cmp values naturally yield
// false for every op here, since Go's <, > and == already implement IEEE
// 754 unordered comparisons.
func scalarMatch[T Numeric](size int, batch []T, cmp T, op func(T, T) bool) Mask {
	var mask Mask
	for i := 0; i < size; i++ {
		if op(batch[i], cmp) {
			mask |= Mask(1) << uint(i)
		}
	}
	return mask
}

// wideMatch partitions a full 64-element batch into 64/(W/sizeof(T)) lanes
// of simdWidthBytes each and combines per-lane results, mirroring the
// chunking math in original_source/lib/match.c's CX_SIMD_MATCH_DEFINITION
// macro. Each lane is evaluated with the same scalar predicate, so the
// result is bit-identical to scalarMatch(64, ...) by construction; a real
// SIMD backend would replace the inner loop with a single vector compare
// per lane without changing this function's signature or contract.
func wideMatch[T Numeric](batch []T, cmp T, op func(T, T) bool) Mask {
	var zero T
	elemSize := sizeofNumeric(zero)
	lanes := simdWidthBytes / elemSize
	if lanes < 1 {
		lanes = 1
	}
	chunks := 64 / lanes
	var mask Mask
	for c := 0; c < chunks; c++ {
		base := c * lanes
		var laneMask uint
		for l := 0; l < lanes; l++ {
			if op(batch[base+l], cmp) {
				laneMask |= 1 << uint(l)
			}
		}
		mask |= Mask(laneMask) << uint(base)
	}
	return mask
}

func sizeofNumeric[T Numeric](v T) int {
	switch any(v).(type) {
	case int32, float32:
		return 4
	case int64, float64:
		return 8
	default:
		return 8
	}
}

// dispatch implements the spec's §4.4 dispatch rule: call the wide variant
// only for a full 64-element batch, otherwise the scalar one.
func dispatch[T Numeric](size int, batch []T, cmp T, op func(T, T) bool) Mask {
	if size == 0 {
		return 0
	}
	if size == 64 {
		return wideMatch(batch, cmp, op)
	}
	return scalarMatch(size, batch, cmp, op)
}

func eq[T Numeric](a, b T) bool { return a == b }
func lt[T Numeric](a, b T) bool { return a < b }
func gt[T Numeric](a, b T) bool { return a > b }

// EqI32 returns the mask of rows where batch[i] == cmp.
func EqI32(size int, batch []int32, cmp int32) Mask { return dispatch(size, batch, cmp, eq[int32]) }

// LtI32 returns the mask of rows where batch[i] < cmp.
func LtI32(size int, batch []int32, cmp int32) Mask { return dispatch(size, batch, cmp, lt[int32]) }

// GtI32 returns the mask of rows where batch[i] > cmp.
func GtI32(size int, batch []int32, cmp int32) Mask { return dispatch(size, batch, cmp, gt[int32]) }

// EqI64 returns the mask of rows where batch[i] == cmp.
func EqI64(size int, batch []int64, cmp int64) Mask { return dispatch(size, batch, cmp, eq[int64]) }

// LtI64 returns the mask of rows where batch[i] < cmp.
func LtI64(size int, batch []int64, cmp int64) Mask { return dispatch(size, batch, cmp, lt[int64]) }

// GtI64 returns the mask of rows where batch[i] > cmp.
func GtI64(size int, batch []int64, cmp int64) Mask { return dispatch(size, batch, cmp, gt[int64]) }

// EqF32 returns the mask of rows where batch[i] == cmp. NaN never matches.
func EqF32(size int, batch []float32, cmp float32) Mask {
	return dispatch(size, batch, cmp, eq[float32])
}

// LtF32 returns the mask of rows where batch[i] < cmp. NaN never matches.
func LtF32(size int, batch []float32, cmp float32) Mask {
	return dispatch(size, batch, cmp, lt[float32])
}

// GtF32 returns the mask of rows where batch[i] > cmp. NaN never matches.
func GtF32(size int, batch []float32, cmp float32) Mask {
	return dispatch(size, batch, cmp, gt[float32])
}

// EqF64 returns the mask of rows where batch[i] == cmp. NaN never matches.
func EqF64(size int, batch []float64, cmp float64) Mask {
	return dispatch(size, batch, cmp, eq[float64])
}

// LtF64 returns the mask of rows where batch[i] < cmp. NaN never matches.
func LtF64(size int, batch []float64, cmp float64) Mask {
	return dispatch(size, batch, cmp, lt[float64])
}

// GtF64 returns the mask of rows where batch[i] > cmp. NaN never matches.
func GtF64(size int, batch []float64, cmp float64) Mask {
	return dispatch(size, batch, cmp, gt[float64])
}
