package match

import "bytes"

// Location identifies where a STR_CONTAINS needle must appear.
type Location int

const (
	LocationStart Location = iota
	LocationEnd
	LocationAny
)

// asciiFold lowercases ASCII letters only; per spec, case-insensitive string
// matching uses ASCII folding, not locale-aware Unicode case folding.
func asciiFold(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func foldCopy(s []byte) []byte {
	out := make([]byte, len(s))
	for i, b := range s {
		out[i] = asciiFold(b)
	}
	return out
}

func strEq(a, b []byte, caseSensitive bool) bool {
	if len(a) != len(b) {
		return false
	}
	if caseSensitive {
		return bytes.Equal(a, b)
	}
	for i := range a {
		if asciiFold(a[i]) != asciiFold(b[i]) {
			return false
		}
	}
	return true
}

func strLess(a, b []byte, caseSensitive bool) bool {
	if caseSensitive {
		return bytes.Compare(a, b) < 0
	}
	return bytes.Compare(foldCopy(a), foldCopy(b)) < 0
}

func strGreater(a, b []byte, caseSensitive bool) bool {
	if caseSensitive {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(foldCopy(a), foldCopy(b)) > 0
}

func strContains(haystack, needle []byte, caseSensitive bool, loc Location) bool {
	if len(needle) > len(haystack) {
		return false
	}
	h, n := haystack, needle
	if !caseSensitive {
		h, n = foldCopy(haystack), foldCopy(needle)
	}
	switch loc {
	case LocationStart:
		return bytes.HasPrefix(h, n)
	case LocationEnd:
		return bytes.HasSuffix(h, n)
	default:
		return bytes.Contains(h, n)
	}
}

// EqStr returns the mask of rows equal to cmp.
func EqStr(size int, batch [][]byte, cmp []byte, caseSensitive bool) Mask {
	var mask Mask
	for i := 0; i < size; i++ {
		if strEq(batch[i], cmp, caseSensitive) {
			mask |= Mask(1) << uint(i)
		}
	}
	return mask
}

// LtStr returns the mask of rows lexically less than cmp.
func LtStr(size int, batch [][]byte, cmp []byte, caseSensitive bool) Mask {
	var mask Mask
	for i := 0; i < size; i++ {
		if strLess(batch[i], cmp, caseSensitive) {
			mask |= Mask(1) << uint(i)
		}
	}
	return mask
}

// GtStr returns the mask of rows lexically greater than cmp.
func GtStr(size int, batch [][]byte, cmp []byte, caseSensitive bool) Mask {
	var mask Mask
	for i := 0; i < size; i++ {
		if strGreater(batch[i], cmp, caseSensitive) {
			mask |= Mask(1) << uint(i)
		}
	}
	return mask
}

// ContainsStr returns the mask of rows containing needle at the given
// location (start, end, or anywhere).
func ContainsStr(size int, batch [][]byte, needle []byte, caseSensitive bool, loc Location) Mask {
	var mask Mask
	for i := 0; i < size; i++ {
		if strContains(batch[i], needle, caseSensitive, loc) {
			mask |= Mask(1) << uint(i)
		}
	}
	return mask
}
