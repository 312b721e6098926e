package match

import "github.com/bits-and-blooms/bitset"

// EqBit returns the mask of rows in a packed 64-bit word that equal cmp,
// masked down to the word's actual row count (size). It is built on
// bits-and-blooms/bitset so that complementing a word (cmp == false) reuses
// a tested bit-twiddling implementation instead of a second hand-rolled one.
func EqBit(size int, word uint64, cmp bool) Mask {
	if size <= 0 {
		return 0
	}
	bs := bitset.From([]uint64{word})
	if !cmp {
		bs = bs.Complement()
	}
	return bs.Bytes()[0] & Full(size)
}
