package pma

import "math/bits"

// bitset is a word-packed occupancy bitmap, adapted from BitArray in the
// go-utils root package. Unlike that version it rounds its word count up
// rather than truncating, since PMA capacities start as low as
// InitialCapacity and aren't multiples of bits.UintSize.
type bitset struct {
	words []uint
}

func newBitset(size int) bitset {
	n := (size + bits.UintSize - 1) / bits.UintSize
	if n == 0 {
		n = 1
	}
	return bitset{words: make([]uint, n)}
}

func (b bitset) Get(i int) bool {
	return (b.words[i/bits.UintSize]>>(i%bits.UintSize))&1 == 1
}

func (b bitset) Up(i int) {
	b.words[i/bits.UintSize] |= 1 << (i % bits.UintSize)
}

func (b bitset) Down(i int) {
	b.words[i/bits.UintSize] &^= 1 << (i % bits.UintSize)
}

// count returns the number of set bits in [start, start+length).
func (b bitset) count(start, length int) int {
	n := 0
	for i := start; i < start+length; i++ {
		if b.Get(i) {
			n++
		}
	}
	return n
}
