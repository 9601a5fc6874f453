// Package bitset implements a dense integer set, used to track
// deleted node ids, and a sparse one for small id sets.
//
// Dense is a simplified, stripped-down word-array bitset in the style
// of github.com/gaissmai/bart's internal/bitset package: a slice of
// uint64 words, growing on demand, with NextSet iteration by
// trailing-zero scan.
package bitset

import "math/bits"

const wordSize = 64
const log2WordSize = 6

// Dense is a growable bitset backed by a slice of 64-bit words.
// Appropriate for the deleted-node set, whose domain spans the full
// node id range.
type Dense struct {
	words []uint64
}

// NewDense returns an empty Dense bitset.
func NewDense() *Dense {
	return &Dense{}
}

func wordsNeeded(i uint) int {
	return int(i+wordSize) >> log2WordSize
}

func bitIndex(i uint) uint {
	return i & (wordSize - 1)
}

func (d *Dense) capacity() uint {
	return uint(len(d.words)) * wordSize
}

func (d *Dense) extend(i uint) {
	needed := wordsNeeded(i)
	if len(d.words) >= needed {
		return
	}
	grown := make([]uint64, needed)
	copy(grown, d.words)
	d.words = grown
}

// Test reports whether bit i is set.
func (d *Dense) Test(i uint) bool {
	if i >= d.capacity() {
		return false
	}
	return d.words[i>>log2WordSize]&(1<<bitIndex(i)) != 0
}

// Set sets bit i, growing the backing storage if needed.
func (d *Dense) Set(i uint) {
	d.extend(i)
	d.words[i>>log2WordSize] |= 1 << bitIndex(i)
}

// Clear clears bit i. A no-op if i is beyond current capacity.
func (d *Dense) Clear(i uint) {
	if i >= d.capacity() {
		return
	}
	d.words[i>>log2WordSize] &^= 1 << bitIndex(i)
}

// Count returns the number of set bits.
func (d *Dense) Count() int {
	var n int
	for _, w := range d.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Reset replaces the backing storage with a fresh zeroed bitset large
// enough for size bits, discarding all previously set bits. Used by
// compaction to reallocate the deleted-set after ids shift down.
func (d *Dense) Reset(size int) {
	if size <= 0 {
		d.words = nil
		return
	}
	d.words = make([]uint64, wordsNeeded(uint(size)))
}

// Clone returns an independent copy of d.
func (d *Dense) Clone() *Dense {
	c := &Dense{words: make([]uint64, len(d.words))}
	copy(c.words, d.words)
	return c
}

// NextSet returns the next set bit at or after i, and false if none
// remain.
func (d *Dense) NextSet(i uint) (uint, bool) {
	x := int(i >> log2WordSize)
	if x >= len(d.words) {
		return 0, false
	}
	word := d.words[x] >> bitIndex(i)
	if word != 0 {
		return i + uint(bits.TrailingZeros64(word)), true
	}
	for x++; x < len(d.words); x++ {
		if d.words[x] != 0 {
			return uint(x*wordSize + bits.TrailingZeros64(d.words[x])), true
		}
	}
	return 0, false
}

// Each calls fn for every set bit in ascending order.
func (d *Dense) Each(fn func(i uint)) {
	i, ok := d.NextSet(0)
	for ok {
		fn(i)
		i, ok = d.NextSet(i + 1)
	}
}
