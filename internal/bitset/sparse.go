package bitset

import "sort"

// Sparse is a compact, sorted set of ids, storage proportional to the
// number of members rather than the id range. Modeled on the
// popcount-compression idea in github.com/gaissmai/bart's
// internal/sparse package, specialized to a plain set (no payload).
// For a set holding a small fraction of a large id range, a sorted
// slice with binary-search membership uses less memory than a
// word-array sized to the whole range. The roadgraph package itself
// does not use Sparse.
type Sparse struct {
	ids []uint32
}

// NewSparse returns an empty Sparse set.
func NewSparse() *Sparse {
	return &Sparse{}
}

func (s *Sparse) search(i uint32) (int, bool) {
	n := len(s.ids)
	pos := sort.Search(n, func(k int) bool { return s.ids[k] >= i })
	return pos, pos < n && s.ids[pos] == i
}

// Set inserts i into the set if absent.
func (s *Sparse) Set(i uint32) {
	pos, found := s.search(i)
	if found {
		return
	}
	s.ids = append(s.ids, 0)
	copy(s.ids[pos+1:], s.ids[pos:])
	s.ids[pos] = i
}

// Test reports whether i is a member of the set.
func (s *Sparse) Test(i uint32) bool {
	_, found := s.search(i)
	return found
}

// Len returns the number of members.
func (s *Sparse) Len() int {
	return len(s.ids)
}

// Each calls fn for every member in ascending order.
func (s *Sparse) Each(fn func(i uint32)) {
	for _, i := range s.ids {
		fn(i)
	}
}
