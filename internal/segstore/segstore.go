// Package segstore implements the segmented flat int32 store backing
// the edge record array (roadgraph's C2 component).
//
// A logical flat array of int32 is addressed by a single integer
// pointer p. The physical backing is an ordered collection of
// fixed-size segments; growth appends a fresh zero-filled segment and
// never copies or resizes an existing one, so previously returned
// pointers stay valid across growth.
package segstore

import (
	"errors"
	"math"
)

// EmptyLink is the sentinel pointer value meaning "no next edge".
const EmptyLink int32 = 0

// recordLen is the fixed edge-record width in int32 slots.
const recordLen = 7

const minSegmentSize int32 = 8192

// ErrCapacityExhausted indicates the next edge pointer would overflow
// a signed 32-bit integer.
var ErrCapacityExhausted = errors.New("segstore: edge pointer space exhausted")

// Store is the segmented flat int32 array. The zero Store is not
// usable; construct one with New or NewFromSegments.
type Store struct {
	segments [][]int32
	segSize  int32
	next     int64
}

func nextPow2(n int64) int64 {
	p := int64(1)
	for p < n {
		p <<= 1
	}
	return p
}

func segmentSizeFor(capacityHint int) int32 {
	if capacityHint <= 0 {
		capacityHint = 1
	}
	size := nextPow2(int64(capacityHint) * int64(recordLen))
	if size < int64(minSegmentSize) {
		size = int64(minSegmentSize)
	}
	return int32(size)
}

// New returns an empty Store sized for capacityHint nodes' worth of
// edges: segmentSize = max(2^ceil(log2(capacityHint*7)), 8192).
func New(capacityHint int) *Store {
	return &Store{segSize: segmentSizeFor(capacityHint)}
}

// NewFromSegments reconstructs a Store from previously persisted
// segments (each of length segSize) and the allocation frontier next.
func NewFromSegments(segSize int32, segments [][]int32, next int32) *Store {
	return &Store{segSize: segSize, segments: segments, next: int64(next)}
}

func (s *Store) ensureCapacity(p int32) {
	for int64(p)+recordLen >= int64(len(s.segments))*int64(s.segSize) {
		s.segments = append(s.segments, make([]int32, s.segSize))
	}
}

func (s *Store) locate(p int32) (seg, off int32) {
	return p / s.segSize, p % s.segSize
}

// Get returns the int32 stored at pointer p.
func (s *Store) Get(p int32) int32 {
	seg, off := s.locate(p)
	return s.segments[seg][off]
}

// Set stores v at pointer p.
func (s *Store) Set(p int32, v int32) {
	seg, off := s.locate(p)
	s.segments[seg][off] = v
}

// Alloc advances the allocation frontier by one edge-record width and
// returns the pointer to the newly allocated record, growing the
// backing segments as needed. Returns ErrCapacityExhausted if the next
// pointer would overflow int32.
func (s *Store) Alloc() (int32, error) {
	next := s.next + recordLen
	if next > math.MaxInt32 {
		return 0, ErrCapacityExhausted
	}
	s.next = next
	p := int32(next)
	s.ensureCapacity(p)
	return p, nil
}

// Next returns the current allocation frontier (the pointer of the
// most recently allocated record).
func (s *Store) Next() int32 {
	return int32(s.next)
}

// SegmentSize returns the fixed length, in int32 slots, of each
// segment.
func (s *Store) SegmentSize() int32 {
	return s.segSize
}

// SegmentCount returns the number of allocated segments.
func (s *Store) SegmentCount() int {
	return len(s.segments)
}

// Segment returns the raw backing slice for segment i. Callers must
// not retain it across a Store mutation that might append a new
// segment (the outer slice of segments may be reallocated).
func (s *Store) Segment(i int) []int32 {
	return s.segments[i]
}

// Clone returns a deep, independent copy of s.
func (s *Store) Clone() *Store {
	c := &Store{segSize: s.segSize, next: s.next, segments: make([][]int32, len(s.segments))}
	for i, seg := range s.segments {
		c.segments[i] = append([]int32(nil), seg...)
	}
	return c
}
