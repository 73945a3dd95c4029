package wm

import "sync/atomic"

// Sequence issues strictly increasing integers. Next is the only way to
// advance it.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a sequence whose first Next() yields start.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.last.Store(start - 1)
	return s
}

// Next advances the sequence and returns the new value.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Last returns the most recently issued value, or start-1 before the first
// call to Next.
func (s *Sequence) Last() int64 {
	return s.last.Load()
}
