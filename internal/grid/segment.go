package grid

import "github.com/l1jgo/arena/internal/core/ecs"

// Segmenter walks a stable snapshot of entities a slice at a time. When a
// pass is exhausted it takes a fresh snapshot, so every entity present at a
// pass start is visited exactly once per pass and each pass spans at most
// `segments` calls to Next.
type Segmenter struct {
	segments int
	snapshot []ecs.EntityID
	cursor   int
	step     int
	passes   int
}

func NewSegmenter(segments int) *Segmenter {
	if segments < 1 {
		segments = 1
	}
	return &Segmenter{segments: segments}
}

// Next returns the next slice to process. source is consulted only when a
// new pass begins.
func (s *Segmenter) Next(source func(dst []ecs.EntityID) []ecs.EntityID) []ecs.EntityID {
	if s.cursor >= len(s.snapshot) {
		s.snapshot = source(s.snapshot[:0])
		s.cursor = 0
		s.step = (len(s.snapshot) + s.segments - 1) / s.segments
		s.passes++
		if len(s.snapshot) == 0 {
			return nil
		}
	}
	end := s.cursor + s.step
	if end > len(s.snapshot) {
		end = len(s.snapshot)
	}
	out := s.snapshot[s.cursor:end]
	s.cursor = end
	return out
}

// Passes returns how many snapshots have been taken.
func (s *Segmenter) Passes() int { return s.passes }
