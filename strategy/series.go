package strategy

import "github.com/evdnx/gostrat/types"

// series is an append-only price series with bounded retention. Appends
// beyond the cap drop the oldest values; every indicator window in use is
// far shorter than the cap, so trimming never affects a decision.
type series struct {
	max int
	buf []float64
}

func newSeries() *series {
	return &series{max: types.MaxStateBars}
}

func newSeriesFrom(vals []float64) *series {
	s := newSeries()
	s.buf = append(s.buf, vals...)
	if len(s.buf) > s.max {
		s.buf = s.buf[len(s.buf)-s.max:]
	}
	return s
}

func (s *series) Add(v float64) {
	s.buf = append(s.buf, v)
	if len(s.buf) > s.max {
		s.buf = s.buf[len(s.buf)-s.max:]
	}
}

func (s *series) Len() int {
	return len(s.buf)
}

func (s *series) Last() float64 {
	if len(s.buf) == 0 {
		return 0
	}
	return s.buf[len(s.buf)-1]
}

// values exposes the backing slice for indicator computation; callers must
// not retain or mutate it.
func (s *series) values() []float64 {
	return s.buf
}

// Tail returns the last n values (fewer when the series is shorter).
func (s *series) Tail(n int) []float64 {
	if n > len(s.buf) {
		n = len(s.buf)
	}
	return s.buf[len(s.buf)-n:]
}

// Values returns a defensive copy for snapshots.
func (s *series) Values() []float64 {
	out := make([]float64, len(s.buf))
	copy(out, s.buf)
	return out
}
