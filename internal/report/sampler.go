package report

import "math/rand/v2"

// Sampler supplies the synthetic counts and revenues used by the period
// reports and the daily trend series. Keeping it behind an interface leaves
// the bucketing and averaging logic deterministic under test, and lets a
// real time-series source replace the synthetic one without touching the
// aggregation code.
type Sampler interface {
	// IntBetween returns a value in [min, max], inclusive on both ends.
	IntBetween(min, max int) int
}

type randSampler struct{}

func (randSampler) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}
