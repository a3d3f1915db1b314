package service

import "math/rand/v2"

// Jitter is the declared source of randomness: the per-session book progress
// gain and the stock takeaway choice.
type Jitter interface {
	// ProgressGain returns a value in [8,12].
	ProgressGain() int
	// Pick returns a value in [0,n).
	Pick(n int) int
}

// RandomJitter draws uniformly from the runtime's seeded generator.
type RandomJitter struct{}

func (RandomJitter) ProgressGain() int {
	return 8 + rand.IntN(5)
}

func (RandomJitter) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}
