package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Fixed waits the same duration after every failed attempt.
type Fixed struct {
	Interval time.Duration
}

func (b Fixed) Delay(int) time.Duration {
	return b.Interval
}

// Linear grows the wait by a fixed increment per attempt, capped at Max.
type Linear struct {
	Base      time.Duration
	Increment time.Duration
	Max       time.Duration
}

func (b Linear) Delay(attempt int) time.Duration {
	d := b.Base + time.Duration(attempt-1)*b.Increment
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// Exponential multiplies the wait per attempt, capped at Max. With Jitter
// enabled each delay is scaled by a uniform random factor in [0.5, 1.0)
// to desynchronize clients that fail in lockstep.
type Exponential struct {
	Base       time.Duration
	Multiplier float64
	Max        time.Duration
	Jitter     bool

	// rand overrides the jitter source in tests.
	rand func() float64
}

func (b Exponential) Delay(attempt int) time.Duration {
	multiplier := b.Multiplier
	if multiplier <= 0 {
		multiplier = 2
	}

	d := time.Duration(float64(b.Base) * math.Pow(multiplier, float64(attempt-1)))
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}

	if b.Jitter {
		random := b.rand
		if random == nil {
			random = rand.Float64
		}
		d = time.Duration(float64(d) * (0.5 + random()*0.5))
	}

	return d
}
