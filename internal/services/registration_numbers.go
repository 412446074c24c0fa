package services

import (
	"strconv"
	"sync/atomic"
	"time"
)

// RegistrationNumberPrefix starts every issued registration number
const RegistrationNumberPrefix = "UDYAM-"

// RegistrationNumberGenerator hands out registration numbers
type RegistrationNumberGenerator interface {
	Next() string
}

// SequenceGenerator issues "UDYAM-<n>" where n starts at the current unix
// time in milliseconds and only increases. Two calls in the same
// millisecond still get distinct numbers.
type SequenceGenerator struct {
	last  atomic.Int64
	clock func() time.Time
}

// NewSequenceGenerator creates a generator seeded from clock. A nil clock
// uses time.Now.
func NewSequenceGenerator(clock func() time.Time) *SequenceGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &SequenceGenerator{clock: clock}
}

// Next returns the next registration number
func (g *SequenceGenerator) Next() string {
	now := g.clock().UnixMilli()
	for {
		last := g.last.Load()
		next := now
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return RegistrationNumberPrefix + strconv.FormatInt(next, 10)
		}
	}
}
