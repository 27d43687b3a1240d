package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests and the fixture generator can
// freeze generated_at timestamps. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// Now returns the current time in UTC from the active clock.
func Now() time.Time {
	return clock.Now().UTC()
}

// SetClock swaps the time source for metadata generation. Pass nil to reset
// to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
