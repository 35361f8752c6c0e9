// monotime is the frame clock. Readings are durations since an arbitrary
// fixed point, so only differences between them are meaningful.
package monotime

import (
	"sync"
	"time"
)

// Clock is a monotonic time source
type Clock interface {
	Now() time.Duration
}

// Now returns the current time more precisely for Web targets
func Now() time.Duration {
	return now()
}

// Stamp returns a high resolution reading that differs between process
// runs, for use as a seed.
func Stamp() int64 {
	return epochWall + int64(now())
}

// System is the Clock backed by Now
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Duration {
	return now()
}

// Fake is a Clock that only moves when told to. It is safe for
// concurrent use.
type Fake struct {
	mu      sync.Mutex
	current time.Duration
}

func (clock *Fake) Now() time.Duration {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.current
}

// Advance moves the clock forward by d.
func (clock *Fake) Advance(d time.Duration) {
	clock.mu.Lock()
	clock.current += d
	clock.mu.Unlock()
}
