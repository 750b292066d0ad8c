package utils

import (
	"time"

	"github.com/loov/hrtime"
)

// DeltaTimer measures the time between consecutive frames using the
// high resolution clock
type DeltaTimer struct {
	last    time.Duration
	started bool
}

func (d *DeltaTimer) Next() time.Duration {
	// acquire timestamp exactly once to ensure we're not accumulating error
	now := hrtime.Now()

	if !d.started {
		d.started = true
		d.last = now
		return 0
	}
	dt := now - d.last
	d.last = now
	return dt
}

// Reset makes the next call to Next return 0 again, e.g. after a stall
// caused by a shader rebuild
func (d *DeltaTimer) Reset() {
	d.started = false
}
