package window

import "math"

type Clock interface {
	Ticks() int64
	Delay(us int64)
}

// TimeSynchronizer paces a loop to targetFPS frames per second. A zero or
// negative targetFPS disables pacing.
type TimeSynchronizer struct {
	prevTicks, usPerFrame int64
	clock                 Clock
}

func NewTimeSynchronizer(clock Clock, targetFPS float64) *TimeSynchronizer {
	ts := &TimeSynchronizer{clock: clock}
	if targetFPS > 0 {
		ts.usPerFrame = int64(1000000.0 / targetFPS)
		ts.prevTicks = clock.Ticks()
	}
	return ts
}

func (ts *TimeSynchronizer) MaySleep() {
	if ts.usPerFrame == 0 {
		return
	}
	cur := ts.clock.Ticks()
	if cur < ts.prevTicks {
		return
	}
	diff := ts.usPerFrame - (cur - ts.prevTicks)
	if diff > 1000 { // Larger than 1ms
		ts.clock.Delay(diff)
	}
	ts.prevTicks += ts.usPerFrame
	// Don't try to catch up after a long stall.
	if cur-ts.prevTicks > ts.usPerFrame {
		ts.prevTicks = cur
	}
}

// TicksPerSecond converts a frame rate cap to a whole tick rate for loops that
// only take integers. A positive fps never yields 0, which would stop the loop;
// zero or negative fps yields 0, meaning no cap.
func TicksPerSecond(fps float64) int {
	if fps <= 0 {
		return 0
	}
	return max(1, int(math.Round(fps)))
}
