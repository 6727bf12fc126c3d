package clock

import "time"

// FakeClock is a test double with a manually controlled base time.
// The base is interpreted as UTC; Now applies the timezone offset to it,
// mirroring the real clock.
type FakeClock struct {
	Base      time.Time
	OffsetSec int
}

// NewFakeClock creates a FakeClock pinned to the given UTC base time.
func NewFakeClock(base time.Time) *FakeClock {
	return &FakeClock{Base: base}
}

// Now returns the base time with the timezone offset applied.
func (f *FakeClock) Now() time.Time {
	return f.Base.Add(time.Duration(f.OffsetSec) * time.Second)
}

// HourMinute returns the current wall-clock hour and minute.
func (f *FakeClock) HourMinute() (int, int) {
	now := f.Now()
	return now.Hour(), now.Minute()
}

// SetOffset sets the timezone offset in seconds.
func (f *FakeClock) SetOffset(seconds int) {
	f.OffsetSec = seconds
}

// Offset returns the timezone offset in seconds.
func (f *FakeClock) Offset() int {
	return f.OffsetSec
}

// Advance moves the base time forward.
func (f *FakeClock) Advance(d time.Duration) {
	f.Base = f.Base.Add(d)
}
