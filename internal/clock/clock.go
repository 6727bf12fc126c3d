// Package clock provides the wall-clock source with a settable timezone
// offset. The real implementation periodically syncs against an NTP server;
// the fake allows tests to pin the clock.
package clock

import "time"

// Clock is the time source consumed by the UI and the alarm scheduler.
type Clock interface {
	// Now returns the current time with the timezone offset applied.
	Now() time.Time

	// HourMinute returns the current wall-clock hour and minute.
	HourMinute() (int, int)

	// SetOffset sets the timezone offset in seconds east of UTC.
	SetOffset(seconds int)

	// Offset returns the current timezone offset in seconds.
	Offset() int
}
