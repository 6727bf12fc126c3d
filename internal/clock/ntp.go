package clock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"

	"github.com/Dayananthan2021/MediBox/internal/log"
)

// NTPClock keeps the system clock corrected against an NTP server.
// Now applies the measured clock offset plus the timezone offset to UTC.
type NTPClock struct {
	server string
	log    *log.Logger

	tzSec atomic.Int64 // timezone offset, seconds
	delta atomic.Int64 // NTP clock offset, nanoseconds
}

// NewNTPClock creates an unsynced clock for the given server.
func NewNTPClock(server string, offsetSec int, logger *log.Logger) *NTPClock {
	c := &NTPClock{server: server, log: logger}
	c.tzSec.Store(int64(offsetSec))
	return c
}

// Sync queries the server once and stores the measured clock offset.
func (c *NTPClock) Sync() error {
	resp, err := ntp.Query(c.server)
	if err != nil {
		return err
	}
	if err := resp.Validate(); err != nil {
		return err
	}
	c.delta.Store(int64(resp.ClockOffset))
	c.log.Debug("ntp sync: offset %v", resp.ClockOffset)
	return nil
}

// SyncUntilReady blocks until a sync succeeds, retrying with a fixed delay.
// This is the bring-up phase; it never runs inside the poll cycle.
func (c *NTPClock) SyncUntilReady(retryDelay time.Duration) {
	for {
		if err := c.Sync(); err == nil {
			return
		} else {
			c.log.Warn("ntp sync failed, retrying in %v: %v", retryDelay, err)
		}
		time.Sleep(retryDelay)
	}
}

// Run re-syncs at the given interval until the context is cancelled.
func (c *NTPClock) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Sync(); err != nil {
				c.log.Warn("ntp sync failed: %v", err)
			}
		}
	}
}

// Now returns the corrected time with the timezone offset applied.
func (c *NTPClock) Now() time.Time {
	return time.Now().UTC().
		Add(time.Duration(c.delta.Load())).
		Add(time.Duration(c.tzSec.Load()) * time.Second)
}

// HourMinute returns the current wall-clock hour and minute.
func (c *NTPClock) HourMinute() (int, int) {
	now := c.Now()
	return now.Hour(), now.Minute()
}

// SetOffset sets the timezone offset in seconds east of UTC.
func (c *NTPClock) SetOffset(seconds int) {
	c.tzSec.Store(int64(seconds))
}

// Offset returns the current timezone offset in seconds.
func (c *NTPClock) Offset() int {
	return int(c.tzSec.Load())
}
