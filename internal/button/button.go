// Package button converts raw hardware edge events into debounced,
// one-shot logical presses.
//
// Edge is called from the GPIO event goroutine and touches only atomics;
// everything else runs on the poll loop. Time is always injectable.
package button

import (
	"sync/atomic"
	"time"
)

// Button is one of the four logical inputs.
type Button int

const (
	Right Button = iota
	Left
	Up
	Down
)

func (b Button) String() string {
	switch b {
	case Right:
		return "RIGHT"
	case Left:
		return "LEFT"
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	}
	return "UNKNOWN"
}

// DebounceWindow is the minimum spacing between accepted edges. The window
// is shared across all buttons: an accepted press on any button holds off
// every button.
const DebounceWindow = 200 * time.Millisecond

// dispatchOrder is the fixed per-cycle consumption order.
var dispatchOrder = [4]Button{Right, Left, Up, Down}

// Debouncer turns edge events into one-shot presses behind a single shared
// debounce window. While the UI sits on the alarm page, Right and Down edges
// additionally latch dedicated stop/snooze one-shots so alarm dismissal can
// bypass the normal dispatch path.
type Debouncer struct {
	window time.Duration

	lastEdgeMs atomic.Int64 // unix ms of the last accepted edge, any button
	pressed    [4]atomic.Bool
	stop       atomic.Bool
	snooze     atomic.Bool
	alarmPage  atomic.Bool
}

// NewDebouncer creates a Debouncer with the given shared window.
func NewDebouncer(window time.Duration) *Debouncer {
	d := &Debouncer{window: window}
	// Allow the very first edge regardless of process start time.
	d.lastEdgeMs.Store(-window.Milliseconds())
	return d
}

// Edge records a hardware edge for b at time t. The edge is accepted only if
// the shared window has elapsed since the last accepted edge of any button.
// Returns whether the edge was accepted. Safe to call from the event
// goroutine; no locks, no blocking.
func (d *Debouncer) Edge(b Button, t time.Time) bool {
	ms := t.UnixMilli()
	if ms-d.lastEdgeMs.Load() < d.window.Milliseconds() {
		return false
	}
	d.pressed[b].Store(true)
	if d.alarmPage.Load() {
		switch b {
		case Down:
			d.snooze.Store(true)
		case Right:
			d.stop.Store(true)
		}
	}
	d.lastEdgeMs.Store(ms)
	return true
}

// Consume clears and returns the pending presses in dispatch order:
// Right, Left, Up, Down. Called once per poll cycle.
func (d *Debouncer) Consume() []Button {
	var out []Button
	for _, b := range dispatchOrder {
		if d.pressed[b].Swap(false) {
			out = append(out, b)
		}
	}
	return out
}

// ConsumeStop clears and returns the pending stop one-shot.
func (d *Debouncer) ConsumeStop() bool {
	return d.stop.Swap(false)
}

// ConsumeSnooze clears and returns the pending snooze one-shot.
func (d *Debouncer) ConsumeSnooze() bool {
	return d.snooze.Swap(false)
}

// SetAlarmPage mirrors whether the UI is on the alarm page. The poll loop
// updates this once per cycle so edge handlers can latch stop/snooze.
func (d *Debouncer) SetAlarmPage(on bool) {
	d.alarmPage.Store(on)
}
