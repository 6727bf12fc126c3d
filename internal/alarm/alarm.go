// Package alarm holds the two alarm slots and the scheduling logic:
// time matching, snooze with timeout, and stop. Pure logic, time is
// always injectable.
package alarm

import "time"

// SnoozeWindow is the fixed delay before a snoozed alarm rearms.
const SnoozeWindow = 2 * time.Minute

// BeepInterval is the buzzer toggle period while an alarm rings.
const BeepInterval = 500 * time.Millisecond

// Slot is one of the two independent alarm configurations.
// Ringing and Snoozed are never both true; SnoozeStart is meaningful
// only while Snoozed is set.
type Slot struct {
	Hour        int
	Minute      int
	Active      bool
	Ringing     bool
	Snoozed     bool
	SnoozeStart time.Time
}

// Scheduler evaluates the two slots against the wall clock. At most one
// alarm episode is active at a time, tracked by a single triggered flag
// shared by both slots.
type Scheduler struct {
	Slots     [2]Slot
	triggered bool
}

// NewScheduler creates a scheduler with both slots inactive.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Check evaluates both slots against the current wall-clock hour and minute.
// Skipped entirely while an episode is already active. A snoozed slot is
// skipped until its snooze window elapses, at which point it rearms to the
// current minute rather than its original time. Returns the index of the
// slot that started ringing, or -1.
func (s *Scheduler) Check(hour, minute int, now time.Time) int {
	if s.triggered {
		return -1
	}

	for i := range s.Slots {
		sl := &s.Slots[i]

		if sl.Snoozed {
			if now.Sub(sl.SnoozeStart) < SnoozeWindow {
				continue
			}
			sl.Snoozed = false
			// Rearm for the next minute the clock shows, not the
			// originally configured time.
			sl.Hour = hour
			sl.Minute = minute
		}

		if sl.Active && !sl.Ringing && sl.Hour == hour && sl.Minute == minute {
			sl.Ringing = true
			s.triggered = true
			return i
		}
	}
	return -1
}

// Triggered reports whether an alarm episode is active.
func (s *Scheduler) Triggered() bool {
	return s.triggered
}

// Stop ends the episode: clears ringing and snoozed on both slots and the
// shared flag.
func (s *Scheduler) Stop() {
	s.triggered = false
	for i := range s.Slots {
		s.Slots[i].Ringing = false
		s.Slots[i].Snoozed = false
	}
}

// Snooze clears ringing and the shared flag, and marks only the given slot
// snoozed from now.
func (s *Scheduler) Snooze(index int, now time.Time) {
	s.triggered = false
	s.Slots[index].Ringing = false
	s.Slots[index].Snoozed = true
	s.Slots[index].SnoozeStart = now
}

// Deactivate disarms a slot entirely (used by the delete flow).
func (s *Scheduler) Deactivate(index int) {
	s.Slots[index].Active = false
	s.Slots[index].Ringing = false
	s.Slots[index].Snoozed = false
}

// RingingIndex returns the first ringing slot, or -1.
func (s *Scheduler) RingingIndex() int {
	for i := range s.Slots {
		if s.Slots[i].Ringing {
			return i
		}
	}
	return -1
}

// Beeper drives the 500ms on/off beep pattern while an alarm rings.
type Beeper struct {
	lastToggle time.Time
	on         bool
	active     bool
}

// Tick advances the pattern and returns the buzzer level for this cycle.
func (b *Beeper) Tick(now time.Time) bool {
	b.active = true
	if b.lastToggle.IsZero() || now.Sub(b.lastToggle) > BeepInterval {
		b.on = !b.on
		b.lastToggle = now
	}
	return b.on
}

// Reset silences the pattern. Returns whether it was running, so the caller
// knows to drop the buzzer line once.
func (b *Beeper) Reset() bool {
	was := b.active
	b.on = false
	b.active = false
	b.lastToggle = time.Time{}
	return was
}
