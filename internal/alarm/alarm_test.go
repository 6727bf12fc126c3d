package alarm

import (
	"testing"
	"time"
)

func TestCheckTriggersMatchingSlot(t *testing.T) {
	s := NewScheduler()
	s.Slots[1] = Slot{Hour: 7, Minute: 30, Active: true}
	now := time.Date(2026, 1, 1, 7, 30, 0, 0, time.UTC)

	if got := s.Check(7, 30, now); got != 1 {
		t.Fatalf("expected slot 1 to ring, got %d", got)
	}
	if !s.Slots[1].Ringing {
		t.Error("slot 1 should be ringing")
	}
	if !s.Triggered() {
		t.Error("global flag should be set")
	}
}

func TestCheckIgnoresInactiveAndMismatched(t *testing.T) {
	s := NewScheduler()
	s.Slots[0] = Slot{Hour: 7, Minute: 30} // not active
	s.Slots[1] = Slot{Hour: 8, Minute: 0, Active: true}
	now := time.Date(2026, 1, 1, 7, 30, 0, 0, time.UTC)

	if got := s.Check(7, 30, now); got != -1 {
		t.Fatalf("expected no trigger, got %d", got)
	}
	if s.Triggered() {
		t.Error("global flag should be clear")
	}
}

func TestSecondMatchingSlotDoesNotRingInSameEpisode(t *testing.T) {
	s := NewScheduler()
	s.Slots[0] = Slot{Hour: 7, Minute: 30, Active: true}
	s.Slots[1] = Slot{Hour: 7, Minute: 30, Active: true}
	now := time.Date(2026, 1, 1, 7, 30, 0, 0, time.UTC)

	if got := s.Check(7, 30, now); got != 0 {
		t.Fatalf("expected slot 0 to ring first, got %d", got)
	}
	if s.Slots[1].Ringing {
		t.Error("slot 1 must not ring while the flag is already set")
	}

	// Subsequent cycles are skipped entirely while the episode is active.
	if got := s.Check(7, 30, now.Add(time.Second)); got != -1 {
		t.Fatalf("expected evaluation to be skipped, got %d", got)
	}
}

func TestStopClearsBothSlotsAndFlag(t *testing.T) {
	s := NewScheduler()
	s.Slots[0] = Slot{Hour: 7, Minute: 30, Active: true, Ringing: true}
	s.Slots[1] = Slot{Hour: 8, Minute: 0, Active: true, Snoozed: true}
	s.triggered = true

	s.Stop()

	if s.Triggered() {
		t.Error("global flag should be clear after stop")
	}
	for i := range s.Slots {
		if s.Slots[i].Ringing || s.Slots[i].Snoozed {
			t.Errorf("slot %d should be neither ringing nor snoozed", i)
		}
		if !s.Slots[i].Active {
			t.Errorf("slot %d should stay armed", i)
		}
	}
}

func TestSnoozeMarksOnlyInvokingSlot(t *testing.T) {
	s := NewScheduler()
	s.Slots[0] = Slot{Hour: 7, Minute: 30, Active: true, Ringing: true}
	s.Slots[1] = Slot{Hour: 7, Minute: 30, Active: true}
	s.triggered = true
	now := time.Date(2026, 1, 1, 7, 30, 10, 0, time.UTC)

	s.Snooze(0, now)

	if s.Triggered() {
		t.Error("global flag should be clear after snooze")
	}
	if s.Slots[0].Ringing || !s.Slots[0].Snoozed {
		t.Error("slot 0 should be snoozed, not ringing")
	}
	if !s.Slots[0].SnoozeStart.Equal(now) {
		t.Errorf("snooze start should be %v, got %v", now, s.Slots[0].SnoozeStart)
	}
	if s.Slots[1].Snoozed {
		t.Error("slot 1 must be untouched")
	}
}

func TestSnoozedSlotSkippedUntilWindowElapses(t *testing.T) {
	s := NewScheduler()
	start := time.Date(2026, 1, 1, 7, 30, 0, 0, time.UTC)
	s.Slots[0] = Slot{Hour: 7, Minute: 30, Active: true, Snoozed: true, SnoozeStart: start}

	// Inside the window: skipped even though the time matches.
	if got := s.Check(7, 30, start.Add(time.Minute)); got != -1 {
		t.Fatalf("snoozed slot should be skipped, got %d", got)
	}
	if !s.Slots[0].Snoozed {
		t.Error("slot should remain snoozed inside the window")
	}
}

func TestSnoozedSlotRearmsToCurrentMinute(t *testing.T) {
	s := NewScheduler()
	start := time.Date(2026, 1, 1, 7, 30, 0, 0, time.UTC)
	s.Slots[0] = Slot{Hour: 7, Minute: 30, Active: true, Snoozed: true, SnoozeStart: start}

	// Exactly the snooze window later, at 07:32: the slot rearms to 07:32
	// and fires immediately.
	now := start.Add(SnoozeWindow)
	if got := s.Check(7, 32, now); got != 0 {
		t.Fatalf("expected slot 0 to fire after snooze expiry, got %d", got)
	}
	if s.Slots[0].Hour != 7 || s.Slots[0].Minute != 32 {
		t.Errorf("slot should be rearmed to 07:32, got %02d:%02d",
			s.Slots[0].Hour, s.Slots[0].Minute)
	}
	if s.Slots[0].Snoozed {
		t.Error("snooze should be cleared")
	}
	if !s.Slots[0].Ringing {
		t.Error("slot should ring")
	}
}

func TestDeactivate(t *testing.T) {
	s := NewScheduler()
	s.Slots[1] = Slot{Hour: 9, Minute: 0, Active: true, Ringing: true, Snoozed: false}

	s.Deactivate(1)

	sl := s.Slots[1]
	if sl.Active || sl.Ringing || sl.Snoozed {
		t.Errorf("slot should be fully cleared, got %+v", sl)
	}
}

func TestRingingIndexFirstMatch(t *testing.T) {
	s := NewScheduler()
	if s.RingingIndex() != -1 {
		t.Error("expected -1 with no ringing slot")
	}
	s.Slots[1].Ringing = true
	if got := s.RingingIndex(); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	s.Slots[0].Ringing = true
	if got := s.RingingIndex(); got != 0 {
		t.Errorf("first-match scan should return 0, got %d", got)
	}
}

func TestBeeperToggles(t *testing.T) {
	var b Beeper
	now := time.Date(2026, 1, 1, 7, 30, 0, 0, time.UTC)

	// First tick turns the beep on.
	if !b.Tick(now) {
		t.Fatal("first tick should be on")
	}
	// Within the interval the level holds.
	if !b.Tick(now.Add(300 * time.Millisecond)) {
		t.Error("level should hold inside the interval")
	}
	// Past the interval it toggles off.
	if b.Tick(now.Add(801 * time.Millisecond)) {
		t.Error("level should toggle off after the interval")
	}

	if !b.Reset() {
		t.Error("reset should report the pattern was running")
	}
	if b.Reset() {
		t.Error("second reset should report idle")
	}
}
