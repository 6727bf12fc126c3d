// Package ui is the page-based menu state machine: alarm configuration,
// timezone configuration, alarm viewing/deletion, and alarm-trigger
// interaction. Transitions live in one table-like dispatch per button;
// rendering is a deterministic per-page routine invoked once per cycle.
package ui

import (
	"time"

	"github.com/Dayananthan2021/MediBox/internal/alarm"
	"github.com/Dayananthan2021/MediBox/internal/button"
	"github.com/Dayananthan2021/MediBox/internal/clock"
)

// Page enumerates the UI pages. Exactly one page is active at a time.
type Page int

const (
	PageWelcome Page = iota
	PageShowTime
	PageMainMenu
	PageSetAlarmHour
	PageSetAlarmMinute
	PageSetTimezone
	PageViewAlarms
	PageAlarmTriggered
	PageConfirmDelete
)

func (p Page) String() string {
	switch p {
	case PageWelcome:
		return "welcome"
	case PageShowTime:
		return "show_time"
	case PageMainMenu:
		return "main_menu"
	case PageSetAlarmHour:
		return "set_alarm_hour"
	case PageSetAlarmMinute:
		return "set_alarm_minute"
	case PageSetTimezone:
		return "set_timezone"
	case PageViewAlarms:
		return "view_alarms"
	case PageAlarmTriggered:
		return "alarm_triggered"
	case PageConfirmDelete:
		return "confirm_delete"
	}
	return "unknown"
}

// MenuItems are the main menu entries in cursor order.
var MenuItems = []string{
	"Set Alarm 1",
	"Set Alarm 2",
	"Set Timezone",
	"View Alarms",
}

// Timezone adjustment: half-hour steps, wrapping at a full day.
const (
	TimezoneStep  = 1800
	TimezoneLimit = 86400
)

// Machine owns the active page, the menu cursors, and the transitions.
// Alarm slot fields are edited through the scheduler it holds; the
// timezone offset is pushed into the clock.
type Machine struct {
	page          Page
	menuOption    int
	viewSelection int
	alarmIndex    int // slot being edited, or shown on the alarm page

	sched *alarm.Scheduler
	clk   clock.Clock
}

// NewMachine creates a Machine on the welcome page.
func NewMachine(sched *alarm.Scheduler, clk clock.Clock) *Machine {
	return &Machine{sched: sched, clk: clk}
}

// Page returns the active page.
func (m *Machine) Page() Page {
	return m.page
}

// AlarmIndex returns the slot currently being edited or displayed.
func (m *Machine) AlarmIndex() int {
	return m.alarmIndex
}

// MenuOption returns the main menu cursor.
func (m *Machine) MenuOption() int {
	return m.menuOption
}

// ViewSelection returns the alarm-list cursor.
func (m *Machine) ViewSelection() int {
	return m.viewSelection
}

// TriggerAlarm switches to the alarm page for the given slot. Called by the
// scheduler path when a slot starts ringing.
func (m *Machine) TriggerAlarm(index int) {
	m.alarmIndex = index
	m.page = PageAlarmTriggered
}

// Stop ends the alarm episode and returns to the time page.
func (m *Machine) Stop() {
	m.sched.Stop()
	m.page = PageShowTime
}

// Snooze snoozes the displayed slot and returns to the time page.
func (m *Machine) Snooze(now time.Time) {
	m.sched.Snooze(m.alarmIndex, now)
	m.page = PageShowTime
}

// HandleInput applies one debounced press to the active page. Inputs with
// no meaning on the current page are no-ops, never errors.
func (m *Machine) HandleInput(b button.Button, now time.Time) {
	switch b {
	case button.Right:
		m.right(now)
	case button.Left:
		m.left()
	case button.Up:
		m.up()
	case button.Down:
		m.down(now)
	}
}

func (m *Machine) right(now time.Time) {
	switch m.page {
	case PageWelcome:
		m.page = PageShowTime
	case PageShowTime:
		m.page = PageMainMenu
		m.menuOption = 0
	case PageMainMenu:
		switch m.menuOption {
		case 0:
			m.alarmIndex = 0
			m.page = PageSetAlarmHour
		case 1:
			m.alarmIndex = 1
			m.page = PageSetAlarmHour
		case 2:
			m.page = PageSetTimezone
		case 3:
			m.viewSelection = 0
			m.page = PageViewAlarms
		}
	case PageSetAlarmHour:
		m.page = PageSetAlarmMinute
	case PageSetAlarmMinute:
		m.sched.Slots[m.alarmIndex].Active = true
		m.page = PageMainMenu
	case PageSetTimezone:
		m.page = PageMainMenu
	case PageViewAlarms:
		if m.sched.Slots[m.viewSelection].Active {
			m.page = PageConfirmDelete
		}
	case PageConfirmDelete:
		m.sched.Deactivate(m.viewSelection)
		m.page = PageViewAlarms
	case PageAlarmTriggered:
		m.Stop()
	}
}

func (m *Machine) left() {
	switch m.page {
	case PageShowTime:
		m.page = PageWelcome
	case PageMainMenu, PageViewAlarms, PageConfirmDelete:
		m.page = PageShowTime
	case PageSetAlarmHour, PageSetAlarmMinute, PageSetTimezone:
		m.page = PageMainMenu
	}
}

func (m *Machine) up() {
	switch m.page {
	case PageSetAlarmHour:
		slot := &m.sched.Slots[m.alarmIndex]
		slot.Hour = (slot.Hour + 1) % 24
	case PageSetAlarmMinute:
		slot := &m.sched.Slots[m.alarmIndex]
		slot.Minute = (slot.Minute + 1) % 60
	case PageSetTimezone:
		offset := m.clk.Offset() + TimezoneStep
		if offset > TimezoneLimit {
			offset -= TimezoneLimit
		}
		m.clk.SetOffset(offset)
	case PageMainMenu:
		m.menuOption = (m.menuOption - 1 + len(MenuItems)) % len(MenuItems)
	case PageViewAlarms:
		m.viewSelection = (m.viewSelection - 1 + 2) % 2
	case PageConfirmDelete:
		m.sched.Deactivate(m.viewSelection)
		m.page = PageViewAlarms
	}
}

func (m *Machine) down(now time.Time) {
	switch m.page {
	case PageSetAlarmHour:
		slot := &m.sched.Slots[m.alarmIndex]
		slot.Hour = (slot.Hour - 1 + 24) % 24
	case PageSetAlarmMinute:
		slot := &m.sched.Slots[m.alarmIndex]
		slot.Minute = (slot.Minute - 1 + 60) % 60
	case PageSetTimezone:
		offset := m.clk.Offset() - TimezoneStep
		if offset < -TimezoneLimit {
			offset += TimezoneLimit
		}
		m.clk.SetOffset(offset)
	case PageMainMenu:
		m.menuOption = (m.menuOption + 1) % len(MenuItems)
	case PageViewAlarms:
		m.viewSelection = (m.viewSelection + 1) % 2
	case PageConfirmDelete:
		m.page = PageViewAlarms
	case PageAlarmTriggered:
		m.Snooze(now)
	}
}
