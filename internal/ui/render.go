package ui

import (
	"fmt"

	"github.com/Dayananthan2021/MediBox/internal/display"
	"github.com/Dayananthan2021/MediBox/internal/env"
)

// Render draws the active page. Invoked once per poll cycle.
func (m *Machine) Render(d display.Display, reading env.Reading) {
	d.Clear()
	d.SetTextSize(1)

	// The alarm page recomputes which slot to show, so it is handled
	// before the regular dispatch.
	if m.page == PageAlarmTriggered {
		m.renderAlarmTriggered(d, reading)
		d.Show()
		return
	}

	switch m.page {
	case PageWelcome:
		m.renderWelcome(d)
	case PageShowTime:
		m.renderTime(d, reading)
	case PageMainMenu:
		m.renderMenu(d)
	case PageSetAlarmHour:
		m.renderSetAlarmHour(d)
	case PageSetAlarmMinute:
		m.renderSetAlarmMinute(d)
	case PageSetTimezone:
		m.renderSetTimezone(d)
	case PageViewAlarms:
		m.renderViewAlarms(d)
	case PageConfirmDelete:
		m.renderConfirmDelete(d)
	}

	d.Show()
}

func (m *Machine) renderWelcome(d display.Display) {
	d.SetTextSize(2)
	d.SetCursor(0, 10)
	d.Println("  MEDIBOX")
	d.SetTextSize(1)
	d.SetCursor(0, 35)
	d.Println("Press RIGHT to begin")
}

func (m *Machine) renderTime(d display.Display, reading env.Reading) {
	now := m.clk.Now()

	d.SetTextSize(2)
	d.SetCursor(0, 10)
	d.Println(now.Format("15:04:05"))

	d.SetTextSize(1)
	d.SetCursor(0, 35)
	d.Println(now.Format("02/01/2006 Mon"))

	d.SetCursor(0, 50)
	d.Print(fmt.Sprintf("%.1fC %.0f%%", reading.Temperature, reading.Humidity))

	if reading.Warning {
		d.SetCursor(110, 50)
		d.Print("!")

		d.SetCursor(0, 0)
		if reading.Temperature < env.MinTemp {
			d.Print("LOW TEMP! ")
		}
		if reading.Temperature > env.MaxTemp {
			d.Print("HIGH TEMP! ")
		}
		if reading.Humidity < env.MinHumidity {
			d.Print("LOW HUM! ")
		}
		if reading.Humidity > env.MaxHumidity {
			d.Print("HIGH HUM! ")
		}
	}

	for i := range m.sched.Slots {
		if m.sched.Slots[i].Active {
			d.SetCursor(110, i*10)
			d.Print(fmt.Sprintf("A%d", i+1))
		}
	}
}

func (m *Machine) renderMenu(d display.Display) {
	d.SetCursor(0, 0)
	d.Println("Main Menu:")

	for i, item := range MenuItems {
		d.SetCursor(5, 15+i*12)
		if i == m.menuOption {
			d.Print("> ")
		} else {
			d.Print("  ")
		}
		d.Println(item)
	}

	d.SetCursor(0, 55)
	d.Println("LEFT:Exit RIGHT:Select")
}

func (m *Machine) renderSetAlarmHour(d display.Display) {
	slot := m.sched.Slots[m.alarmIndex]

	d.SetCursor(0, 0)
	d.Println(fmt.Sprintf("Set Alarm %d Hour:", m.alarmIndex+1))

	d.SetTextSize(2)
	d.SetCursor(40, 25)
	d.Print(fmt.Sprintf("%02d", slot.Hour))

	d.SetTextSize(1)
	d.SetCursor(0, 55)
	d.Println("UP/DOWN:Change RIGHT:Next")
}

func (m *Machine) renderSetAlarmMinute(d display.Display) {
	slot := m.sched.Slots[m.alarmIndex]

	d.SetCursor(0, 0)
	d.Println(fmt.Sprintf("Set Alarm %d Minute:", m.alarmIndex+1))

	d.SetTextSize(2)
	d.SetCursor(40, 25)
	d.Print(fmt.Sprintf("%02d", slot.Minute))

	d.SetTextSize(1)
	d.SetCursor(0, 55)
	d.Println("UP/DOWN:Change RIGHT:Save")
}

func (m *Machine) renderSetTimezone(d display.Display) {
	offset := m.clk.Offset()

	d.SetCursor(0, 0)
	d.Println("Set Timezone Offset")

	d.SetCursor(0, 20)
	d.Print(formatUTCOffset(offset))

	hours := offset / 3600
	mins := abs(offset) % 3600 / 60
	d.SetCursor(0, 35)
	sign := ""
	if offset >= 0 {
		sign = "+"
	}
	d.Print(fmt.Sprintf("(%s%dh %02dm)", sign, hours, mins))

	d.SetCursor(0, 55)
	d.Println("UP/DOWN:Change RIGHT:Save")
}

func (m *Machine) renderViewAlarms(d display.Display) {
	d.SetCursor(0, 0)
	d.Println("Active Alarms:")

	for i := range m.sched.Slots {
		slot := m.sched.Slots[i]
		d.SetCursor(5, 15+i*15)
		if i == m.viewSelection {
			d.Print("> ")
		} else {
			d.Print("  ")
		}

		if slot.Active {
			d.Print(fmt.Sprintf("Alarm %d: %02d:%02d", i+1, slot.Hour, slot.Minute))
		} else {
			d.Print(fmt.Sprintf("Alarm %d: Not set", i+1))
		}
	}

	d.SetCursor(0, 55)
	if m.sched.Slots[m.viewSelection].Active {
		d.Println("LEFT:Exit RIGHT:Delete")
	} else {
		d.Println("LEFT:Exit")
	}
}

func (m *Machine) renderConfirmDelete(d display.Display) {
	slot := m.sched.Slots[m.viewSelection]

	d.SetCursor(0, 0)
	d.Println(fmt.Sprintf("Delete Alarm %d?", m.viewSelection+1))

	d.SetCursor(0, 20)
	d.Println(fmt.Sprintf("%02d:%02d", slot.Hour, slot.Minute))

	d.SetCursor(0, 40)
	d.Println("UP: Yes, DOWN: No")
}

func (m *Machine) renderAlarmTriggered(d display.Display, reading env.Reading) {
	d.SetCursor(0, 0)
	d.Println(m.clk.Now().Format("15:04:05"))

	d.SetCursor(70, 0)
	d.Print(fmt.Sprintf("%.1fC %.0f%%", reading.Temperature, reading.Humidity))

	d.SetTextSize(2)
	d.SetCursor(0, 15)

	// First-match scan picks the displayed slot and keeps the snooze
	// target in step with what the user sees.
	if i := m.sched.RingingIndex(); i >= 0 {
		m.alarmIndex = i
		d.Println(fmt.Sprintf("ALARM %d", i+1))
	}

	d.SetTextSize(1)
	d.SetCursor(0, 35)
	d.Println("RIGHT: Stop Alarm")
	d.SetCursor(0, 45)
	d.Println("DOWN: Snooze (2min)")
}

func formatUTCOffset(offset int) string {
	sign := ""
	if offset >= 0 {
		sign = "+"
	}
	minutes := abs(offset%3600) / 60
	return fmt.Sprintf("UTC%s%d:%02d", sign, offset/3600, minutes)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
