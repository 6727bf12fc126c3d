// Package env samples the temperature/humidity sensor on a fixed interval,
// classifies the readings against the storage limits, and drives the warning
// buzzer and status LED.
package env

import (
	"time"

	"github.com/Dayananthan2021/MediBox/internal/hw"
)

// Storage limits for the medicine compartment.
const (
	MinTemp     = 24.0
	MaxTemp     = 32.0
	MinHumidity = 65.0
	MaxHumidity = 80.0
)

// CheckInterval is the sensor sampling period.
const CheckInterval = 2 * time.Second

// LEDToggleInterval is the blink period while a warning is active.
const LEDToggleInterval = 500 * time.Millisecond

// Reading is the last environmental sample plus its classification.
type Reading struct {
	Temperature float64
	Humidity    float64
	Warning     bool
}

// Monitor owns the environmental reading and the LED/buzzer signaling.
type Monitor struct {
	sensor hw.EnvSensor
	buzzer hw.Buzzer
	led    hw.LED

	reading       Reading
	lastCheck     time.Time
	lastLEDToggle time.Time
	ledOn         bool
}

// NewMonitor creates a Monitor over the given peripherals.
func NewMonitor(sensor hw.EnvSensor, buzzer hw.Buzzer, led hw.LED) *Monitor {
	return &Monitor{sensor: sensor, buzzer: buzzer, led: led}
}

// Check samples the sensor if the interval has elapsed and drives the
// warning buzzer. While an alarm rings the scheduler owns the buzzer, so
// the warning assertion is suppressed. Sensor values are consumed as given.
func (m *Monitor) Check(now time.Time, alarmRinging bool) {
	if !m.lastCheck.IsZero() && now.Sub(m.lastCheck) <= CheckInterval {
		return
	}
	m.lastCheck = now

	t, h := m.sensor.Read()
	m.reading = Reading{
		Temperature: t,
		Humidity:    h,
		Warning:     t < MinTemp || t > MaxTemp || h < MinHumidity || h > MaxHumidity,
	}

	if m.reading.Warning && !alarmRinging {
		m.buzzer.Set(true)
	} else {
		m.buzzer.Set(false)
	}
}

// HandleLED drives the status LED: solid on when healthy, blinking at the
// toggle interval while a warning is active. Called every cycle.
func (m *Monitor) HandleLED(now time.Time) {
	if m.reading.Warning {
		if m.lastLEDToggle.IsZero() || now.Sub(m.lastLEDToggle) > LEDToggleInterval {
			m.ledOn = !m.ledOn
			m.led.Set(m.ledOn)
			m.lastLEDToggle = now
		}
		return
	}
	m.ledOn = true
	m.led.Set(true)
}

// Reading returns the last sample and classification.
func (m *Monitor) Reading() Reading {
	return m.reading
}
