// Package hw abstracts the medibox peripherals. The real implementations
// use the Linux GPIO character device and sysfs; the fakes allow testing
// the control core without hardware.
package hw

import (
	"time"

	"github.com/Dayananthan2021/MediBox/internal/button"
)

// Buzzer is the warning/alarm sounder output.
type Buzzer interface {
	Set(on bool)
}

// LED is the status LED output.
type LED interface {
	Set(on bool)
}

// Servo commands the shutter actuator to an absolute angle in degrees.
// The valid range is 0-180; callers clamp before commanding.
type Servo interface {
	SetAngle(degrees float64)
}

// LightSensor reads the raw ambient light level, 0-4095, lower = brighter.
type LightSensor interface {
	ReadRaw() int
}

// EnvSensor reads the combined temperature/humidity sensor. Values are
// consumed as given; a failed read yields whatever the driver returns.
type EnvSensor interface {
	Read() (temperature, humidity float64)
}

// EdgeFunc receives one hardware edge per physical press.
type EdgeFunc func(b button.Button, t time.Time)

// Buttons owns the four momentary button inputs and delivers edges to an
// EdgeFunc from the event goroutine.
type Buttons interface {
	Close() error
}

// Raw light calibration bounds of the ADC.
const (
	MinRawLight = 0
	MaxRawLight = 4095
)
