//go:build !linux

package hw

import "errors"

var errUnsupported = errors.New("hw: not supported on this platform (requires Linux)")

// RealConfig describes the physical wiring of the device.
type RealConfig struct {
	Chip            string
	Buttons         ButtonPins
	BuzzerPin       int
	LEDPin          int
	LightRawPath    string
	TemperaturePath string
	HumidityPath    string
	ServoPWMDir     string
}

// ButtonPins maps GPIO line offsets to logical buttons.
type ButtonPins struct {
	Up    int
	Left  int
	Down  int
	Right int
}

// RealHardware is not available on non-Linux platforms.
type RealHardware struct {
	Buzzer Buzzer
	LED    LED
	Servo  Servo
	Light  LightSensor
	Env    EnvSensor
}

// OpenReal returns an error on non-Linux platforms.
func OpenReal(cfg RealConfig, edge EdgeFunc) (*RealHardware, error) {
	return nil, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (h *RealHardware) Close() error { return nil }
