//go:build linux

package hw

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/Dayananthan2021/MediBox/internal/button"
)

// RealConfig describes the physical wiring of the device.
type RealConfig struct {
	Chip            string // GPIO chip name, e.g. "gpiochip0"
	Buttons         ButtonPins
	BuzzerPin       int
	LEDPin          int
	LightRawPath    string
	TemperaturePath string
	HumidityPath    string
	ServoPWMDir     string
}

// RealHardware bundles the opened peripherals.
type RealHardware struct {
	Buzzer Buzzer
	LED    LED
	Servo  Servo
	Light  LightSensor
	Env    EnvSensor

	chip    *gpiocdev.Chip
	buzzer  *RealOutput
	led     *RealOutput
	servo   *RealServo
	buttons *RealButtons
}

// OpenReal opens the GPIO chip and requests every peripheral. Edges from
// the four buttons are delivered to edge on the event goroutine.
func OpenReal(cfg RealConfig, edge EdgeFunc) (*RealHardware, error) {
	chipName := cfg.Chip
	if chipName == "" {
		chipName = "gpiochip0"
	}
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	h := &RealHardware{chip: chip}

	h.buzzer, err = NewRealOutput(chip, cfg.BuzzerPin)
	if err != nil {
		h.Close()
		return nil, err
	}
	h.led, err = NewRealOutput(chip, cfg.LEDPin)
	if err != nil {
		h.Close()
		return nil, err
	}
	h.buttons, err = NewRealButtons(chip, cfg.Buttons, edge)
	if err != nil {
		h.Close()
		return nil, err
	}
	h.servo, err = NewRealServo(cfg.ServoPWMDir)
	if err != nil {
		h.Close()
		return nil, err
	}

	h.Buzzer = h.buzzer
	h.LED = h.led
	h.Servo = h.servo
	h.Light = NewRealLightSensor(cfg.LightRawPath)
	h.Env = NewRealEnvSensor(cfg.TemperaturePath, cfg.HumidityPath)
	return h, nil
}

// Close drops the outputs and releases every line and the chip.
func (h *RealHardware) Close() error {
	if h.buzzer != nil {
		h.buzzer.Set(false)
		h.buzzer.Close()
	}
	if h.led != nil {
		h.led.Set(false)
		h.led.Close()
	}
	if h.buttons != nil {
		h.buttons.Close()
	}
	if h.servo != nil {
		h.servo.Close()
	}
	if h.chip != nil {
		return h.chip.Close()
	}
	return nil
}

// RealOutput drives a single GPIO output line.
type RealOutput struct {
	line *gpiocdev.Line
}

// NewRealOutput requests the given line as an output, initially low.
func NewRealOutput(chip *gpiocdev.Chip, pin int) (*RealOutput, error) {
	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request output pin %d: %w", pin, err)
	}
	return &RealOutput{line: line}, nil
}

// Set drives the line high or low. Write failures are ignored; an output
// glitch must not disturb the poll cycle.
func (o *RealOutput) Set(on bool) {
	v := 0
	if on {
		v = 1
	}
	o.line.SetValue(v)
}

// Close releases the line.
func (o *RealOutput) Close() error {
	return o.line.Close()
}

// RealButtons requests the four button lines with falling-edge events and
// forwards each edge to the given EdgeFunc. The handler runs on the
// gpiocdev event goroutine, so the EdgeFunc must be non-blocking.
type RealButtons struct {
	lines []*gpiocdev.Line
}

// ButtonPins maps GPIO line offsets to logical buttons.
type ButtonPins struct {
	Up    int
	Left  int
	Down  int
	Right int
}

// NewRealButtons requests the button lines as pulled-up inputs.
func NewRealButtons(chip *gpiocdev.Chip, pins ButtonPins, edge EdgeFunc) (*RealButtons, error) {
	b := &RealButtons{}
	for _, p := range []struct {
		pin int
		btn button.Button
	}{
		{pins.Up, button.Up},
		{pins.Left, button.Left},
		{pins.Down, button.Down},
		{pins.Right, button.Right},
	} {
		btn := p.btn
		line, err := chip.RequestLine(p.pin,
			gpiocdev.WithPullUp,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
				edge(btn, time.Now())
			}))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", btn, p.pin, err)
		}
		b.lines = append(b.lines, line)
	}
	return b, nil
}

// Close releases all button lines.
func (b *RealButtons) Close() error {
	var firstErr error
	for _, line := range b.lines {
		if err := line.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Servo pulse calibration: 0 degrees = 0.5ms, 180 degrees = 2.5ms at 50Hz.
const (
	servoPeriodNs  = 20000000
	servoMinDutyNs = 500000
	servoMaxDutyNs = 2500000
)

// RealServo commands a servo through the sysfs PWM interface.
type RealServo struct {
	dir string
}

// NewRealServo enables the PWM channel at the given sysfs directory.
func NewRealServo(dir string) (*RealServo, error) {
	s := &RealServo{dir: dir}
	if err := s.write("period", servoPeriodNs); err != nil {
		return nil, fmt.Errorf("set pwm period: %w", err)
	}
	if err := s.write("duty_cycle", servoMinDutyNs); err != nil {
		return nil, fmt.Errorf("set pwm duty: %w", err)
	}
	if err := s.write("enable", 1); err != nil {
		return nil, fmt.Errorf("enable pwm: %w", err)
	}
	return s, nil
}

// SetAngle maps degrees onto the pulse range and writes the duty cycle.
func (s *RealServo) SetAngle(degrees float64) {
	if degrees < 0 {
		degrees = 0
	}
	if degrees > 180 {
		degrees = 180
	}
	duty := servoMinDutyNs + int(degrees/180.0*(servoMaxDutyNs-servoMinDutyNs))
	s.write("duty_cycle", duty)
}

// Close disables the PWM channel.
func (s *RealServo) Close() error {
	return s.write("enable", 0)
}

func (s *RealServo) write(name string, v int) error {
	return os.WriteFile(filepath.Join(s.dir, name), []byte(strconv.Itoa(v)), 0644)
}

// RealLightSensor reads the ADC raw value from a sysfs IIO attribute.
type RealLightSensor struct {
	path string
}

func NewRealLightSensor(path string) *RealLightSensor {
	return &RealLightSensor{path: path}
}

// ReadRaw returns the raw reading, or 0 on any read/parse failure.
func (r *RealLightSensor) ReadRaw() int {
	raw, err := readSysfsInt(r.path)
	if err != nil {
		return 0
	}
	return raw
}

// RealEnvSensor reads temperature and humidity from sysfs IIO attributes
// reporting millidegrees and milli-percent.
type RealEnvSensor struct {
	tempPath string
	humPath  string
}

func NewRealEnvSensor(tempPath, humPath string) *RealEnvSensor {
	return &RealEnvSensor{tempPath: tempPath, humPath: humPath}
}

// Read returns the last sensor values, zero on failure. No validation: a
// bad read produces visibly wrong but non-crashing behavior downstream.
func (r *RealEnvSensor) Read() (float64, float64) {
	var temperature, humidity float64
	if v, err := readSysfsInt(r.tempPath); err == nil {
		temperature = float64(v) / 1000.0
	}
	if v, err := readSysfsInt(r.humPath); err == nil {
		humidity = float64(v) / 1000.0
	}
	return temperature, humidity
}

func readSysfsInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}
