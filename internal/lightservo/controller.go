package lightservo

import (
	"math"
	"time"

	"github.com/Dayananthan2021/MediBox/internal/hw"
	"github.com/Dayananthan2021/MediBox/internal/log"
)

// Telemetry publishes the averaged light intensity.
type Telemetry interface {
	PublishLightIntensity(mean float64) error
}

// Normalize converts a raw ADC reading to [0,1], higher = brighter.
// Deliberately unclamped: out-of-range raw values pass straight through.
func Normalize(raw int) float64 {
	return 1.0 - float64(raw-hw.MinRawLight)/float64(hw.MaxRawLight-hw.MinRawLight)
}

// Angle computes the shutter angle from the tunables and the live inputs:
//
//	theta = offset + (180-offset) * light * cf * ln(ts/tu) * (T/Tmed)
//
// clamped to [offset, 180]. The log term is negative whenever ts < tu (the
// usual case), so it damps and inverts the light contribution. This is the
// device's calibrated equation, reproduced sign and all; a zero Tmed or tu
// yields a degenerate angle and is not guarded against.
func Angle(offset, light, controlFactor float64, tsMs, tuMs int64, temperature, idealTemp float64) float64 {
	theta := offset +
		(180.0-offset)*
			light*
			controlFactor*
			math.Log(float64(tsMs)/float64(tuMs))*
			(temperature/idealTemp)

	if theta < offset {
		theta = offset
	} else if theta > 180 {
		theta = 180
	}
	return theta
}

// Controller owns the light accumulator and drives the servo. All cadence
// state is keyed off injected times; the controller never sleeps.
type Controller struct {
	params *Params
	light  hw.LightSensor
	servo  hw.Servo
	pub    Telemetry
	log    *log.Logger

	sum        float64
	count      int
	lastSample time.Time
	lastSend   time.Time
	lastAngle  float64
}

// NewController creates a Controller over the given peripherals and sink.
func NewController(params *Params, light hw.LightSensor, servo hw.Servo, pub Telemetry, logger *log.Logger) *Controller {
	return &Controller{
		params: params,
		light:  light,
		servo:  servo,
		pub:    pub,
		log:    logger,
	}
}

// Tick runs one control cycle: accumulate a sample if the sampling interval
// elapsed, publish the mean if the sending interval elapsed, then compute
// and command the shutter angle. The temperature comes from the environment
// monitor's last reading.
func (c *Controller) Tick(now time.Time, temperature float64) {
	if c.lastSample.IsZero() || now.Sub(c.lastSample) >= c.params.SamplingInterval() {
		c.lastSample = now
		raw := c.light.ReadRaw()
		normalized := Normalize(raw)
		c.sum += normalized
		c.count++
		c.log.Debug("light sample: %.4f (raw: %d)", normalized, raw)
	}

	if c.lastSend.IsZero() || now.Sub(c.lastSend) >= c.params.SendingInterval() {
		c.lastSend = now
		// Division by a zero count is reproduced, not guarded; the
		// payload formatter renders whatever comes out.
		mean := c.sum / float64(c.count)
		if err := c.pub.PublishLightIntensity(mean); err != nil {
			c.log.Warn("publish light intensity: %v", err)
		} else {
			c.log.Debug("average light intensity sent: %.4f", mean)
		}
		c.sum = 0
		c.count = 0
	}

	theta := Angle(
		c.params.AngleOffset(),
		Normalize(c.light.ReadRaw()),
		c.params.ControlFactor(),
		c.params.SamplingMs(),
		c.params.SendingMs(),
		temperature,
		c.params.IdealTemperature(),
	)
	c.servo.SetAngle(theta)
	c.lastAngle = theta
}

// Accumulated returns the running sum and sample count, for status display.
func (c *Controller) Accumulated() (float64, int) {
	return c.sum, c.count
}

// LastAngle returns the most recently commanded shutter angle.
func (c *Controller) LastAngle() float64 {
	return c.lastAngle
}
