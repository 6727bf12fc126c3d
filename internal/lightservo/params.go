// Package lightservo samples ambient light, publishes the averaged
// intensity, and computes the shutter angle from light, temperature, and
// the remote-tunable parameters.
package lightservo

import (
	"math"
	"sync/atomic"
	"time"
)

// Defaults of the tunable parameters.
const (
	DefaultAngleOffset      = 30.0
	DefaultIdealTemperature = 30.0
	DefaultSamplingMs       = 5000   // 5 seconds
	DefaultSendingMs        = 120000 // 2 minutes
	DefaultControlFactor    = 0.75
)

// Params are the remote-tunable scalars. The remote config ingestor is the
// single writer; the controller is the single reader. Fields are stored
// atomically so the paho handler goroutine and the poll loop never tear a
// value, but no further validation happens: a zero ideal temperature or
// sending interval propagates into the angle math as-is.
type Params struct {
	angleOffset      atomic.Uint64 // float64 bits
	idealTemperature atomic.Uint64 // float64 bits
	controlFactor    atomic.Uint64 // float64 bits
	samplingMs       atomic.Int64
	sendingMs        atomic.Int64
}

// NewParams creates Params at their defaults.
func NewParams() *Params {
	p := &Params{}
	p.SetAngleOffset(DefaultAngleOffset)
	p.SetIdealTemperature(DefaultIdealTemperature)
	p.SetControlFactor(DefaultControlFactor)
	p.SetSamplingMs(DefaultSamplingMs)
	p.SetSendingMs(DefaultSendingMs)
	return p
}

func (p *Params) AngleOffset() float64 {
	return math.Float64frombits(p.angleOffset.Load())
}

func (p *Params) SetAngleOffset(v float64) {
	p.angleOffset.Store(math.Float64bits(v))
}

func (p *Params) IdealTemperature() float64 {
	return math.Float64frombits(p.idealTemperature.Load())
}

func (p *Params) SetIdealTemperature(v float64) {
	p.idealTemperature.Store(math.Float64bits(v))
}

func (p *Params) ControlFactor() float64 {
	return math.Float64frombits(p.controlFactor.Load())
}

func (p *Params) SetControlFactor(v float64) {
	p.controlFactor.Store(math.Float64bits(v))
}

func (p *Params) SamplingMs() int64 {
	return p.samplingMs.Load()
}

func (p *Params) SetSamplingMs(ms int64) {
	p.samplingMs.Store(ms)
}

func (p *Params) SendingMs() int64 {
	return p.sendingMs.Load()
}

func (p *Params) SetSendingMs(ms int64) {
	p.sendingMs.Store(ms)
}

// SamplingInterval returns the sampling cadence as a duration.
func (p *Params) SamplingInterval() time.Duration {
	return time.Duration(p.SamplingMs()) * time.Millisecond
}

// SendingInterval returns the sending cadence as a duration.
func (p *Params) SendingInterval() time.Duration {
	return time.Duration(p.SendingMs()) * time.Millisecond
}
