// Package status provides a thread-safe status tracker for the medibox
// daemon. It is designed to be read by HTTP handlers and MQTT system
// event payloads.
package status

import (
	"sync"
	"time"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	EnvCheckMs  int64
	Broker      string
	TopicPrefix string
	NTPServer   string
	HTTPAddr    string
}

// Environment is the most recent environment classification.
type Environment struct {
	Temperature float64
	Humidity    float64
	Warning     bool
}

// AlarmInfo describes one medicine-time slot.
type AlarmInfo struct {
	Hour    int
	Minute  int
	Active  bool
	Ringing bool
	Snoozed bool
}

// Tunables holds the remotely configurable light-servo parameters.
type Tunables struct {
	MinimumAngle     float64
	ControlFactor    float64
	IdealTemperature float64
	SamplingMs       int64
	SendingMs        int64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Environment    Environment
	Alarms         [2]AlarmInfo
	Page           string
	ServoAngle     float64
	TimezoneOffset int // seconds east of UTC
	Tunables       Tunables
	StartTime      time.Time
	Now            time.Time
	MQTTConnected  bool
	Config         Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the live device state. Called from runLoop on every tick.
func (t *Tracker) Update(env Environment, alarms [2]AlarmInfo, page string, servoAngle float64, tzOffset int, tun Tunables) {
	t.mu.Lock()
	t.snap.Environment = env
	t.snap.Alarms = alarms
	t.snap.Page = page
	t.snap.ServoAngle = servoAngle
	t.snap.TimezoneOffset = tzOffset
	t.snap.Tunables = tun
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
