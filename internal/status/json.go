package status

import (
	"encoding/json"
	"fmt"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event          string       `json:"event,omitempty"`
	Reason         string       `json:"reason,omitempty"`
	Page           string       `json:"page"`
	Environment    EnvJSON      `json:"environment"`
	Alarms         [2]AlarmJSON `json:"alarms"`
	ServoAngle     float64      `json:"servo_angle"`
	TimezoneOffset int          `json:"timezone_offset_seconds"`
	Tunables       TunablesJSON `json:"tunables"`
	UptimeSeconds  int64        `json:"uptime_seconds"`
	StartTime      string       `json:"start_time"`
	Timestamp      string       `json:"timestamp"`
	MQTT           MQTTStatus   `json:"mqtt"`
	Config         ConfigJSON   `json:"config"`
}

// EnvJSON is the JSON representation of the environment state.
type EnvJSON struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Warning     bool    `json:"warning"`
}

// AlarmJSON is the JSON representation of one medicine-time slot.
type AlarmJSON struct {
	Time    string `json:"time,omitempty"`
	Active  bool   `json:"active"`
	Ringing bool   `json:"ringing,omitempty"`
	Snoozed bool   `json:"snoozed,omitempty"`
}

// TunablesJSON is the JSON representation of the remote tunables.
type TunablesJSON struct {
	MinimumAngle     float64 `json:"minimum_angle"`
	ControlFactor    float64 `json:"control_factor"`
	IdealTemperature float64 `json:"ideal_temperature"`
	SamplingMs       int64   `json:"sampling_ms"`
	SendingMs        int64   `json:"sending_ms"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	EnvCheckMs  int64  `json:"env_check_ms"`
	Broker      string `json:"broker"`
	TopicPrefix string `json:"topic_prefix"`
	NTPServer   string `json:"ntp_server"`
	HTTPAddr    string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	var alarms [2]AlarmJSON
	for i, a := range snap.Alarms {
		alarms[i] = AlarmJSON{
			Active:  a.Active,
			Ringing: a.Ringing,
			Snoozed: a.Snoozed,
		}
		if a.Active {
			alarms[i].Time = fmt.Sprintf("%02d:%02d", a.Hour, a.Minute)
		}
	}

	return StatusInner{
		Page: snap.Page,
		Environment: EnvJSON{
			Temperature: snap.Environment.Temperature,
			Humidity:    snap.Environment.Humidity,
			Warning:     snap.Environment.Warning,
		},
		Alarms:         alarms,
		ServoAngle:     snap.ServoAngle,
		TimezoneOffset: snap.TimezoneOffset,
		Tunables: TunablesJSON{
			MinimumAngle:     snap.Tunables.MinimumAngle,
			ControlFactor:    snap.Tunables.ControlFactor,
			IdealTemperature: snap.Tunables.IdealTemperature,
			SamplingMs:       snap.Tunables.SamplingMs,
			SendingMs:        snap.Tunables.SendingMs,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			EnvCheckMs:  snap.Config.EnvCheckMs,
			Broker:      snap.Config.Broker,
			TopicPrefix: snap.Config.TopicPrefix,
			NTPServer:   snap.Config.NTPServer,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
