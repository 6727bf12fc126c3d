// Package mqtt provides MQTT publishing and remote-config subscription
// with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"strconv"
	"time"
)

// LightIntensityTopic returns the telemetry topic for averaged light readings.
func LightIntensityTopic(prefix string) string {
	return prefix + "/light_intensity"
}

// SystemTopic returns the topic for system lifecycle events.
func SystemTopic(prefix string) string {
	return prefix + "/system"
}

// Client publishes telemetry to MQTT.
type Client interface {
	// PublishLightIntensity sends an averaged normalized light reading
	// to the broker. Returns error if publishing fails (should not crash
	// the process).
	PublishLightIntensity(mean float64) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// MessageHandler is invoked for every message received on a subscribed
// topic. Handlers run on the paho callback goroutine and must not block.
type MessageHandler func(topic, payload string)

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// FormatLightIntensity renders the telemetry payload for an averaged
// light reading. The dashboard on the other end parses a bare decimal.
func FormatLightIntensity(mean float64) []byte {
	return []byte(strconv.FormatFloat(mean, 'f', 4, 64))
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
