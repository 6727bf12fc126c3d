package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func testAlarms() [2]AlarmInfo {
	return [2]AlarmInfo{
		{Hour: 8, Minute: 30, Active: true},
		{},
	}
}

func testTunables() Tunables {
	return Tunables{
		MinimumAngle:     30,
		ControlFactor:    0.75,
		IdealTemperature: 30,
		SamplingMs:       5000,
		SendingMs:        120000,
	}
}

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{PollMs: 100, EnvCheckMs: 2000, Broker: "tcp://localhost:1883", HTTPAddr: ":8080"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.PollMs != 100 {
		t.Errorf("Config.PollMs: got %d, want 100", snap.Config.PollMs)
	}
	if snap.Config.HTTPAddr != ":8080" {
		t.Errorf("Config.HTTPAddr: got %q, want %q", snap.Config.HTTPAddr, ":8080")
	}
	if snap.Environment.Warning {
		t.Error("expected Warning=false initially")
	}
	if snap.MQTTConnected {
		t.Error("expected MQTTConnected=false initially")
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	env := Environment{Temperature: 28.5, Humidity: 70, Warning: false}
	tr.Update(env, testAlarms(), "ShowTime", 45.5, 19800, testTunables())

	snap := tr.Snapshot()
	if snap.Environment.Temperature != 28.5 {
		t.Errorf("Temperature: got %v, want 28.5", snap.Environment.Temperature)
	}
	if snap.Page != "ShowTime" {
		t.Errorf("Page: got %q, want ShowTime", snap.Page)
	}
	if snap.ServoAngle != 45.5 {
		t.Errorf("ServoAngle: got %v, want 45.5", snap.ServoAngle)
	}
	if snap.TimezoneOffset != 19800 {
		t.Errorf("TimezoneOffset: got %d, want 19800", snap.TimezoneOffset)
	}
	if !snap.Alarms[0].Active || snap.Alarms[0].Hour != 8 {
		t.Errorf("Alarms[0]: got %+v", snap.Alarms[0])
	}
	if snap.Tunables.SamplingMs != 5000 {
		t.Errorf("Tunables.SamplingMs: got %d, want 5000", snap.Tunables.SamplingMs)
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=true")
	}

	tr.SetMQTTConnected(false)
	if tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=false")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}

	if snap.Uptime() != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", snap.Uptime())
	}
}

func TestSnapshotNowIsSet(t *testing.T) {
	tr := NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Config{})

	before := time.Now()
	snap := tr.Snapshot()
	after := time.Now()

	if snap.Now.Before(before) || snap.Now.After(after) {
		t.Errorf("Now (%v) not between %v and %v", snap.Now, before, after)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.Update(Environment{Temperature: 25}, testAlarms(), "ShowTime", 30, 19800, testTunables())

	snap1 := tr.Snapshot()

	tr.Update(Environment{Temperature: 35, Warning: true}, testAlarms(), "MainMenu", 90, 0, testTunables())

	// snap1 should still reflect old state
	if snap1.Environment.Temperature != 25 {
		t.Error("snapshot should be a copy; Temperature was modified")
	}
	if snap1.Page != "ShowTime" {
		t.Error("snapshot should be a copy; Page was modified")
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Environment:    Environment{Temperature: 28.5, Humidity: 70},
		Alarms:         testAlarms(),
		Page:           "ShowTime",
		ServoAngle:     45.5,
		TimezoneOffset: 19800,
		Tunables:       testTunables(),
		StartTime:      start,
		Now:            start.Add(15 * time.Minute),
		MQTTConnected:  true,
		Config:         Config{PollMs: 100, EnvCheckMs: 2000, Broker: "tcp://localhost:1883", HTTPAddr: ":8080"},
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Environment.Temperature != 28.5 {
		t.Errorf("Temperature: got %v, want 28.5", parsed.Status.Environment.Temperature)
	}
	if parsed.Status.Page != "ShowTime" {
		t.Errorf("Page: got %q, want ShowTime", parsed.Status.Page)
	}
	if parsed.Status.Alarms[0].Time != "08:30" {
		t.Errorf("Alarms[0].Time: got %q, want 08:30", parsed.Status.Alarms[0].Time)
	}
	if parsed.Status.Alarms[1].Time != "" {
		t.Errorf("inactive alarm should have no time, got %q", parsed.Status.Alarms[1].Time)
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
	if parsed.Status.MQTT.Connected != true {
		t.Error("expected MQTT.Connected=true")
	}
	if parsed.Status.Tunables.ControlFactor != 0.75 {
		t.Errorf("Tunables.ControlFactor: got %v, want 0.75", parsed.Status.Tunables.ControlFactor)
	}
	// Event and Reason should be omitted
	if parsed.Status.Event != "" {
		t.Errorf("expected empty Event for web format, got %q", parsed.Status.Event)
	}
	if parsed.Status.Reason != "" {
		t.Errorf("expected empty Reason for web format, got %q", parsed.Status.Reason)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Environment:   Environment{Temperature: 28.5, Humidity: 70},
		Alarms:        testAlarms(),
		Page:          "ShowTime",
		StartTime:     start,
		Now:           start.Add(15 * time.Minute),
		MQTTConnected: true,
		Config:        Config{PollMs: 100, Broker: "tcp://localhost:1883"},
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "STARTUP" {
		t.Errorf("Event: got %q, want STARTUP", parsed.Status.Event)
	}
	if parsed.Status.Reason != "" {
		t.Errorf("Reason: got %q, want empty", parsed.Status.Reason)
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
}

func TestFormatStatusEventShutdown(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(30 * time.Minute),
		Config:    Config{Broker: "tcp://localhost:1883"},
	}

	data := FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("Event: got %q, want SHUTDOWN", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("Reason: got %q, want SIGTERM", parsed.Status.Reason)
	}
}

func TestFormatStatusEventOmitsReasonWhenEmpty(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	// Verify "reason" is not in the raw JSON output
	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	status := raw["status"].(map[string]interface{})
	if _, exists := status["reason"]; exists {
		t.Error("reason should be omitted when empty")
	}
	if status["event"] != "STARTUP" {
		t.Errorf("event: got %v, want STARTUP", status["event"])
	}
}

func TestFormatJSONRingingAlarm(t *testing.T) {
	alarms := testAlarms()
	alarms[0].Ringing = true
	snap := Snapshot{
		Alarms:    alarms,
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC),
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	json.Unmarshal(data, &parsed)

	if !parsed.Status.Alarms[0].Ringing {
		t.Error("expected Alarms[0].Ringing=true")
	}
	if parsed.Status.Alarms[1].Ringing {
		t.Error("expected Alarms[1].Ringing=false")
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	var wg sync.WaitGroup

	// Writer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.Update(Environment{Temperature: float64(i)}, testAlarms(), "ShowTime", float64(i), 19800, testTunables())
			tr.SetMQTTConnected(i%2 == 0)
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := tr.Snapshot()
			_ = snap.Uptime()
		}
	}()

	wg.Wait()
}
