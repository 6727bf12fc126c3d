package mqtt

// FakeClient records published telemetry for test assertions and lets
// tests inject inbound config messages.
type FakeClient struct {
	// LightIntensities contains all averaged light readings that were
	// published.
	LightIntensities []float64

	// Payloads contains the rendered telemetry payloads.
	Payloads []string

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by PublishLightIntensity.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Handler receives messages injected with Receive.
	Handler MessageHandler

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakeClient creates a FakeClient for testing.
func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

// PublishLightIntensity records the averaged reading.
func (f *FakeClient) PublishLightIntensity(mean float64) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.LightIntensities = append(f.LightIntensities, mean)
	f.Payloads = append(f.Payloads, string(FormatLightIntensity(mean)))

	return nil
}

// PublishSystem records the system event.
func (f *FakeClient) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Receive simulates an inbound message on a subscribed topic.
func (f *FakeClient) Receive(topic, payload string) {
	if f.Handler != nil {
		f.Handler(topic, payload)
	}
}

// Close marks the client as closed.
func (f *FakeClient) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake client is "connected".
func (f *FakeClient) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded events.
func (f *FakeClient) Reset() {
	f.LightIntensities = nil
	f.Payloads = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
