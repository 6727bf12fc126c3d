package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/Dayananthan2021/MediBox/internal/log"
)

// bufferCapacity bounds how many telemetry messages are held while the
// broker is unreachable.
const bufferCapacity = 256

// Options configures a RealClient.
type Options struct {
	// Broker is the broker URL, e.g. "tcp://test.mosquitto.org:1883".
	Broker string

	// ClientID identifies this device to the broker.
	ClientID string

	// Username and Password are optional broker credentials.
	Username string
	Password string

	// Keepalive is the MQTT keepalive interval in seconds. Zero means
	// the paho default.
	Keepalive int

	// TopicPrefix is prepended to all telemetry topics.
	TopicPrefix string

	// Subscriptions lists topics to subscribe on every (re)connect.
	Subscriptions []string

	// Handler receives messages on subscribed topics. May be nil.
	Handler MessageHandler
}

// RealClient talks to an actual MQTT broker. Telemetry published while
// disconnected is buffered and replayed on reconnect.
type RealClient struct {
	client paho.Client
	opts   Options
	log    *log.Logger

	mu     sync.Mutex
	buffer *ringBuffer
}

// NewRealClient creates a client connected to the given broker.
// Subscriptions are established on connect and re-established after
// every reconnect.
func NewRealClient(opts Options, logger *log.Logger) (*RealClient, error) {
	c := &RealClient{
		opts:   opts,
		log:    logger,
		buffer: newRingBuffer(bufferCapacity, logger),
	}

	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(c.onConnectionLost)

	if opts.Username != "" {
		pahoOpts.SetUsername(opts.Username)
		pahoOpts.SetPassword(opts.Password)
	}
	if opts.Keepalive > 0 {
		pahoOpts.SetKeepAlive(time.Duration(opts.Keepalive) * time.Second)
	}

	c.client = paho.NewClient(pahoOpts)
	token := c.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return c, nil
}

func (c *RealClient) onConnect(client paho.Client) {
	c.log.Info("Connected to MQTT broker %s", c.opts.Broker)

	for _, topic := range c.opts.Subscriptions {
		t := topic
		token := client.Subscribe(t, 0, func(_ paho.Client, msg paho.Message) {
			if c.opts.Handler != nil {
				c.opts.Handler(msg.Topic(), string(msg.Payload()))
			}
		})
		if !token.WaitTimeout(5 * time.Second) {
			c.log.Warn("Subscribe to %s timed out", t)
			continue
		}
		if err := token.Error(); err != nil {
			c.log.Warn("Subscribe to %s failed: %v", t, err)
			continue
		}
		c.log.Debug("Subscribed to %s", t)
	}

	c.replayBuffered()
}

func (c *RealClient) onConnectionLost(_ paho.Client, err error) {
	c.log.Warn("MQTT connection lost: %v", err)
}

// replayBuffered publishes everything buffered while disconnected.
func (c *RealClient) replayBuffered() {
	c.mu.Lock()
	msgs := c.buffer.drainAll()
	c.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	c.log.Info("Replaying %d buffered messages", len(msgs))
	for _, msg := range msgs {
		token := c.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(5 * time.Second) {
			c.log.Warn("Replay to %s timed out", msg.topic)
		} else if err := token.Error(); err != nil {
			c.log.Warn("Replay to %s failed: %v", msg.topic, err)
		}
	}
}

// PublishLightIntensity sends an averaged light reading to the broker.
// While disconnected the message is buffered for later replay.
func (c *RealClient) PublishLightIntensity(mean float64) error {
	topic := LightIntensityTopic(c.opts.TopicPrefix)
	payload := FormatLightIntensity(mean)

	if !c.client.IsConnected() {
		c.mu.Lock()
		c.buffer.push(bufferedMsg{topic: topic, payload: payload, qos: 0})
		c.mu.Unlock()
		return nil
	}

	// QoS 0 (at-most-once), not retained
	token := c.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (c *RealClient) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) for shutdown events - we want to ensure delivery
	token := c.client.Publish(SystemTopic(c.opts.TopicPrefix), 1, event.Retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish system timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish system: %w", err)
	}

	return nil
}

// IsConnected reports whether the broker connection is active.
func (c *RealClient) IsConnected() bool {
	return c.client.IsConnected()
}

// Close disconnects from the broker.
func (c *RealClient) Close() error {
	c.client.Disconnect(1000) // 1 second timeout
	return nil
}
