// Package config loads the medibox daemon configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	MQTT     MQTTConfig    `yaml:"mqtt"`
	NTP      NTPConfig     `yaml:"ntp"`
	Pins     PinsConfig    `yaml:"pins"`
	Sensors  SensorsConfig `yaml:"sensors"`
	PollMs   int           `yaml:"poll_ms"`
	Timezone int           `yaml:"timezone_offset"` // seconds east of UTC
	HTTP     string        `yaml:"http"`
	Log      string        `yaml:"log"`
}

type MQTTConfig struct {
	ClientID  string `yaml:"client_id"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Keepalive int    `yaml:"keepalive"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	QOS       int    `yaml:"qos"`
	Retain    bool   `yaml:"retain"`
	Prefix    string `yaml:"prefix"`
}

type NTPConfig struct {
	Server          string `yaml:"server"`
	SyncIntervalSec int    `yaml:"sync_interval_sec"`
}

// PinsConfig holds GPIO line offsets. Defaults follow the original
// device wiring.
type PinsConfig struct {
	Chip   string `yaml:"chip"`
	Up     int    `yaml:"up"`
	Left   int    `yaml:"left"`
	Down   int    `yaml:"down"`
	Right  int    `yaml:"right"`
	Buzzer int    `yaml:"buzzer"`
	LED    int    `yaml:"led"`
}

// SensorsConfig holds sysfs paths for the analog peripherals.
type SensorsConfig struct {
	LightRawPath    string `yaml:"light_raw_path"`
	TemperaturePath string `yaml:"temperature_path"`
	HumidityPath    string `yaml:"humidity_path"`
	ServoPWMDir     string `yaml:"servo_pwm_dir"`
}

// LoadConfig reads and parses the config file, then fills in defaults.
func LoadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	ApplyDefaults(&config)
	return &config, nil
}

// Default returns a configuration with every field at its default value.
func Default() *Config {
	var config Config
	ApplyDefaults(&config)
	return &config
}

// ApplyDefaults fills zero-valued fields in place.
func ApplyDefaults(config *Config) {
	if config.MQTT.ClientID == "" {
		config.MQTT.ClientID = "medibox"
	}
	if config.MQTT.Host == "" {
		config.MQTT.Host = "test.mosquitto.org"
	}
	if config.MQTT.Port == 0 {
		config.MQTT.Port = 1883
	}
	if config.MQTT.Keepalive == 0 {
		config.MQTT.Keepalive = 60
	}
	if config.MQTT.Prefix == "" {
		config.MQTT.Prefix = "medicine_storage"
	}
	if config.NTP.Server == "" {
		config.NTP.Server = "pool.ntp.org"
	}
	if config.NTP.SyncIntervalSec == 0 {
		config.NTP.SyncIntervalSec = 60
	}
	if config.PollMs == 0 {
		config.PollMs = 100
	}
	if config.Timezone == 0 {
		config.Timezone = 19800 // UTC+5:30
	}
	if config.Log == "" {
		config.Log = "info"
	}
	if config.HTTP == "" {
		config.HTTP = ":8080"
	}
	if config.Pins.Chip == "" {
		config.Pins.Chip = "gpiochip0"
	}
	if config.Pins.Up == 0 {
		config.Pins.Up = 34
	}
	if config.Pins.Left == 0 {
		config.Pins.Left = 26
	}
	if config.Pins.Down == 0 {
		config.Pins.Down = 32
	}
	if config.Pins.Right == 0 {
		config.Pins.Right = 35
	}
	if config.Pins.Buzzer == 0 {
		config.Pins.Buzzer = 2
	}
	if config.Pins.LED == 0 {
		config.Pins.LED = 18
	}
	if config.Sensors.LightRawPath == "" {
		config.Sensors.LightRawPath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"
	}
	if config.Sensors.TemperaturePath == "" {
		config.Sensors.TemperaturePath = "/sys/bus/iio/devices/iio:device1/in_temp_input"
	}
	if config.Sensors.HumidityPath == "" {
		config.Sensors.HumidityPath = "/sys/bus/iio/devices/iio:device1/in_humidityrelative_input"
	}
	if config.Sensors.ServoPWMDir == "" {
		config.Sensors.ServoPWMDir = "/sys/class/pwm/pwmchip0/pwm0"
	}
}

// BrokerURL returns the broker address in paho URL form.
func (c *MQTTConfig) BrokerURL() string {
	return fmt.Sprintf("tcp://%s:%d", c.Host, c.Port)
}
