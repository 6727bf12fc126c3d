// Package remote applies externally pushed configuration to the light-servo
// tunables. Five fixed channels under the topic prefix map 1:1 onto the
// Params fields; unrecognized channels are ignored.
package remote

import (
	"strconv"
	"strings"

	"github.com/Dayananthan2021/MediBox/internal/lightservo"
	"github.com/Dayananthan2021/MediBox/internal/log"
)

// Channel suffixes under the topic prefix.
const (
	ChannelSamplingInterval = "config/sampling_interval" // value in seconds
	ChannelSendingInterval  = "config/sending_interval"  // value in minutes
	ChannelAmpTemp          = "config/AmpTemp"
	ChannelControlFactor    = "config/ControlFactor"
	ChannelMinAngle         = "config/minAngle"
)

// Ingestor routes config messages into the tunables. It is the single
// writer of the Params fields.
type Ingestor struct {
	prefix string
	params *lightservo.Params
	log    *log.Logger
}

// NewIngestor creates an Ingestor for the given topic prefix.
func NewIngestor(prefix string, params *lightservo.Params, logger *log.Logger) *Ingestor {
	return &Ingestor{prefix: prefix, params: params, log: logger}
}

// Topics returns the full config topics to subscribe to.
func (in *Ingestor) Topics() []string {
	suffixes := []string{
		ChannelSamplingInterval,
		ChannelSendingInterval,
		ChannelAmpTemp,
		ChannelControlFactor,
		ChannelMinAngle,
	}
	topics := make([]string, len(suffixes))
	for i, s := range suffixes {
		topics[i] = in.prefix + "/" + s
	}
	return topics
}

// Apply routes one message to its tunable. Malformed numeric payloads
// coerce to zero, reproducing the device's atoi/atof behavior; no error is
// surfaced. Unknown topics are ignored.
func (in *Ingestor) Apply(topic, payload string) {
	in.log.Debug("config message [%s] %s", topic, payload)

	switch topic {
	case in.prefix + "/" + ChannelSamplingInterval:
		in.params.SetSamplingMs(int64(atoi(payload)) * 1000)
	case in.prefix + "/" + ChannelSendingInterval:
		in.params.SetSendingMs(int64(atoi(payload)) * 60000)
	case in.prefix + "/" + ChannelMinAngle:
		in.params.SetAngleOffset(atof(payload))
	case in.prefix + "/" + ChannelControlFactor:
		in.params.SetControlFactor(atof(payload))
	case in.prefix + "/" + ChannelAmpTemp:
		in.params.SetIdealTemperature(atof(payload))
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
