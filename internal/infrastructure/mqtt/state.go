package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avashisht/homeplan-core/internal/device"
)

// StatePublisher publishes channel state changes as retained messages
// on the per-channel state topics. It satisfies the controller's
// publisher hook.
type StatePublisher struct {
	client *Client
}

// NewStatePublisher creates a state publisher over a connected client.
func NewStatePublisher(client *Client) *StatePublisher {
	return &StatePublisher{client: client}
}

// channelStateMessage is the payload published on channel state topics.
type channelStateMessage struct {
	DeviceID     string `json:"device_id"`
	SwitchNumber int    `json:"switch_number"`
	State        string `json:"state"`
	Timestamp    string `json:"timestamp"`
}

// PublishChannelState publishes the new state of a channel, retained,
// at the configured QoS.
//
// Parameters:
//   - ch: the channel that changed
//   - state: the new state string (symbolic state or observed status)
//
// Returns:
//   - error: if encoding or publishing fails
func (p *StatePublisher) PublishChannelState(ch device.Channel, state string) error {
	payload, err := json.Marshal(channelStateMessage{
		DeviceID:     ch.DeviceID,
		SwitchNumber: ch.SwitchNumber,
		State:        state,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encoding state message: %w", err)
	}

	topic := Topics{}.ChannelState(ch.DeviceID, ch.SwitchNumber)
	return p.client.PublishRetained(topic, payload)
}
