package mqtt

import (
	"errors"
	"testing"

	"github.com/avashisht/homeplan-core/internal/device"
)

// Unit tests that run without a broker. Connection round-trips live in
// integration_test.go behind the integration build tag.

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() string
		expected string
	}{
		{
			name: "ChannelState",
			builder: func() string {
				return Topics{}.ChannelState("649d9d4d", 2)
			},
			expected: "homeplan/state/649d9d4d/2",
		},
		{
			name: "ChannelCommand",
			builder: func() string {
				return Topics{}.ChannelCommand("649d9d4d", 1)
			},
			expected: "homeplan/command/649d9d4d/1",
		},
		{
			name: "SystemStatus",
			builder: func() string {
				return Topics{}.SystemStatus()
			},
			expected: "homeplan/system/status",
		},
		{
			name: "SystemDiscovery",
			builder: func() string {
				return Topics{}.SystemDiscovery()
			},
			expected: "homeplan/system/discovery",
		},
		{
			name: "AllChannelStates",
			builder: func() string {
				return Topics{}.AllChannelStates()
			},
			expected: "homeplan/state/+/+",
		},
		{
			name: "AllChannelCommands",
			builder: func() string {
				return Topics{}.AllChannelCommands()
			},
			expected: "homeplan/command/+/+",
		},
		{
			name: "AllTopics",
			builder: func() string {
				return Topics{}.AllTopics()
			},
			expected: "homeplan/#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder()
			if result != tt.expected {
				t.Errorf("%s() = %q, want %q", tt.name, result, tt.expected)
			}
		})
	}
}

func TestIsConnected_InitialState(t *testing.T) {
	client := &Client{}

	if client.IsConnected() {
		t.Error("IsConnected() should be false for uninitialised client")
	}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on uninitialised client error = %v, want nil", err)
	}
}

func TestPublish_Validation(t *testing.T) {
	client := &Client{}

	if err := client.Publish("", []byte("x"), 1, false); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Publish(empty topic) error = %v, want ErrInvalidTopic", err)
	}

	if err := client.Publish("homeplan/state/a/1", []byte("x"), 3, false); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Publish(qos 3) error = %v, want ErrInvalidQoS", err)
	}

	oversized := make([]byte, maxPayloadSize+1)
	if err := client.Publish("homeplan/state/a/1", oversized, 1, false); !errors.Is(err, ErrPublishFailed) {
		t.Errorf("Publish(oversized) error = %v, want ErrPublishFailed", err)
	}

	if err := client.Publish("homeplan/state/a/1", []byte("x"), 1, false); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Publish() on disconnected client error = %v, want ErrNotConnected", err)
	}
}

func TestStatePublisher_DisconnectedClientSurfacesError(t *testing.T) {
	pub := NewStatePublisher(&Client{})

	ch := device.Channel{DeviceID: "dev-1", SwitchNumber: 1}
	if err := pub.PublishChannelState(ch, "on"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("PublishChannelState() error = %v, want ErrNotConnected", err)
	}
}
