package controller

import (
	"context"
	"sync"

	"github.com/avashisht/homeplan-core/internal/device"
	"github.com/avashisht/homeplan-core/internal/infrastructure/logging"
)

// Mock is the offline backend used when no Tinxy token is configured.
//
// It keeps a binary power state per channel in memory: any non-off
// command sets power on, off sets it off, and unseen channels read as
// off. It never errors and never touches the network, so the full
// discovery and UI flow works without vendor credentials.
//
// Thread Safety: safe for concurrent use.
type Mock struct {
	logger *logging.Logger

	mu    sync.Mutex
	power map[device.Channel]bool
}

// NewMock creates an empty mock backend.
func NewMock(logger *logging.Logger) *Mock {
	return &Mock{
		logger: logger.With("component", "mock-backend"),
		power:  make(map[device.Channel]bool),
	}
}

// GetStatus returns the stored power state, defaulting to off for
// channels that have never been commanded. It never fails.
func (m *Mock) GetStatus(_ context.Context, deviceID string, switchNumber int) (device.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.power[device.Channel{DeviceID: deviceID, SwitchNumber: switchNumber}] {
		return device.StatusOn, nil
	}
	return device.StatusOff, nil
}

// SetState stores the binary power implied by the symbolic state:
// off clears it, everything else sets it. It never fails.
func (m *Mock) SetState(_ context.Context, deviceID string, switchNumber int, state device.State) error {
	ch := device.Channel{DeviceID: deviceID, SwitchNumber: switchNumber}

	m.mu.Lock()
	m.power[ch] = state.IsOn()
	m.mu.Unlock()

	m.logger.Debug("simulated state change",
		"device_id", deviceID,
		"switch", switchNumber,
		"state", state,
	)
	return nil
}

// Toggle flips the stored power state. The mock always knows the
// current state, so unlike the cloud backend it never refuses.
func (m *Mock) Toggle(_ context.Context, deviceID string, switchNumber int) error {
	ch := device.Channel{DeviceID: deviceID, SwitchNumber: switchNumber}

	m.mu.Lock()
	m.power[ch] = !m.power[ch]
	m.mu.Unlock()

	return nil
}
