package controller

import (
	"context"
	"fmt"

	"github.com/avashisht/homeplan-core/internal/device"
	"github.com/avashisht/homeplan-core/internal/infrastructure/logging"
)

// Backend executes channel operations against some device authority —
// the Tinxy cloud client in production, the in-memory Mock when no
// credential is configured. The choice is made once, explicitly, at the
// application's composition point; nothing downstream knows or cares
// which backend is live.
type Backend interface {
	GetStatus(ctx context.Context, deviceID string, switchNumber int) (device.Status, error)
	SetState(ctx context.Context, deviceID string, switchNumber int, state device.State) error
	Toggle(ctx context.Context, deviceID string, switchNumber int) error
}

// StatePublisher receives channel state changes for push distribution.
// Publishing is best-effort: a publish failure never fails the command
// that triggered it.
type StatePublisher interface {
	PublishChannelState(ch device.Channel, state string) error
}

// StateRecorder receives channel state observations for telemetry.
// Recording is fire-and-forget.
type StateRecorder interface {
	RecordChannelState(ch device.Channel, state string)
}

// Controller is the single entry point for all channel queries and
// commands. It owns the backend for the process lifetime and converts
// every backend failure into a uniform outcome: queries degrade to
// StatusUnknown, commands return a wrapped error. No fault crosses this
// boundary unhandled.
//
// Thread Safety: safe for concurrent use when the backend is; both
// provided backends are.
type Controller struct {
	backend   Backend
	publisher StatePublisher
	recorder  StateRecorder
	logger    *logging.Logger
}

// Option configures optional controller collaborators.
type Option func(*Controller)

// WithPublisher attaches a state publisher. Pass nil to leave push
// distribution disabled.
func WithPublisher(p StatePublisher) Option {
	return func(c *Controller) { c.publisher = p }
}

// WithRecorder attaches a telemetry recorder. Pass nil to leave
// telemetry disabled.
func WithRecorder(r StateRecorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// New creates a controller over the given backend.
//
// Parameters:
//   - backend: the device authority, chosen by the composition point
//   - logger: structured logger
//   - opts: optional publisher/recorder hooks
//
// Returns:
//   - *Controller: ready for use
func New(backend Backend, logger *logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		logger:  logger.With("component", "controller"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query reads the current status of a channel.
//
// Query never returns an error: a backend failure is logged and
// surfaced as StatusUnknown, which callers render as "state not
// available" rather than crashing or guessing.
//
// Parameters:
//   - ctx: Context for cancellation
//   - ch: the channel to read
//
// Returns:
//   - device.Status: On, Off, or Unknown
func (c *Controller) Query(ctx context.Context, ch device.Channel) device.Status {
	status, err := c.backend.GetStatus(ctx, ch.DeviceID, ch.SwitchNumber)
	if err != nil {
		c.logger.Warn("query failed",
			"device_id", ch.DeviceID,
			"switch", ch.SwitchNumber,
			"error", err,
		)
		return device.StatusUnknown
	}

	c.observe(ch, string(status))
	return status
}

// Command sets a channel to a symbolic state.
//
// The state is validated locally before the backend is touched; an
// unrecognised state returns device.ErrInvalidState without any side
// effect. On success the new state is published and recorded
// best-effort.
//
// Parameters:
//   - ctx: Context for cancellation
//   - ch: the channel to command
//   - state: one of off, on, low, medium, high
//
// Returns:
//   - error: nil on success, wrapped failure otherwise
func (c *Controller) Command(ctx context.Context, ch device.Channel, state device.State) error {
	if _, err := device.ParseState(string(state)); err != nil {
		return err
	}

	if err := c.backend.SetState(ctx, ch.DeviceID, ch.SwitchNumber, state); err != nil {
		return fmt.Errorf("commanding %s/%d to %s: %w", ch.DeviceID, ch.SwitchNumber, state, err)
	}

	c.observe(ch, string(state))
	return nil
}

// Toggle flips a channel to the complement of its current state.
//
// Parameters:
//   - ctx: Context for cancellation
//   - ch: the channel to toggle
//
// Returns:
//   - error: nil on success; tinxy.ErrStateUndetermined (wrapped) when
//     the current state could not be read
func (c *Controller) Toggle(ctx context.Context, ch device.Channel) error {
	if err := c.backend.Toggle(ctx, ch.DeviceID, ch.SwitchNumber); err != nil {
		return fmt.Errorf("toggling %s/%d: %w", ch.DeviceID, ch.SwitchNumber, err)
	}

	// The resulting state is not re-read here (each read costs a
	// throttle slot); the next Query publishes the settled state.
	return nil
}

// observe fans a state observation out to the optional hooks.
// Failures are logged, never propagated.
func (c *Controller) observe(ch device.Channel, state string) {
	if c.publisher != nil {
		if err := c.publisher.PublishChannelState(ch, state); err != nil {
			c.logger.Warn("state publish failed",
				"device_id", ch.DeviceID,
				"switch", ch.SwitchNumber,
				"error", err,
			)
		}
	}
	if c.recorder != nil {
		c.recorder.RecordChannelState(ch, state)
	}
}
