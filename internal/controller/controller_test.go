package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/avashisht/homeplan-core/internal/device"
	"github.com/avashisht/homeplan-core/internal/infrastructure/config"
	"github.com/avashisht/homeplan-core/internal/infrastructure/logging"
)

func newTestLogger() *logging.Logger {
	return logging.New(config.LoggingConfig{
		Level:  "error",
		Format: "text",
		Output: "stderr",
	}, "test")
}

// fakeBackend scripts backend behaviour for controller tests.
type fakeBackend struct {
	status    device.Status
	statusErr error
	setErr    error
	toggleErr error

	setCalls    int
	toggleCalls int
	lastState   device.State
}

func (f *fakeBackend) GetStatus(context.Context, string, int) (device.Status, error) {
	return f.status, f.statusErr
}

func (f *fakeBackend) SetState(_ context.Context, _ string, _ int, state device.State) error {
	f.setCalls++
	f.lastState = state
	return f.setErr
}

func (f *fakeBackend) Toggle(context.Context, string, int) error {
	f.toggleCalls++
	return f.toggleErr
}

// capturingPublisher records publishes and optionally fails them.
type capturingPublisher struct {
	published []string
	err       error
}

func (p *capturingPublisher) PublishChannelState(_ device.Channel, state string) error {
	p.published = append(p.published, state)
	return p.err
}

// capturingRecorder records telemetry observations.
type capturingRecorder struct {
	recorded []string
}

func (r *capturingRecorder) RecordChannelState(_ device.Channel, state string) {
	r.recorded = append(r.recorded, state)
}

var testChannel = device.Channel{DeviceID: "dev-1", SwitchNumber: 1}

func TestController_Query(t *testing.T) {
	t.Run("returns backend status", func(t *testing.T) {
		c := New(&fakeBackend{status: device.StatusOn}, newTestLogger())
		if got := c.Query(context.Background(), testChannel); got != device.StatusOn {
			t.Errorf("Query() = %q, want on", got)
		}
	})

	t.Run("backend failure degrades to unknown, never errors", func(t *testing.T) {
		backend := &fakeBackend{status: device.StatusUnknown, statusErr: errors.New("wire broke")}
		c := New(backend, newTestLogger())
		if got := c.Query(context.Background(), testChannel); got != device.StatusUnknown {
			t.Errorf("Query() = %q, want unknown", got)
		}
	})
}

func TestController_Command(t *testing.T) {
	t.Run("delegates valid state", func(t *testing.T) {
		backend := &fakeBackend{}
		c := New(backend, newTestLogger())

		if err := c.Command(context.Background(), testChannel, device.StateHigh); err != nil {
			t.Fatalf("Command() error = %v", err)
		}
		if backend.lastState != device.StateHigh {
			t.Errorf("backend received %q, want high", backend.lastState)
		}
	})

	t.Run("rejects invalid state before backend", func(t *testing.T) {
		backend := &fakeBackend{}
		c := New(backend, newTestLogger())

		err := c.Command(context.Background(), testChannel, device.State("warp"))
		if !errors.Is(err, device.ErrInvalidState) {
			t.Errorf("Command() error = %v, want ErrInvalidState", err)
		}
		if backend.setCalls != 0 {
			t.Errorf("backend received %d calls, want 0", backend.setCalls)
		}
	})

	t.Run("wraps backend failure", func(t *testing.T) {
		sentinel := errors.New("vendor down")
		c := New(&fakeBackend{setErr: sentinel}, newTestLogger())

		err := c.Command(context.Background(), testChannel, device.StateOn)
		if !errors.Is(err, sentinel) {
			t.Errorf("Command() error = %v, want wrapped sentinel", err)
		}
	})
}

func TestController_Toggle(t *testing.T) {
	t.Run("delegates", func(t *testing.T) {
		backend := &fakeBackend{}
		c := New(backend, newTestLogger())

		if err := c.Toggle(context.Background(), testChannel); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		if backend.toggleCalls != 1 {
			t.Errorf("backend received %d toggles, want 1", backend.toggleCalls)
		}
	})

	t.Run("wraps backend failure", func(t *testing.T) {
		sentinel := errors.New("state undetermined")
		c := New(&fakeBackend{toggleErr: sentinel}, newTestLogger())

		if err := c.Toggle(context.Background(), testChannel); !errors.Is(err, sentinel) {
			t.Errorf("Toggle() error = %v, want wrapped sentinel", err)
		}
	})
}

func TestController_Hooks(t *testing.T) {
	t.Run("successful command publishes and records", func(t *testing.T) {
		pub := &capturingPublisher{}
		rec := &capturingRecorder{}
		c := New(&fakeBackend{}, newTestLogger(), WithPublisher(pub), WithRecorder(rec))

		if err := c.Command(context.Background(), testChannel, device.StateLow); err != nil {
			t.Fatalf("Command() error = %v", err)
		}

		if len(pub.published) != 1 || pub.published[0] != "low" {
			t.Errorf("published = %v, want [low]", pub.published)
		}
		if len(rec.recorded) != 1 || rec.recorded[0] != "low" {
			t.Errorf("recorded = %v, want [low]", rec.recorded)
		}
	})

	t.Run("publish failure does not fail the command", func(t *testing.T) {
		pub := &capturingPublisher{err: errors.New("broker down")}
		c := New(&fakeBackend{}, newTestLogger(), WithPublisher(pub))

		if err := c.Command(context.Background(), testChannel, device.StateOn); err != nil {
			t.Errorf("Command() error = %v, want nil despite publish failure", err)
		}
	})

	t.Run("failed command publishes nothing", func(t *testing.T) {
		pub := &capturingPublisher{}
		c := New(&fakeBackend{setErr: errors.New("down")}, newTestLogger(), WithPublisher(pub))

		_ = c.Command(context.Background(), testChannel, device.StateOn)
		if len(pub.published) != 0 {
			t.Errorf("published = %v, want none after failed command", pub.published)
		}
	})
}
