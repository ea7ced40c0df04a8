package tinxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/avashisht/homeplan-core/internal/device"
	"github.com/avashisht/homeplan-core/internal/infrastructure/logging"
)

// Client implements the three vendor operations (status query, state
// command, toggle) plus account device listing on top of the
// rate-limited transport.
//
// The client translates between the local symbolic vocabulary
// (device.State, device.Status) and the vendor wire format; neither
// direction leaks past this package.
//
// Thread Safety: safe for concurrent use; all calls serialise through
// the shared transport throttle.
type Client struct {
	baseURL   string
	token     string
	transport *Transport
	logger    *logging.Logger
}

// NewClient creates a vendor client.
//
// Parameters:
//   - baseURL: vendor API root, without trailing slash
//   - token: bearer token; must be non-empty (an empty token means the
//     caller should be using the mock backend instead)
//   - transport: shared rate-limited transport
//   - logger: structured logger
//
// Returns:
//   - *Client: ready for use
func NewClient(baseURL, token string, transport *Transport, logger *logging.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		transport: transport,
		logger:    logger.With("component", "tinxy"),
	}
}

// headers returns the standard request headers for vendor calls.
func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.token)
	h.Set("Content-Type", "application/json")
	return h
}

// GetStatus queries the current power state of one channel.
//
// A successful call reporting "on" (case-insensitive) returns StatusOn;
// any other reported state returns StatusOff. A failed call — timeout,
// connection error, non-2xx, unparseable body — returns StatusUnknown
// together with the classified error, which is distinct from a
// successful call reporting off.
//
// Parameters:
//   - ctx: Context for cancellation
//   - deviceID: vendor device identifier
//   - switchNumber: channel number on the device
//
// Returns:
//   - device.Status: On, Off, or Unknown
//   - error: non-nil iff the status is Unknown
func (c *Client) GetStatus(ctx context.Context, deviceID string, switchNumber int) (device.Status, error) {
	endpoint := fmt.Sprintf("%s/%s/state?deviceNumber=%d", c.baseURL, url.PathEscape(deviceID), switchNumber)

	resp, err := c.transport.Do(ctx, http.MethodGet, endpoint, c.headers(), nil)
	if err != nil {
		c.logger.Warn("status query failed", "device_id", deviceID, "switch", switchNumber, "error", err)
		return device.StatusUnknown, err
	}

	var body stateResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return device.StatusUnknown, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if strings.EqualFold(body.State, "on") {
		return device.StatusOn, nil
	}
	return device.StatusOff, nil
}

// SetState commands one channel to a symbolic state.
//
// The symbolic state is mapped to its exact (power, brightness) wire
// payload before sending. An unrecognised state is a local validation
// error and never reaches the wire.
//
// Parameters:
//   - ctx: Context for cancellation
//   - deviceID: vendor device identifier
//   - switchNumber: channel number on the device
//   - state: one of off, on, low, medium, high
//
// Returns:
//   - error: device.ErrInvalidState for an unknown state, or a
//     classified transport error
func (c *Client) SetState(ctx context.Context, deviceID string, switchNumber int, state device.State) error {
	payload, ok := statePayloads[state]
	if !ok {
		return fmt.Errorf("%w: %q", device.ErrInvalidState, state)
	}

	body, err := json.Marshal(commandRequest{
		Request: commandBody{
			State:      payload.Power,
			Brightness: payload.Brightness,
		},
		DeviceNumber: switchNumber,
	})
	if err != nil {
		return fmt.Errorf("encoding command: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/toggle", c.baseURL, url.PathEscape(deviceID))

	if _, err := c.transport.Do(ctx, http.MethodPost, endpoint, c.headers(), body); err != nil {
		c.logger.Warn("state command failed",
			"device_id", deviceID,
			"switch", switchNumber,
			"state", state,
			"error", err,
		)
		return err
	}

	c.logger.Info("state command sent", "device_id", deviceID, "switch", switchNumber, "state", state)
	return nil
}

// Toggle flips one channel to the complement of its current state.
//
// It reads the current status first. If the status cannot be determined
// the toggle is refused with ErrStateUndetermined — flipping a channel
// without knowing its state is never allowed. Otherwise On becomes off
// and anything else becomes on.
//
// Parameters:
//   - ctx: Context for cancellation
//   - deviceID: vendor device identifier
//   - switchNumber: channel number on the device
//
// Returns:
//   - error: ErrStateUndetermined, or any error from the follow-up command
func (c *Client) Toggle(ctx context.Context, deviceID string, switchNumber int) error {
	status, err := c.GetStatus(ctx, deviceID, switchNumber)
	if status == device.StatusUnknown {
		return fmt.Errorf("%w: %w", ErrStateUndetermined, err)
	}

	next := device.StateOn
	if status == device.StatusOn {
		next = device.StateOff
	}

	return c.SetState(ctx, deviceID, switchNumber, next)
}

// ListDevices fetches the account's raw device listing for discovery.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - []DeviceRecord: raw vendor records, in listing order
//   - error: classified transport error or ErrMalformedResponse
func (c *Client) ListDevices(ctx context.Context) ([]DeviceRecord, error) {
	resp, err := c.transport.Do(ctx, http.MethodGet, c.baseURL, c.headers(), nil)
	if err != nil {
		return nil, err
	}

	var records []DeviceRecord
	if err := json.Unmarshal(resp.Body, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return records, nil
}
