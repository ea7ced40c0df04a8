package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/avashisht/homeplan-core/internal/device"
)

// RecordChannelState records an observed channel state transition.
//
// It satisfies the controller's recorder hook, so every successful
// command lands a point in the channel_state measurement. The write is
// non-blocking; data is batched and sent asynchronously. If the client
// is not connected the point is silently dropped - telemetry must
// never affect command handling.
//
// Parameters:
//   - ch: The channel that changed
//   - state: The state string that was applied (e.g. "on", "low")
func (c *Client) RecordChannelState(ch device.Channel, state string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"channel_state",
		map[string]string{
			"device_id":     ch.DeviceID,
			"switch_number": strconv.Itoa(ch.SwitchNumber),
		},
		map[string]interface{}{
			"state": state,
			"is_on": state != "off",
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// RecordCommandLatency records how long a vendor command round-trip took.
//
// Useful for watching the effect of request throttling on end-to-end
// responsiveness.
//
// Parameters:
//   - ch: The channel the command targeted
//   - duration: Wall-clock time from dispatch to vendor response
//   - success: Whether the vendor accepted the command
func (c *Client) RecordCommandLatency(ch device.Channel, duration time.Duration, success bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"command_latency",
		map[string]string{
			"device_id":     ch.DeviceID,
			"switch_number": strconv.Itoa(ch.SwitchNumber),
		},
		map[string]interface{}{
			"duration_ms": float64(duration) / float64(time.Millisecond),
			"success":     success,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
