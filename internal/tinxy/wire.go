package tinxy

import "github.com/avashisht/homeplan-core/internal/device"

// stateResponse is the body of GET {base}/{device_id}/state.
// Only the state field matters; the vendor includes others we ignore.
type stateResponse struct {
	State string `json:"state"`
}

// commandBody carries the power and optional brightness for a command.
type commandBody struct {
	State      int  `json:"state"`
	Brightness *int `json:"brightness,omitempty"`
}

// commandRequest is the body of POST {base}/{device_id}/toggle.
type commandRequest struct {
	Request      commandBody `json:"request"`
	DeviceNumber int         `json:"deviceNumber"`
}

// Switch is one sub-channel in a vendor device listing.
type Switch struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// DeviceRecord is one raw device in the vendor listing returned by
// GET {base}. Accounts differ on which identifier field is populated,
// so both are decoded and DeviceID picks whichever is present.
type DeviceRecord struct {
	MongoID  string   `json:"_id"`
	AltID    string   `json:"id"`
	Name     string   `json:"name"`
	Switches []Switch `json:"switches"`
}

// DeviceID returns the vendor identifier, preferring the Mongo-style
// "_id" field and falling back to "id".
func (d DeviceRecord) DeviceID() string {
	if d.MongoID != "" {
		return d.MongoID
	}
	return d.AltID
}

// commandPayload is the wire-level (power, brightness) pair for one
// symbolic state. A nil brightness is omitted from the payload.
type commandPayload struct {
	Power      int
	Brightness *int
}

// statePayloads maps every symbolic state to its exact wire payload.
// The three-tier brightness split (33/66/100) is a fixed policy, not
// configurable per device.
var statePayloads = map[device.State]commandPayload{
	device.StateOff:    {Power: 0},
	device.StateOn:     {Power: 1},
	device.StateLow:    {Power: 1, Brightness: intPtr(33)},
	device.StateMedium: {Power: 1, Brightness: intPtr(66)},
	device.StateHigh:   {Power: 1, Brightness: intPtr(100)},
}

func intPtr(v int) *int { return &v }
