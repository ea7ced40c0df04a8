package device

import "strings"

// Device represents one controllable channel on a Tinxy device, normalised
// into the local model used by the floor-plan UI and the controller.
//
// A single physical Tinxy device may expose several switches; each switch
// becomes one Device. The pair (DeviceID, SwitchNumber) uniquely identifies
// a controllable channel — see Channel.
type Device struct {
	// Identity
	Name         string `json:"name"`
	DeviceID     string `json:"device_id"`
	SwitchNumber int    `json:"switch_number"`

	// Classification
	Type DeviceType `json:"type"`
	Room Room       `json:"room"`

	// Position is the default floor-plan placement as fractional
	// coordinates in [0,1]×[0,1]. The core treats it as opaque metadata;
	// saved layouts override it.
	Position Position `json:"default_position"`

	// Derived capabilities
	SupportsSpeedControl bool `json:"supports_speed_control"`
	SupportsDimming      bool `json:"supports_dimming"`

	// Source records whether the device came from vendor discovery or
	// from the static fallback catalog.
	Source Source `json:"source"`
}

// Channel identifies one controllable switch on a physical device.
// It is the atomic unit of state and the map key for the catalog,
// the mock backend, and the layout store.
type Channel struct {
	DeviceID     string `json:"device_id"`
	SwitchNumber int    `json:"switch_number"`
}

// Channel returns the device's channel identity.
func (d *Device) Channel() Channel {
	return Channel{DeviceID: d.DeviceID, SwitchNumber: d.SwitchNumber}
}

// Position is a 2D floor-plan coordinate. Values are fractions of the
// floor-plan size in [0,1].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DeviceType classifies a channel for icon selection and behaviour.
type DeviceType string //nolint:revive // device.DeviceType is clearer than device.Type in calling code

// DeviceType constants.
const (
	TypeFan    DeviceType = "fan"
	TypeLight  DeviceType = "light"
	TypeBulb   DeviceType = "bulb"
	TypeSwitch DeviceType = "switch"
	TypeOutlet DeviceType = "outlet"
	TypeAC     DeviceType = "ac"
	TypeTV     DeviceType = "tv"
	TypeOther  DeviceType = "other"
)

// AllDeviceTypes returns all valid device type values.
func AllDeviceTypes() []DeviceType {
	return []DeviceType{
		TypeFan, TypeLight, TypeBulb, TypeSwitch,
		TypeOutlet, TypeAC, TypeTV, TypeOther,
	}
}

// SupportsSpeedControl reports whether channels of this type accept the
// low/medium/high speed states. Only fans do.
func (t DeviceType) SupportsSpeedControl() bool {
	return t == TypeFan
}

// SupportsDimming reports whether channels of this type accept brightness
// levels. Lights and bulbs do.
func (t DeviceType) SupportsDimming() bool {
	return t == TypeLight || t == TypeBulb
}

// Room is a room tag, normalised to a closed set by the discovery
// classifier. User-assigned rooms outside the set are allowed.
type Room string

// Room constants matched by the discovery classifier.
const (
	RoomLiving   Room = "living_room"
	RoomBedroom  Room = "bedroom"
	RoomKitchen  Room = "kitchen"
	RoomBathroom Room = "bathroom"
	RoomBalcony  Room = "balcony"
	RoomOffice   Room = "office"
	RoomGarage   Room = "garage"
	RoomOther    Room = "other"
)

// Source records device provenance.
type Source string

// Source constants.
const (
	// SourceAPI marks devices discovered from the vendor account.
	SourceAPI Source = "api"

	// SourceFallback marks devices from the static fallback catalog.
	SourceFallback Source = "fallback"
)

// Status is the observed power state of a channel.
//
// Unknown is distinct from Off: Off is a successful read reporting the
// channel powered down, Unknown means the read itself failed and the real
// state could not be determined.
type Status string

// Status constants.
const (
	StatusOn      Status = "on"
	StatusOff     Status = "off"
	StatusUnknown Status = "unknown"
)

// State is a symbolic command state — the UI-facing abstraction over the
// vendor's raw power/brightness pair. The mapping to wire payloads is a
// fixed policy owned by the tinxy package.
type State string

// State constants.
const (
	StateOff    State = "off"
	StateOn     State = "on"
	StateLow    State = "low"
	StateMedium State = "medium"
	StateHigh   State = "high"
)

// AllStates returns all valid symbolic command states.
func AllStates() []State {
	return []State{StateOff, StateOn, StateLow, StateMedium, StateHigh}
}

// ParseState converts a string to a State, case-insensitively.
// Returns ErrInvalidState for anything outside the closed set; an
// unrecognised state is a local validation error and is never sent
// over the wire.
func ParseState(s string) (State, error) {
	switch State(strings.ToLower(s)) {
	case StateOff:
		return StateOff, nil
	case StateOn:
		return StateOn, nil
	case StateLow:
		return StateLow, nil
	case StateMedium:
		return StateMedium, nil
	case StateHigh:
		return StateHigh, nil
	}
	return "", ErrInvalidState
}

// IsOn reports whether the symbolic state powers the channel on.
// Every state except "off" does.
func (s State) IsOn() bool {
	return s != StateOff
}

// DeriveCapabilities fills in the capability booleans from the device type.
func (d *Device) DeriveCapabilities() {
	d.SupportsSpeedControl = d.Type.SupportsSpeedControl()
	d.SupportsDimming = d.Type.SupportsDimming()
}
