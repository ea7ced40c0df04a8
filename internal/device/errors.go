package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrChannelExists) {
//	    // handle duplicate channel
//	}
var (
	// ErrChannelNotFound is returned when a (device_id, switch_number)
	// pair does not exist in the catalog.
	ErrChannelNotFound = errors.New("device: channel not found")

	// ErrChannelExists is returned when adding a device whose channel is
	// already registered. The pair (device_id, switch_number) must be
	// unique across the catalog.
	ErrChannelExists = errors.New("device: channel already exists")

	// ErrInvalidName is returned when a device name is empty.
	ErrInvalidName = errors.New("device: invalid name")

	// ErrInvalidSwitchNumber is returned when a switch number is not a
	// positive integer.
	ErrInvalidSwitchNumber = errors.New("device: invalid switch number")

	// ErrInvalidDeviceID is returned when a device ID is empty.
	ErrInvalidDeviceID = errors.New("device: invalid device id")

	// ErrInvalidState is returned when a symbolic command state is not in
	// the closed set {off, on, low, medium, high}.
	ErrInvalidState = errors.New("device: invalid state")
)
