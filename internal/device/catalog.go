package device

import (
	"fmt"
	"sync"
)

// Catalog is the in-memory registry of normalised devices.
//
// It is populated once at startup from discovery and read by the API layer
// afterwards. Insertion order is preserved so the UI renders devices in a
// stable order across requests.
//
// All public methods are thread-safe.
type Catalog struct {
	mu      sync.RWMutex
	devices []Device
	index   map[Channel]int // channel → position in devices
}

// NewCatalog creates an empty device catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		index: make(map[Channel]int),
	}
}

// Add validates and registers a device.
// Returns ErrChannelExists if the (device_id, switch_number) pair is
// already registered; the channel pair must be unique.
func (c *Catalog) Add(d Device) error {
	if err := Validate(&d); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ch := d.Channel()
	if _, exists := c.index[ch]; exists {
		return fmt.Errorf("%w: %s/%d", ErrChannelExists, ch.DeviceID, ch.SwitchNumber)
	}

	c.index[ch] = len(c.devices)
	c.devices = append(c.devices, d)
	return nil
}

// Get retrieves a device by channel.
// Returns ErrChannelNotFound if the channel is not registered.
func (c *Catalog) Get(ch Channel) (Device, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[ch]
	if !ok {
		return Device{}, ErrChannelNotFound
	}
	return c.devices[i], nil
}

// List returns all devices in insertion order.
// The returned slice is a copy; callers can safely modify it.
func (c *Catalog) List() []Device {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Device, len(c.devices))
	copy(out, c.devices)
	return out
}

// ListByRoom returns all devices tagged with the given room, in insertion
// order.
func (c *Catalog) ListByRoom(room Room) []Device {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Device
	for _, d := range c.devices {
		if d.Room == room {
			out = append(out, d)
		}
	}
	return out
}

// SetPosition overrides the stored position for a channel, typically with
// a user-saved layout loaded at startup.
// Returns ErrChannelNotFound if the channel is not registered.
func (c *Catalog) SetPosition(ch Channel, pos Position) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[ch]
	if !ok {
		return ErrChannelNotFound
	}
	c.devices[i].Position = pos
	return nil
}

// Count returns the number of registered devices.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.devices)
}

// Validate checks a device for structural errors.
// Returns an error describing the first validation failure found.
func Validate(d *Device) error {
	if d == nil {
		return ErrInvalidName
	}
	if d.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if d.DeviceID == "" {
		return fmt.Errorf("%w: device id cannot be empty", ErrInvalidDeviceID)
	}
	if d.SwitchNumber < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSwitchNumber, d.SwitchNumber)
	}
	return nil
}
