package device

import (
	"errors"
	"testing"
)

// testDevice builds a valid device for catalog tests.
func testDevice(deviceID string, switchNumber int, name string) Device {
	d := Device{
		Name:         name,
		DeviceID:     deviceID,
		SwitchNumber: switchNumber,
		Type:         ClassifyType(name),
		Room:         ClassifyRoom(name),
		Source:       SourceAPI,
	}
	d.DeriveCapabilities()
	return d
}

func TestCatalog_Add(t *testing.T) {
	t.Run("registers valid device", func(t *testing.T) {
		c := NewCatalog()
		if err := c.Add(testDevice("dev-1", 1, "Living Room Fan")); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if c.Count() != 1 {
			t.Errorf("Count() = %d, want 1", c.Count())
		}
	})

	t.Run("rejects duplicate channel", func(t *testing.T) {
		c := NewCatalog()
		if err := c.Add(testDevice("dev-1", 1, "Living Room Fan")); err != nil {
			t.Fatalf("first Add() error = %v", err)
		}

		err := c.Add(testDevice("dev-1", 1, "Renamed Fan"))
		if !errors.Is(err, ErrChannelExists) {
			t.Errorf("Add() error = %v, want ErrChannelExists", err)
		}
		if c.Count() != 1 {
			t.Errorf("Count() = %d after duplicate Add, want 1", c.Count())
		}
	})

	t.Run("same device id with different switch is allowed", func(t *testing.T) {
		c := NewCatalog()
		if err := c.Add(testDevice("dev-1", 1, "Living Room Fan")); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if err := c.Add(testDevice("dev-1", 2, "Kitchen Light")); err != nil {
			t.Errorf("Add() error = %v, want nil for distinct switch number", err)
		}
	})

	t.Run("rejects invalid devices", func(t *testing.T) {
		c := NewCatalog()

		err := c.Add(Device{Name: "", DeviceID: "dev-1", SwitchNumber: 1})
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Add() error = %v, want ErrInvalidName", err)
		}

		err = c.Add(Device{Name: "Fan", DeviceID: "", SwitchNumber: 1})
		if !errors.Is(err, ErrInvalidDeviceID) {
			t.Errorf("Add() error = %v, want ErrInvalidDeviceID", err)
		}

		err = c.Add(Device{Name: "Fan", DeviceID: "dev-1", SwitchNumber: 0})
		if !errors.Is(err, ErrInvalidSwitchNumber) {
			t.Errorf("Add() error = %v, want ErrInvalidSwitchNumber", err)
		}
	})
}

func TestCatalog_Get(t *testing.T) {
	c := NewCatalog()
	d := testDevice("dev-1", 2, "Kitchen Light")
	if err := c.Add(d); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := c.Get(Channel{DeviceID: "dev-1", SwitchNumber: 2})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Kitchen Light" {
		t.Errorf("Name = %q, want %q", got.Name, "Kitchen Light")
	}

	_, err = c.Get(Channel{DeviceID: "dev-1", SwitchNumber: 9})
	if !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("Get() error = %v, want ErrChannelNotFound", err)
	}
}

func TestCatalog_ListPreservesInsertionOrder(t *testing.T) {
	c := NewCatalog()
	names := []string{"Living Room Fan", "Kitchen Light", "Bathroom Light"}
	for i, name := range names {
		if err := c.Add(testDevice("dev-1", i+1, name)); err != nil {
			t.Fatalf("Add(%q) error = %v", name, err)
		}
	}

	devices := c.List()
	if len(devices) != len(names) {
		t.Fatalf("List() returned %d devices, want %d", len(devices), len(names))
	}
	for i, name := range names {
		if devices[i].Name != name {
			t.Errorf("List()[%d].Name = %q, want %q", i, devices[i].Name, name)
		}
	}
}

func TestCatalog_ListByRoom(t *testing.T) {
	c := NewCatalog()
	c.Add(testDevice("dev-1", 1, "Living Room Fan"))    //nolint:errcheck // valid test fixture
	c.Add(testDevice("dev-1", 2, "Kitchen Light"))      //nolint:errcheck // valid test fixture
	c.Add(testDevice("dev-1", 3, "Hall Tube Light"))    //nolint:errcheck // valid test fixture
	c.Add(testDevice("dev-1", 4, "Master Bedroom Fan")) //nolint:errcheck // valid test fixture

	living := c.ListByRoom(RoomLiving)
	if len(living) != 2 {
		t.Fatalf("ListByRoom(living_room) returned %d devices, want 2", len(living))
	}

	if got := c.ListByRoom(RoomGarage); len(got) != 0 {
		t.Errorf("ListByRoom(garage) returned %d devices, want 0", len(got))
	}
}

func TestCatalog_SetPosition(t *testing.T) {
	c := NewCatalog()
	if err := c.Add(testDevice("dev-1", 1, "Living Room Fan")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	ch := Channel{DeviceID: "dev-1", SwitchNumber: 1}
	want := Position{X: 0.42, Y: 0.17}
	if err := c.SetPosition(ch, want); err != nil {
		t.Fatalf("SetPosition() error = %v", err)
	}

	got, err := c.Get(ch)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Position != want {
		t.Errorf("Position = %+v, want %+v", got.Position, want)
	}

	err = c.SetPosition(Channel{DeviceID: "missing", SwitchNumber: 1}, want)
	if !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("SetPosition() error = %v, want ErrChannelNotFound", err)
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		input    string
		expected State
		wantErr  bool
	}{
		{input: "off", expected: StateOff},
		{input: "on", expected: StateOn},
		{input: "low", expected: StateLow},
		{input: "medium", expected: StateMedium},
		{input: "high", expected: StateHigh},
		{input: "HIGH", expected: StateHigh},
		{input: "Medium", expected: StateMedium},
		{input: "warp", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseState(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("ParseState(%q) error = %v, want ErrInvalidState", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseState(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseState(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
