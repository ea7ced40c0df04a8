package discovery

import "github.com/avashisht/homeplan-core/internal/device"

// fallbackDeviceID is the shared identifier for the static catalog. The
// mock backend does not care about identifiers, and against the real
// backend the fallback only appears when the cloud is unreachable.
const fallbackDeviceID = "649d9d4dd6587b445bdcd3af"

// FallbackCatalog returns the fixed four-device catalog used when the
// vendor listing is unavailable. The application never starts with zero
// controllable devices.
//
// The returned slice is freshly allocated on each call; callers may
// modify it.
func FallbackCatalog() []device.Device {
	devices := []device.Device{
		{
			Name:         "Living Room Fan",
			DeviceID:     fallbackDeviceID,
			SwitchNumber: 1,
			Type:         device.TypeFan,
			Room:         device.RoomLiving,
			Position:     device.Position{X: 0.6, Y: 0.6},
			Source:       device.SourceFallback,
		},
		{
			Name:         "Kitchen Light",
			DeviceID:     fallbackDeviceID,
			SwitchNumber: 2,
			Type:         device.TypeLight,
			Room:         device.RoomKitchen,
			Position:     device.Position{X: 0.3, Y: 0.4},
			Source:       device.SourceFallback,
		},
		{
			Name:         "Master Bedroom Light",
			DeviceID:     fallbackDeviceID,
			SwitchNumber: 3,
			Type:         device.TypeBulb,
			Room:         device.RoomBedroom,
			Position:     device.Position{X: 0.7, Y: 0.8},
			Source:       device.SourceFallback,
		},
		{
			Name:         "Bathroom Light",
			DeviceID:     fallbackDeviceID,
			SwitchNumber: 4,
			Type:         device.TypeLight,
			Room:         device.RoomBathroom,
			Position:     device.Position{X: 0.2, Y: 0.7},
			Source:       device.SourceFallback,
		},
	}

	for i := range devices {
		devices[i].DeriveCapabilities()
	}
	return devices
}
