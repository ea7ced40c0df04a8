package discovery

import (
	"context"
	"fmt"

	"github.com/avashisht/homeplan-core/internal/device"
	"github.com/avashisht/homeplan-core/internal/infrastructure/logging"
	"github.com/avashisht/homeplan-core/internal/tinxy"
)

// Lister fetches the raw vendor device listing. Satisfied by
// *tinxy.Client; tests substitute scripted listings.
type Lister interface {
	ListDevices(ctx context.Context) ([]tinxy.DeviceRecord, error)
}

// Service converts a vendor account's raw device list into the local
// device catalog at startup.
type Service struct {
	lister Lister
	logger *logging.Logger
}

// NewService creates a discovery service.
//
// Parameters:
//   - lister: vendor listing source; nil means no vendor access is
//     configured and discovery goes straight to the fallback catalog
//   - logger: structured logger
func NewService(lister Lister, logger *logging.Logger) *Service {
	return &Service{
		lister: lister,
		logger: logger.With("component", "discovery"),
	}
}

// Discover builds the device catalog.
//
// It lists the vendor account once, expands every device into one local
// Device per switch (a device without explicit switches counts as one
// switch numbered 1), classifies type and room from the switch name,
// and assigns a default position by discovery order.
//
// Discovery never returns an empty catalog: a failed listing and a
// confirmed-empty account both fall back to the fixed four-device
// catalog. The two cases are logged distinctly — an empty account is
// a legitimate answer being masked, not an outage.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - []device.Device: the catalog, never empty
func (s *Service) Discover(ctx context.Context) []device.Device {
	if s.lister == nil {
		s.logger.Info("no vendor access configured, using fallback catalog")
		return FallbackCatalog()
	}

	records, err := s.lister.ListDevices(ctx)
	if err != nil {
		s.logger.Warn("device listing failed, using fallback catalog", "error", err)
		return FallbackCatalog()
	}

	devices := s.normalize(records)
	if len(devices) == 0 {
		s.logger.Warn("vendor account reported zero devices, using fallback catalog")
		return FallbackCatalog()
	}

	s.logger.Info("discovery complete", "devices", len(devices), "records", len(records))
	return devices
}

// normalize expands raw records into local devices, one per switch.
func (s *Service) normalize(records []tinxy.DeviceRecord) []device.Device {
	var devices []device.Device

	for i, record := range records {
		deviceID := record.DeviceID()
		if deviceID == "" {
			s.logger.Warn("skipping record without identifier", "index", i)
			continue
		}

		name := record.Name
		if name == "" {
			name = fmt.Sprintf("Device %d", i+1)
		}

		switches := record.Switches
		if len(switches) == 0 {
			switches = []tinxy.Switch{{Number: 1, Name: name}}
		}

		for _, sw := range switches {
			number := sw.Number
			if number < 1 {
				number = 1
			}
			switchName := sw.Name
			if switchName == "" {
				switchName = fmt.Sprintf("%s Switch %d", name, number)
			}

			d := device.Device{
				Name:         switchName,
				DeviceID:     deviceID,
				SwitchNumber: number,
				Type:         device.ClassifyType(switchName),
				Room:         device.ClassifyRoom(switchName),
				Position:     device.PositionForIndex(len(devices)),
				Source:       device.SourceAPI,
			}
			d.DeriveCapabilities()
			devices = append(devices, d)
		}
	}

	return devices
}
