// Package api provides the HTTP REST API for Homeplan Core.
//
// It exposes the device catalog, live channel state reads, command
// dispatch, and floor-plan layout persistence to user interfaces
// (mobile app, web floor plan).
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// # Routes
//
//	GET  /api/v1/health
//	GET  /api/v1/devices?room=
//	GET  /api/v1/devices/{deviceID}/{switch}
//	GET  /api/v1/devices/{deviceID}/{switch}/state
//	PUT  /api/v1/devices/{deviceID}/{switch}/state      {"state": "on"}
//	POST /api/v1/devices/{deviceID}/{switch}/toggle
//	PUT  /api/v1/devices/{deviceID}/{switch}/position   {"x": 0.4, "y": 0.55}
//	GET  /api/v1/layout
//
// # Error Mapping
//
// Command failures map onto HTTP status codes: invalid symbolic states
// are 400, unknown channels 404, refused toggles (current state
// undetermined) 409, and vendor transport failures 502.
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines.
package api
