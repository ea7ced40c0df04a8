// Package device defines the local, UI-agnostic device model for Homeplan
// Core and the in-memory catalog built from discovery.
//
// # Key Types
//
//   - Device: one controllable channel, normalised from a Tinxy switch
//   - Channel: the (device_id, switch_number) pair — the atomic unit of state
//   - DeviceType / Room: closed classification enums with ordered keyword
//     rule tables (classify.go)
//   - Status: observed power state {on, off, unknown}
//   - State: symbolic command state {off, on, low, medium, high}
//   - Catalog: thread-safe registry keyed by channel, duplicate-rejecting
//
// The package is pure data transformation: no I/O, no vendor knowledge
// beyond the shape of the normalised model. Wire translation lives in
// internal/tinxy, command dispatch in internal/controller.
//
// # Thread Safety
//
// Catalog is safe for concurrent use; the classification and position
// helpers are pure functions.
package device
