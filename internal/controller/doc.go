// Package controller exposes the stable command/query surface consumed
// by the API layer: Query, Command, and Toggle over (device, switch)
// channels.
//
// The controller wraps exactly one Backend for the process lifetime.
// The backend is selected explicitly where the application is composed:
// a Tinxy cloud client when a token is configured, the in-memory Mock
// otherwise. Backend failures never escape as faults — queries degrade
// to StatusUnknown and commands return a wrapped error the caller can
// present.
//
// Optional publisher and recorder hooks fan observed state out to MQTT
// and InfluxDB; both are best-effort and never affect the operation
// that triggered them.
package controller
