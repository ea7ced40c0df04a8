// Package tinxy is the boundary between Homeplan Core and the Tinxy
// cloud API.
//
// It has two layers:
//
//   - Transport: a rate-limited HTTP executor. All outbound calls
//     serialise through a single throttle slot with a minimum spacing
//     (default 500ms) measured from the completion of the previous
//     call, and a per-request timeout (default 15s). Failures are
//     classified into ErrTimeout, ErrConnectionFailed, or *HTTPError.
//     Nothing is retried here.
//
//   - Client: the vendor operations. GetStatus resolves the wire state
//     string to {On, Off, Unknown} at this boundary; SetState maps the
//     symbolic states {off, on, low, medium, high} to their fixed
//     (power, brightness) payloads; Toggle refuses to act when the
//     current state is unknown; ListDevices feeds discovery.
//
// Vendor ambiguity — unexpected casing, absent fields, the "_id"/"id"
// identifier split — is resolved inside this package and never leaks
// to callers.
package tinxy
