// Package influxdb provides InfluxDB connectivity for Homeplan Core.
//
// It wraps the official influxdb-client-go v2 library with Homeplan-specific
// patterns for connection management, telemetry writing, and health monitoring.
//
// # Purpose
//
// This package records time-series telemetry for:
//   - Channel state transitions (channel_state measurement)
//   - Vendor command latency (command_latency measurement)
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "homeplan",
//	    Bucket: "telemetry",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Record a channel state change
//	client.RecordChannelState(ch, "on")
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly. Telemetry is
// best-effort: writes on a disconnected client are dropped, never surfaced
// to command handling.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// This reduces network overhead for high-frequency state traffic.
package influxdb
