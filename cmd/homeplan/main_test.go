package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avashisht/homeplan-core/internal/device"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("HOMEPLAN_CONFIG")
	defer os.Setenv("HOMEPLAN_CONFIG", originalEnv)

	os.Setenv("HOMEPLAN_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingDatabasePath verifies run fails when database path is empty.
func TestRun_MissingDatabasePath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
site:
  id: test-site

tinxy:
  base_url: "https://backend.tinxy.in/v2/devices"
  token: ""

database:
  path: ""
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: info
  format: text
  output: stdout

api:
  host: "127.0.0.1"
  port: 8080
  timeouts:
    read: 30
    write: 60
    idle: 120
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("HOMEPLAN_CONFIG")
	defer os.Setenv("HOMEPLAN_CONFIG", originalEnv)
	os.Setenv("HOMEPLAN_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with empty database path")
	}
}

// TestRun_MockModeStartupAndShutdown starts the full stack in mock mode
// (no Tinxy token, MQTT and InfluxDB disabled) and shuts it down via
// context cancellation. No external services are required.
func TestRun_MockModeStartupAndShutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	dbPath := filepath.Join(tmpDir, "test.db")

	configContent := `
site:
  id: test-site

tinxy:
  base_url: "https://backend.tinxy.in/v2/devices"
  token: ""

database:
  path: "` + dbPath + `"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: text
  output: stderr

api:
  host: "127.0.0.1"
  port: 18099
  timeouts:
    read: 30
    write: 60
    idle: 120
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("HOMEPLAN_CONFIG")
	defer os.Setenv("HOMEPLAN_CONFIG", originalEnv)
	os.Setenv("HOMEPLAN_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Errorf("run() in mock mode error = %v", err)
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	originalEnv := os.Getenv("HOMEPLAN_CONFIG")
	defer os.Setenv("HOMEPLAN_CONFIG", originalEnv)

	os.Unsetenv("HOMEPLAN_CONFIG")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	originalEnv := os.Getenv("HOMEPLAN_CONFIG")
	defer os.Setenv("HOMEPLAN_CONFIG", originalEnv)

	expected := "/custom/path/config.yaml"
	os.Setenv("HOMEPLAN_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

func TestChannelFromCommandTopic(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		want    device.Channel
		wantErr bool
	}{
		{
			name:  "valid topic",
			topic: "homeplan/command/649d9d4d/2",
			want:  device.Channel{DeviceID: "649d9d4d", SwitchNumber: 2},
		},
		{
			name:    "wrong prefix",
			topic:   "other/command/649d9d4d/2",
			wantErr: true,
		},
		{
			name:    "state topic",
			topic:   "homeplan/state/649d9d4d/2",
			wantErr: true,
		},
		{
			name:    "missing switch",
			topic:   "homeplan/command/649d9d4d",
			wantErr: true,
		},
		{
			name:    "non-numeric switch",
			topic:   "homeplan/command/649d9d4d/two",
			wantErr: true,
		},
		{
			name:    "zero switch",
			topic:   "homeplan/command/649d9d4d/0",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := channelFromCommandTopic(tt.topic)
			if tt.wantErr {
				if err == nil {
					t.Errorf("channelFromCommandTopic(%q) should fail", tt.topic)
				}
				return
			}
			if err != nil {
				t.Fatalf("channelFromCommandTopic(%q) error = %v", tt.topic, err)
			}
			if got != tt.want {
				t.Errorf("channelFromCommandTopic(%q) = %+v, want %+v", tt.topic, got, tt.want)
			}
		})
	}
}
