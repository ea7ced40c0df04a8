// Homeplan Core - smart home floor-plan backend
//
// This is the main entry point for the Homeplan Core application.
// It discovers the Tinxy device inventory, serves the floor-plan REST
// API, dispatches channel commands through the rate-limited vendor
// client (or the offline mock when no token is configured), and
// optionally publishes state changes over MQTT and records telemetry
// to InfluxDB.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/avashisht/homeplan-core/migrations"

	"github.com/avashisht/homeplan-core/internal/api"
	"github.com/avashisht/homeplan-core/internal/controller"
	"github.com/avashisht/homeplan-core/internal/device"
	"github.com/avashisht/homeplan-core/internal/discovery"
	"github.com/avashisht/homeplan-core/internal/infrastructure/config"
	"github.com/avashisht/homeplan-core/internal/infrastructure/database"
	"github.com/avashisht/homeplan-core/internal/infrastructure/influxdb"
	"github.com/avashisht/homeplan-core/internal/infrastructure/logging"
	"github.com/avashisht/homeplan-core/internal/infrastructure/mqtt"
	"github.com/avashisht/homeplan-core/internal/layout"
	"github.com/avashisht/homeplan-core/internal/tinxy"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Homeplan Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Choose the device backend. This is the single place where the
	// real-vendor versus offline-mock decision is made: a configured
	// token selects the Tinxy cloud, an empty one selects the mock.
	var (
		backend controller.Backend
		lister  discovery.Lister
	)
	if cfg.Tinxy.Token != "" {
		transport := tinxy.NewTransport(cfg.GetMinRequestInterval(), cfg.GetRequestTimeout(), log)
		client := tinxy.NewClient(cfg.Tinxy.BaseURL, cfg.Tinxy.Token, transport, log)
		backend = client
		lister = client
		log.Info("using Tinxy cloud backend",
			"base_url", cfg.Tinxy.BaseURL,
			"min_request_interval", cfg.GetMinRequestInterval(),
		)
	} else {
		backend = controller.NewMock(log)
		log.Info("no Tinxy token configured, using mock backend")
	}

	// Discover devices and build the catalog. Discover never returns an
	// empty list: vendor failures degrade to the fallback catalog.
	catalog := device.NewCatalog()
	for _, dev := range discovery.NewService(lister, log).Discover(ctx) {
		if addErr := catalog.Add(dev); addErr != nil {
			log.Warn("skipping device",
				"device_id", dev.DeviceID,
				"switch", dev.SwitchNumber,
				"error", addErr,
			)
		}
	}
	log.Info("device catalog built", "devices", catalog.Count())

	// Apply saved floor-plan positions over the defaults.
	layouts := layout.NewSQLiteRepository(db.DB)
	if applyErr := layout.Apply(ctx, layouts, catalog); applyErr != nil {
		return fmt.Errorf("applying saved layout: %w", applyErr)
	}

	// Collect optional controller hooks as they come online.
	var ctrlOpts []controller.Option

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		ctrlOpts = append(ctrlOpts, controller.WithPublisher(mqtt.NewStatePublisher(mqttClient)))
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		ctrlOpts = append(ctrlOpts, controller.WithRecorder(influxClient))
	} else {
		log.Info("InfluxDB disabled")
	}

	ctrl := controller.New(backend, log, ctrlOpts...)

	// Accept channel commands over MQTT so external automations can
	// drive devices without going through the REST API.
	if mqttClient != nil {
		if subErr := subscribeCommands(ctx, mqttClient, ctrl, cfg.MQTT.QoS, log); subErr != nil {
			return fmt.Errorf("subscribing to command topics: %w", subErr)
		}
		log.Info("MQTT command ingestion active", "topic", mqtt.Topics{}.AllChannelCommands())

		announceDiscovery(mqttClient, catalog, log)
	}

	// Start the REST API server
	apiServer, err := api.New(api.Deps{
		Config:     cfg.API,
		Logger:     log,
		Catalog:    catalog,
		Controller: ctrl,
		Layouts:    layouts,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := apiServer.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("Homeplan Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HOMEPLAN_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HOMEPLAN_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// commandMessage is the payload accepted on channel command topics.
type commandMessage struct {
	State string `json:"state"`
}

// subscribeCommands wires the MQTT command topics into the controller.
//
// Each message on homeplan/command/{device_id}/{switch} carrying
// {"state": "<symbolic>"} is dispatched as a controller command.
// Malformed topics and payloads are logged and dropped.
func subscribeCommands(ctx context.Context, client *mqtt.Client, ctrl *controller.Controller, qos int, log *logging.Logger) error {
	// #nosec G115 -- qos is validated to 0..2 by config.Validate
	return client.Subscribe(mqtt.Topics{}.AllChannelCommands(), byte(qos), func(topic string, payload []byte) error {
		ch, err := channelFromCommandTopic(topic)
		if err != nil {
			log.Warn("ignoring command on malformed topic", "topic", topic, "error", err)
			return nil
		}

		var msg commandMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Warn("ignoring malformed command payload", "topic", topic, "error", err)
			return nil
		}

		state, err := device.ParseState(msg.State)
		if err != nil {
			log.Warn("ignoring command with invalid state",
				"topic", topic, "state", msg.State)
			return nil
		}

		if err := ctrl.Command(ctx, ch, state); err != nil {
			log.Error("MQTT command failed",
				"device_id", ch.DeviceID,
				"switch", ch.SwitchNumber,
				"state", state,
				"error", err,
			)
		}
		return nil
	})
}

// channelFromCommandTopic extracts the channel from a command topic of
// the form homeplan/command/{device_id}/{switch}.
func channelFromCommandTopic(topic string) (device.Channel, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[0] != mqtt.TopicPrefix || parts[1] != "command" {
		return device.Channel{}, fmt.Errorf("unexpected command topic %q", topic)
	}

	switchNumber, err := strconv.Atoi(parts[3])
	if err != nil || switchNumber < 1 {
		return device.Channel{}, fmt.Errorf("invalid switch number in topic %q", topic)
	}

	return device.Channel{DeviceID: parts[2], SwitchNumber: switchNumber}, nil
}

// announceDiscovery publishes a retained summary of the completed
// discovery run so dashboards know the catalog size and provenance
// without calling the REST API. Best-effort.
func announceDiscovery(client *mqtt.Client, catalog *device.Catalog, log *logging.Logger) {
	fallback := 0
	for _, d := range catalog.List() {
		if d.Source == device.SourceFallback {
			fallback++
		}
	}

	payload, err := json.Marshal(map[string]any{
		"devices":   catalog.Count(),
		"fallback":  fallback > 0,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	if err := client.PublishRetained(mqtt.Topics{}.SystemDiscovery(), payload); err != nil {
		log.Warn("discovery announcement failed", "error", err)
	}
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
