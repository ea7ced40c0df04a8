// Package mqtt provides MQTT client connectivity for Homeplan Core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// Homeplan uses MQTT as its outbound event bus: the Core publishes
// channel state changes and its own online/offline status, and wall
// panels, dashboards, or automations subscribe. The Core also accepts
// channel commands over MQTT so automations can drive devices without
// going through the HTTP API.
//
//	Homeplan Core ↔ MQTT Broker ↔ Panels / Dashboards / Automations
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Watch every channel state change
//	err = client.Subscribe(mqtt.Topics{}.AllChannelStates(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish a state update
//	topic := mqtt.Topics{}.ChannelState("649d9d4d", 1)
//	client.Publish(topic, []byte(`{"state":"on"}`), 1, true)
package mqtt
