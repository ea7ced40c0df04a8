// Package config handles loading and validating Homeplan Core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (the Tinxy token, MQTT credentials) should be set
//     via environment variables rather than committed to the config file
//   - The config file should have restricted permissions (0600)
//   - An empty Tinxy token is not an error: it selects the offline mock
//     backend at composition time
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Site.Name)
package config
