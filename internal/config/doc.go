// Package config provides configuration management for the routing server.
//
// # Features
//
//   - YAML configuration with ${VAR} and ${VAR:-default} environment
//     variable substitution
//   - Structural validation including route pattern syntax and conflict
//     checks
//   - File watching with debounced hot reload via fsnotify
//
// # Usage
//
//	cfg, err := config.LoadConfig("configs/benchserver.yaml")
//	if err != nil {
//		return err
//	}
//	if err := config.ValidateConfig(cfg); err != nil {
//		return err
//	}
package config
