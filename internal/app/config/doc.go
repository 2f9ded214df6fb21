// Package config provides the multiagent application configuration.
//
// This package defines the configuration structure and validation:
//
//   - config.go: AppConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Range and enum checks, record directory creation
//   - fields.go: Flattened key/value pairs for the startup log line
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and flags.
package config
