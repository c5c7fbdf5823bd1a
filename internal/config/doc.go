// Package config defines the application configuration structure and loads
// it from environment variables and an optional YAML config file using viper,
// validating the result with go-playground/validator struct tags.
package config
