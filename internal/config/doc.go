// Package config loads, normalizes and validates the TOML configuration
// file that drives the subtext CLI.
package config
