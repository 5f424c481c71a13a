// Package config implements msgforge's merged configuration record: a
// nested [Config] built by layering, in order, built-in [Defaults], a
// YAML config file (via [github.com/goccy/go-yaml]), and CLI flags
// (via [github.com/spf13/pflag]), each layer's non-empty values
// replacing the prior layer's.
package config
