// Package config loads and hot-reloads historyd's YAML configuration,
// in the same shape as the teacher's agent/internal/config package:
// Load reads, defaults, and validates; Watch follows the file for
// changes via fsnotify and reloads on write/create, keeping the
// previous config on a parse failure.
package config
