package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleConfig is the commented configuration template written by
// `stitchd init`. It mirrors GetDefaultConfig().
const sampleConfig = `# stitchd configuration
#
# All values can be overridden with environment variables using the
# STITCHD_ prefix, e.g. STITCHD_LOGGING_LEVEL=DEBUG.

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: INFO
  # Output format: text, json
  format: text
  # Destination: stdout, stderr, or a file path
  output: stdout

# Maximum time to wait for graceful shutdown
shutdown_timeout: 30s

database:
  # Backend: sqlite (single-node) or postgres (HA-capable)
  type: sqlite
  sqlite:
    # Defaults to $XDG_CONFIG_HOME/stitchd/catalog.db when omitted
    # path: /var/lib/stitchd/catalog.db
  # postgres:
  #   host: localhost
  #   port: 5432
  #   database: stitchd
  #   user: stitchd
  #   password: secret
  #   sslmode: disable

api:
  # Operational HTTP server: health probes and /metrics
  enabled: true
  port: 8080

metrics:
  # Prometheus metrics collection (served on the API /metrics endpoint)
  enabled: false

telemetry:
  # OpenTelemetry tracing (OTLP gRPC)
  enabled: false
  endpoint: localhost:4317
  insecure: true
  sample_rate: 1.0

maintenance:
  # Background orphan sweep over the entity reference graph
  enabled: true
  interval: 10m
  dry_run: false
  prune_edges: true
`

// InitConfig creates a sample configuration file at the default location.
// Returns the path the file was written to.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// InitConfigToPath creates a sample configuration file at the given path.
// Fails if the file already exists, unless force is true.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
