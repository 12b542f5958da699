// Package config loads simulator settings through viper: built-in
// defaults, an optional YAML file, and ARTEMIS2_* environment
// overrides, in increasing precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the merged runtime configuration for both binaries.
type Config struct {
	// HTTPAddr is the mission API listen address.
	HTTPAddr string
	// MetricsAddr is the Prometheus /metrics listen address.
	MetricsAddr string

	// Tick is the wall interval between clock updates.
	Tick time.Duration
	// TimeScale is the MET seconds advanced per wall second.
	TimeScale float64
	// StartMET lets a scenario begin mid-mission (negative = countdown).
	StartMET float64
	// PauseOnMilestones controls whether interactive milestones hold
	// the clock for a challenge.
	PauseOnMilestones bool

	// StreamRateHz paces websocket telemetry frames per connection.
	StreamRateHz float64
	// StreamMaxClients caps concurrent websocket connections.
	StreamMaxClients int

	// MilestonesPath optionally overrides the built-in milestone list.
	MilestonesPath string

	LogLevel  string
	LogFormat string
}

// Load reads configuration, optionally from the YAML file at path
// (empty path means defaults plus environment only). A missing file at
// an explicit path is an error; a malformed one always is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.metrics_addr", ":9090")
	v.SetDefault("clock.tick", "33ms")
	v.SetDefault("clock.time_scale", 1.0)
	v.SetDefault("clock.start_met", 0.0)
	v.SetDefault("clock.pause_on_milestones", true)
	v.SetDefault("stream.rate_hz", 10.0)
	v.SetDefault("stream.max_clients", 64)
	v.SetDefault("milestones.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("ARTEMIS2")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	cfg := Config{
		HTTPAddr:          v.GetString("server.http_addr"),
		MetricsAddr:       v.GetString("server.metrics_addr"),
		Tick:              v.GetDuration("clock.tick"),
		TimeScale:         v.GetFloat64("clock.time_scale"),
		StartMET:          v.GetFloat64("clock.start_met"),
		PauseOnMilestones: v.GetBool("clock.pause_on_milestones"),
		StreamRateHz:      v.GetFloat64("stream.rate_hz"),
		StreamMaxClients:  v.GetInt("stream.max_clients"),
		MilestonesPath:    v.GetString("milestones.path"),
		LogLevel:          v.GetString("log.level"),
		LogFormat:         v.GetString("log.format"),
	}

	if cfg.Tick <= 0 {
		return Config{}, fmt.Errorf("clock.tick must be positive, got %v", cfg.Tick)
	}
	if cfg.TimeScale <= 0 {
		return Config{}, fmt.Errorf("clock.time_scale must be positive, got %v", cfg.TimeScale)
	}
	if cfg.StreamRateHz <= 0 {
		return Config{}, fmt.Errorf("stream.rate_hz must be positive, got %v", cfg.StreamRateHz)
	}
	if cfg.StreamMaxClients < 1 {
		return Config{}, fmt.Errorf("stream.max_clients must be at least 1, got %d", cfg.StreamMaxClients)
	}
	return cfg, nil
}
