// Package config defines the dashboard configuration and its loading hooks.
//
// Conventions:
//   - New returns a Config populated with defaults.
//   - Load layers defaults, an optional YAML file and environment variables.
//   - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/courtside/internal/domain/stats"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPath is the player statistics table to load.
	DataPath string `koanf:"data_path"`

	// HighlightTeam is drawn in red and is the default team selection.
	HighlightTeam string `koanf:"highlight_team"`

	// RadarMetrics are the radar axes, in angular order.
	RadarMetrics []string `koanf:"radar_metrics"`

	// LeaderboardSize is the number of bars in the top players chart.
	LeaderboardSize int `koanf:"leaderboard_size"`

	// ExtremesSize is the number of top and bottom ORTG players scattered.
	ExtremesSize int `koanf:"extremes_size"`

	// Radar comparison size: default and slider bounds.
	RadarDefaultPlayers int `koanf:"radar_default_players"`
	RadarMinPlayers     int `koanf:"radar_min_players"`
	RadarMaxPlayers     int `koanf:"radar_max_players"`

	// CORSOrigins lists origins allowed to call the JSON API.
	CORSOrigins []string `koanf:"cors_origins"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DataPath:            "data/BigWestCareerRankings.csv",
		HighlightTeam:       "UC Santa Barbara",
		RadarMetrics:        []string{"ORTG", "TS", "USG", "AST", "BPM"},
		LeaderboardSize:     10,
		ExtremesSize:        20,
		RadarDefaultPlayers: 5,
		RadarMinPlayers:     2,
		RadarMaxPlayers:     10,
		CORSOrigins:         []string{"*"},
	}
}

// Metrics returns RadarMetrics parsed into stats metrics.
func (c *Config) Metrics() ([]stats.Metric, error) {
	out := make([]stats.Metric, 0, len(c.RadarMetrics))
	for _, name := range c.RadarMetrics {
		m, err := stats.ParseMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "addr must not be empty")
	}
	if strings.TrimSpace(c.DataPath) == "" {
		problems = append(problems, "data_path must not be empty")
	}
	if len(c.RadarMetrics) == 0 {
		problems = append(problems, "radar_metrics must not be empty")
	} else if _, err := c.Metrics(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.LeaderboardSize < 1 {
		problems = append(problems, "leaderboard_size must be positive")
	}
	if c.ExtremesSize < 1 {
		problems = append(problems, "extremes_size must be positive")
	}
	if c.RadarMinPlayers < 1 || c.RadarMinPlayers > c.RadarMaxPlayers {
		problems = append(problems, "radar_min_players must be between 1 and radar_max_players")
	}
	if c.RadarDefaultPlayers < c.RadarMinPlayers || c.RadarDefaultPlayers > c.RadarMaxPlayers {
		problems = append(problems, "radar_default_players must lie within the radar player bounds")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
