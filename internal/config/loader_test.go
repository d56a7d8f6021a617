package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/courtside/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"COURTSIDE_CONFIG",
	"COURTSIDE_ADDR",
	"COURTSIDE_DATA_PATH",
	"COURTSIDE_HIGHLIGHT_TEAM",
	"COURTSIDE_RADAR_METRICS",
	"COURTSIDE_LEADERBOARD_SIZE",
	"COURTSIDE_RADAR_DEFAULT_PLAYERS",
	"COURTSIDE_CORS_ORIGINS",
	"COURTSIDE_LOG_LEVEL",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "courtside.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "data/BigWestCareerRankings.csv")
				convey.So(cfg.RadarMetrics, convey.ShouldHaveLength, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("COURTSIDE_ADDR", ":8080")
			_ = os.Setenv("COURTSIDE_DATA_PATH", "/srv/stats.csv")
			_ = os.Setenv("COURTSIDE_HIGHLIGHT_TEAM", "Hawaii")
			_ = os.Setenv("COURTSIDE_RADAR_METRICS", "BPM, USG,TS")
			_ = os.Setenv("COURTSIDE_LEADERBOARD_SIZE", "15")
			_ = os.Setenv("COURTSIDE_CORS_ORIGINS", "https://a.example,https://b.example")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/srv/stats.csv")
				convey.So(cfg.HighlightTeam, convey.ShouldEqual, "Hawaii")
				convey.So(cfg.RadarMetrics, convey.ShouldResemble, []string{"BPM", "USG", "TS"})
				convey.So(cfg.LeaderboardSize, convey.ShouldEqual, 15)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
data_path: "fixtures/players.csv"
highlight_team: "UC Irvine"
radar_metrics: ["ORTG", "BPM", "STL"]
extremes_size: 5
radar_default_players: 3
`)
			_ = os.Setenv("COURTSIDE_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "fixtures/players.csv")
				convey.So(cfg.HighlightTeam, convey.ShouldEqual, "UC Irvine")
				convey.So(cfg.RadarMetrics, convey.ShouldResemble, []string{"ORTG", "BPM", "STL"})
				convey.So(cfg.ExtremesSize, convey.ShouldEqual, 5)
				convey.So(cfg.RadarDefaultPlayers, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
highlight_team: "UC Irvine"
`)
			_ = os.Setenv("COURTSIDE_CONFIG", tmpFile)
			_ = os.Setenv("COURTSIDE_ADDR", ":8181")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars take precedence over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8181")
				convey.So(cfg.HighlightTeam, convey.ShouldEqual, "UC Irvine")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("COURTSIDE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then ErrLoadConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file is invalid YAML", func() {
			_ = os.Setenv("COURTSIDE_CONFIG", createTempConfigFile(t, "addr: [unterminated"))

			_, err := config.Load(ctx)

			convey.Convey("Then ErrLoadConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When env vars produce an invalid config", func() {
			_ = os.Setenv("COURTSIDE_RADAR_DEFAULT_PLAYERS", "40")

			_, err := config.Load(ctx)

			convey.Convey("Then ErrInvalidConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
