package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

const sampleTable = "PLAYER,TEAM,ORTG,EFG,TS,3P,2P,AST,TO,STL,BLK,USG,BPM\n" +
	"Ada Lane,UC Santa Barbara,118.2,55.1,58.3,36.0,52.1,3.1,12.0,1.9,0.8,24.5,6.2\n" +
	"Ben Cole,Hawaii,101.0,48.0,51.0,30.0,47.5,1.2,15.1,1.1,2.0,19.0,-1.5\n" +
	"Cy Park,UC Irvine,109.4,52.3,55.0,33.3,50.0,2.4,13.2,1.5,1.1,21.8,2.7\n"

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rankings.csv")
	if err := os.WriteFile(path, []byte(sampleTable), 0o600); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestMainConfiguration(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When configuration comes from the environment", func() {
			t.Setenv("COURTSIDE_ADDR", ":8080")
			t.Setenv("COURTSIDE_HIGHLIGHT_TEAM", "Hawaii")
			t.Setenv("COURTSIDE_RADAR_MAX_PLAYERS", "8")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.HighlightTeam, convey.ShouldEqual, "Hawaii")
				convey.So(cfg.RadarMaxPlayers, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			t.Setenv("COURTSIDE_RADAR_METRICS", "ORTG,HEIGHT")

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestNewService(t *testing.T) {
	convey.Convey("Given a configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()

		convey.Convey("When the table exists", func() {
			cfg.DataPath = writeSample(t)
			svc, err := newService(ctx, cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then the service is started over it", func() {
				stats := svc.GetStats(ctx)
				convey.So(stats["started"], convey.ShouldBeTrue)
				convey.So(stats["players"], convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When the table is missing", func() {
			cfg.DataPath = filepath.Join(t.TempDir(), "missing.csv")
			svc, err := newService(ctx, cfg, logger.Get())

			convey.Convey("Then startup fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(svc, convey.ShouldBeNil)
			})
		})
	})
}

func TestRouter(t *testing.T) {
	convey.Convey("Given the full router", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.DataPath = writeSample(t)
		svc, err := newService(ctx, cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		defer svc.Stop()
		r := newRouter(ctx, cfg, svc, logger.Get())

		serve := func(req *http.Request) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			return w
		}

		convey.Convey("Then the dashboard, assets, charts and docs are mounted", func() {
			for _, path := range []string{"/", "/assets/style.css", "/charts/radar.svg", "/api/v1/teams", "/api-docs", "/openapi.yaml", "/healthz", "/stats"} {
				w := serve(httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("And every response carries a request id", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/api/v1/teams", http.NoBody))
			convey.So(w.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})

		convey.Convey("And cross-origin reads are allowed", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/players", http.NoBody)
			req.Header.Set("Origin", "https://example.org")
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			w := serve(req)
			convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "*")
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should stop with its context", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing the dataset refresher", func() {
			cfg := config.New()
			cfg.DataPath = writeSample(t)
			svc, err := newService(context.Background(), cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then it should stop with its context", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startDatasetRefresher(ctx, svc)
				}, convey.ShouldNotPanic)
			})

			convey.Convey("And a refresh after the file disappears does not panic", func() {
				convey.So(os.Remove(cfg.DataPath), convey.ShouldBeNil)
				convey.So(func() {
					refreshDataset(context.Background(), svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing metrics manager creation", func() {
			convey.Convey("Then a manager on a custom registry is creatable", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}
