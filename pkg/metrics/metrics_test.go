package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "courtside")
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRefreshInterval(5*time.Second),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.datasetCacheHits.Inc()

			Convey("Then collectors are registered under the custom names", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_dataset_cache_hits_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
			})
		})

		Convey("When ignoring empty option values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "courtside")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording dataset metrics", func() {
			before := testutil.ToFloat64(globalManager.datasetCacheHits)
			RecordDatasetCacheHit()
			RecordDatasetLoad(true, 3.5)
			RecordDatasetLoad(false, 1)
			UpdateDataset(120, 4, 11, time.Unix(1_700_000_000, 0))

			Convey("Then the collectors reflect the values", func() {
				So(testutil.ToFloat64(globalManager.datasetCacheHits), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.datasetRows), ShouldEqual, 120)
				So(testutil.ToFloat64(globalManager.datasetRowsDropped), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.datasetTeams), ShouldEqual, 11)
				So(testutil.ToFloat64(globalManager.datasetLastLoadUnix), ShouldEqual, 1_700_000_000)
			})
		})

		Convey("When recording analysis metrics", func() {
			before := testutil.ToFloat64(globalManager.radarFlatMetrics.WithLabelValues("USG"))
			So(func() {
				RecordChartRender("radar", true, 2)
				RecordChartRender("radar", false, 2)
				RecordEmptySelection("radar")
				RecordRadarNormalization([]string{"USG"})
			}, ShouldNotPanic)

			Convey("Then flat metrics are counted per metric", func() {
				So(testutil.ToFloat64(globalManager.radarFlatMetrics.WithLabelValues("USG")), ShouldEqual, before+1)
			})
		})

		Convey("When recording HTTP, error and system metrics", func() {
			So(func() {
				RecordHTTPRequest("charts", "GET", "200")
				RecordHTTPRequestDuration("charts", "GET", "200", 12)
				RecordErrorByComponent("repository", "load")
				RecordErrorByType("server_error", "high")
				RecordErrorByEndpoint("charts", "GET", "server_error")
				RecordErrorLatency("http", "server_error", 4)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("Then the registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
