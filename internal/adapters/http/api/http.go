// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/courtside/internal/adapters/render"
	service "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/domain/palette"
	"github.com/okian/courtside/internal/domain/radar"
	"github.com/okian/courtside/internal/domain/stats"
	"github.com/okian/courtside/pkg/logger"
)

// Selection is the per-request team filter and radar size.
type Selection = service.Selection

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Selection defaults and bounds.
	DefaultSelection() Selection
	ClampPlayers(n int) int
	PlayerBounds() (def, lo, hi int)
	HighlightTeam() string

	// Read operations expose the derived views of the player table.
	Teams(ctx context.Context) (service.TeamsView, error)
	Palette(ctx context.Context) (palette.Palette, error)
	Filtered(ctx context.Context, sel Selection) ([]stats.Player, error)
	TopPlayers(ctx context.Context, sel Selection) ([]stats.Player, error)
	Extremes(ctx context.Context, sel Selection) ([]stats.Player, error)
	Leaders(ctx context.Context, sel Selection, metric stats.Metric, n int, dir stats.Direction) ([]stats.Player, error)
	Radar(ctx context.Context, sel Selection) (radar.Chart, error)
	Distribution(ctx context.Context, sel Selection) ([]stats.TeamBox, error)
	DistributionOf(ctx context.Context, sel Selection, metric stats.Metric) ([]stats.TeamBox, error)
	Table(ctx context.Context, sel Selection, column string, dir stats.Direction) ([]stats.Player, error)
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *DashboardHandler
	chartsHandler    *ChartsHandler
	playersHandler   *PlayersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, renderer *render.Renderer) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: NewDashboardHandler(deps),
		chartsHandler:    NewChartsHandler(deps, renderer),
		playersHandler:   NewPlayersHandler(deps),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	r.Get("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))

	for _, name := range render.Charts {
		r.Get("/charts/"+name+".svg", MetricsMiddleware(s.chartsHandler.HandleChart(name), "chart_"+name))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teams", MetricsMiddleware(s.playersHandler.HandleTeams, "teams"))
		r.Get("/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players"))
		r.Get("/leaders", MetricsMiddleware(s.playersHandler.HandleLeaders, "leaders"))
		r.Get("/radar", MetricsMiddleware(s.playersHandler.HandleRadar, "radar"))
		r.Get("/distribution", MetricsMiddleware(s.playersHandler.HandleDistribution, "distribution"))
	})
}

var errDatasetUnavailable = errors.New("player table could not be read")

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps errors from the read operations onto status codes.
// Dataset failures are logged in full; the client only sees a generic
// message since the cause may carry file system paths.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, stats.ErrUnknownMetric):
		writeError(w, http.StatusBadRequest, "invalid_metric", err)
	case errors.Is(err, stats.ErrUnknownColumn):
		writeError(w, http.StatusBadRequest, "invalid_sort", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "canceled", err)
	default:
		logger.Get().Named("http").Error(r.Context(), "dataset read failed",
			logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "dataset_error", errDatasetUnavailable)
	}
}
