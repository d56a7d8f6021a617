package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/okian/courtside/internal/adapters/render"
	service "github.com/okian/courtside/internal/app"
)

// ChartsHandler serves the dashboard charts as SVG.
type ChartsHandler struct {
	deps     Dependencies
	renderer *render.Renderer
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps Dependencies, renderer *render.Renderer) *ChartsHandler {
	if renderer == nil {
		renderer = render.New()
	}
	return &ChartsHandler{deps: deps, renderer: renderer}
}

// HandleChart returns the handler for GET /charts/{name}.svg. The chart is
// recomputed from the request's selection on every call.
func (h *ChartsHandler) HandleChart(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sel := parseSelection(r, h.deps)

		pal, err := h.deps.Palette(ctx)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		var buf bytes.Buffer
		title := render.Titles[name]
		switch name {
		case render.ChartTopBPM:
			players, derr := h.deps.TopPlayers(ctx, sel)
			if err = derr; err == nil {
				err = h.renderer.TopPlayers(ctx, &buf, title, players, service.LeaderboardMetric, pal)
			}
		case render.ChartORTGTS:
			players, derr := h.deps.Extremes(ctx, sel)
			if err = derr; err == nil {
				err = h.renderer.Scatter(ctx, &buf, name, title, players, service.ExtremesMetric, service.ExtremesPairMetric, pal)
			}
		case render.ChartRadar:
			rc, derr := h.deps.Radar(ctx, sel)
			if err = derr; err == nil {
				err = h.renderer.Radar(ctx, &buf, title, rc)
			}
		case render.ChartTSByTeam:
			boxes, derr := h.deps.Distribution(ctx, sel)
			if err = derr; err == nil {
				err = h.renderer.Distribution(ctx, &buf, title, boxes, service.DistributionMetric, pal)
			}
		case render.ChartUSGAST:
			players, derr := h.deps.Filtered(ctx, sel)
			if err = derr; err == nil {
				err = h.renderer.Scatter(ctx, &buf, name, title, players, service.UsageMetric, service.UsagePairMetric, pal)
			}
		default:
			writeError(w, http.StatusNotFound, "unknown_chart", fmt.Errorf("unknown chart %q", name))
			return
		}
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", render.ContentType)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
