package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/courtside/internal/domain/radar"
	"github.com/okian/courtside/internal/domain/stats"
)

// maxLeaders caps the n parameter of /api/v1/leaders.
const maxLeaders = 500

// PlayersHandler serves the JSON read API.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type playersResponse struct {
	Teams   []string       `json:"teams"`
	Count   int            `json:"count"`
	Players []stats.Player `json:"players"`
}

type leadersResponse struct {
	Metric    stats.Metric   `json:"metric"`
	Direction string         `json:"direction"`
	Teams     []string       `json:"teams"`
	Players   []stats.Player `json:"players"`
}

type radarResponse struct {
	Teams     []string    `json:"teams"`
	Players   int         `json:"players"`
	RadialMax float64     `json:"radial_max"`
	Chart     radar.Chart `json:"chart"`
}

type distributionResponse struct {
	Metric stats.Metric    `json:"metric"`
	Teams  []string        `json:"teams"`
	Boxes  []stats.TeamBox `json:"boxes"`
}

// HandleTeams handles GET /api/v1/teams.
func (h *PlayersHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.Teams(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandlePlayers handles GET /api/v1/players: the sortable table.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r, h.deps)
	column, dir := parseSort(r)
	players, err := h.deps.Table(r.Context(), sel, column, dir)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playersResponse{Teams: nonNil(sel.Teams), Count: len(players), Players: nonNilPlayers(players)})
}

// HandleLeaders handles GET /api/v1/leaders?metric=BPM&n=10&dir=desc.
func (h *PlayersHandler) HandleLeaders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := parseSelection(r, h.deps)

	metric := stats.MetricBPM
	if raw := q.Get(paramMetric); raw != "" {
		m, err := stats.ParseMetric(raw)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		metric = m
	}

	n := 10
	if raw := strings.TrimSpace(q.Get(paramLimit)); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxLeaders {
			writeError(w, http.StatusBadRequest, "invalid_limit", fmt.Errorf("n must be an integer between 1 and %d", maxLeaders))
			return
		}
		n = v
	}

	dir := stats.ParseDirection(q.Get(paramDir))
	players, err := h.deps.Leaders(r.Context(), sel, metric, n, dir)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leadersResponse{
		Metric:    metric,
		Direction: directionName(dir),
		Teams:     nonNil(sel.Teams),
		Players:   nonNilPlayers(players),
	})
}

// HandleRadar handles GET /api/v1/radar.
func (h *PlayersHandler) HandleRadar(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r, h.deps)
	rc, err := h.deps.Radar(r.Context(), sel)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if rc.Polygons == nil {
		rc.Polygons = []radar.Polygon{}
	}
	writeJSON(w, http.StatusOK, radarResponse{
		Teams:     nonNil(sel.Teams),
		Players:   sel.Players,
		RadialMax: radar.RadialMax,
		Chart:     rc,
	})
}

// HandleDistribution handles GET /api/v1/distribution?metric=TS.
func (h *PlayersHandler) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r, h.deps)
	metric := stats.MetricTS
	if raw := r.URL.Query().Get(paramMetric); raw != "" {
		m, err := stats.ParseMetric(raw)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		metric = m
	}
	boxes, err := h.deps.DistributionOf(r.Context(), sel, metric)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if boxes == nil {
		boxes = []stats.TeamBox{}
	}
	writeJSON(w, http.StatusOK, distributionResponse{Metric: metric, Teams: nonNil(sel.Teams), Boxes: boxes})
}

func directionName(d stats.Direction) string {
	if d == stats.Smallest {
		return "asc"
	}
	return "desc"
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilPlayers(p []stats.Player) []stats.Player {
	if p == nil {
		return []stats.Player{}
	}
	return p
}
