package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/courtside/internal/domain/stats"
)

// Query parameter names.
const (
	paramTeam    = "team"
	paramPlayers = "players"
	paramSort    = "sort"
	paramDir     = "dir"
	paramMetric  = "metric"
	paramLimit   = "n"
)

// parseSelection reads the selection from the query string. Without any
// team parameter the default selection applies; team parameters that are
// all empty select every team. players outside the bounds is clamped and an
// unparsable value falls back to the default.
func parseSelection(r *http.Request, deps Dependencies) Selection {
	q := r.URL.Query()
	sel := deps.DefaultSelection()

	if vals, ok := q[paramTeam]; ok {
		teams := make([]string, 0, len(vals))
		for _, v := range vals {
			if v = strings.TrimSpace(v); v != "" {
				teams = append(teams, v)
			}
		}
		sel.Teams = teams
	}

	sel.Players = deps.ClampPlayers(0)
	if raw := strings.TrimSpace(q.Get(paramPlayers)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			sel.Players = deps.ClampPlayers(n)
		}
	}
	return sel
}

// selectionQuery encodes sel so that parseSelection reproduces it. An empty
// team list is sent as a single empty team parameter.
func selectionQuery(sel Selection) url.Values {
	q := url.Values{}
	if len(sel.Teams) == 0 {
		q.Set(paramTeam, "")
	}
	for _, t := range sel.Teams {
		q.Add(paramTeam, t)
	}
	q.Set(paramPlayers, strconv.Itoa(sel.Players))
	return q
}

// parseSort returns the table column and direction, BPM descending by
// default.
func parseSort(r *http.Request) (string, stats.Direction) {
	q := r.URL.Query()
	column := strings.TrimSpace(q.Get(paramSort))
	if column == "" {
		return string(stats.MetricBPM), stats.Largest
	}
	if q.Get(paramDir) == "" {
		return column, stats.Largest
	}
	return column, stats.ParseDirection(q.Get(paramDir))
}
