package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/okian/courtside/internal/adapters/http/view"
	"github.com/okian/courtside/internal/adapters/render"
	"github.com/okian/courtside/internal/domain/stats"
)

// DashboardTitle heads the HTML page.
const DashboardTitle = "Big West Basketball Analytics Dashboard"

// DashboardHandler renders the HTML dashboard for the request's selection.
type DashboardHandler struct {
	deps Dependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps Dependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleDashboard handles GET / and GET /dashboard.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sel := parseSelection(r, h.deps)
	column, dir := parseSort(r)

	teams, err := h.deps.Teams(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rows, err := h.deps.Table(ctx, sel, column, dir)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_, lo, hi := h.deps.PlayerBounds()
	selected := make(map[string]bool, len(sel.Teams))
	for _, t := range sel.Teams {
		selected[t] = true
	}
	options := make([]view.TeamOption, 0, len(teams.Teams))
	for _, t := range teams.Teams {
		options = append(options, view.TeamOption{
			Name:      t,
			Color:     teams.Colors[t],
			Selected:  selected[t],
			Highlight: t == teams.Highlight,
		})
	}

	query := selectionQuery(sel)
	chartSrc := func(name string) view.ChartImage {
		return view.ChartImage{Title: render.Titles[name], Src: "/charts/" + name + ".svg?" + query.Encode()}
	}

	data := view.PageData{
		Title:      DashboardTitle,
		Teams:      options,
		Players:    sel.Players,
		MinPlayers: lo,
		MaxPlayers: hi,
		TopCharts:  []view.ChartImage{chartSrc(render.ChartTopBPM), chartSrc(render.ChartORTGTS)},
		Radar:      chartSrc(render.ChartRadar),
		TeamCharts: []view.ChartImage{chartSrc(render.ChartTSByTeam), chartSrc(render.ChartUSGAST)},
		Columns:    sortColumns(r.URL.Path, query, column, dir),
		Metrics:    stats.Metrics,
		Rows:       rows,
		Dropped:    teams.Dropped,
	}
	templ.Handler(view.Page(data)).ServeHTTP(w, r)
}

// sortColumns builds the table headers. Clicking the active column flips
// its direction; any other column starts descending.
func sortColumns(path string, sel url.Values, column string, dir stats.Direction) []view.Column {
	names := make([]string, 0, len(stats.Metrics)+2)
	names = append(names, stats.ColumnPlayer, stats.ColumnTeam)
	for _, m := range stats.Metrics {
		names = append(names, string(m))
	}

	out := make([]view.Column, 0, len(names))
	for _, name := range names {
		active := strings.EqualFold(name, column)
		next := "desc"
		if active && dir == stats.Largest {
			next = "asc"
		}
		q := url.Values{}
		for k, v := range sel {
			q[k] = v
		}
		q.Set(paramSort, name)
		q.Set(paramDir, next)
		out = append(out, view.Column{
			Label:     name,
			Href:      path + "?" + q.Encode(),
			Active:    active,
			Ascending: active && dir == stats.Smallest,
		})
	}
	return out
}
