// Package view renders the dashboard HTML page as templ components.
//
// The components live in page.templ; page_templ.go is generated from it with
// `templ generate`.
package view

import (
	"strconv"

	"github.com/okian/courtside/internal/domain/stats"
)

// TeamOption is one checkbox of the sidebar team filter.
type TeamOption struct {
	Name      string
	Color     string
	Selected  bool
	Highlight bool
}

// ChartImage references a rendered chart.
type ChartImage struct {
	Title string
	Src   string
}

// Column is a sortable table header.
type Column struct {
	Label     string
	Href      string
	Active    bool
	Ascending bool
}

// PageData is everything the dashboard page displays.
type PageData struct {
	Title string

	Teams      []TeamOption
	Players    int
	MinPlayers int
	MaxPlayers int

	TopCharts  []ChartImage
	Radar      ChartImage
	TeamCharts []ChartImage

	Columns []Column
	Metrics []stats.Metric
	Rows    []stats.Player
	Dropped int
}

func itoa(n int) string { return strconv.Itoa(n) }

// summary is the line above the table.
func summary(rows, dropped int) string {
	s := strconv.Itoa(rows) + " players"
	if dropped > 0 {
		s += " (" + strconv.Itoa(dropped) + " rows skipped for missing values)"
	}
	return s
}

// sortMark points up for ascending order and down for descending.
func sortMark(c Column) string {
	switch {
	case !c.Active:
		return ""
	case c.Ascending:
		return " ▲"
	default:
		return " ▼"
	}
}

func cell(p stats.Player, m stats.Metric) string {
	v, _ := p.Value(m)
	return strconv.FormatFloat(v, 'f', -1, 64)
}
