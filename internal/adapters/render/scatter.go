package render

import (
	"context"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/okian/courtside/internal/domain/palette"
	"github.com/okian/courtside/internal/domain/stats"
)

// dotAlpha keeps overlapping points visible.
const dotAlpha = 178

// Scatter plots y against x with one series per team, in first-appearance
// order, and a legend.
func (r *Renderer) Scatter(ctx context.Context, w io.Writer, name, title string, players []stats.Player, x, y stats.Metric, pal palette.Palette) error {
	if len(players) == 0 {
		return r.Placeholder(ctx, w, name, title)
	}
	return r.observe(ctx, name, w, func(out io.Writer) error {
		type points struct{ xs, ys []float64 }
		byTeam := make(map[string]*points)
		var order []string
		xlo, xhi := firstValue(players[0], x)
		ylo, yhi := firstValue(players[0], y)
		for _, p := range players {
			xv, _ := p.Value(x)
			yv, _ := p.Value(y)
			xlo, xhi = minMax(xlo, xhi, xv)
			ylo, yhi = minMax(ylo, yhi, yv)
			pts, ok := byTeam[p.Team]
			if !ok {
				pts = &points{}
				byTeam[p.Team] = pts
				order = append(order, p.Team)
			}
			pts.xs = append(pts.xs, xv)
			pts.ys = append(pts.ys, yv)
		}

		series := make([]chart.Series, 0, len(order))
		for _, team := range order {
			col := toDrawing(pal.Color(team), dotAlpha)
			series = append(series, chart.ContinuousSeries{
				Name:    escapeText(team),
				XValues: byTeam[team].xs,
				YValues: byTeam[team].ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					StrokeColor: col,
					DotWidth:    5,
					DotColor:    col,
				},
			})
		}

		xticks := niceTicks(xlo, xhi, 7)
		yticks := niceTicks(ylo, yhi, 6)
		ch := chart.Chart{
			Title:      escapeText(title),
			Width:      r.width,
			Height:     r.height,
			Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
			XAxis:      chart.XAxis{Name: escapeText(x.Label()), Range: tickRange(xticks), Ticks: xticks},
			YAxis:      chart.YAxis{Name: escapeText(y.Label()), Range: tickRange(yticks), Ticks: yticks},
			Series:     series,
		}
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
		return ch.Render(chart.SVG, out)
	})
}

func firstValue(p stats.Player, m stats.Metric) (float64, float64) {
	v, _ := p.Value(m)
	return v, v
}

func minMax(lo, hi, v float64) (float64, float64) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}
