package render

import (
	"context"
	"io"
	"math"

	"github.com/okian/courtside/internal/domain/palette"
	"github.com/okian/courtside/internal/domain/stats"
)

// TopPlayers draws one horizontal bar per player, in the given order,
// colored by team.
func (r *Renderer) TopPlayers(ctx context.Context, w io.Writer, title string, players []stats.Player, metric stats.Metric, pal palette.Palette) error {
	if len(players) == 0 {
		return r.Placeholder(ctx, w, ChartTopBPM, title)
	}
	return r.observe(ctx, ChartTopBPM, w, func(out io.Writer) error {
		c, err := newCanvas(r.width, r.height)
		if err != nil {
			return err
		}
		c.title(title)

		lo, hi := 0.0, 0.0
		labelWidth := 0
		for _, p := range players {
			v, _ := p.Value(metric)
			lo, hi = math.Min(lo, v), math.Max(hi, v)
			if lw, _ := c.measure(p.Name, 11); lw > labelWidth {
				labelWidth = lw
			}
		}
		ticks := niceTicks(lo, hi, 6)
		legendWidth := 170
		left := 20 + labelWidth + 10
		right := r.width - legendWidth
		top, bottom := 50, r.height-60
		x := linear{d0: ticks[0].Value, d1: ticks[len(ticks)-1].Value, r0: left, r1: right}

		for _, t := range ticks {
			px := x.at(t.Value)
			c.line(px, top, px, bottom, colorGrid, 1)
			c.text(t.Label, px, bottom+16, 10, colorText, alignCenter)
		}
		c.text(metric.Label(), (left+right)/2, bottom+40, 12, colorText, alignCenter)

		slot := float64(bottom-top) / float64(len(players))
		barHeight := int(math.Max(2, slot*0.7))
		zero := x.at(0)
		var teams []string
		seen := make(map[string]bool)
		for i, p := range players {
			v, _ := p.Value(metric)
			y0 := top + int(slot*float64(i)+(slot-float64(barHeight))/2)
			x0, x1 := zero, x.at(v)
			if x1 < x0 {
				x0, x1 = x1, x0
			}
			col := toDrawing(pal.Color(p.Team), 255)
			c.rect(x0, y0, x1, y0+barHeight, col, col, 0)
			c.text(p.Name, left-8, y0+barHeight/2+4, 11, colorText, alignRight)
			if !seen[p.Team] {
				seen[p.Team] = true
				teams = append(teams, p.Team)
			}
		}
		c.line(zero, top, zero, bottom, colorAxis, 1)
		c.line(left, bottom, right, bottom, colorAxis, 1)

		ly := top + 10
		c.text("TEAM", right+20, ly, 11, colorText, alignLeft)
		ly += 18
		for _, t := range teams {
			ly = c.swatch(t, right+20, ly, toDrawing(pal.Color(t), 255))
		}
		return c.save(out)
	})
}
