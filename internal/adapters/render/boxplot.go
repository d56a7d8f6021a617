package render

import (
	"context"
	"io"
	"math"

	"github.com/okian/courtside/internal/domain/palette"
	"github.com/okian/courtside/internal/domain/stats"
)

// Distribution draws one box per team: quartile box, median line, whiskers
// and outlier dots.
func (r *Renderer) Distribution(ctx context.Context, w io.Writer, title string, boxes []stats.TeamBox, metric stats.Metric, pal palette.Palette) error {
	if len(boxes) == 0 {
		return r.Placeholder(ctx, w, ChartTSByTeam, title)
	}
	return r.observe(ctx, ChartTSByTeam, w, func(out io.Writer) error {
		c, err := newCanvas(r.width, r.height)
		if err != nil {
			return err
		}
		c.title(title)

		lo, hi := boxes[0].Min, boxes[0].Max
		for _, b := range boxes {
			lo, hi = math.Min(lo, b.Min), math.Max(hi, b.Max)
		}
		ticks := niceTicks(lo, hi, 6)
		left, right := 80, r.width-20
		top, bottom := 50, r.height-130
		y := linear{d0: ticks[0].Value, d1: ticks[len(ticks)-1].Value, r0: bottom, r1: top}

		for _, t := range ticks {
			py := y.at(t.Value)
			c.line(left, py, right, py, colorGrid, 1)
			c.text(t.Label, left-8, py+4, 10, colorText, alignRight)
		}
		c.rotatedText(metric.Label(), 24, (top+bottom)/2+60, 12, colorText, -90)

		slot := float64(right-left) / float64(len(boxes))
		half := int(math.Max(3, slot*0.3))
		for i, b := range boxes {
			cx := left + int(slot*(float64(i)+0.5))
			col := toDrawing(pal.Color(b.Team), 255)
			fill := toDrawing(pal.Color(b.Team), 153)

			c.line(cx, y.at(b.WhiskerLow), cx, y.at(b.Q1), colorText, 1)
			c.line(cx, y.at(b.Q3), cx, y.at(b.WhiskerHigh), colorText, 1)
			c.line(cx-half/2, y.at(b.WhiskerLow), cx+half/2, y.at(b.WhiskerLow), colorText, 1)
			c.line(cx-half/2, y.at(b.WhiskerHigh), cx+half/2, y.at(b.WhiskerHigh), colorText, 1)
			c.rect(cx-half, y.at(b.Q3), cx+half, y.at(b.Q1), fill, col, 1)
			c.line(cx-half, y.at(b.Median), cx+half, y.at(b.Median), colorText, 2)
			for _, o := range b.Outliers {
				c.circle(cx, y.at(o), 3, fill, colorText)
			}
			c.rotatedText(b.Team, cx-4, bottom+14, 10, colorText, 45)
		}
		c.line(left, bottom, right, bottom, colorAxis, 1)
		c.line(left, top, left, bottom, colorAxis, 1)
		c.text("Team", (left+right)/2, r.height-12, 12, colorText, alignCenter)
		return c.save(out)
	})
}
