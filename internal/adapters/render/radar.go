package render

import (
	"context"
	"io"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/courtside/internal/domain/palette"
	"github.com/okian/courtside/internal/domain/radar"
)

// radarRings are the labelled grid circles, as fractions of radar.RadialMax.
var radarRings = []float64{0.2, 0.4, 0.6, 0.8, 1.0, 1.2}

// Radar draws each polygon of rc on a polar grid whose radius spans
// [0, radar.RadialMax]. Highlighted players are red, the rest gray.
func (r *Renderer) Radar(ctx context.Context, w io.Writer, title string, rc radar.Chart) error {
	if len(rc.Polygons) == 0 {
		return r.Placeholder(ctx, w, ChartRadar, title)
	}
	return r.observe(ctx, ChartRadar, w, func(out io.Writer) error {
		c, err := newCanvas(r.radarWidth, r.radarHeight)
		if err != nil {
			return err
		}
		c.title(title)

		legendWidth := 200
		plotWidth := r.radarWidth - legendWidth
		cx, cy := plotWidth/2, 50+(r.radarHeight-50)/2
		radius := math.Min(float64(plotWidth), float64(r.radarHeight-50))/2 - 50

		project := func(angle, value float64) (int, int) {
			d := radius * value / radar.RadialMax
			// Angles run counter-clockwise from the positive x axis.
			return cx + int(math.Round(d*math.Cos(angle))), cy - int(math.Round(d*math.Sin(angle)))
		}

		for _, ring := range radarRings {
			c.circle(cx, cy, radius*ring/radar.RadialMax, drawing.ColorTransparent, colorGrid)
			_, ly := project(math.Pi/2, ring)
			c.text(strconv.FormatFloat(ring, 'f', 1, 64), cx+4, ly-2, 9, colorMuted, alignLeft)
		}
		for _, ax := range rc.Axes {
			ex, ey := project(ax.Angle, radar.RadialMax)
			c.line(cx, cy, ex, ey, colorGrid, 1)
			lx, ly := project(ax.Angle, radar.RadialMax*1.08)
			a := alignCenter
			switch {
			case math.Cos(ax.Angle) > 0.3:
				a = alignLeft
			case math.Cos(ax.Angle) < -0.3:
				a = alignRight
			}
			c.text(string(ax.Metric), lx, ly+4, 12, colorText, a)
		}

		ly := 70
		for _, poly := range rc.Polygons {
			base := palette.Radar(poly.Highlighted)
			xs := make([]int, 0, len(poly.Points))
			ys := make([]int, 0, len(poly.Points))
			// The closing point repeats the first; the path closes itself.
			for _, pt := range poly.Points[:len(poly.Points)-1] {
				px, py := project(pt.Angle, pt.Value)
				xs = append(xs, px)
				ys = append(ys, py)
			}
			c.polygon(xs, ys, toDrawing(base, 51), toDrawing(base, 255), 2)
			ly = c.swatch(poly.Label, plotWidth+10, ly, toDrawing(base, 255))
		}
		return c.save(out)
	})
}
