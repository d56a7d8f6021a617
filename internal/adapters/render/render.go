// Package render draws the dashboard charts as SVG documents.
//
// Scatter plots use go-chart's Chart type; the bar, radar and box charts are
// drawn directly on a go-chart SVG renderer since the library has no polar,
// horizontal bar or box primitives.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/courtside/internal/domain/palette"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// Chart names, also used as URL slugs.
const (
	ChartTopBPM   = "top-bpm"
	ChartORTGTS   = "ortg-ts"
	ChartRadar    = "radar"
	ChartTSByTeam = "ts-by-team"
	ChartUSGAST   = "usg-ast"
)

// Charts lists every chart in page order.
var Charts = []string{ChartTopBPM, ChartORTGTS, ChartRadar, ChartTSByTeam, ChartUSGAST}

// Titles holds the heading of each chart.
var Titles = map[string]string{
	ChartTopBPM:   "Top Players by Box Plus/Minus (BPM)",
	ChartORTGTS:   "Offensive Rating vs. True Shooting %",
	ChartRadar:    "Top Players Comparison",
	ChartTSByTeam: "True Shooting % Distribution by Team",
	ChartUSGAST:   "Usage Rate vs. Assist/Turnover Ratio",
}

// EmptyMessage is drawn instead of a chart when the selection has no players.
const EmptyMessage = "No players match the current selection"

// ContentType is the media type of every rendered chart.
const ContentType = "image/svg+xml"

var (
	colorBackground = drawing.ColorWhite
	colorText       = drawing.ColorFromHex("333333")
	colorMuted      = drawing.ColorFromHex("888888")
	colorGrid       = drawing.ColorFromHex("dddddd")
	colorAxis       = drawing.ColorFromHex("999999")
)

// Renderer draws charts at fixed sizes.
type Renderer struct {
	width       int
	height      int
	radarWidth  int
	radarHeight int
	log         logger.Logger
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the size of the bar, scatter and box charts.
func WithSize(w, h int) Option {
	return func(r *Renderer) {
		if w > 0 && h > 0 {
			r.width, r.height = w, h
		}
	}
}

// WithRadarSize sets the size of the radar chart.
func WithRadarSize(w, h int) Option {
	return func(r *Renderer) {
		if w > 0 && h > 0 {
			r.radarWidth, r.radarHeight = w, h
		}
	}
}

// WithLogger sets the logger used for render failures.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// New constructs a Renderer with default sizes.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:       900,
		height:      540,
		radarWidth:  820,
		radarHeight: 640,
		log:         logger.Get().Named("render"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// observe renders into a buffer so that a failed chart writes nothing, and
// records the outcome.
func (r *Renderer) observe(ctx context.Context, name string, w io.Writer, draw func(io.Writer) error) error {
	start := time.Now()
	var buf bytes.Buffer
	err := draw(&buf)
	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordChartRender(name, err == nil, ms)
	if err != nil {
		r.log.Error(ctx, "chart render failed", logger.String("chart", name), logger.Error(err))
		return fmt.Errorf("render.%s: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// Placeholder draws a titled frame with EmptyMessage.
func (r *Renderer) Placeholder(ctx context.Context, w io.Writer, name, title string) error {
	width, height := r.width, r.height
	if name == ChartRadar {
		width, height = r.radarWidth, r.radarHeight
	}
	return r.observe(ctx, name, w, func(out io.Writer) error {
		c, err := newCanvas(width, height)
		if err != nil {
			return err
		}
		c.title(title)
		c.rect(20, 50, width-20, height-20, drawing.ColorTransparent, colorGrid, 1)
		c.text(EmptyMessage, width/2, height/2, 14, colorMuted, alignCenter)
		return c.save(out)
	})
}

func toDrawing(c palette.Color, alpha uint8) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// canvas wraps a go-chart SVG renderer with the few primitives the custom
// charts need.
type canvas struct {
	r      chart.Renderer
	width  int
	height int
}

func newCanvas(width, height int) (*canvas, error) {
	r, err := chart.SVG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFont(font)
	c := &canvas{r: r, width: width, height: height}
	c.rect(0, 0, width, height, colorBackground, drawing.ColorTransparent, 0)
	return c, nil
}

func (c *canvas) rect(x0, y0, x1, y1 int, fill, stroke drawing.Color, strokeWidth float64) {
	c.r.ResetStyle()
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(strokeWidth)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.Close()
	c.r.FillStroke()
}

func (c *canvas) line(x0, y0, x1, y1 int, col drawing.Color, strokeWidth float64) {
	c.r.ResetStyle()
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(strokeWidth)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
}

func (c *canvas) circle(x, y int, radius float64, fill, stroke drawing.Color) {
	c.r.ResetStyle()
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(1)
	c.r.Circle(radius, x, y)
}

// polygon draws a closed path through xs/ys.
func (c *canvas) polygon(xs, ys []int, fill, stroke drawing.Color, strokeWidth float64) {
	if len(xs) == 0 {
		return
	}
	c.r.ResetStyle()
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(strokeWidth)
	c.r.MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		c.r.LineTo(xs[i], ys[i])
	}
	c.r.Close()
	c.r.FillStroke()
}

func (c *canvas) measure(s string, size float64) (w, h int) {
	c.r.SetFontSize(size)
	b := c.r.MeasureText(s)
	return b.Width(), b.Height()
}

// text draws s with its baseline at y, aligned horizontally on x.
func (c *canvas) text(s string, x, y int, size float64, col drawing.Color, a align) {
	c.r.ResetStyle()
	c.r.SetFontSize(size)
	c.r.SetFontColor(col)
	w, _ := c.measure(s, size)
	switch a {
	case alignCenter:
		x -= w / 2
	case alignRight:
		x -= w
	}
	c.r.Text(escapeText(s), x, y)
}

// rotatedText draws s starting at (x, y), turned clockwise by deg.
func (c *canvas) rotatedText(s string, x, y int, size float64, col drawing.Color, deg float64) {
	c.r.ResetStyle()
	c.r.SetFontSize(size)
	c.r.SetFontColor(col)
	c.r.SetTextRotation(deg * math.Pi / 180)
	c.r.Text(escapeText(s), x, y)
	c.r.ClearTextRotation()
}

func (c *canvas) title(s string) {
	c.text(s, c.width/2, 30, 16, colorText, alignCenter)
}

// swatch draws a legend entry and returns the y of the next one.
func (c *canvas) swatch(label string, x, y int, col drawing.Color) int {
	c.rect(x, y-9, x+12, y+1, col, col, 1)
	c.text(label, x+18, y, 11, colorText, alignLeft)
	return y + 18
}

// escapeText makes s safe as SVG character data. The go-chart SVG renderer
// writes text bodies verbatim, and player and team names come from the table.
func escapeText(s string) string {
	return html.EscapeString(s)
}

func (c *canvas) save(w io.Writer) error {
	return c.r.Save(w)
}
