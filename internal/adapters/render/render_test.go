package render

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/okian/courtside/internal/domain/palette"
	"github.com/okian/courtside/internal/domain/radar"
	"github.com/okian/courtside/internal/domain/stats"
	"github.com/okian/courtside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func samplePlayers() []stats.Player {
	return []stats.Player{
		{Row: 0, Name: "Ada Lane", Team: "UC Santa Barbara", BPM: 8.5, ORTG: 121, TS: 61, USG: 24, AST: 3.2},
		{Row: 1, Name: "Ben Cole", Team: "Hawaii", BPM: 4.1, ORTG: 108, TS: 55, USG: 19, AST: 1.1},
		{Row: 2, Name: "Cy Diaz", Team: "UC Santa Barbara", BPM: -1.2, ORTG: 96, TS: 49, USG: 17, AST: 4.4},
		{Row: 3, Name: "Dee Fox", Team: "Hawaii", BPM: 2.0, ORTG: 102, TS: 51, USG: 21, AST: 2.0},
	}
}

func TestNiceTicks(t *testing.T) {
	Convey("Given a data interval", t, func() {
		Convey("Ticks cover it on round steps", func() {
			ticks := niceTicks(3, 97, 6)
			So(ticks[0].Value, ShouldBeLessThanOrEqualTo, 3)
			So(ticks[len(ticks)-1].Value, ShouldBeGreaterThanOrEqualTo, 97)
			So(ticks[0].Label, ShouldEqual, "0")
			So(len(ticks), ShouldBeBetweenOrEqual, 4, 9)
		})

		Convey("A degenerate interval is widened", func() {
			ticks := niceTicks(5, 5, 6)
			So(ticks[0].Value, ShouldBeLessThan, 5)
			So(ticks[len(ticks)-1].Value, ShouldBeGreaterThan, 5)
		})

		Convey("Fractional steps keep their decimals", func() {
			ticks := niceTicks(0, 1, 6)
			So(ticks[1].Label, ShouldEqual, "0.2")
		})
	})
}

func TestLinear(t *testing.T) {
	Convey("A linear scale maps endpoints and midpoints", t, func() {
		l := linear{d0: 0, d1: 10, r0: 100, r1: 200}
		So(l.at(0), ShouldEqual, 100)
		So(l.at(5), ShouldEqual, 150)
		So(l.at(10), ShouldEqual, 200)

		flipped := linear{d0: 0, d1: 1, r0: 400, r1: 0}
		So(flipped.at(0.25), ShouldEqual, 300)

		flat := linear{d0: 1, d1: 1, r0: 0, r1: 10}
		So(flat.at(1), ShouldEqual, 5)
	})
}

func TestRenderer(t *testing.T) {
	ctx := context.Background()
	players := samplePlayers()
	pal := palette.New([]string{"UC Santa Barbara", "Hawaii"}, "UC Santa Barbara")

	Convey("Given a renderer", t, func() {
		r := New(WithSize(640, 400), WithRadarSize(600, 480))
		var buf bytes.Buffer

		Convey("The bar chart names every player", func() {
			err := r.TopPlayers(ctx, &buf, "Top Players", players, stats.MetricBPM, pal)
			So(err, ShouldBeNil)
			svg := buf.String()
			So(svg, ShouldContainSubstring, "<svg")
			So(svg, ShouldContainSubstring, "Ada Lane")
			So(svg, ShouldContainSubstring, "Cy Diaz")
			So(svg, ShouldNotContainSubstring, EmptyMessage)
		})

		Convey("The scatter plot renders a series per team", func() {
			err := r.Scatter(ctx, &buf, ChartORTGTS, "ORTG vs TS", players, stats.MetricORTG, stats.MetricTS, pal)
			So(err, ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "<svg")
			So(buf.String(), ShouldContainSubstring, "Hawaii")
		})

		Convey("A single point still renders", func() {
			err := r.Scatter(ctx, &buf, ChartUSGAST, "USG vs AST", players[:1], stats.MetricUSG, stats.MetricAST, pal)
			So(err, ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "<svg")
		})

		Convey("The radar chart labels axes and players", func() {
			rc, err := radar.Normalize(players, []stats.Metric{stats.MetricORTG, stats.MetricTS, stats.MetricBPM}, "UC Santa Barbara")
			So(err, ShouldBeNil)
			err = r.Radar(ctx, &buf, "Top Players Comparison", rc)
			So(err, ShouldBeNil)
			svg := buf.String()
			So(svg, ShouldContainSubstring, "ORTG")
			So(svg, ShouldContainSubstring, "Dee Fox")
			So(svg, ShouldContainSubstring, "1.2")
		})

		Convey("The box plot names every team", func() {
			boxes, err := stats.Distribution(players, stats.MetricTS)
			So(err, ShouldBeNil)
			err = r.Distribution(ctx, &buf, "TS by Team", boxes, stats.MetricTS, pal)
			So(err, ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "UC Santa Barbara")
			So(buf.String(), ShouldContainSubstring, "Hawaii")
		})

		Convey("Empty inputs draw the placeholder", func() {
			So(r.TopPlayers(ctx, &buf, "Top", nil, stats.MetricBPM, pal), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, EmptyMessage)

			buf.Reset()
			So(r.Scatter(ctx, &buf, ChartUSGAST, "USG", nil, stats.MetricUSG, stats.MetricAST, pal), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, EmptyMessage)

			buf.Reset()
			So(r.Radar(ctx, &buf, "Radar", radar.Chart{}), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, EmptyMessage)

			buf.Reset()
			So(r.Distribution(ctx, &buf, "Box", nil, stats.MetricTS, pal), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, EmptyMessage)
		})
	})
}

// wellFormed tokenizes the whole document and returns the first XML error.
func wellFormed(doc string) error {
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func TestRendererEscapesNames(t *testing.T) {
	ctx := context.Background()
	const odd = "A & B <script>alert(1)</script>"
	players := []stats.Player{
		{Row: 0, Name: odd, Team: "Texas A&M", BPM: 6.5, ORTG: 118, TS: 58, USG: 23, AST: 2.8},
		{Row: 1, Name: "O'Neil \"Ace\" Roy", Team: "Texas A&M", BPM: 3.0, ORTG: 104, TS: 53, USG: 20, AST: 1.9},
		{Row: 2, Name: "Cy Diaz", Team: "<b>Hawaii</b>", BPM: -0.4, ORTG: 99, TS: 50, USG: 18, AST: 3.1},
	}
	pal := palette.New([]string{"Texas A&M", "<b>Hawaii</b>"}, "Texas A&M")

	Convey("Given names with markup characters", t, func() {
		r := New(WithSize(640, 400), WithRadarSize(600, 480))
		var buf bytes.Buffer

		check := func() {
			svg := buf.String()
			So(wellFormed(svg), ShouldBeNil)
			So(svg, ShouldNotContainSubstring, "<script>")
			So(svg, ShouldNotContainSubstring, "<b>")
			So(svg, ShouldContainSubstring, "Texas A&amp;M")
		}

		Convey("The bar chart stays well-formed", func() {
			So(r.TopPlayers(ctx, &buf, "Top", players, stats.MetricBPM, pal), ShouldBeNil)
			check()
			So(buf.String(), ShouldContainSubstring, "A &amp; B &lt;script&gt;")
		})

		Convey("The scatter plot stays well-formed", func() {
			So(r.Scatter(ctx, &buf, ChartORTGTS, "ORTG vs TS", players, stats.MetricORTG, stats.MetricTS, pal), ShouldBeNil)
			check()
		})

		Convey("The radar chart stays well-formed", func() {
			rc, err := radar.Normalize(players, []stats.Metric{stats.MetricORTG, stats.MetricTS, stats.MetricBPM}, "Texas A&M")
			So(err, ShouldBeNil)
			So(r.Radar(ctx, &buf, "Radar", rc), ShouldBeNil)
			svg := buf.String()
			So(wellFormed(svg), ShouldBeNil)
			So(svg, ShouldNotContainSubstring, "<script>")
		})

		Convey("The box plot stays well-formed", func() {
			boxes, err := stats.Distribution(players, stats.MetricTS)
			So(err, ShouldBeNil)
			So(r.Distribution(ctx, &buf, "TS by Team", boxes, stats.MetricTS, pal), ShouldBeNil)
			check()
		})
	})
}

func TestCharts(t *testing.T) {
	Convey("Every chart slug is distinct", t, func() {
		seen := map[string]bool{}
		for _, c := range Charts {
			So(seen[c], ShouldBeFalse)
			So(strings.TrimSpace(c), ShouldNotBeEmpty)
			seen[c] = true
		}
		So(Charts, ShouldHaveLength, 5)
	})
}
