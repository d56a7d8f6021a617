package view

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/domain/stats"
)

func pageData() PageData {
	return PageData{
		Title: "Big West Basketball Analytics Dashboard",
		Teams: []TeamOption{
			{Name: "UC Santa Barbara", Color: "#ff0000", Selected: true, Highlight: true},
			{Name: "Hawai'i <Rainbow>", Color: "#3aa0c8"},
		},
		Players:    5,
		MinPlayers: 2,
		MaxPlayers: 10,
		TopCharts: []ChartImage{
			{Title: "Top Players by Box Plus/Minus (BPM)", Src: "/charts/top-bpm.svg?players=5&team=UC+Santa+Barbara"},
		},
		Radar: ChartImage{Title: "Top Players Comparison", Src: "/charts/radar.svg?players=5"},
		Columns: []Column{
			{Label: "PLAYER", Href: "?sort=PLAYER&dir=asc"},
			{Label: "BPM", Href: "?sort=BPM&dir=asc", Active: true},
		},
		Metrics: []stats.Metric{stats.MetricBPM},
		Rows:    []stats.Player{{Name: "Ada Lane", Team: "UC Santa Barbara", BPM: 6.5}},
		Dropped: 2,
	}
}

func TestPage(t *testing.T) {
	convey.Convey("Given dashboard page data", t, func() {
		d := pageData()
		var buf bytes.Buffer

		convey.Convey("When rendering the page", func() {
			err := Page(d).Render(context.Background(), &buf)
			convey.So(err, convey.ShouldBeNil)
			html := buf.String()

			convey.Convey("Then it contains the sidebar filter", func() {
				convey.So(html, convey.ShouldContainSubstring, `<input type="hidden" name="team" value="">`)
				convey.So(html, convey.ShouldContainSubstring, `value="UC Santa Barbara" checked`)
				convey.So(html, convey.ShouldContainSubstring, `type="range" name="players" min="2" max="10" value="5"`)
			})

			convey.Convey("And team names are escaped", func() {
				convey.So(html, convey.ShouldNotContainSubstring, "<Rainbow>")
				convey.So(html, convey.ShouldContainSubstring, "&lt;Rainbow&gt;")
			})

			convey.Convey("And chart sources are escaped attributes", func() {
				convey.So(html, convey.ShouldContainSubstring, `src="/charts/top-bpm.svg?players=5&amp;team=UC+Santa+Barbara"`)
				convey.So(html, convey.ShouldContainSubstring, "Top Players Comparison")
			})

			convey.Convey("And the table shows rows and the active sort", func() {
				convey.So(html, convey.ShouldContainSubstring, "<td>Ada Lane</td>")
				convey.So(html, convey.ShouldContainSubstring, `<td class="num">6.5</td>`)
				convey.So(html, convey.ShouldContainSubstring, `class="active">BPM ▼</a>`)
				convey.So(html, convey.ShouldContainSubstring, "2 rows skipped")
			})
		})

		convey.Convey("When attribute values carry markup or unsafe links", func() {
			d.Teams[1].Name = `x" onmouseover="alert(1)`
			d.Columns[0].Href = "javascript:alert(1)"
			d.Radar.Src = "/charts/radar.svg?team=A%26M"
			err := Page(d).Render(context.Background(), &buf)
			convey.So(err, convey.ShouldBeNil)
			html := buf.String()

			convey.Convey("Then quotes cannot break out of the value", func() {
				convey.So(html, convey.ShouldNotContainSubstring, `onmouseover="alert(1)"`)
				convey.So(html, convey.ShouldContainSubstring, `value="x&#34; onmouseover=&#34;alert(1)"`)
			})

			convey.Convey("And script links are neutralized", func() {
				convey.So(html, convey.ShouldNotContainSubstring, "javascript:")
				convey.So(html, convey.ShouldContainSubstring, `src="/charts/radar.svg?team=A%26M"`)
			})
		})

		convey.Convey("When the selection is empty", func() {
			d.Rows = nil
			err := Page(d).Render(context.Background(), &buf)
			convey.So(err, convey.ShouldBeNil)
			convey.So(buf.String(), convey.ShouldContainSubstring, "No players match the current selection")
			convey.So(strings.Contains(buf.String(), "<table>"), convey.ShouldBeFalse)
		})
	})
}
