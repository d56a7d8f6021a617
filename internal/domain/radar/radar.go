// Package radar rescales player metrics onto a shared unit scale and lays
// them out as closed polygons for polar plotting.
//
// Bounds are computed over exactly the players passed to Normalize, so the
// same player's values change when the comparison group changes.
package radar

import (
	"math"

	"github.com/okian/courtside/internal/domain/stats"
)

// FlatValue is the normalized value used for every player when a metric has
// no variance within the group.
const FlatValue = 0.5

// RadialMax is the upper bound of the radial axis when plotting polygons.
const RadialMax = 1.2

// Point is one vertex of a player's polygon.
type Point struct {
	Metric stats.Metric `json:"metric"`
	// Angle is measured in radians from the first axis.
	Angle float64 `json:"angle"`
	Value float64 `json:"value"`
	// Raw is the unscaled metric value.
	Raw float64 `json:"raw"`
}

// Polygon is the closed outline of one player: len(metrics)+1 points whose
// first and last entries are identical.
type Polygon struct {
	Label       string  `json:"label"`
	Team        string  `json:"team"`
	Highlighted bool    `json:"highlighted"`
	Points      []Point `json:"points"`
}

// Axis describes one spoke of the chart and the bounds used to scale it.
type Axis struct {
	Metric stats.Metric `json:"metric"`
	Angle  float64      `json:"angle"`
	Min    float64      `json:"min"`
	Max    float64      `json:"max"`
	// Flat reports a zero-variance metric mapped to FlatValue.
	Flat bool `json:"flat"`
}

// Chart is the plot-ready result of a normalization pass.
type Chart struct {
	Axes     []Axis    `json:"axes"`
	Polygons []Polygon `json:"polygons"`
}

// Angles returns n equally spaced angles in radians starting at 0.
func Angles(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	return out
}

// Normalize min-max scales each metric over players and returns one closed
// polygon per player, in input order. Players whose team equals highlight
// are flagged. The input is not modified.
func Normalize(players []stats.Player, metrics []stats.Metric, highlight string) (Chart, error) {
	const op = "radar.normalize"
	if len(players) == 0 {
		return Chart{}, wrap(op, ErrEmptyGroup)
	}
	if len(metrics) == 0 {
		return Chart{}, wrap(op, ErrNoMetrics)
	}

	angles := Angles(len(metrics))
	axes := make([]Axis, len(metrics))
	for i, m := range metrics {
		lo, hi, err := bounds(players, m)
		if err != nil {
			return Chart{}, wrap(op, err)
		}
		axes[i] = Axis{Metric: m, Angle: angles[i], Min: lo, Max: hi, Flat: hi == lo}
	}

	polygons := make([]Polygon, len(players))
	for i, p := range players {
		points := make([]Point, 0, len(metrics)+1)
		for _, ax := range axes {
			raw, _ := p.Value(ax.Metric)
			points = append(points, Point{
				Metric: ax.Metric,
				Angle:  ax.Angle,
				Value:  scale(raw, ax),
				Raw:    raw,
			})
		}
		points = append(points, points[0])
		polygons[i] = Polygon{
			Label:       p.Name,
			Team:        p.Team,
			Highlighted: p.Team == highlight,
			Points:      points,
		}
	}
	return Chart{Axes: axes, Polygons: polygons}, nil
}

func bounds(players []stats.Player, m stats.Metric) (lo, hi float64, err error) {
	lo, ok := players[0].Value(m)
	if !ok {
		return 0, 0, unknownMetric(m)
	}
	hi = lo
	for _, p := range players[1:] {
		v, _ := p.Value(m)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, nil
}

func scale(v float64, ax Axis) float64 {
	if ax.Flat {
		return FlatValue
	}
	return (v - ax.Min) / (ax.Max - ax.Min)
}
