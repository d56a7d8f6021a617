package stats

import (
	"math"
	"sort"
)

// whiskerIQR is the Tukey fence multiplier used for box plot whiskers.
const whiskerIQR = 1.5

// TeamBox is the five-number summary of one team's values for a metric.
type TeamBox struct {
	Team        string    `json:"team"`
	Count       int       `json:"count"`
	Min         float64   `json:"min"`
	Q1          float64   `json:"q1"`
	Median      float64   `json:"median"`
	Q3          float64   `json:"q3"`
	Max         float64   `json:"max"`
	WhiskerLow  float64   `json:"whisker_low"`
	WhiskerHigh float64   `json:"whisker_high"`
	Outliers    []float64 `json:"outliers"`
}

// Distribution summarises metric per team, in first-appearance order.
func Distribution(players []Player, metric Metric) ([]TeamBox, error) {
	const op = "stats.distribution"
	if _, ok := (Player{}).Value(metric); !ok {
		return nil, newKind(op, ErrUnknownMetric, string(metric))
	}
	byTeam := make(map[string][]float64)
	for _, p := range players {
		v, _ := p.Value(metric)
		byTeam[p.Team] = append(byTeam[p.Team], v)
	}
	teams := DistinctTeams(players)
	boxes := make([]TeamBox, 0, len(teams))
	for _, team := range teams {
		boxes = append(boxes, summarize(team, byTeam[team]))
	}
	return boxes, nil
}

func summarize(team string, vals []float64) TeamBox {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	b := TeamBox{
		Team:     team,
		Count:    len(sorted),
		Min:      sorted[0],
		Max:      sorted[len(sorted)-1],
		Q1:       quantile(sorted, 0.25),
		Median:   quantile(sorted, 0.5),
		Q3:       quantile(sorted, 0.75),
		Outliers: []float64{},
	}
	iqr := b.Q3 - b.Q1
	lowFence := b.Q1 - whiskerIQR*iqr
	highFence := b.Q3 + whiskerIQR*iqr

	b.WhiskerLow, b.WhiskerHigh = b.Q1, b.Q3
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.WhiskerLow = math.Min(b.WhiskerLow, v)
		b.WhiskerHigh = math.Max(b.WhiskerHigh, v)
	}
	return b
}

// quantile interpolates linearly between closest ranks of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
