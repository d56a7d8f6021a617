// Package stats contains the player table model and the pure stages that
// derive chart data from it: filtering, ranking, sorting and distributions.
package stats

import (
	"strings"
	"time"
)

// Metric names a numeric performance column of the player table.
type Metric string

// Metric columns, named as in the source table header.
const (
	MetricORTG Metric = "ORTG"
	MetricEFG  Metric = "EFG"
	MetricTS   Metric = "TS"
	Metric3P   Metric = "3P"
	Metric2P   Metric = "2P"
	MetricAST  Metric = "AST"
	MetricTO   Metric = "TO"
	MetricSTL  Metric = "STL"
	MetricBLK  Metric = "BLK"
	MetricUSG  Metric = "USG"
	MetricBPM  Metric = "BPM"
)

// Identifying columns of the source table.
const (
	ColumnPlayer = "PLAYER"
	ColumnTeam   = "TEAM"
)

// Metrics lists every metric column in display order.
var Metrics = []Metric{
	MetricORTG, MetricEFG, MetricTS, Metric3P, Metric2P,
	MetricAST, MetricTO, MetricSTL, MetricBLK, MetricUSG, MetricBPM,
}

var metricLabels = map[Metric]string{
	MetricORTG: "Offensive Rating (ORTG)",
	MetricEFG:  "Effective FG% (EFG)",
	MetricTS:   "True Shooting % (TS)",
	Metric3P:   "Three-Point Rate (3P)",
	Metric2P:   "Two-Point Rate (2P)",
	MetricAST:  "Assists (AST)",
	MetricTO:   "Turnover Rate (TO)",
	MetricSTL:  "Steal Rate (STL)",
	MetricBLK:  "Block Rate (BLK)",
	MetricUSG:  "Usage Rate (USG)",
	MetricBPM:  "Box Plus/Minus (BPM)",
}

// ParseMetric resolves a metric name case-insensitively.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := metricLabels[m]; !ok {
		return "", newKind("stats.parse_metric", ErrUnknownMetric, s)
	}
	return m, nil
}

// Label returns the axis label for the metric.
func (m Metric) Label() string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

// Player is one row of the table. Values are immutable once loaded.
type Player struct {
	// Row is the zero-based position of the record in the source file.
	Row  int    `json:"row"`
	Name string `json:"player"`
	Team string `json:"team"`

	ORTG   float64 `json:"ortg"`
	EFG    float64 `json:"efg"`
	TS     float64 `json:"ts"`
	ThreeP float64 `json:"three_p"`
	TwoP   float64 `json:"two_p"`
	AST    float64 `json:"ast"`
	TO     float64 `json:"to"`
	STL    float64 `json:"stl"`
	BLK    float64 `json:"blk"`
	USG    float64 `json:"usg"`
	BPM    float64 `json:"bpm"`
}

// Value returns the player's value for m. ok is false for unknown metrics.
func (p Player) Value(m Metric) (float64, bool) {
	switch m {
	case MetricORTG:
		return p.ORTG, true
	case MetricEFG:
		return p.EFG, true
	case MetricTS:
		return p.TS, true
	case Metric3P:
		return p.ThreeP, true
	case Metric2P:
		return p.TwoP, true
	case MetricAST:
		return p.AST, true
	case MetricTO:
		return p.TO, true
	case MetricSTL:
		return p.STL, true
	case MetricBLK:
		return p.BLK, true
	case MetricUSG:
		return p.USG, true
	case MetricBPM:
		return p.BPM, true
	}
	return 0, false
}

// Set assigns v to metric m. Only loaders call this while building a record.
func (p *Player) Set(m Metric, v float64) bool {
	switch m {
	case MetricORTG:
		p.ORTG = v
	case MetricEFG:
		p.EFG = v
	case MetricTS:
		p.TS = v
	case Metric3P:
		p.ThreeP = v
	case Metric2P:
		p.TwoP = v
	case MetricAST:
		p.AST = v
	case MetricTO:
		p.TO = v
	case MetricSTL:
		p.STL = v
	case MetricBLK:
		p.BLK = v
	case MetricUSG:
		p.USG = v
	case MetricBPM:
		p.BPM = v
	default:
		return false
	}
	return true
}

// Table is an immutable snapshot of the loaded player statistics.
type Table struct {
	Players []Player
	// Teams holds distinct team names in first-appearance order, including
	// teams whose rows were all dropped for missing metrics.
	Teams    []string
	Source   string
	ModTime  time.Time
	LoadedAt time.Time
	// Dropped counts rows skipped because a required value was missing.
	Dropped int
}

// Len returns the number of analysable players.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Players)
}
