package sampledata

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/okian/courtside/internal/domain/stats"
	"github.com/okian/courtside/pkg/logger"
)

// Performance tiers. Each row draws a tier and places every metric inside
// the tier's band of the metric's range, so strong players are strong
// across the board with some noise.
const (
	tierAverage = iota
	tierHigh
	tierLow
	tierElite
	tierBench
	tierMidHigh
	tierMidLow
	tierWide
	tierCount
)

var tierBands = [tierCount][2]float64{
	tierAverage: {0.35, 0.65},
	tierHigh:    {0.65, 0.85},
	tierLow:     {0.05, 0.35},
	tierElite:   {0.85, 1.00},
	tierBench:   {0.00, 0.15},
	tierMidHigh: {0.55, 0.75},
	tierMidLow:  {0.25, 0.45},
	tierWide:    {0.00, 1.00},
}

const noise = 0.12

// metricRange is the plausible career range of a metric. Inverse metrics
// are better when lower.
type metricRange struct {
	lo, hi  float64
	inverse bool
}

var ranges = map[stats.Metric]metricRange{
	stats.MetricORTG: {lo: 78, hi: 128},
	stats.MetricEFG:  {lo: 38, hi: 63},
	stats.MetricTS:   {lo: 42, hi: 66},
	stats.Metric3P:   {lo: 18, hi: 44},
	stats.Metric2P:   {lo: 38, hi: 62},
	stats.MetricAST:  {lo: 4, hi: 34},
	stats.MetricTO:   {lo: 9, hi: 28, inverse: true},
	stats.MetricSTL:  {lo: 0.4, hi: 4.2},
	stats.MetricBLK:  {lo: 0.1, hi: 8.5},
	stats.MetricUSG:  {lo: 11, hi: 32},
	stats.MetricBPM:  {lo: -7, hi: 10},
}

var firstNames = []string{
	"Ajay", "Ben", "Cole", "Dae", "Eli", "Femi", "Gabe", "Hugo", "Isaac", "Jalen",
	"Kai", "Luca", "Malik", "Nico", "Omar", "Pele", "Quinn", "Rio", "Sam", "Tavi",
	"Uriel", "Vince", "Wes", "Xavi", "Yuto", "Zane",
}

var lastNames = []string{
	"Akana", "Barlow", "Castillo", "Dunn", "Ebert", "Fonoti", "Grady", "Holm",
	"Ikaika", "Jensen", "Kealoha", "Lutz", "Moreno", "Nakoa", "Ortiz", "Pruitt",
	"Quist", "Ramos", "Sato", "Tuell", "Umeh", "Vance", "Whitt", "Young",
}

// Generate builds cfg.Rows deterministic rows for cfg.Seed. Teams are
// assigned round-robin so every team appears once there are enough rows.
func Generate(ctx context.Context, cfg *Config, st *Stats) ([]Row, error) {
	if cfg.Rows <= 0 {
		return nil, fmt.Errorf("rows must be positive, got %d", cfg.Rows)
	}
	logger.Get().Info(ctx, "generating sample table", logger.Int("rows", cfg.Rows), logger.Any("seed", cfg.Seed))

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	used := make(map[string]int, cfg.Rows)
	rows := make([]Row, 0, cfg.Rows)
	teams := make(map[string]bool)

	for i := 0; i < cfg.Rows; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		team := Teams[i%len(Teams)]
		teams[team] = true
		row := Row{
			Name:   uniqueName(rng, used),
			Team:   team,
			Values: generateValues(rng),
		}
		if cfg.MissingRate > 0 && rng.Float64() < cfg.MissingRate {
			row.Missing = string(stats.Metrics[rng.IntN(len(stats.Metrics))])
			st.RowsWithMissing++
		}
		rows = append(rows, row)
	}

	st.RowsGenerated = len(rows)
	st.Teams = len(teams)
	logger.Get().Info(ctx, "generated sample table",
		logger.Int("rows", len(rows)),
		logger.Int("withMissing", st.RowsWithMissing),
		logger.Int("teams", st.Teams))
	return rows, nil
}

func uniqueName(rng *rand.Rand, used map[string]int) string {
	name := firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))]
	used[name]++
	if n := used[name]; n > 1 {
		name = fmt.Sprintf("%s %s", name, roman(n))
	}
	return name
}

func roman(n int) string {
	numerals := []string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}
	if n < len(numerals) {
		return numerals[n]
	}
	return fmt.Sprintf("%d", n)
}

func generateValues(rng *rand.Rand) map[string]float64 {
	band := tierBands[rng.IntN(tierCount)]
	level := band[0] + rng.Float64()*(band[1]-band[0])

	out := make(map[string]float64, len(ranges))
	for _, m := range stats.Metrics {
		r := ranges[m]
		t := clamp01(level + (rng.Float64()*2-1)*noise)
		if r.inverse {
			t = 1 - t
		}
		out[string(m)] = round1(r.lo + t*(r.hi-r.lo))
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
