package render

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceTicks returns roughly n evenly spaced ticks on a 1/2/2.5/5 step that
// cover [lo, hi]. The first and last ticks bound the axis range.
func niceTicks(lo, hi float64, n int) []chart.Tick {
	if n < 2 {
		n = 2
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		lo, hi = 0, 1
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		pad := math.Abs(lo) * 0.1
		if pad == 0 {
			pad = 1
		}
		lo, hi = lo-pad, hi+pad
	}

	span := hi - lo
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	step := mag
	best := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		s := c * mag
		score := math.Abs(math.Ceil(span/s) - float64(n-1))
		if score < best {
			best, step = score, s
		}
	}

	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	count := int(math.Round((end - start) / step))
	decimals := stepDecimals(step)

	ticks := make([]chart.Tick, 0, count+1)
	for i := 0; i <= count; i++ {
		v := start + float64(i)*step
		ticks = append(ticks, chart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', decimals, 64)})
	}
	return ticks
}

func stepDecimals(step float64) int {
	d := 0
	for s := step; d < 6 && math.Abs(s-math.Round(s)) > 1e-9; s *= 10 {
		d++
	}
	return d
}

// tickRange is the axis range spanned by ticks.
func tickRange(ticks []chart.Tick) *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: ticks[0].Value, Max: ticks[len(ticks)-1].Value}
}

// linear maps a data interval onto a pixel interval.
type linear struct {
	d0, d1 float64
	r0, r1 int
}

func (l linear) at(v float64) int {
	if l.d1 == l.d0 {
		return (l.r0 + l.r1) / 2
	}
	return l.r0 + int(math.Round((v-l.d0)/(l.d1-l.d0)*float64(l.r1-l.r0)))
}
