// Package palette assigns display colors to teams.
package palette

import (
	"fmt"
	"math"
)

// Palette lightness and saturation for generated team hues.
const (
	saturation = 0.65
	lightness  = 0.55
)

// Reserved colors.
var (
	Highlight = Color{R: 0xff, G: 0x00, B: 0x00}
	Neutral   = Color{R: 0x80, G: 0x80, B: 0x80}
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Hex renders the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette maps team names to colors. The zero value maps every team to
// Neutral.
type Palette struct {
	index     map[string]int
	n         int
	highlight string
}

// New builds a palette over teams (in the order given) with evenly spaced
// hues. highlight always maps to Highlight.
func New(teams []string, highlight string) Palette {
	p := Palette{index: make(map[string]int, len(teams)), highlight: highlight}
	for _, t := range teams {
		if _, ok := p.index[t]; ok {
			continue
		}
		p.index[t] = p.n
		p.n++
	}
	return p
}

// Color returns the color for team. Unknown teams are Neutral.
func (p Palette) Color(team string) Color {
	if p.highlight != "" && team == p.highlight {
		return Highlight
	}
	i, ok := p.index[team]
	if !ok || p.n == 0 {
		return Neutral
	}
	return fromHSL(360*float64(i)/float64(p.n), saturation, lightness)
}

// Radar returns the polygon color for a radar series.
func Radar(highlighted bool) Color {
	if highlighted {
		return Highlight
	}
	return Neutral
}

func fromHSL(h, s, l float64) Color {
	c := (1 - math.Abs(2*l-1)) * s
	hp := math.Mod(h, 360) / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return Color{R: channel(r + m), G: channel(g + m), B: channel(b + m)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
