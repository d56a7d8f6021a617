package stats

import (
	"sort"
	"strings"
)

// Direction selects which end of a ranking to keep.
type Direction int

const (
	// Largest keeps the highest values first.
	Largest Direction = iota
	// Smallest keeps the lowest values first.
	Smallest
)

// ParseDirection maps "asc"/"smallest"/"bottom" to Smallest and anything
// else to Largest.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "smallest", "bottom":
		return Smallest
	default:
		return Largest
	}
}

// Top returns the n players with the highest (Largest) or lowest (Smallest)
// value of metric. Ties keep input order. n <= 0 yields an empty slice and
// n beyond the input length yields every player.
func Top(players []Player, metric Metric, n int, dir Direction) ([]Player, error) {
	const op = "stats.top"
	if _, ok := (Player{}).Value(metric); !ok {
		return nil, newKind(op, ErrUnknownMetric, string(metric))
	}
	if n <= 0 {
		return []Player{}, nil
	}
	ranked := make([]Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, _ := ranked[i].Value(metric)
		b, _ := ranked[j].Value(metric)
		if dir == Smallest {
			return a < b
		}
		return a > b
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n], nil
}

// Extremes returns the union of the top n and bottom n players by metric.
// Top players come first; a player present in both ends appears once.
func Extremes(players []Player, metric Metric, n int) ([]Player, error) {
	top, err := Top(players, metric, n, Largest)
	if err != nil {
		return nil, err
	}
	bottom, err := Top(players, metric, n, Smallest)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(top))
	out := make([]Player, 0, len(top)+len(bottom))
	for _, p := range top {
		seen[p.Row] = struct{}{}
		out = append(out, p)
	}
	for _, p := range bottom {
		if _, dup := seen[p.Row]; dup {
			continue
		}
		seen[p.Row] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// Sort orders a copy of players by column, which is PLAYER, TEAM or a metric
// name. Equal keys keep input order.
func Sort(players []Player, column string, dir Direction) ([]Player, error) {
	const op = "stats.sort"
	sorted := make([]Player, len(players))
	copy(sorted, players)

	var less func(a, b Player) bool
	switch strings.ToUpper(strings.TrimSpace(column)) {
	case ColumnPlayer:
		less = func(a, b Player) bool { return a.Name < b.Name }
	case ColumnTeam:
		less = func(a, b Player) bool { return a.Team < b.Team }
	default:
		m, err := ParseMetric(column)
		if err != nil {
			return nil, newKind(op, ErrUnknownColumn, column)
		}
		less = func(a, b Player) bool {
			x, _ := a.Value(m)
			y, _ := b.Value(m)
			return x < y
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if dir == Smallest {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted, nil
}
