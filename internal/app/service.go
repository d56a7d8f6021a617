// Package service composes the table source and the domain stages into the
// views the HTTP layer renders: leaderboards, scatter sets, radar polygons,
// distributions and the sortable table.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/palette"
	"github.com/okian/courtside/internal/domain/radar"
	"github.com/okian/courtside/internal/domain/stats"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// Metrics each chart is drawn from.
const (
	LeaderboardMetric  = stats.MetricBPM
	ExtremesMetric     = stats.MetricORTG
	ExtremesPairMetric = stats.MetricTS
	DistributionMetric = stats.MetricTS
	UsageMetric        = stats.MetricUSG
	UsagePairMetric    = stats.MetricAST
	RadarRankMetric    = stats.MetricBPM
	DefaultSortColumn  = string(stats.MetricBPM)
)

// Selection is the per-request filter state. Teams == nil (or empty) means
// no team filter; Players is the requested radar comparison size and is
// clamped by the service.
type Selection struct {
	Teams   []string
	Players int
}

// TeamsView lists the sidebar options.
type TeamsView struct {
	Teams     []string          `json:"teams"`
	Highlight string            `json:"highlight"`
	Default   []string          `json:"default"`
	Colors    map[string]string `json:"colors"`

	// Dropped counts rows skipped for missing values.
	Dropped int `json:"dropped_rows"`
}

// Service implements the dashboard views over a table source.
type Service struct {
	mu sync.RWMutex

	source repository.Source

	// Configuration
	highlight       string
	radarMetrics    []stats.Metric
	leaderboardSize int
	extremesSize    int
	defaultPlayers  int
	minPlayers      int
	maxPlayers      int

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the player table source.
func WithSource(src repository.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHighlightTeam sets the team drawn in red and selected by default.
func WithHighlightTeam(team string) Option {
	return func(s *Service) {
		s.highlight = team
	}
}

// WithRadarMetrics sets the radar axes in angular order.
func WithRadarMetrics(ms []stats.Metric) Option {
	return func(s *Service) {
		if len(ms) > 0 {
			s.radarMetrics = append([]stats.Metric(nil), ms...)
		}
	}
}

// WithLeaderboardSize sets the number of players in the top BPM chart.
func WithLeaderboardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// WithExtremesSize sets how many top and bottom ORTG players are scattered.
func WithExtremesSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.extremesSize = n
		}
	}
}

// WithRadarPlayers sets the default radar comparison size and its bounds.
func WithRadarPlayers(def, lo, hi int) Option {
	return func(s *Service) {
		if lo > 0 && lo <= def && def <= hi {
			s.defaultPlayers, s.minPlayers, s.maxPlayers = def, lo, hi
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		highlight: "UC Santa Barbara",
		radarMetrics: []stats.Metric{
			stats.MetricORTG, stats.MetricTS, stats.MetricUSG, stats.MetricAST, stats.MetricBPM,
		},
		leaderboardSize: 10,
		extremesSize:    20,
		defaultPlayers:  5,
		minPlayers:      2,
		maxPlayers:      10,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the table once so that a missing or malformed file surfaces
// before the server accepts requests.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.source == nil {
		return fmt.Errorf("service.start: %w", ErrNoSource)
	}

	s.logger.Info(ctx, "starting dashboard service...")

	t, err := s.source.Current(ctx)
	if err != nil {
		return fmt.Errorf("service.start: %w", err)
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("players", t.Len()),
		logger.Int("teams", len(t.Teams)),
		logger.Int("dropped", t.Dropped),
		logger.String("highlight", s.highlight),
	)
	return nil
}

// Stop marks the service as stopped. Subsequent calls fail with ErrNotStarted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// HighlightTeam returns the configured highlighted team.
func (s *Service) HighlightTeam() string { return s.highlight }

// RadarMetrics returns a copy of the radar axes.
func (s *Service) RadarMetrics() []stats.Metric {
	return append([]stats.Metric(nil), s.radarMetrics...)
}

// PlayerBounds returns the default, minimum and maximum radar sizes.
func (s *Service) PlayerBounds() (def, lo, hi int) {
	return s.defaultPlayers, s.minPlayers, s.maxPlayers
}

// ClampPlayers maps a requested radar size into bounds. Zero or negative
// means "not requested" and yields the default.
func (s *Service) ClampPlayers(n int) int {
	switch {
	case n <= 0:
		return s.defaultPlayers
	case n < s.minPlayers:
		return s.minPlayers
	case n > s.maxPlayers:
		return s.maxPlayers
	}
	return n
}

// DefaultSelection is the selection used when a request names no teams.
func (s *Service) DefaultSelection() Selection {
	var teams []string
	if s.highlight != "" {
		teams = []string{s.highlight}
	}
	return Selection{Teams: teams, Players: s.defaultPlayers}
}

func (s *Service) table(ctx context.Context) (*stats.Table, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	return s.source.Current(ctx)
}

func (s *Service) filtered(ctx context.Context, sel Selection, view string) ([]stats.Player, error) {
	t, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	out := stats.FilterTeams(t.Players, sel.Teams)
	if len(out) == 0 {
		metrics.RecordEmptySelection(view)
	}
	return out, nil
}

// Teams returns the sidebar options and their colors.
func (s *Service) Teams(ctx context.Context) (TeamsView, error) {
	t, err := s.table(ctx)
	if err != nil {
		return TeamsView{}, fmt.Errorf("service.teams: %w", err)
	}
	p := palette.New(t.Teams, s.highlight)
	colors := make(map[string]string, len(t.Teams))
	for _, team := range t.Teams {
		colors[team] = p.Color(team).Hex()
	}
	return TeamsView{
		Teams:     append([]string(nil), t.Teams...),
		Highlight: s.highlight,
		Default:   s.DefaultSelection().Teams,
		Colors:    colors,
		Dropped:   t.Dropped,
	}, nil
}

// Palette returns the team palette for the current table.
func (s *Service) Palette(ctx context.Context) (palette.Palette, error) {
	t, err := s.table(ctx)
	if err != nil {
		return palette.Palette{}, fmt.Errorf("service.palette: %w", err)
	}
	return palette.New(t.Teams, s.highlight), nil
}

// Filtered returns every player in the selection (USG vs AST scatter).
func (s *Service) Filtered(ctx context.Context, sel Selection) ([]stats.Player, error) {
	out, err := s.filtered(ctx, sel, "filtered")
	if err != nil {
		return nil, fmt.Errorf("service.filtered: %w", err)
	}
	return out, nil
}

// TopPlayers returns the leaderboard by BPM.
func (s *Service) TopPlayers(ctx context.Context, sel Selection) ([]stats.Player, error) {
	return s.Leaders(ctx, sel, LeaderboardMetric, s.leaderboardSize, stats.Largest)
}

// Extremes returns the top and bottom ORTG players (ORTG vs TS scatter).
func (s *Service) Extremes(ctx context.Context, sel Selection) ([]stats.Player, error) {
	const op = "service.extremes"
	players, err := s.filtered(ctx, sel, "extremes")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := stats.Extremes(players, ExtremesMetric, s.extremesSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Leaders returns the n best (or worst) players by metric.
func (s *Service) Leaders(ctx context.Context, sel Selection, metric stats.Metric, n int, dir stats.Direction) ([]stats.Player, error) {
	const op = "service.leaders"
	players, err := s.filtered(ctx, sel, "leaders")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := stats.Top(players, metric, n, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Radar normalizes the top players by BPM on the radar metrics. The group is
// the selection's radar size, clamped. An empty selection yields an empty
// chart.
func (s *Service) Radar(ctx context.Context, sel Selection) (radar.Chart, error) {
	const op = "service.radar"
	players, err := s.filtered(ctx, sel, "radar")
	if err != nil {
		return radar.Chart{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(players) == 0 {
		return radar.Chart{Axes: s.emptyAxes()}, nil
	}
	group, err := stats.Top(players, RadarRankMetric, s.ClampPlayers(sel.Players), stats.Largest)
	if err != nil {
		return radar.Chart{}, fmt.Errorf("%s: %w", op, err)
	}
	chart, err := radar.Normalize(group, s.radarMetrics, s.highlight)
	if err != nil {
		return radar.Chart{}, fmt.Errorf("%s: %w", op, err)
	}

	var flat []string
	for _, ax := range chart.Axes {
		if ax.Flat {
			flat = append(flat, string(ax.Metric))
		}
	}
	metrics.RecordRadarNormalization(flat)
	if len(flat) > 0 {
		s.logger.Debug(ctx, "radar metrics without variance",
			logger.Strings("metrics", flat),
			logger.Int("players", len(group)))
	}
	return chart, nil
}

func (s *Service) emptyAxes() []radar.Axis {
	angles := radar.Angles(len(s.radarMetrics))
	axes := make([]radar.Axis, len(s.radarMetrics))
	for i, m := range s.radarMetrics {
		axes[i] = radar.Axis{Metric: m, Angle: angles[i]}
	}
	return axes
}

// Distribution summarises TS per team for the box plot.
func (s *Service) Distribution(ctx context.Context, sel Selection) ([]stats.TeamBox, error) {
	return s.DistributionOf(ctx, sel, DistributionMetric)
}

// DistributionOf summarises any metric per team.
func (s *Service) DistributionOf(ctx context.Context, sel Selection, metric stats.Metric) ([]stats.TeamBox, error) {
	const op = "service.distribution"
	players, err := s.filtered(ctx, sel, "distribution")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := stats.Distribution(players, metric)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Table returns the selection sorted by column. An empty column sorts by
// BPM.
func (s *Service) Table(ctx context.Context, sel Selection, column string, dir stats.Direction) ([]stats.Player, error) {
	const op = "service.table"
	if column == "" {
		column = DefaultSortColumn
	}
	players, err := s.filtered(ctx, sel, "table")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := stats.Sort(players, column, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	started, startedAt := s.started, s.startedAt
	s.mu.RUnlock()

	out := map[string]interface{}{
		"started":         started,
		"highlightTeam":   s.highlight,
		"radarMetrics":    s.radarMetrics,
		"leaderboardSize": s.leaderboardSize,
		"extremesSize":    s.extremesSize,
		"radarPlayers": map[string]int{
			"default": s.defaultPlayers,
			"min":     s.minPlayers,
			"max":     s.maxPlayers,
		},
	}
	if !started {
		return out
	}
	out["uptimeSeconds"] = int64(time.Since(startedAt).Seconds())

	t, err := s.source.Current(ctx)
	if err != nil {
		out["datasetError"] = err.Error()
		return out
	}
	out["players"] = t.Len()
	out["teams"] = len(t.Teams)
	out["dropped"] = t.Dropped
	out["source"] = t.Source
	out["modifiedAt"] = t.ModTime
	out["loadedAt"] = t.LoadedAt
	return out
}
