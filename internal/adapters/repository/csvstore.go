package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/courtside/internal/domain/stats"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// cacheKey identifies one version of the data file on disk.
type cacheKey struct {
	path    string
	modTime time.Time
	size    int64
}

// CSVStore reads a delimited player table from disk and keeps the last
// successful parse until the file's modification time or size changes.
type CSVStore struct {
	path  string
	comma rune
	log   logger.Logger
	now   func() time.Time

	mu    sync.Mutex
	key   cacheKey
	table *stats.Table
}

// NewCSVStore returns a store for the table at path. Files ending in .tsv
// are read tab-separated, everything else comma-separated.
func NewCSVStore(path string, opts ...Option) *CSVStore {
	s := &CSVStore{
		path:  path,
		comma: delimiterFor(path),
		log:   logger.Get().Named("repository"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store reads.
func (s *CSVStore) Path() string { return s.path }

// Current implements Source. A failed reload keeps the previous table
// cached but still returns the error.
func (s *CSVStore) Current(ctx context.Context) (*stats.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path)
	if err != nil {
		metrics.RecordDatasetLoad(false, 0)
		metrics.RecordErrorByComponent("repository", "stat")
		return nil, fmt.Errorf("repository.current: %w: %s: %w", ErrOpen, s.path, err)
	}
	key := cacheKey{path: s.path, modTime: info.ModTime(), size: info.Size()}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table != nil && s.key == key {
		metrics.RecordDatasetCacheHit()
		return s.table, nil
	}

	start := time.Now()
	t, err := s.load(key)
	ms := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordDatasetLoad(false, ms)
		metrics.RecordErrorByComponent("repository", "load")
		s.log.Error(ctx, "failed to load player table",
			logger.String("path", s.path),
			logger.Error(err))
		return nil, err
	}
	metrics.RecordDatasetLoad(true, ms)
	metrics.UpdateDataset(len(t.Players), t.Dropped, len(t.Teams), t.LoadedAt)

	s.key, s.table = key, t
	s.log.Info(ctx, "player table loaded",
		logger.String("path", s.path),
		logger.Int("players", len(t.Players)),
		logger.Int("dropped", t.Dropped),
		logger.Int("teams", len(t.Teams)))
	return t, nil
}

func (s *CSVStore) load(key cacheKey) (*stats.Table, error) {
	f, err := os.Open(key.path)
	if err != nil {
		return nil, fmt.Errorf("repository.load: %w: %s: %w", ErrOpen, key.path, err)
	}
	defer f.Close()

	t, err := Parse(f, s.comma)
	if err != nil {
		return nil, fmt.Errorf("repository.load: %s: %w", key.path, err)
	}
	t.Source = key.path
	t.ModTime = key.modTime
	t.LoadedAt = s.now()
	return t, nil
}

// Parse reads a player table from r. The header must name PLAYER, TEAM and
// every metric column; names are matched case-insensitively and extra columns
// are ignored. Rows with a missing or unparsable required value are skipped
// and counted in Table.Dropped.
func Parse(r io.Reader, comma rune) (*stats.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	t := &stats.Table{}
	seenTeam := make(map[string]struct{})
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, row+1, err)
		}

		team := field(rec, cols.team)
		if !missing(team) {
			if _, ok := seenTeam[team]; !ok {
				seenTeam[team] = struct{}{}
				t.Teams = append(t.Teams, team)
			}
		}

		p, ok := parseRow(rec, cols, row)
		if !ok {
			t.Dropped++
			continue
		}
		t.Players = append(t.Players, p)
	}
	return t, nil
}

type columns struct {
	player  int
	team    int
	metrics map[stats.Metric]int
}

func resolveColumns(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var absent []string
	lookup := func(name string) int {
		i, ok := idx[name]
		if !ok {
			absent = append(absent, name)
			return -1
		}
		return i
	}

	cols := columns{metrics: make(map[stats.Metric]int, len(stats.Metrics))}
	cols.player = lookup(stats.ColumnPlayer)
	cols.team = lookup(stats.ColumnTeam)
	for _, m := range stats.Metrics {
		cols.metrics[m] = lookup(string(m))
	}
	if len(absent) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(absent, ", "))
	}
	return cols, nil
}

func parseRow(rec []string, cols columns, row int) (stats.Player, bool) {
	p := stats.Player{
		Row:  row,
		Name: field(rec, cols.player),
		Team: field(rec, cols.team),
	}
	if missing(p.Name) || missing(p.Team) {
		return stats.Player{}, false
	}
	for m, i := range cols.metrics {
		v, ok := parseValue(field(rec, i))
		if !ok {
			return stats.Player{}, false
		}
		p.Set(m, v)
	}
	return p, true
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func missing(s string) bool {
	switch strings.ToUpper(s) {
	case "", "NA", "N/A", "NAN", "NULL", "-":
		return true
	}
	return false
}

// parseValue accepts plain numbers and percentages such as "54.2%".
func parseValue(s string) (float64, bool) {
	if missing(s) {
		return 0, false
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func delimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}
