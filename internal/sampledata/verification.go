package sampledata

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/stats"
	"github.com/okian/courtside/pkg/logger"
)

// Expected parses rows exactly as the dashboard loads them and returns the
// top n players by BPM across every team.
func Expected(rows []Row, comma rune, n int) ([]stats.Player, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows, comma); err != nil {
		return nil, err
	}
	tbl, err := repository.Parse(&buf, comma)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated table: %w", err)
	}
	return stats.Top(tbl.Players, stats.MetricBPM, n, stats.Largest)
}

// Verify compares the running dashboard's BPM leaders with the leaders
// computed locally from rows. The dashboard must be serving the same table.
func Verify(ctx context.Context, cfg *Config, rows []Row, st *Stats) error {
	logger.Get().Info(ctx, "verifying leaders", logger.String("baseURL", cfg.BaseURL), logger.Int("topN", cfg.TopN))

	want, err := Expected(rows, cfg.Delimiter, cfg.TopN)
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("team", "")
	q.Set("metric", string(stats.MetricBPM))
	q.Set("n", strconv.Itoa(cfg.TopN))
	var got LeadersResponse
	client := newHTTPClient(cfg.Timeout)
	if err := client.GetJSON(ctx, cfg.BaseURL+"/api/v1/leaders?"+q.Encode(), &got); err != nil {
		return fmt.Errorf("failed to fetch leaders: %w", err)
	}

	if len(got.Players) != len(want) {
		return fmt.Errorf("leader count mismatch: got %d, want %d", len(got.Players), len(want))
	}
	for i := range want {
		g, w := got.Players[i], want[i]
		if g.Name != w.Name || g.Team != w.Team || g.Row != w.Row {
			return fmt.Errorf("leader %d mismatch: got %s (%s, row %d), want %s (%s, row %d)",
				i+1, g.Name, g.Team, g.Row, w.Name, w.Team, w.Row)
		}
		if cfg.Verbose {
			logger.Get().Debug(ctx, "leader verified", logger.Int("rank", i+1), logger.String("player", w.Name))
		}
	}
	st.LeadersChecked = len(want)
	logger.Get().Info(ctx, "leaders verified", logger.Int("count", len(want)))
	return nil
}
