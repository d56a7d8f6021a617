package sampledata

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/courtside/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0644
)

// Run generates the table, writes it and optionally verifies a running
// dashboard against it.
func Run(ctx context.Context, cfg *Config, stdout io.Writer) error {
	st := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting sample data generation",
		logger.String("output", cfg.Output),
		logger.Int("rows", cfg.Rows),
		logger.Float64("missingRate", cfg.MissingRate),
		logger.String("baseURL", cfg.BaseURL))

	rows, err := Generate(ctx, cfg, st)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := save(ctx, cfg, rows, stdout); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}

	if cfg.BaseURL != "" {
		if err := checkServiceHealth(ctx, cfg); err != nil {
			return fmt.Errorf("service health check failed: %w", err)
		}
		if err := Verify(ctx, cfg, rows, st); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	st.EndTime = time.Now()
	st.Duration = st.EndTime.Sub(st.StartTime)
	displayFinalStats(ctx, st)
	return nil
}

func save(ctx context.Context, cfg *Config, rows []Row, stdout io.Writer) error {
	if cfg.Output == "" || cfg.Output == "-" {
		return Write(stdout, rows, cfg.Delimiter)
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, rows, cfg.Delimiter); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	logger.Get().Info(ctx, "sample table written", logger.String("filename", cfg.Output))
	return nil
}

// checkServiceHealth verifies the dashboard is running.
func checkServiceHealth(ctx context.Context, cfg *Config) error {
	resp, err := newHTTPClient(cfg.Timeout).Get(ctx, cfg.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, st *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("rowsGenerated", st.RowsGenerated),
		logger.Int("rowsWithMissing", st.RowsWithMissing),
		logger.Int("teams", st.Teams),
		logger.Int("leadersChecked", st.LeadersChecked),
		logger.Duration("duration", st.Duration))
}
