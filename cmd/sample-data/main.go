package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/courtside/internal/sampledata"
	"github.com/okian/courtside/pkg/logger"
)

const defaultRunTimeout = 2 * time.Minute

func main() {
	var (
		output  = flag.String("output", "data/BigWestCareerRankings.csv", `Output file, "-" for stdout`)
		rows    = flag.Int("rows", sampledata.DefaultRows, "Number of player rows")
		seed    = flag.Uint64("seed", sampledata.DefaultSeed, "Seed for a reproducible table")
		missing = flag.Float64("missing", sampledata.DefaultMissingRate, "Share of rows with one missing metric cell")
		tsv     = flag.Bool("tsv", false, "Write tab-separated values")
		baseURL = flag.String("url", "", "Base URL of a dashboard serving the output; enables verification")
		topN    = flag.Int("top", sampledata.DefaultTopN, "Number of BPM leaders to verify")
		timeout = flag.Duration("timeout", sampledata.DefaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampledata.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	delimiter := ','
	if *tsv {
		delimiter = '\t'
	}
	cfg := &sampledata.Config{
		Output:      *output,
		Rows:        *rows,
		Seed:        *seed,
		MissingRate: *missing,
		Delimiter:   delimiter,
		BaseURL:     *baseURL,
		TopN:        *topN,
		Timeout:     *timeout,
		Verbose:     *verbose,
	}

	if err := sampledata.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("Sample data failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
