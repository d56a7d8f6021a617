package sampledata

import (
	"io"
)

// ShowHelp prints usage information for the sample data tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Courtside Sample Data Tool
==========================

Generates a fictional Big West career rankings table in the format the
dashboard loads, and optionally checks a running dashboard against it.

Usage:
  go run ./cmd/sample-data [options]

Options:
  -output string
        Output file, "-" for stdout (default "data/BigWestCareerRankings.csv")
  -rows int
        Number of player rows (default 240)
  -seed uint
        Seed for a reproducible table (default 2024)
  -missing float
        Share of rows with one missing metric cell (default 0.03)
  -tsv
        Write tab-separated values
  -url string
        Base URL of a dashboard serving the output; enables verification
  -top int
        Number of BPM leaders to verify (default 10)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Regenerate the bundled table
  go run ./cmd/sample-data

  # Generate, start the dashboard on it, then verify
  go run ./cmd/sample-data -output /tmp/rankings.csv -rows 500
  COURTSIDE_DATA_PATH=/tmp/rankings.csv go run ./cmd &
  go run ./cmd/sample-data -output /tmp/rankings.csv -rows 500 -url http://localhost:9080
`)
}
