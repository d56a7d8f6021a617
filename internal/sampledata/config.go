package sampledata

import "time"

// Config holds configuration for the sample table generator.
type Config struct {
	Output      string        // Output file; "-" writes to stdout
	Rows        int           // Number of player rows to generate
	Seed        uint64        // Seed for reproducible tables
	MissingRate float64       // Share of rows with one missing metric cell
	Delimiter   rune          // Field delimiter
	BaseURL     string        // Running dashboard to verify against; empty skips verification
	TopN        int           // Leaders compared during verification
	Timeout     time.Duration // HTTP request timeout
	Verbose     bool          // Enable verbose logging
}

// Row is one generated record. Missing names the metric written as a
// missing-value marker, if any.
type Row struct {
	Name    string
	Team    string
	Values  map[string]float64
	Missing string
}

// Leader is the subset of a /api/v1/leaders entry the verifier compares.
type Leader struct {
	Row  int    `json:"row"`
	Name string `json:"player"`
	Team string `json:"team"`
}

// LeadersResponse mirrors the /api/v1/leaders payload.
type LeadersResponse struct {
	Metric  string   `json:"metric"`
	Players []Leader `json:"players"`
}

// Stats holds run statistics.
type Stats struct {
	RowsGenerated   int
	RowsWithMissing int
	Teams           int
	LeadersChecked  int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
