package sampledata

import "time"

// HTTP status code constants.
const (
	StatusOK = 200
)

// Defaults used by the command line tool.
const (
	DefaultRows        = 240
	DefaultSeed        = 2024
	DefaultMissingRate = 0.03
	DefaultTopN        = 10
	DefaultTimeout     = 10 * time.Second
)

// MissingMarker is written in place of a missing metric cell.
const MissingMarker = "NA"

// Teams are the Big West programs a generated table draws from.
var Teams = []string{
	"UC Santa Barbara",
	"UC Irvine",
	"UC San Diego",
	"UC Davis",
	"UC Riverside",
	"Cal Poly",
	"CSUN",
	"Cal State Fullerton",
	"Long Beach State",
	"Cal State Bakersfield",
	"Hawai'i",
}
