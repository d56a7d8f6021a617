package radar

import (
	"errors"
	"fmt"

	"github.com/okian/courtside/internal/domain/stats"
)

// Sentinel kinds for radar errors.
var (
	ErrEmptyGroup    = errors.New("no players to compare")
	ErrNoMetrics     = errors.New("no radar metrics")
	ErrUnknownMetric = stats.ErrUnknownMetric
)

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func unknownMetric(m stats.Metric) error {
	return fmt.Errorf("%w: %q", ErrUnknownMetric, string(m))
}
