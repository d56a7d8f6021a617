package sampledata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/courtside/internal/domain/stats"
)

// Header returns the table header in column order.
func Header() []string {
	out := []string{stats.ColumnPlayer, stats.ColumnTeam}
	for _, m := range stats.Metrics {
		out = append(out, string(m))
	}
	return out
}

// Write encodes rows as a delimited table with a header line.
func Write(w io.Writer, rows []Row, comma rune) error {
	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}
	header := Header()
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rec := make([]string, len(header))
	for i, row := range rows {
		rec[0], rec[1] = row.Name, row.Team
		for j, m := range stats.Metrics {
			if string(m) == row.Missing {
				rec[j+2] = MissingMarker
				continue
			}
			rec[j+2] = strconv.FormatFloat(row.Values[string(m)], 'f', 1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
