// Package export writes signal statistics to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ripopov/wavescout/internal/trace"
	"github.com/ripopov/wavescout/internal/wave"
)

// StatRow pairs a signal name with its computed statistics.
type StatRow struct {
	Name  string
	Stats wave.Stats
}

// WriteStatsCSV writes one row per signal with min, max, mean and
// sample count over the window [t0, t1].
func WriteStatsCSV(w io.Writer, rows []StatRow, t0, t1 trace.Time, ts trace.Timescale) error {
	cw := csv.NewWriter(w)
	header := []string{"signal", "min", "max", "mean", "samples",
		fmt.Sprintf("window_start_%s", ts.Unit), fmt.Sprintf("window_end_%s", ts.Unit)}
	if err := cw.Write(header); err != nil {
		return err
	}
	start := strconv.FormatInt(int64(t0)*int64(ts.Factor), 10)
	end := strconv.FormatInt(int64(t1)*int64(ts.Factor), 10)
	for _, r := range rows {
		rec := []string{
			r.Name,
			formatStat(r.Stats.Min, r.Stats.Count),
			formatStat(r.Stats.Max, r.Stats.Count),
			formatStat(r.Stats.Mean(), r.Stats.Count),
			strconv.Itoa(r.Stats.Count),
			start,
			end,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatStat prints a statistic, empty when no samples were counted.
func formatStat(v float64, count int) string {
	if count == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
