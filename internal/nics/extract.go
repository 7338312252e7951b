// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nics

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/pdiddy/nics-totals/pkg/types"
)

// Result is the outcome of extracting totals from a report's pages.
type Result struct {
	Years  []types.YearTotal
	Months []types.MonthTotal
	States []types.StateTotal
	Stats  types.ExtractStats
}

// Empty reports whether no totals were found.
func (r Result) Empty() bool { return len(r.Years) == 0 }

// Extractor walks report pages in order and accumulates state rows.
type Extractor struct {
	classifier *Classifier
	bounds     YearBounds
	logger     *slog.Logger
}

// NewExtractor builds an Extractor from cfg. Zero year bounds fall back
// to DefaultYearBounds. A nil logger discards diagnostics.
func NewExtractor(cfg types.ExtractionConfig, logger *slog.Logger) *Extractor {
	bounds := DefaultYearBounds
	if cfg.MinYear > 0 {
		bounds.Min = cfg.MinYear
	}
	if cfg.MaxYear > 0 {
		bounds.Max = cfg.MaxYear
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{
		classifier: NewClassifier(cfg.IgnorePrefixes...),
		bounds:     bounds,
		logger:     logger,
	}
}

// Extract processes pages sequentially. The inferred period carries over
// from one page to the next, and a "Year NNNN" line switches the year for
// the lines after it. Lines that cannot be parsed are counted and skipped.
func (e *Extractor) Extract(pages []string) Result {
	agg := NewAggregator()
	var (
		stats  types.ExtractStats
		period Period
	)

	for i, text := range pages {
		stats.Pages++
		prior := period
		var ev monthEvidence
		period, ev = inferPeriod(text, prior, e.bounds)
		e.logger.Debug("page period", "page", i+1,
			"year", period.Year, "start_month", period.FirstMonth(), "end_month", period.EndMonth)

		for _, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			stats.Lines++

			if y, ok := yearMarker(line); ok {
				period = ev.period(y, prior)
				stats.Rejected++
				continue
			}
			if !period.Known() {
				stats.Rejected++
				continue
			}
			if !e.classifier.IsStateRow(line) {
				stats.Rejected++
				continue
			}

			row, err := ParseRow(line, period.Columns())
			if err != nil {
				if errors.Is(err, ErrTotalMismatch) {
					stats.Mismatched++
				} else {
					stats.Malformed++
				}
				e.logger.Debug("skipping row", "page", i+1, "line", line, "error", err)
				continue
			}

			row.FirstMonth = period.FirstMonth()
			stats.Accepted++
			agg.Add(period.Year, row)
		}
	}

	return Result{
		Years:  agg.YearTotals(),
		Months: agg.MonthTotals(),
		States: agg.StateTotals(),
		Stats:  stats,
	}
}
