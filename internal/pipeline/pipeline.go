// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one extraction end to end: read the report's
// pages, extract totals, write the output files, and optionally record the
// run in the history database.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/pdiddy/nics-totals/internal/nics"
	"github.com/pdiddy/nics-totals/internal/pdftext"
	"github.com/pdiddy/nics-totals/internal/report"
	"github.com/pdiddy/nics-totals/internal/store"
	"github.com/pdiddy/nics-totals/pkg/types"
)

// ErrNoData is returned when a report yields no totals.
var ErrNoData = errors.New("no year totals were found")

// Pipeline holds the collaborators for a run.
type Pipeline struct {
	reader pdftext.Reader
	cfg    types.Config
	logger *slog.Logger
	now    func() time.Time
}

// New returns a Pipeline reading pages with reader. A nil logger discards
// diagnostics.
func New(reader pdftext.Reader, cfg types.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{reader: reader, cfg: cfg, logger: logger, now: time.Now}
}

// Run extracts totals from the report at pdfPath, prints previews and the
// paths written to w, and returns the run. It returns ErrNoData, with the
// run's line statistics filled in, when nothing could be extracted; no
// files are written in that case.
func (p *Pipeline) Run(ctx context.Context, pdfPath string, w io.Writer) (types.Run, error) {
	pages, err := p.reader.ReadPages(ctx, pdfPath)
	if err != nil {
		return types.Run{}, fmt.Errorf("reading %s: %w", pdfPath, err)
	}
	p.logger.Info("read report", "path", pdfPath, "pages", len(pages), "backend", p.backend())

	res := nics.NewExtractor(p.cfg.Extraction, p.logger).Extract(pages)
	run := types.Run{
		SourcePDF:   pdfPath,
		Backend:     p.backend(),
		ExtractedAt: p.now().UTC(),
		Years:       res.Years,
		Months:      res.Months,
		States:      res.States,
		Stats:       res.Stats,
	}
	p.logger.Info("extracted totals",
		"years", len(run.Years),
		"accepted", run.Stats.Accepted,
		"rejected", run.Stats.Rejected,
		"malformed", run.Stats.Malformed,
		"mismatched", run.Stats.Mismatched,
	)
	if res.Empty() {
		return run, ErrNoData
	}
	if run.Stats.Mismatched > 0 {
		p.logger.Warn("rows skipped because month values did not sum to the grand total",
			"count", run.Stats.Mismatched)
	}

	report.PrintYears(w, run.Years)
	fmt.Fprintln(w)
	report.PrintMonths(w, run.Months, p.cfg.Output.PreviewRows)
	fmt.Fprintln(w)

	// Record first so the export carries the history id.
	if p.cfg.Store.DBPath != "" {
		id, err := p.save(ctx, run)
		if err != nil {
			return run, err
		}
		run.ID = id
		fmt.Fprintf(w, "Recorded run %d in %s\n", id, p.cfg.Store.DBPath)
	}

	if err := p.writeOutputs(pdfPath, run, w); err != nil {
		return run, err
	}
	return run, nil
}

func (p *Pipeline) backend() types.Backend {
	if p.cfg.Extraction.Backend == "" {
		return types.BackendNative
	}
	return p.cfg.Extraction.Backend
}

// outputDir is the configured output directory, or the input's directory.
func (p *Pipeline) outputDir(pdfPath string) string {
	if p.cfg.Output.Dir != "" {
		return p.cfg.Output.Dir
	}
	return filepath.Dir(pdfPath)
}

func (p *Pipeline) writeOutputs(pdfPath string, run types.Run, w io.Writer) error {
	dir := p.outputDir(pdfPath)

	yearPath := filepath.Join(dir, report.YearCSVName)
	if err := report.WriteFile(yearPath, func(out io.Writer) error {
		return report.WriteYearCSV(out, run.Years)
	}); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", yearPath)

	monthPath := filepath.Join(dir, report.MonthCSVName)
	if err := report.WriteFile(monthPath, func(out io.Writer) error {
		return report.WriteMonthCSV(out, run.Months)
	}); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", monthPath)

	if p.cfg.Output.XLSX {
		path := filepath.Join(dir, report.WorkbookName)
		if err := report.WriteWorkbook(path, run); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", path)
	}

	if format := p.cfg.Output.Export; format != types.ExportNone {
		path := filepath.Join(dir, report.ExportName(format))
		if err := report.WriteFile(path, func(out io.Writer) error {
			return report.WriteExport(out, run, format)
		}); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", path)
	}
	return nil
}

func (p *Pipeline) save(ctx context.Context, run types.Run) (int64, error) {
	s, err := store.New(p.cfg.Store)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	id, err := s.Save(ctx, run)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}
