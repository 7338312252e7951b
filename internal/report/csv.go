// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes extraction results: CSV files, console previews,
// an optional XLSX workbook, and an optional YAML or JSON run export.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdiddy/nics-totals/pkg/types"
)

const (
	// YearCSVName and MonthCSVName are the CSV files written next to the
	// input report.
	YearCSVName  = "nics_totals_by_year.csv"
	MonthCSVName = "nics_totals_by_month.csv"

	totalColumn = "total_background_checks"
)

// WriteYearCSV writes one "year,total_background_checks" record per year.
func WriteYearCSV(w io.Writer, years []types.YearTotal) error {
	records := make([][]string, 0, len(years)+1)
	records = append(records, []string{"year", totalColumn})
	for _, y := range years {
		records = append(records, []string{
			strconv.Itoa(y.Year),
			strconv.FormatInt(y.Total, 10),
		})
	}
	return writeRecords(w, records)
}

// WriteMonthCSV writes one "year,month,total_background_checks" record
// per month.
func WriteMonthCSV(w io.Writer, months []types.MonthTotal) error {
	records := make([][]string, 0, len(months)+1)
	records = append(records, []string{"year", "month", totalColumn})
	for _, m := range months {
		records = append(records, []string{
			strconv.Itoa(m.Year),
			strconv.Itoa(m.Month),
			strconv.FormatInt(m.Total, 10),
		})
	}
	return writeRecords(w, records)
}

func writeRecords(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

// WriteFile creates path and hands it to write, closing the file even when
// write fails.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
