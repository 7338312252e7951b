// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/nics-totals/pkg/types"
)

// WorkbookName is the XLSX file written when workbook output is enabled.
const WorkbookName = "nics_totals.xlsx"

// Sheet names in the workbook.
const (
	SheetByYear  = "By Year"
	SheetByMonth = "By Month"
	SheetByState = "By State"
)

type sheet struct {
	name   string
	header []any
	rows   [][]any
}

// WriteWorkbook writes yearly, monthly, and per-state totals to an XLSX
// workbook at path, one sheet each.
func WriteWorkbook(path string, run types.Run) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range runSheets(run) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("naming sheet %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("adding sheet %s: %w", s.name, err)
		}

		if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
			return fmt.Errorf("writing %s header: %w", s.name, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("writing %s row %d: %w", s.name, r+2, err)
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func runSheets(run types.Run) []sheet {
	years := sheet{name: SheetByYear, header: []any{"year", totalColumn}}
	for _, y := range run.Years {
		years.rows = append(years.rows, []any{y.Year, y.Total})
	}

	months := sheet{name: SheetByMonth, header: []any{"year", "month", totalColumn}}
	for _, m := range run.Months {
		months.rows = append(months.rows, []any{m.Year, m.Month, m.Total})
	}

	states := sheet{name: SheetByState, header: []any{"year", "state", totalColumn}}
	for _, s := range run.States {
		states.rows = append(states.rows, []any{s.Year, s.State, s.Total})
	}

	return []sheet{years, months, states}
}
