// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/nics-totals/pkg/types"
)

// DefaultPreviewRows is how many monthly rows PrintMonths shows by default.
const DefaultPreviewRows = 24

// PrintYears prints the yearly totals as a fixed-width table.
func PrintYears(w io.Writer, years []types.YearTotal) {
	fmt.Fprintf(w, "%-6s  %s\n", "Year", "Total Background Checks")
	fmt.Fprintln(w, strings.Repeat("-", 31))
	for _, y := range years {
		fmt.Fprintf(w, "%-6d  %23d\n", y.Year, y.Total)
	}
}

// PrintMonths prints the last limit monthly totals as a fixed-width table.
// A limit of zero or less uses DefaultPreviewRows.
func PrintMonths(w io.Writer, months []types.MonthTotal, limit int) {
	if limit <= 0 {
		limit = DefaultPreviewRows
	}
	shown := months
	if len(shown) > limit {
		shown = shown[len(shown)-limit:]
		fmt.Fprintf(w, "(last %d of %d months)\n", limit, len(months))
	}

	fmt.Fprintf(w, "%-6s  %-5s  %s\n", "Year", "Month", "Total Background Checks")
	fmt.Fprintln(w, strings.Repeat("-", 38))
	for _, m := range shown {
		fmt.Fprintf(w, "%-6d  %-5s  %23d\n", m.Year, monthAbbrev(m.Month), m.Total)
	}
}

func monthAbbrev(m int) string {
	if m < 1 || m > 12 {
		return "?"
	}
	return time.Month(m).String()[:3]
}
