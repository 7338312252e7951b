// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrTooFewTokens means a line has fewer integers than month columns
	// plus the grand total.
	ErrTooFewTokens = errors.New("too few numeric tokens")

	// ErrTotalMismatch means a line's month values do not add up to its
	// grand total.
	ErrTotalMismatch = errors.New("month values do not sum to grand total")
)

var intTokenRe = regexp.MustCompile(`\d[\d,]*`)

// Row is one state or territory's figures for a period. Months[0] is the
// value for FirstMonth; a zero FirstMonth means January.
type Row struct {
	State      string
	FirstMonth int
	Months     []int64
	Total      int64
}

// ParseRow extracts the month values and grand total from an accepted
// state row. The last integer on the line is the grand total and the
// months integers before it are the month columns in order. Extra leading
// integers are ignored. A line with fewer than months+1 integers fails
// with ErrTooFewTokens, so for a page whose columns start after January
// (1998 begins in November) months must be the column count, not the end
// month.
func ParseRow(line string, months int) (Row, error) {
	if months < 1 || months > 12 {
		return Row{}, fmt.Errorf("month count %d out of range", months)
	}

	locs := intTokenRe.FindAllStringIndex(line, -1)
	if len(locs) < months+1 {
		return Row{}, fmt.Errorf("%w: want %d, got %d", ErrTooFewTokens, months+1, len(locs))
	}

	values := make([]int64, len(locs))
	for i, loc := range locs {
		v, err := parseInt(line[loc[0]:loc[1]])
		if err != nil {
			return Row{}, err
		}
		values[i] = v
	}

	tail := values[len(values)-months-1:]
	row := Row{
		State:  strings.TrimSpace(line[:locs[0][0]]),
		Months: append([]int64(nil), tail[:months]...),
		Total:  tail[months],
	}

	var sum int64
	for _, v := range row.Months {
		sum += v
	}
	if sum != row.Total {
		return row, fmt.Errorf("%w: months sum to %d, total is %d", ErrTotalMismatch, sum, row.Total)
	}
	return row, nil
}

// parseInt parses a comma-grouped integer token such as "1,234,567".
func parseInt(tok string) (int64, error) {
	v, err := strconv.ParseInt(strings.ReplaceAll(tok, ",", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", tok, err)
	}
	return v, nil
}
