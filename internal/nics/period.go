// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nics

import (
	"regexp"
	"strconv"
	"strings"
)

// Period is the reporting period a page's rows belong to. EndMonth is the
// last month with a reported column: 12 for a full year, less for the
// current partial year. StartMonth is the first column when the report
// begins after January (November for 1998); zero means January.
type Period struct {
	Year       int
	StartMonth int
	EndMonth   int
}

// Known reports whether a year has been established.
func (p Period) Known() bool { return p.Year != 0 }

// FirstMonth is the month of the first column, 1 through 12.
func (p Period) FirstMonth() int {
	if p.StartMonth < 1 {
		return 1
	}
	return p.StartMonth
}

// Columns is the number of month columns a row of this period carries.
func (p Period) Columns() int { return p.EndMonth - p.FirstMonth() + 1 }

// YearBounds limits the bare four-digit numbers accepted as years when a
// page has no explicit "Year NNNN" marker.
type YearBounds struct {
	Min int
	Max int
}

// DefaultYearBounds covers NICS operation (started November 1998).
var DefaultYearBounds = YearBounds{Min: 1998, Max: 2100}

func (b YearBounds) contains(y int) bool { return y >= b.Min && y <= b.Max }

const monthAlt = `January|February|March|April|May|June|July|August|September|October|November|December|` +
	`Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept|Sep|Oct|Nov|Dec`

var (
	yearMarkerRe = regexp.MustCompile(`\bYear\s+(\d{4})\b`)
	bareYearRe   = regexp.MustCompile(`\b(\d{4})\b`)
	monthNameRe  = regexp.MustCompile(`\b(` + monthAlt + `)\b`)
	dateRangeRe  = regexp.MustCompile(
		`\b(?:` + monthAlt + `)\.?\s+\d{1,2},?\s*(\d{4})\s*(?:-|–|—|to|through)\s*(` + monthAlt + `)\.?\s+\d{1,2},?\s*(\d{4})`)
)

var monthNumbers = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4, "May": 5, "June": 6,
	"July": 7, "August": 8, "September": 9, "October": 10, "November": 11, "December": 12,
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "Jun": 6, "Jul": 7, "Aug": 8,
	"Sep": 9, "Sept": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// InferPeriod determines the year and last reported month for a page.
//
// The year is the last "Year NNNN" marker on the page, else the largest
// four-digit number inside bounds, else prior's year. The end month comes
// from the first available of: a "Month D, YYYY - Month D, YYYY" range, a
// column header line naming several months, the latest month named
// anywhere, and finally prior's end month for the same year or 12. The
// start month is the first month of that column header, or prior's for a
// continuation page with no month names at all.
func InferPeriod(text string, prior Period, bounds YearBounds) Period {
	p, _ := inferPeriod(text, prior, bounds)
	return p
}

// inferPeriod also returns the page's month evidence so callers can
// re-derive the period when a mid-page year marker switches the year.
func inferPeriod(text string, prior Period, bounds YearBounds) (Period, monthEvidence) {
	year := inferYear(text, bounds)
	if year == 0 {
		year = prior.Year
	}
	ev := scanMonths(text)
	return ev.period(year, prior), ev
}

// yearMarker returns the year named by a "Year NNNN" marker in line.
func yearMarker(line string) (int, bool) {
	m := yearMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, true
}

func inferYear(text string, bounds YearBounds) int {
	if markers := yearMarkerRe.FindAllStringSubmatch(text, -1); len(markers) > 0 {
		y, _ := strconv.Atoi(markers[len(markers)-1][1])
		return y
	}
	best := 0
	for _, m := range bareYearRe.FindAllStringSubmatch(text, -1) {
		y, err := strconv.Atoi(m[1])
		if err != nil || !bounds.contains(y) {
			continue
		}
		if y > best {
			best = y
		}
	}
	return best
}

// monthEvidence is what a page says about which months it reports.
type monthEvidence struct {
	rangeEndYear  int
	rangeEndMonth int
	headerStart   int
	headerMonth   int
	latestMonth   int
}

func scanMonths(text string) monthEvidence {
	var ev monthEvidence
	if m := dateRangeRe.FindStringSubmatch(text); m != nil {
		y, err := strconv.Atoi(m[3])
		if err == nil {
			ev.rangeEndYear = y
			ev.rangeEndMonth = monthNumbers[m[2]]
		}
	}
	for _, line := range strings.Split(text, "\n") {
		names := monthNameRe.FindAllString(line, -1)
		for _, n := range names {
			if mo := monthNumbers[n]; mo > ev.latestMonth {
				ev.latestMonth = mo
			}
		}
		if len(names) >= 2 && !dateRangeRe.MatchString(line) {
			if mo := monthNumbers[names[len(names)-1]]; mo > ev.headerMonth {
				ev.headerMonth = mo
				ev.headerStart = monthNumbers[names[0]]
			}
		}
	}
	return ev
}

// period combines the evidence with year. A start month that is January
// or does not precede the end month is stored as zero.
func (ev monthEvidence) period(year int, prior Period) Period {
	p := Period{Year: year, EndMonth: ev.endMonth(year, prior)}
	switch {
	case ev.headerStart != 0:
		p.StartMonth = ev.headerStart
	case ev.latestMonth == 0 && ev.rangeEndMonth == 0 && prior.Year == year:
		p.StartMonth = prior.StartMonth
	}
	if p.StartMonth <= 1 || p.StartMonth > p.EndMonth {
		p.StartMonth = 0
	}
	return p
}

func (ev monthEvidence) endMonth(year int, prior Period) int {
	if ev.rangeEndYear != 0 && ev.rangeEndMonth != 0 {
		switch {
		case year == 0 || year == ev.rangeEndYear:
			return ev.rangeEndMonth
		case year < ev.rangeEndYear:
			return 12
		}
	}
	if ev.headerMonth != 0 {
		return ev.headerMonth
	}
	if ev.latestMonth != 0 {
		return ev.latestMonth
	}
	if prior.Year == year && prior.EndMonth != 0 {
		return prior.EndMonth
	}
	return 12
}
