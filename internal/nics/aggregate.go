// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nics

import (
	"sort"

	"github.com/pdiddy/nics-totals/pkg/types"
)

type stateKey struct {
	year  int
	state string
}

// Aggregator accumulates parsed rows into year, month, and state buckets.
// A year or state seen on several pages is summed.
type Aggregator struct {
	years  map[int]int64
	months map[int]*[12]int64
	states map[stateKey]int64
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		years:  make(map[int]int64),
		months: make(map[int]*[12]int64),
		states: make(map[stateKey]int64),
	}
}

// Add records row under year. Month values fill buckets from the row's
// first month onward.
func (a *Aggregator) Add(year int, row Row) {
	a.years[year] += row.Total

	buckets, ok := a.months[year]
	if !ok {
		buckets = new([12]int64)
		a.months[year] = buckets
	}
	offset := 0
	if row.FirstMonth > 1 {
		offset = row.FirstMonth - 1
	}
	for i, v := range row.Months {
		if offset+i >= len(buckets) {
			break
		}
		buckets[offset+i] += v
	}

	if row.State != "" {
		a.states[stateKey{year: year, state: row.State}] += row.Total
	}
}

// Empty reports whether no rows have been added.
func (a *Aggregator) Empty() bool { return len(a.years) == 0 }

// YearTotals returns one total per year, oldest first.
func (a *Aggregator) YearTotals() []types.YearTotal {
	out := make([]types.YearTotal, 0, len(a.years))
	for _, y := range a.sortedYears() {
		out = append(out, types.YearTotal{Year: y, Total: a.years[y]})
	}
	return out
}

// MonthTotals returns twelve buckets per year, oldest first. Months with
// no reported values are zero.
func (a *Aggregator) MonthTotals() []types.MonthTotal {
	out := make([]types.MonthTotal, 0, len(a.months)*12)
	for _, y := range a.sortedYears() {
		buckets := a.months[y]
		for m := 0; m < 12; m++ {
			out = append(out, types.MonthTotal{Year: y, Month: m + 1, Total: buckets[m]})
		}
	}
	return out
}

// StateTotals returns per-state grand totals ordered by year then state.
func (a *Aggregator) StateTotals() []types.StateTotal {
	out := make([]types.StateTotal, 0, len(a.states))
	for k, v := range a.states {
		out = append(out, types.StateTotal{Year: k.year, State: k.state, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].State < out[j].State
	})
	return out
}

func (a *Aggregator) sortedYears() []int {
	years := make([]int, 0, len(a.years))
	for y := range a.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
