// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// gapFactor is the horizontal gap, as a fraction of font size, above
	// which two adjacent glyphs are treated as separate words or cells.
	gapFactor = 0.15

	// rowFactor is the vertical distance, as a fraction of font size,
	// within which glyphs share a baseline.
	rowFactor = 0.5
)

// NativeReader extracts page text with github.com/ledongthuc/pdf. Only the
// embedded text layer is read.
type NativeReader struct{}

// ReadPages returns one string per page. Glyphs are grouped into rows by
// baseline and each row becomes one line, top to bottom.
func (NativeReader) ReadPages(ctx context.Context, pdfPath string) (_ []string, err error) {
	// The parser panics on some malformed content streams.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("parsing PDF %s: %v", pdfPath, p)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, layoutText(p.Content().Text))
	}
	return pages, nil
}

// layoutText rebuilds the lines of a page from positioned glyphs.
func layoutText(glyphs []pdf.Text) string {
	var lines []string
	for _, row := range groupRows(glyphs) {
		if line := joinRow(row); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// groupRows buckets glyphs by baseline, top of the page first. Glyphs
// keep their content-stream order within a row.
func groupRows(glyphs []pdf.Text) [][]pdf.Text {
	if len(glyphs) == 0 {
		return nil
	}
	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows [][]pdf.Text
	var current []pdf.Text
	baseline := sorted[0].Y
	for _, g := range sorted {
		if len(current) > 0 && baseline-g.Y > rowFactor*fontSize(g) {
			rows = append(rows, current)
			current = nil
		}
		if len(current) == 0 {
			baseline = g.Y
		}
		current = append(current, g)
	}
	return append(rows, current)
}

// joinRow orders a row's glyphs left to right and joins them, inserting a
// single space wherever the gap after a glyph's advance is wide enough to
// separate words or table cells.
func joinRow(row []pdf.Text) string {
	if len(row) == 0 {
		return ""
	}
	sorted := make([]pdf.Text, len(row))
	copy(sorted, row)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var b strings.Builder
	for i, g := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			if g.X-(prev.X+prev.W) > gapFactor*fontSize(prev) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func fontSize(g pdf.Text) float64 {
	return math.Max(math.Abs(g.FontSize), 1)
}
