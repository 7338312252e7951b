// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext reads the linearized text of each page of a PDF. The
// native backend parses the PDF in-process; the pdftotext backend shells
// out to poppler's pdftotext in layout mode.
package pdftext

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/nics-totals/pkg/types"
)

// ErrUnknownBackend is returned by New for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown text backend")

// Reader returns the text of every page of a PDF, one string per page,
// with lines separated by newlines.
type Reader interface {
	ReadPages(ctx context.Context, pdfPath string) ([]string, error)
}

// New returns the Reader selected by cfg.Backend. An empty backend selects
// the native reader.
func New(cfg types.ExtractionConfig) (Reader, error) {
	switch cfg.Backend {
	case "", types.BackendNative:
		return NativeReader{}, nil
	case types.BackendPdftotext:
		return NewPdftotextReader(cfg.PdftotextBin), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)",
			ErrUnknownBackend, cfg.Backend, types.BackendNative, types.BackendPdftotext)
	}
}
