// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const defaultPdftotextBin = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// PdftotextReader extracts page text by running poppler's pdftotext in
// layout mode, which keeps each table row on one line.
type PdftotextReader struct {
	bin  string
	exec executor
}

// NewPdftotextReader returns a reader that runs bin, or "pdftotext" from
// PATH when bin is empty.
func NewPdftotextReader(bin string) *PdftotextReader {
	return newPdftotextReader(bin, osExecutor{})
}

func newPdftotextReader(bin string, exec executor) *PdftotextReader {
	if bin == "" {
		bin = defaultPdftotextBin
	}
	return &PdftotextReader{bin: bin, exec: exec}
}

// ReadPages runs pdftotext over the whole document and splits its output
// on the form feeds it writes between pages.
func (r *PdftotextReader) ReadPages(ctx context.Context, pdfPath string) ([]string, error) {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return nil, fmt.Errorf("pdftotext binary %q not available: %w", r.bin, err)
	}

	out, err := r.exec.Output(ctx, r.bin, "-layout", "-enc", "UTF-8", pdfPath, "-")
	if err != nil {
		return nil, fmt.Errorf("running %s on %s: %w", r.bin, pdfPath, err)
	}
	return splitPages(string(out)), nil
}

// splitPages splits pdftotext output on form feeds. pdftotext terminates
// every page with one, so the empty trailing element is dropped.
func splitPages(text string) []string {
	if text == "" {
		return nil
	}
	pages := strings.Split(text, "\f")
	if last := len(pages) - 1; strings.TrimSpace(pages[last]) == "" {
		pages = pages[:last]
	}
	return pages
}
