// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nics-totals/pkg/types"
)

// ExportName returns the export file name for format.
func ExportName(format types.ExportFormat) string {
	return "nics_totals_run." + string(format)
}

// WriteExport writes the full run, including per-state totals and line
// statistics, as YAML or JSON.
func WriteExport(w io.Writer, run types.Run, format types.ExportFormat) error {
	switch format {
	case types.ExportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&run); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case types.ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q (want yaml or json)", format)
	}
}
