// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Backend identifies the PDF text extraction backend.
type Backend string

const (
	BackendNative    Backend = "native"
	BackendPdftotext Backend = "pdftotext"
)

// ExportFormat selects the optional full-run export format.
type ExportFormat string

const (
	ExportNone ExportFormat = ""
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
)

// ExtractionConfig holds settings for reading and classifying report text.
type ExtractionConfig struct {
	// Backend selects the text backend: native or pdftotext.
	Backend Backend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// PdftotextBin is the pdftotext binary used by the pdftotext backend
	// (default "pdftotext" on PATH).
	PdftotextBin string `json:"pdftotext_bin" yaml:"pdftotext_bin" mapstructure:"pdftotext_bin"`

	// IgnorePrefixes are extra line prefixes rejected in addition to the
	// built-in header and footer set.
	IgnorePrefixes []string `json:"ignore_prefixes" yaml:"ignore_prefixes" mapstructure:"ignore_prefixes"`

	// MinYear and MaxYear bound the years accepted when a page carries no
	// explicit "Year NNNN" marker (defaults 1998 and 2100).
	MinYear int `json:"min_year" yaml:"min_year" mapstructure:"min_year"`
	MaxYear int `json:"max_year" yaml:"max_year" mapstructure:"max_year"`
}

// OutputConfig holds settings for the files and previews a run produces.
type OutputConfig struct {
	// Dir is the output directory. Empty means alongside the input PDF.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// XLSX also writes a workbook with one sheet per aggregate.
	XLSX bool `json:"xlsx" yaml:"xlsx" mapstructure:"xlsx"`

	// Export writes the full run as YAML or JSON when set.
	Export ExportFormat `json:"export" yaml:"export" mapstructure:"export"`

	// PreviewRows limits the monthly console preview (default 24).
	PreviewRows int `json:"preview_rows" yaml:"preview_rows" mapstructure:"preview_rows"`
}

// StoreConfig holds settings for the run history database.
type StoreConfig struct {
	// DBPath is the sqlite database file. Empty disables history.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// LogConfig holds settings for diagnostic logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for a run.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}
