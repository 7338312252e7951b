// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/nics-totals/internal/pdftext"
	"github.com/pdiddy/nics-totals/internal/pipeline"
	"github.com/pdiddy/nics-totals/internal/report"
	"github.com/pdiddy/nics-totals/pkg/types"
)

const usageLine = "Usage: nics-totals /path/to/NICS_Firearm_Checks_-_Month_Year_by_State.pdf"

func init() {
	f := rootCmd.Flags()
	f.String("backend", string(types.BackendNative), "text backend: native or pdftotext")
	f.String("pdftotext-bin", "", "pdftotext binary for the pdftotext backend (default: pdftotext on PATH)")
	f.String("out-dir", "", "output directory (default: alongside the input PDF)")
	f.Bool("xlsx", false, "also write an XLSX workbook")
	f.String("export", "", "also export the full run: yaml or json")
	f.Int("preview-rows", report.DefaultPreviewRows, "monthly rows shown in the console preview")
	f.StringSlice("ignore-prefix", nil, "extra line prefix to ignore (repeatable)")
	f.Int("min-year", 0, "smallest year accepted without an explicit Year marker (default 1998)")
	f.Int("max-year", 0, "largest year accepted without an explicit Year marker (default 2100)")

	mustBind("extraction.backend", f.Lookup("backend"))
	mustBind("extraction.pdftotext_bin", f.Lookup("pdftotext-bin"))
	mustBind("extraction.ignore_prefixes", f.Lookup("ignore-prefix"))
	mustBind("extraction.min_year", f.Lookup("min-year"))
	mustBind("extraction.max_year", f.Lookup("max-year"))
	mustBind("output.dir", f.Lookup("out-dir"))
	mustBind("output.xlsx", f.Lookup("xlsx"))
	mustBind("output.export", f.Lookup("export"))
	mustBind("output.preview_rows", f.Lookup("preview-rows"))
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// loadConfig decodes the settings held by v into a Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	switch cfg.Output.Export {
	case types.ExportNone, types.ExportYAML, types.ExportJSON:
	default:
		return types.Config{}, fmt.Errorf("invalid export format %q (want yaml or json)", cfg.Output.Export)
	}
	return cfg, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &exitError{code: exitUsage, err: errors.New(usageLine)}
	}
	pdfPath := args[0]
	if info, err := os.Stat(pdfPath); err != nil || info.IsDir() {
		return &exitError{code: exitUsage, err: fmt.Errorf("file not found: %s", pdfPath)}
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	reader, err := pdftext.New(cfg.Extraction)
	if err != nil {
		return err
	}

	_, err = pipeline.New(reader, cfg, logger).Run(context.Background(), pdfPath, cmd.OutOrStdout())
	if errors.Is(err, pipeline.ErrNoData) {
		return &exitError{
			code: exitNoData,
			err:  errors.New("no year totals were found; double-check the PDF format or adjust the heuristics"),
		}
	}
	return err
}
