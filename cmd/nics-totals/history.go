// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nics-totals/internal/report"
	"github.com/pdiddy/nics-totals/internal/store"
	"github.com/pdiddy/nics-totals/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List extraction runs recorded in the history database",
	Long: `History lists runs recorded with --db, newest first, with the number of
years and the grand total each extracted. Use --run to print the yearly
totals of one run.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "print the yearly totals of this run id")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := viper.GetString("store.db_path")
	if dbPath == "" {
		return errors.New("history needs a database: pass --db or set store.db_path")
	}

	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no history database at %s", dbPath)
	}

	s, err := store.New(types.StoreConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer s.Close()

	runID, _ := cmd.Flags().GetInt64("run")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	w := cmd.OutOrStdout()

	if runID > 0 {
		years, err := s.YearTotals(context.Background(), runID)
		if err != nil {
			return err
		}
		if len(years) == 0 {
			return fmt.Errorf("run %d not found", runID)
		}
		if jsonOutput {
			return writeJSON(w, years)
		}
		report.PrintYears(w, years)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := s.Runs(context.Background(), limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(w, runs)
	}
	formatRuns(w, runs)
	return nil
}

func formatRuns(w io.Writer, runs []store.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-20s  %-9s  %-5s  %15s  %s\n",
		"Run", "Extracted", "Backend", "Years", "Total", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(w, "%-4d  %-20s  %-9s  %-5d  %15d  %s\n",
			r.ID, r.ExtractedAt.Format(time.DateTime), r.Backend, r.Years, r.Total, r.SourcePDF)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
