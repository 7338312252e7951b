// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nics-totals CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// Exit codes.
const (
	exitUsage  = 1
	exitNoData = 2
)

// logger is configured from --log-level and --log-format at startup.
var logger = slog.New(slog.DiscardHandler)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUsage
}

// rootCmd extracts totals from a report; subcommands inspect history.
var rootCmd = &cobra.Command{
	Use:   "nics-totals <report.pdf>",
	Short: "Extract yearly and monthly NICS background-check totals from the FBI state report PDF",
	Long: `nics-totals reads the FBI "NICS Firearm Checks: Month/Year by State" PDF and
sums every state and territory row into national totals by year and by month.

Two CSV files are written next to the input (nics_totals_by_year.csv and
nics_totals_by_month.csv) and a preview of both is printed. Optionally the
run is also written as an XLSX workbook, a YAML or JSON export, and a row in
a SQLite history database.

Exit status is 1 for a missing argument or file, 2 when no totals could be
extracted, and 0 on success.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetString("log.level"), viper.GetString("log.format"), os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./nics-totals.yaml or ~/.config/nics-totals/config.yaml)")
	pf.String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
	pf.String("log-format", "text", "diagnostic log format: text or json")
	pf.String("db", "", "SQLite run history database (disabled when empty)")

	mustBind("log.level", pf.Lookup("log-level"))
	mustBind("log.format", pf.Lookup("log-format"))
	mustBind("store.db_path", pf.Lookup("db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nics-totals")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nics-totals"))
		}
	}

	viper.SetEnvPrefix("NICS_TOTALS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a slog logger writing to w at the named level.
func newLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
