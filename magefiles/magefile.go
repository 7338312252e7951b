//go:build mage

// Package main contains Mage build targets for nics-totals developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "nics-totals"
	cmdPkg  = "./cmd/nics-totals"
)

// Build compiles the CLI binary into bin/, stamping the version from
// `git describe` when available.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Extract builds the CLI and runs it on the report named by $NICS_PDF.
func Extract() error {
	mg.Deps(Build)
	pdf := os.Getenv("NICS_PDF")
	if pdf == "" {
		return fmt.Errorf("set NICS_PDF to the path of the Month/Year by State report")
	}
	return sh.RunV(filepath.Join(binDir, binName), pdf)
}

// Stats prints non-blank Go lines per package, split into production and
// test code.
func Stats() error {
	prod := map[string]int{}
	test := map[string]int{}
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if name := info.Name(); path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		pkg := filepath.Dir(path)
		if strings.HasSuffix(path, "_test.go") {
			test[pkg] += n
		} else {
			prod[pkg] += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	pkgs := make([]string, 0, len(prod))
	for p := range prod {
		pkgs = append(pkgs, p)
	}
	sort.Strings(pkgs)

	var totalProd, totalTest int
	fmt.Printf("%-28s  %6s  %6s\n", "Package", "Prod", "Test")
	for _, p := range pkgs {
		fmt.Printf("%-28s  %6d  %6d\n", p, prod[p], test[p])
		totalProd += prod[p]
		totalTest += test[p]
	}
	fmt.Printf("%-28s  %6d  %6d\n", "total", totalProd, totalTest)
	return nil
}

// countLines counts non-blank lines in the file at path.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
