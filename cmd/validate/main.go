package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/ingestion"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/validation"
)

// Batch-validates unit files without a server: .mtf records are converted
// through the importer, .json files are read as editor configurations.
func main() {
	strict := flag.Bool("strict", false, "Treat borderline findings as errors")
	quiet := flag.Bool("quiet", false, "Only print invalid units")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: validate [--strict] [--quiet] <file-or-dir>...")
		os.Exit(2)
	}

	vc := validation.DefaultContext()
	vc.StrictMode = *strict

	var files []string
	for _, arg := range flag.Args() {
		filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".mtf", ".json":
				files = append(files, path)
			}
			return nil
		})
	}

	var valid, invalid, failed int
	for _, f := range files {
		unit, name, err := loadUnit(f)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(f), err)
			continue
		}

		report := validation.Validate(unit, vc)
		if report.Valid {
			valid++
			if !*quiet {
				fmt.Printf("OK       %-40s %s\n", name, report.Summary)
			}
			continue
		}

		invalid++
		fmt.Printf("INVALID  %-40s %s\n", name, report.Summary)
		for _, e := range report.Errors {
			fmt.Printf("         [%s] %s\n", e.ID, e.Message)
		}
	}

	fmt.Printf("\n%d valid, %d invalid, %d unreadable of %d files\n", valid, invalid, failed, len(files))
	if invalid > 0 || failed > 0 {
		os.Exit(1)
	}
}

func loadUnit(path string) (models.UnitConfiguration, string, error) {
	if strings.EqualFold(filepath.Ext(path), ".mtf") {
		data, err := ingestion.ParseMTF(path)
		if err != nil {
			return models.UnitConfiguration{}, "", err
		}
		return data.ToUnitConfiguration(nil), data.FullName(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return models.UnitConfiguration{}, "", err
	}
	var unit models.UnitConfiguration
	if err := json.Unmarshal(raw, &unit); err != nil {
		return models.UnitConfiguration{}, "", fmt.Errorf("parse json: %w", err)
	}
	return unit, unit.Name(), nil
}
