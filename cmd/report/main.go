// Command report runs the analysis pipeline once over a survey file and
// writes the results to stdout or a file, as JSON or CSV.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"surveypulse/internal/analysis"
	"surveypulse/internal/classifier"
	"surveypulse/internal/config"
	"surveypulse/internal/exporter"
	"surveypulse/internal/infrastructure"
	"surveypulse/internal/normalizer"
	"surveypulse/pkg/contracts"
	"surveypulse/pkg/contracts/domain"
)

func main() {
	file := flag.String("file", "", "survey file to analyze (.csv or .xlsx)")
	mode := flag.String("mode", "auto", "ingestion mode: auto (raw/frequency detection) or departments (pre-aggregated matrix)")
	format := flag.String("format", "json", "output format: json or csv")
	out := flag.String("out", "", "output file (defaults to stdout)")
	scaleMin := flag.Float64("scale-min", 0, "override scale minimum")
	scaleMax := flag.Float64("scale-max", 0, "override scale maximum")
	issue := flag.Float64("issue", 0, "override issue threshold")
	excellent := flag.Float64("excellent", 0, "override excellent threshold")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: report -file survey.xlsx [-mode departments] [-format csv]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	settings := cfg.Analysis.Settings()
	if *scaleMin != 0 {
		settings.ScaleMin = *scaleMin
	}
	if *scaleMax != 0 {
		settings.ScaleMax = *scaleMax
	}
	if *issue != 0 {
		settings.IssueThreshold = *issue
	}
	if *excellent != 0 {
		settings.ExcellentThreshold = *excellent
	}

	if err := run(*file, *mode, *format, *out, settings, cfg, logger); err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func run(file, mode, format, out string, settings domain.Settings, cfg *config.Config, logger *slog.Logger) error {
	categories, err := config.LoadCategories(cfg.Categories)
	if err != nil {
		return err
	}
	cls := classifier.New(categories)

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	table, err := normalizer.ReadTable(file, f)
	if err != nil {
		return err
	}

	norm := normalizer.New(normalizer.Options{
		ScaleMin: settings.ScaleMin,
		ScaleMax: settings.ScaleMax,
		Classify: cls.Classify,
		Logger:   logger,
	})
	engine := analysis.NewEngine(logger)

	var results []domain.AnalysisResult
	var departments []domain.DepartmentAnalysis

	switch mode {
	case "departments":
		res, err := norm.NormalizeDepartmentMatrix(table)
		if err != nil {
			return err
		}
		departments, _ = engine.DepartmentMatrixAnalyze(res.Matrix)
	default:
		res, err := norm.Normalize(table)
		if err != nil {
			return err
		}
		results, err = engine.Analyze(res.Table.Responses, res.Table.Questions, settings)
		if err != nil {
			return err
		}
		departments = engine.DepartmentAnalyze(res.Table.Responses, res.Table.Questions, results)
	}

	var w io.Writer = os.Stdout
	if out != "" {
		file, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer file.Close()
		w = file
	}

	switch format {
	case "csv":
		writer := exporter.NewCSVWriter()
		if len(results) > 0 {
			return writer.WriteAnalysis(w, results)
		}
		return writer.WriteDepartments(w, departments)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"results":     results,
			"departments": departments,
		})
	}
}
