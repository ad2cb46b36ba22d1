// binpack is a multi-dimensional bin packing optimizer.
//
// Loads a packing problem (JSON problem file, saved project, or imported
// package list), runs the genetic optimizer, and writes the result in one
// or more export formats.
//
// Build:
//   go build -o binpack ./cmd/binpack
//
// Examples:
//   binpack -problem pallets.json -out results/
//   binpack -problem pallets.json -generations 200 -formats json,pdf,charts
//   binpack -project ~/.binpack/projects/demo.json -formats summary
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/danuaemx/bin-packing-optimizer/internal/analytics"
	"github.com/danuaemx/bin-packing-optimizer/internal/engine"
	"github.com/danuaemx/bin-packing-optimizer/internal/export"
	"github.com/danuaemx/bin-packing-optimizer/internal/importer"
	"github.com/danuaemx/bin-packing-optimizer/internal/logger"
	"github.com/danuaemx/bin-packing-optimizer/internal/model"
	"github.com/danuaemx/bin-packing-optimizer/internal/project"
)

func main() {
	var (
		problemPath = flag.String("problem", "", "path to a packing problem JSON file")
		projectPath = flag.String("project", "", "path to a saved project file")
		csvPath     = flag.String("import-csv", "", "import packages from a CSV file (requires -problem for containers)")
		outDir      = flag.String("out", ".", "output directory for exports")
		formats     = flag.String("formats", "json,summary", "comma-separated export formats: json,csv,summary,pdf,labels,xlsx,dxf,charts")
		population  = flag.Int("population", 0, "population size (0 uses the default)")
		generations = flag.Int("generations", 0, "number of generations (0 uses the default)")
		crossover   = flag.Float64("crossover", -1, "crossover probability (negative uses the default)")
		mutation    = flag.Float64("mutation", -1, "mutation probability (negative uses the default)")
		seed        = flag.Int64("seed", 0, "random seed (0 uses the default)")
		analyze     = flag.Bool("analyze", false, "print analysis and recommendations after the run")
		logLevel    = flag.String("log-level", "info", "log level: trace, debug, info, warn, error")
		pretty      = flag.Bool("pretty", true, "human-readable console logging")
	)
	flag.Parse()

	logger.Init(*logLevel, *pretty)
	log := logger.Logger()

	if *problemPath == "" && *projectPath == "" {
		flag.Usage()
		log.Fatal().Msg("either -problem or -project is required")
	}

	problem, config, err := loadInputs(*problemPath, *projectPath, *csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load inputs")
	}

	if *population > 0 {
		config.PopulationSize = *population
	}
	if *generations > 0 {
		config.Generations = *generations
	}
	if *crossover >= 0 {
		config.CrossoverProbability = *crossover
	}
	if *mutation >= 0 {
		config.MutationProbability = *mutation
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := engine.NewService(log)
	log.Info().
		Str("algorithm", engine.DescribeAlgorithm(config).Name).
		Dur("estimated", engine.EstimateDuration(problem, config)).
		Msg("starting run")

	progress := func(p model.OptimizationProgress) {
		event := log.Debug()
		// Every tenth generation is promoted to info.
		if p.CurrentGeneration%10 == 0 || p.CurrentGeneration == p.TotalGenerations {
			event = log.Info()
		}
		event.
			Int("generation", p.CurrentGeneration).
			Int("of", p.TotalGenerations).
			Float64("best", p.BestFitness).
			Float64("avg", p.AverageFitness).
			Dur("remaining", p.EstimatedRemaining).
			Msg("progress")
	}

	result, err := svc.Optimize(ctx, problem, config, progress)
	if err != nil {
		log.Fatal().Err(err).Msg("optimization failed")
	}

	if err := writeExports(*outDir, *formats, result, log); err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	fmt.Print(export.Summary(result))

	if *analyze {
		report := analytics.Analyze(result, problem)
		fmt.Println("\nRecommendations:")
		for _, rec := range report.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}

// loadInputs resolves the problem and solver parameters from the given
// sources. A project carries its own parameters; a bare problem file uses
// defaults. An imported CSV replaces the problem's package list.
func loadInputs(problemPath, projectPath, csvPath string) (model.PackingProblem, engine.Config, error) {
	config := engine.DefaultConfig()
	var problem model.PackingProblem

	switch {
	case projectPath != "":
		p, err := project.LoadProject(projectPath)
		if err != nil {
			return model.PackingProblem{}, config, fmt.Errorf("loading project: %w", err)
		}
		problem = p.Problem
		config = p.Parameters
	default:
		data, err := os.ReadFile(problemPath)
		if err != nil {
			return model.PackingProblem{}, config, fmt.Errorf("reading problem file: %w", err)
		}
		if err := json.Unmarshal(data, &problem); err != nil {
			return model.PackingProblem{}, config, fmt.Errorf("parsing problem file: %w", err)
		}
	}

	if csvPath != "" {
		imported := importer.ImportCSV(csvPath)
		if len(imported.Errors) > 0 {
			return model.PackingProblem{}, config, fmt.Errorf("importing packages: %s", strings.Join(imported.Errors, "; "))
		}
		log := logger.Logger()
		for _, w := range imported.Warnings {
			log.Warn().Msg(w)
		}
		problem.Packages = imported.Packages
		problem.AllowedRotations = nil
	}

	return problem, config, nil
}

// writeExports writes the result in every requested format, named after
// the run ID.
func writeExports(dir, formats string, result model.OptimizationResult, log zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	base := filepath.Join(dir, result.RunID)
	for _, format := range strings.Split(formats, ",") {
		format = strings.TrimSpace(strings.ToLower(format))
		if format == "" {
			continue
		}

		var (
			path string
			err  error
		)
		switch format {
		case "json":
			path = base + ".json"
			err = export.ExportJSON(path, result)
		case "csv":
			path = base + ".csv"
			err = export.ExportCSV(path, result)
		case "summary":
			path = base + ".txt"
			err = export.ExportSummary(path, result)
		case "pdf":
			path = base + ".pdf"
			err = export.ExportPDF(path, result)
		case "labels":
			path = base + "_labels.pdf"
			err = export.ExportLabels(path, result)
		case "xlsx":
			path = base + ".xlsx"
			err = export.ExportXLSX(path, result)
		case "dxf":
			path = base + ".dxf"
			err = export.ExportDXF(path, result)
		case "charts":
			path = base + "_charts.html"
			err = export.ExportCharts(path, result)
		default:
			return fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return fmt.Errorf("exporting %s: %w", format, err)
		}
		log.Info().Str("format", format).Str("path", path).Msg("wrote export")
	}
	return nil
}
