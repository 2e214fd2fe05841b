package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"censuscli/internal/config"
	"censuscli/internal/dataprocessing"
	"censuscli/internal/exporter"
	"censuscli/internal/infrastructure"
	"censuscli/pkg/contracts/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("censusprep failed", "error", err)
		os.Exit(1)
	}
}

// options holds the command line flags. Non-empty values override the
// loaded configuration.
type options struct {
	configFile string
	namesFile  string
	dataFile   string
	outDir     string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("censusprep", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file (optional)")
	fs.StringVar(&opts.namesFile, "names", "", "attribute catalogue file (defaults to input.names_file)")
	fs.StringVar(&opts.dataFile, "data", "", "record file, .csv/.txt or .xlsx (defaults to input.data_file)")
	fs.StringVar(&opts.outDir, "out", "", "output directory (defaults to output.dir)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.namesFile != "" {
		cfg.Input.NamesFile = opts.namesFile
	}
	if opts.dataFile != "" {
		cfg.Input.DataFile = opts.dataFile
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	paths, err := config.NewPaths(cfg)
	if err != nil {
		return err
	}
	if err := paths.ValidateInputs(); err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.GetRunID(ctx)

	logger, err := infrastructure.InitializeLogger(ctx, cfg.Logging, stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.ResetLogger()
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(ctx, cfg.Telemetry, runID, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := providers.Shutdown(shutdownCtx); serr != nil && err == nil {
			err = serr
		}
	}()

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	start := time.Now()
	logger.InfoContext(ctx, "Starting census preparation",
		slog.String("names_file", paths.NamesFile),
		slog.String("data_file", paths.DataFile),
		slog.Int("workers", cfg.Prep.Workers))

	table, err := loadTable(ctx, paths, cfg.Prep.StrictCatalog, logger)
	if err != nil {
		return err
	}
	metrics.RecordRowsLoaded(ctx, table.Len())

	preparer := dataprocessing.NewPreparer(dataprocessing.PreparerConfig{
		Workers:             cfg.Prep.Workers,
		CoerceUnknownIncome: cfg.Prep.CoerceUnknownIncome,
	}, logger, metrics)
	if _, err := preparer.Prepare(ctx, table); err != nil {
		return err
	}

	stats, err := dataprocessing.Summarize(table)
	if err != nil {
		return err
	}
	printSummary(stdout, stats)

	charts, err := exporter.BuildChartData(table, exporter.DefaultCharts())
	if err != nil {
		return err
	}

	if cfg.Output.WriteCSV {
		tables := exporter.NewTableExporter(paths, cfg.Output.BOMPrefix, logger)
		if err := tables.ExportTable(table, exporter.PreparedTableFile); err != nil {
			return err
		}
		if err := tables.ExportPivots(charts); err != nil {
			return err
		}
	}

	if paths.Workbook != "" {
		if err := exporter.NewWorkbookRenderer(logger).Render(paths.Workbook, charts); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "Census preparation complete",
		slog.Int("rows", table.Len()),
		slog.Int("charts", len(charts)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func loadTable(ctx context.Context, paths *config.Paths, strict bool, logger *slog.Logger) (*dataprocessing.Table, error) {
	names, err := os.Open(paths.NamesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer names.Close()

	catalog, err := dataprocessing.LoadCatalog(names, strict)
	if err != nil {
		return nil, err
	}

	table, err := dataprocessing.LoadTableFile(paths.DataFile, catalog)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Loaded census records",
		slog.Int("columns", len(catalog)),
		slog.Int("rows", table.Len()))
	return table, nil
}

func printSummary(w io.Writer, stats *domain.SummaryStats) {
	fmt.Fprintf(w, "Minimum Age: %d\n", stats.MinAge)
	fmt.Fprintf(w, "Maximum Age: %d\n", stats.MaxAge)
	fmt.Fprintln(w, "age")
	for _, vc := range stats.AgeCounts {
		fmt.Fprintf(w, "%-5s %d\n", vc.Value, vc.Count)
	}
	fmt.Fprintln(w, "income")
	for _, vc := range stats.IncomeCounts {
		fmt.Fprintf(w, "%-5s %d\n", vc.Value, vc.Count)
	}
	fmt.Fprintf(w, "Number of distinct native countries: %d\n", stats.DistinctNativeCountries)
	fmt.Fprintf(w, "Number of unique education levels: %d\n", stats.DistinctEducationLevels)
}
