package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"martcli/internal/aggregate"
	"martcli/internal/config"
	"martcli/internal/enrich"
	"martcli/internal/files"
	"martcli/internal/infrastructure"
	"martcli/internal/ingest"
	"martcli/internal/report"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (defaults to martcli.yaml next to the executable)")
	outputDir := flag.String("out", "", "output directory for the report files (defaults to data/reports)")
	store1Path := flag.String("store1", "", "path to the store 1 CSV export (overrides config)")
	store2Path := flag.String("store2", "", "path to the store 2 CSV export (overrides config)")
	topN := flag.Int("topn", 0, "number of products in the top/bottom rankings (overrides config)")
	customer := flag.String("customer", "", "print the purchase history of one customer instead of the full report")
	product := flag.String("product", "", "restrict -customer output to one product")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *store1Path != "" {
		cfg.Sources.Store1.Path = *store1Path
	}
	if *store2Path != "" {
		cfg.Sources.Store2.Path = *store2Path
	}
	if *topN > 0 {
		cfg.Analysis.TopN = *topN
	}

	// Initialize paths
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		paths = config.PathsFromBase(*outputDir)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	// Each invocation gets a run ID so log records from concurrent or
	// repeated runs can be told apart.
	runID := uuid.New().String()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	if err := run(ctx, cfg, paths, logger, runID, *customer, *product); err != nil {
		logger.ErrorContext(ctx, "Run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, paths *config.Paths, logger *slog.Logger, runID, customer, product string) error {
	started := time.Now()
	logger.InfoContext(ctx, "Starting analysis run",
		slog.String("store1", cfg.Sources.Store1.Path),
		slog.String("store2", cfg.Sources.Store2.Path),
		slog.Int("top_n", cfg.Analysis.TopN),
		slog.String("anomaly_policy", string(cfg.Analysis.AnomalyPolicy)))

	if err := resolveSourcePaths(cfg, paths, logger); err != nil {
		return err
	}

	sources, err := ingest.SourcesFromConfig(cfg.Sources)
	if err != nil {
		return err
	}

	loader := ingest.NewLoader(logger, cfg.Analysis.AnomalyPolicy)
	transactions, loadReport, err := loader.LoadAll(ctx, sources)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		return fmt.Errorf("no usable transactions in %s and %s",
			cfg.Sources.Store1.Path, cfg.Sources.Store2.Path)
	}

	enriched := enrich.NewEnricher(logger).Enrich(ctx, transactions)

	// Ad-hoc drill-down short-circuits the full report.
	if customer != "" || product != "" {
		matched := aggregate.FilterTransactions(enriched, aggregate.Filter{
			CustomerID:  customer,
			ProductName: product,
		})
		printer := report.NewConsolePrinter(os.Stdout)
		printer.PrintTransactions(matched)
		return nil
	}

	weekly := aggregate.WeeklyTotals(enriched)
	hourly := aggregate.HourlyTotals(enriched)
	revenues := aggregate.ProductRevenues(enriched)

	data := &report.Data{
		RunID:        runID,
		GeneratedAt:  started,
		Transactions: enriched,
		Weekly:       weekly,
		Hourly:       hourly,
		Products:     revenues,
		Top:          aggregate.TopProducts(revenues, cfg.Analysis.TopN),
		Bottom:       aggregate.BottomProducts(revenues, cfg.Analysis.TopN),
		Load:         loadReport,
	}

	csvWriter := report.NewCSVWriter(logger)
	if err := csvWriter.WriteWeekly(paths.WeeklyCSV, weekly); err != nil {
		return err
	}
	if err := csvWriter.WriteHourly(paths.HourlyCSV, hourly); err != nil {
		return err
	}
	if err := csvWriter.WriteProducts(paths.ProductsCSV, revenues); err != nil {
		return err
	}
	if err := csvWriter.WriteTransactions(paths.CombinedCSV, enriched); err != nil {
		return err
	}
	if err := report.NewExcelReporter(logger).Write(paths.ReportWorkbook, data); err != nil {
		return err
	}

	report.NewConsolePrinter(os.Stdout).Print(data)

	logger.InfoContext(ctx, "Analysis run complete",
		slog.Int("transactions", len(enriched)),
		slog.Int("weeks", len(weekly)),
		slog.String("workbook", paths.ReportWorkbook),
		slog.Duration("elapsed", time.Since(started)))
	return nil
}

// resolveSourcePaths fills empty source paths by scanning the inputs
// directory for the most recent export matching each source name.
func resolveSourcePaths(cfg *config.Config, paths *config.Paths, logger *slog.Logger) error {
	discovery := files.NewDiscovery(paths.InputsDir)

	for _, src := range []*config.SourceConfig{&cfg.Sources.Store1, &cfg.Sources.Store2} {
		if src.Path != "" {
			continue
		}
		found, err := discovery.FindSourceFile(".", src.Name)
		if err != nil {
			return err
		}
		logger.Info("Discovered source export",
			slog.String("source", src.Name),
			slog.String("path", found.Path))
		src.Path = found.Path
	}

	return nil
}
