// Command wacreport builds the WAC student interaction report for a date
// range: it loads the contact-log workbook from the data directory, drops
// malformed rows, keeps interactions dated inside the inclusive range, and
// writes them to a new spreadsheet in the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"wacreport/internal/config"
	"wacreport/internal/contactlog"
	"wacreport/internal/exporter"
	"wacreport/internal/files"
	"wacreport/internal/infrastructure"
	"wacreport/internal/validation"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: wacreport [flags] START END

Create the WAC student interaction report for the inclusive date range
[START, END]. Both dates use the YYYY-MM-DD format.

The contact-log workbook is read from the data directory, which must contain
exactly one Excel file. The report is written to the output directory, named
for the report period.

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	dataDir := flag.String("data", "", "input directory containing the contact-log workbook (defaults to data/ next to the executable)")
	outDir := flag.String("out", "", "output directory for the generated report (defaults to output/ next to the executable)")
	format := flag.String("format", "", "report format: xlsx | csv (defaults to config, then xlsx)")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(flag.CommandLine.Output(), "wacreport: expected exactly two arguments: START END")
		flag.Usage()
		return 1
	}

	dateRange, err := contactlog.ParseDateRange(flag.Arg(0), flag.Arg(1))
	if err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "wacreport: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		return 1
	}
	if *dataDir != "" {
		paths.DataDir = *dataDir
	}
	if *outDir != "" {
		paths.OutputDir = *outDir
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		return 1
	}

	// Run log is named by execution date, not the report period
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetRunLogPath(time.Now())
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())
	logger = infrastructure.LoggerFromContext(ctx)

	logger.Info("Starting report run",
		slog.String("start_date", dateRange.Start.Format(contactlog.DateLayout)),
		slog.String("end_date", dateRange.End.Format(contactlog.DateLayout)),
		slog.String("data_dir", paths.DataDir),
		slog.String("output_dir", paths.OutputDir))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(paths.DataDir); err != nil {
		return 1
	}
	if err := validator.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return 1
	}

	discovery := files.NewDiscovery(paths.ExecutableDir)
	workbook, err := discovery.FindContactWorkbook(paths.DataDir)
	if err != nil {
		logger.Error("Contact workbook discovery failed",
			slog.String("data_dir", paths.DataDir),
			slog.String("error", err.Error()))
		return 1
	}
	if err := validator.ValidateWorkbook(workbook.Path); err != nil {
		return 1
	}

	logger.Info("Opening contact workbook", slog.String("workbook", workbook.Path))

	raw, err := contactlog.LoadWorkbook(workbook.Path, logger)
	if err != nil {
		logger.Error("Failed to load contact workbook",
			slog.String("workbook", workbook.Path),
			slog.String("error", err.Error()))
		return 1
	}

	cleaned := contactlog.Clean(raw, logger)
	filtered := contactlog.Filter(cleaned, dateRange)

	logger.Info("Records in report period",
		slog.Int("count", len(filtered.Records)),
		slog.Int("excluded_out_of_range", len(cleaned.Records)-len(filtered.Records)))

	writer := exporter.NewReportWriter(paths, cfg.Report.SheetName)

	reportFormat := cfg.Report.Format
	if *format != "" {
		reportFormat = *format
	}

	var reportPath string
	switch reportFormat {
	case "", "xlsx":
		reportPath, err = writer.WriteExcel(filtered, dateRange, logger)
	case "csv":
		reportPath, err = writer.WriteCSV(filtered, dateRange, logger)
	default:
		logger.Error("Unknown report format", slog.String("format", reportFormat))
		return 1
	}
	if err != nil {
		logger.Error("Failed to write report", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("Report written",
		slog.String("path", reportPath),
		slog.Int("record_count", len(filtered.Records)))
	fmt.Printf("Report written to %s (%d records)\n", reportPath, len(filtered.Records))

	return 0
}
