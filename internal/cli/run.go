package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nglogan/nglogan/internal/analyzer"
	"github.com/nglogan/nglogan/internal/config"
	"github.com/nglogan/nglogan/internal/models"
	"github.com/nglogan/nglogan/internal/report"
)

const templatePath = "templates/report.html"

// run drives the whole pipeline: load config, find the latest log, skip if
// the report already exists, parse, aggregate, render. A missing log or an
// existing report is a benign no-op; any returned error is fatal and
// reported by main with a non-zero exit code.
func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		if err := redirectLogging(cfg.LogFile); err != nil {
			return err
		}
	}

	latest, err := analyzer.FindLatestLog(cfg.LogDir)
	if err != nil {
		return err
	}
	if latest == nil {
		slog.Info("no_logs_found", "log_dir", cfg.LogDir)
		return nil
	}
	slog.Info("latest_log_found",
		"path", latest.Path,
		"date", latest.Date.Format("2006-01-02"),
	)

	reportPath := filepath.Join(cfg.ReportDir,
		fmt.Sprintf("report-%s.html", latest.Date.Format("2006.01.02")))
	if _, err := os.Stat(reportPath); err == nil {
		slog.Info("report_already_exists", "path", reportPath)
		return nil
	}

	slog.Info("parsing_started", "file", latest.Path)
	records, err := readRecords(latest.Path, cfg.ErrorThreshold)
	if err != nil {
		return err
	}

	slog.Info("calculating_statistics", "entries_count", len(records))
	stats := analyzer.CalculateStatistics(records)

	if err := report.Generate(stats, cfg.ReportSize, templatePath, reportPath); err != nil {
		return err
	}

	slog.Info("processing_complete", "report_path", reportPath)
	return nil
}

// readRecords drains a RecordReader into memory. The reader skips
// unparseable lines itself; its Err reports read failures and the
// error-rate check.
func readRecords(path string, errorThreshold float64) ([]models.LogRecord, error) {
	reader, err := analyzer.NewRecordReader(path, errorThreshold)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var records []models.LogRecord
	for reader.Scan() {
		records = append(records, reader.Record())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// redirectLogging swaps the default logger for one writing to path. The
// file is opened in append mode and stays open for the life of the process.
func redirectLogging(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	slog.Info("logging_to_file", "file", path)
	slog.SetDefault(slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	return nil
}
