package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"tmdb-analyzer/charts"
	"tmdb-analyzer/config"
	"tmdb-analyzer/models"
	"tmdb-analyzer/report"
	"tmdb-analyzer/services"
	"tmdb-analyzer/storage"
	"tmdb-analyzer/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== TMDB Movie Report starting ===")
	logger.Debug("Config: dataset=%s | output=%s | bins=%d | top=%d",
		cfg.DatasetPath, cfg.OutputDir, cfg.HistogramBins, cfg.TopN)

	gen := services.NewGenerator(services.GeneratorOptions{
		DatasetPath: cfg.DatasetPath,
		ShowProfile: cfg.ShowProfile,
		TopN:        cfg.TopN,
		Charts: charts.Options{
			OutputDir:     cfg.OutputDir,
			WidthInches:   cfg.ChartWidthIn,
			HeightInches:  cfg.ChartHeightIn,
			HistogramBins: cfg.HistogramBins,
			TopN:          cfg.TopN,
		},
	}, os.Stdout, logger)

	res, err := gen.Run()
	if err != nil {
		logger.Error("Report generation failed: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exportCSV(cfg, res.Movies, logger)
	exportExcel(cfg, res, logger)
	exportPostgres(ctx, cfg, res.Movies, logger)
	exportReport(ctx, cfg, res, logger)

	logger.Info("Done. %d charts written to %s", len(res.ChartPaths), filepath.Clean(cfg.OutputDir))
}

// Optional exports below never fail the run; errors are logged only.

func exportCSV(cfg *config.Config, movies []*models.Movie, logger *utils.Logger) {
	if cfg.CleanCSVPath == "" {
		return
	}
	w, err := storage.NewCSVWriter(cfg.CleanCSVPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		return
	}
	writeAll(w, movies, nil, "CSV", cfg.CleanCSVPath, logger)
}

func exportExcel(cfg *config.Config, res *services.Result, logger *utils.Logger) {
	if cfg.ExcelPath == "" {
		return
	}
	w, err := storage.NewExcelWriter(cfg.ExcelPath)
	if err != nil {
		logger.Error("Failed to create Excel writer: %v", err)
		return
	}
	writeAll(w, res.Movies, res.Report, "Excel", cfg.ExcelPath, logger)
}

func exportPostgres(ctx context.Context, cfg *config.Config, movies []*models.Movie, logger *utils.Logger) {
	if !cfg.PostgresEnabled {
		return
	}
	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
	pw, err := storage.NewPostgresWriter(ctx, cfg.DSN(), retry)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		return
	}
	writeAll(pw, movies, nil, "PostgreSQL", "movies (run "+pw.RunID().String()+")", logger)
}

func writeAll(w storage.MovieWriter, movies []*models.Movie, r *models.InsightReport, kind, dest string, logger *utils.Logger) {
	defer func() {
		if err := w.Close(); err != nil {
			logger.Error("%s export close failed: %v", kind, err)
		}
	}()

	if err := w.Write(movies); err != nil {
		logger.Error("%s export failed: %v", kind, err)
		return
	}
	if rw, ok := w.(storage.ReportWriter); ok && r != nil {
		if err := rw.WriteReport(r); err != nil {
			logger.Error("%s report export failed: %v", kind, err)
			return
		}
	}
	logger.Info("Cleaned movies exported to %s → %s", kind, dest)
}

func exportReport(ctx context.Context, cfg *config.Config, res *services.Result, logger *utils.Logger) {
	if cfg.HTMLReportPath == "" {
		return
	}
	if err := report.WriteHTML(cfg.HTMLReportPath, res.Report, res.ChartPaths); err != nil {
		logger.Error("HTML report failed: %v", err)
		return
	}
	logger.Info("HTML report saved to %s", cfg.HTMLReportPath)

	if cfg.PDFReportPath == "" {
		return
	}
	pdf := report.NewPDFRenderer(cfg.ChromeBin, cfg.MaxRetries, logger)
	if err := pdf.Render(ctx, cfg.HTMLReportPath, cfg.PDFReportPath); err != nil {
		logger.Error("PDF report failed: %v", err)
	}
}
