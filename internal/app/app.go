package app

import (
	"context"
	"log/slog"
	"time"

	"SteadfastScanner/internal/config"
	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/infrastructure/export"
	"SteadfastScanner/internal/infrastructure/parser"
	"SteadfastScanner/internal/infrastructure/portal"
	"SteadfastScanner/internal/infrastructure/storage"
	"SteadfastScanner/internal/logging"
	"SteadfastScanner/internal/request"
	"SteadfastScanner/internal/scanner"
	"SteadfastScanner/internal/usecase"
)

// Application wires configs to the report use case and owns the cache
// handle's lifecycle.
type Application struct {
	cfg    config.Config
	cache  *storage.SQLiteCache
	report *usecase.Report
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	cache, err := storage.Open(cfg.Cache.Path)
	if err != nil {
		return nil, err
	}

	fetcher, err := portal.NewFetcher(portal.Options{
		BaseURL:   cfg.Portal.BaseURL,
		UserAgent: cfg.Portal.UserAgent,
		Timeout:   cfg.Portal.Timeout(),
		Logger:    logging.Component(baseLogger, "portal"),
	})
	if err != nil {
		_ = cache.Close()
		return nil, err
	}

	walker := scanner.NewWalker(scanner.WalkerDeps{
		Fetcher:      fetcher,
		Parser:       parser.New(),
		Logger:       logging.Component(baseLogger, "walker"),
		MaxPages:     cfg.Scanner.MaxPages,
		DelayMin:     time.Duration(cfg.Scanner.DelayMinMs) * time.Millisecond,
		DelayMax:     time.Duration(cfg.Scanner.DelayMaxMs) * time.Millisecond,
		DisableDelay: cfg.Scanner.DisableDelay,
	})

	report := usecase.NewReport(usecase.ReportDeps{
		Validator: request.NewValidator(cache, logging.Component(baseLogger, "validator")),
		Source:    walker,
		Exporter:  export.NewExcelWriter(cfg.Reports.Dir, logging.Component(baseLogger, "export")),
		Logger:    logging.Component(baseLogger, "report"),
	})

	return &Application{cfg: cfg, cache: cache, report: report}, nil
}

// Run executes one report for the given raw inputs.
func (a *Application) Run(ctx context.Context, raw domain.RawRequest) (usecase.Result, error) {
	return a.report.Run(ctx, raw)
}

// Close releases the cache database handle.
func (a *Application) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}
