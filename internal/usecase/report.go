package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/ports"
	"SteadfastScanner/internal/scanner"
)

// ReportDeps wires the driven adapters into the report use case.
type ReportDeps struct {
	Validator ports.RequestValidator
	Source    ports.ConsignmentSource
	Exporter  ports.Exporter
	Logger    *slog.Logger
}

// Report implements the validate -> scan -> filter -> export workflow.
type Report struct {
	validator ports.RequestValidator
	source    ports.ConsignmentSource
	exporter  ports.Exporter
	logger    *slog.Logger
}

// Result carries the normalized request, the filtered records, and the
// location of the exported report (empty when no exporter is wired).
type Result struct {
	Request    domain.Request
	Records    []domain.Consignment
	ReportPath string
}

// NewReport constructs the orchestration component.
func NewReport(deps ReportDeps) *Report {
	return &Report{
		validator: deps.Validator,
		source:    deps.Source,
		exporter:  deps.Exporter,
		logger:    deps.Logger,
	}
}

// Run executes one end-to-end report for the given raw inputs.
func (r *Report) Run(ctx context.Context, raw domain.RawRequest) (Result, error) {
	if r.validator == nil || r.source == nil {
		return Result{}, fmt.Errorf("report use case is not fully wired")
	}

	req, err := r.validator.Validate(ctx, raw)
	if err != nil {
		return Result{}, fmt.Errorf("validate request: %w", err)
	}

	records, err := r.source.Scan(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("scan consignments: %w", err)
	}

	filtered := scanner.FilterRange(records, req.StartDate, req.EndDate)
	r.debug("records filtered", "scanned", len(records), "kept", len(filtered))

	result := Result{Request: req, Records: filtered}

	if r.exporter != nil {
		path, err := r.exporter.Export(ctx, req, filtered)
		if err != nil {
			return Result{}, fmt.Errorf("export report: %w", err)
		}
		result.ReportPath = path
	}

	return result, nil
}

func (r *Report) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
