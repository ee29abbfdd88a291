package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/infrastructure/parser"
	"SteadfastScanner/internal/ports"
	"SteadfastScanner/internal/request"
)

const sheetName = "Sheet1"

var header = []any{"Date", "Id", "Customer Name", "Payment", "Charge", "Status", "Details"}

// ExcelWriter renders the filtered records as a spreadsheet named after the
// request window and status, e.g. reports/2024-03-10_2024-03-01_All.xlsx.
type ExcelWriter struct {
	dir    string
	logger *slog.Logger
}

var _ ports.Exporter = (*ExcelWriter)(nil)

// NewExcelWriter stores reports under dir, creating it on first export.
func NewExcelWriter(dir string, logger *slog.Logger) *ExcelWriter {
	return &ExcelWriter{dir: dir, logger: logger}
}

// Export writes one sheet with a header row followed by one row per record
// and returns the written file path.
func (w *ExcelWriter) Export(ctx context.Context, req domain.Request, records []domain.Consignment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	file := excelize.NewFile()
	defer func() {
		if err := file.Close(); err != nil && w.logger != nil {
			w.logger.Warn("close spreadsheet", "error", err)
		}
	}()

	if err := file.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("write header row: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("locate row %d: %w", i+2, err)
		}

		row := []any{
			record.ReceivedAt.Format(parser.ReceivedAtLayout),
			record.TrackingID,
			record.CustomerName,
			record.Payment,
			record.Charge,
			record.StatusLabel,
			record.DetailURL,
		}
		if err := file.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	path := filepath.Join(w.dir, reportName(req))
	if err := file.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report %s: %w", path, err)
	}
	return path, nil
}

func reportName(req domain.Request) string {
	status := strings.ReplaceAll(string(req.Status), " ", "-")
	return fmt.Sprintf("%s_%s_%s.xlsx",
		req.StartDate.Format(request.DateLayout),
		req.EndDate.Format(request.DateLayout),
		status,
	)
}
