package ports

import (
	"context"

	"SteadfastScanner/internal/domain"
)

// PageFetcher retrieves the raw markup of one listing page.
type PageFetcher interface {
	FetchPage(ctx context.Context, req domain.Request, page int) ([]byte, error)
}

// PageParser extracts consignment records from one page of markup.
type PageParser interface {
	ParsePage(markup []byte) ([]domain.Consignment, error)
}

// ConsignmentSource walks the portal listing and returns every record
// reachable from page 1 until a stop condition triggers.
type ConsignmentSource interface {
	Scan(ctx context.Context, req domain.Request) ([]domain.Consignment, error)
}

// RequestValidator normalizes raw caller input into a request descriptor.
type RequestValidator interface {
	Validate(ctx context.Context, raw domain.RawRequest) (domain.Request, error)
}

// RequestCache persists the last validated request descriptor. Load reports
// ok=false when no snapshot exists; that is not an error.
type RequestCache interface {
	Load(ctx context.Context) (domain.Request, bool, error)
	Store(ctx context.Context, req domain.Request) error
}

// Exporter renders the filtered records for the caller and returns the
// location of the written artifact.
type Exporter interface {
	Export(ctx context.Context, req domain.Request, records []domain.Consignment) (string, error)
}
