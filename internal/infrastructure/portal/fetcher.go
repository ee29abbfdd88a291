package portal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/ports"
)

// Fetcher retrieves listing pages over HTTP with the caller's session
// cookie. One call is one blocking GET; retries, if any, belong to the
// walker above it.
type Fetcher struct {
	client    *resty.Client
	endpoints *Endpoints
	logger    *slog.Logger
}

var _ ports.PageFetcher = (*Fetcher)(nil)

// Options configures the portal HTTP client.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// NewFetcher wires a resty client against the portal endpoint table.
func NewFetcher(opts Options) (*Fetcher, error) {
	endpoints, err := NewEndpoints(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New()
	client.SetTimeout(timeout)
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}

	return &Fetcher{
		client:    client,
		endpoints: endpoints,
		logger:    opts.Logger,
	}, nil
}

// FetchPage performs one authenticated GET for the given status category and
// page number and returns the raw response body.
func (f *Fetcher) FetchPage(ctx context.Context, req domain.Request, page int) ([]byte, error) {
	target, err := f.endpoints.Resolve(req.Status)
	if err != nil {
		return nil, &domain.FetchError{Status: req.Status, Page: page, Err: err}
	}

	f.debug("fetch listing page", "status", req.Status, "page", page)

	res, err := f.client.R().
		SetContext(ctx).
		SetHeader("Cookie", req.Cookie).
		SetQueryParam("page", strconv.Itoa(page)).
		Get(target)
	if err != nil {
		return nil, &domain.FetchError{Status: req.Status, Page: page, Err: err}
	}

	if res.StatusCode() != http.StatusOK {
		return nil, &domain.FetchError{
			Status: req.Status,
			Page:   page,
			Err:    fmt.Errorf("portal returned %s", res.Status()),
		}
	}

	return res.Body(), nil
}

func (f *Fetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
