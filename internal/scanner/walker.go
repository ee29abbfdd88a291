package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/ports"
)

const (
	defaultMaxPages = 50
	defaultDelayMin = 300 * time.Millisecond
	defaultDelayMax = 400 * time.Millisecond
)

// Walker drives repeated fetch+parse cycles over the portal listing,
// starting at page 1. It stops when a page yields no records, or when the
// last record of a page is dated strictly before the window's end date.
// The stop condition assumes the upstream listing is sorted newest-first;
// if that assumption breaks, older out-of-order records are silently
// omitted.
type Walker struct {
	fetcher ports.PageFetcher
	parser  ports.PageParser
	logger  *slog.Logger

	maxPages     int
	delayMin     time.Duration
	delayMax     time.Duration
	disableDelay bool
}

var _ ports.ConsignmentSource = (*Walker)(nil)

// WalkerDeps wires the fetch and parse collaborators plus walk bounds.
type WalkerDeps struct {
	Fetcher ports.PageFetcher
	Parser  ports.PageParser
	Logger  *slog.Logger

	// MaxPages caps the walk when the stop heuristic never triggers;
	// <= 0 selects the default.
	MaxPages int
	// DelayMin/DelayMax bound the randomized courtesy pause between page
	// fetches; non-positive values select the defaults.
	DelayMin time.Duration
	DelayMax time.Duration
	// DisableDelay skips the pause entirely, for tests and constrained
	// environments.
	DisableDelay bool
}

// NewWalker constructs the pagination walker.
func NewWalker(deps WalkerDeps) *Walker {
	maxPages := deps.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	delayMin := deps.DelayMin
	if delayMin <= 0 {
		delayMin = defaultDelayMin
	}
	delayMax := deps.DelayMax
	if delayMax < delayMin {
		delayMax = delayMin + defaultDelayMax - defaultDelayMin
	}

	return &Walker{
		fetcher:      deps.Fetcher,
		parser:       deps.Parser,
		logger:       deps.Logger,
		maxPages:     maxPages,
		delayMin:     delayMin,
		delayMax:     delayMax,
		disableDelay: deps.DisableDelay,
	}
}

// Scan accumulates every record from page 1 forward until a stop condition
// or the page cap is reached. Fetch and parse failures abort the run; no
// partial result is returned.
func (w *Walker) Scan(ctx context.Context, req domain.Request) ([]domain.Consignment, error) {
	endDay := dateOnly(req.EndDate)
	records := make([]domain.Consignment, 0)

	for page := 1; ; page++ {
		if page > w.maxPages {
			w.warn("page cap reached before stop condition", "max_pages", w.maxPages)
			return records, nil
		}

		markup, err := w.fetcher.FetchPage(ctx, req, page)
		if err != nil {
			return nil, fmt.Errorf("scan page %d: %w", page, err)
		}

		pageRecords, err := w.parser.ParsePage(markup)
		if err != nil {
			return nil, fmt.Errorf("scan page %d: %w", page, err)
		}

		w.debug("page parsed", "page", page, "records", len(pageRecords))

		if len(pageRecords) == 0 {
			return records, nil
		}

		records = append(records, pageRecords...)

		last := pageRecords[len(pageRecords)-1]
		if dateOnly(last.ReceivedAt).Before(endDay) {
			return records, nil
		}

		if err := w.pause(ctx); err != nil {
			return nil, err
		}
	}
}

// pause sleeps for a randomized interval before the next page fetch, unless
// delays are disabled. Context cancellation cuts the pause short.
func (w *Walker) pause(ctx context.Context) error {
	if w.disableDelay {
		return nil
	}

	delay := w.delayMin
	if span := w.delayMax - w.delayMin; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span) + 1))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (w *Walker) debug(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Debug(msg, args...)
	}
}

func (w *Walker) warn(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Warn(msg, args...)
	}
}
