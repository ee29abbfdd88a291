package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/infrastructure/parser"
)

type fakeFetcher struct {
	pages []string
	calls int
	err   error
}

func (f *fakeFetcher) FetchPage(_ context.Context, _ domain.Request, page int) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if page > len(f.pages) {
		return []byte(`<div class="tbody"></div>`), nil
	}
	return []byte(f.pages[page-1]), nil
}

func rowMarkup(received time.Time, id string) string {
	return fmt.Sprintf(`
  <div class="tbody-row">
    <div class="cell_1">Date %s</div>
    <div class="cell_2"><a href="/c/%s">%s</a></div>
    <div class="cell_3">Name Customer %s</div>
    <div class="cell_4">Payment 100</div>
    <div class="cell_5">Charge 10</div>
    <div class="cell_6"><label>Pending</label></div>
    <div class="cell_7"><a href="/c/%s/details">View</a></div>
  </div>`, received.Format(parser.ReceivedAtLayout), id, id, id, id)
}

func pageMarkup(dates []time.Time) string {
	var rows strings.Builder
	for i, d := range dates {
		rows.WriteString(rowMarkup(d, fmt.Sprintf("CID%d", i+1)))
	}
	return `<div class="tbody">` + rows.String() + `</div>`
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func newTestWalker(fetcher *fakeFetcher, maxPages int) *Walker {
	return NewWalker(WalkerDeps{
		Fetcher:      fetcher,
		Parser:       parser.New(),
		MaxPages:     maxPages,
		DisableDelay: true,
	})
}

func TestWalkerStopsWhenLastRecordOlderThanEndDate(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: []string{
		pageMarkup([]time.Time{
			day(2024, time.March, 12),
			day(2024, time.March, 11),
			day(2024, time.March, 10),
			day(2024, time.March, 7),
			day(2024, time.March, 5),
		}),
		pageMarkup([]time.Time{
			day(2024, time.March, 4),
			day(2024, time.March, 2),
			day(2024, time.February, 20),
		}),
		pageMarkup([]time.Time{day(2024, time.February, 10)}),
	}}

	req := domain.Request{
		Cookie:    "session=abc",
		StartDate: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.StatusAll,
	}

	records, err := newTestWalker(fetcher, 0).Scan(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 2, fetcher.calls, "page 2's last record predates the end date, so page 3 must not be fetched")
	require.Len(t, records, 8, "the stop page's records are still accumulated")

	filtered := FilterRange(records, req.StartDate, req.EndDate)
	require.Len(t, filtered, 5)
	require.Equal(t, day(2024, time.March, 10), filtered[0].ReceivedAt)
	require.Equal(t, day(2024, time.March, 2), filtered[len(filtered)-1].ReceivedAt)
}

func TestWalkerStopsOnEmptyFirstPage(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: []string{`<div class="tbody"></div>`}}

	records, err := newTestWalker(fetcher, 0).Scan(context.Background(), domain.Request{
		EndDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:  domain.StatusAll,
	})
	require.NoError(t, err)
	require.Equal(t, 1, fetcher.calls)
	require.Empty(t, records)
}

func TestWalkerHonorsPageCap(t *testing.T) {
	t.Parallel()

	// Every page is in-window, so only the cap can stop the walk.
	page := pageMarkup([]time.Time{day(2024, time.March, 10)})
	fetcher := &fakeFetcher{pages: []string{page, page, page, page, page}}

	records, err := newTestWalker(fetcher, 3).Scan(context.Background(), domain.Request{
		EndDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:  domain.StatusAll,
	})
	require.NoError(t, err)
	require.Equal(t, 3, fetcher.calls)
	require.Len(t, records, 3)
}

func TestWalkerAbortsOnFetchError(t *testing.T) {
	t.Parallel()

	fetchErr := &domain.FetchError{Status: domain.StatusAll, Page: 1, Err: errors.New("connection refused")}
	fetcher := &fakeFetcher{err: fetchErr}

	records, err := newTestWalker(fetcher, 0).Scan(context.Background(), domain.Request{
		EndDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:  domain.StatusAll,
	})
	require.Error(t, err)
	require.Nil(t, records)

	var fe *domain.FetchError
	require.True(t, errors.As(err, &fe))
}

func TestWalkerAbortsOnMalformedRecord(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: []string{`
<div class="tbody">
  <div class="tbody-row">
    <div class="cell_1">Date garbage</div>
  </div>
</div>`}}

	records, err := newTestWalker(fetcher, 0).Scan(context.Background(), domain.Request{
		EndDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:  domain.StatusAll,
	})
	require.Error(t, err)
	require.Nil(t, records, "no partial result when a page fails to parse")

	var malformed *domain.MalformedRecordError
	require.True(t, errors.As(err, &malformed))
}

func TestWalkerRecordOnEndDateContinues(t *testing.T) {
	t.Parallel()

	// A record dated exactly on the end date is not strictly older, so the
	// walk continues to the next page.
	fetcher := &fakeFetcher{pages: []string{
		pageMarkup([]time.Time{day(2024, time.March, 1)}),
		`<div class="tbody"></div>`,
	}}

	records, err := newTestWalker(fetcher, 0).Scan(context.Background(), domain.Request{
		EndDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:  domain.StatusAll,
	})
	require.NoError(t, err)
	require.Equal(t, 2, fetcher.calls)
	require.Len(t, records, 1)
}
