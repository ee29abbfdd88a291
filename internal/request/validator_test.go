package request

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"SteadfastScanner/internal/domain"
)

type memCache struct {
	snapshot domain.Request
	have     bool
	loadErr  error
	storeErr error
	stored   []domain.Request
}

func (c *memCache) Load(context.Context) (domain.Request, bool, error) {
	return c.snapshot, c.have, c.loadErr
}

func (c *memCache) Store(_ context.Context, req domain.Request) error {
	if c.storeErr != nil {
		return c.storeErr
	}
	c.stored = append(c.stored, req)
	c.snapshot = req
	c.have = true
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 10, 15, 4, 5, 0, time.UTC)
}

func newTestValidator(cache *memCache) *Validator {
	v := NewValidator(cache, nil)
	v.now = fixedNow
	return v
}

func TestValidateDefaults(t *testing.T) {
	t.Parallel()

	cache := &memCache{}
	v := newTestValidator(cache)

	req, err := v.Validate(context.Background(), domain.RawRequest{Cookie: "session=abc"})
	require.NoError(t, err)

	require.Equal(t, "session=abc", req.Cookie)
	require.Equal(t, fixedNow(), req.StartDate)
	require.Equal(t, fixedNow().AddDate(0, 0, -7), req.EndDate)
	require.Equal(t, domain.StatusAll, req.Status)

	require.Len(t, cache.stored, 1, "defaulted values are cached too")
	require.Equal(t, req, cache.stored[0])
}

func TestValidateExplicitValues(t *testing.T) {
	t.Parallel()

	v := newTestValidator(&memCache{})

	req, err := v.Validate(context.Background(), domain.RawRequest{
		Cookie:    "session=abc",
		StartDate: "2024-03-10",
		EndDate:   "2024-03-01",
		Status:    "Partly Delivered",
	})
	require.NoError(t, err)

	require.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), req.StartDate)
	require.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), req.EndDate)
	require.Equal(t, domain.StatusPartlyDelivered, req.Status)
}

func TestValidateMissingCredentialNoCache(t *testing.T) {
	t.Parallel()

	cache := &memCache{}
	v := newTestValidator(cache)

	_, err := v.Validate(context.Background(), domain.RawRequest{})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "credential", verr.Field)
	require.Equal(t, "missing credential", verr.Reason)
	require.Empty(t, cache.stored, "a failed validation must not touch the cache")
}

func TestValidateCredentialFromCache(t *testing.T) {
	t.Parallel()

	cache := &memCache{
		snapshot: domain.Request{Cookie: "session=cached"},
		have:     true,
	}
	v := newTestValidator(cache)

	req, err := v.Validate(context.Background(), domain.RawRequest{})
	require.NoError(t, err)
	require.Equal(t, "session=cached", req.Cookie)
}

func TestValidateExplicitCookieWinsOverCache(t *testing.T) {
	t.Parallel()

	cache := &memCache{
		snapshot: domain.Request{Cookie: "session=cached"},
		have:     true,
	}
	v := newTestValidator(cache)

	req, err := v.Validate(context.Background(), domain.RawRequest{Cookie: "session=fresh"})
	require.NoError(t, err)
	require.Equal(t, "session=fresh", req.Cookie)
	require.Equal(t, "session=fresh", cache.snapshot.Cookie, "the snapshot is overwritten")
}

func TestValidateInvalidDates(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		raw   domain.RawRequest
		field string
	}{
		{
			name:  "start date",
			raw:   domain.RawRequest{Cookie: "c", StartDate: "10-03-2024"},
			field: "start_date",
		},
		{
			name:  "end date",
			raw:   domain.RawRequest{Cookie: "c", EndDate: "March 1"},
			field: "end_date",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestValidator(&memCache{}).Validate(context.Background(), tc.raw)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tc.field, verr.Field)
			require.Equal(t, "invalid date format", verr.Reason)
		})
	}
}

func TestValidateUnknownStatus(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"delivered", "ALL", "Shipped"} {
		_, err := newTestValidator(&memCache{}).Validate(context.Background(), domain.RawRequest{
			Cookie: "c",
			Status: raw,
		})

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "status %q must never silently default", raw)
		require.Equal(t, "invalid status value", verr.Reason)
	}
}

func TestValidateUnreadableCacheIsNotFatal(t *testing.T) {
	t.Parallel()

	cache := &memCache{loadErr: errors.New("disk gone")}
	v := newTestValidator(cache)

	req, err := v.Validate(context.Background(), domain.RawRequest{Cookie: "session=abc"})
	require.NoError(t, err)
	require.Equal(t, "session=abc", req.Cookie)
}

func TestValidateStoreFailureSurfaces(t *testing.T) {
	t.Parallel()

	cache := &memCache{storeErr: errors.New("readonly fs")}
	v := newTestValidator(cache)

	_, err := v.Validate(context.Background(), domain.RawRequest{Cookie: "session=abc"})
	require.Error(t, err)
}
