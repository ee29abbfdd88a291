package request

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/ports"
)

// DateLayout is the format expected for the start/end date inputs.
const DateLayout = "2006-01-02"

// Validator normalizes raw caller input into a request descriptor,
// consulting the last-request cache for a fallback credential and
// overwriting the cache snapshot after every successful validation.
type Validator struct {
	cache  ports.RequestCache
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.RequestValidator = (*Validator)(nil)

// NewValidator wires the cache dependency.
func NewValidator(cache ports.RequestCache, logger *slog.Logger) *Validator {
	return &Validator{
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Validate applies the defaulting and parsing rules to each input in turn.
// The cache is read once up front and written once on success, including
// when values were defaulted rather than supplied.
func (v *Validator) Validate(ctx context.Context, raw domain.RawRequest) (domain.Request, error) {
	cached, haveCache, err := v.cache.Load(ctx)
	if err != nil {
		v.warn("cannot read last-request cache, continuing without it", "error", err)
		haveCache = false
	}

	cookie, err := v.validateCookie(raw.Cookie, cached, haveCache)
	if err != nil {
		return domain.Request{}, err
	}

	startDate, err := v.validateStartDate(raw.StartDate)
	if err != nil {
		return domain.Request{}, err
	}

	endDate, err := v.validateEndDate(raw.EndDate, startDate)
	if err != nil {
		return domain.Request{}, err
	}

	status, err := v.validateStatus(raw.Status)
	if err != nil {
		return domain.Request{}, err
	}

	req := domain.Request{
		Cookie:    cookie,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
	}

	if err := v.cache.Store(ctx, req); err != nil {
		return domain.Request{}, fmt.Errorf("store last request: %w", err)
	}

	return req, nil
}

func (v *Validator) validateCookie(cookie string, cached domain.Request, haveCache bool) (string, error) {
	if cookie != "" {
		return cookie, nil
	}

	v.warn("no cookie given, retrieving cookie from cache")
	if haveCache && cached.Cookie != "" {
		return cached.Cookie, nil
	}

	return "", &domain.ValidationError{Field: "credential", Reason: "missing credential"}
}

func (v *Validator) validateStartDate(raw string) (time.Time, error) {
	if raw == "" {
		v.warn("start date defaulted to current time as nothing provided")
		return v.now(), nil
	}

	startDate, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "start_date", Reason: "invalid date format"}
	}
	return startDate, nil
}

func (v *Validator) validateEndDate(raw string, startDate time.Time) (time.Time, error) {
	if raw == "" {
		v.warn("end date defaulted to 7 days before start date as nothing provided")
		return startDate.AddDate(0, 0, -7), nil
	}

	endDate, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "end_date", Reason: "invalid date format"}
	}
	return endDate, nil
}

func (v *Validator) validateStatus(raw string) (domain.Status, error) {
	if raw == "" {
		return domain.StatusAll, nil
	}

	status, ok := domain.ParseStatus(raw)
	if !ok {
		return "", &domain.ValidationError{Field: "status", Reason: "invalid status value"}
	}
	return status, nil
}

func (v *Validator) warn(msg string, args ...any) {
	if v.logger != nil {
		v.logger.Warn(msg, args...)
	}
}
