package domain

import "fmt"

// ValidationError reports bad or missing caller input. The caller is
// expected to re-supply the offending value; nothing is retried internally.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %s", e.Field, e.Reason)
}

// MalformedRecordError reports a mandatory record field that failed to
// parse. It aborts the whole page instead of degrading, since a broken
// timestamp would corrupt the pagination stop condition.
type MalformedRecordError struct {
	Field string
	Raw   string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record field %s (%q): %v", e.Field, e.Raw, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// FetchError reports a failed page retrieval. It is fatal to the current
// pagination run; already accumulated pages are discarded.
type FetchError struct {
	Status Status
	Page   int
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s page %d: %v", e.Status, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
