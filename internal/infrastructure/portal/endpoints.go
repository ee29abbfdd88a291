package portal

import (
	"fmt"
	"net/url"

	"SteadfastScanner/internal/domain"
)

// statusPaths is the closed mapping from status category to listing path.
var statusPaths = map[domain.Status]string{
	domain.StatusAll:             "/user/consignment/status/all",
	domain.StatusPending:         "/user/consignment/status/pending",
	domain.StatusApprovalPending: "/user/consignment/status/approval",
	domain.StatusDelivered:       "/user/consignment/status/delivered",
	domain.StatusPartlyDelivered: "/user/consignment/status/partial",
	domain.StatusCancelled:       "/user/consignment/status/cancelled",
	domain.StatusInReview:        "/user/consignment/status/in-review",
	domain.StatusPickNDrop:       "/user/consignment/status/pick-n-drop",
}

// Endpoints resolves status categories to absolute listing URLs. The table
// is checked exhaustively at construction: every enumeration member must
// have a path.
type Endpoints struct {
	urls map[domain.Status]string
}

// NewEndpoints validates the path table against the status enumeration and
// anchors it on the portal base URL.
func NewEndpoints(baseURL string) (*Endpoints, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid portal base url %s: %w", baseURL, err)
	}

	urls := make(map[domain.Status]string, len(statusPaths))
	for _, status := range domain.Statuses() {
		path, ok := statusPaths[status]
		if !ok {
			return nil, fmt.Errorf("status %q has no listing endpoint", status)
		}

		ref, err := url.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("invalid listing path %s: %w", path, err)
		}
		urls[status] = base.ResolveReference(ref).String()
	}

	return &Endpoints{urls: urls}, nil
}

// Resolve returns the listing URL for a status category.
func (e *Endpoints) Resolve(status domain.Status) (string, error) {
	if target, ok := e.urls[status]; ok {
		return target, nil
	}
	return "", fmt.Errorf("status %q is not registered", status)
}
