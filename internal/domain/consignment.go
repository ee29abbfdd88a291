package domain

import "time"

// Status enumerates the portal's consignment lifecycle buckets. The string
// values are the canonical labels shown in the portal's listing tabs and are
// matched exactly during validation.
type Status string

const (
	StatusAll             Status = "All"
	StatusPending         Status = "Pending"
	StatusApprovalPending Status = "Approval Pending"
	StatusDelivered       Status = "Delivered"
	StatusPartlyDelivered Status = "Partly Delivered"
	StatusCancelled       Status = "Cancelled"
	StatusInReview        Status = "In Review"
	StatusPickNDrop       Status = "Pick-n-Drop"
)

// Statuses returns every recognized status category.
func Statuses() []Status {
	return []Status{
		StatusAll,
		StatusPending,
		StatusApprovalPending,
		StatusDelivered,
		StatusPartlyDelivered,
		StatusCancelled,
		StatusInReview,
		StatusPickNDrop,
	}
}

// ParseStatus matches a raw label against the status enumeration.
func ParseStatus(raw string) (Status, bool) {
	for _, status := range Statuses() {
		if string(status) == raw {
			return status, true
		}
	}
	return "", false
}

// Consignment is one shipment record extracted from a listing row. All
// fields except ReceivedAt are optional and may be empty when the source
// markup omits the corresponding cell.
type Consignment struct {
	ReceivedAt   time.Time
	TrackingID   string
	CustomerName string
	Payment      string
	Charge       string
	StatusLabel  string
	DetailURL    string
}

// RawRequest carries the free-text inputs collected from the CLI before
// validation. Every field may be empty.
type RawRequest struct {
	Cookie    string
	StartDate string
	EndDate   string
	Status    string
}

// Request is a normalized request descriptor. StartDate is the newer bound
// of the window, EndDate the older one; a reversed window simply selects
// nothing.
type Request struct {
	Cookie    string
	StartDate time.Time
	EndDate   time.Time
	Status    Status
}
