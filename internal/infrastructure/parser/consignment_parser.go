package parser

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"SteadfastScanner/internal/domain"
	"SteadfastScanner/internal/ports"
)

// ReceivedAtLayout is the human-readable timestamp format rendered in the
// first cell of every listing row, e.g. "March 05, 2024 08:30 PM".
const ReceivedAtLayout = "January 2, 2006 3:04 PM"

const rowSelector = ".tbody .tbody-row"

// ConsignmentParser converts listing-page markup into consignment records.
// Optional cells degrade to empty strings; only a broken received-at
// timestamp aborts the page.
type ConsignmentParser struct{}

var _ ports.PageParser = (*ConsignmentParser)(nil)

// New builds a stateless page parser.
func New() *ConsignmentParser {
	return &ConsignmentParser{}
}

// ParsePage extracts every table row of one listing page.
func (p *ConsignmentParser) ParsePage(markup []byte) ([]domain.Consignment, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, &domain.MalformedRecordError{Field: "page", Err: err}
	}

	records := make([]domain.Consignment, 0)
	var rowErr error

	doc.Find(rowSelector).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		record, err := parseRow(row)
		if err != nil {
			rowErr = err
			return false
		}
		records = append(records, record)
		return true
	})

	if rowErr != nil {
		return nil, rowErr
	}
	return records, nil
}

func parseRow(row *goquery.Selection) (domain.Consignment, error) {
	receivedAt, err := parseReceivedAt(row)
	if err != nil {
		return domain.Consignment{}, err
	}

	return domain.Consignment{
		ReceivedAt:   receivedAt,
		TrackingID:   cellText(row, ".cell_2 a", ""),
		CustomerName: cellText(row, ".cell_3", "Name"),
		Payment:      cellText(row, ".cell_4", "Payment"),
		Charge:       cellText(row, ".cell_5", "Charge"),
		StatusLabel:  cellText(row, ".cell_6 label", ""),
		DetailURL:    cellAttr(row, ".cell_7 a", "href"),
	}, nil
}

func parseReceivedAt(row *goquery.Selection) (time.Time, error) {
	raw := cellText(row, ".cell_1", "Date")
	receivedAt, err := time.Parse(ReceivedAtLayout, raw)
	if err != nil {
		return time.Time{}, &domain.MalformedRecordError{Field: "received_at", Raw: raw, Err: err}
	}
	return receivedAt, nil
}

// cellText extracts trimmed text from the first match of selector, stripping
// an optional inline column label. A missing cell yields an empty string.
func cellText(row *goquery.Selection, selector, label string) string {
	cell := row.Find(selector).First()
	if cell.Length() == 0 {
		return ""
	}

	text := strings.TrimSpace(cell.Text())
	if label != "" {
		text = strings.TrimSpace(strings.Replace(text, label, "", 1))
	}
	return text
}

// cellAttr extracts an attribute from the first match of selector, defaulting
// to an empty string when the cell or attribute is absent.
func cellAttr(row *goquery.Selection, selector, attr string) string {
	cell := row.Find(selector).First()
	if cell.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(cell.AttrOr(attr, ""))
}
