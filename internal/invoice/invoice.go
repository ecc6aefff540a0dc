// Package invoice holds the freight bill snapshot handed to the composer:
// header fields plus an ordered list of line items.
//
// An Invoice is treated as immutable once built. Methods that change the
// item list return a new value.
package invoice

import (
	"strings"
	"time"

	"freightbill/internal/numfmt"
)

// Header identifies the bill and the party it is addressed to.
type Header struct {
	BillNumber string
	BillDate   string // YYYY-MM-DD as produced by the form's date input
	PartyName  string
}

// DisplayDate returns the bill date as printed on the bill.
func (h Header) DisplayDate() string {
	return FormatDate(h.BillDate)
}

// FormatDate rewrites a YYYY-MM-DD form date as DD-MM-YYYY. Empty input
// stays empty; other dash-separated triples are reversed; anything else is
// printed as given.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("02-01-2006")
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// LineItem is one trip on the bill.
type LineItem struct {
	SequenceNumber int
	Date           string
	Truck          string
	From           string
	To             string
	Weight         string
	Rate           numfmt.Amount
	Detention      numfmt.Amount
	Amount         numfmt.Amount
	Remarks        string
}

// Invoice is the header plus its line items in display order.
type Invoice struct {
	Header
	Items []LineItem
}

// Total sums Amount over all items. It is recomputed on every call.
func (inv Invoice) Total() numfmt.Amount {
	var total numfmt.Amount
	for _, item := range inv.Items {
		total += item.Amount
	}
	return total
}

// WithItem returns a copy of inv with item appended and numbered after the
// current last item.
func (inv Invoice) WithItem(item LineItem) Invoice {
	items := make([]LineItem, len(inv.Items), len(inv.Items)+1)
	copy(items, inv.Items)
	item.SequenceNumber = len(items) + 1
	inv.Items = append(items, item)
	return inv
}

// Renumbered returns a copy of inv whose stored sequence numbers match the
// item positions again (1..N).
func (inv Invoice) Renumbered() Invoice {
	items := make([]LineItem, len(inv.Items))
	for i, item := range inv.Items {
		item.SequenceNumber = i + 1
		items[i] = item
	}
	inv.Items = items
	return inv
}
