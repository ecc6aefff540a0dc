package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"freightbill/internal/numfmt"
)

// MaxItems caps the line items on one bill so that Invoice.Total cannot
// overflow: MaxItems * numfmt.MaxAmount < 2^64.
const MaxItems = 10_000

var ErrTooManyItems = errors.New("invoice: too many items")

// Form is the raw snapshot of the editable bill form. Monetary fields are
// kept exactly as typed.
type Form struct {
	BillNumber string     `json:"billNumber"`
	BillDate   string     `json:"billDate"`
	PartyName  string     `json:"partyName"`
	Items      []FormItem `json:"items"`
}

// FormItem is one table row of the form.
type FormItem struct {
	Sr        int    `json:"sr"`
	Date      string `json:"date"`
	Truck     string `json:"truck"`
	From      string `json:"from"`
	To        string `json:"to"`
	Weight    string `json:"weight"`
	Rate      string `json:"rate"`
	Detention string `json:"detention"`
	Amount    string `json:"amount"`
	Remarks   string `json:"remarks"`
}

// LoadForm reads a JSON form snapshot from path.
func LoadForm(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("invoice: read snapshot: %w", err)
	}

	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("invoice: parse snapshot: %w", err)
	}
	return &form, nil
}

// Normalize converts the form into an Invoice. Non-digit characters are
// stripped from rate, detention and amount; negative, fractional and
// oversized amounts are rejected with the item and field named in the error.
func (f Form) Normalize() (Invoice, error) {
	if len(f.Items) > MaxItems {
		return Invoice{}, fmt.Errorf("%w: %d, at most %d", ErrTooManyItems, len(f.Items), MaxItems)
	}

	inv := Invoice{
		Header: Header{
			BillNumber: f.BillNumber,
			BillDate:   f.BillDate,
			PartyName:  f.PartyName,
		},
		Items: make([]LineItem, 0, len(f.Items)),
	}

	for i, row := range f.Items {
		item := LineItem{
			SequenceNumber: row.Sr,
			Date:           row.Date,
			Truck:          row.Truck,
			From:           row.From,
			To:             row.To,
			Weight:         row.Weight,
			Remarks:        row.Remarks,
		}

		fields := []struct {
			name string
			raw  string
			dst  *numfmt.Amount
		}{
			{"rate", row.Rate, &item.Rate},
			{"detention", row.Detention, &item.Detention},
			{"amount", row.Amount, &item.Amount},
		}
		for _, field := range fields {
			n, err := numfmt.ParseAmount(field.raw)
			if err != nil {
				return Invoice{}, fmt.Errorf("invoice: item %d %s %q: %w", i+1, field.name, field.raw, err)
			}
			*field.dst = n
		}

		if item.SequenceNumber <= 0 {
			item.SequenceNumber = i + 1
		}
		inv.Items = append(inv.Items, item)
	}

	return inv, nil
}
