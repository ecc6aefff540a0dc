package invoice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightbill/internal/numfmt"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name     string
		amounts  []numfmt.Amount
		expected numfmt.Amount
	}{
		{"no items", nil, 0},
		{"single item", []numfmt.Amount{5000}, 5000},
		{"blank amounts count as zero", []numfmt.Amount{0, 1200, 0}, 1200},
		{"several items", []numfmt.Amount{15000, 22500, 1234567}, 1272067},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inv Invoice
			for _, a := range tt.amounts {
				inv = inv.WithItem(LineItem{Amount: a})
			}
			assert.Equal(t, tt.expected, inv.Total())
		})
	}
}

func TestTotalFollowsItems(t *testing.T) {
	inv := Invoice{}.WithItem(LineItem{Amount: 100})
	assert.Equal(t, numfmt.Amount(100), inv.Total())

	inv.Items[0].Amount = 250
	assert.Equal(t, numfmt.Amount(250), inv.Total())
}

func TestWithItemNumbersAndCopies(t *testing.T) {
	first := Invoice{}.WithItem(LineItem{Truck: "GJ01AB1234"})
	second := first.WithItem(LineItem{Truck: "GJ27X9999"})

	require.Len(t, first.Items, 1)
	require.Len(t, second.Items, 2)
	assert.Equal(t, 1, second.Items[0].SequenceNumber)
	assert.Equal(t, 2, second.Items[1].SequenceNumber)

	second.Items[0].Truck = "changed"
	assert.Equal(t, "GJ01AB1234", first.Items[0].Truck)
}

func TestRenumbered(t *testing.T) {
	inv := Invoice{Items: []LineItem{
		{SequenceNumber: 4},
		{SequenceNumber: 4},
		{SequenceNumber: 9},
	}}

	got := inv.Renumbered()
	for i, item := range got.Items {
		assert.Equal(t, i+1, item.SequenceNumber)
	}
	assert.Equal(t, 9, inv.Items[2].SequenceNumber, "receiver left untouched")
}

func TestNormalize(t *testing.T) {
	form := Form{
		BillNumber: "001",
		BillDate:   "2026-01-28",
		PartyName:  "Sam Stone",
		Items: []FormItem{
			{Sr: 1, Date: "27-01-2026", Truck: "GJ01AB1234", From: "Ahmedabad", To: "Surat",
				Weight: "9 MT", Rate: "5,000/-", Detention: "", Amount: "Rs. 15,000", Remarks: "urgent"},
			{Date: "28-01-2026", Amount: "12,34,567/-"},
		},
	}

	inv, err := form.Normalize()
	require.NoError(t, err)

	assert.Equal(t, Header{BillNumber: "001", BillDate: "2026-01-28", PartyName: "Sam Stone"}, inv.Header)
	require.Len(t, inv.Items, 2)

	first := inv.Items[0]
	assert.Equal(t, numfmt.Amount(5000), first.Rate)
	assert.Equal(t, numfmt.Amount(0), first.Detention)
	assert.Equal(t, numfmt.Amount(15000), first.Amount)
	assert.Equal(t, "9 MT", first.Weight)
	assert.Equal(t, "urgent", first.Remarks)

	assert.Equal(t, 2, inv.Items[1].SequenceNumber, "missing sr falls back to position")
	assert.Equal(t, numfmt.Amount(1234567), inv.Items[1].Amount)
	assert.Equal(t, numfmt.Amount(1249567), inv.Total())
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		item FormItem
		err  error
		msg  string
	}{
		{"negative amount", FormItem{Amount: "-500"}, numfmt.ErrNegative, "item 1 amount"},
		{"fractional rate", FormItem{Rate: "12.75"}, numfmt.ErrFractional, "item 1 rate"},
		{"minus after currency", FormItem{Amount: "Rs -500"}, numfmt.ErrNegative, "item 1 amount"},
		{"minus after currency dot", FormItem{Rate: "Rs. -1,000/-"}, numfmt.ErrNegative, "item 1 rate"},
		{"trailing minus", FormItem{Detention: "500-"}, numfmt.ErrNegative, "item 1 detention"},
		{"parentheses", FormItem{Amount: "(500)"}, numfmt.ErrNegative, "item 1 amount"},
		{"huge detention", FormItem{Detention: "99999999999999999999"}, numfmt.ErrTooLarge, "item 1 detention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Form{Items: []FormItem{tt.item}}.Normalize()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNormalizeItemCap(t *testing.T) {
	items := make([]FormItem, MaxItems)
	for i := range items {
		items[i] = FormItem{Amount: "999999999999999"}
	}

	inv, err := Form{Items: items}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, numfmt.Amount(MaxItems)*numfmt.MaxAmount, inv.Total(), "largest total stays exact")

	_, err = Form{Items: append(items, FormItem{Amount: "1"})}.Normalize()
	assert.ErrorIs(t, err, ErrTooManyItems)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"form date", "2026-01-28", "28-01-2026"},
		{"leap day", "2024-02-29", "29-02-2024"},
		{"empty", "", ""},
		{"unpadded parts", "2026-1-5", "5-1-2026"},
		{"free text", "next week", "next week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDate(tt.in))
		})
	}
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "05-03-2026", Header{BillDate: "2026-03-05"}.DisplayDate())
	assert.Equal(t, "", Header{}.DisplayDate())
}

func TestLoadForm(t *testing.T) {
	t.Run("valid snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bill.json")
		content := `{
  "billNumber": "042",
  "billDate": "2026-03-05",
  "partyName": "Acme Logistics",
  "items": [
    {"sr": 1, "truck": "GJ01AB1234", "from": "Vatva", "to": "Mundra", "amount": "18000"}
  ]
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		form, err := LoadForm(path)
		require.NoError(t, err)
		assert.Equal(t, "042", form.BillNumber)
		require.Len(t, form.Items, 1)
		assert.Equal(t, "Mundra", form.Items[0].To)
		assert.Equal(t, "18000", form.Items[0].Amount)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadForm("/nonexistent/bill.json")
		assert.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bill.json")
		require.NoError(t, os.WriteFile(path, []byte("{{nope"), 0o644))

		_, err := LoadForm(path)
		assert.Error(t, err)
	})
}
