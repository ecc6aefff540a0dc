package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"freightbill/internal/invoice"
	"freightbill/internal/layout"
)

func testInvoice() invoice.Invoice {
	inv := invoice.Invoice{Header: invoice.Header{
		BillNumber: "FB-0042",
		BillDate:   "2024-03-05",
		PartyName:  "Sharma Cement Works",
	}}
	inv = inv.WithItem(invoice.LineItem{
		Date: "01-03-2024", Truck: "MH12AB1234", From: "Pune", To: "Nashik",
		Weight: "12 MT", Rate: 1500, Detention: 500, Amount: 18500,
	})
	inv = inv.WithItem(invoice.LineItem{
		Date: "02-03-2024", Truck: "MH14CD5678", From: "Pune", To: "Satara",
		Weight: "10 MT", Rate: 1200, Amount: 12000, Remarks: "night unloading",
	})
	return inv
}

func buildTest(t *testing.T) *excelize.File {
	t.Helper()
	inv := testInvoice()
	plan, err := layout.Build(inv, layout.DefaultColumns())
	require.NoError(t, err)

	f, err := Build(inv, plan)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, axis)
	require.NoError(t, err)
	return v
}

func TestBuild_Header(t *testing.T) {
	f := buildTest(t)

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	assert.Equal(t, "Bill No : FB-0042", cell(t, f, "A1"))
	assert.Equal(t, "Date : 05-03-2024", cell(t, f, "J1"))
	assert.Equal(t, "Party Name : Sharma Cement Works", cell(t, f, "A2"))
}

func TestBuild_Table(t *testing.T) {
	f := buildTest(t)

	assert.Equal(t, layout.CaptionText, cell(t, f, "A4"))
	assert.Equal(t, "Sr", cell(t, f, "A5"), "short form label")
	assert.Equal(t, layout.ShortLabels[9], cell(t, f, "J5"))

	// items
	assert.Equal(t, "1", cell(t, f, "A6"))
	assert.Equal(t, "MH12AB1234", cell(t, f, "C6"))
	assert.Equal(t, "18,500/-", cell(t, f, "I6"))
	assert.Equal(t, "2", cell(t, f, "A7"))
	assert.Equal(t, "", cell(t, f, "H7"), "zero detention stays blank")
	assert.Equal(t, "night unloading", cell(t, f, "J7"))

	assert.Equal(t, layout.TotalText, cell(t, f, "A8"))
	assert.Equal(t, "30,500/-", cell(t, f, "I8"))
	assert.Equal(t, "Rupees : Thirty Thousand Five Hundred Only", cell(t, f, "A9"))
}

func TestBuild_Merges(t *testing.T) {
	f := buildTest(t)

	merges, err := f.GetMergeCells(SheetName)
	require.NoError(t, err)

	got := map[string]string{}
	for _, m := range merges {
		got[m.GetStartAxis()] = m.GetEndAxis()
	}
	assert.Equal(t, map[string]string{
		"A4": "J4", // caption
		"A8": "H8", // TOTAL label
		"A9": "J9", // amount in words
	}, got)
}

func TestBuild_BoldFollowsRowKind(t *testing.T) {
	f := buildTest(t)

	bold := func(axis string) bool {
		id, err := f.GetCellStyle(SheetName, axis)
		require.NoError(t, err)
		st, err := f.GetStyle(id)
		require.NoError(t, err)
		return st.Font != nil && st.Font.Bold
	}

	assert.True(t, bold("A4"), "caption")
	assert.True(t, bold("B5"), "column header")
	assert.False(t, bold("B6"), "item")
	assert.True(t, bold("A8"), "total")
	assert.True(t, bold("A9"), "words")
}

func TestBuild_ColumnWidths(t *testing.T) {
	f := buildTest(t)

	w, err := f.GetColWidth(SheetName, "A")
	require.NoError(t, err)
	assert.InDelta(t, 8/mmPerChar, w, 0.01)

	w, err = f.GetColWidth(SheetName, "J")
	require.NoError(t, err)
	assert.InDelta(t, autoWidth, w, 0.01)
}

func TestWrite(t *testing.T) {
	inv := testInvoice()
	plan, err := layout.Build(inv, layout.DefaultColumns())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, inv, plan))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(SheetName, "I8")
	require.NoError(t, err)
	assert.Equal(t, "30,500/-", v)
}

func TestBuild_EmptyInvoice(t *testing.T) {
	inv := invoice.Invoice{Header: invoice.Header{BillNumber: "FB-0001"}}
	plan, err := layout.Build(inv, layout.DefaultColumns())
	require.NoError(t, err)

	f, err := Build(inv, plan)
	require.NoError(t, err)
	defer f.Close()

	// Total follows the header row directly.
	assert.Equal(t, layout.TotalText, cell(t, f, "A6"))
	assert.Equal(t, "", cell(t, f, "I6"))
	assert.Equal(t, "Rupees : Zero Only", cell(t, f, "A7"))
}
