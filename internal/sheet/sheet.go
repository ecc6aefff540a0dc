// Package sheet writes the Particulars table of a bill to an XLSX workbook,
// drawing the same layout.Plan the PDF uses.
package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"freightbill/internal/invoice"
	"freightbill/internal/layout"
)

// FileName is the name the workbook is saved under.
const FileName = "Bill.xlsx"

// SheetName is the only sheet in the workbook.
const SheetName = "Particulars"

const (
	// mmPerChar converts column widths in millimetres to Excel's character units.
	mmPerChar  = 1.9
	autoWidth  = 40.0
	headerRows = 3
)

// Build returns a workbook holding the bill header on top and the planned
// table below it. Spans become merged ranges; emphasized rows are bold. The
// column headers use the short form labels, as the sheet is meant for
// editing.
func Build(inv invoice.Invoice, plan layout.Plan) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("sheet: rename: %w", err)
	}

	w := &writer{f: f, styles: map[styleKey]int{}}
	w.set(1, 1, "Bill No : "+inv.BillNumber, layout.AlignLeft, false)
	w.set(1, layout.ColumnCount, "Date : "+inv.DisplayDate(), layout.AlignRight, false)
	w.set(2, 1, "Party Name : "+inv.PartyName, layout.AlignLeft, true)

	rowNo := headerRows + 1
	for _, rows := range [][]layout.Row{plan.Head, plan.Body} {
		for _, r := range rows {
			col := 1
			for i, c := range r.Cells {
				span := c.Span
				if span < 1 {
					span = 1
				}
				content := c.Content
				if r.Kind == layout.KindColumnHeader && i < len(layout.ShortLabels) {
					content = layout.ShortLabels[i]
				}
				w.set(rowNo, col, content, c.Align, c.Bold)
				if span > 1 {
					w.merge(rowNo, col, col+span-1)
				}
				col += span
			}
			rowNo++
		}
	}

	for i, c := range plan.Columns {
		width := autoWidth
		if c.Width > 0 {
			width = c.Width / mmPerChar
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("sheet: column name: %w", err)
		}
		if err := f.SetColWidth(SheetName, name, name, width); err != nil {
			return nil, fmt.Errorf("sheet: column width: %w", err)
		}
	}

	if w.err != nil {
		return nil, w.err
	}
	return f, nil
}

// Write builds the workbook and streams it to out.
func Write(out io.Writer, inv invoice.Invoice, plan layout.Plan) error {
	f, err := Build(inv, plan)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("sheet: write: %w", err)
	}
	return nil
}

type styleKey struct {
	align layout.Align
	bold  bool
}

// writer keeps the first error and caches one style per alignment/weight.
type writer struct {
	f      *excelize.File
	styles map[styleKey]int
	err    error
}

func (w *writer) style(align layout.Align, bold bool) int {
	key := styleKey{align, bold}
	if id, ok := w.styles[key]; ok {
		return id
	}

	horizontal := map[layout.Align]string{
		layout.AlignLeft:   "left",
		layout.AlignCenter: "center",
		layout.AlignRight:  "right",
	}[align]
	id, err := w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: bold, Family: "Times New Roman", Size: 10},
		Alignment: &excelize.Alignment{Horizontal: horizontal, Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil && w.err == nil {
		w.err = fmt.Errorf("sheet: style: %w", err)
	}
	w.styles[key] = id
	return id
}

func (w *writer) set(row, col int, value string, align layout.Align, bold bool) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = fmt.Errorf("sheet: cell name: %w", err)
		return
	}
	if err := w.f.SetCellValue(SheetName, cell, value); err != nil {
		w.err = fmt.Errorf("sheet: set %s: %w", cell, err)
		return
	}
	if err := w.f.SetCellStyle(SheetName, cell, cell, w.style(align, bold)); err != nil {
		w.err = fmt.Errorf("sheet: style %s: %w", cell, err)
	}
}

func (w *writer) merge(row, fromCol, toCol int) {
	if w.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, row)
	to, _ := excelize.CoordinatesToCellName(toCol, row)
	if err := w.f.MergeCell(SheetName, from, to); err != nil {
		w.err = fmt.Errorf("sheet: merge %s:%s: %w", from, to, err)
	}
}
