// Package layout plans the "Particulars" table of a freight bill: the cell
// matrix handed to a rendering surface, with spans, alignment and emphasis
// decided per row kind, plus the column width policy.
//
// A Plan is surface independent. The PDF composer and the spreadsheet export
// both draw the same Plan.
package layout

import (
	"errors"
	"fmt"
	"strconv"

	"freightbill/internal/invoice"
	"freightbill/internal/numfmt"
	"freightbill/internal/words"
)

// ErrLayout reports geometry no renderer can honour.
var ErrLayout = errors.New("layout: table does not fit")

const (
	// ColumnCount is the width of the grid every row fills.
	ColumnCount = 10

	// MinAutoWidth is the narrowest the auto column may get, in millimetres.
	MinAutoWidth = 10.0

	CaptionText = "Particulars"
	TotalText   = "TOTAL"
	WordsPrefix = "Rupees : "
)

// Labels are the column header captions printed on the bill.
var Labels = [ColumnCount]string{
	"Sr No", "Date", "Truck", "From", "To", "Weight", "Rate", "Detention", "Amount", "Remarks",
}

// ShortLabels are the abbreviated captions the on-screen form uses for the
// same columns.
var ShortLabels = [ColumnCount]string{
	"Sr", "Date", "Truck", "From", "To", "Weight", "Rate", "Detention", "Amount", "Remarks",
}

// RowKind tags a row with its role. Styling derives from the kind, never
// from the text in the cells.
type RowKind int

const (
	KindCaption RowKind = iota
	KindColumnHeader
	KindItem
	KindTotal
	KindWords
)

func (k RowKind) String() string {
	switch k {
	case KindCaption:
		return "caption"
	case KindColumnHeader:
		return "header"
	case KindItem:
		return "item"
	case KindTotal:
		return "total"
	case KindWords:
		return "words"
	default:
		return "RowKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Emphasized reports whether rows of this kind print in bold.
func (k RowKind) Emphasized() bool {
	return k != KindItem
}

// Align is the horizontal alignment of a cell.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Code returns the single-letter alignment used by fpdf ("L", "C", "R").
func (a Align) Code() string {
	switch a {
	case AlignLeft:
		return "L"
	case AlignRight:
		return "R"
	default:
		return "C"
	}
}

// Cell is one rendered cell. Span is at least 1.
type Cell struct {
	Content string
	Span    int
	Align   Align
	Bold    bool
}

// Row is a tagged row of cells whose spans add up to ColumnCount.
type Row struct {
	Kind  RowKind
	Cells []Cell
}

// Emphasized reports whether the row prints in bold.
func (r Row) Emphasized() bool { return r.Kind.Emphasized() }

// Column is a width constraint in millimetres. A zero Width marks the auto
// column that absorbs the remaining horizontal space.
type Column struct {
	Label string
	Width float64
}

// DefaultColumns returns the bill's column set: narrow Sr, Date, Weight, Rate
// and Detention, wider Truck, From, To and Amount, auto Remarks. At 9pt Times
// a DD-MM-YYYY date, a ten-character truck number and a crore amount each fit
// their column on one line.
func DefaultColumns() []Column {
	widths := [ColumnCount]float64{8, 18, 22, 20, 20, 14, 18, 18, 20, 0}
	cols := make([]Column, ColumnCount)
	for i := range cols {
		cols[i] = Column{Label: Labels[i], Width: widths[i]}
	}
	return cols
}

// Plan is the full cell matrix of the table.
type Plan struct {
	Columns []Column
	Head    []Row
	Body    []Row
	Total   numfmt.Amount
}

// Build plans the table for inv. Item rows are numbered by position, so a
// stale stored SequenceNumber never reaches the page.
func Build(inv invoice.Invoice, cols []Column) (Plan, error) {
	if len(cols) != ColumnCount {
		return Plan{}, fmt.Errorf("%w: %d columns, want %d", ErrLayout, len(cols), ColumnCount)
	}

	head := make([]Row, 0, 2)
	header := Row{Kind: KindColumnHeader, Cells: make([]Cell, ColumnCount)}
	for i, col := range cols {
		header.Cells[i] = newCell(KindColumnHeader, col.Label, 1, AlignCenter)
	}
	head = append(head,
		Row{Kind: KindCaption, Cells: []Cell{newCell(KindCaption, CaptionText, ColumnCount, AlignCenter)}},
		header,
	)

	total := inv.Total()
	body := make([]Row, 0, len(inv.Items)+2)
	for i, item := range inv.Items {
		body = append(body, itemRow(i+1, item))
	}
	body = append(body,
		Row{Kind: KindTotal, Cells: []Cell{
			newCell(KindTotal, TotalText, 8, AlignLeft),
			newCell(KindTotal, numfmt.WithSuffix(total), 1, AlignRight),
			newCell(KindTotal, "", 1, AlignCenter),
		}},
		Row{Kind: KindWords, Cells: []Cell{
			newCell(KindWords, WordsPrefix+words.Rupees(total), ColumnCount, AlignLeft),
		}},
	)

	return Plan{
		Columns: append([]Column(nil), cols...),
		Head:    head,
		Body:    body,
		Total:   total,
	}, nil
}

func itemRow(seq int, item invoice.LineItem) Row {
	values := [ColumnCount]string{
		strconv.Itoa(seq),
		item.Date,
		item.Truck,
		item.From,
		item.To,
		item.Weight,
		numfmt.WithSuffix(item.Rate),
		numfmt.WithSuffix(item.Detention),
		numfmt.WithSuffix(item.Amount),
		item.Remarks,
	}
	row := Row{Kind: KindItem, Cells: make([]Cell, ColumnCount)}
	for i, v := range values {
		row.Cells[i] = newCell(KindItem, v, 1, AlignCenter)
	}
	return row
}

func newCell(kind RowKind, content string, span int, align Align) Cell {
	return Cell{Content: content, Span: span, Align: align, Bold: kind.Emphasized()}
}

// Widths resolves the column widths for a table tableWidth millimetres wide.
// Fixed columns keep their width; the auto column gets what is left.
func (p Plan) Widths(tableWidth float64) ([]float64, error) {
	widths := make([]float64, len(p.Columns))
	fixed := 0.0
	auto := -1
	for i, col := range p.Columns {
		switch {
		case col.Width < 0:
			return nil, fmt.Errorf("%w: column %q has negative width", ErrLayout, col.Label)
		case col.Width == 0:
			if auto >= 0 {
				return nil, fmt.Errorf("%w: more than one auto column", ErrLayout)
			}
			auto = i
		default:
			widths[i] = col.Width
			fixed += col.Width
		}
	}

	remaining := tableWidth - fixed
	if auto < 0 {
		if remaining < 0 {
			return nil, fmt.Errorf("%w: fixed columns need %.1fmm, have %.1fmm", ErrLayout, fixed, tableWidth)
		}
		return widths, nil
	}
	if remaining < MinAutoWidth {
		return nil, fmt.Errorf("%w: %.1fmm left for %q, need %.1fmm",
			ErrLayout, remaining, p.Columns[auto].Label, MinAutoWidth)
	}
	widths[auto] = remaining
	return widths, nil
}

// SpanWidth returns the width of a cell starting at column start and
// spanning span columns.
func SpanWidth(widths []float64, start, span int) float64 {
	w := 0.0
	for i := start; i < start+span && i < len(widths); i++ {
		w += widths[i]
	}
	return w
}
