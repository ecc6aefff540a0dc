package document

import (
	"fmt"
	"strings"

	"freightbill/internal/layout"
)

// fitTolerance absorbs the rounding of the canvas' line splitter, which
// works in whole font units.
const fitTolerance = 0.01

// TableStyle controls the grid drawn for a layout.Plan.
type TableStyle struct {
	Font            string
	FontSize        float64 // points
	CaptionFontSize float64 // points, caption row only
	Padding         float64 // mm, on every side of a cell
	LineWidth       float64 // mm
	LineSpacing     float64 // line height as a multiple of the font size
}

// RowPlacement records where a table row ended up.
type RowPlacement struct {
	Kind   layout.RowKind
	Page   int
	Y      float64
	Height float64
}

// tableWriter draws a plan row by row. A row is never split: when it does
// not fit above the bottom limit it moves to a new page, where the head rows
// are repeated first.
type tableWriter struct {
	c      Canvas
	tr     func(string) string
	style  TableStyle
	widths []float64
	x      float64
	top    float64 // first Y on a continuation page
	bottom float64 // no row may extend below this Y

	placed []RowPlacement
}

// cellLines holds a cell's wrapped text, already translated for the canvas.
type cellLines struct {
	cell  layout.Cell
	width float64
	lines []string
}

func (w *tableWriter) fontSize(kind layout.RowKind) float64 {
	if kind == layout.KindCaption && w.style.CaptionFontSize > 0 {
		return w.style.CaptionFontSize
	}
	return w.style.FontSize
}

func (w *tableWriter) setFont(r layout.Row, c layout.Cell) {
	style := ""
	if c.Bold {
		style = "B"
	}
	w.c.SetFont(w.style.Font, style, w.fontSize(r.Kind))
}

func (w *tableWriter) lineHeight(kind layout.RowKind) float64 {
	return ptToMM(w.fontSize(kind)) * w.style.LineSpacing
}

// wrap splits every cell of r into lines and returns the row height.
func (w *tableWriter) wrap(r layout.Row) ([]cellLines, float64, error) {
	cells := make([]cellLines, 0, len(r.Cells))
	maxLines := 1
	col := 0
	for _, cell := range r.Cells {
		span := cell.Span
		if span < 1 {
			span = 1
		}
		width := layout.SpanWidth(w.widths, col, span)
		col += span

		content := width - 2*w.style.Padding
		if content <= 0 {
			return nil, 0, fmt.Errorf("%w: %.1fmm cell leaves no room inside %.1fmm padding",
				layout.ErrLayout, width, w.style.Padding)
		}

		w.setFont(r, cell)
		text := w.tr(cell.Content)
		// Lines may only break between words: a word wider than the cell
		// would otherwise be cut mid-character by the splitter.
		for _, word := range strings.Fields(text) {
			if ww := w.c.GetStringWidth(word); ww > content+fitTolerance {
				return nil, 0, fmt.Errorf("%w: %q needs %.1fmm, a %.1fmm column leaves %.1fmm",
					layout.ErrLayout, word, ww, width, content)
			}
		}
		var lines []string
		for _, l := range w.c.SplitLines([]byte(text), width) {
			lines = append(lines, string(l))
		}
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
		cells = append(cells, cellLines{cell: cell, width: width, lines: lines})
	}

	h := float64(maxLines)*w.lineHeight(r.Kind) + 2*w.style.Padding
	return cells, h, nil
}

// draw paints r at y with the given height.
func (w *tableWriter) draw(r layout.Row, cells []cellLines, y, h float64) {
	lineH := w.lineHeight(r.Kind)
	x := w.x
	for _, cl := range cells {
		w.c.Rect(x, y, cl.width, h, "D")

		w.setFont(r, cl.cell)
		blockTop := y + (h-float64(len(cl.lines))*lineH)/2
		for i, line := range cl.lines {
			w.c.SetXY(x, blockTop+float64(i)*lineH)
			w.c.CellFormat(cl.width, lineH, line, "", 0, cl.cell.Align.Code(), false, 0, "")
		}
		x += cl.width
	}

	w.placed = append(w.placed, RowPlacement{Kind: r.Kind, Page: w.c.PageNo(), Y: y, Height: h})
}

// render draws the plan starting at startY on the current page and returns
// the Y just below the last row.
func (w *tableWriter) render(plan layout.Plan, startY float64) (float64, error) {
	w.c.SetCellMargin(w.style.Padding)
	w.c.SetLineWidth(w.style.LineWidth)

	type wrapped struct {
		row   layout.Row
		cells []cellLines
		h     float64
	}
	wrapAll := func(rows []layout.Row) ([]wrapped, float64, error) {
		out := make([]wrapped, len(rows))
		total := 0.0
		for i, r := range rows {
			cells, h, err := w.wrap(r)
			if err != nil {
				return nil, 0, err
			}
			out[i] = wrapped{row: r, cells: cells, h: h}
			total += h
		}
		return out, total, nil
	}

	head, headH, err := wrapAll(plan.Head)
	if err != nil {
		return 0, err
	}
	body, _, err := wrapAll(plan.Body)
	if err != nil {
		return 0, err
	}

	room := w.bottom - w.top - headH
	for i, b := range body {
		if b.h > room {
			return 0, fmt.Errorf("%w: body row %d needs %.1fmm, a page holds %.1fmm",
				layout.ErrLayout, i+1, b.h, room)
		}
	}

	drawHead := func(y float64) float64 {
		for _, hr := range head {
			w.draw(hr.row, hr.cells, y, hr.h)
			y += hr.h
		}
		return y
	}

	y := startY
	if y+headH > w.bottom {
		w.c.AddPage()
		y = w.top
	}
	y = drawHead(y)

	for _, b := range body {
		if y+b.h > w.bottom {
			w.c.AddPage()
			y = drawHead(w.top)
		}
		w.draw(b.row, b.cells, y, b.h)
		y += b.h
	}

	return y, nil
}
