// Package document composes the printable freight bill: header, title,
// party and caption blocks placed at absolute positions, the Particulars
// table paginated without splitting rows, and the bank footer.
//
// Underlines under the title, party and caption blocks are sized from the
// measured width of the text they sit under.
package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"freightbill/internal/invoice"
	"freightbill/internal/layout"
)

// FileName is the name the finished bill is saved under.
const FileName = "Bill.pdf"

const (
	titleText     = "Tax / Retail Invoice"
	transportText = "Transportation Charges as mentioned below"

	headerY     = 40.0
	tableStartY = 78.0

	// footer rule lengths are fixed, unlike the measured header underlines
	footerRuleWidth = 55.0
	branchRuleWidth = 70.0
	footerHeight    = 28.0
)

// Issuer holds the transporter details printed in the footer.
type Issuer struct {
	Company string
	Bank    string
	Branch  string
	Account string
	IFSC    string
	PAN     string
}

// Options fixes the page geometry and type sizes.
type Options struct {
	Font          string
	LeftMargin    float64
	RightMargin   float64
	TopMargin     float64
	BottomMargin  float64
	HeaderSize    float64
	TitleSize     float64
	PartySize     float64
	TransportSize float64
	FooterSize    float64
	RuleWidth     float64
	Table         TableStyle
	Columns       []layout.Column
}

// DefaultOptions returns the A4 bill layout: Times throughout, 15mm side
// margins. The table runs at 9pt so a ten-character truck number fits the
// Truck column on one line.
func DefaultOptions() Options {
	return Options{
		Font:          "Times",
		LeftMargin:    15,
		RightMargin:   15,
		TopMargin:     15,
		BottomMargin:  15,
		HeaderSize:    11,
		TitleSize:     18,
		PartySize:     11,
		TransportSize: 12,
		FooterSize:    10,
		RuleWidth:     0.2,
		Table: TableStyle{
			Font:            "Times",
			FontSize:        9,
			CaptionFontSize: 11,
			Padding:         1,
			LineWidth:       0.4,
			LineSpacing:     1.15,
		},
		Columns: layout.DefaultColumns(),
	}
}

// Result describes where things landed on the pages.
type Result struct {
	Pages    int
	Rows     []RowPlacement
	TableEnd float64 // Y below the last table row, on the last table page
	FooterY  float64 // baseline of the first footer line
}

// Composer turns an invoice snapshot into a finished document.
type Composer struct {
	opts   Options
	issuer Issuer
	log    zerolog.Logger
}

// New returns a Composer. Zero-valued options are not filled in; start from
// DefaultOptions.
func New(opts Options, issuer Issuer, log zerolog.Logger) *Composer {
	return &Composer{opts: opts, issuer: issuer, log: log}
}

// Render composes inv into a new A4 document and returns the PDF bytes. A
// failed build returns no bytes at all.
func (c *Composer) Render(inv invoice.Invoice) ([]byte, error) {
	id := uuid.NewString()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bill "+inv.BillNumber, true)
	pdf.SetAuthor(c.issuer.Company, true)
	pdf.SetCreator("freightbill", true)
	pdf.SetSubject("document "+id, true)

	res, err := c.Compose(pdf, inv)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document: write pdf: %w", err)
	}

	c.log.Info().
		Str("document_id", id).
		Str("bill", inv.BillNumber).
		Int("items", len(inv.Items)).
		Int("pages", res.Pages).
		Int("bytes", buf.Len()).
		Msg("bill rendered")
	return buf.Bytes(), nil
}

// Compose draws inv onto c, starting with a fresh page.
func (c *Composer) Compose(cv Canvas, inv invoice.Invoice) (Result, error) {
	plan, err := layout.Build(inv, c.opts.Columns)
	if err != nil {
		return Result{}, fmt.Errorf("document: plan table: %w", err)
	}

	cv.SetAutoPageBreak(false, 0)
	cv.AddPage()
	p := &pen{c: cv, tr: cv.UnicodeTranslatorFromDescriptor(""), font: c.opts.Font}
	pageW, pageH := cv.GetPageSize()
	left, right := c.opts.LeftMargin, pageW-c.opts.RightMargin
	center := pageW / 2

	widths, err := plan.Widths(right - left)
	if err != nil {
		return Result{}, fmt.Errorf("document: column widths: %w", err)
	}

	cv.SetLineWidth(c.opts.RuleWidth)

	p.setFont("", c.opts.HeaderSize)
	p.text(left, headerY, "Bill No : "+inv.BillNumber)
	p.textRight(right, headerY, "Date : "+inv.DisplayDate())

	p.setFont("B", c.opts.TitleSize)
	titleY := headerY + 12
	p.underlineCentered(center, titleY, titleText, 2.5)

	p.setFont("B", c.opts.PartySize)
	partyY := titleY + 9
	p.underlineLeft(left, partyY, "Party Name : "+inv.PartyName, 2)

	p.setFont("B", c.opts.TransportSize)
	transportY := partyY + 9
	p.underlineCentered(center, transportY, transportText, 2.5)

	tw := &tableWriter{
		c:      cv,
		tr:     p.tr,
		style:  c.opts.Table,
		widths: widths,
		x:      left,
		top:    c.opts.TopMargin,
		bottom: pageH - c.opts.BottomMargin,
	}
	tableEnd, err := tw.render(plan, tableStartY)
	if err != nil {
		return Result{}, fmt.Errorf("document: table: %w", err)
	}
	c.log.Debug().
		Int("rows", len(tw.placed)).
		Int("pages", cv.PageNo()).
		Float64("table_end", tableEnd).
		Msg("table placed")

	footerY := tableEnd + 16
	if footerY+footerHeight > pageH-c.opts.BottomMargin {
		cv.AddPage()
		footerY = c.opts.TopMargin + 6
		c.log.Debug().Int("page", cv.PageNo()).Msg("footer moved to new page")
	}
	cv.SetLineWidth(c.opts.RuleWidth)
	c.footer(p, left, right, footerY)

	if err := cv.Error(); err != nil {
		return Result{}, fmt.Errorf("document: canvas: %w", err)
	}
	return Result{
		Pages:    cv.PageNo(),
		Rows:     tw.placed,
		TableEnd: tableEnd,
		FooterY:  footerY,
	}, nil
}

// footer prints the bank block on the left and the signatory on the right.
func (c *Composer) footer(p *pen, left, right, y float64) {
	p.setFont("B", c.opts.FooterSize)
	p.text(left, y, c.issuer.Bank)
	p.c.Line(left, y+1.5, left+footerRuleWidth, y+1.5)

	p.textRight(right, y, "For, "+c.issuer.Company)
	p.c.Line(right-footerRuleWidth, y+1.5, right, y+1.5)

	p.text(left, y+7, "BRANCH : "+c.issuer.Branch)
	p.c.Line(left, y+8.5, left+branchRuleWidth, y+8.5)

	p.setFont("", c.opts.FooterSize)
	p.text(left, y+14, "A/C No : "+c.issuer.Account)
	p.text(left, y+20, "IFSC : "+c.issuer.IFSC)
	p.text(left, y+26, "PAN : "+c.issuer.PAN)
}

// pen draws translated text in the composer's font family.
type pen struct {
	c    Canvas
	tr   func(string) string
	font string
}

func (p *pen) setFont(style string, size float64) {
	p.c.SetFont(p.font, style, size)
}

// width measures s exactly as it will be rendered.
func (p *pen) width(s string) float64 {
	return p.c.GetStringWidth(p.tr(s))
}

func (p *pen) text(x, y float64, s string) {
	p.c.Text(x, y, p.tr(s))
}

func (p *pen) textRight(right, y float64, s string) {
	p.text(right-p.width(s), y, s)
}

// underlineCentered centers s on cx and rules it gap mm below the baseline.
func (p *pen) underlineCentered(cx, y float64, s string, gap float64) {
	w := p.width(s)
	p.text(cx-w/2, y, s)
	p.c.Line(cx-w/2, y+gap, cx+w/2, y+gap)
}

// underlineLeft prints s from x and rules it gap mm below the baseline.
func (p *pen) underlineLeft(x, y float64, s string, gap float64) {
	w := p.width(s)
	p.text(x, y, s)
	p.c.Line(x, y+gap, x+w, y+gap)
}
