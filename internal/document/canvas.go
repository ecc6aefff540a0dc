package document

// Canvas is the page surface the composer draws on, in millimetres.
// *fpdf.Fpdf satisfies it; tests wrap one to record what gets drawn.
type Canvas interface {
	AddPage()
	PageNo() int
	GetPageSize() (width, height float64)
	SetAutoPageBreak(auto bool, margin float64)

	SetFont(familyStr, styleStr string, size float64)
	SetCellMargin(margin float64)
	SetLineWidth(width float64)
	GetStringWidth(s string) float64
	SplitLines(txt []byte, w float64) [][]byte
	UnicodeTranslatorFromDescriptor(cpStr string) func(string) string

	SetXY(x, y float64)
	Text(x, y float64, txtStr string)
	Line(x1, y1, x2, y2 float64)
	Rect(x, y, w, h float64, styleStr string)
	CellFormat(w, h float64, txtStr, borderStr string, ln int, alignStr string, fill bool, link int, linkStr string)

	Error() error
}

// ptToMM converts a font size in points to millimetres.
func ptToMM(pt float64) float64 {
	return pt * 25.4 / 72
}
