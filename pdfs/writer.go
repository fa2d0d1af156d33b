package pdfs

import "io"

// Writer - minimal, stream-style, append-only PDF writer. No page navigation.
// Coordinates are in points from the top-left corner of the current page.
type Writer interface {
	PaperSize() PaperSize
	Orientation() string

	AddBlankPage()

	SetFont(family string, style string, size float64)
	Text(x float64, y float64, text string)
	// TextBox writes text wrapped to width, one line per lineHeight step down from y.
	// Lines beyond the page bottom are clipped by the page, not flowed.
	TextBox(x float64, y float64, width float64, lineHeight float64, text string)

	SetDrawColor(r int, g int, b int)
	SetLineWidth(width float64)
	Line(x1 float64, y1 float64, x2 float64, y2 float64)

	// Err - first drawing error recorded so far, if any
	Err() error

	// Finalization is one-shot: after any of these, the writer accepts no more drawing.
	WriteTo(w io.Writer) (int64, error)
	WriteToFile(filepath string) error
	ProduceBytes() ([]byte, error)
}
