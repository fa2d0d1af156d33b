package fpdf

import (
	"bytes"
	"io"
	"strings"

	lowimpl "github.com/jung-kurt/gofpdf"

	"github.com/zeptools/invoicegen/pdfs"
	"github.com/zeptools/invoicegen/rw"
)

// Writer - pdfs.Writer backed by gofpdf.
// Pages are fixed templates: auto page break is off, margins are zero,
// all placement is absolute in points from the top-left corner.
type Writer struct {
	paperSize   pdfs.PaperSize
	orientation string

	// implementation details, not exported
	internal *lowimpl.Fpdf
}

// Ensure fpdf.Writer implements pdfs.Writer interface
var _ pdfs.Writer = (*Writer)(nil)

func NewWriter(paperSize pdfs.PaperSize, orientation string) *Writer {
	internal := lowimpl.New(orientation, "pt", paperSize.Name, "")
	internal.SetMargins(0, 0, 0)
	internal.SetAutoPageBreak(false, 0)
	return &Writer{
		paperSize:   paperSize,
		orientation: orientation,
		internal:    internal,
	}
}

func (w *Writer) PaperSize() pdfs.PaperSize {
	return w.paperSize
}

func (w *Writer) Orientation() string {
	return w.orientation
}

func (w *Writer) AddBlankPage() {
	w.internal.AddPage()
}

func (w *Writer) SetFont(family string, style string, size float64) {
	w.internal.SetFont(family, style, size)
}

func (w *Writer) Text(x float64, y float64, text string) {
	w.internal.Text(x, y, text)
}

// TextBox wraps text to width using the current font and steps each line
// down by lineHeight. Explicit newlines in text also break lines.
func (w *Writer) TextBox(x float64, y float64, width float64, lineHeight float64, text string) {
	for _, part := range strings.Split(text, "\n") {
		if part == "" {
			y += lineHeight
			continue
		}
		for _, line := range w.internal.SplitLines([]byte(part), width) {
			w.internal.Text(x, y, string(line))
			y += lineHeight
		}
	}
}

func (w *Writer) SetDrawColor(r int, g int, b int) {
	w.internal.SetDrawColor(r, g, b)
}

func (w *Writer) SetLineWidth(width float64) {
	w.internal.SetLineWidth(width)
}

func (w *Writer) Line(x1 float64, y1 float64, x2 float64, y2 float64) {
	w.internal.Line(x1, y1, x2, y2)
}

func (w *Writer) Err() error {
	if w.internal.Err() {
		return w.internal.Error()
	}
	return nil
}

// WriteTo finalizes the document into out. One-shot: the writer is closed afterwards.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	cw := rw.NewCountWriter(out)
	if err := w.internal.Output(cw); err != nil {
		return cw.BytesWritten(), err
	}
	return cw.BytesWritten(), nil
}

func (w *Writer) WriteToFile(filepath string) error {
	return w.internal.OutputFileAndClose(filepath)
}

// ProduceBytes finalizes the document and returns the complete buffer.
// Either the whole byte stream or an error, never partial output.
func (w *Writer) ProduceBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.internal.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
