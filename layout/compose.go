// Package layout renders an invoice.Record onto a single fixed-template
// Letter page. All placement is absolute in points from the top-left corner;
// there is no flow layout. Section positions do not react to content size:
// the totals block sits at a fixed y regardless of how many item rows were
// drawn, so very long item lists overlap it. That matches the upstream
// template; roughly seven rows fit cleanly above the totals.
package layout

import (
	"errors"
	"fmt"

	"github.com/zeptools/invoicegen/invoice"
	"github.com/zeptools/invoicegen/pdfs"
	"github.com/zeptools/invoicegen/pdfs/impls/fpdf"
)

// ErrRenderFailed - the single opaque failure category of PDF generation.
// Callers get this (wrapping the cause) no matter which drawing primitive broke.
var ErrRenderFailed = errors.New("layout: pdf generation failed")

const FontFamily = "Helvetica"

// Context - explicit drawing state threaded through the section renderers.
// No hidden cursor: every renderer computes its own absolute positions.
type Context struct {
	W          pdfs.Writer
	FontFamily string
	FontSize   float64
}

func (c *Context) setFont(size float64) {
	c.FontSize = size
	c.W.SetFont(c.FontFamily, "", size)
}

// Compose draws all invoice sections onto a fresh page of w, in fixed order.
// Missing optional fields simply produce no output for their fragment.
func Compose(w pdfs.Writer, rec *invoice.Record) {
	ctx := &Context{W: w, FontFamily: FontFamily}
	w.AddBlankPage()
	renderHeader(ctx)
	renderInvoiceInfo(ctx, rec)
	renderBillingInfo(ctx, rec)
	renderItemsTable(ctx, rec)
	renderTotals(ctx, rec)
	renderFooter(ctx, rec)
}

// GenerateInvoicePDF - the one public operation of the core: record in,
// complete PDF buffer out. Each call allocates its own writer; nothing is
// shared across invocations. No partial buffers: bytes are returned only
// after finalization succeeded.
func GenerateInvoicePDF(rec *invoice.Record) ([]byte, error) {
	return produce(fpdf.NewWriter(pdfs.LetterSize, pdfs.OrientationPortrait), rec)
}

func produce(w pdfs.Writer, rec *invoice.Record) ([]byte, error) {
	Compose(w, rec)
	buf, err := w.ProduceBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf, nil
}

// RenderInvoicePDFToFile renders rec straight to a PDF file at path.
// Used by the CLI render mode; the HTTP path always streams bytes.
func RenderInvoicePDFToFile(rec *invoice.Record, path string) error {
	w := fpdf.NewWriter(pdfs.LetterSize, pdfs.OrientationPortrait)
	Compose(w, rec)
	if err := w.WriteToFile(path); err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return nil
}
