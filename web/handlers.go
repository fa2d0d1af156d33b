package web

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/zeptools/invoicegen/cache"
	"github.com/zeptools/invoicegen/invoice"
	"github.com/zeptools/invoicegen/layout"
	"github.com/zeptools/invoicegen/requests"
	"github.com/zeptools/invoicegen/responses"
	"github.com/zeptools/invoicegen/tpl"
)

// request bodies beyond this are rejected before decoding
const maxInvoiceBodyBytes = 1 << 20 // 1MB

// GenerateInvoiceHandler - POST endpoint: invoice record JSON in,
// PDF attachment out. Field validation is the form's job; whatever decodes
// is rendered as-is. All render failures map to one generic 500.
type GenerateInvoiceHandler struct {
	Cache    *cache.RenderCache                    // optional. nil = render every time
	Generate func(*invoice.Record) ([]byte, error) // nil = layout.GenerateInvoicePDF
}

func (h *GenerateInvoiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requests.HasBody(r) {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "missing invoice payload")
		return
	}
	defer func() {
		if closeErr := r.Body.Close(); closeErr != nil {
			log.Printf("[ERROR] %v", closeErr)
		}
	}()

	bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInvoiceBodyBytes))
	if err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "failed to read invoice payload")
		return
	}

	var rec invoice.Record
	if err = json.Unmarshal(bodyBytes, &rec); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "invalid invoice payload")
		return
	}

	if h.Cache != nil {
		if pdfBytes, found := h.Cache.Get(r.Context(), bodyBytes); found {
			responses.WritePDFAttachment(w, rec.Filename(), pdfBytes)
			return
		}
	}

	generate := h.Generate
	if generate == nil {
		generate = layout.GenerateInvoicePDF
	}

	pdfBytes, err := generate(&rec)
	if err != nil {
		log.Printf("[ERROR] generating invoice %q: %v", rec.InvoiceNumber, err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Cache != nil {
		h.Cache.Put(r.Context(), bodyBytes, pdfBytes)
	}

	responses.WritePDFAttachment(w, rec.Filename(), pdfBytes)
}

// FormHandler serves the invoice form page.
type FormHandler struct {
	Templates   *tpl.HTMLTemplateStore
	TemplateKey string // e.g. "index"
}

func (h *FormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t, ok := h.Templates.Get(h.TemplateKey)
	if !ok {
		log.Printf("[ERROR] form template %q not loaded", h.TemplateKey)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, nil); err != nil {
		log.Printf("[ERROR] rendering form template: %v", err)
	}
}
