package web

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zeptools/invoicegen/invoice"
	"github.com/zeptools/invoicegen/layout"
	"github.com/zeptools/invoicegen/routing"
	"github.com/zeptools/invoicegen/sec"
	"github.com/zeptools/invoicegen/throttle"
	"github.com/zeptools/invoicegen/tpl"
)

const sampleInvoiceJSON = `{
	"invoiceNumber": "INV-001",
	"date": "2024-01-01",
	"paymentTerms": "Net 30",
	"dueDate": "2024-01-31",
	"from": "Acme Corporation",
	"billTo": "Bob's Hardware",
	"items": [
		{"name": "Widget", "quantity": 2, "rate": 5, "amount": 10}
	],
	"subtotal": 10,
	"tax": 1,
	"total": 11,
	"paid": 0,
	"balanceDue": 11
}`

func postInvoice(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate-invoice", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGenerateInvoiceHandler(t *testing.T) {
	h := &GenerateInvoiceHandler{}
	rec := postInvoice(h, sampleInvoiceJSON)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	want := `attachment; filename="invoice-INV-001.pdf"`
	if got := rec.Header().Get("Content-Disposition"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected PDF magic signature")
	}
}

func TestGenerateInvoiceHandlerUnknownFilename(t *testing.T) {
	h := &GenerateInvoiceHandler{}
	rec := postInvoice(h, `{"items": []}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := `attachment; filename="invoice-unknown.pdf"`
	if got := rec.Header().Get("Content-Disposition"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGenerateInvoiceHandlerBadJSON(t *testing.T) {
	h := &GenerateInvoiceHandler{}
	for _, body := range []string{"", "{", `"not an object"`} {
		rec := postInvoice(h, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); got != "application/json" {
			t.Fatalf("body %q: expected JSON error, got %q", body, got)
		}
	}
}

func TestGenerateInvoiceHandlerRenderFailure(t *testing.T) {
	h := &GenerateInvoiceHandler{
		Generate: func(rec *invoice.Record) ([]byte, error) {
			return nil, layout.ErrRenderFailed
		},
	}
	rec := postInvoice(h, sampleInvoiceJSON)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected JSON error body, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Fatalf("expected generic error message, got %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "render") {
		t.Fatalf("error body must not leak render details, got %s", rec.Body.String())
	}
}

func TestGenerateInvoiceHandlerBodilessMethod(t *testing.T) {
	h := &GenerateInvoiceHandler{}
	req := httptest.NewRequest(http.MethodGet, "/generate-invoice", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGenerateInvoiceHandlerThrottled(t *testing.T) {
	buckets := throttle.NewBucketStore[string](context.Background(), time.Minute, time.Hour)
	buckets.SetBucketGroup("pdfgen", &throttle.BucketConf{
		Burst:     1,
		Increment: 1,
		Period:    time.Hour,
	})
	tw := &routing.ThrottleWrapper{Buckets: buckets, GroupID: "pdfgen"}
	handler := tw.Wrap(&GenerateInvoiceHandler{})

	if rec := postInvoice(handler, sampleInvoiceJSON); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := postInvoice(handler, sampleInvoiceJSON); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
}

func TestGenerateInvoiceHandlerAuth(t *testing.T) {
	secret := []byte("test-secret")
	aw := &routing.AuthWrapper{Secret: secret}
	handler := aw.Wrap(&GenerateInvoiceHandler{})

	t.Run("missing token", func(t *testing.T) {
		if rec := postInvoice(handler, sampleInvoiceJSON); rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/generate-invoice", strings.NewReader(sampleInvoiceJSON))
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
	t.Run("valid token", func(t *testing.T) {
		signed, err := sec.GenerateHS256SignedJWT(secret, "invoicegen", "form-app", time.Minute)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/generate-invoice", strings.NewReader(sampleInvoiceJSON))
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestFormHandler(t *testing.T) {
	store := tpl.NewHTMLTemplateStore()
	store.Base["index"] = template.Must(template.New("index").Parse("<html><form></form></html>"))
	h := &FormHandler{Templates: store, TemplateKey: "index"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("expected html content type, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "<form>") {
		t.Fatal("expected form markup")
	}
}

func TestFormHandlerMissingTemplate(t *testing.T) {
	h := &FormHandler{Templates: tpl.NewHTMLTemplateStore(), TemplateKey: "index"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
