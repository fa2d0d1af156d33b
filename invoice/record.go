package invoice

import "fmt"

// LineItem - one billable row of an invoice.
// Amount is caller-supplied and expected to equal Quantity * Rate;
// the renderer displays it verbatim and never recomputes it.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"` // >= 1, enforced by the form layer
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// Record - the invoice data model, one submission of the invoice form.
// Dates and terms are opaque display strings, never parsed.
// Optional fields are empty strings / empty slices.
// Totals are caller-maintained (see totals.go); rendering trusts them as given.
type Record struct {
	InvoiceNumber string `json:"invoiceNumber"`
	Date          string `json:"date"`
	PaymentTerms  string `json:"paymentTerms"`
	DueDate       string `json:"dueDate"`
	PONumber      string `json:"poNumber,omitempty"`

	From   string `json:"from"`
	BillTo string `json:"billTo"`
	ShipTo string `json:"shipTo,omitempty"`

	Items []LineItem `json:"items"`

	Notes string `json:"notes,omitempty"`
	Terms string `json:"terms,omitempty"`

	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	Paid       float64 `json:"paid"`
	BalanceDue float64 `json:"balanceDue"`
}

// Filename - download filename for the rendered PDF
func (r *Record) Filename() string {
	number := r.InvoiceNumber
	if number == "" {
		number = "unknown"
	}
	return fmt.Sprintf("invoice-%s.pdf", number)
}
