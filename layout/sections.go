package layout

import (
	"strconv"

	"github.com/zeptools/invoicegen/invoice"
)

// Template coordinates, in points on a Letter page (612x792).
const (
	tableLeft  = 50.0
	tableRight = 550.0

	headerX = 450.0
	headerY = 50.0

	infoX    = 450.0
	infoTop  = 100.0
	infoStep = 15.0

	billingX        = 50.0
	billingTop      = 100.0
	billingBlockGap = 80.0 // fixed offsets, never compacted when a block is absent
	billingWidth    = 200.0

	tableTop     = 325.0
	colItemX     = 50.0
	colDescX     = 150.0
	colQtyX      = 350.0
	colRateX     = 430.0
	colAmountX   = 510.0
	tableRowStep = 20.0
	descWidth    = 180.0

	totalsLabelX = 400.0
	totalsValueX = 500.0
	totalsTop    = 480.0 // fixed; independent of how many rows the table drew
	totalsStep   = 15.0

	footerX        = 50.0
	footerTop      = 600.0
	footerWidth    = 500.0
	footerNotesGap = 60.0 // Terms shifts down by this only when Notes rendered

	labelBodyGap = 15.0
	lineHeight   = 15.0

	titleFontSize   = 20.0
	bodyFontSize    = 12.0
	tableFontSize   = 10.0
	rowFontSize     = 9.0
	balanceFontSize = 12.0
)

func renderHeader(ctx *Context) {
	ctx.setFont(titleFontSize)
	ctx.W.Text(headerX, headerY, "INVOICE")
	ctx.setFont(bodyFontSize)
}

// renderInvoiceInfo - right-aligned identification block below the header.
// PO Number is an extra fifth line, present only when supplied.
func renderInvoiceInfo(ctx *Context, rec *invoice.Record) {
	ctx.W.Text(infoX, infoTop, "Invoice #: "+rec.InvoiceNumber)
	ctx.W.Text(infoX, infoTop+infoStep, "Date: "+rec.Date)
	ctx.W.Text(infoX, infoTop+2*infoStep, "Payment Terms: "+rec.PaymentTerms)
	ctx.W.Text(infoX, infoTop+3*infoStep, "Due Date: "+rec.DueDate)
	if rec.PONumber != "" {
		ctx.W.Text(infoX, infoTop+4*infoStep, "PO Number: "+rec.PONumber)
	}
}

// renderBillingInfo - From / Bill To / Ship To sub-blocks on the left band.
// Each block sits at its own fixed offset whether or not earlier blocks
// rendered; an absent From does not pull Bill To upwards.
func renderBillingInfo(ctx *Context, rec *invoice.Record) {
	if rec.From != "" {
		renderPartyBlock(ctx, billingTop, "From:", rec.From)
	}
	if rec.BillTo != "" {
		renderPartyBlock(ctx, billingTop+billingBlockGap, "Bill To:", rec.BillTo)
	}
	if rec.ShipTo != "" {
		renderPartyBlock(ctx, billingTop+2*billingBlockGap, "Ship To:", rec.ShipTo)
	}
}

func renderPartyBlock(ctx *Context, y float64, label string, body string) {
	ctx.W.Text(billingX, y, label)
	ctx.W.TextBox(billingX, y+labelBodyGap, billingWidth, lineHeight, body)
}

// renderItemsTable - header row, divider, one row per line item in input
// order with 1-based row labels, closing divider at the final row cursor.
func renderItemsTable(ctx *Context, rec *invoice.Record) {
	ctx.setFont(tableFontSize)
	ctx.W.Text(colItemX, tableTop, "Item")
	ctx.W.Text(colDescX, tableTop, "Description")
	ctx.W.Text(colQtyX, tableTop, "Qty")
	ctx.W.Text(colRateX, tableTop, "Rate")
	ctx.W.Text(colAmountX, tableTop, "Amount")

	ctx.W.SetDrawColor(170, 170, 170)
	ctx.W.SetLineWidth(1)
	ctx.W.Line(tableLeft, tableTop+15, tableRight, tableTop+15)

	y := tableTop + 25
	ctx.setFont(rowFontSize)
	for i, item := range rec.Items {
		ctx.W.Text(colItemX, y, strconv.Itoa(i+1))
		ctx.W.TextBox(colDescX, y, descWidth, lineHeight, item.Name)
		ctx.W.Text(colQtyX, y, FormatQuantity(item.Quantity))
		ctx.W.Text(colRateX, y, FormatUSD(item.Rate))
		ctx.W.Text(colAmountX, y, FormatUSD(item.Amount))
		y += tableRowStep
	}

	ctx.W.Line(tableLeft, y, tableRight, y)
}

// renderTotals - caller-supplied totals, displayed verbatim.
func renderTotals(ctx *Context, rec *invoice.Record) {
	ctx.setFont(tableFontSize)
	rows := []struct {
		label string
		value float64
	}{
		{"Subtotal:", rec.Subtotal},
		{"Tax:", rec.Tax},
		{"Total:", rec.Total},
		{"Paid:", rec.Paid},
	}
	for i, row := range rows {
		y := totalsTop + float64(i)*totalsStep
		ctx.W.Text(totalsLabelX, y, row.label)
		ctx.W.Text(totalsValueX, y, FormatUSD(row.value))
	}

	ctx.setFont(balanceFontSize)
	ctx.W.Text(totalsLabelX, totalsTop+65, "Balance Due:")
	ctx.W.Text(totalsValueX, totalsTop+65, FormatUSD(rec.BalanceDue))
}

// renderFooter - optional Notes then Terms. Terms starts at the base offset
// and moves down only when Notes was actually rendered above it.
func renderFooter(ctx *Context, rec *invoice.Record) {
	ctx.setFont(tableFontSize)
	y := footerTop
	if rec.Notes != "" {
		ctx.W.Text(footerX, y, "Notes:")
		ctx.W.TextBox(footerX, y+labelBodyGap, footerWidth, lineHeight, rec.Notes)
		y += footerNotesGap
	}
	if rec.Terms != "" {
		ctx.W.Text(footerX, y, "Terms:")
		ctx.W.TextBox(footerX, y+labelBodyGap, footerWidth, lineHeight, rec.Terms)
	}
}
