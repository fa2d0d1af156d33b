package invoice

// Totals arithmetic. This is the contract the form layer maintains before
// submitting a Record:
//
//	amount     = quantity * rate        (per line item)
//	subtotal   = sum of amounts
//	total      = subtotal + tax
//	balanceDue = total - paid
//
// The PDF layout engine never calls these - it renders whatever the Record
// carries, self-contradictory or not. They exist for callers and tests.

func Amount(quantity float64, rate float64) float64 {
	return quantity * rate
}

func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Amount
	}
	return sum
}

func Total(subtotal float64, tax float64) float64 {
	return subtotal + tax
}

func BalanceDue(total float64, paid float64) float64 {
	return total - paid
}

// Recompute refreshes every derived field of r in place.
// For callers that want the invariants re-established server-side
// before rendering. Never applied implicitly.
func Recompute(r *Record) {
	for i := range r.Items {
		r.Items[i].Amount = Amount(r.Items[i].Quantity, r.Items[i].Rate)
	}
	r.Subtotal = Subtotal(r.Items)
	r.Total = Total(r.Subtotal, r.Tax)
	r.BalanceDue = BalanceDue(r.Total, r.Paid)
}
