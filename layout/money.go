package layout

import (
	"fmt"
	"strconv"
)

// FormatUSD renders a monetary value with a leading dollar sign and exactly
// two decimals. 9.999 rounds to "$10.00".
func FormatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatQuantity renders a quantity without trailing zeros: 2 -> "2", 2.5 -> "2.5".
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
