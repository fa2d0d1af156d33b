package layout

import "testing"

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "$10.00"},
		{9.999, "$10.00"}, // rounds to two decimals
		{0, "$0.00"},
		{1, "$1.00"},
		{11, "$11.00"},
		{2.5, "$2.50"},
		{1234.567, "$1234.57"},
	}
	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Fatalf("FormatUSD(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{1, "1"},
		{2.5, "2.5"},
		{10, "10"},
	}
	for _, tt := range tests {
		if got := FormatQuantity(tt.in); got != tt.want {
			t.Fatalf("FormatQuantity(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
