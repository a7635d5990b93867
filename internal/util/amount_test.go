package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractAmounts(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "euro prefix", input: "Price €38.00", want: []string{"38"}},
		{name: "euro suffix comma decimal", input: "38,50 €", want: []string{"38.5"}},
		{name: "lei suffix thousands space", input: "Preț: 1 234,50 lei", want: []string{"1234.5"}},
		{name: "thousands dot", input: "EUR 1.000", want: []string{"1000"}},
		{name: "thousands comma with decimals", input: "$1,299.99", want: []string{"1299.99"}},
		{name: "original and discounted", input: "€45.00 €38.00", want: []string{"45", "38"}},
		{name: "stock count before price", input: "M 5 189 lei", want: []string{"189"}},
		{name: "numeric size before price", input: "XL 12 250 lei", want: []string{"250"}},
		{name: "nbsp thousands", input: "1\u00A0250 lei", want: []string{"1250"}},
		{name: "unmarked numbers ignored", input: "110mm 4 inch", want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractAmounts(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
			for i := range got {
				if !got[i].Equal(decimal.RequireFromString(tc.want[i])) {
					t.Fatalf("amount %d: got %s want %s", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestPickCanonicalAmount(t *testing.T) {
	if PickCanonicalAmount(nil) != nil {
		t.Fatal("expected nil for no amounts")
	}
	got := CanonicalAmount("was €45.00, now €38.00")
	if got == nil || !got.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("got %v", got)
	}
}

func TestAmountsIn(t *testing.T) {
	got := PickCanonicalAmount(AmountsIn([]string{"110", "189 lei", "stoc 4"}))
	if got == nil || !got.Equal(decimal.NewFromInt(189)) {
		t.Fatalf("got %v", got)
	}
	if len(AmountsIn(nil)) != 0 {
		t.Fatal("expected no amounts")
	}
}

func TestStripAmounts(t *testing.T) {
	if got := NormalizeSpaces(StripAmounts("M €38.00")); got != "M" {
		t.Fatalf("got %q", got)
	}
}
