package document

import (
	"encoding/json"
	"math"
	"testing"
)

func TestComputeTotalsRoundsPerLine(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, Rate: 50},
		{Quantity: 1, Rate: 25.005},
	}

	got := ComputeTotals(items, true, 20)

	if got.Subtotal != 125.00 {
		t.Fatalf("subtotal = %v, want 125.00", got.Subtotal)
	}
	if math.Abs(got.VATAmount-25.00) > 1e-9 {
		t.Fatalf("vat = %v, want 25.00", got.VATAmount)
	}
	if math.Abs(got.Total-150.00) > 1e-9 {
		t.Fatalf("total = %v, want 150.00", got.Total)
	}
	if s := FormatMoney(EUR, got.Total); s != "€150.00" {
		t.Fatalf("formatted total = %q", s)
	}
}

func TestComputeTotalsVATDisabled(t *testing.T) {
	items := []LineItem{{Quantity: 3, Rate: 10.5}}

	got := ComputeTotals(items, false, 22)

	if got.VATAmount != 0 {
		t.Fatalf("vat = %v, want 0", got.VATAmount)
	}
	if got.Total != got.Subtotal || got.Subtotal != 31.5 {
		t.Fatalf("totals = %+v", got)
	}
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	items := []LineItem{
		{Quantity: 0.1, Rate: 0.7},
		{Quantity: 3, Rate: 19.99},
		{Quantity: 1, Rate: 0.2},
		{Quantity: 7, Rate: 1.15},
		{Quantity: 12.5, Rate: 3.333},
	}
	want := ComputeTotals(items, true, 20)

	reversed := make([]LineItem, len(items))
	for i := range items {
		reversed[len(items)-1-i] = items[i]
	}
	rotated := append(append([]LineItem{}, items[2:]...), items[:2]...)

	for _, perm := range [][]LineItem{reversed, rotated} {
		if got := ComputeTotals(perm, true, 20); got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil, true, 20)
	if got != (Totals{}) {
		t.Fatalf("got %+v, want zero totals", got)
	}
}

func TestComputeTotalsCoercesBadNumbers(t *testing.T) {
	raw := `[{"quantity":"2","rate":"abc"},{"quantity":null,"rate":4},{"quantity":"1.5","rate":"10"}]`
	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := ComputeTotals(items, false, 0)

	if got.Subtotal != 15 {
		t.Fatalf("subtotal = %v, want 15", got.Subtotal)
	}
}

func TestNormalizedRecomputesAmountsAndDefaults(t *testing.T) {
	d := MonetaryDocument{
		DocumentType: "quote",
		Currency:     "GBP",
		ShippingTerm: "FOB",
		LineItems:    []LineItem{{Quantity: 2, Rate: 1.005, Amount: 99, Unit: "LB"}},
	}

	n := d.Normalized()

	if n.DocumentType != TypeInvoice || n.Currency != EUR || n.ShippingTerm != ShippingCF {
		t.Fatalf("defaults not applied: %+v", n)
	}
	if n.LineItems[0].Unit != UnitNone {
		t.Fatalf("unit = %q", n.LineItems[0].Unit)
	}
	if n.LineItems[0].Amount != 2.01 {
		t.Fatalf("amount = %v, want 2.01", n.LineItems[0].Amount)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		25.005: 25.00,
		1.005:  1.00,
		2.675:  2.67,
		0.125:  0.13,
		1.236:  1.24,
		-1.5:   -1.5,
		-0.125: -0.13,
		0:      0,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
	if got := Round2(math.NaN()); got != 0 {
		t.Errorf("Round2(NaN) = %v", got)
	}
}

func TestLineAmountRoundsExactTiesUp(t *testing.T) {
	cases := []struct {
		qty, rate, want float64
	}{
		{5, 0.025, 0.13},
		{2.5, 1.25, 3.13},
		{1, 25.005, 25.00},
	}
	for _, c := range cases {
		if got := LineAmount(c.qty, c.rate); got != c.want {
			t.Errorf("LineAmount(%v, %v) = %v, want %v", c.qty, c.rate, got, c.want)
		}
	}
}

func TestComputeTotalsLargeAmounts(t *testing.T) {
	items := []LineItem{{Quantity: 1e9, Rate: 1e9}, {Quantity: 1e9, Rate: 1e9}}

	got := ComputeTotals(items, false, 0)

	if got.Subtotal != 2e18 || got.Total != 2e18 {
		t.Fatalf("totals = %+v, want 2e18", got)
	}
}
