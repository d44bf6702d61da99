package document

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	VATAmount float64 `json:"vatAmount"`
	Total     float64 `json:"total"`
}

// Round2 rounds to cents on the exact binary value of v, ties away from
// zero: 25.005 (stored as 25.00499...) becomes 25.00, 0.125 becomes 0.13.
func Round2(v float64) float64 {
	return cents(v).InexactFloat64()
}

func cents(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	// 40 digits hold the binary expansion far enough to never create a tie
	// that the float does not have.
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 40, 64)).Round(2)
}

func LineAmount(quantity, rate float64) float64 {
	return Round2(quantity * rate)
}

// ComputeTotals sums rounded line amounts as decimals, so the result does
// not depend on item order and cannot overflow. Amounts are derived from
// quantity and rate, never read back from the item. The VAT amount is left
// unrounded.
func ComputeTotals(items []LineItem, vatEnabled bool, vatRatePercent float64) Totals {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(cents(it.Quantity.Float() * it.Rate.Float()))
	}
	subtotal := sum.InexactFloat64()

	var vat float64
	if vatEnabled {
		vat = subtotal * Number(vatRatePercent).Float() / 100
	}
	return Totals{
		Subtotal:  subtotal,
		VATAmount: vat,
		Total:     subtotal + vat,
	}
}
