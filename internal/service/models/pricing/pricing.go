package pricing

import (
	"errors"
	"math"
)

var ErrInvalidInput = errors.New("invalid pricing input")

// Input holds the raw charge components for one order. Monetary values are
// minor units (paise) and must be non-negative; percentages are in [0, 100].
type Input struct {
	BasePriceCents  int64   `json:"basePrice"`
	AddOnPriceCents []int64 `json:"addOnPrices,omitempty"`
	DiscountPercent float64 `json:"discountPercent"`
	TaxPercent      float64 `json:"taxPercent"`
}

// Result is the computed charge breakdown. All amounts are non-negative and
// Total = Subtotal - Discount + Tax holds on the rounded figures.
type Result struct {
	SubtotalCents int64 `json:"subtotal"`
	DiscountCents int64 `json:"discountAmount"`
	TaxableCents  int64 `json:"taxableAmount"`
	TaxCents      int64 `json:"taxAmount"`
	TotalCents    int64 `json:"total"`
}

// Compute turns pricing inputs into a charge breakdown. The tax is computed
// on the unrounded discount chain; the discount and tax amounts are each
// rounded half-up once, and the taxable amount and total are reassembled from
// the rounded components so the breakdown always adds up. Deterministic and
// safe for concurrent use.
func Compute(in Input) (Result, error) {
	if in.BasePriceCents < 0 {
		return Result{}, ErrInvalidInput
	}
	if !validPercent(in.DiscountPercent) || !validPercent(in.TaxPercent) {
		return Result{}, ErrInvalidInput
	}

	subtotal := in.BasePriceCents
	for _, p := range in.AddOnPriceCents {
		if p < 0 {
			return Result{}, ErrInvalidInput
		}
		subtotal += p
	}

	discountExact := float64(subtotal) * in.DiscountPercent / 100
	taxableExact := float64(subtotal) - discountExact
	taxExact := taxableExact * in.TaxPercent / 100

	discount := roundHalfUp(discountExact)
	tax := roundHalfUp(taxExact)

	return Result{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TaxableCents:  subtotal - discount,
		TaxCents:      tax,
		TotalCents:    subtotal - discount + tax,
	}, nil
}

func validPercent(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 100
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
