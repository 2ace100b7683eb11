package pricing

import (
	"math"
	"testing"
)

func TestComputeBreakdown(t *testing.T) {
	res, err := Compute(Input{
		BasePriceCents:  1999,
		AddOnPriceCents: []int64{299, 199},
		DiscountPercent: 10,
		TaxPercent:      18,
	})
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	want := Result{
		SubtotalCents: 2497,
		DiscountCents: 250,
		TaxableCents:  2247,
		TaxCents:      405,
		TotalCents:    2652,
	}
	if res != want {
		t.Fatalf("Compute = %+v, want %+v", res, want)
	}
}

func TestComputeNoDiscountNoTax(t *testing.T) {
	res, err := Compute(Input{BasePriceCents: 500})
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if res.TotalCents != 500 || res.SubtotalCents != 500 {
		t.Fatalf("Compute = %+v, want subtotal and total of 500", res)
	}
}

func TestComputeDeterministic(t *testing.T) {
	in := Input{
		BasePriceCents:  1250,
		AddOnPriceCents: []int64{75, 125, 330},
		DiscountPercent: 7.5,
		TaxPercent:      12,
	}
	first, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := Compute(in)
		if err != nil {
			t.Fatalf("Compute returned error: %v", err)
		}
		if again != first {
			t.Fatalf("Compute diverged on run %d: %+v vs %+v", i, again, first)
		}
	}
}

func TestComputeBreakdownAddsUp(t *testing.T) {
	cases := []Input{
		{BasePriceCents: 1999, AddOnPriceCents: []int64{299, 199}, DiscountPercent: 10, TaxPercent: 18},
		{BasePriceCents: 1, DiscountPercent: 50, TaxPercent: 50},
		{BasePriceCents: 0, DiscountPercent: 100, TaxPercent: 100},
		{BasePriceCents: 99999, AddOnPriceCents: []int64{1}, DiscountPercent: 33.33, TaxPercent: 5},
	}
	for _, in := range cases {
		res, err := Compute(in)
		if err != nil {
			t.Fatalf("Compute(%+v) returned error: %v", in, err)
		}
		if res.TotalCents != res.SubtotalCents-res.DiscountCents+res.TaxCents {
			t.Fatalf("Compute(%+v): total %d does not add up from %+v", in, res.TotalCents, res)
		}
		if res.SubtotalCents < 0 || res.DiscountCents < 0 || res.TaxableCents < 0 || res.TaxCents < 0 || res.TotalCents < 0 {
			t.Fatalf("Compute(%+v): negative component in %+v", in, res)
		}
	}
}

func TestComputeHalfCentDiscountBoundary(t *testing.T) {
	res, err := Compute(Input{BasePriceCents: 100, DiscountPercent: 0.5})
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	want := Result{
		SubtotalCents: 100,
		DiscountCents: 1,
		TaxableCents:  99,
		TaxCents:      0,
		TotalCents:    99,
	}
	if res != want {
		t.Fatalf("Compute = %+v, want %+v", res, want)
	}
	if res.TaxableCents != res.SubtotalCents-res.DiscountCents {
		t.Fatalf("taxable %d != subtotal %d - discount %d", res.TaxableCents, res.SubtotalCents, res.DiscountCents)
	}
	if res.TotalCents != res.TaxableCents+res.TaxCents {
		t.Fatalf("total %d != taxable %d + tax %d", res.TotalCents, res.TaxableCents, res.TaxCents)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"negative base", Input{BasePriceCents: -1}},
		{"negative add-on", Input{BasePriceCents: 100, AddOnPriceCents: []int64{-5}}},
		{"discount below range", Input{BasePriceCents: 100, DiscountPercent: -1}},
		{"discount above range", Input{BasePriceCents: 100, DiscountPercent: 101}},
		{"tax below range", Input{BasePriceCents: 100, TaxPercent: -0.5}},
		{"tax above range", Input{BasePriceCents: 100, TaxPercent: 100.5}},
		{"discount NaN", Input{BasePriceCents: 1000, DiscountPercent: math.NaN()}},
		{"tax NaN", Input{BasePriceCents: 1000, TaxPercent: math.NaN()}},
		{"discount infinite", Input{BasePriceCents: 1000, DiscountPercent: math.Inf(1)}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compute(tt.in); err != ErrInvalidInput {
				t.Fatalf("Compute(%+v) error = %v, want ErrInvalidInput", tt.in, err)
			}
		})
	}
}
