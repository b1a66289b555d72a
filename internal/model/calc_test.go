package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		raw          []RawItem
		taxRate      string
		discount     string
		wantItems    int
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name: "excludes zero quantity and empty description",
			raw: []RawItem{
				{Description: "Tile A", Quantity: "2", Rate: "150.00"},
				{Description: "Tile B", Quantity: "0", Rate: "200.00"},
				{Description: "", Quantity: "5", Rate: "10.00"},
			},
			taxRate:      "10",
			discount:     "20",
			wantItems:    1,
			wantSubtotal: "300.00",
			wantTax:      "30.00",
			wantTotal:    "310.00",
		},
		{
			name: "zero tax and zero discount",
			raw: []RawItem{
				{Description: "Basin", Quantity: "1", Rate: "450.50"},
				{Description: "Fitting kit", Quantity: "3", Rate: "12.25"},
			},
			taxRate:      "0",
			discount:     "",
			wantItems:    2,
			wantSubtotal: "487.25",
			wantTax:      "0.00",
			wantTotal:    "487.25",
		},
		{
			name: "discount exceeding subtotal yields negative total",
			raw: []RawItem{
				{Description: "Sample pack", Quantity: "1", Rate: "50"},
			},
			taxRate:      "0",
			discount:     "80",
			wantItems:    1,
			wantSubtotal: "50.00",
			wantTax:      "0.00",
			wantTotal:    "-30.00",
		},
		{
			name: "unparsable rate counts as zero but keeps the row",
			raw: []RawItem{
				{Description: "Grout", Quantity: "2", Rate: "abc"},
				{Description: "Tile C", Quantity: "1", Rate: "100"},
			},
			taxRate:      "5",
			discount:     "0",
			wantItems:    2,
			wantSubtotal: "100.00",
			wantTax:      "5.00",
			wantTotal:    "105.00",
		},
		{
			name: "unparsable quantity drops the row",
			raw: []RawItem{
				{Description: "Grout", Quantity: "two", Rate: "40"},
			},
			taxRate:      "10",
			discount:     "0",
			wantItems:    0,
			wantSubtotal: "0.00",
			wantTax:      "0.00",
			wantTotal:    "0.00",
		},
		{
			name: "negative rate drops the row",
			raw: []RawItem{
				{Description: "Refund line", Quantity: "1", Rate: "-10"},
			},
			taxRate:      "10",
			discount:     "0",
			wantItems:    0,
			wantSubtotal: "0.00",
			wantTax:      "0.00",
			wantTotal:    "0.00",
		},
		{
			name:         "no rows",
			raw:          nil,
			taxRate:      "18",
			discount:     "0",
			wantItems:    0,
			wantSubtotal: "0.00",
			wantTax:      "0.00",
			wantTotal:    "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.raw, tt.taxRate, tt.discount)

			assert.Len(t, got.Items, tt.wantItems)
			assert.Equal(t, tt.wantSubtotal, FormatAmount(got.Subtotal))
			assert.Equal(t, tt.wantTax, FormatAmount(got.TaxAmount))
			assert.Equal(t, tt.wantTotal, FormatAmount(got.Total))
		})
	}
}

func TestCalculateSubtotalMatchesItemSum(t *testing.T) {
	raw := []RawItem{
		{Description: "Tile A", Quantity: "2.5", Rate: "99.99"},
		{Description: "Tile B", Quantity: "7", Rate: "0"},
		{Description: "Sealant", Quantity: "3", Rate: "14.333"},
	}

	got := Calculate(raw, "12.5", "0")
	require.Len(t, got.Items, 3)

	sum := decimal.Zero
	for _, item := range got.Items {
		assert.True(t, item.Amount.Equal(item.Quantity.Mul(item.Rate)),
			"amount must equal quantity*rate for %q", item.Description)
		sum = sum.Add(item.Amount)
	}
	assert.True(t, got.Subtotal.Equal(sum), "subtotal %s != item sum %s", got.Subtotal, sum)

	wantTax := sum.Mul(decimal.RequireFromString("12.5")).Div(decimal.NewFromInt(100))
	assert.True(t, got.TaxAmount.Equal(wantTax))
	assert.True(t, got.Total.Equal(sum.Add(wantTax)))
}

func TestCalculateAccumulatesFullPrecision(t *testing.T) {
	// Three items at 0.333 each: full-precision sum is 0.999, which must not
	// be rounded per-item to 0.33 during accumulation.
	raw := []RawItem{
		{Description: "a", Quantity: "1", Rate: "0.333"},
		{Description: "b", Quantity: "1", Rate: "0.333"},
		{Description: "c", Quantity: "1", Rate: "0.333"},
	}

	got := Calculate(raw, "0", "0")
	assert.True(t, got.Subtotal.Equal(decimal.RequireFromString("0.999")))
	assert.Equal(t, "1.00", FormatAmount(got.Subtotal))
}
