package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RawItem is one unparsed form row: description plus quantity and rate as
// the user typed them.
type RawItem struct {
	Description string
	Quantity    string
	Rate        string
}

// Totals is the calculator output: the included line items and the computed
// money amounts at full precision.
type Totals struct {
	Items          []LineItem
	Subtotal       decimal.Decimal
	TaxRatePercent decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Calculate maps raw form rows plus a tax rate and flat discount to line
// items and totals. It is a pure function.
//
// Unparsable numeric input counts as zero. A row is included only when its
// description is non-empty, its quantity is positive, and its rate is not
// negative; other rows contribute nothing and are dropped from the item
// list. A discount larger than the subtotal yields a negative total, which
// is accepted.
func Calculate(raw []RawItem, taxRate, discount string) Totals {
	items := make([]LineItem, 0, len(raw))
	subtotal := decimal.Zero

	for _, r := range raw {
		quantity := parseDecimal(r.Quantity)
		rate := parseDecimal(r.Rate)
		if r.Description == "" || !quantity.IsPositive() || rate.IsNegative() {
			continue
		}
		item := NewLineItem(r.Description, quantity, rate)
		items = append(items, item)
		subtotal = subtotal.Add(item.Amount)
	}

	tax := parseDecimal(taxRate)
	taxAmount := subtotal.Mul(tax).Div(decimal.NewFromInt(100))
	disc := parseDecimal(discount)

	return Totals{
		Items:          items,
		Subtotal:       subtotal,
		TaxRatePercent: tax,
		TaxAmount:      taxAmount,
		DiscountAmount: disc,
		Total:          subtotal.Add(taxAmount).Sub(disc),
	}
}

// parseDecimal parses a user-entered number, treating anything unparsable
// (including the empty string) as zero.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
