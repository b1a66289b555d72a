// Package model defines the core document types shared across the application.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes the two document families. Estimates and invoices are
// structurally parallel but keep separate stores and numbering rules.
type Kind string

const (
	KindEstimate Kind = "estimate"
	KindInvoice  Kind = "invoice"
)

// Title returns the printable document title for this kind.
func (k Kind) Title() string {
	switch k {
	case KindInvoice:
		return "Invoice"
	default:
		return "Estimate"
	}
}

// StorageKey returns the durable-storage key holding this kind's sequence.
func (k Kind) StorageKey() string {
	switch k {
	case KindInvoice:
		return "invoices"
	default:
		return "estimates"
	}
}

// Party identifies one side of a document (the issuing business or the
// billed client).
type Party struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// LineItem is one billable entry. Amount is derived from Quantity and Rate
// and is never set independently.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewLineItem builds a line item with its derived amount.
func NewLineItem(description string, quantity, rate decimal.Decimal) LineItem {
	return LineItem{
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
		Amount:      quantity.Mul(rate),
	}
}

// Valid reports whether the item may appear on a persisted document.
func (li LineItem) Valid() bool {
	return li.Description != "" &&
		li.Quantity.IsPositive() &&
		!li.Rate.IsNegative() &&
		li.Amount.Equal(li.Quantity.Mul(li.Rate))
}

// Document is a persisted estimate or invoice with computed totals.
//
// DueDate and the client email are only meaningful for invoices;
// DiscountAmount only for estimates. The zero values are stored for the
// other kind.
type Document struct {
	Kind           Kind            `json:"kind"`
	Number         string          `json:"number"`
	IssueDate      time.Time       `json:"issueDate"`
	DueDate        time.Time       `json:"dueDate"`
	Business       Party           `json:"businessInfo"`
	Client         Party           `json:"clientInfo"`
	Items          []LineItem      `json:"items"`
	TaxRatePercent decimal.Decimal `json:"taxRate"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ValidationError carries the full list of problems found before a save.
// All problems are reported together so the user can fix them in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Problems, "; "))
}

// Validate checks the document against the constraints required before
// persistence. It returns a *ValidationError listing every problem, or nil.
func (d *Document) Validate() error {
	var problems []string

	if d.Business.Name == "" {
		problems = append(problems, "business name is required")
	}
	if d.Client.Name == "" {
		problems = append(problems, "client name is required")
	}
	if d.IssueDate.IsZero() {
		problems = append(problems, fmt.Sprintf("%s date is required", strings.ToLower(d.Kind.Title())))
	}
	if d.Kind == KindInvoice && d.DueDate.IsZero() {
		problems = append(problems, "due date is required")
	}
	if len(d.Items) == 0 {
		problems = append(problems, "at least one item is required")
	}
	for i, item := range d.Items {
		if !item.Valid() {
			problems = append(problems, fmt.Sprintf("item %d is invalid", i+1))
		}
	}
	if d.TaxRatePercent.IsNegative() {
		problems = append(problems, "tax rate cannot be negative")
	}
	if d.DiscountAmount.IsNegative() {
		problems = append(problems, "discount cannot be negative")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// FormatAmount renders a decimal as a two-decimal money string. Rounding
// happens only here, at the formatting edge; all arithmetic keeps full
// precision.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
