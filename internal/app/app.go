// Package app wires the record store, calculator, and export pipeline into
// the save/delete workflows behind the CLI commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estlin/paperbill/internal/export"
	"github.com/estlin/paperbill/internal/model"
	"github.com/estlin/paperbill/internal/storage"
)

// ErrCancelled is returned when the user declines a confirmation prompt.
// Nothing has been changed when it is returned.
var ErrCancelled = errors.New("cancelled by user")

// defaultDueDays is how far out an invoice due date defaults when not given.
const defaultDueDays = 30

// Draft carries raw form state: party details plus unparsed item rows.
type Draft struct {
	Number    string // empty means assign the next number
	IssueDate time.Time
	DueDate   time.Time // invoices only
	Business  model.Party
	Client    model.Party
	Items     []model.RawItem
	TaxRate   string
	Discount  string // estimates only
}

// App owns one kind's store and its export pipeline for the duration of a
// command. Confirm is consulted before overwrites and deletes; Now supplies
// the clock so tests can pin it.
type App struct {
	Store    *storage.Store
	Exporter *export.Exporter
	Confirm  func(prompt string) bool
	Now      func() time.Time
}

// New creates an App around an open store.
func New(store *storage.Store, exporter *export.Exporter, confirm func(string) bool) *App {
	return &App{
		Store:    store,
		Exporter: exporter,
		Confirm:  confirm,
		Now:      time.Now,
	}
}

// BuildDocument turns a draft into a computed, validated document. Invalid
// drafts return a *model.ValidationError listing every problem; no state is
// touched.
func (a *App) BuildDocument(draft Draft) (model.Document, error) {
	kind := a.Store.Kind()

	discount := draft.Discount
	if kind == model.KindInvoice {
		discount = "0"
	}
	totals := model.Calculate(draft.Items, draft.TaxRate, discount)

	now := a.Now()
	doc := model.Document{
		Kind:           kind,
		Number:         draft.Number,
		IssueDate:      draft.IssueDate,
		DueDate:        draft.DueDate,
		Business:       draft.Business,
		Client:         draft.Client,
		Items:          totals.Items,
		TaxRatePercent: totals.TaxRatePercent,
		DiscountAmount: totals.DiscountAmount,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		CreatedAt:      now,
	}

	if doc.Number == "" {
		doc.Number = a.Store.NextNumber()
	}
	if doc.IssueDate.IsZero() {
		doc.IssueDate = truncateToDay(now)
	}
	if kind == model.KindInvoice && doc.DueDate.IsZero() {
		doc.DueDate = doc.IssueDate.AddDate(0, 0, defaultDueDays)
	}

	if err := doc.Validate(); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// SaveOutcome reports what a save did.
type SaveOutcome struct {
	Doc     model.Document
	Updated bool
	Export  export.SaveResult
}

// Save persists a validated document. A colliding number requires user
// confirmation (skipped when force is set, the explicit edit path) and then
// replaces the record in place; otherwise the document is appended. Exports
// run after the persist as a best-effort side effect: their failures never
// undo the save.
func (a *App) Save(ctx context.Context, doc model.Document, force bool) (SaveOutcome, error) {
	if a.Store.Exists(doc.Number) && !force {
		prompt := fmt.Sprintf("An %s with number %s already exists. Update it?",
			doc.Kind, doc.Number)
		if !a.Confirm(prompt) {
			return SaveOutcome{}, ErrCancelled
		}
	}

	updated, err := a.Store.Upsert(ctx, doc)
	if err != nil {
		return SaveOutcome{}, err
	}

	res := a.Exporter.AfterSave(ctx, doc, a.Store.Documents())
	return SaveOutcome{Doc: doc, Updated: updated, Export: res}, nil
}

// Delete removes the record with the given number after confirmation and
// regenerates the workbook so it no longer lists the record. A missing
// number is a no-op, reported via the bool.
func (a *App) Delete(ctx context.Context, number string) (bool, error) {
	prompt := fmt.Sprintf("Delete %s %s? This cannot be undone.",
		a.Store.Kind(), number)
	if !a.Confirm(prompt) {
		return false, ErrCancelled
	}

	removed, err := a.Store.Delete(ctx, number)
	if err != nil || !removed {
		return removed, err
	}

	a.Exporter.RefreshWorkbook(a.Store.Kind(), a.Store.Documents())
	return true, nil
}

// Duplicate builds a fresh document from an existing record: same parties,
// items, and rates, but the next free number and today's dates.
func (a *App) Duplicate(number string) (model.Document, error) {
	src, ok := a.Store.Find(number)
	if !ok {
		return model.Document{}, fmt.Errorf("no %s with number %s", a.Store.Kind(), number)
	}

	now := a.Now()
	doc := src
	doc.Items = make([]model.LineItem, len(src.Items))
	copy(doc.Items, src.Items)
	doc.Number = a.Store.NextNumber()
	doc.IssueDate = truncateToDay(now)
	doc.CreatedAt = now
	if doc.Kind == model.KindInvoice {
		doc.DueDate = doc.IssueDate.AddDate(0, 0, defaultDueDays)
	}
	return doc, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
