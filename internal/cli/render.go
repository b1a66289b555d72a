package cli

import (
	"fmt"
	"strings"

	"github.com/estlin/paperbill/internal/model"
	"github.com/estlin/paperbill/internal/storage"
)

// FormatDocumentLine renders one history row: number, client, date, total.
func FormatDocumentLine(doc model.Document, currency string) string {
	return fmt.Sprintf("%s  %-24s %s  %s",
		BoldStyle.Render(fmt.Sprintf("%-10s", doc.Number)),
		doc.Client.Name,
		SubtleStyle.Render(doc.IssueDate.Format("2006-01-02")),
		AmountStyle.Render(fmt.Sprintf("%s %s", currency, model.FormatAmount(doc.Total))),
	)
}

// FormatDocumentList renders the history view of a record sequence.
func FormatDocumentList(docs []model.Document, currency string) string {
	if len(docs) == 0 {
		return SubtleStyle.Render("No records found.")
	}

	lines := make([]string, 0, len(docs))
	for _, d := range docs {
		lines = append(lines, FormatDocumentLine(d, currency))
	}
	return strings.Join(lines, "\n")
}

// FormatDocument renders the full detail of one record for the terminal.
func FormatDocument(doc model.Document, currency string) string {
	money := func(s string) string { return fmt.Sprintf("%s %s", currency, s) }

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", strings.ToUpper(doc.Kind.Title()), doc.Number)
	fmt.Fprintf(&b, "Date: %s\n", doc.IssueDate.Format("January 2, 2006"))
	if doc.Kind == model.KindInvoice && !doc.DueDate.IsZero() {
		fmt.Fprintf(&b, "Due:  %s\n", doc.DueDate.Format("January 2, 2006"))
	}
	fmt.Fprintf(&b, "\nFrom: %s\n", doc.Business.Name)
	fmt.Fprintf(&b, "Bill To: %s\n\n", doc.Client.Name)

	for _, item := range doc.Items {
		fmt.Fprintf(&b, "  %-30s %6s x %10s = %s\n",
			item.Description,
			item.Quantity.String(),
			money(model.FormatAmount(item.Rate)),
			money(model.FormatAmount(item.Amount)))
	}

	fmt.Fprintf(&b, "\n%-14s %s\n", "Subtotal:", money(model.FormatAmount(doc.Subtotal)))
	if doc.DiscountAmount.IsPositive() {
		fmt.Fprintf(&b, "%-14s %s\n", "Discount:", money(model.FormatAmount(doc.DiscountAmount)))
	}
	fmt.Fprintf(&b, "%-14s %s\n", fmt.Sprintf("Tax (%s%%):", doc.TaxRatePercent.String()),
		money(model.FormatAmount(doc.TaxAmount)))
	fmt.Fprintf(&b, "%-14s %s", "Total:", money(model.FormatAmount(doc.Total)))

	return RenderBox(fmt.Sprintf("%s %s", doc.Kind.Title(), doc.Number), b.String())
}

// FormatStats renders the store statistics panel.
func FormatStats(kind model.Kind, stats storage.Stats, currency string) string {
	money := func(s string) string {
		return AmountStyle.Render(fmt.Sprintf("%s %s", currency, s))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total %ss:   %d\n", kind.Title(), stats.Count)
	fmt.Fprintf(&b, "All-time revenue:  %s\n", money(model.FormatAmount(stats.Revenue)))
	fmt.Fprintf(&b, "This month:        %s\n", money(model.FormatAmount(stats.MonthRevenue)))
	fmt.Fprintf(&b, "This year:         %s", money(model.FormatAmount(stats.YearRevenue)))

	return RenderBox(fmt.Sprintf("%s Statistics", kind.Title()), b.String())
}
