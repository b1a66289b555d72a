// Package export serializes record sequences into spreadsheet, PDF, and
// print-ready HTML files.
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estlin/paperbill/internal/model"
)

// Sheet is one named rectangular table: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []any
	Rows   [][]any
}

// Workbook is an ordered set of sheets destined for a spreadsheet file.
type Workbook struct {
	Sheets []Sheet
}

// BuildWorkbook assembles the four-sheet workbook for a record sequence:
// a per-record summary, a flattened line-item detail, and per-business and
// per-client aggregations. It is a pure function of its inputs.
func BuildWorkbook(kind model.Kind, docs []model.Document, onDoc func()) Workbook {
	title := kind.Title()

	summary := Sheet{Name: fmt.Sprintf("All %ss Summary", title)}
	if kind == model.KindInvoice {
		summary.Header = []any{
			"Invoice Number", "Date", "Due Date", "Business Name", "Client Name",
			"Client Email", "Client Phone", "Subtotal", "Tax Rate", "Tax Amount",
			"Total", "Items Count", "Created At",
		}
	} else {
		summary.Header = []any{
			"Estimate Number", "Date", "Business Name", "Client Name",
			"Client Phone", "Subtotal", "Tax Rate", "Tax Amount",
			"Discount Amount", "Total", "Items Count", "Created At",
		}
	}

	items := Sheet{
		Name: "All Items Detail",
		Header: []any{
			title + " Number", "Item Description", "Quantity", "Rate",
			"Total Amount", title + " Date", "Client Name", "Business Name",
		},
	}

	type businessTotals struct {
		party model.Party
		count int
		total decimal.Decimal
	}
	type clientTotals struct {
		party model.Party
		count int
		total decimal.Decimal
	}
	var businessOrder, clientOrder []string
	businesses := make(map[string]*businessTotals)
	clients := make(map[string]*clientTotals)

	for _, d := range docs {
		if onDoc != nil {
			onDoc()
		}

		issue := d.IssueDate.Format("2006-01-02")
		created := d.CreatedAt.Format("January 2, 2006")

		if kind == model.KindInvoice {
			summary.Rows = append(summary.Rows, []any{
				d.Number, issue, d.DueDate.Format("2006-01-02"),
				d.Business.Name, d.Client.Name, d.Client.Email, d.Client.Phone,
				model.FormatAmount(d.Subtotal), d.TaxRatePercent.String(),
				model.FormatAmount(d.TaxAmount), model.FormatAmount(d.Total),
				len(d.Items), created,
			})
		} else {
			summary.Rows = append(summary.Rows, []any{
				d.Number, issue, d.Business.Name, d.Client.Name, d.Client.Phone,
				model.FormatAmount(d.Subtotal), d.TaxRatePercent.String(),
				model.FormatAmount(d.TaxAmount), model.FormatAmount(d.DiscountAmount),
				model.FormatAmount(d.Total), len(d.Items), created,
			})
		}

		for _, item := range d.Items {
			items.Rows = append(items.Rows, []any{
				d.Number, item.Description, item.Quantity.String(),
				model.FormatAmount(item.Rate), model.FormatAmount(item.Amount),
				issue, d.Client.Name, d.Business.Name,
			})
		}

		b, ok := businesses[d.Business.Name]
		if !ok {
			b = &businessTotals{party: d.Business, total: decimal.Zero}
			businesses[d.Business.Name] = b
			businessOrder = append(businessOrder, d.Business.Name)
		}
		b.count++
		b.total = b.total.Add(d.Total)

		c, ok := clients[d.Client.Name]
		if !ok {
			c = &clientTotals{party: d.Client, total: decimal.Zero}
			clients[d.Client.Name] = c
			clientOrder = append(clientOrder, d.Client.Name)
		}
		c.count++
		c.total = c.total.Add(d.Total)
	}

	business := Sheet{
		Name: "Business Information",
		Header: []any{
			"Business Name", "Email", "Phone", "Address",
			fmt.Sprintf("Total %ss", title), "Total Revenue",
		},
	}
	for _, name := range businessOrder {
		b := businesses[name]
		business.Rows = append(business.Rows, []any{
			b.party.Name, b.party.Email, b.party.Phone, b.party.Address,
			b.count, model.FormatAmount(b.total),
		})
	}

	client := Sheet{
		Name: "Client Information",
		Header: []any{
			"Client Name", "Phone", "Address",
			fmt.Sprintf("Total %ss", title), "Total Amount",
		},
	}
	for _, name := range clientOrder {
		c := clients[name]
		client.Rows = append(client.Rows, []any{
			c.party.Name, c.party.Phone, c.party.Address,
			c.count, model.FormatAmount(c.total),
		})
	}

	return Workbook{Sheets: []Sheet{summary, items, business, client}}
}

// WorkbookFilename returns the deterministic filename for a full export,
// stamped with the given day.
func WorkbookFilename(kind model.Kind, now time.Time) string {
	return fmt.Sprintf("%s_Database_%s.xlsx", kind.Title(), now.Format("2006-01-02"))
}

// PDFFilename returns the deterministic filename for one record's PDF.
func PDFFilename(doc model.Document) string {
	return fmt.Sprintf("%s_%s_%s.pdf", doc.Kind.Title(), doc.Number, doc.IssueDate.Format("2006-01-02"))
}

// PrintFilename returns the filename for one record's print-ready HTML
// document, the fallback when PDF rendering fails.
func PrintFilename(doc model.Document) string {
	return fmt.Sprintf("%s_%s_%s.html", doc.Kind.Title(), doc.Number, doc.IssueDate.Format("2006-01-02"))
}
