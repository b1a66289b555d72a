package export

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/estlin/paperbill/internal/model"
)

// A5 portrait column widths for the items table, in mm.
var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{title: "Qty", width: 14, align: "C"},
	{title: "Description", width: 60, align: "L"},
	{title: "Unit Cost", width: 27, align: "R"},
	{title: "Amount", width: 27, align: "R"},
}

// WritePDF renders one record as an A5 portrait PDF at path. The currency
// label prefixes every money amount and affects formatting only.
func WritePDF(doc model.Document, currency, path string) error {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	money := func(d decimal.Decimal) string {
		return fmt.Sprintf("%s %s", currency, model.FormatAmount(d))
	}

	// Title and issuing business
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, strings.ToUpper(doc.Kind.Title()), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, doc.Business.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range partyLines(doc.Business, true) {
		pdf.CellFormat(0, 4.5, line, "", 1, "L", false, 0, "")
	}

	// Bill-to block
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 5, "BILL TO", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 4.5, doc.Client.Name, "", 1, "L", false, 0, "")
	for _, line := range partyLines(doc.Client, doc.Kind == model.KindInvoice) {
		pdf.CellFormat(0, 4.5, line, "", 1, "L", false, 0, "")
	}

	// Meta
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 4.5, fmt.Sprintf("%s NO: %s", strings.ToUpper(doc.Kind.Title()), doc.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4.5, "DATE: "+doc.IssueDate.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	if doc.Kind == model.KindInvoice && !doc.DueDate.IsZero() {
		pdf.CellFormat(0, 4.5, "DUE DATE: "+doc.DueDate.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	}

	// Items table
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range doc.Items {
		cells := []string{
			item.Quantity.String(),
			item.Description,
			money(item.Rate),
			money(item.Amount),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Totals, right-aligned under the amount columns
	labelWidth := pdfColumns[0].width + pdfColumns[1].width + pdfColumns[2].width
	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(labelWidth, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(pdfColumns[3].width, 6, value, "1", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	totalRow("SUB TOTAL", money(doc.Subtotal), false)
	if doc.DiscountAmount.IsPositive() {
		totalRow("DISCOUNT", money(doc.DiscountAmount), false)
	}
	totalRow(fmt.Sprintf("TAX (%s%%)", doc.TaxRatePercent.String()), money(doc.TaxAmount), false)
	totalRow("TOTAL", money(doc.Total), true)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// partyLines returns the optional contact lines of a party, skipping blanks.
func partyLines(p model.Party, withEmail bool) []string {
	var lines []string
	for _, addr := range strings.Split(p.Address, "\n") {
		if addr != "" {
			lines = append(lines, addr)
		}
	}
	if p.Phone != "" {
		lines = append(lines, p.Phone)
	}
	if withEmail && p.Email != "" {
		lines = append(lines, p.Email)
	}
	return lines
}
