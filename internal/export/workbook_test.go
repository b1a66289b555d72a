package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estlin/paperbill/internal/model"
)

func exportEstimate(number, business, client, rate string, issued time.Time) model.Document {
	totals := model.Calculate([]model.RawItem{
		{Description: "Floor tile", Quantity: "2", Rate: rate},
		{Description: "Labour", Quantity: "1", Rate: "80"},
	}, "10", "0")

	return model.Document{
		Kind:           model.KindEstimate,
		Number:         number,
		IssueDate:      issued,
		Business:       model.Party{Name: business, Email: "sales@example.com", Phone: "555-0100"},
		Client:         model.Party{Name: client, Phone: "555-0199"},
		Items:          totals.Items,
		TaxRatePercent: totals.TaxRatePercent,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
		CreatedAt:      issued,
	}
}

func TestBuildWorkbookSheets(t *testing.T) {
	issued := time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local)
	docs := []model.Document{
		exportEstimate("0001", "Patel Tiles", "Archer Build Co", "150", issued),
		exportEstimate("0002", "Patel Tiles", "Bowline Homes", "90", issued),
		exportEstimate("0003", "Patel Tiles", "Archer Build Co", "40", issued),
	}

	var seen int
	wb := BuildWorkbook(model.KindEstimate, docs, func() { seen++ })
	assert.Equal(t, len(docs), seen, "progress callback fires once per record")

	require.Len(t, wb.Sheets, 4)
	assert.Equal(t, "All Estimates Summary", wb.Sheets[0].Name)
	assert.Equal(t, "All Items Detail", wb.Sheets[1].Name)
	assert.Equal(t, "Business Information", wb.Sheets[2].Name)
	assert.Equal(t, "Client Information", wb.Sheets[3].Name)

	summary := wb.Sheets[0]
	assert.Equal(t, "Estimate Number", summary.Header[0])
	assert.Contains(t, summary.Header, "Discount Amount")
	require.Len(t, summary.Rows, 3)
	assert.Equal(t, "0001", summary.Rows[0][0])
	assert.Equal(t, "2025-04-01", summary.Rows[0][1])
	assert.Equal(t, "380.00", summary.Rows[0][5]) // 2*150 + 80
	assert.Equal(t, 2, summary.Rows[0][10])       // items count

	// Two items per record, flattened in order.
	items := wb.Sheets[1]
	require.Len(t, items.Rows, 6)
	assert.Equal(t, "Floor tile", items.Rows[0][1])
	assert.Equal(t, "Labour", items.Rows[1][1])

	// One business, grouped.
	business := wb.Sheets[2]
	require.Len(t, business.Rows, 1)
	assert.Equal(t, "Patel Tiles", business.Rows[0][0])
	assert.Equal(t, 3, business.Rows[0][4])

	// Clients grouped in first-seen order.
	clients := wb.Sheets[3]
	require.Len(t, clients.Rows, 2)
	assert.Equal(t, "Archer Build Co", clients.Rows[0][0])
	assert.Equal(t, 2, clients.Rows[0][3])
	assert.Equal(t, "Bowline Homes", clients.Rows[1][0])
	assert.Equal(t, 1, clients.Rows[1][3])
}

func TestBuildWorkbookInvoiceHeader(t *testing.T) {
	doc := exportEstimate("INV-0001", "Patel Tiles", "Archer Build Co", "150", time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local))
	doc.Kind = model.KindInvoice
	doc.DueDate = doc.IssueDate.AddDate(0, 0, 30)
	doc.Client.Email = "ap@archer.example.com"

	wb := BuildWorkbook(model.KindInvoice, []model.Document{doc}, nil)

	summary := wb.Sheets[0]
	assert.Equal(t, "All Invoices Summary", summary.Name)
	assert.Equal(t, "Invoice Number", summary.Header[0])
	assert.Contains(t, summary.Header, "Due Date")
	assert.Contains(t, summary.Header, "Client Email")
	assert.NotContains(t, summary.Header, "Discount Amount")

	require.Len(t, summary.Rows, 1)
	assert.Equal(t, "2025-05-01", summary.Rows[0][2])
	assert.Equal(t, "ap@archer.example.com", summary.Rows[0][5])
}

func TestFilenames(t *testing.T) {
	now := time.Date(2025, 4, 1, 15, 4, 5, 0, time.Local)
	assert.Equal(t, "Estimate_Database_2025-04-01.xlsx", WorkbookFilename(model.KindEstimate, now))
	assert.Equal(t, "Invoice_Database_2025-04-01.xlsx", WorkbookFilename(model.KindInvoice, now))

	doc := exportEstimate("0042", "Patel Tiles", "Archer Build Co", "10", now)
	assert.Equal(t, "Estimate_0042_2025-04-01.pdf", PDFFilename(doc))
	assert.Equal(t, "Estimate_0042_2025-04-01.html", PrintFilename(doc))
}
