package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/estlin/paperbill/internal/model"
)

// minTableRows pads the printed items table so short documents still fill
// the page the way the letterhead expects.
const minTableRows = 15

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Number}}</title>
<style>
  body { font-family: Georgia, serif; background: #fff; margin: 24px; }
  .print-template { max-width: 720px; margin: 0 auto; }
  .main-title { font-size: 32px; letter-spacing: 2px; margin-bottom: 4px; }
  .company-details p, .bill-to p { margin: 2px 0; }
  .meta { margin: 16px 0; }
  .meta span { display: inline-block; min-width: 120px; font-weight: bold; }
  table.items { width: 100%; border-collapse: collapse; margin: 16px 0; }
  table.items th, table.items td { border: 1px solid #444; padding: 6px 8px; }
  table.items th { background: #eee; text-align: left; }
  .qty, .unit, .amount { text-align: right; width: 90px; }
  .totals { margin-left: auto; width: 280px; }
  .totals div { display: flex; justify-content: space-between; padding: 3px 0; }
  .grand-total { font-weight: bold; border-top: 2px solid #222; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<div class="print-template">
  <header>
    <h1 class="main-title">{{.TitleUpper}}</h1>
    <div class="company-details">
      <p><strong>{{.Doc.Business.Name}}</strong></p>
      {{range .BusinessLines}}<p>{{.}}</p>
      {{end}}
    </div>
    <div class="bill-to">
      <h3>BILL TO</h3>
      <p>{{.Doc.Client.Name}}</p>
      {{range .ClientLines}}<p>{{.}}</p>
      {{end}}
    </div>
  </header>

  <div class="meta">
    <div><span>{{.TitleUpper}} NO</span> {{.Number}}</div>
    <div><span>DATE</span> {{.IssueDate}}</div>
    {{if .DueDate}}<div><span>DUE DATE</span> {{.DueDate}}</div>{{end}}
  </div>

  <table class="items">
    <thead>
      <tr><th class="qty">Qty</th><th>Description</th><th class="unit">Unit Cost</th><th class="amount">Amount</th></tr>
    </thead>
    <tbody>
      {{range .Items}}<tr><td class="qty">{{.Quantity}}</td><td>{{.Description}}</td><td class="unit">{{.Rate}}</td><td class="amount">{{.Amount}}</td></tr>
      {{end}}{{range .EmptyRows}}<tr><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals">
    <div><span>SUB TOTAL</span><span>{{.Subtotal}}</span></div>
    {{if .Discount}}<div><span>DISCOUNT</span><span>{{.Discount}}</span></div>{{end}}
    <div><span>TAX ({{.TaxRate}}%)</span><span>{{.TaxAmount}}</span></div>
    <div class="grand-total"><span>TOTAL</span><span>{{.Total}}</span></div>
  </div>
</div>
</body>
</html>
`))

type printItem struct {
	Quantity    string
	Description string
	Rate        string
	Amount      string
}

type printData struct {
	Doc           model.Document
	Title         string
	TitleUpper    string
	Number        string
	IssueDate     string
	DueDate       string
	BusinessLines []string
	ClientLines   []string
	Items         []printItem
	EmptyRows     []struct{}
	Subtotal      string
	TaxRate       string
	TaxAmount     string
	Discount      string
	Total         string
}

// BuildPrintHTML renders one record as a self-contained print-ready HTML
// document. It is a pure function; callers decide where the bytes go.
func BuildPrintHTML(doc model.Document, currency string) ([]byte, error) {
	money := func(s string) string { return fmt.Sprintf("%s %s", currency, s) }

	data := printData{
		Doc:           doc,
		Title:         doc.Kind.Title(),
		TitleUpper:    strings.ToUpper(doc.Kind.Title()),
		Number:        doc.Number,
		IssueDate:     doc.IssueDate.Format("January 2, 2006"),
		BusinessLines: partyLines(doc.Business, true),
		ClientLines:   partyLines(doc.Client, doc.Kind == model.KindInvoice),
		Subtotal:      money(model.FormatAmount(doc.Subtotal)),
		TaxRate:       doc.TaxRatePercent.String(),
		TaxAmount:     money(model.FormatAmount(doc.TaxAmount)),
		Total:         money(model.FormatAmount(doc.Total)),
	}
	if doc.Kind == model.KindInvoice && !doc.DueDate.IsZero() {
		data.DueDate = doc.DueDate.Format("January 2, 2006")
	}
	if doc.DiscountAmount.IsPositive() {
		data.Discount = money(model.FormatAmount(doc.DiscountAmount))
	}

	for _, item := range doc.Items {
		data.Items = append(data.Items, printItem{
			Quantity:    item.Quantity.String(),
			Description: item.Description,
			Rate:        money(model.FormatAmount(item.Rate)),
			Amount:      money(model.FormatAmount(item.Amount)),
		})
	}
	if pad := minTableRows - len(doc.Items); pad > 0 {
		data.EmptyRows = make([]struct{}, pad)
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render print document: %w", err)
	}
	return buf.Bytes(), nil
}
