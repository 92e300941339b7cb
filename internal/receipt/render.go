package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/aaravmahajanofficial/afos-pos/internal/money"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
)

const slipWidth = 40

// RenderText lays the receipt out as a fixed-width thermal printer slip.
func RenderText(doc *models.ReceiptDocument) string {
	var lines []string

	lines = append(lines, strings.Repeat("=", slipWidth))
	lines = append(lines, center(doc.StoreName))
	if doc.StoreTagline != "" {
		lines = append(lines, center(doc.StoreTagline))
	}
	lines = append(lines, strings.Repeat("=", slipWidth))
	lines = append(lines, row("Date: "+doc.IssuedAt.Format("02/01/2006"), "Time: "+doc.IssuedAt.Format("15:04:05")))
	lines = append(lines, row("Receipt:", doc.ReceiptID))
	lines = append(lines, row("Txn:", doc.TransactionID))
	lines = append(lines, row("Customer:", doc.Customer))
	if doc.ServiceNumber != "" {
		lines = append(lines, row("Service No:", doc.ServiceNumber))
	}
	lines = append(lines, strings.Repeat("-", slipWidth))

	for _, item := range doc.Lines {
		lines = append(lines, truncate(item.Name, slipWidth))

		detail := fmt.Sprintf("  %d x %s", item.Quantity, money.Format(item.UnitPrice))
		if item.Discount > 0 {
			detail += fmt.Sprintf(" (-%d%%)", item.Discount)
		}
		lines = append(lines, row(detail, money.Format(item.LineTotal)))
	}

	lines = append(lines, strings.Repeat("-", slipWidth))
	lines = append(lines, row("Subtotal", money.Format(doc.Subtotal)))
	if doc.TotalDiscount > 0 {
		lines = append(lines, row("Discount", "-"+money.Format(doc.TotalDiscount)))
	}
	lines = append(lines, row("Tax (0%)", money.Format(doc.Tax)))
	lines = append(lines, strings.Repeat("-", slipWidth))
	lines = append(lines, row("TOTAL", money.Format(doc.Total)))
	lines = append(lines, row("Paid via", doc.PaymentLabel))
	lines = append(lines, strings.Repeat("-", slipWidth))
	lines = append(lines, row("Remaining quota", money.Format(doc.RemainingQuota)))
	lines = append(lines, strings.Repeat("=", slipWidth))
	lines = append(lines, center(doc.Barcode))
	lines = append(lines, center(doc.ReceiptID))

	for _, f := range doc.Footer {
		lines = append(lines, center(f))
	}

	return strings.Join(lines, "\n") + "\n"
}

func row(left, right string) string {
	gap := slipWidth - len(left) - len(right)
	if gap < 1 {
		return left + "\n" + strings.Repeat(" ", max(slipWidth-len(right), 0)) + right
	}

	return left + strings.Repeat(" ", gap) + right
}

func center(s string) string {
	s = truncate(s, slipWidth)
	pad := (slipWidth - len(s)) / 2

	return strings.Repeat(" ", pad) + s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n-3] + "..."
}

var htmlTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": money.Format,
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Receipt {{.ReceiptID}}</title></head>
<body style="font-family: monospace; max-width: 420px; margin: auto;">
<h2 style="text-align: center; margin-bottom: 0;">{{.StoreName}}</h2>
<p style="text-align: center; margin-top: 0;">{{.StoreTagline}}</p>
<p>Date: {{.IssuedAt.Format "02/01/2006 15:04:05"}}<br>
Receipt: {{.ReceiptID}}<br>
Transaction: {{.TransactionID}}<br>
Customer: {{.Customer}}{{if .ServiceNumber}} ({{.ServiceNumber}}){{end}}</p>
<table style="width: 100%; border-collapse: collapse;">
<tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Total</th></tr>
{{range .Lines}}<tr><td>{{.Name}}{{if .Discount}} <small>(-{{.Discount}}%)</small>{{end}}</td><td align="right">{{.Quantity}}</td><td align="right">{{money .LineTotal}}</td></tr>
{{end}}</table>
<hr>
<p>Subtotal: {{money .Subtotal}}<br>
Discount: -{{money .TotalDiscount}}<br>
Tax (0%): {{money .Tax}}<br>
<strong>TOTAL: {{money .Total}}</strong><br>
Paid via: {{.PaymentLabel}}</p>
<p style="border: 1px solid #000; padding: 4px;">Remaining quota: {{money .RemainingQuota}}</p>
<p style="text-align: center;">{{.Barcode}}<br>{{.ReceiptID}}</p>
{{range .Footer}}<p style="text-align: center; margin: 0;">{{.}}</p>
{{end}}</body>
</html>
`))

func RenderHTML(doc *models.ReceiptDocument) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}

	return buf.String(), nil
}
