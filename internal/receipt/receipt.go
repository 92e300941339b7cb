// Package receipt builds the receipt document for a finalized payment, renders
// it as a printer slip or HTML, and hands it to the configured printers.
package receipt

import (
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/cart"
	"github.com/aaravmahajanofficial/afos-pos/internal/checkout"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
)

const Barcode = "||||| |||| ||||| |||| ||||| ||||"

type StoreInfo struct {
	Name    string
	Tagline string
	Website string
	Support string
}

func (s StoreInfo) footer() []string {
	footer := []string{"Thank You!", "Serving those who serve"}
	if s.Website != "" {
		footer = append(footer, s.Website)
	}

	if s.Support != "" {
		footer = append(footer, "Customer Care: "+s.Support)
	}

	return footer
}

// Build assembles the receipt from the lines and references captured by the
// payment attempt. Tax is always zero for the shop.
func Build(snap checkout.Snapshot, user models.UserProfile, store StoreInfo, now time.Time) *models.ReceiptDocument {
	totals := cart.SumLines(snap.Lines)

	lines := make([]models.ReceiptLine, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		lines = append(lines, models.ReceiptLine{
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price,
			Discount:  line.Product.Discount,
			LineTotal: cart.LineTotal(line),
		})
	}

	return &models.ReceiptDocument{
		StoreName:      store.Name,
		StoreTagline:   store.Tagline,
		ReceiptID:      snap.ReceiptID,
		TransactionID:  snap.TransactionID,
		Customer:       user.Name,
		ServiceNumber:  user.ServiceNumber,
		IssuedAt:       now,
		Lines:          lines,
		Subtotal:       totals.Subtotal,
		TotalDiscount:  totals.TotalDiscount,
		Tax:            0,
		Total:          totals.Total,
		PaymentMethod:  snap.Method,
		PaymentLabel:   snap.Method.ReceiptLabel(),
		Balance:        user.Balance,
		RemainingQuota: user.Balance - totals.Total,
		Barcode:        Barcode,
		Footer:         store.footer(),
	}
}
