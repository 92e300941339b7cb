package models

import "time"

type ReceiptLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Discount  int    `json:"discount,omitempty"`
	LineTotal int64  `json:"line_total"`
}

// ReceiptDocument is the printable artifact emitted when a payment attempt is finalized.
type ReceiptDocument struct {
	StoreName      string        `json:"store_name"`
	StoreTagline   string        `json:"store_tagline"`
	ReceiptID      string        `json:"receipt_id"`
	TransactionID  string        `json:"transaction_id"`
	Customer       string        `json:"customer"`
	ServiceNumber  string        `json:"service_number,omitempty"`
	IssuedAt       time.Time     `json:"issued_at"`
	Lines          []ReceiptLine `json:"lines"`
	Subtotal       int64         `json:"subtotal"`
	TotalDiscount  int64         `json:"total_discount"`
	Tax            int64         `json:"tax"`
	Total          int64         `json:"total"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	PaymentLabel   string        `json:"payment_label"`
	Balance        int64         `json:"balance"`
	RemainingQuota int64         `json:"remaining_quota"`
	Barcode        string        `json:"barcode"`
	Footer         []string      `json:"footer"`
}
