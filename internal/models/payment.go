package models

import "time"

type PaymentMethod string

const (
	PaymentMethodZigama PaymentMethod = "zigama"
	PaymentMethodMomo   PaymentMethod = "momo"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodZigama || m == PaymentMethodMomo
}

// Name is the short label shown in the payment dialog.
func (m PaymentMethod) Name() string {
	switch m {
	case PaymentMethodZigama:
		return "Zigama Pay"
	case PaymentMethodMomo:
		return "Mobile Money"
	default:
		return string(m)
	}
}

// ReceiptLabel is the upper-case label printed on the receipt slip.
func (m PaymentMethod) ReceiptLabel() string {
	switch m {
	case PaymentMethodZigama:
		return "ZIGAMA PAY"
	case PaymentMethodMomo:
		return "MOBILE MONEY"
	default:
		return string(m)
	}
}

func (m PaymentMethod) Description() string {
	switch m {
	case PaymentMethodZigama:
		return "Military Banking Service"
	case PaymentMethodMomo:
		return "MTN / Airtel Money"
	default:
		return ""
	}
}

type CheckoutState string

const (
	CheckoutStateProcessing CheckoutState = "processing"
	CheckoutStateSuccess    CheckoutState = "success"
	CheckoutStateReceipt    CheckoutState = "receipt"
	CheckoutStateCancelled  CheckoutState = "cancelled"
	CheckoutStateFinalized  CheckoutState = "finalized"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateCancelled || s == CheckoutStateFinalized
}

// CanTransitionTo reports whether next directly follows s. Payment has no failure
// branch: the only way out of processing other than success is a cancel.
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	switch s {
	case CheckoutStateProcessing:
		return next == CheckoutStateSuccess || next == CheckoutStateCancelled
	case CheckoutStateSuccess:
		return next == CheckoutStateReceipt
	case CheckoutStateReceipt:
		return next == CheckoutStateFinalized
	default:
		return false
	}
}

func (s CheckoutState) String() string {
	return string(s)
}

type StartCheckoutRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=zigama momo"`
}

// AttemptView is the externally visible state of a payment attempt.
type AttemptView struct {
	State         CheckoutState    `json:"state"`
	Total         int64            `json:"total"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	PaymentLabel  string           `json:"payment_label"`
	TransactionID string           `json:"transaction_id,omitempty"`
	ReceiptID     string           `json:"receipt_id,omitempty"`
	StartedAt     time.Time        `json:"started_at"`
	Receipt       *ReceiptDocument `json:"receipt,omitempty"`
}

type FinalizeResponse struct {
	Receipt      *ReceiptDocument `json:"receipt"`
	SessionEnded bool             `json:"session_ended"`
	Slip         string           `json:"slip,omitempty"`
}
