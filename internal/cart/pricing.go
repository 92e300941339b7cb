package cart

import (
	"fmt"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// UnitDiscount is the per-unit discount in whole Rwf. The fractional amount is
// rounded half away from zero once per unit, so line and cart totals never drift.
func UnitDiscount(p models.Product) int64 {
	if p.Discount <= 0 {
		return 0
	}

	discount := p.Discount
	if discount > 100 {
		discount = 100
	}

	return decimal.NewFromInt(p.Price).
		Mul(decimal.NewFromInt(int64(discount))).
		Div(hundred).
		Round(0).
		IntPart()
}

func EffectivePrice(p models.Product) int64 {
	return p.Price - UnitDiscount(p)
}

func LineTotal(line models.CartLine) int64 {
	return EffectivePrice(line.Product) * int64(line.Quantity)
}

func ComputeTotals(c *Cart) models.Totals {
	var totals models.Totals

	for _, line := range c.lines {
		totals = addLine(totals, *line)
	}

	return totals
}

// SumLines totals a snapshot of lines taken outside the cart, such as the
// lines a payment attempt captured when it started.
func SumLines(lines []models.CartLine) models.Totals {
	var totals models.Totals

	for _, line := range lines {
		totals = addLine(totals, line)
	}

	return totals
}

func addLine(totals models.Totals, line models.CartLine) models.Totals {
	qty := int64(line.Quantity)
	totals.Subtotal += line.Product.Price * qty
	totals.TotalDiscount += UnitDiscount(line.Product) * qty
	totals.Total = totals.Subtotal - totals.TotalDiscount

	return totals
}

// RemainingQuota may be negative, which means the cart is over quota.
func RemainingQuota(balance int64, c *Cart) int64 {
	return balance - ComputeTotals(c).Total
}

func CanCheckout(balance int64, c *Cart) bool {
	return CheckoutGate(balance, c).Allowed
}

type Gate struct {
	Allowed bool
	Reason  string
}

func CheckoutGate(balance int64, c *Cart) Gate {
	if c.IsEmpty() {
		return Gate{Allowed: false, Reason: "Cart is empty. Add items before checking out."}
	}

	total := ComputeTotals(c).Total
	if total > balance {
		return Gate{
			Allowed: false,
			Reason: fmt.Sprintf("Cart total %s exceeds your quota of %s by %s.",
				money.Format(total), money.Format(balance), money.Format(total-balance)),
		}
	}

	return Gate{Allowed: true}
}

// CanAdd reports whether one more unit of p fits in the quota left by the current cart.
func CanAdd(p models.Product, balance int64, c *Cart) bool {
	return EffectivePrice(p) <= RemainingQuota(balance, c)
}
