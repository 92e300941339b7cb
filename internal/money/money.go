// Package money formats Rwandan Franc amounts for display. Rwf has no sub-unit,
// so every amount in the service is a whole int64.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CurrencyLabel = "Rwf"

var printer = message.NewPrinter(language.English)

// Format renders an amount as "1,000,000 Rwf".
func Format(amount int64) string {
	return printer.Sprintf("%d %s", amount, CurrencyLabel)
}

// Number renders the grouped amount without the currency label.
func Number(amount int64) string {
	return printer.Sprintf("%d", amount)
}
