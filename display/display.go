// Package display renders monetary, percentage and date values the way the
// portal shows them to Peruvian customers.
package display

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code every amount in the portal is expressed in.
const Currency = money.PEN

// DateLayout renders dates as dd/mm/yyyy.
const DateLayout = "02/01/2006"

// moneyTemplate puts a space between the symbol and the amount, as es-PE does.
const moneyTemplate = "$ 1"

// Money formats amount as PEN in the es-PE style ("S/ 1,234.50"), rounded to
// the currency's minor unit.
func Money(amount decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	f := money.NewFormatter(cur.Fraction, cur.Decimal, cur.Thousand, cur.Grapheme, moneyTemplate)
	return f.Format(minor.IntPart())
}

// OptionalMoney formats amount, or returns placeholder when amount is nil.
func OptionalMoney(amount *decimal.Decimal, placeholder string) string {
	if amount == nil {
		return placeholder
	}
	return Money(*amount)
}

// Percent renders value as a percentage with two decimals, e.g. "6.25%".
func Percent(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

// Date renders t as dd/mm/yyyy, or "" when t is nil or zero.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
