package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MoneyFromMinor converts minor units (cents) to a decimal amount using the
// standard scale of the currency, e.g. 1998 USD -> 19.98, 500 JPY -> 500.
func MoneyFromMinor(minor int64, cur currency.Unit) Money {
	scale, _ := currency.Standard.Rounding(cur)

	return Money{
		Amount:   decimal.New(minor, -int32(scale)),
		Currency: cur,
	}
}

// Minor is the inverse of MoneyFromMinor, fractions below the currency scale are truncated.
func (m Money) Minor() int64 {
	scale, _ := currency.Standard.Rounding(m.Currency)

	return m.Amount.Shift(int32(scale)).IntPart()
}

func (m Money) String() string {
	scale, _ := currency.Standard.Rounding(m.Currency)

	return m.Amount.StringFixed(int32(scale))
}
