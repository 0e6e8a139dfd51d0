package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// KES is the shilling; every price the store backend serves is denominated in it.
var KES = currency.MustParseISO("KES")

var printer = message.NewPrinter(language.English)

// Money is an exact amount in a single currency. Prices arrive from the
// backend as plain JSON numbers and are kept as decimals so that quantity
// multiplication and cart totals never accumulate float error.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func New(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// Zero returns a zero amount in the store currency.
func Zero() Money {
	return Money{Amount: decimal.Zero, Currency: KES}
}

// Add sums two amounts. Amounts inside one cart always share a currency;
// adding to a zero value adopts the operand's currency.
func (m Money) Add(o Money) Money {
	unit := m.Currency
	if unit == (currency.Unit{}) {
		unit = o.Currency
	}
	return Money{Amount: m.Amount.Add(o.Amount), Currency: unit}
}

// MulInt scales the amount by a quantity.
func (m Money) MulInt(n int64) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(n)), Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Equal compares amount and currency.
func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency && m.Amount.Equal(o.Amount)
}

// String renders for display, e.g. "KES 1,500.00".
func (m Money) String() string {
	unit := m.Currency
	if unit == (currency.Unit{}) {
		unit = KES
	}
	return printer.Sprintf("%v %v", unit, number.Decimal(m.Amount.InexactFloat64(), number.Scale(2)))
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	unit := m.Currency
	if unit == (currency.Unit{}) {
		unit = KES
	}
	return json.Marshal(moneyJSON{Amount: m.Amount, Currency: unit.String()})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal money: %w", err)
	}

	unit := KES
	if raw.Currency != "" {
		parsed, err := currency.ParseISO(raw.Currency)
		if err != nil {
			return fmt.Errorf("parse currency %q: %w", raw.Currency, err)
		}
		unit = parsed
	}

	m.Amount = raw.Amount
	m.Currency = unit
	return nil
}
