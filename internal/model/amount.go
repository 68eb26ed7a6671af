package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Currency is one of the payout currencies accepted by the API.
type Currency string

// Supported currencies.
const (
	CurrencyCHF Currency = "CHF"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyCNY Currency = "CNY"
	CurrencyGBP Currency = "GBP"
)

// DefaultCurrency is preselected on new claims.
const DefaultCurrency = CurrencyCHF

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{CurrencyCHF, CurrencyUSD, CurrencyEUR, CurrencyCNY, CurrencyGBP}

// ErrUnsupportedCurrency is returned for codes outside Currencies.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ParseCurrency validates an ISO 4217 code against the supported set.
func ParseCurrency(s string) (Currency, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
	c := Currency(unit.String())
	for _, supported := range Currencies {
		if supported == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedCurrency, c)
}

// Symbol returns the narrow display symbol, e.g. "$" for USD.
func (c Currency) Symbol() string {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return string(c)
	}
	return fmt.Sprint(currency.NarrowSymbol(unit))
}

// Amount is a decimal money amount encoded as a JSON number.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// ParseAmount parses a decimal string such as "42.50".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{Decimal: d}, nil
}

// MarshalJSON writes the amount as an unquoted number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts both numbers and numeric strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// Format renders the amount with two decimals and the currency code.
func (a Amount) Format(c Currency) string {
	return fmt.Sprintf("%s %s", a.StringFixed(2), c)
}
