package domain

import "strings"

// CurrencyCode is an ISO 4217 code.
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyAUD CurrencyCode = "AUD"
	CurrencyINR CurrencyCode = "INR"
	CurrencyJPY CurrencyCode = "JPY"

	// DefaultCurrency applies when a category carries no currency.
	DefaultCurrency = CurrencyUSD
)

// CategoryCurrencies are the codes a category rate may be expressed in.
var CategoryCurrencies = []CurrencyCode{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyAUD}

var currencyNames = map[CurrencyCode]string{
	CurrencyUSD: "US Dollars",
	CurrencyEUR: "Euros",
	CurrencyAUD: "Australian Dollars",
	CurrencyINR: "Rupees",
	CurrencyGBP: "Pounds",
	CurrencyJPY: "Yen",
}

// Normalize upper-cases and trims the code.
func (c CurrencyCode) Normalize() CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(string(c))))
}

// IsCategoryCurrency reports whether c may be used on a Category.
func (c CurrencyCode) IsCategoryCurrency() bool {
	n := c.Normalize()
	for _, allowed := range CategoryCurrencies {
		if n == allowed {
			return true
		}
	}
	return false
}

// CurrencyName maps a code to the name used in the amount-in-words line.
// Unknown codes fall back to the default currency's name.
func CurrencyName(code CurrencyCode) string {
	if name, ok := currencyNames[code.Normalize()]; ok {
		return name
	}
	return currencyNames[DefaultCurrency]
}
