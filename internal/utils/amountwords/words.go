// Package amountwords spells out monetary amounts for invoice footers.
package amountwords

import (
	"errors"
	"fmt"
	"math"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnsupportedLocale is returned for locales without a word table.
var ErrUnsupportedLocale = errors.New("unsupported words locale")

// Converter renders amounts as title-cased English words with cents as a
// fraction, e.g. 37.50 -> "Thirty-Seven And 50/100".
type Converter struct{}

// New returns a Converter.
func New() *Converter {
	return &Converter{}
}

// Words converts amount using locale. An empty locale means English.
// Whole amounts carry no fraction suffix.
func (c *Converter) Words(amount decimal.Decimal, locale string) (string, error) {
	tag := language.English
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedLocale, locale)
		}
		tag = parsed
	}
	if base, _ := tag.Base(); base.String() != "en" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLocale, locale)
	}
	if amount.IsNegative() {
		return "", fmt.Errorf("cannot spell negative amount %s", amount)
	}

	rounded := amount.Round(2)
	whole := rounded.IntPart()
	if whole > math.MaxInt32 {
		return "", fmt.Errorf("amount %s too large to spell", amount)
	}
	cents := rounded.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()

	words := cases.Title(tag).String(num2words.Convert(int(whole)))
	if cents == 0 {
		return words, nil
	}
	return fmt.Sprintf("%s And %02d/100", words, cents), nil
}
