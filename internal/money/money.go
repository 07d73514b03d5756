// Package money converts between user-typed amount strings and integer
// cent values. Arithmetic never leaves integer cents; locale rules only
// affect display grouping and the currency symbol.
package money

import (
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Locale string

const (
	BRL Locale = "BRL"
	USD Locale = "USD"
)

// ParseDecimalToCents interprets input the way a masked amount field does:
// every non-digit is stripped and the remaining digit string is the amount
// in cents. "1.234,56" and "1,234.56" both parse to 123456; a typed
// decimal point never changes the numeric value. Unparseable input yields
// zero, which callers treat as "no amount".
func ParseDecimalToCents(input string, loc Locale) int64 {
	_ = loc // grouping characters are stripped regardless of locale

	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0
	}

	cents, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}

	return cents
}

// FormatCentsToDisplay renders cents with the locale's thousands grouping
// and decimal separator, e.g. 123456 -> "1.234,56" (BRL) or "1,234.56"
// (USD). With includeSymbol the currency symbol is prefixed the way the
// locale writes prices.
func FormatCentsToDisplay(cents int64, loc Locale, includeSymbol bool) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	tag := localeTag(loc)
	p := message.NewPrinter(tag)

	units := cents / 100
	frac := cents % 100

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	if includeSymbol {
		b.WriteString(p.Sprint(currency.Symbol(localeUnit(loc))))
		if loc == BRL {
			b.WriteString(" ")
		}
	}
	b.WriteString(p.Sprint(number.Decimal(units)))
	b.WriteString(decimalSeparator(loc))
	if frac < 10 {
		b.WriteString("0")
	}
	b.WriteString(strconv.FormatInt(frac, 10))

	return b.String()
}

func localeTag(loc Locale) language.Tag {
	if loc == USD {
		return language.AmericanEnglish
	}
	return language.BrazilianPortuguese
}

func localeUnit(loc Locale) currency.Unit {
	if loc == USD {
		return currency.USD
	}
	return currency.BRL
}

func decimalSeparator(loc Locale) string {
	if loc == USD {
		return "."
	}
	return ","
}
