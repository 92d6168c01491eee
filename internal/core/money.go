// Package core provides the life event model, its validation rules and the
// total income projection.
//
// This file contains the currency helpers: the income pattern accepted by the
// form, lenient amount parsing for the projection and en-US formatting.
package core

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	// incomePattern matches "$" + digits grouped by thousands + optional cents.
	incomePattern = regexp.MustCompile(`^\$\d{1,3}(?:,\d{3})*(?:\.\d{2})?$`)

	// leadingNumber matches the numeric prefix a lenient float parse would consume.
	leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// IsValidIncome reports whether s is a well-formed, non-zero income amount.
func IsValidIncome(s string) bool {
	if s == "$0" || s == "$0.00" {
		return false
	}
	return incomePattern.MatchString(s)
}

// ParseCurrency strips "$" and "," and parses the leading number of what is left.
// Anything unparseable yields 0.
//
// Examples:
//   ParseCurrency("$50,000")    -> 50000
//   ParseCurrency("$1,234.56")  -> 1234.56
//   ParseCurrency("12abc")      -> 12
//   ParseCurrency("abc")        -> 0
func ParseCurrency(s string) float64 {
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !math.IsInf(v, 0) {
		return 0
	}
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// FormatUSD formats amount as en-US dollars with no fractional digits,
// rounding half away from zero: 120000 -> "$120,000", -1200.5 -> "-$1,201".
func FormatUSD(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "$NaN"
	case math.IsInf(amount, 1):
		return "$∞"
	case math.IsInf(amount, -1):
		return "-$∞"
	}
	d := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + humanize.BigComma(d.BigInt())
}

// FormatIncomeInput normalizes raw text typed into the income field the way the
// currency input does: only digits, the first decimal point and a minus sign
// typed before the number are kept, the integer part is grouped by thousands
// and a "$" prefix is added. Input with no digits yields "".
//
// Examples:
//   FormatIncomeInput("60000")     -> "$60,000"
//   FormatIncomeInput("$60,000")   -> "$60,000"
//   FormatIncomeInput("-60000")    -> "-$60,000"
//   FormatIncomeInput("1234.5")    -> "$1,234.5"
//   FormatIncomeInput("abc")       -> ""
func FormatIncomeInput(raw string) string {
	var intPart, fracPart strings.Builder
	seenDot, seenNumber, negative := false, false, false
	for _, r := range raw {
		switch {
		case r == '-' && !seenNumber:
			negative = true
		case r >= '0' && r <= '9':
			seenNumber = true
			if seenDot {
				fracPart.WriteRune(r)
			} else {
				intPart.WriteRune(r)
			}
		case r == '.' && !seenDot:
			seenDot = true
			seenNumber = true
		}
	}
	if intPart.Len() == 0 && fracPart.Len() == 0 {
		return ""
	}

	digits := intPart.String()
	if digits == "" {
		digits = "0"
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return ""
	}
	out := "$" + humanize.BigComma(n)
	if seenDot {
		out += "." + fracPart.String()
	}
	if negative {
		out = "-" + out
	}
	return out
}
