package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidIncome(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"$1", true},
		{"$50,000", true},
		{"$1,234,567.89", true},
		{"$999.99", true},
		{"$0.01", true},
		{"$00", true},
		{"$0", false},
		{"$0.00", false},
		{"$1000", false}, // separators are mandatory above 999
		{"$1,00", false},
		{"$1.5", false},
		{"50,000", false},
		{"$", false},
		{"$-5", false},
		{"$ 5", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, IsValidIncome(tc.in), "income %q", tc.in)
	}
}

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in  string
		out float64
	}{
		{"$50,000", 50000},
		{"$1,234.56", 1234.56},
		{"60000", 60000},
		{"  $7", 7},
		{"12abc", 12},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"-$5", -5},
		{"abc", 0},
		{"$", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.out, ParseCurrency(tc.in), 1e-9, "parse %q", tc.in)
	}
	assert.True(t, math.IsInf(ParseCurrency("1e400"), 1))
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{0, "$0"},
		{120000, "$120,000"},
		{999.49, "$999"},
		{999.5, "$1,000"},
		{2.5, "$3"},
		{1234567.4, "$1,234,567"},
		{-1200.5, "-$1,201"},
		{-0.4, "$0"},
		{math.Inf(1), "$∞"},
		{math.NaN(), "$NaN"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.out, FormatUSD(tc.in), "format %v", tc.in)
	}
}

func TestFormatIncomeInput(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"60000", "$60,000"},
		{"$60,000", "$60,000"},
		{"1234567.89", "$1,234,567.89"},
		{"1234.5", "$1,234.5"},
		{"0", "$0"},
		{"0.00", "$0.00"},
		{"007", "$7"},
		{".25", "$0.25"},
		{"1.2.3", "$1.23"},
		{"-60000", "-$60,000"},
		{"-$60,000", "-$60,000"},
		{"$-1234.5", "-$1,234.5"},
		{"60-000", "$60,000"},
		{"-", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.out, FormatIncomeInput(tc.in), "format input %q", tc.in)
	}
}

func TestFormatIncomeInputIsIdempotent(t *testing.T) {
	for _, in := range []string{"5", "50000", "1234567.89", "0.00", "-60000"} {
		once := FormatIncomeInput(in)
		assert.Equal(t, once, FormatIncomeInput(once))
	}
}
