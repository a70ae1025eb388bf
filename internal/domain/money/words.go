package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords converts a monetary amount to words using the Indian
// numbering system (crore/lakh/thousand/hundred groups). A fractional part
// becomes an "and N Paise" clause; the string always ends in "Only".
// Deterministic: the same input always yields the same string.
//
//	AmountInWords(0, "Rupees")      -> "Zero Rupees Only"
//	AmountInWords(100.50, "Rupees") -> "One Hundred Rupees and Fifty Paise Only"
func AmountInWords(amount decimal.Decimal, currencyName string) string {
	// Round once up front so a .999 fraction carries into the integer part
	// instead of producing "One Hundred Paise".
	amount = amount.Round(2).Abs()

	whole := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).IntPart()

	var b strings.Builder
	if whole == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(integerInWords(whole))
	}
	if currencyName != "" {
		b.WriteString(" ")
		b.WriteString(currencyName)
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(integerInWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// integerInWords renders n (> 0) in Indian grouping. The crore group recurses
// so amounts beyond 99 crore read naturally ("One Hundred Crore ...").
func integerInWords(n int64) string {
	var parts []string

	if crore := n / 1_00_00_000; crore > 0 {
		parts = append(parts, integerInWords(crore), "Crore")
		n %= 1_00_00_000
	}
	if lakh := n / 1_00_000; lakh > 0 {
		parts = append(parts, twoDigits(lakh), "Lakh")
		n %= 1_00_000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, twoDigits(thousand), "Thousand")
		n %= 1000
	}
	if h := n / 100; h > 0 {
		parts = append(parts, ones[h], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, twoDigits(n))
	}
	return strings.Join(parts, " ")
}

func twoDigits(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
