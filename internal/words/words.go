// Package words spells out rupee amounts in English using Indian grouping
// (hundred, thousand, lakh).
//
// There is no crore tier: amounts of one crore and above keep composing
// through the lakh level, so 1,00,00,000 reads "One Hundred Lakh".
package words

import "strings"

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

const (
	zero   = "Zero"
	suffix = "Only"
)

// Rupees returns the amount in words followed by "Only". Zero reads
// "Zero Only".
func Rupees(n uint64) string {
	phrase := Convert(n)
	if phrase == "" {
		phrase = zero
	}
	return phrase + " " + suffix
}

// Convert returns the bare phrase for n, or "" for zero.
func Convert(n uint64) string {
	return strings.Join(convert(n, nil), " ")
}

// convert appends the words for n to dst. Empty branches add nothing, so the
// joined result never carries stray spaces.
func convert(n uint64, dst []string) []string {
	switch {
	case n == 0:
		return dst
	case n < 20:
		return append(dst, ones[n])
	case n < 100:
		dst = append(dst, tens[n/10])
		return convert(n%10, dst)
	case n < 1000:
		dst = append(dst, ones[n/100], "Hundred")
		return convert(n%100, dst)
	case n < 100000:
		dst = convert(n/1000, dst)
		dst = append(dst, "Thousand")
		return convert(n%1000, dst)
	default:
		dst = convert(n/100000, dst)
		dst = append(dst, "Lakh")
		return convert(n%100000, dst)
	}
}
