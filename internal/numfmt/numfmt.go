// Package numfmt formats rupee amounts with Indian digit grouping and
// normalizes the raw amount text typed into the invoice form.
//
// Grouped and WithSuffix are the only formatters used for money anywhere in
// the module: the table plan, the total row and the spreadsheet export all go
// through them.
package numfmt

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Amount is a non-negative whole-rupee value. Paise are not modelled.
type Amount = uint64

// MaxAmount bounds a single parsed amount. The sum of 10,000 such amounts
// still fits in uint64; callers summing more must cap their item count.
const MaxAmount Amount = 999_999_999_999_999

// Suffix is the marker appended to a formatted non-zero amount.
const Suffix = "/-"

var (
	ErrNegative   = errors.New("numfmt: negative amount")
	ErrFractional = errors.New("numfmt: fractional amount")
	ErrTooLarge   = errors.New("numfmt: amount too large")
)

// Grouped renders n with the rightmost three digits in one group and the
// remaining digits in pairs: 1234567 -> "12,34,567". Zero renders as "".
func Grouped(n Amount) string {
	if n == 0 {
		return ""
	}
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	b.Grow(len(s) + len(s)/2)

	// odd-length heads start with a single leading digit
	first := len(head) % 2
	if first == 1 {
		b.WriteString(head[:1])
	}
	for i := first; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// WithSuffix returns Grouped(n) followed by "/-", or "" for zero.
func WithSuffix(n Amount) string {
	if n == 0 {
		return ""
	}
	return Grouped(n) + Suffix
}

var nonDigits = runes.Remove(runes.Predicate(func(r rune) bool {
	return r < '0' || r > '9'
}))

// Digits drops every rune that is not an ASCII digit.
func Digits(s string) string {
	out, _, err := transform.String(nonDigits, s)
	if err != nil {
		return ""
	}
	return out
}

// ParseAmount turns form text such as "12,34,567/-" or "Rs 5000" into an
// Amount. A minus sign anywhere ("Rs -500", "500-"), accounting parentheses
// ("(500)") and a decimal part with non-zero digits are rejected instead of
// being stripped away; empty input parses as zero.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, Suffix))
	if negative(s) {
		return 0, ErrNegative
	}

	if i := decimalPoint(s); i >= 0 {
		if strings.Trim(Digits(s[i+1:]), "0") != "" {
			return 0, ErrFractional
		}
		s = s[:i]
	}

	digits := strings.TrimLeft(Digits(s), "0")
	if digits == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || n > MaxAmount {
		return 0, ErrTooLarge
	}
	return n, nil
}

// negative reports a minus sign anywhere in s, or digits enclosed in
// parentheses.
func negative(s string) bool {
	if strings.ContainsAny(s, "-−") {
		return true
	}
	first := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if first < 0 {
		return false
	}
	last := strings.LastIndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	return strings.Contains(s[:first], "(") && strings.Contains(s[last+1:], ")")
}

// decimalPoint returns the index of a '.' sitting between two digits, or -1.
// A dot after a currency prefix ("Rs. 500") is not a decimal point.
func decimalPoint(s string) int {
	for i := 1; i < len(s)-1; i++ {
		if s[i] == '.' && isDigit(s[i-1]) && isDigit(s[i+1]) {
			return i
		}
	}
	return -1
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
