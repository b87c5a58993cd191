// Package roman converts between small positive integers and Roman numerals,
// the native id form of reflectors.
package roman

import "strings"

var numerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Format renders n as a Roman numeral. It returns "" for n < 1.
func Format(n int) string {
	if n < 1 {
		return ""
	}
	var sb strings.Builder
	for _, num := range numerals {
		for n >= num.value {
			sb.WriteString(num.symbol)
			n -= num.value
		}
	}
	return sb.String()
}

// Parse reads a canonical Roman numeral. Non-canonical spellings such as
// "IIII" are rejected so every id has exactly one textual form.
func Parse(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	n, rest := 0, s
	for _, num := range numerals {
		for strings.HasPrefix(rest, num.symbol) {
			n += num.value
			rest = rest[len(num.symbol):]
		}
	}
	if rest != "" || Format(n) != s {
		return 0, false
	}
	return n, true
}
