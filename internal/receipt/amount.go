package receipt

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPatterns are tried in order. Keyword-anchored totals take priority;
// a bare number with a currency suffix is the weakest signal.
var amountPatterns = []*regexp.Regexp{
	// 합계: 12,345원 / 총액 12345 / 결제금액: ₩12,345 / TOTAL 12,345
	regexp.MustCompile(`(?i)(?:합\s*계|총\s*액|결제\s*금액|TOTAL)\s*[:：]?\s*₩?\s*([0-9][0-9,. ]*)`),
	// 12,345원 / ₩12,345 / 12345 KRW
	regexp.MustCompile(`(?i)([0-9][0-9,. ]*)\s*(?:원|KRW)|₩\s*([0-9][0-9,. ]*)`),
}

// ExtractAmount returns the receipt total in KRW, or 0 when no candidate
// parses to a positive value. Within a pattern all matches are scanned and
// the first positive one wins.
func ExtractAmount(text string) int {
	for _, re := range amountPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, g := range m[1:] {
				if g == "" {
					continue
				}
				if v := ToIntMoney(g); v > 0 {
					return v
				}
			}
		}
	}
	return 0
}

var moneyStripper = strings.NewReplacer(",", "", " ", "", "₩", "", "원", "", "KRW", "", "krw", "")

// ToIntMoney normalizes a money string by stripping thousands separators,
// spaces, and currency markers, then parsing the remainder as an integer.
// Anything that is not purely numeric after stripping yields 0, never an
// error.
func ToIntMoney(s string) int {
	s = strings.TrimSpace(moneyStripper.Replace(s))
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
