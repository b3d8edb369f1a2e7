package receipt

import (
	"regexp"
	"strings"
)

// topLineScan bounds how many lines are examined at each end of the receipt.
const topLineScan = 10

// boilerplate tokens disqualify a line from being the merchant name.
var boilerplate = []string{
	"영수증", "합계", "총액", "결제금액", "신용카드", "카드번호", "승인번호",
	"부가세", "과세", "면세", "거스름", "사업자", "가맹점번호", "전화", "TEL",
}

var (
	timePrefixRe = regexp.MustCompile(`^\d{1,2}[:시]\d{2}`)
	nonWordRe    = regexp.MustCompile(`[^0-9A-Za-z가-힣]`)
	letterRe     = regexp.MustCompile(`[A-Za-z가-힣]`)
)

// ExtractMerchant picks the merchant name from normalized receipt lines.
// A brand hint anywhere in the top lines wins outright; otherwise the first
// plausible line from the top region is used, then the bottom region.
// Returns "" when nothing qualifies.
func ExtractMerchant(lines []string) string {
	top := lines
	if len(top) > topLineScan {
		top = lines[:topLineScan]
	}

	for _, line := range top {
		lower := strings.ToLower(line)
		for _, hint := range brandHints() {
			if strings.Contains(lower, strings.ToLower(hint)) {
				return line
			}
		}
	}

	for _, line := range top {
		if plausibleMerchant(line) {
			return line
		}
	}

	bottom := lines
	if len(bottom) > topLineScan {
		bottom = lines[len(lines)-topLineScan:]
	}
	for _, line := range bottom {
		if plausibleMerchant(line) {
			return line
		}
	}

	return ""
}

// plausibleMerchant rejects timestamps, receipt boilerplate, and lines with
// too little name-like content.
func plausibleMerchant(line string) bool {
	if timePrefixRe.MatchString(line) {
		return false
	}
	for _, tok := range boilerplate {
		if strings.Contains(line, tok) {
			return false
		}
	}
	// Lines of digits and punctuation only (card numbers, totals) are noise.
	if !letterRe.MatchString(line) {
		return false
	}
	stripped := nonWordRe.ReplaceAllString(line, "")
	return len([]rune(stripped)) >= 2
}
