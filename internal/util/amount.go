package util

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// A plain space only groups thousands right after a price label: in a row
// like "M 5 189 lei" the 5 is a stock count, not the thousands of 5189.
const (
	numberExpr   = `\d{1,3}(?:[.,\x{00A0}]\d{3})+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?`
	spacedExpr   = `\d{1,3}(?:[ \x{00A0}]\d{3})+(?:[.,]\d{1,2})?`
	currencyExpr = `€|\$|£|\b(?:eur|euro|usd|gbp|lei|ron)\b`
	labelExpr    = `(?:pre[tț]|price)\s*[:\-]?\s*`
)

var (
	amountPattern = regexp.MustCompile(`(?i)(?:` +
		labelExpr + `(` + spacedExpr + `)\s*(?:` + currencyExpr + `)` +
		`|(?:` + currencyExpr + `)\s*(` + numberExpr + `)` +
		`|(` + numberExpr + `)\s*(?:` + currencyExpr + `))`)

	reThousandsDot   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	reThousandsComma = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

// ExtractAmounts returns every currency-marked amount in text, in order of
// appearance. Numbers without a currency marker are ignored.
func ExtractAmounts(text string) []decimal.Decimal {
	matches := amountPattern.FindAllStringSubmatch(text, -1)
	out := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		token := ""
		for _, group := range m[1:] {
			if group != "" {
				token = group
				break
			}
		}
		value, err := decimal.NewFromString(normalizeNumericToken(token))
		if err != nil {
			continue
		}
		out = append(out, value)
	}
	return out
}

// PickCanonicalAmount returns the highest amount. A block that shows both an
// original and a discounted price is priced at the higher one.
func PickCanonicalAmount(amounts []decimal.Decimal) *decimal.Decimal {
	if len(amounts) == 0 {
		return nil
	}
	best := amounts[0]
	for _, a := range amounts[1:] {
		if a.GreaterThan(best) {
			best = a
		}
	}
	return &best
}

// CanonicalAmount is PickCanonicalAmount(ExtractAmounts(text)).
func CanonicalAmount(text string) *decimal.Decimal {
	return PickCanonicalAmount(ExtractAmounts(text))
}

// AmountsIn is the union of ExtractAmounts over chunks, in order.
func AmountsIn(chunks []string) []decimal.Decimal {
	out := []decimal.Decimal{}
	for _, chunk := range chunks {
		out = append(out, ExtractAmounts(chunk)...)
	}
	return out
}

// StripAmounts removes every currency-marked amount from text.
func StripAmounts(text string) string {
	return amountPattern.ReplaceAllString(text, " ")
}

func normalizeNumericToken(token string) string {
	compact := strings.NewReplacer(" ", "", "\u00A0", "").Replace(token)
	if reThousandsDot.MatchString(compact) {
		return strings.ReplaceAll(compact, ".", "")
	}
	if reThousandsComma.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	lastDot := strings.LastIndex(compact, ".")
	lastComma := strings.LastIndex(compact, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		compact = strings.ReplaceAll(compact, ".", "")
		return strings.ReplaceAll(compact, ",", ".")
	case lastDot >= 0 && lastComma >= 0:
		return strings.ReplaceAll(compact, ",", "")
	case lastComma >= 0:
		return strings.ReplaceAll(compact, ",", ".")
	}
	return compact
}
