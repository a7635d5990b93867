package pipeline

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"partsimport/internal/util"
)

var (
	rePriceLabel   = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:pre[tț]|price)\s*:`)
	reShippingLine = regexp.MustCompile(`(?i)\b(?:transport|livrare|livrarea|shipping|delivery)\b`)
)

// titleWindow is how many lines below the title still count as its price.
const titleWindow = 3

// PagePrice is the price variants fall back to when their row has none. The
// first labelled "Preț:" line wins, then the title line and the few lines
// below it. The highest amount on the page is the last resort, and shipping
// lines never count.
func PagePrice(pageText, title string) *decimal.Decimal {
	lines := pageLines(pageText)

	for _, line := range lines {
		if rePriceLabel.MatchString(line) && !reShippingLine.MatchString(line) {
			if amount := util.CanonicalAmount(line); amount != nil {
				return amount
			}
		}
	}

	if util.WordKey(title) != "" {
		for i, line := range lines {
			if !util.ContainsWord(line, title) {
				continue
			}
			for _, near := range lines[i:min(len(lines), i+titleWindow+1)] {
				if reShippingLine.MatchString(near) {
					continue
				}
				if amount := util.CanonicalAmount(near); amount != nil {
					return amount
				}
			}
			break
		}
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if !reShippingLine.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return util.PickCanonicalAmount(util.AmountsIn(kept))
}

func pageLines(text string) []string {
	out := []string{}
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if line = util.NormalizeSpaces(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
