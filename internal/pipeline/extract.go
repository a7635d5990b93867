package pipeline

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"partsimport/internal"
	"partsimport/internal/util"
)

var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:sku|cod(?:\s+produs)?|ean|stoc|stock|in stock|qty|cantitate|buc)\b`),
	regexp.MustCompile(`(?i)^(?:pre[tț]|price)\s*[:\-]?\s*$`),
	regexp.MustCompile(`(?i)^(?:adaug[aă]|add to cart|cump[aă]r[aă])`),
}

var (
	reColourLabel = regexp.MustCompile(`(?i)(?:colou?r|culoare)\s*[:\-]\s*([\p{L}][\p{L}\s/\-]*?)\s*(?:$|[|;,:(\n\t\d€$£]|\b(?:size|m[aă]rime|pre[tț]|price|stoc|stock)\b|(?-i:\b(?:XXXL|XXL|XL|XS|S|M|L)\b))`)
	reChunkSplit  = regexp.MustCompile(`[|;\t\n\r]+`)
)

const (
	colourSelector = "[data-colour], [data-color], .colour, .color, .culoare"
	sizeSelector   = "[data-size], .size, .marime"
	cellSelector   = "td, th, li"
)

// RowExtraction is what the variant table of a page yields.
type RowExtraction struct {
	Rows         []internal.VariantRow
	Colours      []string
	Sizes        []string
	ColourPrices map[string]decimal.Decimal
}

type blockView struct {
	text       string
	chunks     []string
	colourHint string
	sizeHint   string
}

// ExtractRows walks the row blocks in page order. A block with a colour and
// no size is a colour header: later rows without their own colour inherit
// it, and its price (if any) becomes that colour's price.
func ExtractRows(blocks []internal.RawTextBlock) RowExtraction {
	out := RowExtraction{ColourPrices: map[string]decimal.Decimal{}}
	colourByKey := map[string]string{}
	sizeSeen := map[string]struct{}{}
	current := ""

	for _, block := range blocks {
		view := viewBlock(block)
		if view.text == "" && len(view.chunks) == 0 {
			continue
		}

		colour := pickColour(view)
		if colour != "" {
			key := util.Normalize(colour)
			if display, ok := colourByKey[key]; ok {
				colour = display
			} else {
				colourByKey[key] = colour
				out.Colours = append(out.Colours, colour)
			}
		}

		size := pickSize(view)
		amount := blockAmount(view)

		if colour != "" && size == nil {
			current = colour
			if amount != nil {
				if _, ok := out.ColourPrices[colour]; !ok {
					out.ColourPrices[colour] = *amount
				}
			}
			continue
		}
		if size == nil {
			continue
		}

		if colour == "" {
			colour = current
		}
		if _, ok := sizeSeen[*size]; !ok {
			sizeSeen[*size] = struct{}{}
			out.Sizes = append(out.Sizes, *size)
		}

		row := internal.VariantRow{Size: size, PriceSource: amount}
		if colour != "" {
			row.Colour = util.StringPtr(colour)
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

func viewBlock(block internal.RawTextBlock) blockView {
	view := blockView{text: normalizeSpaces(block.Text)}
	if strings.TrimSpace(block.HTML) == "" {
		view.chunks = splitChunks(block.Text)
		return view
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(block.HTML))
	if err != nil {
		view.chunks = splitChunks(block.Text)
		return view
	}
	if view.text == "" {
		view.text = HTMLText(block.HTML)
	}

	view.colourHint = hintFrom(doc.Find(colourSelector), "data-colour", "data-color")
	view.sizeHint = hintFrom(doc.Find(sizeSelector), "data-size")

	doc.Find(cellSelector).Each(func(_ int, cell *goquery.Selection) {
		if c := normalizeSpaces(cell.Text()); c != "" {
			view.chunks = append(view.chunks, c)
		}
	})
	if len(view.chunks) == 0 {
		view.chunks = splitChunks(view.text)
	}
	return view
}

// blockAmount reads amounts cell by cell so a stock or size cell never joins
// the price next to it. The whole text is used only when no cell has one.
func blockAmount(view blockView) *decimal.Decimal {
	amounts := util.AmountsIn(view.chunks)
	if len(amounts) == 0 {
		amounts = util.ExtractAmounts(view.text)
	}
	return util.PickCanonicalAmount(amounts)
}

func hintFrom(sel *goquery.Selection, attrs ...string) string {
	hint := ""
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range attrs {
			if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
				hint = normalizeSpaces(v)
				return false
			}
		}
		if t := normalizeSpaces(s.Text()); t != "" {
			hint = t
			return false
		}
		return true
	})
	return hint
}

func pickColour(view blockView) string {
	if view.colourHint != "" {
		if m := reColourLabel.FindStringSubmatch(view.colourHint); m != nil {
			return normalizeSpaces(m[1])
		}
		return view.colourHint
	}
	if m := reColourLabel.FindStringSubmatch(view.text); m != nil {
		return strings.Trim(normalizeSpaces(m[1]), " -/")
	}
	return ""
}

func pickSize(view blockView) *string {
	if view.sizeHint != "" {
		if size := ExtractSize([]string{view.sizeHint}); size != nil {
			return size
		}
	}
	chunks := make([]string, 0, len(view.chunks))
	for _, chunk := range view.chunks {
		if isLikelyNoise(chunk) {
			continue
		}
		chunk = stripColourLabel(chunk)
		if view.colourHint != "" {
			chunk = strings.ReplaceAll(chunk, view.colourHint, " ")
		}
		chunks = append(chunks, chunk)
	}
	return ExtractSize(chunks)
}

// stripColourLabel removes a "Culoare: X" fragment but keeps whatever
// terminated it, which may be the start of a size.
func stripColourLabel(chunk string) string {
	loc := reColourLabel.FindStringSubmatchIndex(chunk)
	if loc == nil {
		return chunk
	}
	return chunk[:loc[0]] + " " + chunk[loc[3]:]
}

// HTMLText flattens an HTML fragment to collapsed plain text. Text nodes are
// joined with spaces so adjacent list items don't run together.
func HTMLText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return normalizeSpaces(html)
	}
	parts := []string{}
	collectText(doc.Find("body"), &parts)
	return strings.Join(parts, " ")
}

func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) != "#text" {
			collectText(s, parts)
			return
		}
		if t := normalizeSpaces(s.Text()); t != "" {
			*parts = append(*parts, t)
		}
	})
}

func splitChunks(text string) []string {
	parts := reChunkSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = normalizeSpaces(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeSpaces(input string) string {
	return util.NormalizeSpaces(input)
}

func isLikelyNoise(chunk string) bool {
	for _, re := range ignorePatterns {
		if re.MatchString(strings.TrimSpace(chunk)) {
			return true
		}
	}
	return false
}
