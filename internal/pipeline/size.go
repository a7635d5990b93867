package pipeline

import (
	"regexp"
	"strings"

	"partsimport/internal"
	"partsimport/internal/util"
)

var (
	reLetterSize = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(XXXL|XXL|XL|XS|S|M|L)(?:$|[^\p{L}\p{N}])`)
	reOneSize    = regexp.MustCompile(`(?i)\b(?:one[\s-]?size|universal|marime unica|onesize)\b`)
	reUnitSize   = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(mm|cm|inch(?:es)?|"|”|″)`)
	reBareNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// ExtractSize applies the size rules to each chunk in turn: letter token,
// one-size marker, number with unit, bare number. The first rule that hits
// within a chunk decides that chunk; the first chunk with a hit wins.
func ExtractSize(chunks []string) *string {
	for _, chunk := range chunks {
		if size := sizeFromChunk(chunk); size != nil {
			return size
		}
	}
	return nil
}

func sizeFromChunk(chunk string) *string {
	chunk = util.NormalizeSpaces(util.StripAmounts(chunk))
	if chunk == "" {
		return nil
	}
	if m := reLetterSize.FindStringSubmatch(chunk); m != nil {
		return util.StringPtr(m[1])
	}
	if reOneSize.MatchString(util.Normalize(chunk)) {
		return util.StringPtr(internal.OneSize)
	}
	if m := reUnitSize.FindStringSubmatch(chunk); m != nil {
		return util.StringPtr(strings.ReplaceAll(m[1], ",", ".") + canonicalUnit(m[2]))
	}
	if m := reBareNumber.FindString(chunk); m != "" {
		return util.StringPtr(strings.ReplaceAll(m, ",", "."))
	}
	return nil
}

func canonicalUnit(unit string) string {
	switch strings.ToLower(unit) {
	case "mm":
		return "mm"
	case "cm":
		return "cm"
	case "inch", "inches":
		return "inch"
	default:
		return `"`
	}
}
