package pipeline

import (
	"regexp"

	"partsimport/internal/catalog"
	"partsimport/internal/util"
)

const (
	CategoryComplete = "Complete"
	ScooterDisplay   = "Trotinetă"
	SCSDisplay       = "SCS"
)

// Case-sensitive on the raw title: "scs" in running text is not the brand mark.
var reSCSWord = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])SCS(?:$|[^\p{L}\p{N}])`)

// Classification is the category decision plus the token shown in the title.
type Classification struct {
	Category *string
	Display  string
}

// ApplyOverrides layers the caller rules on top of DetectType. A spec sheet
// listing both handlebar height and deck length forces Complete; an SCS
// clamp keeps its brand mark as display token.
func ApplyOverrides(cat *catalog.Catalog, detected *string, rawTitle, specText string) Classification {
	if cat.IsCompleteSpec(specText) {
		return Classification{Category: util.StringPtr(CategoryComplete), Display: ScooterDisplay}
	}
	if detected == nil {
		return Classification{}
	}
	if *detected == catalog.CategoryClamp && reSCSWord.MatchString(rawTitle) {
		return Classification{Category: detected, Display: SCSDisplay}
	}
	return Classification{Category: detected, Display: cat.Display(*detected)}
}
