package pipeline

import (
	"errors"
	"strings"

	"partsimport/internal"
	"partsimport/internal/util"
)

var ErrEmptySnapshot = errors.New("snapshot has no title, page text or rows")

// NormalizedSnapshot is the snapshot with its free text flattened once so
// later stages don't re-parse HTML.
type NormalizedSnapshot struct {
	internal.RawScrapeSnapshot
	Title      string
	SearchTerm string
	PageText   string
	// SpecText is the spec sheet's text, or the page text when there is none.
	SpecText string
}

func NormalizeSnapshot(snap internal.RawScrapeSnapshot, searchTerm string) (NormalizedSnapshot, error) {
	out := NormalizedSnapshot{
		RawScrapeSnapshot: snap,
		Title:             util.NormalizeSpaces(snap.RawTitle),
		SearchTerm:        util.NormalizeSpaces(searchTerm),
		PageText:          util.NormalizeSpaces(snap.FullPageText),
	}
	if out.Title == "" && out.PageText == "" && len(snap.Rows) == 0 {
		return NormalizedSnapshot{}, ErrEmptySnapshot
	}

	out.SpecText = HTMLText(util.Deref(snap.SpecsHTML))
	if out.SpecText == "" {
		out.SpecText = out.PageText
	}
	out.DescriptionHTML = nonBlank(snap.DescriptionHTML)
	out.SpecsHTML = nonBlank(snap.SpecsHTML)
	return out, nil
}

// ClassificationInputs lists the texts classifiers are tried on, in order.
func (n NormalizedSnapshot) ClassificationInputs() []string {
	return []string{n.Title, n.SearchTerm, n.PageText}
}

func nonBlank(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

func firstDetected(detect func(string) *string, texts ...string) *string {
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if got := detect(text); got != nil {
			return got
		}
	}
	return nil
}
