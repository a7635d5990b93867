package pipeline

import (
	"regexp"
	"strings"
	"unicode"

	"partsimport/internal/util"
)

var (
	reToken     = regexp.MustCompile(`\S+`)
	reSpaceRuns = regexp.MustCompile(` {2,}`)
)

// BuildTitle joins category display token, vendor and search term into a
// display title with duplicated parts and words removed. Every word is
// title-cased except the all-caps words of the display token and vendor
// (SCS, DTC, MGP), which keep the catalog's spelling wherever they appear.
func BuildTitle(categoryDisplay, vendor, searchTerm string) string {
	acronyms := catalogAcronyms(categoryDisplay, vendor)
	parts := []string{}
	seen := map[string]struct{}{}
	for _, p := range []string{categoryDisplay, vendor, searchTerm} {
		p = util.NormalizeSpaces(p)
		if p == "" {
			continue
		}
		key := util.Normalize(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		parts = append(parts, p)
	}

	titled := reToken.ReplaceAllStringFunc(strings.Join(parts, " "), func(word string) string {
		if spelled, ok := acronyms[util.WordKey(word)]; ok {
			return spelled
		}
		return util.TitleWord(word)
	})
	return DedupeWords(titled)
}

// DedupeWords drops every word whose folded key was already seen, keeping
// the first occurrence and the spacing that preceded kept words. Words that
// fold to nothing (pure punctuation) are always kept. Idempotent.
func DedupeWords(s string) string {
	var b strings.Builder
	seen := map[string]struct{}{}
	prevEnd := 0
	for _, loc := range reToken.FindAllStringIndex(s, -1) {
		sep := s[prevEnd:loc[0]]
		word := s[loc[0]:loc[1]]
		prevEnd = loc[1]

		key := util.WordKey(word)
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		b.WriteString(sep)
		b.WriteString(word)
	}
	out := reSpaceRuns.ReplaceAllString(b.String(), " ")
	return strings.TrimSpace(out)
}

func catalogAcronyms(tokens ...string) map[string]string {
	out := map[string]string{}
	for _, token := range tokens {
		for _, word := range reToken.FindAllString(token, -1) {
			if isAcronym(word) {
				out[util.WordKey(word)] = word
			}
		}
	}
	return out
}

// isAcronym reports whether every letter of word is upper case, with at
// least two of them.
func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}
