package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces      = regexp.MustCompile(`\s+`)
	reNonWordRuns = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// Normalize folds diacritics, lowercases and collapses whitespace. The result
// is only ever used as a matching key.
func Normalize(input string) string {
	if input == "" {
		return ""
	}
	s := foldDiacritics(input)
	s = strings.ToLower(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func foldDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// WordKey is Normalize with every non-alphanumeric run collapsed to a single
// space. Pure punctuation yields "".
func WordKey(input string) string {
	s := reNonWordRuns.ReplaceAllString(Normalize(input), " ")
	return strings.TrimSpace(s)
}

// ContainsWord reports whether word occurs in haystack as a whole word (or
// whole word sequence) after both are reduced with WordKey.
func ContainsWord(haystack, word string) bool {
	w := WordKey(word)
	if w == "" {
		return false
	}
	return ContainsKey(" "+WordKey(haystack)+" ", w)
}

// ContainsKey is ContainsWord for callers that already hold a padded
// haystack key (" " + WordKey(text) + " ") and a WordKey needle.
func ContainsKey(paddedHaystack, key string) bool {
	if key == "" {
		return false
	}
	return strings.Contains(paddedHaystack, " "+key+" ")
}

func PadKey(text string) string {
	return " " + WordKey(text) + " "
}

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// TitleWord uppercases the first letter and lowercases the rest.
func TitleWord(word string) string {
	r := []rune(word)
	if len(r) == 0 {
		return word
	}
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}
