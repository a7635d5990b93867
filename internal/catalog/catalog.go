package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"partsimport/internal/util"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var (
	ErrEmptyCatalog    = errors.New("catalog has no vendors or categories")
	ErrUnknownCategory = errors.New("alias references unknown category")
	ErrEmptyPattern    = errors.New("empty alias pattern")
)

const regexPrefix = "re:"

type document struct {
	Vendors    []string `yaml:"vendors"`
	Categories []struct {
		Name    string `yaml:"name"`
		Display string `yaml:"display"`
	} `yaml:"categories"`
	ClampMarkers []string `yaml:"clamp_markers"`
	Aliases      []struct {
		Category string   `yaml:"category"`
		Patterns []string `yaml:"patterns"`
	} `yaml:"aliases"`
	CompleteMarkers struct {
		HandlebarHeight []string `yaml:"handlebar_height"`
		DeckLength      []string `yaml:"deck_length"`
	} `yaml:"complete_markers"`
}

type Category struct {
	Name    string
	Display string
}

// Rule is a labelled predicate over a padded word key (see util.PadKey).
type Rule struct {
	Label string
	Match func(paddedKey string) bool
}

// Catalog is immutable once built and safe for concurrent use.
type Catalog struct {
	vendors    []string
	vendorKeys []string
	categories []Category
	clamp      Rule
	aliases    []Rule

	handlebarHeight Rule
	deckLength      Rule
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled from the embedded catalog.yaml.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultCatalogYAML)
	})
	return defaultCatalog, defaultErr
}

// Load reads a catalog file, or returns Default when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(blob)
}

func Parse(blob []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(blob, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{}
	c.vendors, c.vendorKeys = sortVendors(doc.Vendors)

	known := map[string]struct{}{}
	for _, cat := range doc.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			continue
		}
		if _, dup := known[name]; dup {
			continue
		}
		known[name] = struct{}{}
		display := strings.TrimSpace(cat.Display)
		if display == "" {
			display = name
		}
		c.categories = append(c.categories, Category{Name: name, Display: display})
	}

	if len(c.vendors) == 0 || len(c.categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	var err error
	if c.clamp, err = compileRule("Clamp", doc.ClampMarkers); err != nil {
		return nil, err
	}
	for _, alias := range doc.Aliases {
		if _, ok := known[alias.Category]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, alias.Category)
		}
		rule, err := compileRule(alias.Category, alias.Patterns)
		if err != nil {
			return nil, err
		}
		c.aliases = append(c.aliases, rule)
	}
	if c.handlebarHeight, err = compileRule("handlebar_height", doc.CompleteMarkers.HandlebarHeight); err != nil {
		return nil, err
	}
	if c.deckLength, err = compileRule("deck_length", doc.CompleteMarkers.DeckLength); err != nil {
		return nil, err
	}

	return c, nil
}

// sortVendors dedupes by word key and orders longest name first; names of
// equal length keep their declared order.
func sortVendors(names []string) ([]string, []string) {
	seen := map[string]struct{}{}
	vendors := make([]string, 0, len(names))
	for _, name := range names {
		name = util.NormalizeSpaces(name)
		key := util.WordKey(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		vendors = append(vendors, name)
	}
	sort.SliceStable(vendors, func(i, j int) bool {
		return utf8.RuneCountInString(vendors[i]) > utf8.RuneCountInString(vendors[j])
	})
	keys := make([]string, len(vendors))
	for i, v := range vendors {
		keys[i] = util.WordKey(v)
	}
	return vendors, keys
}

func compileRule(label string, patterns []string) (Rule, error) {
	phrases := []string{}
	regexes := []*regexp.Regexp{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, regexPrefix) {
			re, err := regexp.Compile(strings.TrimPrefix(p, regexPrefix))
			if err != nil {
				return Rule{}, fmt.Errorf("alias %s: %w", label, err)
			}
			regexes = append(regexes, re)
			continue
		}
		key := util.WordKey(p)
		if key == "" {
			return Rule{}, fmt.Errorf("%w in %s", ErrEmptyPattern, label)
		}
		phrases = append(phrases, key)
	}

	return Rule{
		Label: label,
		Match: func(paddedKey string) bool {
			for _, phrase := range phrases {
				if util.ContainsKey(paddedKey, phrase) {
					return true
				}
			}
			for _, re := range regexes {
				if re.MatchString(paddedKey) {
					return true
				}
			}
			return false
		},
	}, nil
}

func (c *Catalog) Vendors() []string {
	return append([]string(nil), c.vendors...)
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// AliasLabels returns the alias table's category labels in evaluation order.
func (c *Catalog) AliasLabels() []string {
	out := make([]string, 0, len(c.aliases))
	for _, r := range c.aliases {
		out = append(out, r.Label)
	}
	return out
}

// Display returns the display token configured for a canonical category.
func (c *Catalog) Display(category string) string {
	for _, cat := range c.categories {
		if cat.Name == category {
			return cat.Display
		}
	}
	return category
}

// IsCompleteSpec reports whether text carries both a handlebar height and a
// deck length marker, which only a complete scooter's spec sheet lists.
func (c *Catalog) IsCompleteSpec(text string) bool {
	key := util.PadKey(text)
	return c.handlebarHeight.Match(key) && c.deckLength.Match(key)
}
