package catalog

import "partsimport/internal/util"

const CategoryClamp = "Clamp"

// DetectType classifies text into a canonical category. Precedence:
//  1. clamp markers, unconditionally;
//  2. the alias table, in declared order;
//  3. a whole-word hit on a canonical category name, in list order.
//
// Nil means unclassified.
func (c *Catalog) DetectType(text string) *string {
	key := util.PadKey(text)
	if key == "  " {
		return nil
	}

	if c.clamp.Match(key) {
		return util.StringPtr(CategoryClamp)
	}

	for _, rule := range c.aliases {
		if rule.Match(key) {
			return util.StringPtr(rule.Label)
		}
	}

	for _, cat := range c.categories {
		if util.ContainsKey(key, util.WordKey(cat.Name)) {
			return util.StringPtr(cat.Name)
		}
	}
	return nil
}
