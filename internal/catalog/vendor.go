package catalog

import "partsimport/internal/util"

// DetectVendor returns the first catalog vendor, longest name first, that
// appears as a whole word in text. Nil means unclassified.
func (c *Catalog) DetectVendor(text string) *string {
	key := util.PadKey(text)
	if key == "  " {
		return nil
	}
	for i, vendorKey := range c.vendorKeys {
		if util.ContainsKey(key, vendorKey) {
			return util.StringPtr(c.vendors[i])
		}
	}
	return nil
}
