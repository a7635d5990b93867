package pipeline

import (
	"github.com/shopspring/decimal"

	"partsimport/internal"
	"partsimport/internal/util"
)

// Assembler builds the option/variant matrix.
type Assembler struct {
	Prices              PriceConverter
	InventoryManagement string
}

func NewAssembler(prices PriceConverter, inventoryManagement string) Assembler {
	if inventoryManagement == "" {
		inventoryManagement = "shopify"
	}
	return Assembler{Prices: prices, InventoryManagement: inventoryManagement}
}

// Assemble picks one of three shapes. With sizes: Colour x Size, one variant
// per distinct pair in rows (first wins), priced from the row or the page
// fallback; header colours with no sized row are left out of the options. With
// colours only: one variant per colour, priced from colourPrices or the
// fallback. With neither: a single "Default" variant at the fallback price.
func (a Assembler) Assemble(
	colours, sizes []string,
	rows []internal.VariantRow,
	colourPrices map[string]decimal.Decimal,
	fallback *decimal.Decimal,
) ([]internal.Option, []internal.Variant) {
	colours = distinct(colours)
	sizes = distinct(sizes)

	if len(sizes) > 0 {
		if options, variants := a.sized(colours, sizes, rows, fallback); len(variants) > 0 {
			return options, variants
		}
	}
	if len(colours) > 0 {
		return a.colourOnly(colours, colourPrices, fallback)
	}

	options := []internal.Option{{Name: internal.OptionColour, Values: []string{internal.DefaultOptionValue}}}
	variants := []internal.Variant{a.variant(internal.DefaultOptionValue, nil, fallback)}
	return options, variants
}

func (a Assembler) sized(colours, sizes []string, rows []internal.VariantRow, fallback *decimal.Decimal) ([]internal.Option, []internal.Variant) {
	colourValues := newValueSet(colours)
	sizeValues := newValueSet(sizes)
	seen := map[[2]string]struct{}{}
	variants := []internal.Variant{}

	for _, row := range rows {
		if row.Size == nil || *row.Size == "" {
			continue
		}
		colour := internal.DefaultOptionValue
		if row.Colour != nil && *row.Colour != "" {
			colour = *row.Colour
		}
		key := [2]string{colour, *row.Size}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		colourValues.add(colour)
		sizeValues.add(*row.Size)

		price := row.PriceSource
		if price == nil {
			price = fallback
		}
		variants = append(variants, a.variant(colour, util.StringPtr(*row.Size), price))
	}

	usedColours := map[string]struct{}{}
	usedSizes := map[string]struct{}{}
	for key := range seen {
		usedColours[key[0]] = struct{}{}
		usedSizes[key[1]] = struct{}{}
	}
	options := []internal.Option{
		{Name: internal.OptionColour, Values: colourValues.keep(usedColours)},
		{Name: internal.OptionSize, Values: sizeValues.keep(usedSizes)},
	}
	return options, variants
}

func (a Assembler) colourOnly(colours []string, colourPrices map[string]decimal.Decimal, fallback *decimal.Decimal) ([]internal.Option, []internal.Variant) {
	byKey := map[string]decimal.Decimal{}
	for colour, price := range colourPrices {
		byKey[util.Normalize(colour)] = price
	}

	variants := make([]internal.Variant, 0, len(colours))
	for _, colour := range colours {
		price := fallback
		if p, ok := colourPrices[colour]; ok {
			price = util.DecimalPtr(p)
		} else if p, ok := byKey[util.Normalize(colour)]; ok {
			price = util.DecimalPtr(p)
		}
		variants = append(variants, a.variant(colour, nil, price))
	}
	return []internal.Option{{Name: internal.OptionColour, Values: colours}}, variants
}

func (a Assembler) variant(option1 string, option2 *string, amount *decimal.Decimal) internal.Variant {
	return internal.Variant{
		Option1:             option1,
		Option2:             option2,
		Price:               a.Prices.Convert(amount),
		InventoryPolicy:     internal.InventoryContinue,
		InventoryManagement: a.InventoryManagement,
		Taxable:             false,
		RequiresShipping:    true,
	}
}

type valueSet struct {
	values []string
	seen   map[string]struct{}
}

func newValueSet(initial []string) *valueSet {
	s := &valueSet{values: []string{}, seen: map[string]struct{}{}}
	for _, v := range initial {
		s.add(v)
	}
	return s
}

func (s *valueSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

// keep returns the values present in used, in insertion order. Option values
// never name something no variant carries.
func (s *valueSet) keep(used map[string]struct{}) []string {
	out := []string{}
	for _, v := range s.values {
		if _, ok := used[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

func distinct(values []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, v := range values {
		v = util.NormalizeSpaces(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
