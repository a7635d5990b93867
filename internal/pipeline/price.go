package pipeline

import (
	"github.com/shopspring/decimal"

	"partsimport/internal/util"
)

var cent = decimal.New(1, -2)

// PriceConverter turns source-currency amounts into storefront prices.
type PriceConverter struct {
	Rate   decimal.Decimal
	Bucket decimal.Decimal
}

func NewPriceConverter(rate, bucket decimal.Decimal) PriceConverter {
	return PriceConverter{Rate: rate, Bucket: bucket}
}

// Convert multiplies by the rate, rounds up to the next bucket multiple and
// steps back one cent, so every price ends in .99. Nil in, nil out.
func (p PriceConverter) Convert(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}
	raw := amount.Mul(p.Rate)
	steps := raw.Div(p.Bucket).Ceil()
	if steps.LessThan(decimal.NewFromInt(1)) {
		steps = decimal.NewFromInt(1)
	}
	price := steps.Mul(p.Bucket).Sub(cent).StringFixed(2)
	return &price
}

// ConvertText prices the canonical amount found in text.
func (p PriceConverter) ConvertText(text string) *string {
	return p.Convert(util.CanonicalAmount(text))
}
