package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsimport/internal"
	"partsimport/internal/util"
)

func dec(s string) *decimal.Decimal {
	return util.DecimalPtr(decimal.RequireFromString(s))
}

func row(colour, size string, price *decimal.Decimal) internal.VariantRow {
	r := internal.VariantRow{PriceSource: price}
	if colour != "" {
		r.Colour = util.StringPtr(colour)
	}
	if size != "" {
		r.Size = util.StringPtr(size)
	}
	return r
}

func testAssembler() Assembler {
	return NewAssembler(testConverter(), "")
}

func TestAssembleSized(t *testing.T) {
	rows := []internal.VariantRow{
		row("Negru", "M", dec("38")),
		row("Negru", "L", nil),
		row("Negru", "M", dec("99")),
		row("Alb", "M", dec("40")),
	}
	options, variants := testAssembler().Assemble(
		[]string{"Negru", "Alb", "Roșu"}, []string{"M", "L"}, rows, nil, dec("20"))

	require.Len(t, options, 2)
	assert.Equal(t, internal.OptionColour, options[0].Name)
	assert.Equal(t, []string{"Negru", "Alb"}, options[0].Values)
	assert.Equal(t, internal.OptionSize, options[1].Name)
	assert.Equal(t, []string{"M", "L"}, options[1].Values)

	require.Len(t, variants, 3)
	assert.Equal(t, "Negru", variants[0].Option1)
	assert.Equal(t, "M", *variants[0].Option2)
	assert.Equal(t, "189.99", *variants[0].Price)
	assert.Equal(t, "99.99", *variants[1].Price, "missing row price falls back to the page amount")
	assert.Equal(t, "Alb", variants[2].Option1)
	assert.Equal(t, "199.99", *variants[2].Price)
}

func TestAssembleSizedRowWithoutColour(t *testing.T) {
	options, variants := testAssembler().Assemble(nil, []string{"110mm"},
		[]internal.VariantRow{row("", "110mm", nil), row("", "", dec("5"))}, nil, nil)

	require.Len(t, variants, 1)
	assert.Equal(t, internal.DefaultOptionValue, variants[0].Option1)
	assert.Nil(t, variants[0].Price)
	assert.Equal(t, []string{internal.DefaultOptionValue}, options[0].Values)
	assert.Equal(t, []string{"110mm"}, options[1].Values)
}

func TestAssembleColourOnly(t *testing.T) {
	prices := map[string]decimal.Decimal{"roșu": decimal.NewFromInt(30)}
	options, variants := testAssembler().Assemble([]string{"Roșu", "Negru", "Roșu"}, nil, nil, prices, dec("10"))

	require.Len(t, options, 1)
	assert.Equal(t, []string{"Roșu", "Negru"}, options[0].Values)
	require.Len(t, variants, 2)
	assert.Equal(t, "149.99", *variants[0].Price)
	assert.Equal(t, "49.99", *variants[1].Price)
	assert.Nil(t, variants[1].Option2)
}

func TestAssembleDefault(t *testing.T) {
	options, variants := testAssembler().Assemble(nil, nil, nil, nil, nil)

	require.Len(t, options, 1)
	assert.Equal(t, []string{"Default"}, options[0].Values)
	require.Len(t, variants, 1)
	v := variants[0]
	assert.Equal(t, "Default", v.Option1)
	assert.Nil(t, v.Price, "no amount anywhere means no price, never 0.00")
	assert.Equal(t, internal.InventoryContinue, v.InventoryPolicy)
	assert.Equal(t, "shopify", v.InventoryManagement)
	assert.False(t, v.Taxable)
	assert.True(t, v.RequiresShipping)
}
