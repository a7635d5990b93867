package pipeline

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsimport/internal/util"
)

func testConverter() PriceConverter {
	return NewPriceConverter(decimal.RequireFromString("4.97"), decimal.NewFromInt(5))
}

func TestConvertBucketRounding(t *testing.T) {
	conv := testConverter()

	got := conv.Convert(util.DecimalPtr(decimal.RequireFromString("38.00")))
	require.NotNil(t, got)
	assert.Equal(t, "189.99", *got)

	got = conv.Convert(util.DecimalPtr(decimal.Zero))
	require.NotNil(t, got)
	assert.Equal(t, "4.99", *got)

	tens := NewPriceConverter(decimal.NewFromInt(1), decimal.NewFromInt(10))
	assert.Equal(t, "19.99", *tens.Convert(util.DecimalPtr(decimal.NewFromInt(20))))
	assert.Equal(t, "29.99", *tens.Convert(util.DecimalPtr(decimal.RequireFromString("20.01"))))
}

func TestConvertAbsentStaysAbsent(t *testing.T) {
	assert.Nil(t, testConverter().Convert(nil))
	assert.Nil(t, testConverter().ConvertText("Preț la cerere"))
}

func TestConvertEndsIn99AndIsMonotonic(t *testing.T) {
	conv := testConverter()
	step := decimal.RequireFromString("0.37")
	prev := decimal.Zero
	for amount := decimal.RequireFromString("0.01"); amount.LessThan(decimal.NewFromInt(300)); amount = amount.Add(step) {
		got := conv.Convert(util.DecimalPtr(amount))
		require.NotNil(t, got)
		require.True(t, strings.HasSuffix(*got, ".99"), *got)

		value := decimal.RequireFromString(*got)
		require.False(t, value.LessThan(prev), "%s < %s at %s", value, prev, amount)
		prev = value
	}
}

func TestConvertText(t *testing.T) {
	got := testConverter().ConvertText("Preț vechi: 30,00 € Preț: 38,00 €")
	require.NotNil(t, got)
	assert.Equal(t, "189.99", *got)
}
