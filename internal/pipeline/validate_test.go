package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsimport/internal"
	"partsimport/internal/util"
)

func validRecord() internal.ProductRecord {
	return internal.ProductRecord{
		Title: "Deck Tilt Formula",
		Options: []internal.Option{
			{Name: internal.OptionColour, Values: []string{"Negru"}},
			{Name: internal.OptionSize, Values: []string{"M", "L"}},
		},
		Variants: []internal.Variant{
			{Option1: "Negru", Option2: util.StringPtr("M"), Price: util.StringPtr("189.99")},
			{Option1: "Negru", Option2: util.StringPtr("L")},
		},
		Count: 2,
	}
}

func TestValidateRecordAccepts(t *testing.T) {
	require.NoError(t, ValidateRecord(validRecord()))
}

func TestValidateRecordRejects(t *testing.T) {
	cases := map[string]func(*internal.ProductRecord){
		"empty title":    func(r *internal.ProductRecord) { r.Title = " " },
		"unused value":   func(r *internal.ProductRecord) { r.Options[0].Values = append(r.Options[0].Values, "Alb") },
		"unknown value":  func(r *internal.ProductRecord) { r.Variants[1].Option1 = "Alb" },
		"duplicate pair": func(r *internal.ProductRecord) { r.Variants[1].Option2 = util.StringPtr("M") },
		"count mismatch": func(r *internal.ProductRecord) { r.Count = 3 },
		"missing option": func(r *internal.ProductRecord) { r.Variants[0].Option2 = nil },
		"price suffix":   func(r *internal.ProductRecord) { r.Variants[0].Price = util.StringPtr("190.00") },
		"no variants":    func(r *internal.ProductRecord) { r.Variants = nil; r.Count = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			rec := validRecord()
			mutate(&rec)
			assert.ErrorIs(t, ValidateRecord(rec), ErrInvariant)
		})
	}
}
