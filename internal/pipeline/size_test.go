package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSizePrecedence(t *testing.T) {
	cases := []struct {
		name   string
		chunks []string
		want   string
	}{
		{name: "letter beats number", chunks: []string{"M 42"}, want: "M"},
		{name: "first unit in text", chunks: []string{"110mm approx 4 inch"}, want: "110mm"},
		{name: "one size", chunks: []string{"Mărime unică"}, want: "One Size"},
		{name: "one size beats unit", chunks: []string{"One size 110mm"}, want: "One Size"},
		{name: "inches", chunks: []string{"Lățime 22 inch"}, want: "22inch"},
		{name: "decimal comma", chunks: []string{"Ø 5,5 cm"}, want: "5.5cm"},
		{name: "bare number", chunks: []string{"Roată 120"}, want: "120"},
		{name: "amount ignored", chunks: []string{"€38", "XS"}, want: "XS"},
		{name: "first chunk wins", chunks: []string{"L", "XL"}, want: "L"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractSize(tc.chunks)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestExtractSizeAbsent(t *testing.T) {
	assert.Nil(t, ExtractSize(nil))
	assert.Nil(t, ExtractSize([]string{"Negru", "€45,00", "Model"}))
	assert.Nil(t, ExtractSize([]string{"Mat"}))
}
