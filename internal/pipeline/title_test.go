package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTitle(t *testing.T) {
	cases := []struct {
		display, vendor, search string
		want                    string
	}{
		{"Deck", "Tilt", "Tilt Formula Deck", "Deck Tilt Formula"},
		{"SCS", "Apex", "apex scs clamp", "SCS Apex Clamp"},
		{"Trotinetă", "Blunt", "blunt prodigy s9", "Trotinetă Blunt Prodigy S9"},
		{"", "", "TILT FORMULA", "Tilt Formula"},
		{"Bars", "Ethic DTC", "ethic dtc  pardon", "Bars Ethic DTC Pardon"},
		{"Wheels", "Wheels", "", "Wheels"},
		{"Clamp", "Apex", "apex ABC clamp", "Clamp Apex Abc"},
		{"", "", "dtc bars", "Dtc Bars"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BuildTitle(tc.display, tc.vendor, tc.search), tc.search)
	}
}

func TestDedupeWordsIdempotent(t *testing.T) {
	for _, in := range []string{
		"Deck Tilt Tilt Formula Deck",
		"Roată Roata 110mm - 110MM",
		"Ghidon  -  Ethic -",
		"",
	} {
		once := DedupeWords(in)
		assert.Equal(t, once, DedupeWords(once), in)
	}
	assert.Equal(t, "Roată 110mm -", DedupeWords("Roată Roata 110mm - 110MM"))
}
