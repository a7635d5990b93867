package pipeline

import "testing"

func TestPagePrice(t *testing.T) {
	cases := []struct {
		name  string
		page  string
		title string
		want  string
	}{
		{
			name:  "labelled price wins over shipping threshold",
			page:  "Acasă / Piese\nTransport gratuit peste 300 lei\nRoată spate 110mm\nPreț: 189 lei\nProduse similare 349 lei",
			title: "Roată spate 110mm",
			want:  "189",
		},
		{
			name:  "line below the title",
			page:  "Livrare gratuită peste 300 lei\nRoată spate 110mm\n189 lei\nProduse similare\nFurcă 899 lei",
			title: "Roată spate 110mm",
			want:  "189",
		},
		{
			name:  "shipping line skipped in last resort",
			page:  "Transport gratuit peste 300 lei\n€40",
			title: "Formula 20.5",
			want:  "40",
		},
		{
			name:  "labelled price with space thousands",
			page:  "Preț: 1 299,00 lei",
			title: "Trotinetă completă",
			want:  "1299",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PagePrice(tc.page, tc.title)
			if got == nil || got.String() != tc.want {
				t.Fatalf("got %v want %s", got, tc.want)
			}
		})
	}
}

func TestPagePriceAbsent(t *testing.T) {
	if got := PagePrice("Transport gratuit peste 300 lei\nPreț la cerere", "Sticker pack"); got != nil {
		t.Fatalf("got %v", got)
	}
}
