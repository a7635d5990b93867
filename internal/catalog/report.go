package catalog

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Report renders the category table as markdown: canonical name, display
// token and the category's position in the alias order ("-" when it is only
// reachable by literal name). Columns are padded by display width so
// diacritics line up.
func (c *Catalog) Report() string {
	position := map[string]string{}
	for i, r := range c.aliases {
		position[r.Label] = strconv.Itoa(i + 1)
	}

	table := [][]string{{"Category", "Display", "Alias order"}}
	for _, cat := range c.categories {
		pos, ok := position[cat.Name]
		if !ok {
			pos = "-"
		}
		if cat.Name == CategoryClamp {
			pos = "0"
		}
		table = append(table, []string{cat.Name, cat.Display, pos})
	}
	return strings.Join(formatTable(table), "\n")
}

func formatTable(table [][]string) []string {
	widths := make([]int, len(table[0]))
	for _, row := range table {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	separator := make([]string, len(widths))
	for i, w := range widths {
		separator[i] = strings.Repeat("-", w)
	}
	rows := append([][]string{table[0], separator}, table[1:]...)

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		var sb strings.Builder
		sb.WriteString("|")
		for j, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(cell)
			if pad := widths[j] - runewidth.StringWidth(cell); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
			sb.WriteString(" |")
		}
		out = append(out, sb.String())
	}
	return out
}
