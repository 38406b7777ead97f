package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/JonMunkholm/sheetfetch/internal/core"
	"github.com/mattn/go-runewidth"
)

// minColumnWidth keeps separator cells at least "---".
const minColumnWidth = 3

// Table writes m as an aligned pipe table. The first column holds the keys;
// the others are every column seen across rows, in first-seen order. Cells
// a row does not have are left blank. Tracked columns, when present, follow
// the table on their own line.
func Table(w io.Writer, m *core.Mapping) error {
	keys := m.Keys()

	var columns []string
	seen := make(map[string]bool)
	for _, key := range keys {
		row, _ := m.Get(key)
		for _, col := range row.Columns() {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	table := make([][]string, 0, len(keys)+1)
	table = append(table, append([]string{""}, columns...))
	for _, key := range keys {
		row, _ := m.Get(key)
		line := make([]string, 0, len(columns)+1)
		line = append(line, key)
		for _, col := range columns {
			v, _ := row.Get(col)
			line = append(line, v)
		}
		table = append(table, line)
	}

	widths := make([]int, len(columns)+1)
	for _, line := range table {
		for i, cell := range line {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	for i := range widths {
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}

	bw := bufio.NewWriter(w)
	for i, line := range table {
		writeLine(bw, line, widths)
		if i == 0 {
			sep := make([]string, len(widths))
			for j, cw := range widths {
				sep[j] = strings.Repeat("-", cw)
			}
			writeLine(bw, sep, widths)
		}
	}

	if supported, ok := m.Supported(); ok {
		bw.WriteString("\n")
		bw.WriteString(m.SupportedField())
		bw.WriteString(": ")
		bw.WriteString(strings.Join(supported, ", "))
		bw.WriteString("\n")
	}

	return bw.Flush()
}

func writeLine(bw *bufio.Writer, cells []string, widths []int) {
	bw.WriteString("|")
	for i, cell := range cells {
		bw.WriteString(" ")
		bw.WriteString(cell)
		if pad := widths[i] - runewidth.StringWidth(cell); pad > 0 {
			bw.WriteString(strings.Repeat(" ", pad))
		}
		bw.WriteString(" |")
	}
	bw.WriteString("\n")
}
