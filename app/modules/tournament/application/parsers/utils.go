package parsers

import (
	"bytes"
	"fmt"
	"strings"
)

// nameColumns are header cells recognised as the player name column.
var nameColumns = []string{"name", "player", "playername", "participant", "nome"}

func normalizeCell(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// findNameColumn returns the index of the name column in header, or -1.
func findNameColumn(header []string) int {
	for i, col := range header {
		norm := normalizeCell(col)
		for _, name := range nameColumns {
			if norm == name {
				return i
			}
		}
	}
	return -1
}

// namesFromRows picks the name column out of tabular rows. When the first row carries
// a recognised header it is skipped and that column is used, otherwise every row
// contributes its first cell.
func namesFromRows(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	col, start := 0, 0
	if idx := findNameColumn(rows[0]); idx >= 0 {
		col, start = idx, 1
	}

	names := make([]string, 0, len(rows)-start)
	for _, row := range rows[start:] {
		if col >= len(row) {
			continue
		}
		if name := strings.TrimSpace(row[col]); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// preprocessText strips a UTF-8 BOM and normalises line endings.
func preprocessText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrEmptyRoster)
	}

	// Strip UTF-8 BOM if present (0xEF, 0xBB, 0xBF)
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	cleaned := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	cleaned = bytes.ReplaceAll(cleaned, []byte("\r"), []byte("\n"))
	return string(cleaned), nil
}

// detectDelimiter counts commas, semicolons and tabs in the first 5 lines.
func detectDelimiter(content string) rune {
	lines := strings.SplitN(content, "\n", 6)
	sampleSize := min(len(lines), 5)

	counts := map[rune]int{}
	for i := 0; i < sampleSize; i++ {
		counts[','] += strings.Count(lines[i], ",")
		counts[';'] += strings.Count(lines[i], ";")
		counts['\t'] += strings.Count(lines[i], "\t")
	}

	delimiter := ','
	for _, r := range []rune{';', '\t'} {
		if counts[r] > counts[delimiter] {
			delimiter = r
		}
	}
	return delimiter
}
