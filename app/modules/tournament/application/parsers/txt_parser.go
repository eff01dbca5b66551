package parsers

import (
	"fmt"
	"strings"
)

// TXTParser reads one player name per line.
type TXTParser struct{}

// NewTXTParser creates a new plain-text parser
func NewTXTParser() *TXTParser {
	return &TXTParser{}
}

// Parse returns the non-blank lines of data, trimmed.
func (p *TXTParser) Parse(data []byte) ([]string, error) {
	content, err := preprocessText(data)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(content, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in text file", ErrEmptyRoster)
	}
	return names, nil
}
