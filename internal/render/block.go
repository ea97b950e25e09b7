// Package render converts the restricted markup dialect produced by the AI
// provider into safe HTML, substituting extracted links with widget markup.
package render

import (
	"regexp"
	"strings"

	"github.com/teachpad/learning-assist/pkg/text"
)

// BlockKind tags one classified line-group from the scanner.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockTimedSegment
	BlockTable
	BlockListItem
	BlockBlank
	BlockParagraph
)

// Block is the renderer-internal tagged variant over classified lines.
// Classification is mutually exclusive per line: a line that matches the
// table-separator lookahead is never also treated as a heading.
type Block struct {
	Kind BlockKind

	// BlockHeading
	Level int
	Text  string

	// BlockTimedSegment
	Title    string
	Time     string
	Trailing string

	// BlockTable
	Header []string
	Rows   [][]string

	// BlockListItem
	Ordered bool
}

var (
	// "Title (5 min):" or "Title (10-15 min): trailing remark"
	regexTimedSegment = regexp.MustCompile(`^(.+?)\s*\((\d+(?:\s*[-–]\s*\d+)?)\s*min\)\s*:\s*(.*)$`)

	// Table separator row: cells of -/: between pipes.
	regexTableSeparator = regexp.MustCompile(`^\s*\|?\s*:?-+:?\s*(?:\|\s*:?-+:?\s*)*\|?\s*$`)

	regexOrderedItem = regexp.MustCompile(`^\d+[.)]\s+(.*)$`)
)

// Canonical top-level labels render one heading level higher than other
// colon-terminated lines.
var canonicalLabels = map[string]bool{
	"learning objectives":       true,
	"materials needed":          true,
	"the 40-minute lesson plan": true,
	"homework/extension":        true,
	"educational resources":     true,
}

// ScanBlocks classifies text line by line in a single forward scan with one
// line of lookahead for tables.
func ScanBlocks(input string) []Block {
	var blocks []Block

	iterator := text.NewLineIteratorFromText(input)
	for iterator.HasNext() {
		line := iterator.Peek()
		trimmed := strings.TrimSpace(line.Text)

		// Table: a pipe line whose next line is a separator row.
		if strings.Contains(trimmed, "|") && regexTableSeparator.MatchString(iterator.PeekAhead(1).Text) {
			header := splitTableRow(trimmed)
			iterator.Skip(2) // header + separator
			var rows [][]string
			for iterator.HasNext() && strings.Contains(iterator.Peek().Text, "|") {
				rows = append(rows, splitTableRow(strings.TrimSpace(iterator.Next().Text)))
			}
			blocks = append(blocks, Block{Kind: BlockTable, Header: header, Rows: rows})
			continue
		}
		iterator.Next()

		if trimmed == "" {
			blocks = append(blocks, Block{Kind: BlockBlank})
			continue
		}

		if match := regexTimedSegment.FindStringSubmatch(trimmed); match != nil {
			blocks = append(blocks, Block{
				Kind:     BlockTimedSegment,
				Title:    strings.Trim(match[1], "* "),
				Time:     match[2],
				Trailing: match[3],
			})
			continue
		}

		if strings.HasSuffix(trimmed, ":") && !isBulletLine(trimmed) {
			label := strings.TrimSuffix(trimmed, ":")
			label = strings.Trim(label, "*# ")
			level := 3
			if canonicalLabels[strings.ToLower(label)] {
				level = 2
			}
			blocks = append(blocks, Block{Kind: BlockHeading, Level: level, Text: trimmed})
			continue
		}

		if level, heading, ok := markdownHeading(trimmed); ok {
			blocks = append(blocks, Block{Kind: BlockHeading, Level: level, Text: heading})
			continue
		}

		if isBulletLine(trimmed) {
			blocks = append(blocks, Block{
				Kind: BlockListItem,
				Text: strings.TrimSpace(trimmed[1:]),
			})
			continue
		}

		if match := regexOrderedItem.FindStringSubmatch(trimmed); match != nil {
			blocks = append(blocks, Block{
				Kind:    BlockListItem,
				Ordered: true,
				Text:    match[1],
			})
			continue
		}

		blocks = append(blocks, Block{Kind: BlockParagraph, Text: trimmed})
	}

	return blocks
}

func isBulletLine(trimmed string) bool {
	return (strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")) && len(trimmed) > 2
}

// markdownHeading maps #/##/### markers to heading levels 1-3.
func markdownHeading(trimmed string) (int, string, bool) {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 3 || level == len(trimmed) || trimmed[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(trimmed[level:]), true
}

// splitTableRow splits a pipe-delimited row into trimmed cells, dropping
// the empty edge cells produced by leading/trailing pipes.
func splitTableRow(row string) []string {
	row = strings.Trim(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		cells = append(cells, strings.TrimSpace(part))
	}
	return cells
}
