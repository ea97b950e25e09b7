package text

import (
	"strings"
)

type Line struct {
	Text   string
	Number int
}

// Null Object pattern.
// Useful to check iterator.Peek().IsBlank() => true even on the last line.
var MissingLine = Line{
	Text:   "",
	Number: -1,
}

func (l Line) IsBlank() bool {
	return IsBlank(l.Text)
}

func (l Line) IsMissing() bool {
	return l.Number == -1
}

// LineIterator implements the Iterator pattern to iterate over text lines.
type LineIterator struct {
	index int
	lines []Line
}

func NewLineIteratorFromText(text string) *LineIterator {
	rawLines := strings.Split(text, "\n")
	lines := make([]Line, 0, len(rawLines))
	for i, line := range rawLines {
		lines = append(lines, Line{
			Number: i + 1,
			Text:   line,
		})
	}
	return &LineIterator{
		index: 0,
		lines: lines,
	}
}

func (l *LineIterator) HasNext() bool {
	return l.index < len(l.lines)
}

func (l *LineIterator) Next() Line {
	if l.HasNext() {
		line := l.lines[l.index]
		l.index++
		return line
	}
	return MissingLine
}

// Peek is the same as Next but does not move the iterator.
func (l *LineIterator) Peek() Line {
	return l.PeekAhead(0)
}

// PeekAhead returns the line n positions after the current one without
// moving the iterator.
func (l *LineIterator) PeekAhead(n int) Line {
	if l.index+n < len(l.lines) {
		return l.lines[l.index+n]
	}
	return MissingLine
}

// Skip advances the iterator by n lines.
func (l *LineIterator) Skip(n int) {
	l.index += n
	if l.index > len(l.lines) {
		l.index = len(l.lines)
	}
}
