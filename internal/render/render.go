package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/teachpad/learning-assist/internal/lesson"
	"github.com/teachpad/learning-assist/pkg/text"
)

var regexBoldSpan = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Emoji-prefixed phrases recognized verbatim as a distinct sub-heading style.
var contentSubheadings = map[string]bool{
	"🎥 RECOMMENDED VIDEOS:":   true,
	"📚 ADDITIONAL RESOURCES:":  true,
	"🎯 TEACHING ACTIVITIES:":   true,
}

// Render converts tokenized text (real links already replaced by
// placeholder tokens) into an HTML fragment. Tokens pass through untouched;
// the caller substitutes them back after rendering. All raw text is
// HTML-escaped before any markup substitution, so model-supplied markup is
// displayed, never interpreted. Output ordering corresponds line-for-line
// to input ordering.
func Render(tokenized string) string {
	// Runs of blank lines carry no more meaning than one.
	tokenized = strings.TrimRight(text.SquashBlankLines(tokenized), "\n")
	blocks := ScanBlocks(tokenized)

	var sb strings.Builder
	listOpen := false
	listOrdered := false

	closeList := func() {
		if !listOpen {
			return
		}
		if listOrdered {
			sb.WriteString("</ol>\n")
		} else {
			sb.WriteString("</ul>\n")
		}
		listOpen = false
	}

	for _, block := range blocks {
		if block.Kind != BlockListItem {
			closeList()
		}

		switch block.Kind {
		case BlockHeading:
			writeHeading(&sb, block)
		case BlockTimedSegment:
			fmt.Fprintf(&sb, `<h3 class="segment-heading"><span class="segment-title">%s</span> <span class="segment-time">(%s min)</span></h3>`,
				html.EscapeString(block.Title), html.EscapeString(block.Time))
			sb.WriteString("\n")
			if strings.TrimSpace(block.Trailing) != "" {
				sb.WriteString("<p>" + inline(block.Trailing) + "</p>\n")
			}
		case BlockTable:
			writeTable(&sb, block)
		case BlockListItem:
			if listOpen && listOrdered != block.Ordered {
				closeList()
			}
			if !listOpen {
				if block.Ordered {
					sb.WriteString("<ol>\n")
				} else {
					sb.WriteString("<ul>\n")
				}
				listOpen = true
				listOrdered = block.Ordered
			}
			sb.WriteString("<li>" + inline(block.Text) + "</li>\n")
		case BlockBlank:
			sb.WriteString("<br>\n")
		case BlockParagraph:
			sb.WriteString("<p>" + inline(block.Text) + "</p>\n")
		}
	}
	closeList()

	return strings.TrimSpace(sb.String())
}

// RenderSection runs the full pipeline over one section's raw content:
// extract links, substitute placeholders, render, reinsert widgets.
func RenderSection(content string) string {
	links := lesson.ExtractLinks(content)
	tokenized, tokens := Substitute(content, links)
	return Reinsert(Render(tokenized), tokens)
}

func writeHeading(sb *strings.Builder, block Block) {
	display := strings.ReplaceAll(block.Text, "**", "")
	if contentSubheadings[strings.TrimSpace(display)] {
		sb.WriteString(`<h3 class="content-subheading">` + html.EscapeString(strings.TrimSpace(display)) + "</h3>\n")
		return
	}
	fmt.Fprintf(sb, "<h%d>%s</h%d>\n", block.Level, html.EscapeString(display), block.Level)
}

func writeTable(sb *strings.Builder, block Block) {
	sb.WriteString("<table>\n<thead>\n<tr>")
	for _, cell := range block.Header {
		sb.WriteString("<th>" + html.EscapeString(cell) + "</th>")
	}
	sb.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range block.Rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
}

// inline escapes a line of text, then converts **bold** spans. Escaping
// first means injected markup renders as text; the bold markers survive
// escaping because * is not an HTML metacharacter.
func inline(line string) string {
	escaped := html.EscapeString(line)
	return regexBoldSpan.ReplaceAllString(escaped, "<strong>$1</strong>")
}
