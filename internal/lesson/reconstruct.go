package lesson

import (
	"fmt"
	"strings"
)

// Reconstruct serializes an ordered list of sections back into one
// canonical text blob: a bolded title line (with an optional duration
// annotation), a blank line, then the raw content, sections joined by a
// blank line.
//
// This is the inverse of heading-pattern parsing, not of the JSON decode:
// a JSON-derived document round-trips into heading-style plain text on its
// first edit. Callers persist the reconstructed text as the new canonical
// form going forward.
func Reconstruct(sections []*Section) string {
	var parts []string
	for _, section := range sections {
		var sb strings.Builder
		sb.WriteString("**")
		sb.WriteString(section.Title)
		sb.WriteString("**")
		if section.Duration > 0 {
			fmt.Fprintf(&sb, " (%d min)", section.Duration)
		}
		sb.WriteString(":\n\n")
		sb.WriteString(section.Content)
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n\n")
}
