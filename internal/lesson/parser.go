package lesson

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Headers shorter than this many characters of captured content are
// considered false positives and discarded.
const minSectionContentLength = 10

// Parse decomposes a raw content blob into an ordered list of sections.
//
// The blob is first treated as a JSON envelope with recognized keys. When
// that fails (the usual case for free prose), an ordered battery of
// heading patterns is applied. As a last resort the whole input becomes a
// single catch-all section, so Parse never returns an empty list for
// non-blank input.
func Parse(raw string) []*Section {
	sections := parseStructured(raw)
	if len(sections) == 0 {
		sections = parseHeadings(raw)
	}
	if len(sections) == 0 {
		sections = []*Section{{
			Title:   "Lesson Content",
			Kind:    KindOther,
			Content: strings.TrimSpace(raw),
		}}
	}
	assignIDs(sections)
	return sections
}

/*
 * Attempt 1: structured JSON envelope
 */

type mainContentItem struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	TimeEstimate int    `json:"timeEstimate"`
}

// parseStructured decodes a JSON envelope into sections, emitted in the
// canonical order regardless of key order in the source object. A decode
// failure is expected (free-prose input) and returns nil to trigger the
// heading battery.
func parseStructured(raw string) []*Section {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil
	}

	var sections []*Section

	if content := numberedList(envelope["objectives"]); content != "" {
		sections = append(sections, &Section{
			Title:   "Learning Objectives",
			Kind:    KindObjectives,
			Content: content,
		})
	}
	if content := bulletedList(envelope["materials"]); content != "" {
		sections = append(sections, &Section{
			Title:   "Materials Needed",
			Kind:    KindMaterials,
			Content: content,
		})
	}
	if content := decodeString(envelope["introduction"]); content != "" {
		sections = append(sections, &Section{
			Title:    "Introduction",
			Kind:     KindIntroduction,
			Content:  content,
			Duration: 5,
		})
	}
	sections = append(sections, mainContentSections(envelope["mainContent"])...)
	if content := decodeString(envelope["wrapUp"]); content != "" {
		sections = append(sections, &Section{
			Title:    "Wrap-Up",
			Kind:     KindContent,
			Content:  content,
			Duration: 2,
		})
	}
	if content := decodeString(envelope["assessment"]); content != "" {
		sections = append(sections, &Section{
			Title:   "Assessment",
			Kind:    KindAssessment,
			Content: content,
		})
	}
	if content := decodeString(envelope["homework"]); content != "" {
		sections = append(sections, &Section{
			Title:   "Homework",
			Kind:    KindHomework,
			Content: content,
		})
	}
	if content := bulletedList(envelope["resources"]); content != "" {
		sections = append(sections, &Section{
			Title:   "Educational Resources",
			Kind:    KindResources,
			Content: content,
		})
	}

	return sections
}

// mainContentSections expands the mainContent key. An array value yields one
// section per item (honoring an explicit timeEstimate); a string value
// yields a single untimed section.
func mainContentSections(raw json.RawMessage) []*Section {
	if len(raw) == 0 {
		return nil
	}

	var items []mainContentItem
	if err := json.Unmarshal(raw, &items); err == nil {
		var sections []*Section
		for _, item := range items {
			if strings.TrimSpace(item.Content) == "" {
				continue
			}
			title := strings.TrimSpace(item.Title)
			if title == "" {
				title = "Main Content"
			}
			sections = append(sections, &Section{
				Title:    title,
				Kind:     KindContent,
				Content:  strings.TrimSpace(item.Content),
				Duration: item.TimeEstimate,
			})
		}
		return sections
	}

	if content := decodeString(raw); content != "" {
		return []*Section{{
			Title:   "Main Content",
			Kind:    KindContent,
			Content: content,
		}}
	}
	return nil
}

func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

func decodeStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

// numberedList flattens an array value into "1. ..." lines. A plain string
// value is used as-is.
func numberedList(raw json.RawMessage) string {
	if values := decodeStrings(raw); values != nil {
		var lines []string
		for i, value := range values {
			if strings.TrimSpace(value) == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(value)))
		}
		return strings.Join(lines, "\n")
	}
	return decodeString(raw)
}

// bulletedList flattens an array value into "- ..." lines. A plain string
// value is used as-is.
func bulletedList(raw json.RawMessage) string {
	if values := decodeStrings(raw); values != nil {
		var lines []string
		for _, value := range values {
			if strings.TrimSpace(value) == "" {
				continue
			}
			lines = append(lines, "- "+strings.TrimSpace(value))
		}
		return strings.Join(lines, "\n")
	}
	return decodeString(raw)
}

/*
 * Attempt 2: heading-pattern battery
 */

type headingPattern struct {
	kind   Kind
	title  string
	phrase string // regex fragment matching the header wording
}

// headingPatterns is the fixed priority order. Each pattern's capture is
// bounded by the union of all later headers, so the same span of text is
// never claimed twice.
var headingPatterns = []headingPattern{
	{KindObjectives, "Learning Objectives", `(?:learning\s+)?objectives?`},
	{KindMaterials, "Materials Needed", `materials(?:\s+needed)?`},
	{KindIntroduction, "Introduction", `introduction`},
	{KindContent, "Main Content", `main\s+content`},
	{KindActivities, "Activities", `(?:teaching\s+|classroom\s+)?activities`},
	{KindContent, "Wrap-Up", `(?:wrap[\s-]?up|conclusion)`},
	{KindAssessment, "Assessment", `assessment(?:\s+methods?)?`},
	{KindHomework, "Homework", `homework(?:\s*(?:/|and|&)\s*follow[\s-]?up)?`},
	{KindResources, "Educational Resources", `(?:educational\s+)?resources`},
}

var headingRegexps = compileHeadingPatterns()

// headerFragment matches one header occurrence: optional bold markers, the
// wording, an optional "(N min)" annotation, and a terminating colon.
// capture controls whether the duration group is capturing.
func headerFragment(phrase string, capture bool) string {
	duration := `\(\d+[^)]*\)`
	if capture {
		duration = `\((\d+)[^)]*\)`
	}
	return `\*{0,2}\b` + phrase + `\b\*{0,2}\s*(?:` + duration + `)?\s*:`
}

// compileHeadingPatterns builds one regexp per pattern. Go's regexp has no
// lookahead, so the "up to the next later header" boundary is expressed as
// a non-greedy capture terminated by an alternation of the later header
// fragments (or end of text).
func compileHeadingPatterns() []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(headingPatterns))
	for i, pattern := range headingPatterns {
		var boundaries []string
		for _, later := range headingPatterns[i+1:] {
			boundaries = append(boundaries, headerFragment(later.phrase, false))
		}
		terminator := `$`
		if len(boundaries) > 0 {
			terminator = `(?:` + strings.Join(boundaries, `|`) + `|$)`
		}
		expr := `(?is)` + headerFragment(pattern.phrase, true) + `\s*(.*?)\s*` + terminator
		compiled[i] = regexp.MustCompile(expr)
	}
	return compiled
}

// parseHeadings runs the pattern battery over free text. A match only
// contributes a section when its captured content is long enough to rule
// out a false positive.
func parseHeadings(raw string) []*Section {
	var sections []*Section
	for i, pattern := range headingPatterns {
		match := headingRegexps[i].FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		duration := 0
		if match[1] != "" {
			duration, _ = strconv.Atoi(match[1])
		}
		content := strings.TrimSpace(match[2])
		if len(content) <= minSectionContentLength {
			continue
		}
		sections = append(sections, &Section{
			Title:    pattern.title,
			Kind:     pattern.kind,
			Content:  content,
			Duration: duration,
		})
	}
	return sections
}
