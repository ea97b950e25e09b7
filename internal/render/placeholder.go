package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/teachpad/learning-assist/internal/lesson"
)

// Token returns the placeholder standing in for the link at the given
// extraction index. The shape survives html.EscapeString unchanged, which
// is what lets the renderer ignore tokens entirely.
func Token(index int) string {
	return fmt.Sprintf("@@LINK_%d@@", index)
}

// Substitute replaces every occurrence of each extracted link with a token
// unique to its index and returns the tokenized text plus the token→link
// map used by Reinsert.
//
// All markdown forms are replaced before any bare URL: a bare-URL pass would
// also consume the URL portion of an as-yet-unreplaced markdown link and
// corrupt it. Bare URLs are then replaced longest first, so a URL that
// prefixes another cannot eat into it. After substitution the tokenized text
// contains zero remaining occurrences of any extracted URL.
func Substitute(content string, links []*lesson.Link) (string, map[string]*lesson.Link) {
	tokens := make(map[string]*lesson.Link, len(links))
	for i, link := range links {
		token := Token(i)
		tokens[token] = link
		markdownForm := fmt.Sprintf("[%s](%s)", link.Title, link.URL)
		content = strings.ReplaceAll(content, markdownForm, token)
	}

	byLength := make([]int, len(links))
	for i := range links {
		byLength[i] = i
	}
	sort.SliceStable(byLength, func(a, b int) bool {
		return len(links[byLength[a]].URL) > len(links[byLength[b]].URL)
	})
	for _, i := range byLength {
		content = strings.ReplaceAll(content, links[i].URL, Token(i))
	}
	return content, tokens
}

// Reinsert replaces each token in rendered HTML with widget markup: an
// inline anchor for ordinary links, a non-interactive activity badge for
// classroom activities.
func Reinsert(rendered string, tokens map[string]*lesson.Link) string {
	for token, link := range tokens {
		rendered = strings.ReplaceAll(rendered, token, widgetHTML(link))
	}
	return rendered
}

var linkKindIcons = map[lesson.LinkKind]string{
	lesson.LinkVideo:    "🎥",
	lesson.LinkAudio:    "🎧",
	lesson.LinkGame:     "🎮",
	lesson.LinkTool:     "🔧",
	lesson.LinkActivity: "🎯",
	lesson.LinkOther:    "🔗",
}

func widgetHTML(link *lesson.Link) string {
	title := html.EscapeString(link.Title)
	icon := linkKindIcons[link.Kind]
	if icon == "" {
		icon = linkKindIcons[lesson.LinkOther]
	}
	if link.Kind == lesson.LinkActivity || link.URL == lesson.ActivitySentinel {
		return fmt.Sprintf(`<span class="activity-badge"><span class="icon">%s</span> <small>%s</small></span>`, icon, title)
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" class="content-link content-link-%s"><span class="icon">%s</span> %s</a>`,
		html.EscapeString(link.URL), link.Kind, icon, title)
}
