package lesson

import (
	"net/url"
	"regexp"
	"strings"
)

// LinkKind classifies the resource a hyperlink points at.
type LinkKind string

const (
	LinkVideo    LinkKind = "video"
	LinkAudio    LinkKind = "audio"
	LinkGame     LinkKind = "game"
	LinkTool     LinkKind = "tool"
	LinkActivity LinkKind = "activity"
	LinkOther    LinkKind = "other"
)

// ActivitySentinel marks a non-navigable classroom activity pseudo-link.
const ActivitySentinel = "Classroom Activity"

// Fallback when a bare URL cannot be parsed for a hostname-derived title.
const genericLinkTitle = "Online Resource"

// Link is derived read-only from a section's content at render time; it is
// never persisted, so stored text and displayed links cannot drift.
type Link struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Kind  LinkKind `json:"kind"`
}

var (
	// Inline markdown form [title](url). The URL part accepts the activity
	// sentinel in addition to absolute URIs.
	regexMarkdownLink = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

	// Bare absolute URLs: scheme + non-whitespace/non-angle-bracket/non-bracket body.
	regexBareURL = regexp.MustCompile(`https?://[^\s<>\[\]()]+`)

	// YouTube-specific URL shapes.
	regexYouTubeURL = regexp.MustCompile(`https?://(?:www\.)?(?:youtube\.com/watch\?v=[\w-]+[^\s<>\[\]()]*|youtu\.be/[\w-]+[^\s<>\[\]()]*)`)
)

// ExtractLinks scans content for hyperlinks in two passes: inline markdown
// links first, then bare URLs not already captured. Order follows first
// occurrence; URLs are unique within one extraction.
func ExtractLinks(content string) []*Link {
	var links []*Link
	seen := make(map[string]bool)

	for _, match := range regexMarkdownLink.FindAllStringSubmatch(content, -1) {
		title := strings.TrimSpace(match[1])
		linkURL := strings.TrimSpace(match[2])
		if seen[linkURL] {
			continue
		}
		seen[linkURL] = true
		links = append(links, &Link{
			Title: title,
			URL:   linkURL,
			Kind:  ClassifyLink(title, linkURL),
		})
	}

	for _, linkURL := range regexBareURL.FindAllString(content, -1) {
		if seen[linkURL] {
			continue
		}
		seen[linkURL] = true
		title := titleFromURL(linkURL)
		links = append(links, &Link{
			Title: title,
			URL:   linkURL,
			Kind:  ClassifyLink(title, linkURL),
		})
	}

	return links
}

// ExtractYouTubeVideos is ExtractLinks specialized to YouTube URL shapes.
// Every extracted link has kind video.
func ExtractYouTubeVideos(content string) []*Link {
	var links []*Link
	seen := make(map[string]bool)

	for _, match := range regexMarkdownLink.FindAllStringSubmatch(content, -1) {
		title := strings.TrimSpace(match[1])
		linkURL := strings.TrimSpace(match[2])
		if !regexYouTubeURL.MatchString(linkURL) || seen[linkURL] {
			continue
		}
		seen[linkURL] = true
		links = append(links, &Link{Title: title, URL: linkURL, Kind: LinkVideo})
	}

	for _, linkURL := range regexYouTubeURL.FindAllString(content, -1) {
		if seen[linkURL] {
			continue
		}
		seen[linkURL] = true
		links = append(links, &Link{Title: titleFromURL(linkURL), URL: linkURL, Kind: LinkVideo})
	}

	return links
}

// Suggestive wordings checked, in rule order, against title and URL.
var (
	activityWords = []string{"hands-on", "activity", "experiment", "worksheet", "exercise", "craft"}
	videoWords    = []string{"youtube.com", "youtu.be", "vimeo.com", "video", "watch", "documentary", "film"}
	audioWords    = []string{"podcast", "audio", "listen", "spotify", "soundcloud", "song"}
	gameWords     = []string{"game", "quiz", "kahoot", "simulation", "puzzle", "play"}
	toolWords     = []string{"tool", "calculator", "generator", "converter", "app"}
)

// ClassifyLink infers a link kind from its title and URL. The first
// matching rule wins.
func ClassifyLink(title, linkURL string) LinkKind {
	if title == ActivitySentinel || linkURL == ActivitySentinel {
		return LinkActivity
	}
	haystack := strings.ToLower(title + " " + linkURL)
	switch {
	case containsAny(haystack, activityWords):
		return LinkActivity
	case containsAny(haystack, videoWords):
		return LinkVideo
	case containsAny(haystack, audioWords):
		return LinkAudio
	case containsAny(haystack, gameWords):
		return LinkGame
	case containsAny(haystack, toolWords):
		return LinkTool
	}
	return LinkOther
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// titleFromURL derives a display title from a URL's hostname: strip a
// leading "www.", capitalize the first letter. Parse failures degrade to a
// generic title instead of failing the extraction.
func titleFromURL(linkURL string) string {
	parsed, err := url.Parse(linkURL)
	if err != nil || parsed.Hostname() == "" {
		return genericLinkTitle
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if host == "" {
		return genericLinkTitle
	}
	return strings.ToUpper(host[:1]) + host[1:]
}
