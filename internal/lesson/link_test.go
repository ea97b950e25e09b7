package lesson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachpad/learning-assist/internal/lesson"
)

func TestExtractLinks(t *testing.T) {

	t.Run("Markdown then bare, first occurrence order", func(t *testing.T) {
		content := "Watch [Photosynthesis explained](https://www.youtube.com/watch?v=abc123) first.\n" +
			"Background reading: https://www.nasa.gov/plants\n" +
			"Then try [Cell quiz](https://quizlet.com/cells)."

		links := lesson.ExtractLinks(content)
		require.Len(t, links, 3)

		assert.Equal(t, "Photosynthesis explained", links[0].Title)
		assert.Equal(t, "https://www.youtube.com/watch?v=abc123", links[0].URL)
		assert.Equal(t, lesson.LinkVideo, links[0].Kind)

		assert.Equal(t, "Cell quiz", links[1].Title)
		assert.Equal(t, lesson.LinkGame, links[1].Kind)

		assert.Equal(t, "Nasa.gov", links[2].Title)
		assert.Equal(t, "https://www.nasa.gov/plants", links[2].URL)
	})

	t.Run("Duplicate URLs extracted once", func(t *testing.T) {
		content := "See [Khan video](https://www.youtube.com/watch?v=abc123) and again\n" +
			"https://www.youtube.com/watch?v=abc123 at the end."

		links := lesson.ExtractLinks(content)
		require.Len(t, links, 1)
		assert.Equal(t, "Khan video", links[0].Title)
	})

	t.Run("Activity sentinel", func(t *testing.T) {
		content := "Try a [Volcano model](Classroom Activity) in groups."

		links := lesson.ExtractLinks(content)
		require.Len(t, links, 1)
		assert.Equal(t, "Volcano model", links[0].Title)
		assert.Equal(t, lesson.ActivitySentinel, links[0].URL)
		assert.Equal(t, lesson.LinkActivity, links[0].Kind)
	})

	t.Run("No links", func(t *testing.T) {
		assert.Empty(t, lesson.ExtractLinks("Just a plain paragraph with no hyperlinks at all."))
	})
}

func TestExtractYouTubeVideos(t *testing.T) {
	content := "Watch [Intro](https://www.youtube.com/watch?v=abc123) then\n" +
		"https://youtu.be/def456 and skip [Article](https://example.com/reading)."

	links := lesson.ExtractYouTubeVideos(content)
	require.Len(t, links, 2)

	assert.Equal(t, "Intro", links[0].Title)
	assert.Equal(t, lesson.LinkVideo, links[0].Kind)
	assert.Equal(t, "https://youtu.be/def456", links[1].URL)
	assert.Equal(t, "Youtu.be", links[1].Title)
	assert.Equal(t, lesson.LinkVideo, links[1].Kind)
}

func TestClassifyLink(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		url      string
		expected lesson.LinkKind
	}{
		{"Sentinel URL", "Volcano model", "Classroom Activity", lesson.LinkActivity},
		{"Experiment beats video wording", "Light experiment video", "https://example.com", lesson.LinkActivity},
		{"YouTube domain", "Khan Academy", "https://www.youtube.com/watch?v=abc", lesson.LinkVideo},
		{"Podcast", "Science podcast episode 4", "https://example.com/ep4", lesson.LinkAudio},
		{"Quiz", "Fraction quiz", "https://quizlet.com/fractions", lesson.LinkGame},
		{"Calculator", "Graphing calculator", "https://desmos.com", lesson.LinkTool},
		{"Unclassified", "Reference text", "https://example.com/reference", lesson.LinkOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lesson.ClassifyLink(tt.title, tt.url))
		})
	}
}
