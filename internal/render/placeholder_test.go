package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachpad/learning-assist/internal/lesson"
	"github.com/teachpad/learning-assist/internal/render"
)

func TestSubstitute(t *testing.T) {

	t.Run("Markdown form replaced before bare URL", func(t *testing.T) {
		content := "See [Khan video](https://youtube.com/watch?v=abc) and https://youtube.com/watch?v=abc again."
		links := lesson.ExtractLinks(content)
		require.Len(t, links, 1)

		tokenized, tokens := render.Substitute(content, links)
		assert.Equal(t, "See @@LINK_0@@ and @@LINK_0@@ again.", tokenized)
		assert.NotContains(t, tokenized, "https://")
		assert.NotContains(t, tokenized, "[Khan video]")
		require.Len(t, tokens, 1)
		assert.Equal(t, links[0], tokens["@@LINK_0@@"])
	})

	t.Run("Prefixing URLs do not corrupt each other", func(t *testing.T) {
		content := "[A](https://x.example) and [B](https://x.example/page)"
		links := lesson.ExtractLinks(content)
		require.Len(t, links, 2)

		tokenized, _ := render.Substitute(content, links)
		assert.Equal(t, "@@LINK_0@@ and @@LINK_1@@", tokenized)
	})

	t.Run("Prefixing bare URLs replaced longest first", func(t *testing.T) {
		content := "https://x.example then https://x.example/page"
		links := lesson.ExtractLinks(content)
		require.Len(t, links, 2)

		tokenized, _ := render.Substitute(content, links)
		assert.Equal(t, "@@LINK_0@@ then @@LINK_1@@", tokenized)
	})

	t.Run("No extracted URL survives substitution", func(t *testing.T) {
		content := "Links: [A](https://a.example) then https://b.example then [C](https://c.example)."
		links := lesson.ExtractLinks(content)
		require.Len(t, links, 3)

		tokenized, _ := render.Substitute(content, links)
		for _, link := range links {
			assert.NotContains(t, tokenized, link.URL)
		}
	})
}

func TestReinsert(t *testing.T) {

	t.Run("Anchor widget", func(t *testing.T) {
		link := &lesson.Link{Title: "Cell quiz", URL: "https://quizlet.com/cells", Kind: lesson.LinkGame}
		actual := render.Reinsert("<p>@@LINK_0@@</p>", map[string]*lesson.Link{"@@LINK_0@@": link})
		assert.Equal(t, `<p><a href="https://quizlet.com/cells" target="_blank" rel="noopener noreferrer" class="content-link content-link-game"><span class="icon">🎮</span> Cell quiz</a></p>`, actual)
	})

	t.Run("Activity badge has no anchor", func(t *testing.T) {
		link := &lesson.Link{Title: "Leaf rubbing", URL: lesson.ActivitySentinel, Kind: lesson.LinkActivity}
		actual := render.Reinsert("<p>@@LINK_0@@</p>", map[string]*lesson.Link{"@@LINK_0@@": link})
		assert.Equal(t, `<p><span class="activity-badge"><span class="icon">🎯</span> <small>Leaf rubbing</small></span></p>`, actual)
	})

	t.Run("Widget titles are escaped", func(t *testing.T) {
		link := &lesson.Link{Title: "<b>Bold</b>", URL: "https://example.com", Kind: lesson.LinkOther}
		actual := render.Reinsert("@@LINK_0@@", map[string]*lesson.Link{"@@LINK_0@@": link})
		assert.Contains(t, actual, "&lt;b&gt;Bold&lt;/b&gt;")
		assert.NotContains(t, actual, "<b>Bold</b>")
	})
}

func TestToken(t *testing.T) {
	assert.Equal(t, "@@LINK_0@@", render.Token(0))
	assert.Equal(t, "@@LINK_12@@", render.Token(12))
}
