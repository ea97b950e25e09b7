package lesson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachpad/learning-assist/internal/lesson"
)

func TestReconstruct(t *testing.T) {

	t.Run("Titles, durations and spacing", func(t *testing.T) {
		sections := []*lesson.Section{
			{Title: "Introduction", Kind: lesson.KindIntroduction, Duration: 5,
				Content: "Ask students what plants eat to open the discussion."},
			{Title: "Homework", Kind: lesson.KindHomework,
				Content: "Observe a plant at home and note its light exposure."},
		}

		actual := lesson.Reconstruct(sections)
		expected := "**Introduction** (5 min):\n\n" +
			"Ask students what plants eat to open the discussion.\n\n" +
			"**Homework**:\n\n" +
			"Observe a plant at home and note its light exposure."
		assert.Equal(t, expected, actual)
	})

	t.Run("Round-trip through parsing", func(t *testing.T) {
		raw := `{
			"objectives": ["Explain photosynthesis", "Identify chloroplasts"],
			"materials": ["Microscope", "Leaf samples"],
			"introduction": "Ask students what plants eat to open the discussion.",
			"mainContent": "Explain how light energy becomes chemical energy in the leaf.",
			"wrapUp": "Recap the inputs and outputs of photosynthesis together.",
			"assessment": "Exit ticket with two questions about the light reactions.",
			"homework": "Observe a plant at home and note its light exposure.",
			"resources": ["Biology textbook chapter 4 and the class wall charts"]
		}`

		original := lesson.Parse(raw)
		require.Len(t, original, 8)

		reparsed := lesson.Parse(lesson.Reconstruct(original))
		require.Len(t, reparsed, len(original))
		for i := range original {
			assert.Equal(t, original[i].ID, reparsed[i].ID)
			assert.Equal(t, original[i].Title, reparsed[i].Title)
			assert.Equal(t, original[i].Content, reparsed[i].Content)
			assert.Equal(t, original[i].Duration, reparsed[i].Duration)
		}
	})
}

func TestCloneSections(t *testing.T) {
	original := []*lesson.Section{
		{ID: "introduction", Title: "Introduction", Kind: lesson.KindIntroduction,
			Content: "Ask students what plants eat.", Duration: 5},
	}

	clone := lesson.CloneSections(original)
	require.Len(t, clone, 1)
	assert.Equal(t, original[0], clone[0])

	clone[0].Content = "Changed"
	assert.Equal(t, "Ask students what plants eat.", original[0].Content)
}
