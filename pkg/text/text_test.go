package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teachpad/learning-assist/pkg/text"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, text.IsBlank(""))
	assert.True(t, text.IsBlank("   \t"))
	assert.False(t, text.IsBlank(" a "))
}

func TestSquashBlankLines(t *testing.T) {
	actual := text.SquashBlankLines("a\n\n\n\nb\n")
	assert.Equal(t, "a\n\nb\n", actual)
}

func TestLineIterator(t *testing.T) {

	t.Run("Iteration", func(t *testing.T) {
		iterator := text.NewLineIteratorFromText("a\nb\nc")

		assert.True(t, iterator.HasNext())
		assert.Equal(t, "a", iterator.Peek().Text)
		assert.Equal(t, "b", iterator.PeekAhead(1).Text)

		line := iterator.Next()
		assert.Equal(t, "a", line.Text)
		assert.Equal(t, 1, line.Number)

		iterator.Skip(2)
		assert.False(t, iterator.HasNext())
		assert.True(t, iterator.Next().IsMissing())
	})

	t.Run("Peeking past the end", func(t *testing.T) {
		iterator := text.NewLineIteratorFromText("a")
		assert.True(t, iterator.PeekAhead(1).IsMissing())
		assert.True(t, iterator.PeekAhead(1).IsBlank())
	})

	t.Run("Skip is clamped", func(t *testing.T) {
		iterator := text.NewLineIteratorFromText("a\nb")
		iterator.Skip(10)
		assert.False(t, iterator.HasNext())
	})
}
