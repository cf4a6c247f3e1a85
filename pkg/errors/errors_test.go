package errors

import (
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedError(t *testing.T) {
	t.Run("should render the message alone without context", func(t *testing.T) {
		assert.Equal(t, "boom", NewSeedError("boom").Error())
	})

	t.Run("should render slug, step and card as a path", func(t *testing.T) {
		err := NewSeedError("duplicate key").AddSlug("history").AddStep(StepInsertContentBlock).AddCard("Ancient Georgia")
		assert.Equal(t, "page 'history' -> step 'insert_content_block' -> card 'Ancient Georgia': duplicate key", err.Error())
	})

	t.Run("should keep the cause reachable", func(t *testing.T) {
		cause := goerrors.New("connection reset")
		err := WrapSeedError(cause).AddSlug("wine").AddStep(StepCommit)

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "page 'wine' -> step 'commit': connection reset", err.Error())
	})

	t.Run("should not rewrap a seed error", func(t *testing.T) {
		original := NewSeedError("x").AddSlug("guide")
		wrapped := fmt.Errorf("run failed: %w", original)

		assert.Same(t, original, WrapSeedError(wrapped))
		assert.True(t, IsSeedError(wrapped))
		assert.False(t, IsSeedError(goerrors.New("plain")))
	})

	t.Run("should return nil for nil", func(t *testing.T) {
		assert.Nil(t, WrapSeedError(nil))
	})

	t.Run("should format and unwrap", func(t *testing.T) {
		cause := goerrors.New("no rows")
		err := NewSeedErrorf("insert page %q: %w", "nature", cause)

		assert.Equal(t, `insert page "nature": no rows`, err.Error())
		assert.ErrorIs(t, err, cause)
	})
}
