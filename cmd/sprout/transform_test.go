package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/sprout/pkg/models"
)

func TestRender(t *testing.T) {
	pages := []models.Page{{
		Slug:            "wine",
		Title:           "Wine",
		MetaDescription: "Seed data for wine",
		Status:          models.StatusPublished,
		PublishedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Topics:          []string{"Wine", "Food & Drink"},
		Cards:           []models.Card{},
	}}

	t.Run("should write indented json without escaping markup", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, formatJSON, pages))

		assert.Contains(t, buf.String(), `"Food & Drink"`)
		assert.Contains(t, buf.String(), "\n  {\n")
	})

	t.Run("should write yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, formatYAML, pages))

		assert.Contains(t, buf.String(), "slug: wine")
		assert.Contains(t, buf.String(), "- Food & Drink")
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		var buf bytes.Buffer
		err := render(&buf, "toml", pages)
		assert.ErrorContains(t, err, `unknown format "toml"`)
		assert.Empty(t, buf.String())
	})
}
