package loader

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/sprout/pkg/models"
)

var loadedAt = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestLoader() *Loader {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewLoader(logger).WithClock(func() time.Time { return loadedAt })
}

func TestLoadAll(t *testing.T) {
	t.Run("should load documents in lexical order with derived metadata", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "wine.json"), []byte(`[{"title": "Qvevri"}]`), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "food-and-drink.json"), []byte(`{"title": "Khachapuri"}`), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o600))

		docs, err := newTestLoader().LoadAll(context.Background(), dir)
		require.NoError(t, err)

		require.Len(t, docs, 2)
		assert.Equal(t, models.RawDocument{
			Slug:            "food-and-drink",
			Title:           "Food And Drink",
			MetaDescription: "Seed data for food-and-drink",
			Status:          "published",
			PublishedAt:     loadedAt,
			JSONData:        []any{map[string]any{"title": "Khachapuri"}},
		}, docs[0])
		assert.Equal(t, "wine", docs[1].Slug)
		assert.Equal(t, "Wine", docs[1].Title)
		assert.Equal(t, []any{map[string]any{"title": "Qvevri"}}, docs[1].JSONData)
	})

	t.Run("should keep numbers as written", func(t *testing.T) {
		fsys := fstest.MapFS{"nature.json": {Data: []byte(`[{"elevation": 5047}]`)}}

		docs, err := newTestLoader().LoadFS(context.Background(), fsys)
		require.NoError(t, err)

		record := docs[0].JSONData[0].(map[string]any)
		assert.Equal(t, json.Number("5047"), record["elevation"])
	})

	t.Run("should descend into subdirectories with a recursive pattern", func(t *testing.T) {
		fsys := fstest.MapFS{
			"history.json":         {Data: []byte(`[]`)},
			"regions/svaneti.json": {Data: []byte(`[]`)},
		}

		docs, err := newTestLoader().WithPattern("**/*.json").LoadFS(context.Background(), fsys)
		require.NoError(t, err)

		require.Len(t, docs, 2)
		assert.Equal(t, "history", docs[0].Slug)
		assert.Equal(t, "svaneti", docs[1].Slug)
	})

	t.Run("should fail on malformed json", func(t *testing.T) {
		fsys := fstest.MapFS{"broken.json": {Data: []byte(`[{"title":`)}}

		_, err := newTestLoader().LoadFS(context.Background(), fsys)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse broken.json")
	})

	t.Run("should return nothing for an empty directory", func(t *testing.T) {
		docs, err := newTestLoader().LoadAll(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "History", Title("history"))
	assert.Equal(t, "Food And Drink", Title("food-and-drink"))
	assert.Equal(t, "Tbilisi Old Town", Title("tbilisi-old-town"))
}
