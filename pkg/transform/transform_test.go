package transform

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/sprout/pkg/models"
)

type topicTable map[string][]string

func (t topicTable) TopicsFor(slug string) []string {
	return t[slug]
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestTransformer() *Transformer {
	topics := topicTable{
		"history": {"History"},
		"general": {"Travel", "Culture"},
		"cuisine": {"Food & Drink"},
		"wine":    {"Wine", "Food & Drink", "Wine", ""},
	}
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewTransformer(topics, logger).WithClock(func() time.Time { return fixedNow })
}

func decode(t *testing.T, raw string) []any {
	t.Helper()
	var records []any
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	return records
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := models.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestTransform(t *testing.T) {
	ctx := context.Background()

	t.Run("should decode history records as canonical cards", func(t *testing.T) {
		doc := models.RawDocument{
			Slug:  "history",
			Title: "History",
			JSONData: decode(t, `[{
				"title": "Ancient Georgia",
				"description": [{"type": "paragraph", "text": "Intro"}],
				"content": [{"type": "paragraph", "text": "Body"}],
				"footer": "/more"
			}]`),
		}

		page := newTestTransformer().Transform(ctx, doc)

		assert.Equal(t, []string{"History"}, page.Topics)
		require.Len(t, page.Cards, 1)
		card := page.Cards[0]
		assert.Equal(t, "Ancient Georgia", card.Title)
		assert.Equal(t, []models.ContentBlock{models.Paragraph{Text: "Intro"}}, card.Description)
		assert.False(t, card.Content.IsCollection())
		assert.Equal(t, []models.ContentBlock{models.Paragraph{Text: "Body"}}, card.Content.Blocks())
		assert.Equal(t, "/more", card.Footer)
	})

	t.Run("should apply defaults for missing metadata", func(t *testing.T) {
		page := newTestTransformer().Transform(ctx, models.RawDocument{Slug: "nature"})

		assert.Equal(t, models.StatusDraft, page.Status)
		assert.Equal(t, "Seed data for nature", page.MetaDescription)
		assert.Equal(t, fixedNow, page.PublishedAt)
		assert.Empty(t, page.Cards)
		assert.NotNil(t, page.Cards)
		assert.NotNil(t, page.Topics)
	})

	t.Run("should pass metadata through verbatim", func(t *testing.T) {
		published := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		page := newTestTransformer().Transform(ctx, models.RawDocument{
			Slug:            "wine",
			Title:           "Wine",
			MetaDescription: "Qvevri wines",
			Status:          "published",
			PublishedAt:     published,
		})

		assert.Equal(t, "wine", page.Slug)
		assert.Equal(t, "Wine", page.Title)
		assert.Equal(t, "Qvevri wines", page.MetaDescription)
		assert.Equal(t, models.StatusPublished, page.Status)
		assert.Equal(t, published, page.PublishedAt)
	})

	t.Run("should default an unrecognised status to draft", func(t *testing.T) {
		page := newTestTransformer().Transform(ctx, models.RawDocument{Slug: "history", Status: "archived"})
		assert.Equal(t, models.StatusDraft, page.Status)
	})

	t.Run("should deduplicate topics in order", func(t *testing.T) {
		page := newTestTransformer().Transform(ctx, models.RawDocument{Slug: "wine"})
		assert.Equal(t, []string{"Wine", "Food & Drink"}, page.Topics)
	})

	t.Run("should keep unknown slugs without topics", func(t *testing.T) {
		doc := models.RawDocument{
			Slug:     "festivals",
			JSONData: decode(t, `[{"title": "Tbilisoba", "content": [{"type": "paragraph", "text": "October"}]}, 7]`),
		}

		page := newTestTransformer().Transform(ctx, doc)

		assert.Empty(t, page.Topics)
		require.Len(t, page.Cards, 1)
		assert.Equal(t, "Tbilisoba", page.Cards[0].Title)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		doc := models.RawDocument{
			Slug: "general",
			JSONData: decode(t, `[
				{"title": "Supra", "description": [{"type": "paragraph", "text": "Feast"}]},
				{"title": "Supra", "content": [{"type": "paragraph", "text": "Toasts"}]}
			]`),
		}
		transformer := newTestTransformer()

		first := transformer.Transform(ctx, doc)
		second := transformer.Transform(ctx, doc)

		assert.Equal(t, toJSON(t, first), toJSON(t, second))
	})

	t.Run("should not mutate the input document", func(t *testing.T) {
		raw := `[{"page": {"title": "X", "intro": "Y", "sections": [{"dishes": ["a"], "venues": ["b"]}]}}]`
		doc := models.RawDocument{Slug: "cuisine", JSONData: decode(t, raw)}
		before := toJSON(t, doc)

		newTestTransformer().Transform(ctx, doc)

		assert.Equal(t, before, toJSON(t, doc))
	})

	t.Run("should transform a document list in order", func(t *testing.T) {
		pages := newTestTransformer().TransformAll(ctx, []models.RawDocument{{Slug: "wine"}, {Slug: "history"}})
		require.Len(t, pages, 2)
		assert.Equal(t, "wine", pages[0].Slug)
		assert.Equal(t, "history", pages[1].Slug)
	})
}

func TestGet(t *testing.T) {
	for _, slug := range []string{"general", "history", "culture", "nature", "adventures", "cuisine", "guide", "health", "nightlife", "wine"} {
		_, ok := Get(slug)
		assert.True(t, ok, slug)
	}

	_, ok := Get("festivals")
	assert.False(t, ok)
}
