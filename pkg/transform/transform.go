// Package transform normalizes per-topic source documents into canonical pages.
package transform

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/sprout/pkg/models"
)

// TopicLookup resolves the topic names attached to a slug.
type TopicLookup interface {
	TopicsFor(slug string) []string
}

type Transformer struct {
	topics TopicLookup
	logger ectologger.Logger
	now    func() time.Time
}

func NewTransformer(topics TopicLookup, logger ectologger.Logger) *Transformer {
	return &Transformer{
		topics: topics,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to default publish times.
func (t *Transformer) WithClock(now func() time.Time) *Transformer {
	t.now = now
	return t
}

// Transform builds the canonical page for doc. It never fails: malformed
// records degrade to empty values and unknown slugs keep their records as
// canonical cards with no topics.
func (t *Transformer) Transform(ctx context.Context, doc models.RawDocument) models.Page {
	rule, known := Get(doc.Slug)
	if !known {
		rule = Identity
	}

	page := models.Page{
		Slug:            doc.Slug,
		Title:           doc.Title,
		MetaDescription: doc.MetaDescription,
		Status:          models.Status(doc.Status),
		PublishedAt:     doc.PublishedAt,
		Topics:          []string{},
		Cards:           rule(doc.JSONData),
	}

	if page.MetaDescription == "" {
		page.MetaDescription = "Seed data for " + doc.Slug
	}
	if !page.Status.Valid() {
		page.Status = models.StatusDraft
	}
	if page.PublishedAt.IsZero() {
		page.PublishedAt = t.now().UTC()
	}
	if known && t.topics != nil {
		page.Topics = uniqueTopics(t.topics.TopicsFor(doc.Slug))
	}

	t.logger.WithContext(ctx).WithFields(map[string]any{
		"slug":    page.Slug,
		"known":   known,
		"cards":   len(page.Cards),
		"topics":  page.Topics,
		"status":  page.Status,
		"records": len(doc.JSONData),
	}).Debug("transformed document")

	return page
}

// TransformAll transforms docs in order.
func (t *Transformer) TransformAll(ctx context.Context, docs []models.RawDocument) []models.Page {
	pages := make([]models.Page, 0, len(docs))
	for _, doc := range docs {
		pages = append(pages, t.Transform(ctx, doc))
	}
	return pages
}

// uniqueTopics drops blanks and repeats, keeping first occurrences in order.
func uniqueTopics(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
