package topic

import (
	"context"
	"regexp"
	"strings"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"

	"github.com/Ramsey-B/sprout/pkg/database"
	"github.com/Ramsey-B/sprout/pkg/tracing"
)

const topicsTable = "topics"

var whitespace = regexp.MustCompile(`\s+`)

// Slugify lower-cases a topic name, joins words with "-" and spells out "&".
func Slugify(name string) string {
	slug := whitespace.ReplaceAllString(strings.ToLower(name), "-")
	return strings.ReplaceAll(slug, "&", "and")
}

// TopicRepository defines the interface for topic data access
type TopicRepository interface {
	Upsert(ctx context.Context, name string) (int64, error)
}

// Repository implements TopicRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new topic repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Upsert returns the id of the topic named name, creating it when missing.
// An existing topic is left as it is.
func (r *Repository) Upsert(ctx context.Context, name string) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "TopicRepository.Upsert")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	slug := Slugify(name)
	ib := database.NewInsertBuilder(topicsTable, "name", "slug")
	ib.Values(name, slug)
	ib.OnConflictUpdate([]string{"name"}, "name").Returning("id")
	query, args := ib.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"name": name,
		"slug": slug,
	}).Debug("Upserting topic")

	var id int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		tracing.RecordError(span, err)
		return 0, errors.Wrapf(err, "failed to upsert topic %s", name)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}
