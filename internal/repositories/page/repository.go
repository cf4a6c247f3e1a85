package page

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"

	"github.com/Ramsey-B/sprout/pkg/database"
	"github.com/Ramsey-B/sprout/pkg/models"
	"github.com/Ramsey-B/sprout/pkg/tracing"
)

// PageRepository defines the interface for page data access
type PageRepository interface {
	Insert(ctx context.Context, page models.Page) (int64, error)
	LinkTopic(ctx context.Context, pageID, topicID int64) error
}

// Repository implements PageRepository. Writes join the transaction carried
// by ctx when there is one.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new page repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a page and returns its generated id
func (r *Repository) Insert(ctx context.Context, page models.Page) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "PageRepository.Insert")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	query, args := pageStruct.InsertInto(pagesTable, FromPage(page)).Returning("id").Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"slug":   page.Slug,
		"status": page.Status,
	}).Debug("Inserting page")

	var id int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		tracing.RecordError(span, err)
		return 0, errors.Wrapf(err, "failed to insert page %s", page.Slug)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// LinkTopic associates a page with a topic; an existing association is kept.
func (r *Repository) LinkTopic(ctx context.Context, pageID, topicID int64) error {
	ctx, span := tracing.StartSpan(ctx, "PageRepository.LinkTopic")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ib := database.NewInsertBuilder(pageTopicsTable, "page_id", "topic_id")
	ib.Values(pageID, topicID)
	ib.OnConflictDoNothing()
	query, args := ib.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"page_id":  pageID,
		"topic_id": topicID,
	}).Debug("Linking page to topic")

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tracing.RecordError(span, err)
		return errors.Wrapf(err, "failed to link page %d to topic %d", pageID, topicID)
	}

	return tx.Commit(ctx)
}
