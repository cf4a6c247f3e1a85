package contentblock

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"

	"github.com/Ramsey-B/sprout/pkg/database"
	"github.com/Ramsey-B/sprout/pkg/models"
	"github.com/Ramsey-B/sprout/pkg/tracing"
)

// ContentBlockRepository defines the interface for page content data access
type ContentBlockRepository interface {
	InsertContentBlock(ctx context.Context, pageID int64, blockType models.BlockType, data json.RawMessage, order int) error
	InsertStructuredCard(ctx context.Context, pageID int64, card models.StructuredCard, order int) error
}

// Repository implements ContentBlockRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new content block repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// InsertContentBlock stores one block at the given position on the page
func (r *Repository) InsertContentBlock(ctx context.Context, pageID int64, blockType models.BlockType, data json.RawMessage, order int) error {
	ctx, span := tracing.StartSpan(ctx, "ContentBlockRepository.InsertContentBlock")
	defer span.End()

	row := &ContentBlockRow{
		PageID:      pageID,
		Type:        string(blockType),
		ContentData: database.NewJSONB(data),
		OrderOnPage: order,
	}

	return r.exec(ctx, span, contentBlockStruct.InsertInto(contentBlocksTable, row), map[string]any{
		"page_id": pageID,
		"type":    blockType,
		"order":   order,
	}, "content block")
}

// InsertStructuredCard stores one structured card at the given position on the page
func (r *Repository) InsertStructuredCard(ctx context.Context, pageID int64, card models.StructuredCard, order int) error {
	ctx, span := tracing.StartSpan(ctx, "ContentBlockRepository.InsertStructuredCard")
	defer span.End()

	return r.exec(ctx, span, structuredCardStruct.InsertInto(structuredCardsTable, FromStructuredCard(pageID, card, order)), map[string]any{
		"page_id": pageID,
		"title":   card.Title,
		"order":   order,
	}, "structured card")
}

func (r *Repository) exec(ctx context.Context, span trace.Span, ib *database.InsertBuilder, fields map[string]any, kind string) error {
	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query, args := ib.Build()

	r.logger.WithContext(ctx).WithFields(fields).Debugf("Inserting %s", kind)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tracing.RecordError(span, err)
		return errors.Wrapf(err, "failed to insert %s", kind)
	}

	return tx.Commit(ctx)
}
