// Package seeder persists canonical pages as ordered content rows inside a
// single transaction.
package seeder

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"

	appcontext "github.com/Ramsey-B/sprout/pkg/context"
	"github.com/Ramsey-B/sprout/pkg/database"
	"github.com/Ramsey-B/sprout/pkg/errors"
	"github.com/Ramsey-B/sprout/pkg/models"
	"github.com/Ramsey-B/sprout/pkg/tracing"
)

type PageStore interface {
	Insert(ctx context.Context, page models.Page) (int64, error)
	LinkTopic(ctx context.Context, pageID, topicID int64) error
}

type TopicStore interface {
	Upsert(ctx context.Context, name string) (int64, error)
}

type ContentStore interface {
	InsertContentBlock(ctx context.Context, pageID int64, blockType models.BlockType, data json.RawMessage, order int) error
	InsertStructuredCard(ctx context.Context, pageID int64, card models.StructuredCard, order int) error
}

type Seeder struct {
	db       database.DB
	pages    PageStore
	topics   TopicStore
	content  ContentStore
	validate *validator.Validate
	logger   ectologger.Logger
}

func NewSeeder(db database.DB, pages PageStore, topics TopicStore, content ContentStore, logger ectologger.Logger) *Seeder {
	return &Seeder{
		db:       db,
		pages:    pages,
		topics:   topics,
		content:  content,
		validate: validator.New(),
		logger:   logger,
	}
}

// SeedAll writes every page, in order, inside one transaction. Any failure
// rolls the whole run back and is returned as a *errors.SeedError naming the
// page and step. When ctx already carries a transaction, SeedAll works inside
// it and leaves commit and rollback to its owner.
func (s *Seeder) SeedAll(ctx context.Context, pages []models.Page) (err error) {
	ctx, span := tracing.StartSpan(ctx, "Seeder.SeedAll")
	defer span.End()

	if err := s.validatePages(pages); err != nil {
		tracing.RecordError(span, err)
		return err
	}

	ctx, tx, txErr := s.db.GetTx(ctx, nil)
	if txErr != nil {
		tracing.RecordError(span, txErr)
		return errors.WrapSeedError(txErr).AddStep(errors.StepBegin)
	}
	defer func() {
		if err == nil {
			return
		}
		tracing.RecordError(span, err)
		s.logger.WithContext(ctx).WithError(err).Error("Seeding failed, rolling back")
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.WithContext(ctx).WithError(rbErr).Error("Failed to roll back seeding transaction")
		}
	}()

	s.logger.WithContext(ctx).WithField("pages", len(pages)).Info("Starting seeding transaction")

	for _, page := range pages {
		if err := s.seedPage(ctx, page); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.WrapSeedError(err).AddStep(errors.StepCommit)
	}

	s.logger.WithContext(ctx).WithField("pages", len(pages)).Info("Seeding transaction committed")
	return nil
}

func (s *Seeder) validatePages(pages []models.Page) error {
	seen := make(map[string]bool, len(pages))
	for _, page := range pages {
		if err := s.validate.Struct(page); err != nil {
			return errors.WrapSeedError(err).AddSlug(page.Slug).AddStep(errors.StepValidate)
		}
		if seen[page.Slug] {
			return errors.NewSeedError("slug appears more than once in this run").AddSlug(page.Slug).AddStep(errors.StepValidate)
		}
		seen[page.Slug] = true
	}
	return nil
}

func (s *Seeder) seedPage(ctx context.Context, page models.Page) error {
	ctx, span := tracing.StartSpan(appcontext.SetSlug(ctx, page.Slug), "Seeder.seedPage")
	defer span.End()

	logger := s.logger.WithContext(ctx).WithFields(appcontext.LogFields(ctx))

	pageID, err := s.pages.Insert(ctx, page)
	if err != nil {
		return s.fail(ctx, err, page.Slug, errors.StepInsertPage, "")
	}
	logger.WithField("page_id", pageID).Debug("Inserted page")

	for _, name := range page.Topics {
		topicID, err := s.topics.Upsert(ctx, name)
		if err != nil {
			return s.fail(ctx, err, page.Slug, errors.StepUpsertTopic, "")
		}
		if err := s.pages.LinkTopic(ctx, pageID, topicID); err != nil {
			return s.fail(ctx, err, page.Slug, errors.StepLinkTopic, "")
		}
		logger.WithFields(map[string]any{"topic": name, "topic_id": topicID}).Debug("Associated page with topic")
	}

	rows, err := Flatten(page)
	if err != nil {
		return s.fail(ctx, err, page.Slug, errors.StepInsertContentBlock, "")
	}

	for _, row := range rows {
		switch row.Kind {
		case RowStructuredCard:
			if err := s.content.InsertStructuredCard(ctx, pageID, row.StructuredCard, row.Order); err != nil {
				return s.fail(ctx, err, page.Slug, errors.StepInsertStructuredCard, row.Card)
			}
		default:
			if err := s.content.InsertContentBlock(ctx, pageID, row.BlockType, row.Data, row.Order); err != nil {
				return s.fail(ctx, err, page.Slug, errors.StepInsertContentBlock, row.Card)
			}
		}
	}

	logger.WithFields(map[string]any{
		"page_id": pageID,
		"topics":  len(page.Topics),
		"rows":    len(rows),
	}).Info("Seeded page")
	return nil
}

func (s *Seeder) fail(ctx context.Context, err error, slug, step, card string) error {
	fields := map[string]any{"slug": slug, "step": step}
	if database.IsUniqueViolation(err) {
		fields["constraint"] = database.ConstraintName(err)
	}
	s.logger.WithContext(ctx).WithError(err).WithFields(fields).Warn("Seeding step failed")

	seedErr := errors.WrapSeedError(err).AddSlug(slug).AddStep(step)
	if card != "" {
		seedErr.AddCard(card)
	}
	return seedErr
}
