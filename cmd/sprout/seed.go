package main

import (
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/sprout/internal/loader"
	"github.com/Ramsey-B/sprout/internal/repositories/contentblock"
	"github.com/Ramsey-B/sprout/internal/repositories/page"
	"github.com/Ramsey-B/sprout/internal/repositories/topic"
	"github.com/Ramsey-B/sprout/internal/topics"
	"github.com/Ramsey-B/sprout/pkg/models"
	"github.com/Ramsey-B/sprout/pkg/seeder"
	"github.com/Ramsey-B/sprout/pkg/transform"
)

func newSeedCommand(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load, transform and persist every document in one transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pages, err := a.pages(cmd)
			if err != nil {
				return err
			}

			db, stop, err := a.start(ctx, migrate || a.config.DatabaseMigrateOnSeed)
			if err != nil {
				return err
			}
			defer stop()

			s := seeder.NewSeeder(
				db.db,
				page.NewRepository(db.db, a.logger),
				topic.NewRepository(db.db, a.logger),
				contentblock.NewRepository(db.db, a.logger),
				a.logger,
			)
			if err := s.SeedAll(ctx, pages); err != nil {
				a.logger.WithError(err).Error("Transaction rolled back")
				return err
			}

			a.logger.WithField("pages", len(pages)).Info("Database seeded successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply schema migrations before seeding")
	return cmd
}

// pages loads every document under the configured directory and transforms
// it into a canonical page.
func (a *app) pages(cmd *cobra.Command) ([]models.Page, error) {
	table, err := topics.Load(a.config.TopicsFile)
	if err != nil {
		return nil, err
	}

	docs, err := loader.NewLoader(a.logger).
		WithPattern(a.config.DataPattern).
		LoadAll(cmd.Context(), a.config.DataDir)
	if err != nil {
		return nil, err
	}

	return transform.NewTransformer(table, a.logger).TransformAll(cmd.Context(), docs), nil
}
