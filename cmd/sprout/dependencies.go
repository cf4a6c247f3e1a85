package main

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/sprout/config"
	"github.com/Ramsey-B/sprout/db"
	"github.com/Ramsey-B/sprout/pkg/database"
	"github.com/Ramsey-B/sprout/pkg/startup"
	"github.com/Ramsey-B/sprout/pkg/tracing"
)

const (
	tracingDependencyName   = "tracing"
	databaseDependencyName  = "database"
	migrationDependencyName = "migrations"
)

type tracingDependency struct {
	config   *config.Config
	logger   ectologger.Logger
	shutdown func(context.Context) error
}

func (d *tracingDependency) GetName() string     { return tracingDependencyName }
func (d *tracingDependency) DependsOn() []string { return nil }

func (d *tracingDependency) Start(ctx context.Context) error {
	shutdown, err := tracing.Setup(ctx, d.config.AppName, d.config.OTLP(), d.logger)
	if err != nil {
		return err
	}
	d.shutdown = shutdown
	return nil
}

func (d *tracingDependency) Stop(ctx context.Context) error {
	if d.shutdown == nil {
		return nil
	}
	return d.shutdown(ctx)
}

type databaseDependency struct {
	config database.ConnectionConfig
	logger ectologger.Logger
	db     database.DB
}

func (d *databaseDependency) GetName() string     { return databaseDependencyName }
func (d *databaseDependency) DependsOn() []string { return nil }

func (d *databaseDependency) Start(ctx context.Context) error {
	db, err := database.Connect(ctx, d.config, d.logger)
	if err != nil {
		return err
	}
	d.db = db
	return nil
}

func (d *databaseDependency) Stop(_ context.Context) error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

type migrationDependency struct {
	config   *config.Config
	database *databaseDependency
	logger   ectologger.Logger
}

func (d *migrationDependency) GetName() string     { return migrationDependencyName }
func (d *migrationDependency) DependsOn() []string { return []string{databaseDependencyName} }

func (d *migrationDependency) Start(_ context.Context) error {
	instance, ok := d.database.db.(*database.DatabaseInstance)
	if !ok {
		return fmt.Errorf("migrations need a *database.DatabaseInstance, got %T", d.database.db)
	}
	return database.NewMigrationService(d.logger, d.config.Migration()).
		WithSource(db.Postgres()).
		MigratePostgres(instance.DB.DB, d.config.DatabaseName)
}

func (d *migrationDependency) Stop(_ context.Context) error { return nil }

// start brings up tracing (when enabled), the database and, when migrate is
// set, the schema migrations. The returned stop func releases them.
func (a *app) start(ctx context.Context, migrate bool) (*databaseDependency, func(), error) {
	s := startup.NewStartup(a.logger, a.config.StartupMaxAttempts)

	if a.config.TracingEnabled {
		s.AddDependency(&tracingDependency{config: a.config, logger: a.logger})
	}

	conn := &databaseDependency{config: a.config.Connection(), logger: a.logger}
	s.AddDependency(conn)

	if migrate {
		s.AddDependency(&migrationDependency{config: a.config, database: conn, logger: a.logger})
	}

	if err := s.Start(ctx); err != nil {
		_ = s.Stop(ctx)
		return nil, nil, err
	}

	stop := func() {
		if err := s.Stop(context.WithoutCancel(ctx)); err != nil {
			a.logger.WithError(err).Warn("Failed to stop dependencies cleanly")
		}
	}
	return conn, stop, nil
}
