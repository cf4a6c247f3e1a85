package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

// MigrationLogger adapts ectologger to migrate.Logger.
type MigrationLogger struct {
	ectologger.Logger
}

func (l MigrationLogger) Verbose() bool {
	return true
}

func (l MigrationLogger) Printf(format string, v ...any) {
	l.Infof(strings.TrimSuffix(format, "\n"), v...)
}

type MigrationConfig struct {
	// Folder of <version>_<name>.{up,down}.sql files. Empty selects the
	// source passed to WithSource.
	MigrationFolderPath string
	// Target version; 0 migrates all the way up
	Version uint
	Force   int
	// Force a dirty schema back to the version it started from
	AutoRollback bool
}

type MigrationService struct {
	config   *MigrationConfig
	logger   ectologger.Logger
	embedded fs.FS
}

func NewMigrationService(logger ectologger.Logger, config *MigrationConfig) *MigrationService {
	return &MigrationService{
		config: config,
		logger: logger,
	}
}

// WithSource sets the migrations used when no folder is configured.
func (ms *MigrationService) WithSource(fsys fs.FS) *MigrationService {
	ms.embedded = fsys
	return ms
}

func (ms *MigrationService) files() (fs.FS, error) {
	folder := ms.config.MigrationFolderPath
	if folder == "" {
		if ms.embedded == nil {
			return nil, errors.New("no migration folder or embedded migrations configured")
		}
		return ms.embedded, nil
	}
	if _, err := os.Stat(folder); err != nil {
		return nil, errors.Wrapf(err, "migration folder %s does not exist", folder)
	}
	return os.DirFS(folder), nil
}

// MigratePostgres runs the migrations against an open postgres connection.
func (ms *MigrationService) MigratePostgres(db *sql.DB, databaseName string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{DatabaseName: databaseName})
	if err != nil {
		ms.logger.WithError(err).Error("Failed to create postgres migration driver")
		return errors.Wrap(err, "failed to create postgres migration driver")
	}

	return ms.Migrate(databaseName, driver)
}

func (ms *MigrationService) Migrate(databaseName string, driver migratedb.Driver) error {
	fsys, err := ms.files()
	if err != nil {
		return err
	}

	source, err := iofs.New(fsys, ".")
	if err != nil {
		return errors.Wrap(err, "failed to open migrations")
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		ms.logger.WithError(err).Error("Failed to create migrate instance")
		return err
	}
	m.Log = MigrationLogger{Logger: ms.logger}

	return ms.run(m, fsys)
}

func (ms *MigrationService) run(m *migrate.Migrate, fsys fs.FS) error {
	if ms.config.Force != 0 {
		if err := m.Force(ms.config.Force); err != nil {
			ms.logger.WithError(err).Errorf("Failed to force schema to version %d", ms.config.Force)
			return err
		}
	}

	// ErrNilVersion on a fresh database
	previous, _, err := m.Version()
	if err != nil {
		previous = 0
	}

	started := time.Now()
	if ms.config.Version != 0 {
		err = m.Migrate(ms.config.Version)
	} else {
		err = m.Up()
	}

	switch {
	case err == nil:
		ms.logger.WithField("duration", time.Since(started).String()).Info("Applied content schema migrations")
		return nil
	case errors.Is(err, migrate.ErrNoChange):
		ms.logger.Info("Content schema is up to date")
		return nil
	}

	return ms.recover(m, fsys, err, previous)
}

// recover leaves the schema at a clean version after a failed run. The
// original error is still returned so callers never seed a half-migrated
// schema.
func (ms *MigrationService) recover(m *migrate.Migrate, fsys fs.FS, err error, previous uint) error {
	// the database is ahead of the migration files
	if strings.Contains(err.Error(), "no migration found for version") {
		latest, latestErr := latestVersion(fsys)
		if latestErr != nil {
			return errors.Wrap(latestErr, "failed to find the latest migration")
		}
		ms.logger.Warnf("No migration found for version %d, forcing schema to version %d", previous, latest)
		return m.Force(latest)
	}

	ms.logger.WithError(err).Error("Migration failed")

	version, dirty, versionErr := m.Version()
	if versionErr != nil && !errors.Is(versionErr, migrate.ErrNilVersion) {
		return err
	}

	if dirty && ms.config.AutoRollback {
		if previous == 0 && version > 0 {
			previous = version - 1
		}
		ms.logger.Warnf("Schema is dirty at version %d, reverting to version %d", version, previous)
		if forceErr := m.Force(int(previous)); forceErr != nil {
			return errors.Wrapf(forceErr, "failed to force schema to version %d", previous)
		}
	}

	return errors.Wrapf(err, "failed to apply migrations (dirty=%t, version=%d)", dirty, version)
}

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.up\.sql$`)

// latestVersion returns the highest version among the up migrations in fsys.
func latestVersion(fsys fs.FS) (int, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, err
	}

	latest := -1
	for _, entry := range entries {
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || matches == nil {
			continue
		}
		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, err
		}
		latest = max(latest, version)
	}

	if latest < 0 {
		return 0, fmt.Errorf("no migration files found")
	}
	return latest, nil
}
