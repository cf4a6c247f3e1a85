// Package loader reads per-topic JSON documents from a data directory.
package loader

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Ramsey-B/sprout/pkg/models"
)

const DefaultPattern = "*.json"

type Loader struct {
	pattern string
	logger  ectologger.Logger
	now     func() time.Time
}

func NewLoader(logger ectologger.Logger) *Loader {
	return &Loader{
		pattern: DefaultPattern,
		logger:  logger,
		now:     time.Now,
	}
}

// WithPattern sets the glob, relative to the data directory, that selects
// document files. Patterns may use ** to descend into subdirectories.
func (l *Loader) WithPattern(pattern string) *Loader {
	if pattern != "" {
		l.pattern = pattern
	}
	return l
}

func (l *Loader) WithClock(now func() time.Time) *Loader {
	l.now = now
	return l
}

// LoadAll reads every matching .json file of dir in lexical path order. Each
// file becomes one published document whose slug is the file's base name.
func (l *Loader) LoadAll(ctx context.Context, dir string) ([]models.RawDocument, error) {
	return l.LoadFS(ctx, os.DirFS(dir))
}

func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS) ([]models.RawDocument, error) {
	matches, err := doublestar.Glob(fsys, l.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "invalid document pattern %s", l.pattern)
	}
	sort.Strings(matches)

	loadedAt := l.now().UTC()
	docs := make([]models.RawDocument, 0, len(matches))
	for _, name := range matches {
		if !strings.HasSuffix(name, ".json") {
			continue
		}

		records, err := readRecords(fsys, name)
		if err != nil {
			return nil, err
		}

		slug := strings.TrimSuffix(path.Base(name), ".json")
		docs = append(docs, models.RawDocument{
			Slug:            slug,
			Title:           Title(slug),
			MetaDescription: "Seed data for " + slug,
			Status:          string(models.StatusPublished),
			PublishedAt:     loadedAt,
			JSONData:        records,
		})

		l.logger.WithContext(ctx).WithFields(map[string]any{
			"file":    name,
			"slug":    slug,
			"records": len(records),
		}).Debug("Loaded document")
	}

	l.logger.WithContext(ctx).WithField("documents", len(docs)).Info("Loaded documents")
	return docs, nil
}

// Title turns a slug into a display title: dashes become spaces and every
// word starts with a capital.
func Title(slug string) string {
	return cases.Title(language.Und, cases.NoLower).String(strings.ReplaceAll(slug, "-", " "))
}

// readRecords decodes a file holding either an array or a single value; a
// single value becomes a one-element array. Numbers keep their source text.
func readRecords(fsys fs.FS, name string) ([]any, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", name)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	var data any
	if err := decoder.Decode(&data); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", name)
	}

	if records, ok := data.([]any); ok {
		return records, nil
	}
	return []any{data}, nil
}
