// Package topics resolves the topic tags attached to a page slug.
package topics

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed topics.yaml
var defaultTable []byte

// Table maps a page slug to its ordered topic names.
type Table struct {
	entries map[string][]string
}

// Default returns the table compiled into the binary.
func Default() *Table {
	table, err := Parse(defaultTable)
	if err != nil {
		panic(err)
	}
	return table
}

// Load reads a table from path, or returns the default table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read topics file %s", path)
	}

	table, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse topics file %s", path)
	}
	return table, nil
}

func Parse(data []byte) (*Table, error) {
	entries := map[string][]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &Table{entries: entries}, nil
}

// TopicsFor returns a copy of the topics for slug; unknown slugs have none.
func (t *Table) TopicsFor(slug string) []string {
	names := t.entries[slug]
	out := make([]string, len(names))
	copy(out, names)
	return out
}
