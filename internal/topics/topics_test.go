package topics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	table := Default()

	assert.Equal(t, []string{"History"}, table.TopicsFor("history"))
	assert.Equal(t, []string{"Wine", "Food & Drink"}, table.TopicsFor("wine"))
	assert.Equal(t, []string{"Travel", "Culture"}, table.TopicsFor("general"))
	assert.Empty(t, table.TopicsFor("unknown"))
	assert.NotNil(t, table.TopicsFor("unknown"))
}

func TestTopicsForReturnsCopy(t *testing.T) {
	table := Default()
	names := table.TopicsFor("culture")
	names[0] = "changed"

	assert.Equal(t, []string{"Culture", "Traditions"}, table.TopicsFor("culture"))
}

func TestLoad(t *testing.T) {
	t.Run("should use the default table without a path", func(t *testing.T) {
		table, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, []string{"Nature"}, table.TopicsFor("nature"))
	})

	t.Run("should read an override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "topics.yaml")
		require.NoError(t, os.WriteFile(path, []byte("history:\n  - History\n  - Archaeology\n"), 0o600))

		table, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"History", "Archaeology"}, table.TopicsFor("history"))
		assert.Empty(t, table.TopicsFor("nature"))
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "topics.yaml")
		require.NoError(t, os.WriteFile(path, []byte("history: [unterminated"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}
