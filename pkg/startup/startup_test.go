package startup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDependency struct {
	name      string
	dependsOn []string
	failures  int
	starts    int
	stops     int
	events    *[]string
}

func (d *fakeDependency) GetName() string     { return d.name }
func (d *fakeDependency) DependsOn() []string { return d.dependsOn }

func (d *fakeDependency) Start(ctx context.Context) error {
	d.starts++
	if d.starts <= d.failures {
		return errors.New("not ready")
	}
	*d.events = append(*d.events, "start:"+d.name)
	return nil
}

func (d *fakeDependency) Stop(ctx context.Context) error {
	d.stops++
	*d.events = append(*d.events, "stop:"+d.name)
	return nil
}

func newStartup(maxAttempts int) *Startup {
	s := NewStartup(ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}), maxAttempts)
	s.SetBackoffUnit(time.Millisecond)
	return s
}

func TestStartup(t *testing.T) {
	t.Run("should start dependencies before their dependents", func(t *testing.T) {
		events := []string{}
		s := newStartup(1)
		s.AddDependency(&fakeDependency{name: "migrations", dependsOn: []string{"database"}, events: &events})
		s.AddDependency(&fakeDependency{name: "database", events: &events})

		require.NoError(t, s.Start(context.Background()))
		assert.Equal(t, []string{"start:database", "start:migrations"}, events)
		assert.Equal(t, StartupStatusStarted, s.Status("migrations"))
	})

	t.Run("should retry until the dependency starts", func(t *testing.T) {
		events := []string{}
		database := &fakeDependency{name: "database", failures: 2, events: &events}
		s := newStartup(3)
		s.AddDependency(database)

		require.NoError(t, s.Start(context.Background()))
		assert.Equal(t, 3, database.starts)
	})

	t.Run("should give up after max attempts", func(t *testing.T) {
		events := []string{}
		s := newStartup(2)
		s.AddDependency(&fakeDependency{name: "database", failures: 5, events: &events})

		err := s.Start(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "startup failed after 2 attempts")
		assert.Equal(t, StartupStatusFailed, s.Status("database"))
	})

	t.Run("should report unknown dependencies", func(t *testing.T) {
		events := []string{}
		s := newStartup(1)
		s.AddDependency(&fakeDependency{name: "migrations", dependsOn: []string{"database"}, events: &events})

		err := s.Start(context.Background())
		assert.ErrorContains(t, err, "unknown startup dependency 'database'")
	})

	t.Run("should stop started dependencies in reverse order", func(t *testing.T) {
		events := []string{}
		s := newStartup(1)
		s.AddDependency(&fakeDependency{name: "database", events: &events})
		s.AddDependency(&fakeDependency{name: "migrations", dependsOn: []string{"database"}, events: &events})

		require.NoError(t, s.Start(context.Background()))
		require.NoError(t, s.Stop(context.Background()))
		assert.Equal(t, []string{"start:database", "start:migrations", "stop:migrations", "stop:database"}, events)
		assert.Equal(t, StartupStatusStopped, s.Status("database"))
	})
}
