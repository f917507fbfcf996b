package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchd-io/stitchd/pkg/catalog/models"
	"github.com/stitchd-io/stitchd/pkg/catalog/store"
)

func createTestStore(t *testing.T) *store.GORMStore {
	t.Helper()
	s, err := store.New(&store.Config{
		Type: store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{
			Path: ":memory:",
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedEntity(t *testing.T, s *store.GORMStore, ref string) string {
	t.Helper()
	id, err := s.CreateEntity(context.Background(), &models.Entity{
		Ref:        ref,
		ResultHash: "hash-" + ref,
	})
	require.NoError(t, err)
	require.NoError(t, s.UpsertFinalEntity(context.Background(), &models.FinalEntity{
		EntityID: id,
		Hash:     "final-" + ref,
	}))
	return id
}

func TestRunOnceDeletesOrphans(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seedEntity(t, s, "component/rooted")
	seedEntity(t, s, "component/orphan")
	require.NoError(t, s.AddProviderEdge(ctx, "provider:github", "component/rooted"))

	sweeper := NewSweeper(s, nil, DefaultSweeperConfig())

	stats, err := sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.EntitiesDeleted)

	_, err = s.GetEntity(ctx, "component/orphan")
	assert.ErrorIs(t, err, models.ErrEntityNotFound)

	_, err = s.GetEntity(ctx, "component/rooted")
	assert.NoError(t, err)
}

func TestRunOnceDryRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seedEntity(t, s, "component/orphan")

	cfg := DefaultSweeperConfig()
	cfg.DryRun = true
	sweeper := NewSweeper(s, nil, cfg)

	stats, err := sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.EntitiesDeleted)

	// Dry run must not mutate the catalog.
	_, err = s.GetEntity(ctx, "component/orphan")
	assert.NoError(t, err)
}

func TestLastRun(t *testing.T) {
	s := createTestStore(t)
	sweeper := NewSweeper(s, nil, DefaultSweeperConfig())

	stats, runAt, err := sweeper.LastRun()
	assert.Nil(t, stats)
	assert.True(t, runAt.IsZero())
	assert.NoError(t, err)

	_, err = sweeper.RunOnce(context.Background())
	require.NoError(t, err)

	stats, runAt, err = sweeper.LastRun()
	assert.NotNil(t, stats)
	assert.False(t, runAt.IsZero())
	assert.NoError(t, err)
}

func TestPeriodicLoop(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seedEntity(t, s, "component/orphan")

	cfg := DefaultSweeperConfig()
	cfg.Interval = 20 * time.Millisecond
	sweeper := NewSweeper(s, nil, cfg)

	sweeper.Start(ctx)
	defer sweeper.Stop(time.Second)

	require.Eventually(t, func() bool {
		stats, _, _ := sweeper.LastRun()
		return stats != nil
	}, 2*time.Second, 10*time.Millisecond)

	_, err := s.GetEntity(ctx, "component/orphan")
	assert.ErrorIs(t, err, models.ErrEntityNotFound)
}

func TestStopWithoutStart(t *testing.T) {
	sweeper := NewSweeper(createTestStore(t), nil, DefaultSweeperConfig())
	// Should not panic or block
	sweeper.Stop(time.Second)
}

func TestStartIdempotent(t *testing.T) {
	s := createTestStore(t)
	cfg := DefaultSweeperConfig()
	cfg.Interval = time.Hour
	sweeper := NewSweeper(s, nil, cfg)

	ctx := context.Background()
	sweeper.Start(ctx)
	sweeper.Start(ctx) // second call is a no-op
	sweeper.Stop(time.Second)
}
