package builds_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	forgeerr "github.com/theapple1234/magecraft-forge/internal/errors"
	"github.com/theapple1234/magecraft-forge/internal/repositories/builds"
	"github.com/theapple1234/magecraft-forge/internal/testutils"
)

func openSQLite(t *testing.T) *builds.SQLiteRepository {
	t.Helper()
	repo, err := builds.OpenSQLite(filepath.Join(t.TempDir(), "forge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLite_SaveGetRoundTrip(t *testing.T) {
	repo := openSQLite(t)
	ctx := context.Background()

	b := testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")
	require.NoError(t, repo.Save(ctx, b))

	got, err := repo.Get(ctx, shared.BuildTypeBeast, "Fenrir")
	require.NoError(t, err)
	assert.Equal(t, b.Selection, got.Selection)
	assert.Equal(t, b.Version, got.Version)
}

func TestSQLite_UpsertLastWriteWins(t *testing.T) {
	repo := openSQLite(t)
	ctx := context.Background()

	b := testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")
	require.NoError(t, repo.Save(ctx, b))

	updated := b.Clone()
	updated.Selection.SetBPSpent(3)
	updated.Version = 2
	require.NoError(t, repo.Save(ctx, updated))

	got, err := repo.Get(ctx, shared.BuildTypeBeast, "Fenrir")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Selection.BPSpent)
	assert.Equal(t, 2, got.Version)
}

func TestSQLite_GetNotFound(t *testing.T) {
	repo := openSQLite(t)

	_, err := repo.Get(context.Background(), shared.BuildTypeBeast, "Nobody")
	require.Error(t, err)
	assert.True(t, forgeerr.IsNotFound(err))
}

func TestSQLite_ListByTypeOrdered(t *testing.T) {
	repo := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutils.CreateTestBuild(shared.BuildTypeBeast, "Skoll")))
	require.NoError(t, repo.Save(ctx, testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")))

	results, err := repo.ListByType(ctx, shared.BuildTypeBeast)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Fenrir", results[0].Name)
	assert.Equal(t, "Skoll", results[1].Name)
}

func TestSQLite_Delete(t *testing.T) {
	repo := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")))
	require.NoError(t, repo.Delete(ctx, shared.BuildTypeBeast, "Fenrir"))

	err := repo.Delete(ctx, shared.BuildTypeBeast, "Fenrir")
	require.Error(t, err)
	assert.True(t, forgeerr.IsNotFound(err))
}

func TestSQLite_SheetRoundTrip(t *testing.T) {
	repo := openSQLite(t)
	ctx := context.Background()

	sheet, err := repo.GetSheet(ctx)
	require.NoError(t, err)
	assert.Empty(t, sheet.Companions)

	sheet.Toggle(shared.BuildTypeCompanion, "Aria")
	require.NoError(t, repo.SaveSheet(ctx, sheet))

	got, err := repo.GetSheet(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Aria"}, got.Companions)
}
