package builds

//go:generate mockgen -destination=mock/mock.go -package=mockbuilds -source=interface.go

import (
	"context"

	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// Repository defines the persistence contract for builds and the sheet.
// Save is an upsert, last-write-wins: the repository never refuses an
// overwrite — confirming overwrite intent is the caller's job.
type Repository interface {
	// Save upserts a build under (type, name)
	Save(ctx context.Context, b *build.Build) error

	// Get retrieves a build by type and name
	Get(ctx context.Context, t shared.BuildType, name string) (*build.Build, error)

	// ListByType retrieves all builds of one type, ordered by name
	ListByType(ctx context.Context, t shared.BuildType) ([]*build.Build, error)

	// ListAll retrieves every stored build
	ListAll(ctx context.Context) ([]*build.Build, error)

	// Delete removes a build. No cascade: dependents keep their name
	// strings and the caller is expected to have audited usages first.
	Delete(ctx context.Context, t shared.BuildType, name string) error

	// GetSheet retrieves the character sheet, empty when never saved
	GetSheet(ctx context.Context) (*build.Sheet, error)

	// SaveSheet upserts the character sheet
	SaveSheet(ctx context.Context, sheet *build.Sheet) error
}
