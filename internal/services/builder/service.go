// Package builder orchestrates build persistence: saves, the rename
// cascade across cross-referencing builds, the usage audit, and
// import/export envelopes.
package builder

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	forgeerr "github.com/theapple1234/magecraft-forge/internal/errors"
	"github.com/theapple1234/magecraft-forge/internal/repositories/builds"
	"github.com/theapple1234/magecraft-forge/internal/uuid"
)

// Usage describes one place a named build is referenced from
type Usage struct {
	// Kind is "sheet" for character-level references, "build" for
	// references held by another stored build
	Kind string

	// DependentType and DependentName identify the referencing build
	// when Kind is "build"
	DependentType shared.BuildType
	DependentName string

	// Field is the assigned-entity field holding the reference
	Field string

	// Description is human readable, for confirmation dialogs
	Description string
}

// Service defines the build orchestration interface
type Service interface {
	// SaveBuild upserts a build under (type, name), bumping its version.
	// Overwrite intent is the caller's responsibility; an existing name
	// is overwritten without warning.
	SaveBuild(ctx context.Context, t shared.BuildType, name string, sel *build.Selection) (*build.Build, error)

	// GetBuild retrieves a build
	GetBuild(ctx context.Context, t shared.BuildType, name string) (*build.Build, error)

	// ListBuilds lists all builds of one type
	ListBuilds(ctx context.Context, t shared.BuildType) ([]*build.Build, error)

	// RenameBuild moves a build to a new name and rewrites every stored
	// reference to the old name
	RenameBuild(ctx context.Context, t shared.BuildType, oldName, newName string) error

	// DeleteBuild removes a build. It does NOT cascade: callers are
	// expected to run FindUsages first and warn on remaining references;
	// deleting a still-referenced build leaves dangling name strings.
	DeleteBuild(ctx context.Context, t shared.BuildType, name string) error

	// FindUsages lists every current reference to the named build
	FindUsages(ctx context.Context, t shared.BuildType, name string) ([]Usage, error)

	// ExportBuild bundles a build with the builds it references into a
	// self-contained multi-export file
	ExportBuild(ctx context.Context, t shared.BuildType, name string) (*MultiExport, error)

	// Import restores builds from an export file, either envelope kind.
	// All-or-nothing: a malformed or unknown envelope imports nothing.
	Import(ctx context.Context, raw []byte) (*ImportResult, error)
}

// ServiceConfig holds the service dependencies
type ServiceConfig struct {
	Repository    builds.Repository
	UUIDGenerator uuid.Generator
}

type service struct {
	repo    builds.Repository
	uuidGen uuid.Generator
}

// NewService creates the build orchestration service
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, forgeerr.InvalidArgument("config cannot be nil")
	}
	if cfg.Repository == nil {
		return nil, forgeerr.InvalidArgument("repository is required")
	}
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}
	return &service{repo: cfg.Repository, uuidGen: gen}, nil
}

func (s *service) SaveBuild(ctx context.Context, t shared.BuildType, name string, sel *build.Selection) (*build.Build, error) {
	if !t.IsValid() {
		return nil, forgeerr.InvalidArgumentf("unknown build type '%s'", t)
	}
	if name == "" {
		return nil, forgeerr.InvalidArgument("build name is required")
	}
	if sel == nil {
		return nil, forgeerr.InvalidArgument("selection is required")
	}

	version := 1
	existing, err := s.repo.Get(ctx, t, name)
	if err != nil && !forgeerr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		version = existing.Version + 1
	}

	b := &build.Build{
		Type:      t,
		Name:      name,
		Selection: sel.Clone(),
		Version:   version,
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBuild(ctx context.Context, t shared.BuildType, name string) (*build.Build, error) {
	return s.repo.Get(ctx, t, name)
}

func (s *service) ListBuilds(ctx context.Context, t shared.BuildType) ([]*build.Build, error) {
	return s.repo.ListByType(ctx, t)
}

func (s *service) RenameBuild(ctx context.Context, t shared.BuildType, oldName, newName string) error {
	if newName == "" {
		return forgeerr.InvalidArgument("new build name is required")
	}
	if newName == oldName {
		return forgeerr.InvalidArgument("new build name must differ from the old name")
	}

	b, err := s.repo.Get(ctx, t, oldName)
	if err != nil {
		return err
	}

	b.Name = newName
	if err := s.repo.Save(ctx, b); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, t, oldName); err != nil {
		return err
	}

	return s.cascadeRename(ctx, t, oldName, newName)
}

// cascadeRename rewrites every stored reference to oldName. The updates
// are independent writes; a mid-batch failure leaves the completed ones
// in place and is surfaced, not rolled back.
func (s *service) cascadeRename(ctx context.Context, t shared.BuildType, oldName, newName string) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, rel := range build.RelationsInto(t) {
		dependents, err := s.repo.ListByType(ctx, rel.DependentType)
		if err != nil {
			return forgeerr.Wrapf(err, "rename cascade incomplete: failed to list %s builds", rel.DependentType)
		}
		for _, dep := range dependents {
			if dep.Selection.AssignedName(rel.Field) != oldName {
				continue
			}
			rel, dep := rel, dep
			g.Go(func() error {
				dep.Selection.Assigned[rel.Field] = newName
				dep.Version++
				if err := s.repo.Save(gctx, dep); err != nil {
					return fmt.Errorf("failed to update %s '%s': %w", dep.Type, dep.Name, err)
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return forgeerr.Wrap(err, "rename cascade incomplete")
	}

	sheet, err := s.repo.GetSheet(ctx)
	if err != nil {
		return forgeerr.Wrap(err, "rename cascade incomplete: failed to load sheet")
	}
	if sheet.Rename(t, oldName, newName) > 0 {
		if err := s.repo.SaveSheet(ctx, sheet); err != nil {
			return forgeerr.Wrap(err, "rename cascade incomplete: failed to save sheet")
		}
	}

	return nil
}

func (s *service) DeleteBuild(ctx context.Context, t shared.BuildType, name string) error {
	return s.repo.Delete(ctx, t, name)
}

func (s *service) FindUsages(ctx context.Context, t shared.BuildType, name string) ([]Usage, error) {
	if name == "" {
		return nil, forgeerr.InvalidArgument("build name is required")
	}

	usages := []Usage{}

	sheet, err := s.repo.GetSheet(ctx)
	if err != nil {
		return nil, err
	}
	for _, taken := range sheet.NamesFor(t) {
		if taken == name {
			usages = append(usages, Usage{
				Kind:        "sheet",
				Description: fmt.Sprintf("taken on the character sheet as a %s", t),
			})
		}
	}

	for _, rel := range build.RelationsInto(t) {
		dependents, err := s.repo.ListByType(ctx, rel.DependentType)
		if err != nil {
			return nil, err
		}
		for _, dep := range dependents {
			if dep.Selection.AssignedName(rel.Field) == name {
				usages = append(usages, Usage{
					Kind:          "build",
					DependentType: dep.Type,
					DependentName: dep.Name,
					Field:         rel.Field,
					Description:   fmt.Sprintf("%s '%s' uses it as its %s", dep.Type, dep.Name, rel.Field),
				})
			}
		}
	}

	return usages, nil
}
