package builds

import (
	"context"
	"sort"
	"sync"

	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	forgeerr "github.com/theapple1234/magecraft-forge/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the build
// repository. Useful for testing and development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	builds map[string]*build.Build
	sheet  *build.Sheet
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		builds: make(map[string]*build.Build),
	}
}

// Save upserts a build
func (r *InMemoryRepository) Save(_ context.Context, b *build.Build) error {
	if err := validateBuild(b); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.builds[b.ID()] = b.Clone()
	return nil
}

// Get retrieves a build by type and name
func (r *InMemoryRepository) Get(_ context.Context, t shared.BuildType, name string) (*build.Build, error) {
	if name == "" {
		return nil, forgeerr.InvalidArgument("build name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.builds[string(t)+":"+name]
	if !exists {
		return nil, forgeerr.NotFoundf("%s build '%s' not found", t, name).
			WithMeta("build_type", string(t)).
			WithMeta("build_name", name)
	}
	return b.Clone(), nil
}

// ListByType retrieves all builds of one type, ordered by name
func (r *InMemoryRepository) ListByType(_ context.Context, t shared.BuildType) ([]*build.Build, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*build.Build
	for _, b := range r.builds {
		if b.Type == t {
			results = append(results, b.Clone())
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

// ListAll retrieves every stored build
func (r *InMemoryRepository) ListAll(ctx context.Context) ([]*build.Build, error) {
	var all []*build.Build
	for _, t := range shared.BuildTypes {
		results, err := r.ListByType(ctx, t)
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// Delete removes a build
func (r *InMemoryRepository) Delete(_ context.Context, t shared.BuildType, name string) error {
	if name == "" {
		return forgeerr.InvalidArgument("build name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := string(t) + ":" + name
	if _, exists := r.builds[id]; !exists {
		return forgeerr.NotFoundf("%s build '%s' not found", t, name).
			WithMeta("build_type", string(t)).
			WithMeta("build_name", name)
	}
	delete(r.builds, id)
	return nil
}

// GetSheet retrieves the character sheet, empty when never saved
func (r *InMemoryRepository) GetSheet(_ context.Context) (*build.Sheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.sheet == nil {
		return build.NewSheet(), nil
	}
	return r.sheet.Clone(), nil
}

// SaveSheet upserts the character sheet
func (r *InMemoryRepository) SaveSheet(_ context.Context, sheet *build.Sheet) error {
	if sheet == nil {
		return forgeerr.InvalidArgument("sheet cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sheet = sheet.Clone()
	return nil
}
