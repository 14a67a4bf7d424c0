package builds

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	forgeerr "github.com/theapple1234/magecraft-forge/internal/errors"
)

// buildData is the serialized form of a build record. The data payload is
// the canonical selection object of the build codec.
type buildData struct {
	ID      string               `json:"id"`
	Type    string               `json:"type"`
	Name    string               `json:"name"`
	Data    *build.SelectionData `json:"data"`
	Version int                  `json:"version"`
}

type redisRepo struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed build repository
func NewRedis(client *redis.Client) Repository {
	return &redisRepo{client: client}
}

func (r *redisRepo) key(t shared.BuildType, name string) string {
	return fmt.Sprintf("build:%s:%s", t, name)
}

func (r *redisRepo) typeKey(t shared.BuildType) string {
	return fmt.Sprintf("builds:%s", t)
}

const sheetKey = "sheet"

// Save upserts a build record and indexes its name under the type set
func (r *redisRepo) Save(ctx context.Context, b *build.Build) error {
	if err := validateBuild(b); err != nil {
		return err
	}

	jsonData, err := marshalBuild(b)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(b.Type, b.Name), string(jsonData), 0)
	pipe.SAdd(ctx, r.typeKey(b.Type), b.Name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save build in Redis: %w", err)
	}

	return nil
}

// Get retrieves a build by type and name
func (r *redisRepo) Get(ctx context.Context, t shared.BuildType, name string) (*build.Build, error) {
	if name == "" {
		return nil, forgeerr.InvalidArgument("build name is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(t, name)).Bytes()
	if err == redis.Nil {
		return nil, forgeerr.NotFoundf("%s build '%s' not found", t, name).
			WithMeta("build_type", string(t)).
			WithMeta("build_name", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get build from Redis: %w", err)
	}

	return unmarshalBuild(jsonData)
}

// ListByType retrieves all builds of one type, ordered by name
func (r *redisRepo) ListByType(ctx context.Context, t shared.BuildType) ([]*build.Build, error) {
	names, err := r.client.SMembers(ctx, r.typeKey(t)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list build names from Redis: %w", err)
	}
	sort.Strings(names)

	results := make([]*build.Build, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			b, err := r.Get(ctx, t, name)
			if err != nil {
				return fmt.Errorf("failed to get build %s: %w", name, err)
			}
			results[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// ListAll retrieves every stored build across the four types
func (r *redisRepo) ListAll(ctx context.Context) ([]*build.Build, error) {
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

// Delete removes a build record and unindexes its name
func (r *redisRepo) Delete(ctx context.Context, t shared.BuildType, name string) error {
	if name == "" {
		return forgeerr.InvalidArgument("build name is required")
	}

	exists, err := r.client.Exists(ctx, r.key(t, name)).Result()
	if err != nil {
		return fmt.Errorf("failed to check build existence: %w", err)
	}
	if exists == 0 {
		return forgeerr.NotFoundf("%s build '%s' not found", t, name).
			WithMeta("build_type", string(t)).
			WithMeta("build_name", name)
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(t, name))
	pipe.SRem(ctx, r.typeKey(t), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete build from Redis: %w", err)
	}

	return nil
}

// GetSheet retrieves the character sheet, empty when never saved
func (r *redisRepo) GetSheet(ctx context.Context) (*build.Sheet, error) {
	jsonData, err := r.client.Get(ctx, sheetKey).Bytes()
	if err == redis.Nil {
		return build.NewSheet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet from Redis: %w", err)
	}

	var sheet build.Sheet
	if err := json.Unmarshal(jsonData, &sheet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet: %w", err)
	}
	return &sheet, nil
}

// SaveSheet upserts the character sheet
func (r *redisRepo) SaveSheet(ctx context.Context, sheet *build.Sheet) error {
	if sheet == nil {
		return forgeerr.InvalidArgument("sheet cannot be nil")
	}

	jsonData, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet: %w", err)
	}

	if err := r.client.Set(ctx, sheetKey, string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to save sheet in Redis: %w", err)
	}
	return nil
}

func validateBuild(b *build.Build) error {
	if b == nil {
		return forgeerr.InvalidArgument("build cannot be nil")
	}
	if !b.Type.IsValid() {
		return forgeerr.InvalidArgumentf("unknown build type '%s'", b.Type)
	}
	if b.Name == "" {
		return forgeerr.InvalidArgument("build name is required")
	}
	if b.Selection == nil {
		return forgeerr.InvalidArgument("build selection is required")
	}
	return nil
}

func marshalBuild(b *build.Build) ([]byte, error) {
	data := buildData{
		ID:      b.ID(),
		Type:    string(b.Type),
		Name:    b.Name,
		Data:    build.ToData(b.Selection),
		Version: b.Version,
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal build: %w", err)
	}
	return jsonData, nil
}

func unmarshalBuild(jsonData []byte) (*build.Build, error) {
	var data buildData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal build: %w", err)
	}
	return &build.Build{
		Type:      shared.BuildType(data.Type),
		Name:      data.Name,
		Selection: build.FromData(data.Data),
		Version:   data.Version,
	}, nil
}
