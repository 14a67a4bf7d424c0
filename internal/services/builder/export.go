package builder

import (
	"context"
	"encoding/json"
	"time"

	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	forgeerr "github.com/theapple1234/magecraft-forge/internal/errors"
)

// Export envelope markers. Single-export is the legacy one-build file;
// multi-export bundles a build with everything it references so one file
// restores the cross-references intact.
const (
	MetaSingleExport = "single-export"
	MetaMultiExport  = "multi-export"
)

// Payload is the versioned selection payload inside an export file
type Payload struct {
	Version int                  `json:"version"`
	Data    *build.SelectionData `json:"data"`
}

// SingleExport is the legacy one-build envelope
type SingleExport struct {
	Meta    string           `json:"meta"`
	Type    shared.BuildType `json:"type"`
	Name    string           `json:"name"`
	Payload Payload          `json:"payload"`
}

// BuildRef names one build inside an export file
type BuildRef struct {
	Type shared.BuildType `json:"type"`
	Name string           `json:"name"`
}

// ExportedBuild is one bundled build of a multi-export
type ExportedBuild struct {
	Type shared.BuildType `json:"type"`
	Name string           `json:"name"`
	Data Payload          `json:"data"`
}

// MultiExport bundles a main build with its dependencies
type MultiExport struct {
	Meta       string          `json:"meta"`
	ExportID   string          `json:"export_id,omitempty"`
	ExportedAt time.Time       `json:"exported_at,omitempty"`
	MainBuild  BuildRef        `json:"main_build"`
	Builds     []ExportedBuild `json:"builds"`
}

// ImportResult reports what an import restored
type ImportResult struct {
	Imported []BuildRef
}

func (s *service) ExportBuild(ctx context.Context, t shared.BuildType, name string) (*MultiExport, error) {
	main, err := s.repo.Get(ctx, t, name)
	if err != nil {
		return nil, err
	}

	bundle := []*build.Build{main}
	for _, rel := range build.Relations {
		if rel.DependentType != t {
			continue
		}
		depName := main.Selection.AssignedName(rel.Field)
		if depName == "" {
			continue
		}
		dep, err := s.repo.Get(ctx, rel.DependencyType, depName)
		if forgeerr.IsNotFound(err) {
			// Dangling reference, accepted degraded state: export what exists
			continue
		}
		if err != nil {
			return nil, err
		}
		bundle = append(bundle, dep)
	}

	export := &MultiExport{
		Meta:       MetaMultiExport,
		ExportID:   s.uuidGen.New(),
		ExportedAt: time.Now().UTC(),
		MainBuild:  BuildRef{Type: main.Type, Name: main.Name},
	}
	for _, b := range bundle {
		export.Builds = append(export.Builds, ExportedBuild{
			Type: b.Type,
			Name: b.Name,
			Data: Payload{Version: b.Version, Data: build.ToData(b.Selection)},
		})
	}
	return export, nil
}

func (s *service) Import(ctx context.Context, raw []byte) (*ImportResult, error) {
	var head struct {
		Meta string `json:"meta"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, forgeerr.Validation("file is not a recognized export")
	}

	switch head.Meta {
	case MetaSingleExport:
		var envelope SingleExport
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, forgeerr.Validation("file is not a valid single-build export")
		}
		return s.importBuilds(ctx, []ExportedBuild{{
			Type: envelope.Type,
			Name: envelope.Name,
			Data: envelope.Payload,
		}})
	case MetaMultiExport:
		var envelope MultiExport
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, forgeerr.Validation("file is not a valid multi-build export")
		}
		return s.importBuilds(ctx, envelope.Builds)
	default:
		return nil, forgeerr.Validationf("unknown export format '%s'", head.Meta)
	}
}

// importBuilds validates the whole bundle before writing anything, so a
// malformed entry rejects the file without partial corruption
func (s *service) importBuilds(ctx context.Context, bundle []ExportedBuild) (*ImportResult, error) {
	if len(bundle) == 0 {
		return nil, forgeerr.Validation("export contains no builds")
	}
	for _, entry := range bundle {
		if !entry.Type.IsValid() {
			return nil, forgeerr.Validationf("unknown build type '%s' in export", entry.Type)
		}
		if entry.Name == "" {
			return nil, forgeerr.Validation("export contains a build without a name")
		}
		if entry.Data.Data == nil {
			return nil, forgeerr.Validationf("export entry '%s' has no selection data", entry.Name)
		}
	}

	result := &ImportResult{}
	for _, entry := range bundle {
		b := &build.Build{
			Type:      entry.Type,
			Name:      entry.Name,
			Selection: build.FromData(entry.Data.Data),
			Version:   entry.Data.Version,
		}
		if err := s.repo.Save(ctx, b); err != nil {
			return nil, err
		}
		result.Imported = append(result.Imported, BuildRef{Type: entry.Type, Name: entry.Name})
	}
	return result, nil
}
