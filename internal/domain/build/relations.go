package build

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// Relation declares that builds of DependentType reference a named build
// of DependencyType through the given assigned-entity field. The rename
// cascade and the usage audit iterate this table generically; adding a
// new cross-reference is one registration here.
type Relation struct {
	DependentType  shared.BuildType
	Field          string
	DependencyType shared.BuildType
}

// Relations is the registry of every known cross-build reference
var Relations = []Relation{
	{DependentType: shared.BuildTypeCompanion, Field: FieldInhumanForm, DependencyType: shared.BuildTypeBeast},
	{DependentType: shared.BuildTypeCompanion, Field: FieldSpecialWeapon, DependencyType: shared.BuildTypeWeapon},
}

// RelationsInto returns the relations whose dependency side is t, i.e.
// every way a build of type t can be referenced from elsewhere
func RelationsInto(t shared.BuildType) []Relation {
	var result []Relation
	for _, rel := range Relations {
		if rel.DependencyType == t {
			result = append(result, rel)
		}
	}
	return result
}
