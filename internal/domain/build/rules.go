package build

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// DependentPickRule keeps a restricted pick set consistent with the
// selection that feeds it: restricted-grade entries stay valid only while
// the feeding pick set holds at least MinShared options of the same
// blessing. Entries that lose their support are pruned on reconcile.
type DependentPickRule struct {
	PickPerk        string
	RestrictedGrade shared.Grade
	FeedsFrom       string
	MinShared       int
}

// Rules describes which perks gate which selection fields for one build
// type. The catalogs differ per type; the gating structure is fixed here.
type Rules struct {
	// MultiCategoryPerk raises the category cap: max = 1 + count
	MultiCategoryPerk string

	// TraitGatePerk makes traits meaningful (and costed) while active
	TraitGatePerk string

	// PickPerks own a pick set keyed by the perk key; removing the perk
	// clears the set
	PickPerks []string

	// AssignedGates maps an assigned-entity field to its gating perk
	AssignedGates map[string]string

	// DependentPicks are reconciled after upstream pick mutations
	DependentPicks []DependentPickRule
}

var rulesByType = map[shared.BuildType]Rules{
	shared.BuildTypeCompanion: {
		MultiCategoryPerk: PerkManyTalents,
		TraitGatePerk:     PerkChatterbox,
		PickPerks:         []string{PerkSignaturePower, PerkDarkMagic},
		AssignedGates: map[string]string{
			FieldInhumanForm:   PerkInhumanForm,
			FieldSpecialWeapon: PerkSpecialWeapon,
		},
		DependentPicks: []DependentPickRule{
			{
				PickPerk:        PerkDarkMagic,
				RestrictedGrade: shared.GradeJuathas,
				FeedsFrom:       PerkSignaturePower,
				MinShared:       2,
			},
		},
	},
	shared.BuildTypeWeapon: {
		MultiCategoryPerk: PerkVersatile,
		PickPerks:         []string{PerkRunework},
	},
	shared.BuildTypeBeast: {
		MultiCategoryPerk: PerkChimeric,
		PickPerks:         []string{PerkInnateMagic},
	},
	shared.BuildTypeVehicle: {
		MultiCategoryPerk: PerkModularFrame,
		PickPerks:         []string{PerkArmaments},
	},
}

// RulesFor returns the gating rules for a build type
func RulesFor(t shared.BuildType) Rules {
	return rulesByType[t]
}

// HasPickPerk reports whether perk owns a pick set under these rules
func (r Rules) HasPickPerk(perk string) bool {
	for _, p := range r.PickPerks {
		if p == perk {
			return true
		}
	}
	return false
}

// GateFor returns the gating perk for an assigned-entity field
func (r Rules) GateFor(field string) (string, bool) {
	gate, ok := r.AssignedGates[field]
	return gate, ok
}
