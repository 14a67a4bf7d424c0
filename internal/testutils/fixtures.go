package testutils

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/catalog"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// CreateTestCatalog builds a small catalog covering every pricing and
// validation path: costed categories and single choices, the special
// perks, traits, and graded spells across several blessings.
func CreateTestCatalog() *catalog.Catalog {
	return catalog.New([]*catalog.Option{
		// Categories
		{Key: "blade", Title: "Blade", Cost: 4, Blessing: "war"},
		{Key: "bow", Title: "Bow", Cost: 3, Blessing: "war"},
		{Key: "staff", Title: "Staff", Cost: 2, Blessing: "lore"},

		// Single choices
		{Key: "ally", Title: "Ally", Cost: 2},
		{Key: "archmage", Title: "Archmage", Cost: 10},
		{Key: "towering", Title: "Towering", Cost: 5},

		// Perks
		{Key: build.PerkManyTalents, Title: "Many Talents", Cost: 3},
		{Key: build.PerkChatterbox, Title: "Chatterbox", Cost: 2},
		{Key: build.PerkSignaturePower, Title: "Signature Power", Cost: 5},
		{Key: build.PerkImpressiveCareer, Title: "Impressive Career", Cost: 5},
		{Key: build.PerkUnnervingAppearance, Title: "Unnerving Appearance", Cost: 4},
		{Key: build.PerkSteelSkin, Title: "Steel Skin", Cost: 6},
		{Key: build.PerkInhumanForm, Title: "Inhuman Form", Cost: 12},
		{Key: build.PerkSpecialWeapon, Title: "Special Weapon", Cost: 8},
		{Key: build.PerkMagicalBeast, Title: "Magical Beast", Cost: 5},
		{Key: build.PerkDarkMagic, Title: "Dark Magic", Cost: 10},
		{Key: build.PerkVersatile, Title: "Versatile", Cost: 3},
		{Key: "bonded_blade", Title: "Bonded Blade", Cost: 6},

		// Traits
		{Key: "loyal", Title: "Loyal", Cost: 1},
		{Key: "fierce", Title: "Fierce", Cost: 2},

		// Spells
		{Key: "ember_bolt", Title: "Ember Bolt", Cost: 3, Grade: shared.GradeKaarn, Blessing: "flame"},
		{Key: "ash_veil", Title: "Ash Veil", Cost: 3, Grade: shared.GradeKaarn, Blessing: "flame"},
		{Key: "cinder_step", Title: "Cinder Step", Cost: 3, Grade: shared.GradeKaarn, Blessing: "flame"},
		{Key: "tide_call", Title: "Tide Call", Cost: 4, Grade: shared.GradePurth, Blessing: "sea"},
		{Key: "deep_current", Title: "Deep Current", Cost: 4, Grade: shared.GradePurth, Blessing: "sea"},
		{Key: "sun_lance", Title: "Sun Lance", Cost: 8, Grade: shared.GradeXuth, Blessing: "flame"},
		{Key: "star_fall", Title: "Star Fall", Cost: 8, Grade: shared.GradeXuth, Blessing: "flame"},
		{Key: "umbral_pact", Title: "Umbral Pact", Cost: 9, Grade: shared.GradeJuathas, Blessing: "flame"},
		{Key: "void_whisper", Title: "Void Whisper", Cost: 9, Grade: shared.GradeJuathas, Blessing: "sea"},
	})
}

// CreateTestSelection builds a selection with a few choices made
func CreateTestSelection(t shared.BuildType) *build.Selection {
	sel := build.NewSelection(t)
	sel.ToggleCategory("blade")
	sel.SetRelationship("ally")
	return sel
}

// CreateTestBuild builds a saved build around CreateTestSelection
func CreateTestBuild(t shared.BuildType, name string) *build.Build {
	return &build.Build{
		Type:      t,
		Name:      name,
		Selection: CreateTestSelection(t),
		Version:   1,
	}
}
