package points

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// ZeroCostRule waives a perk's cost while another perk is selected. The
// waiver is surfaced as an override so the UI can show the reason.
type ZeroCostRule struct {
	WithPerk string
	Reason   string
}

// MeleeDiscountRule is the weapon-build conditional discount: applies
// when a chosen category is in the melee set, the required perk is
// active, and the external training flag is set.
type MeleeDiscountRule struct {
	Categories   []string
	RequiredPerk string
	Amount       int
	Reason       string
}

// Pricing configures every special-cased perk formula. Perks not named
// here cost catalog cost times count.
type Pricing struct {
	// TierPerk costs TierBase for the first purchase and TierIncrement
	// for each further one; a surcharge lands once when any paid pick of
	// the perk is of SurchargeGrade
	TierPerk       string
	TierBase       int
	TierIncrement  int
	SurchargeGrade shared.Grade
	Surcharge      int

	// TablePerk costs a lookup by count; counts beyond the table clamp
	// to the highest entry
	TablePerk string
	Table     map[int]int

	// ZeroCostPerks are waived while their companion perk is selected
	ZeroCostPerks map[string]ZeroCostRule

	// CreaturePerk costs CreatureUnitCost per creature, independent of
	// the perk's catalog cost
	CreaturePerk     string
	CreatureUnitCost int

	// MeleeDiscount applies to weapon builds only
	MeleeDiscount MeleeDiscountRule

	// BPRate converts spent bond points into a final discount
	BPRate int
}

// DefaultPricing returns the observed live pricing rules
func DefaultPricing() Pricing {
	return Pricing{
		TierPerk:       build.PerkSignaturePower,
		TierBase:       5,
		TierIncrement:  10,
		SurchargeGrade: shared.GradeXuth,
		Surcharge:      10,
		TablePerk:      build.PerkImpressiveCareer,
		Table:          map[int]int{1: 5, 2: 10, 3: 15},
		ZeroCostPerks: map[string]ZeroCostRule{
			build.PerkUnnervingAppearance: {WithPerk: build.PerkInhumanForm, Reason: "included with inhuman form"},
			build.PerkSteelSkin:           {WithPerk: build.PerkInhumanForm, Reason: "included with inhuman form"},
		},
		CreaturePerk:     build.PerkMagicalBeast,
		CreatureUnitCost: 15,
		MeleeDiscount: MeleeDiscountRule{
			Categories:   []string{"blade", "axe", "hammer", "polearm"},
			RequiredPerk: "bonded_blade",
			Amount:       8,
			Reason:       "melee training",
		},
		BPRate: 2,
	}
}

func (p Pricing) tierCost(count int) int {
	if count <= 0 {
		return 0
	}
	return p.TierBase + (count-1)*p.TierIncrement
}

func (p Pricing) tableCost(count int) int {
	if count <= 0 || len(p.Table) == 0 {
		return 0
	}
	if cost, ok := p.Table[count]; ok {
		return cost
	}
	// Clamp to the highest priced count
	best, cost := 0, 0
	for c, v := range p.Table {
		if c > best {
			best, cost = c, v
		}
	}
	return cost
}

func (p Pricing) meleeCategory(key string) bool {
	for _, c := range p.MeleeDiscount.Categories {
		if c == key {
			return true
		}
	}
	return false
}
