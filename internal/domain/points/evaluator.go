// Package points computes the point total of a selection. Evaluation is
// pure and deterministic: same selection, same catalog, same result. It
// tolerates partially-filled selections and catalog misses — an unknown
// key contributes nothing and never errors.
package points

import (
	"sort"

	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/catalog"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// Env carries flags from outside the selection that pricing depends on
type Env struct {
	// MeleeTraining is the external training flag required by the weapon
	// melee discount
	MeleeTraining bool
}

// Line is one positive cost contribution
type Line struct {
	Key    string
	Points int
}

// Discount is a named amount subtracted from the total, reported
// separately so the UI can show where the points went
type Discount struct {
	Reason string
	Points int
}

// Override records a perk whose cost was waived and why
type Override struct {
	Perk   string
	Reason string
}

// Result is the full cost breakdown. Total may be negative; the core
// never clamps.
type Result struct {
	Total     int
	Lines     []Line
	Discounts []Discount
	Overrides []Override
}

// Evaluate computes the cost breakdown of a selection
func Evaluate(sel *build.Selection, cat *catalog.Catalog, env Env, pricing Pricing) Result {
	var result Result
	if sel == nil {
		return result
	}

	add := func(key string, points int) {
		result.Lines = append(result.Lines, Line{Key: key, Points: points})
		result.Total += points
	}
	subtract := func(reason string, points int) {
		result.Discounts = append(result.Discounts, Discount{Reason: reason, Points: points})
		result.Total -= points
	}

	for _, key := range []string{sel.Relationship, sel.PowerLevel, sel.Size} {
		if opt, ok := cat.Get(key); ok {
			add(opt.Key, opt.Cost)
		}
	}

	for _, key := range sel.Categories {
		if opt, ok := cat.Get(key); ok {
			add(opt.Key, opt.Cost)
		}
	}

	perkKeys := make([]string, 0, len(sel.Perks))
	for key := range sel.Perks {
		perkKeys = append(perkKeys, key)
	}
	sort.Strings(perkKeys)

	for _, key := range perkKeys {
		count := sel.Perks[key]
		switch {
		case key == pricing.TierPerk:
			add(key, pricing.tierCost(count))
			if surchargeGradePicked(sel.EffectivePicks(key), cat, pricing.SurchargeGrade) {
				add(key+"_surcharge", pricing.Surcharge)
			}
		case key == pricing.TablePerk:
			add(key, pricing.tableCost(count))
		case key == pricing.CreaturePerk:
			add(key, count*pricing.CreatureUnitCost)
		default:
			if rule, ok := pricing.ZeroCostPerks[key]; ok && sel.PerkCount(rule.WithPerk) > 0 {
				add(key, 0)
				result.Overrides = append(result.Overrides, Override{Perk: key, Reason: rule.Reason})
				continue
			}
			add(key, cat.Cost(key)*count)
		}
	}

	if sel.TraitsActive() {
		for _, key := range sel.Traits {
			if opt, ok := cat.Get(key); ok {
				add(opt.Key, opt.Cost)
			}
		}
	}

	if sel.Type == shared.BuildTypeWeapon && meleeDiscountApplies(sel, env, pricing) {
		subtract(pricing.MeleeDiscount.Reason, pricing.MeleeDiscount.Amount)
	}

	if sel.BPSpent > 0 {
		subtract("bond points", sel.BPSpent*pricing.BPRate)
	}

	return result
}

// Total is a convenience wrapper returning only the point total
func Total(sel *build.Selection, cat *catalog.Catalog, env Env, pricing Pricing) int {
	return Evaluate(sel, cat, env, pricing).Total
}

func surchargeGradePicked(picks []string, cat *catalog.Catalog, grade shared.Grade) bool {
	if grade == shared.GradeNone {
		return false
	}
	for _, key := range picks {
		if cat.GradeOf(key) == grade {
			return true
		}
	}
	return false
}

func meleeDiscountApplies(sel *build.Selection, env Env, pricing Pricing) bool {
	if !env.MeleeTraining {
		return false
	}
	if pricing.MeleeDiscount.RequiredPerk == "" || sel.PerkCount(pricing.MeleeDiscount.RequiredPerk) == 0 {
		return false
	}
	for _, key := range sel.Categories {
		if pricing.meleeCategory(key) {
			return true
		}
	}
	return false
}
