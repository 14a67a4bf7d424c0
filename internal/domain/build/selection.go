// Package build models the per-type selection state being mutated by the
// UI, the saved build records, and the cross-type reference relations.
package build

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/catalog"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	"github.com/theapple1234/magecraft-forge/internal/domain/spellpick"
)

// Selection is the mutable choice state for one build. Set-like fields are
// kept as insertion-ordered slices so truncation keeps the earliest picks
// and serialization stays canonical.
type Selection struct {
	Type shared.BuildType

	// Categories are the chosen category options, capped at MaxCategories
	Categories []string

	// Single-choice fields, at most one option key each
	Relationship string
	PowerLevel   string
	Size         string

	// Traits is unbounded; only costed while the trait gate perk is active
	Traits []string

	// Perks maps perk key to purchase count (repeatable perks count > 1)
	Perks map[string]int

	// Picks holds the pick sets owned by pick perks. Entries beyond the
	// owning perk's count stay stored but are ignored by cost/display.
	Picks map[string][]string

	// Assigned links relation fields to named builds of other types
	Assigned map[string]string

	// BPSpent is a redeemable discount amount, never negative
	BPSpent int

	// CustomImage is opaque display data, irrelevant to computation
	CustomImage string
}

// NewSelection creates an empty selection for a build type
func NewSelection(t shared.BuildType) *Selection {
	return &Selection{
		Type:     t,
		Perks:    make(map[string]int),
		Picks:    make(map[string][]string),
		Assigned: make(map[string]string),
	}
}

func (s *Selection) rules() Rules {
	return RulesFor(s.Type)
}

// PerkCount returns the purchase count for a perk, zero when absent
func (s *Selection) PerkCount(key string) int {
	if s == nil || s.Perks == nil {
		return 0
	}
	return s.Perks[key]
}

// MaxCategories returns the current category cap: one base slot plus one
// per multi-category perk purchase
func (s *Selection) MaxCategories() int {
	r := s.rules()
	if r.MultiCategoryPerk == "" {
		return 1
	}
	return 1 + s.PerkCount(r.MultiCategoryPerk)
}

// ToggleCategory adds or removes a category choice. Adding past the cap is
// refused. Reports whether the toggle was applied.
func (s *Selection) ToggleCategory(key string) bool {
	if key == "" {
		return false
	}
	if idx := indexOf(s.Categories, key); idx >= 0 {
		s.Categories = append(s.Categories[:idx], s.Categories[idx+1:]...)
		return true
	}
	if len(s.Categories) >= s.MaxCategories() {
		return false
	}
	s.Categories = append(s.Categories, key)
	return true
}

// ToggleTrait adds or removes a trait. Traits are unbounded; gating only
// affects cost. Reports whether the trait is now selected.
func (s *Selection) ToggleTrait(key string) bool {
	if key == "" {
		return false
	}
	if idx := indexOf(s.Traits, key); idx >= 0 {
		s.Traits = append(s.Traits[:idx], s.Traits[idx+1:]...)
		return false
	}
	s.Traits = append(s.Traits, key)
	return true
}

// HasTrait reports whether a trait is selected
func (s *Selection) HasTrait(key string) bool {
	return indexOf(s.Traits, key) >= 0
}

// TraitsActive reports whether traits currently count toward cost
func (s *Selection) TraitsActive() bool {
	gate := s.rules().TraitGatePerk
	return gate != "" && s.PerkCount(gate) > 0
}

// SetRelationship sets the relationship single-choice field; "" clears it
func (s *Selection) SetRelationship(key string) { s.Relationship = key }

// SetPowerLevel sets the power level single-choice field; "" clears it
func (s *Selection) SetPowerLevel(key string) { s.PowerLevel = key }

// SetSize sets the size single-choice field; "" clears it
func (s *Selection) SetSize(key string) { s.Size = key }

// SetPerkCount sets a perk's purchase count, clamped at zero, and applies
// the dependent side effects:
//   - shrinking the multi-category perk truncates categories to the new
//     cap, keeping the earliest choices
//   - dropping a pick perk to zero clears its pick set
//   - dropping an assigned-entity gate to zero clears the assigned name
func (s *Selection) SetPerkCount(key string, count int) {
	if key == "" {
		return
	}
	if count < 0 {
		count = 0
	}
	if s.Perks == nil {
		s.Perks = make(map[string]int)
	}
	if count == 0 {
		delete(s.Perks, key)
	} else {
		s.Perks[key] = count
	}

	r := s.rules()

	if key == r.MultiCategoryPerk {
		if maxCats := s.MaxCategories(); len(s.Categories) > maxCats {
			s.Categories = s.Categories[:maxCats]
		}
	}

	if count == 0 && r.HasPickPerk(key) {
		delete(s.Picks, key)
	}

	if count == 0 {
		for field, gate := range r.AssignedGates {
			if gate == key {
				delete(s.Assigned, field)
			}
		}
	}
}

// SetPicks replaces the pick set owned by perk, deduplicating while
// preserving order. Refused for perks that own no pick set.
func (s *Selection) SetPicks(perk string, keys []string) bool {
	if !s.rules().HasPickPerk(perk) {
		return false
	}
	if s.Picks == nil {
		s.Picks = make(map[string][]string)
	}
	deduped := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || indexOf(deduped, k) >= 0 {
			continue
		}
		deduped = append(deduped, k)
	}
	if len(deduped) == 0 {
		delete(s.Picks, perk)
	} else {
		s.Picks[perk] = deduped
	}
	return true
}

// StoredPicks returns the full stored pick set for perk, overflow included
func (s *Selection) StoredPicks(perk string) []string {
	if s == nil || s.Picks == nil {
		return nil
	}
	return s.Picks[perk]
}

// EffectivePicks returns the picks the owning perk has paid for: the
// stored set sliced to the perk count. Overflow entries stay stored but
// contribute nothing to cost or display.
func (s *Selection) EffectivePicks(perk string) []string {
	stored := s.StoredPicks(perk)
	count := s.PerkCount(perk)
	if count <= 0 {
		return nil
	}
	if len(stored) > count {
		return stored[:count]
	}
	return stored
}

// SetAssigned links an assigned-entity field to a named build. Refused for
// unknown fields or while the gating perk is inactive.
func (s *Selection) SetAssigned(field, name string) bool {
	gate, ok := s.rules().GateFor(field)
	if !ok {
		return false
	}
	if s.PerkCount(gate) == 0 {
		return false
	}
	if s.Assigned == nil {
		s.Assigned = make(map[string]string)
	}
	if name == "" {
		delete(s.Assigned, field)
	} else {
		s.Assigned[field] = name
	}
	return true
}

// AssignedName returns the build name linked through field, or ""
func (s *Selection) AssignedName(field string) string {
	if s == nil || s.Assigned == nil {
		return ""
	}
	return s.Assigned[field]
}

// SetBPSpent sets the redeemable discount amount, clamped at zero
func (s *Selection) SetBPSpent(n int) {
	if n < 0 {
		n = 0
	}
	s.BPSpent = n
}

// ReconcilePicks re-validates dependent pick sets against their feeding
// selections, pruning restricted-grade entries that lost their support.
// Call after any mutation to a feeding pick set or its owning perk.
func (s *Selection) ReconcilePicks(cat *catalog.Catalog) {
	for _, rule := range s.rules().DependentPicks {
		stored := s.StoredPicks(rule.PickPerk)
		if len(stored) == 0 {
			continue
		}
		pruned := spellpick.PruneDependent(stored, s.EffectivePicks(rule.FeedsFrom), cat, rule.RestrictedGrade, rule.MinShared)
		if len(pruned) == len(stored) {
			continue
		}
		if len(pruned) == 0 {
			delete(s.Picks, rule.PickPerk)
		} else {
			s.Picks[rule.PickPerk] = pruned
		}
	}
}

// Clone returns a deep copy of the selection
func (s *Selection) Clone() *Selection {
	if s == nil {
		return nil
	}
	clone := &Selection{
		Type:         s.Type,
		Categories:   append([]string(nil), s.Categories...),
		Relationship: s.Relationship,
		PowerLevel:   s.PowerLevel,
		Size:         s.Size,
		Traits:       append([]string(nil), s.Traits...),
		Perks:        make(map[string]int, len(s.Perks)),
		Picks:        make(map[string][]string, len(s.Picks)),
		Assigned:     make(map[string]string, len(s.Assigned)),
		BPSpent:      s.BPSpent,
		CustomImage:  s.CustomImage,
	}
	for k, v := range s.Perks {
		clone.Perks[k] = v
	}
	for k, v := range s.Picks {
		clone.Picks[k] = append([]string(nil), v...)
	}
	for k, v := range s.Assigned {
		clone.Assigned[k] = v
	}
	return clone
}

func indexOf(list []string, key string) int {
	for i, v := range list {
		if v == key {
			return i
		}
	}
	return -1
}
