// Package spellpick validates bounded spell/power selections against
// grade quotas, blessing quotas, caps, bans, and custom predicates. All
// transitions are pure: callers pass the current set and get back either
// the committed set or the previous set with a rejection reason.
package spellpick

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// CapMode controls how MaxTotal is enforced
type CapMode int

const (
	// SoftCap stores selections beyond MaxTotal; cost and display slice
	// to the paid count instead of rejecting the add
	SoftCap CapMode = iota

	// HardCap rejects any add that would exceed MaxTotal
	HardCap
)

// CustomValidator is the escape hatch for rules not expressible through
// the declarative fields. It returns a user-facing rejection reason, or
// "" to accept.
type CustomValidator func(selected []string, byBlessing map[string]int, byGrade map[shared.Grade]int) string

// Rules configures one pick-set validation
type Rules struct {
	// PerGradeLimit caps how many options of each grade the set may hold.
	// Absent grades are unlimited.
	PerGradeLimit map[shared.Grade]int

	// MaxBlessings caps the distinct blessing groups represented, 0 = unlimited
	MaxBlessings int

	// MaxTotal caps the set size, enforced per CapMode, 0 = unlimited
	MaxTotal int

	// Mode selects soft or hard MaxTotal enforcement
	Mode CapMode

	// BannedKeys and BannedGrades are never selectable
	BannedKeys   []string
	BannedGrades []shared.Grade

	// MandatoryKeys must be offered by the UI. Advisory only: they are
	// never auto-selected and their absence never blocks a save.
	MandatoryKeys []string

	// Exclusive makes the grades listed in PerGradeLimit share a single
	// ceiling instead of counting independently
	Exclusive bool

	// Custom runs last, after every declarative rule passed
	Custom CustomValidator
}

func (r Rules) keyBanned(key string) bool {
	for _, banned := range r.BannedKeys {
		if banned == key {
			return true
		}
	}
	return false
}

func (r Rules) gradeBanned(grade shared.Grade) bool {
	for _, banned := range r.BannedGrades {
		if banned == grade {
			return true
		}
	}
	return false
}

// MissingMandatory returns the mandatory keys absent from the set, for
// the UI to surface as advice
func MissingMandatory(selected []string, r Rules) []string {
	var missing []string
	for _, key := range r.MandatoryKeys {
		found := false
		for _, sel := range selected {
			if sel == key {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, key)
		}
	}
	return missing
}
