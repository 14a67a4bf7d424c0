package spellpick

import (
	"fmt"

	"github.com/theapple1234/magecraft-forge/internal/domain/catalog"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// Toggle adds key to the set if absent, removes it if present, then
// re-validates the whole resulting set. On rejection the previous set is
// returned unchanged together with the reason; on success the new set is
// returned with an empty reason.
func Toggle(current []string, key string, cat *catalog.Catalog, r Rules) ([]string, string) {
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, sel := range current {
		if sel == key {
			removed = true
			continue
		}
		next = append(next, sel)
	}
	if !removed {
		next = append(next, key)
	}

	if reason := Validate(next, cat, r); reason != "" {
		return current, reason
	}
	return next, ""
}

// Validate checks a candidate set against every rule and returns the
// first user-facing rejection reason, or "" when the set is acceptable.
// Catalog misses are tolerated: unknown keys carry no grade or blessing.
func Validate(candidate []string, cat *catalog.Catalog, r Rules) string {
	byGrade := make(map[shared.Grade]int)
	byBlessing := make(map[string]int)

	for _, key := range candidate {
		if r.keyBanned(key) {
			return fmt.Sprintf("%s cannot be selected here", titleOrKey(cat, key))
		}
		grade := cat.GradeOf(key)
		if grade != shared.GradeNone && r.gradeBanned(grade) {
			return fmt.Sprintf("%s-grade spells cannot be selected here", grade)
		}
		if grade != shared.GradeNone {
			byGrade[grade]++
		}
		if blessing := cat.BlessingOf(key); blessing != "" {
			byBlessing[blessing]++
		}
	}

	if r.Exclusive {
		pooled := 0
		ceiling := 0
		for grade, limit := range r.PerGradeLimit {
			pooled += byGrade[grade]
			if limit > ceiling {
				ceiling = limit
			}
		}
		if ceiling > 0 && pooled > ceiling {
			return fmt.Sprintf("at most %d spells of those grades may be selected", ceiling)
		}
	} else {
		for grade, limit := range r.PerGradeLimit {
			if limit > 0 && byGrade[grade] > limit {
				return fmt.Sprintf("at most %d %s-grade spells may be selected", limit, grade)
			}
		}
	}

	if r.MaxBlessings > 0 && len(byBlessing) > r.MaxBlessings {
		return fmt.Sprintf("spells may span at most %d blessings", r.MaxBlessings)
	}

	if r.Mode == HardCap && r.MaxTotal > 0 && len(candidate) > r.MaxTotal {
		return fmt.Sprintf("at most %d spells may be selected", r.MaxTotal)
	}

	if r.Custom != nil {
		if reason := r.Custom(candidate, byBlessing, byGrade); reason != "" {
			return reason
		}
	}

	return ""
}

func titleOrKey(cat *catalog.Catalog, key string) string {
	if opt, ok := cat.Get(key); ok && opt.Title != "" {
		return opt.Title
	}
	return key
}
