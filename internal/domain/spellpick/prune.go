package spellpick

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/catalog"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// PruneDependent drops restricted-grade entries whose support went away.
// An entry of the restricted grade stays valid only while the feeding set
// holds at least minShared options sharing its blessing. Entries of other
// grades always survive. Order is preserved.
func PruneDependent(selected, feeder []string, cat *catalog.Catalog, restricted shared.Grade, minShared int) []string {
	if len(selected) == 0 {
		return selected
	}

	feedByBlessing := make(map[string]int)
	for _, key := range feeder {
		if blessing := cat.BlessingOf(key); blessing != "" {
			feedByBlessing[blessing]++
		}
	}

	kept := make([]string, 0, len(selected))
	for _, key := range selected {
		if cat.GradeOf(key) != restricted {
			kept = append(kept, key)
			continue
		}
		blessing := cat.BlessingOf(key)
		if blessing != "" && feedByBlessing[blessing] >= minShared {
			kept = append(kept, key)
		}
	}
	return kept
}
