package spellpick_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	"github.com/theapple1234/magecraft-forge/internal/domain/spellpick"
	"github.com/theapple1234/magecraft-forge/internal/testutils"
)

func TestToggle_AddAndRemoveRoundTrip(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{}

	set, reason := spellpick.Toggle(nil, "ember_bolt", cat, rules)
	require.Empty(t, reason)
	assert.Equal(t, []string{"ember_bolt"}, set)

	set, reason = spellpick.Toggle(set, "ember_bolt", cat, rules)
	require.Empty(t, reason)
	assert.Empty(t, set)
}

func TestToggle_BannedKeyAlwaysRejected(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{
		BannedKeys: []string{"sun_lance"},
	}

	// No other limit is even close to being hit
	set, reason := spellpick.Toggle([]string{"ember_bolt"}, "sun_lance", cat, rules)
	assert.NotEmpty(t, reason)
	assert.Equal(t, []string{"ember_bolt"}, set, "rejection must return the previous state")
}

func TestToggle_BannedGradeRejected(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{
		BannedGrades: []shared.Grade{shared.GradeJuathas},
	}

	set, reason := spellpick.Toggle(nil, "umbral_pact", cat, rules)
	assert.NotEmpty(t, reason)
	assert.Empty(t, set)
}

func TestToggle_PerGradeLimit(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{
		PerGradeLimit: map[shared.Grade]int{shared.GradeKaarn: 2},
	}

	set := []string{"ember_bolt", "ash_veil"}

	// A third kaarn spell is rejected
	result, reason := spellpick.Toggle(set, "cinder_step", cat, rules)
	assert.NotEmpty(t, reason)
	assert.Equal(t, set, result)

	// A non-kaarn spell is unaffected
	result, reason = spellpick.Toggle(set, "tide_call", cat, rules)
	require.Empty(t, reason)
	assert.Len(t, result, 3)
}

func TestToggle_MaxBlessings(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{MaxBlessings: 1}

	set, reason := spellpick.Toggle([]string{"ember_bolt"}, "sun_lance", cat, rules)
	require.Empty(t, reason, "same blessing stays within the cap")
	assert.Len(t, set, 2)

	_, reason = spellpick.Toggle(set, "tide_call", cat, rules)
	assert.NotEmpty(t, reason, "second blessing exceeds the cap")
}

func TestToggle_HardCapRejectsOverflow(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{MaxTotal: 2, Mode: spellpick.HardCap}

	set := []string{"ember_bolt", "tide_call"}
	result, reason := spellpick.Toggle(set, "ash_veil", cat, rules)
	assert.NotEmpty(t, reason)
	assert.Equal(t, set, result)
}

func TestToggle_SoftCapAllowsOverflowStorage(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{MaxTotal: 2, Mode: spellpick.SoftCap}

	set := []string{"ember_bolt", "tide_call"}
	result, reason := spellpick.Toggle(set, "ash_veil", cat, rules)
	require.Empty(t, reason, "soft cap keeps overflow stored; slicing happens at cost/display")
	assert.Len(t, result, 3)
}

func TestValidate_ExclusiveSharedCeiling(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{
		Exclusive: true,
		PerGradeLimit: map[shared.Grade]int{
			shared.GradeKaarn: 2,
			shared.GradePurth: 2,
		},
	}

	// Two across both grades is fine
	assert.Empty(t, spellpick.Validate([]string{"ember_bolt", "tide_call"}, cat, rules))

	// Three across both grades exceeds the shared ceiling even though
	// neither grade alone exceeds its own limit
	assert.NotEmpty(t, spellpick.Validate([]string{"ember_bolt", "ash_veil", "tide_call"}, cat, rules))
}

func TestValidate_CustomValidator(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{
		Custom: func(selected []string, byBlessing map[string]int, byGrade map[shared.Grade]int) string {
			// A xuth spell requires 5 total spells of its blessing
			if byGrade[shared.GradeXuth] > 0 && byBlessing["flame"] < 5 {
				return fmt.Sprintf("a xuth-grade spell needs 5 flame spells, have %d", byBlessing["flame"])
			}
			return ""
		},
	}

	_, reason := spellpick.Toggle([]string{"ember_bolt", "ash_veil"}, "sun_lance", cat, rules)
	assert.NotEmpty(t, reason)
}

func TestValidate_UnknownKeysAreTolerated(t *testing.T) {
	cat := testutils.CreateTestCatalog()
	rules := spellpick.Rules{
		PerGradeLimit: map[shared.Grade]int{shared.GradeKaarn: 1},
	}

	// Keys missing from the catalog carry no grade or blessing and never error
	assert.Empty(t, spellpick.Validate([]string{"no_such_spell", "ember_bolt"}, cat, rules))
}

func TestMissingMandatory(t *testing.T) {
	rules := spellpick.Rules{MandatoryKeys: []string{"ember_bolt", "tide_call"}}

	missing := spellpick.MissingMandatory([]string{"tide_call"}, rules)
	assert.Equal(t, []string{"ember_bolt"}, missing)

	// Advisory only: validation never fails on their absence
	cat := testutils.CreateTestCatalog()
	assert.Empty(t, spellpick.Validate([]string{"tide_call"}, cat, rules))
}
