package shared

// Grade is the rarity/power tier of a catalog option, used for quota rules
type Grade string

var Grades = []Grade{GradeKaarn, GradePurth, GradeXuth, GradeSinthru, GradeLekolu, GradeJuathas}

const (
	GradeNone    Grade = ""
	GradeKaarn   Grade = "kaarn"
	GradePurth   Grade = "purth"
	GradeXuth    Grade = "xuth"
	GradeSinthru Grade = "sinthru"
	GradeLekolu  Grade = "lekolu"
	GradeJuathas Grade = "juathas"
)

// IsValid reports whether g is one of the known grades
func (g Grade) IsValid() bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}
