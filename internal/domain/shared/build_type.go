package shared

// BuildType is the kind of saved build a selection belongs to
type BuildType string

var BuildTypes = []BuildType{BuildTypeCompanion, BuildTypeWeapon, BuildTypeBeast, BuildTypeVehicle}

const (
	BuildTypeCompanion BuildType = "companion"
	BuildTypeWeapon    BuildType = "weapon"
	BuildTypeBeast     BuildType = "beast"
	BuildTypeVehicle   BuildType = "vehicle"
)

// IsValid reports whether t is one of the four known build types
func (t BuildType) IsValid() bool {
	for _, known := range BuildTypes {
		if t == known {
			return true
		}
	}
	return false
}
