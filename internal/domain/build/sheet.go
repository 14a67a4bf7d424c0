package build

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// Sheet is the character-level state: the named builds the character has
// taken on, per type. A single sheet record exists per store; the usage
// audit scans it alongside dependent builds.
type Sheet struct {
	Companions []string `json:"companions,omitempty"`
	Weapons    []string `json:"weapons,omitempty"`
	Beasts     []string `json:"beasts,omitempty"`
	Vehicles   []string `json:"vehicles,omitempty"`
}

// NewSheet creates an empty sheet
func NewSheet() *Sheet {
	return &Sheet{}
}

// NamesFor returns the sheet's build names of the given type
func (s *Sheet) NamesFor(t shared.BuildType) []string {
	if s == nil {
		return nil
	}
	switch t {
	case shared.BuildTypeCompanion:
		return s.Companions
	case shared.BuildTypeWeapon:
		return s.Weapons
	case shared.BuildTypeBeast:
		return s.Beasts
	case shared.BuildTypeVehicle:
		return s.Vehicles
	}
	return nil
}

// Toggle adds or removes a build name of the given type. Reports whether
// the name is now present.
func (s *Sheet) Toggle(t shared.BuildType, name string) bool {
	if name == "" {
		return false
	}
	names := s.NamesFor(t)
	if idx := indexOf(names, name); idx >= 0 {
		s.set(t, append(names[:idx], names[idx+1:]...))
		return false
	}
	s.set(t, append(names, name))
	return true
}

// Rename rewrites every occurrence of oldName of the given type. Reports
// how many entries changed.
func (s *Sheet) Rename(t shared.BuildType, oldName, newName string) int {
	names := s.NamesFor(t)
	changed := 0
	for i, name := range names {
		if name == oldName {
			names[i] = newName
			changed++
		}
	}
	return changed
}

// Clone returns a deep copy of the sheet
func (s *Sheet) Clone() *Sheet {
	if s == nil {
		return nil
	}
	return &Sheet{
		Companions: append([]string(nil), s.Companions...),
		Weapons:    append([]string(nil), s.Weapons...),
		Beasts:     append([]string(nil), s.Beasts...),
		Vehicles:   append([]string(nil), s.Vehicles...),
	}
}

func (s *Sheet) set(t shared.BuildType, names []string) {
	switch t {
	case shared.BuildTypeCompanion:
		s.Companions = names
	case shared.BuildTypeWeapon:
		s.Weapons = names
	case shared.BuildTypeBeast:
		s.Beasts = names
	case shared.BuildTypeVehicle:
		s.Vehicles = names
	}
}
