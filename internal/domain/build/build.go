package build

import (
	"fmt"

	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// Build is a named, saved selection. Builds are only mutated through
// explicit saves; Version is a forward-compat counter bumped per save,
// not used for conflict detection.
type Build struct {
	Type      shared.BuildType
	Name      string
	Selection *Selection
	Version   int
}

// ID returns the storage key identity "<type>:<name>"
func (b *Build) ID() string {
	return fmt.Sprintf("%s:%s", b.Type, b.Name)
}

// Clone returns a deep copy of the build
func (b *Build) Clone() *Build {
	if b == nil {
		return nil
	}
	return &Build{
		Type:      b.Type,
		Name:      b.Name,
		Selection: b.Selection.Clone(),
		Version:   b.Version,
	}
}
