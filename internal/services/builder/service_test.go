package builder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/theapple1234/magecraft-forge/internal/domain/build"
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	forgeerr "github.com/theapple1234/magecraft-forge/internal/errors"
	"github.com/theapple1234/magecraft-forge/internal/repositories/builds"
	"github.com/theapple1234/magecraft-forge/internal/services/builder"
	"github.com/theapple1234/magecraft-forge/internal/testutils"
)

type serviceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *builds.InMemoryRepository
	service builder.Service
}

func (s *serviceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = builds.NewInMemoryRepository()

	svc, err := builder.NewService(&builder.ServiceConfig{Repository: s.repo})
	s.Require().NoError(err)
	s.service = svc
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(serviceTestSuite))
}

// saveCompanionWith saves a companion that references beastName through
// its inhuman form slot
func (s *serviceTestSuite) saveCompanionWith(name, beastName string) *build.Build {
	sel := testutils.CreateTestSelection(shared.BuildTypeCompanion)
	sel.SetPerkCount(build.PerkInhumanForm, 1)
	s.Require().True(sel.SetAssigned(build.FieldInhumanForm, beastName))

	saved, err := s.service.SaveBuild(s.ctx, shared.BuildTypeCompanion, name, sel)
	s.Require().NoError(err)
	return saved
}

func (s *serviceTestSuite) TestSaveBuild_NewBuildStartsAtVersionOne() {
	sel := testutils.CreateTestSelection(shared.BuildTypeWeapon)

	saved, err := s.service.SaveBuild(s.ctx, shared.BuildTypeWeapon, "Gram", sel)
	s.Require().NoError(err)
	s.Equal(1, saved.Version)
}

func (s *serviceTestSuite) TestSaveBuild_OverwriteBumpsVersion() {
	sel := testutils.CreateTestSelection(shared.BuildTypeWeapon)

	_, err := s.service.SaveBuild(s.ctx, shared.BuildTypeWeapon, "Gram", sel)
	s.Require().NoError(err)

	sel.ToggleCategory("bow")
	saved, err := s.service.SaveBuild(s.ctx, shared.BuildTypeWeapon, "Gram", sel)
	s.Require().NoError(err)
	s.Equal(2, saved.Version)

	got, err := s.service.GetBuild(s.ctx, shared.BuildTypeWeapon, "Gram")
	s.Require().NoError(err)
	s.Equal(2, got.Version)
}

func (s *serviceTestSuite) TestSaveBuild_RejectsBadInput() {
	sel := testutils.CreateTestSelection(shared.BuildTypeWeapon)

	_, err := s.service.SaveBuild(s.ctx, shared.BuildType("dragon"), "Gram", sel)
	s.True(forgeerr.IsInvalidArgument(err))

	_, err = s.service.SaveBuild(s.ctx, shared.BuildTypeWeapon, "", sel)
	s.True(forgeerr.IsInvalidArgument(err))

	_, err = s.service.SaveBuild(s.ctx, shared.BuildTypeWeapon, "Gram", nil)
	s.True(forgeerr.IsInvalidArgument(err))
}

func (s *serviceTestSuite) TestSaveBuild_DoesNotAliasCallerSelection() {
	sel := testutils.CreateTestSelection(shared.BuildTypeWeapon)

	_, err := s.service.SaveBuild(s.ctx, shared.BuildTypeWeapon, "Gram", sel)
	s.Require().NoError(err)

	// Toggling an existing category off always mutates the caller's copy
	sel.ToggleCategory("blade")

	got, err := s.service.GetBuild(s.ctx, shared.BuildTypeWeapon, "Gram")
	s.Require().NoError(err)
	s.Equal([]string{"blade"}, got.Selection.Categories)
}

func (s *serviceTestSuite) TestRenameBuild_MovesTheBuild() {
	_, err := s.service.SaveBuild(s.ctx, shared.BuildTypeBeast, "Fenrir",
		testutils.CreateTestSelection(shared.BuildTypeBeast))
	s.Require().NoError(err)

	s.Require().NoError(s.service.RenameBuild(s.ctx, shared.BuildTypeBeast, "Fenrir", "Fenrir II"))

	_, err = s.service.GetBuild(s.ctx, shared.BuildTypeBeast, "Fenrir")
	s.True(forgeerr.IsNotFound(err))

	got, err := s.service.GetBuild(s.ctx, shared.BuildTypeBeast, "Fenrir II")
	s.Require().NoError(err)
	s.Equal("Fenrir II", got.Name)
}

func (s *serviceTestSuite) TestRenameBuild_CascadesToReferencingBuilds() {
	_, err := s.service.SaveBuild(s.ctx, shared.BuildTypeBeast, "Fenrir",
		testutils.CreateTestSelection(shared.BuildTypeBeast))
	s.Require().NoError(err)
	aria := s.saveCompanionWith("Aria", "Fenrir")

	// A companion pointing elsewhere must be left alone
	s.saveCompanionWith("Bryn", "Garm")

	s.Require().NoError(s.service.RenameBuild(s.ctx, shared.BuildTypeBeast, "Fenrir", "Fenrir II"))

	got, err := s.service.GetBuild(s.ctx, shared.BuildTypeCompanion, "Aria")
	s.Require().NoError(err)
	s.Equal("Fenrir II", got.Selection.AssignedName(build.FieldInhumanForm))
	s.Equal(aria.Version+1, got.Version)

	other, err := s.service.GetBuild(s.ctx, shared.BuildTypeCompanion, "Bryn")
	s.Require().NoError(err)
	s.Equal("Garm", other.Selection.AssignedName(build.FieldInhumanForm))
}

func (s *serviceTestSuite) TestRenameBuild_CascadesToSheet() {
	_, err := s.service.SaveBuild(s.ctx, shared.BuildTypeWeapon, "Gram",
		testutils.CreateTestSelection(shared.BuildTypeWeapon))
	s.Require().NoError(err)

	sheet := build.NewSheet()
	sheet.Toggle(shared.BuildTypeWeapon, "Gram")
	s.Require().NoError(s.repo.SaveSheet(s.ctx, sheet))

	s.Require().NoError(s.service.RenameBuild(s.ctx, shared.BuildTypeWeapon, "Gram", "Gram Reforged"))

	got, err := s.repo.GetSheet(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Gram Reforged"}, got.Weapons)
}

func (s *serviceTestSuite) TestRenameBuild_RejectsBadNames() {
	err := s.service.RenameBuild(s.ctx, shared.BuildTypeBeast, "Fenrir", "")
	s.True(forgeerr.IsInvalidArgument(err))

	err = s.service.RenameBuild(s.ctx, shared.BuildTypeBeast, "Fenrir", "Fenrir")
	s.True(forgeerr.IsInvalidArgument(err))

	err = s.service.RenameBuild(s.ctx, shared.BuildTypeBeast, "Fenrir", "Fenrir II")
	s.True(forgeerr.IsNotFound(err))
}

func (s *serviceTestSuite) TestDeleteBuild_LeavesReferencesDangling() {
	_, err := s.service.SaveBuild(s.ctx, shared.BuildTypeBeast, "Fenrir",
		testutils.CreateTestSelection(shared.BuildTypeBeast))
	s.Require().NoError(err)
	s.saveCompanionWith("Aria", "Fenrir")

	s.Require().NoError(s.service.DeleteBuild(s.ctx, shared.BuildTypeBeast, "Fenrir"))

	// The reference is intentionally left in place for the caller to warn on
	got, err := s.service.GetBuild(s.ctx, shared.BuildTypeCompanion, "Aria")
	s.Require().NoError(err)
	s.Equal("Fenrir", got.Selection.AssignedName(build.FieldInhumanForm))
}

func (s *serviceTestSuite) TestFindUsages_EmptyWhenUnreferenced() {
	_, err := s.service.SaveBuild(s.ctx, shared.BuildTypeBeast, "Fenrir",
		testutils.CreateTestSelection(shared.BuildTypeBeast))
	s.Require().NoError(err)

	usages, err := s.service.FindUsages(s.ctx, shared.BuildTypeBeast, "Fenrir")
	s.Require().NoError(err)
	s.Empty(usages)
}

func (s *serviceTestSuite) TestFindUsages_ReportsBuildAndSheetReferences() {
	_, err := s.service.SaveBuild(s.ctx, shared.BuildTypeBeast, "Fenrir",
		testutils.CreateTestSelection(shared.BuildTypeBeast))
	s.Require().NoError(err)
	s.saveCompanionWith("Aria", "Fenrir")

	sheet := build.NewSheet()
	sheet.Toggle(shared.BuildTypeBeast, "Fenrir")
	s.Require().NoError(s.repo.SaveSheet(s.ctx, sheet))

	usages, err := s.service.FindUsages(s.ctx, shared.BuildTypeBeast, "Fenrir")
	s.Require().NoError(err)
	s.Require().Len(usages, 2)

	kinds := map[string]bool{}
	for _, u := range usages {
		kinds[u.Kind] = true
		if u.Kind == "build" {
			s.Equal(shared.BuildTypeCompanion, u.DependentType)
			s.Equal("Aria", u.DependentName)
			s.Equal(build.FieldInhumanForm, u.Field)
		}
	}
	s.True(kinds["sheet"])
	s.True(kinds["build"])
}

func (s *serviceTestSuite) TestFindUsages_RequiresName() {
	_, err := s.service.FindUsages(s.ctx, shared.BuildTypeBeast, "")
	s.True(forgeerr.IsInvalidArgument(err))
}
