package builds_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
	forgeerr "github.com/theapple1234/magecraft-forge/internal/errors"
	"github.com/theapple1234/magecraft-forge/internal/repositories/builds"
	"github.com/theapple1234/magecraft-forge/internal/testutils"
)

type InMemoryRepoTestSuite struct {
	suite.Suite
	repo *builds.InMemoryRepository
	ctx  context.Context
}

func (s *InMemoryRepoTestSuite) SetupTest() {
	s.repo = builds.NewInMemoryRepository()
	s.ctx = context.Background()
}

func TestInMemoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryRepoTestSuite))
}

func (s *InMemoryRepoTestSuite) TestSaveAndGet() {
	b := testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")

	s.Require().NoError(s.repo.Save(s.ctx, b))

	got, err := s.repo.Get(s.ctx, shared.BuildTypeBeast, "Fenrir")
	s.Require().NoError(err)
	s.Equal(b.Selection, got.Selection)
	s.Equal(1, got.Version)
}

func (s *InMemoryRepoTestSuite) TestSave_OverwritesWithoutWarning() {
	b := testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")
	s.Require().NoError(s.repo.Save(s.ctx, b))

	updated := b.Clone()
	updated.Selection.SetBPSpent(5)
	updated.Version = 2
	s.Require().NoError(s.repo.Save(s.ctx, updated))

	got, err := s.repo.Get(s.ctx, shared.BuildTypeBeast, "Fenrir")
	s.Require().NoError(err)
	s.Equal(5, got.Selection.BPSpent)
	s.Equal(2, got.Version)
}

func (s *InMemoryRepoTestSuite) TestGet_ReturnsCopy() {
	b := testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")
	s.Require().NoError(s.repo.Save(s.ctx, b))

	got, err := s.repo.Get(s.ctx, shared.BuildTypeBeast, "Fenrir")
	s.Require().NoError(err)
	got.Selection.SetBPSpent(99)

	again, err := s.repo.Get(s.ctx, shared.BuildTypeBeast, "Fenrir")
	s.Require().NoError(err)
	s.Equal(0, again.Selection.BPSpent, "stored state must not share memory with callers")
}

func (s *InMemoryRepoTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, shared.BuildTypeBeast, "Nobody")
	s.Require().Error(err)
	s.True(forgeerr.IsNotFound(err))
}

func (s *InMemoryRepoTestSuite) TestListByType_OrderedByName() {
	s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestBuild(shared.BuildTypeBeast, "Skoll")))
	s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")))
	s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestBuild(shared.BuildTypeWeapon, "Gram")))

	results, err := s.repo.ListByType(s.ctx, shared.BuildTypeBeast)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("Fenrir", results[0].Name)
	s.Equal("Skoll", results[1].Name)
}

func (s *InMemoryRepoTestSuite) TestListAll() {
	s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")))
	s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestBuild(shared.BuildTypeWeapon, "Gram")))

	results, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(results, 2)
}

func (s *InMemoryRepoTestSuite) TestDelete() {
	s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestBuild(shared.BuildTypeBeast, "Fenrir")))

	s.Require().NoError(s.repo.Delete(s.ctx, shared.BuildTypeBeast, "Fenrir"))

	_, err := s.repo.Get(s.ctx, shared.BuildTypeBeast, "Fenrir")
	s.True(forgeerr.IsNotFound(err))

	err = s.repo.Delete(s.ctx, shared.BuildTypeBeast, "Fenrir")
	s.True(forgeerr.IsNotFound(err))
}

func (s *InMemoryRepoTestSuite) TestSheetRoundTrip() {
	sheet, err := s.repo.GetSheet(s.ctx)
	s.Require().NoError(err)
	s.Empty(sheet.Companions)

	sheet.Toggle(shared.BuildTypeCompanion, "Aria")
	s.Require().NoError(s.repo.SaveSheet(s.ctx, sheet))

	got, err := s.repo.GetSheet(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Aria"}, got.Companions)
}
