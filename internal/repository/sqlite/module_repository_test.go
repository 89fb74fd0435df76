package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/reviewflash/internal/models"
	"github.com/vytor/reviewflash/internal/repository"
	"github.com/vytor/reviewflash/internal/repository/sqlite"
	"github.com/vytor/reviewflash/internal/testutil"
)

type ModuleRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ModuleRepository
}

func (s *ModuleRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewModuleRepository(s.db)
}

func (s *ModuleRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func sampleModule() models.Module {
	return models.Module{
		ID:       "m1",
		CourseID: "c1",
		Title:    "Recursion",
		ContentBlocks: []models.ContentBlock{
			{ID: "b1", Type: models.BlockTypeText, Text: "A function calling itself."},
			{ID: "b2", Type: models.BlockTypeInteraction, ConceptKey: "base_case", Interaction: models.MCQInteraction{
				Prompt:  "What stops recursion?",
				Options: []models.MCQOption{{Text: "A base case", IsCorrect: true}, {Text: "A loop"}},
			}},
		},
		AIGeneratedContent: models.AIGeneratedContent{
			KeyPoints: []string{"Every recursion needs a base case"},
		},
		UpdatedAt: baseTime,
	}
}

func (s *ModuleRepositorySuite) TestUpsertAndGet() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, sampleModule()))

	got, err := s.repo.Get(ctx, "m1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("c1", got.CourseID)
	s.Assert().Equal("Recursion", got.Title)
	s.Require().Len(got.ContentBlocks, 2)
	mcq, ok := got.ContentBlocks[1].Interaction.(models.MCQInteraction)
	s.Require().True(ok)
	s.Assert().True(mcq.Options[0].IsCorrect)
	s.Assert().Equal([]string{"Every recursion needs a base case"}, got.AIGeneratedContent.KeyPoints)
}

func (s *ModuleRepositorySuite) TestUpsertReplacesContent() {
	ctx := context.Background()
	m := sampleModule()
	s.Require().NoError(s.repo.Upsert(ctx, m))

	m.Title = "Recursion, revised"
	m.ContentBlocks = nil
	s.Require().NoError(s.repo.Upsert(ctx, m))

	got, err := s.repo.Get(ctx, "m1")
	s.Require().NoError(err)
	s.Assert().Equal("Recursion, revised", got.Title)
	s.Assert().Empty(got.ContentBlocks)
}

func (s *ModuleRepositorySuite) TestGetMissing() {
	got, err := s.repo.Get(context.Background(), "nope")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ModuleRepositorySuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, sampleModule()))

	deleted, err := s.repo.Delete(ctx, "m1")
	s.Require().NoError(err)
	s.Assert().True(deleted)

	deleted, err = s.repo.Delete(ctx, "m1")
	s.Require().NoError(err)
	s.Assert().False(deleted)
}

func TestModuleRepositorySuite(t *testing.T) {
	suite.Run(t, new(ModuleRepositorySuite))
}
