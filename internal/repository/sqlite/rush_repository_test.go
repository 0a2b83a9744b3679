package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/repository"
	"github.com/vytor/speakflash/internal/repository/sqlite"
	"github.com/vytor/speakflash/internal/testutil"
)

type RushRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.RushRepository
}

func (s *RushRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewRushRepository(s.db)
}

func (s *RushRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *RushRepositorySuite) game(id string, endedAt time.Time, best int) models.RushGame {
	return models.RushGame{
		GameID:          id,
		Rounds:          10,
		Correct:         7,
		BestStreak:      best,
		FinalDifficulty: 6,
		DurationSeconds: 61.5,
		StartedAt:       endedAt.Add(-time.Minute),
		EndedAt:         endedAt,
	}
}

func (s *RushRepositorySuite) TestInsertAndRecentGames() {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"g1", "g2", "g3"} {
		newID, err := s.repo.InsertGame(ctx, s.game(id, base.Add(time.Duration(i)*time.Hour), i+1))
		s.Require().NoError(err)
		s.Assert().Greater(newID, int64(0))
	}

	games, err := s.repo.RecentGames(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Assert().Equal("g3", games[0].GameID)
	s.Assert().Equal("g2", games[1].GameID)
	s.Assert().Equal(61.5, games[0].DurationSeconds)
	s.Assert().True(games[0].EndedAt.Equal(base.Add(2*time.Hour)))

	all, err := s.repo.RecentGames(ctx, 0)
	s.Require().NoError(err)
	s.Assert().Len(all, 3)
}

func (s *RushRepositorySuite) TestDuplicateGameIDRejected() {
	ctx := context.Background()
	now := time.Now().UTC()
	_, err := s.repo.InsertGame(ctx, s.game("same", now, 1))
	s.Require().NoError(err)
	_, err = s.repo.InsertGame(ctx, s.game("same", now, 1))
	s.Assert().Error(err)
}

func (s *RushRepositorySuite) TestBestStreak() {
	ctx := context.Background()
	best, err := s.repo.BestStreak(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(0, best)

	now := time.Now().UTC()
	for i, streak := range []int{3, 9, 4} {
		_, err := s.repo.InsertGame(ctx, s.game(string(rune('a'+i)), now, streak))
		s.Require().NoError(err)
	}
	best, err = s.repo.BestStreak(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(9, best)
}

func TestRushRepositorySuite(t *testing.T) {
	suite.Run(t, new(RushRepositorySuite))
}
