package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/speakflash/internal/catalog"
	"github.com/vytor/speakflash/internal/errors"
	"github.com/vytor/speakflash/internal/flashcard"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/services"
	"github.com/vytor/speakflash/internal/session"
	"github.com/vytor/speakflash/internal/testutil/mocks"
)

func newRushFixture(t *testing.T) (services.RushService, *mocks.MockRushRepository, *time.Time) {
	var items []models.LearnableItem
	for i, d := range []string{"easy", "medium", "hard", "medium", "easy", "hard"} {
		items = append(items, models.LearnableItem{
			ID: int64(i + 1), PromptText: fmt.Sprintf("p%d", i+1), TargetText: "t",
			Category: "talk", Difficulty: d,
		})
	}
	c, err := catalog.New(items)
	require.NoError(t, err)

	ledger := flashcard.NewLedger()
	learner := services.NewLearnerService(c, ledger, session.NewPlanner(c, ledger), nil, nil)
	repo := new(mocks.MockRushRepository)
	clock := time.Date(2024, 4, 10, 18, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	return services.NewRushService(c, repo, learner, now), repo, &clock
}

func TestRushService_GameLifecycle(t *testing.T) {
	svc, repo, clock := newRushFixture(t)

	status, round, err := svc.StartGame(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, status.State.Difficulty)
	assert.Equal(t, 6, status.TimerSeconds)
	assert.Equal(t, 1, round.Number)
	assert.Equal(t, "medium", round.Item.Difficulty)

	_, _, err = svc.StartGame(ctx)
	requireCode(t, err, errors.ErrCodeConflict)

	for i := 0; i < 3; i++ {
		status, round, err = svc.RecordRoundOutcome(ctx, models.Correct)
		require.NoError(t, err)
	}
	assert.Equal(t, 6, status.State.Difficulty)
	assert.Equal(t, 5, status.TimerSeconds)
	assert.Equal(t, 4, round.Number)

	// A timed-out round is an incorrect one.
	timeout, ok := models.ParseOutcome("timeout")
	require.True(t, ok)
	status, _, err = svc.RecordRoundOutcome(ctx, timeout)
	require.NoError(t, err)
	assert.Equal(t, 0, status.State.Streak)
	assert.Equal(t, 3, status.State.BestStreak)

	*clock = clock.Add(90 * time.Second)
	repo.On("InsertGame", mock.Anything, mock.MatchedBy(func(g models.RushGame) bool {
		return g.Rounds == 4 && g.Correct == 3 && g.BestStreak == 3 &&
			g.FinalDifficulty == 6 && g.DurationSeconds == 90 && g.GameID == status.GameID
	})).Return(int64(7), nil).Once()

	game, err := svc.EndGame(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), game.ID)
	repo.AssertExpectations(t)

	_, err = svc.Status(ctx)
	requireCode(t, err, errors.ErrCodeNotFound)
	_, _, err = svc.RecordRoundOutcome(ctx, models.Correct)
	requireCode(t, err, errors.ErrCodeConflict)
}

func TestRushService_RoundsPreferUnseenItemsOfMatchingDifficulty(t *testing.T) {
	svc, _, _ := newRushFixture(t)

	_, round, err := svc.StartGame(ctx)
	require.NoError(t, err)
	seen := map[int64]bool{round.Item.ID: true}
	for i := 0; i < 5; i++ {
		_, round, err = svc.RecordRoundOutcome(ctx, models.Incorrect)
		require.NoError(t, err)
		assert.False(t, seen[round.Item.ID], "item %d repeated before the catalog was exhausted", round.Item.ID)
		seen[round.Item.ID] = true
	}
	// All six shown; the next round starts over.
	_, round, err = svc.RecordRoundOutcome(ctx, models.Incorrect)
	require.NoError(t, err)
	assert.NotZero(t, round.Item.ID)
}

func TestRushService_EndGameStoreFailure(t *testing.T) {
	svc, repo, _ := newRushFixture(t)
	_, _, err := svc.StartGame(ctx)
	require.NoError(t, err)

	repo.On("InsertGame", mock.Anything, mock.Anything).Return(int64(0), assert.AnError).Once()
	_, err = svc.EndGame(ctx)
	requireCode(t, err, errors.ErrCodeInternal)

	_, err = svc.EndGame(ctx)
	requireCode(t, err, errors.ErrCodeConflict)
}

func TestRushService_History(t *testing.T) {
	svc, repo, _ := newRushFixture(t)

	repo.On("RecentGames", mock.Anything, services.DefaultHistoryLimit).Return(nil, nil).Once()
	games, err := svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, games)
	assert.NotNil(t, games)

	_, err = svc.History(ctx, -3)
	requireCode(t, err, errors.ErrCodeValidation)
	repo.AssertExpectations(t)
}
