package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/speakflash/internal/models"
)

// MockRushRepository is a mock implementation of repository.RushRepository
type MockRushRepository struct {
	mock.Mock
}

func (m *MockRushRepository) InsertGame(ctx context.Context, game models.RushGame) (int64, error) {
	args := m.Called(ctx, game)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRushRepository) RecentGames(ctx context.Context, limit int) ([]models.RushGame, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RushGame), args.Error(1)
}

func (m *MockRushRepository) BestStreak(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
