package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/speakflash/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) LoadAll(ctx context.Context) (map[int64]models.CardProgress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.CardProgress), args.Error(1)
}

func (m *MockProgressRepository) UpsertBatch(ctx context.Context, cards []models.CardProgress) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockProgressRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
