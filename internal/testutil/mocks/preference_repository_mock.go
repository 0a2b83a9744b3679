package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/speakflash/internal/models"
)

// MockPreferenceRepository is a mock implementation of repository.PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) CategoryFilter(ctx context.Context) (models.CategoryFilter, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CategoryFilter), args.Error(1)
}

func (m *MockPreferenceRepository) SetCategoryFilter(ctx context.Context, filter models.CategoryFilter) error {
	args := m.Called(ctx, filter)
	return args.Error(0)
}
