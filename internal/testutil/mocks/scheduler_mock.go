package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/speakflash/internal/worker"
)

// MockScheduler is a mock implementation of jobs.Scheduler
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) TrySubmit(job worker.Job) error {
	args := m.Called(job)
	return args.Error(0)
}
