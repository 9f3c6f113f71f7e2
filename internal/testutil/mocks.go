package testutil

import (
	"context"
	"time"

	"github.com/Talha76/memorize-words/internal/study"

	"github.com/stretchr/testify/mock"
)

// MockWorkspaceRepository is a mock for WorkspaceRepository
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Get(ctx context.Context, owner string) (*study.Workspace, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*study.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) Save(ctx context.Context, owner string, w study.Workspace) error {
	args := m.Called(ctx, owner, w)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) Delete(ctx context.Context, owner string) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) DeleteIdle(ctx context.Context, idle time.Duration) (int64, error) {
	args := m.Called(ctx, idle)
	return args.Get(0).(int64), args.Error(1)
}
