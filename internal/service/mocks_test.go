package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockTodoRepository is a mock implementation of TodoRepository.
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) FindByID(ctx context.Context, id uint) (*model.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByIDWithUser(ctx context.Context, id uint) (*model.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) ListByModifiedDesc(ctx context.Context, offset, limit int) ([]model.Todo, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Todo), args.Get(1).(int64), args.Error(2)
}

// MockManagerRepository is a mock implementation of ManagerRepository.
type MockManagerRepository struct {
	mock.Mock
}

func (m *MockManagerRepository) Create(ctx context.Context, manager *model.Manager) error {
	args := m.Called(ctx, manager)
	return args.Error(0)
}

func (m *MockManagerRepository) FindByID(ctx context.Context, id uint) (*model.Manager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Manager), args.Error(1)
}

func (m *MockManagerRepository) FindByTodoIDWithUser(ctx context.Context, todoID uint) ([]model.Manager, error) {
	args := m.Called(ctx, todoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Manager), args.Error(1)
}

func (m *MockManagerRepository) Delete(ctx context.Context, manager *model.Manager) error {
	args := m.Called(ctx, manager)
	return args.Error(0)
}

// MockWeatherClient is a mock implementation of client.WeatherClient.
type MockWeatherClient struct {
	mock.Mock
}

func (m *MockWeatherClient) Today(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// stubTxManager runs the callback directly against the given repositories,
// without a real transaction.
type stubTxManager struct {
	repos repository.TxRepos
}

func (s *stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	return fn(ctx, s.repos)
}
