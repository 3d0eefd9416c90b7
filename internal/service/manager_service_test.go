package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

func newManagerService(userRepo *MockUserRepository, todoRepo *MockTodoRepository, managerRepo *MockManagerRepository) ManagerService {
	tx := &stubTxManager{repos: repository.TxRepos{
		Users:    userRepo,
		Todos:    todoRepo,
		Managers: managerRepo,
	}}
	return NewManagerService(todoRepo, managerRepo, tx)
}

func TestManagerService_Assign(t *testing.T) {
	owner := auth.AuthUser{ID: 1, Email: "owner@example.com", Role: model.RoleUser}
	stranger := auth.AuthUser{ID: 2, Email: "stranger@example.com", Role: model.RoleUser}
	todo := &model.Todo{ID: 10, Title: "title", UserID: owner.ID}

	tests := []struct {
		name          string
		actor         auth.AuthUser
		todoID        uint
		managerUserID uint
		setupMock     func(*MockUserRepository, *MockTodoRepository, *MockManagerRepository)
		wantReason    string
	}{
		{
			name:          "successful assignment",
			actor:         owner,
			todoID:        10,
			managerUserID: 3,
			setupMock: func(users *MockUserRepository, todos *MockTodoRepository, managers *MockManagerRepository) {
				todos.On("FindByID", mock.Anything, uint(10)).Return(todo, nil)
				users.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Email: "delegate@example.com"}, nil)
				managers.On("Create", mock.Anything, mock.AnythingOfType("*model.Manager")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.Manager).ID = 100
					}).Return(nil)
			},
		},
		{
			name:          "todo not found",
			actor:         owner,
			todoID:        99,
			managerUserID: 3,
			setupMock: func(users *MockUserRepository, todos *MockTodoRepository, managers *MockManagerRepository) {
				todos.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantReason: "99",
		},
		{
			name:          "non-owner cannot assign",
			actor:         stranger,
			todoID:        10,
			managerUserID: 3,
			setupMock: func(users *MockUserRepository, todos *MockTodoRepository, managers *MockManagerRepository) {
				todos.On("FindByID", mock.Anything, uint(10)).Return(todo, nil)
			},
			wantReason: "owner",
		},
		{
			name:          "delegate not found",
			actor:         owner,
			todoID:        10,
			managerUserID: 42,
			setupMock: func(users *MockUserRepository, todos *MockTodoRepository, managers *MockManagerRepository) {
				todos.On("FindByID", mock.Anything, uint(10)).Return(todo, nil)
				users.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantReason: "42",
		},
		{
			name:          "owner cannot assign themselves",
			actor:         owner,
			todoID:        10,
			managerUserID: owner.ID,
			setupMock: func(users *MockUserRepository, todos *MockTodoRepository, managers *MockManagerRepository) {
				todos.On("FindByID", mock.Anything, uint(10)).Return(todo, nil)
				users.On("FindByID", mock.Anything, owner.ID).Return(&model.User{ID: owner.ID, Email: owner.Email}, nil)
			},
			wantReason: "own manager",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			todos := new(MockTodoRepository)
			managers := new(MockManagerRepository)
			tt.setupMock(users, todos, managers)

			manager, err := newManagerService(users, todos, managers).
				Assign(context.Background(), tt.actor, tt.todoID, tt.managerUserID)

			if tt.wantReason != "" {
				assert.Error(t, err)
				assert.True(t, apperrors.IsInvalidRequest(err))
				assert.Contains(t, err.Error(), tt.wantReason)
				assert.Nil(t, manager)
				managers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(100), manager.ID)
				assert.Equal(t, uint(3), manager.UserID)
				assert.Equal(t, uint(10), manager.TodoID)
				assert.Equal(t, "delegate@example.com", manager.User.Email)
			}

			users.AssertExpectations(t)
			todos.AssertExpectations(t)
			managers.AssertExpectations(t)
		})
	}
}

func TestManagerService_List(t *testing.T) {
	t.Run("todo not found", func(t *testing.T) {
		todos := new(MockTodoRepository)
		todos.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		managers, err := newManagerService(new(MockUserRepository), todos, new(MockManagerRepository)).
			List(context.Background(), 99)

		assert.Nil(t, managers)
		assert.True(t, apperrors.IsInvalidRequest(err))
	})

	t.Run("todo with no managers returns empty slice", func(t *testing.T) {
		todos := new(MockTodoRepository)
		managerRepo := new(MockManagerRepository)
		todos.On("FindByID", mock.Anything, uint(10)).Return(&model.Todo{ID: 10, UserID: 1}, nil)
		managerRepo.On("FindByTodoIDWithUser", mock.Anything, uint(10)).Return([]model.Manager{}, nil)

		managers, err := newManagerService(new(MockUserRepository), todos, managerRepo).
			List(context.Background(), 10)

		assert.NoError(t, err)
		assert.NotNil(t, managers)
		assert.Empty(t, managers)
	})

	t.Run("returns managers with delegates in storage order", func(t *testing.T) {
		todos := new(MockTodoRepository)
		managerRepo := new(MockManagerRepository)
		todos.On("FindByID", mock.Anything, uint(10)).Return(&model.Todo{ID: 10, UserID: 1}, nil)
		managerRepo.On("FindByTodoIDWithUser", mock.Anything, uint(10)).Return([]model.Manager{
			{ID: 100, UserID: 3, TodoID: 10, User: model.User{ID: 3, Email: "a@example.com"}},
			{ID: 101, UserID: 4, TodoID: 10, User: model.User{ID: 4, Email: "b@example.com"}},
		}, nil)

		managers, err := newManagerService(new(MockUserRepository), todos, managerRepo).
			List(context.Background(), 10)

		assert.NoError(t, err)
		assert.Len(t, managers, 2)
		assert.Equal(t, uint(100), managers[0].ID)
		assert.Equal(t, "b@example.com", managers[1].User.Email)
	})
}

func TestManagerService_Unassign(t *testing.T) {
	owner := auth.AuthUser{ID: 1, Email: "owner@example.com", Role: model.RoleUser}
	stranger := auth.AuthUser{ID: 2, Email: "stranger@example.com", Role: model.RoleUser}
	todo := &model.Todo{ID: 10, UserID: owner.ID}

	tests := []struct {
		name       string
		actor      auth.AuthUser
		todoID     uint
		managerID  uint
		setupMock  func(*MockTodoRepository, *MockManagerRepository)
		wantReason string
	}{
		{
			name:      "successful unassign",
			actor:     owner,
			todoID:    10,
			managerID: 100,
			setupMock: func(todos *MockTodoRepository, managers *MockManagerRepository) {
				todos.On("FindByID", mock.Anything, uint(10)).Return(todo, nil)
				managers.On("FindByID", mock.Anything, uint(100)).Return(&model.Manager{ID: 100, UserID: 3, TodoID: 10}, nil)
				managers.On("Delete", mock.Anything, mock.AnythingOfType("*model.Manager")).Return(nil)
			},
		},
		{
			name:      "non-owner cannot unassign",
			actor:     stranger,
			todoID:    10,
			managerID: 100,
			setupMock: func(todos *MockTodoRepository, managers *MockManagerRepository) {
				todos.On("FindByID", mock.Anything, uint(10)).Return(todo, nil)
			},
			wantReason: "owner",
		},
		{
			name:      "manager not found",
			actor:     owner,
			todoID:    10,
			managerID: 999,
			setupMock: func(todos *MockTodoRepository, managers *MockManagerRepository) {
				todos.On("FindByID", mock.Anything, uint(10)).Return(todo, nil)
				managers.On("FindByID", mock.Anything, uint(999)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantReason: "999",
		},
		{
			name:      "manager belongs to a different todo",
			actor:     owner,
			todoID:    10,
			managerID: 100,
			setupMock: func(todos *MockTodoRepository, managers *MockManagerRepository) {
				todos.On("FindByID", mock.Anything, uint(10)).Return(todo, nil)
				managers.On("FindByID", mock.Anything, uint(100)).Return(&model.Manager{ID: 100, UserID: 3, TodoID: 11}, nil)
			},
			wantReason: "not a manager of this todo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todos := new(MockTodoRepository)
			managers := new(MockManagerRepository)
			tt.setupMock(todos, managers)

			err := newManagerService(new(MockUserRepository), todos, managers).
				Unassign(context.Background(), tt.actor, tt.todoID, tt.managerID)

			if tt.wantReason != "" {
				assert.Error(t, err)
				assert.True(t, apperrors.IsInvalidRequest(err))
				assert.Contains(t, err.Error(), tt.wantReason)
				managers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			todos.AssertExpectations(t)
			managers.AssertExpectations(t)
		})
	}
}

func TestValidateTodoOwner(t *testing.T) {
	actor := auth.AuthUser{ID: 5, Email: "actor@example.com"}

	// comparison is by id value, not by any object identity
	assert.NoError(t, validateTodoOwner(actor, &model.Todo{ID: 1, UserID: 5}))

	err := validateTodoOwner(actor, &model.Todo{ID: 1, UserID: 6})
	assert.True(t, apperrors.IsInvalidRequest(err))

	err = validateTodoOwner(actor, &model.Todo{ID: 1})
	assert.True(t, apperrors.IsInvalidRequest(err))
	assert.Contains(t, err.Error(), "owner information")
}
