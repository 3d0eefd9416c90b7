package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskhub/internal/auth"
	"taskhub/internal/client"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const defaultPageSize = 10

// TodoService handles todo lifecycle operations.
type TodoService interface {
	Create(ctx context.Context, actor auth.AuthUser, title, contents string) (*model.Todo, error)
	List(ctx context.Context, page, size int) ([]model.Todo, int64, error)
	GetOne(ctx context.Context, todoID uint) (*model.Todo, error)
}

type todoService struct {
	todoRepo      repository.TodoRepository
	tx            repository.TxManager
	weatherClient client.WeatherClient
}

// NewTodoService creates a new todo service.
func NewTodoService(todoRepo repository.TodoRepository, tx repository.TxManager, weatherClient client.WeatherClient) TodoService {
	return &todoService{
		todoRepo:      todoRepo,
		tx:            tx,
		weatherClient: weatherClient,
	}
}

// Create persists a new todo owned by the acting user, annotated with
// today's weather. A weather feed failure fails the whole call.
func (s *todoService) Create(ctx context.Context, actor auth.AuthUser, title, contents string) (*model.Todo, error) {
	weather, err := s.weatherClient.Today(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch today's weather: %w", err)
	}

	todo := &model.Todo{
		Title:    title,
		Contents: contents,
		Weather:  weather,
		UserID:   actor.ID,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		return repos.Todos.Create(ctx, todo)
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

// List returns one page of todos ordered by most recently modified first.
// Pages are 1-indexed at the boundary and converted to a 0-indexed offset
// here.
func (s *todoService) List(ctx context.Context, page, size int) ([]model.Todo, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}

	todos, total, err := s.todoRepo.ListByModifiedDesc(ctx, (page-1)*size, size)
	if err != nil {
		return nil, 0, fmt.Errorf("list todos: %w", err)
	}
	return todos, total, nil
}

// GetOne fetches a todo together with its owner.
func (s *todoService) GetOne(ctx context.Context, todoID uint) (*model.Todo, error) {
	todo, err := s.todoRepo.FindByIDWithUser(ctx, todoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewInvalidRequest("todo with id %d not found", todoID)
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return todo, nil
}
