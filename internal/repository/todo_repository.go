package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// TodoRepository defines todo persistence operations.
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	FindByID(ctx context.Context, id uint) (*model.Todo, error)
	FindByIDWithUser(ctx context.Context, id uint) (*model.Todo, error)
	ListByModifiedDesc(ctx context.Context, offset, limit int) ([]model.Todo, int64, error)
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new todo repository.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepository) FindByID(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// FindByIDWithUser fetches a todo together with its owner in one lookup.
func (r *todoRepository) FindByIDWithUser(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).Preload("User").First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListByModifiedDesc returns one page of todos ordered by most recently
// modified first, plus the total row count for page metadata.
func (r *todoRepository) ListByModifiedDesc(ctx context.Context, offset, limit int) ([]model.Todo, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Todo{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var todos []model.Todo
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&todos).Error; err != nil {
		return nil, 0, err
	}
	return todos, total, nil
}
