package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// ManagerRepository defines manager assignment persistence operations.
type ManagerRepository interface {
	Create(ctx context.Context, manager *model.Manager) error
	FindByID(ctx context.Context, id uint) (*model.Manager, error)
	FindByTodoIDWithUser(ctx context.Context, todoID uint) ([]model.Manager, error)
	Delete(ctx context.Context, manager *model.Manager) error
}

type managerRepository struct {
	db *gorm.DB
}

// NewManagerRepository creates a new manager repository.
func NewManagerRepository(db *gorm.DB) ManagerRepository {
	return &managerRepository{db: db}
}

func (r *managerRepository) Create(ctx context.Context, manager *model.Manager) error {
	return r.db.WithContext(ctx).Create(manager).Error
}

func (r *managerRepository) FindByID(ctx context.Context, id uint) (*model.Manager, error) {
	var manager model.Manager
	if err := r.db.WithContext(ctx).First(&manager, id).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

// FindByTodoIDWithUser fetches all managers of a todo together with their
// delegate users, in storage order.
func (r *managerRepository) FindByTodoIDWithUser(ctx context.Context, todoID uint) ([]model.Manager, error) {
	var managers []model.Manager
	if err := r.db.WithContext(ctx).Preload("User").
		Where("todo_id = ?", todoID).Find(&managers).Error; err != nil {
		return nil, err
	}
	return managers, nil
}

func (r *managerRepository) Delete(ctx context.Context, manager *model.Manager) error {
	return r.db.WithContext(ctx).Delete(manager).Error
}
