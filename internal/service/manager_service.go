package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// ManagerService handles delegation of todos to manager users.
type ManagerService interface {
	Assign(ctx context.Context, actor auth.AuthUser, todoID, managerUserID uint) (*model.Manager, error)
	List(ctx context.Context, todoID uint) ([]model.Manager, error)
	Unassign(ctx context.Context, actor auth.AuthUser, todoID, managerID uint) error
}

type managerService struct {
	todoRepo    repository.TodoRepository
	managerRepo repository.ManagerRepository
	tx          repository.TxManager
}

// NewManagerService creates a new manager service.
func NewManagerService(todoRepo repository.TodoRepository, managerRepo repository.ManagerRepository, tx repository.TxManager) ManagerService {
	return &managerService{
		todoRepo:    todoRepo,
		managerRepo: managerRepo,
		tx:          tx,
	}
}

// validateTodoOwner succeeds only when the acting identity owns the todo.
// Comparison is by id value, never by object identity.
func validateTodoOwner(actor auth.AuthUser, todo *model.Todo) error {
	if todo.UserID == 0 {
		return apperrors.NewInvalidRequest("todo has no owner information")
	}
	if actor.ID != todo.UserID {
		return apperrors.NewInvalidRequest("only the todo owner can manage its assignments")
	}
	return nil
}

func findTodo(ctx context.Context, todos repository.TodoRepository, todoID uint) (*model.Todo, error) {
	todo, err := todos.FindByID(ctx, todoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewInvalidRequest("todo with id %d not found", todoID)
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return todo, nil
}

// Assign links a delegate user to the todo. Only the owner may assign,
// and the owner cannot assign themselves.
func (s *managerService) Assign(ctx context.Context, actor auth.AuthUser, todoID, managerUserID uint) (*model.Manager, error) {
	var manager *model.Manager

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		todo, err := findTodo(ctx, repos.Todos, todoID)
		if err != nil {
			return err
		}
		if err := validateTodoOwner(actor, todo); err != nil {
			return err
		}

		delegate, err := repos.Users.FindByID(ctx, managerUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NewInvalidRequest("user with id %d not found", managerUserID)
			}
			return fmt.Errorf("find delegate user: %w", err)
		}

		if delegate.ID == todo.UserID {
			return apperrors.NewInvalidRequest("the todo owner cannot be registered as their own manager")
		}

		manager = &model.Manager{
			UserID: delegate.ID,
			TodoID: todo.ID,
		}
		if err := repos.Managers.Create(ctx, manager); err != nil {
			return err
		}
		manager.User = *delegate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return manager, nil
}

// List returns all managers of a todo with their delegate users, in
// storage order.
func (s *managerService) List(ctx context.Context, todoID uint) ([]model.Manager, error) {
	if _, err := findTodo(ctx, s.todoRepo, todoID); err != nil {
		return nil, err
	}

	managers, err := s.managerRepo.FindByTodoIDWithUser(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	if managers == nil {
		managers = []model.Manager{}
	}
	return managers, nil
}

// Unassign removes a manager from the todo. The manager record must
// belong to the todo named in the request.
func (s *managerService) Unassign(ctx context.Context, actor auth.AuthUser, todoID, managerID uint) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		todo, err := findTodo(ctx, repos.Todos, todoID)
		if err != nil {
			return err
		}
		if err := validateTodoOwner(actor, todo); err != nil {
			return err
		}

		manager, err := repos.Managers.FindByID(ctx, managerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NewInvalidRequest("manager with id %d not found", managerID)
			}
			return fmt.Errorf("find manager: %w", err)
		}

		if manager.TodoID != todo.ID {
			return apperrors.NewInvalidRequest("not a manager of this todo")
		}

		return repos.Managers.Delete(ctx, manager)
	})
}
