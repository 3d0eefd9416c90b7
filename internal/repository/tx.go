package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRepos bundles repositories bound to one database transaction.
type TxRepos struct {
	Users    UserRepository
	Todos    TodoRepository
	Managers ManagerRepository
}

// TxManager runs a function within a single database transaction. The
// transaction commits when fn returns nil and rolls back on any error, so
// a service call either fully applies or leaves the store unchanged.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a GORM-backed transaction manager.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) RunInTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, TxRepos{
			Users:    NewUserRepository(tx),
			Todos:    NewTodoRepository(tx),
			Managers: NewManagerRepository(tx),
		})
	})
}
