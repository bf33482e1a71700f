package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repositories groups the repositories bound to one database handle, either
// the shared connection pool or a single transaction.
type Repositories interface {
	Categories() CategoryRepository
	Tasks() TaskRepository
}

type Store interface {
	Repositories

	// Transaction runs fn against transaction-bound repositories. The
	// transaction commits when fn returns nil and rolls back on an error or
	// a panic.
	Transaction(ctx context.Context, fn func(repos Repositories) error) error

	Ping(ctx context.Context) error
}

type GormStore struct {
	db         *gorm.DB
	categories *CategoryRepo
	tasks      *TaskRepo
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:         db,
		categories: NewCategoryRepository(db),
		tasks:      NewTaskRepository(db),
	}
}

func (s *GormStore) Categories() CategoryRepository {
	return s.categories
}

func (s *GormStore) Tasks() TaskRepository {
	return s.tasks
}

func (s *GormStore) Transaction(ctx context.Context, fn func(repos Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepositories{
			categories: NewCategoryRepository(tx),
			tasks:      NewTaskRepository(tx),
		})
	})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

type txRepositories struct {
	categories *CategoryRepo
	tasks      *TaskRepo
}

func (r txRepositories) Categories() CategoryRepository {
	return r.categories
}

func (r txRepositories) Tasks() TaskRepository {
	return r.tasks
}
