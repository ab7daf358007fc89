package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/commstack/org-access/internal/store/model"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	User() User
	Org() Org
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db   *gorm.DB
	user User
	org  Org
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:   db,
		user: NewUserStore(db),
		org:  NewOrgStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) User() User {
	return s.user
}

func (s *DataStore) Org() Org {
	return s.org
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.User{}, &model.Org{})
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
