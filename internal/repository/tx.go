package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction, handing it
// transaction-scoped repositories. Any error returned by fn rolls the whole
// transaction back.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context, users UserRepository, artisans ArtisanRepository) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the given DB handle.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context, users UserRepository, artisans ArtisanRepository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx}, &artisanRepository{db: tx})
	})
}
