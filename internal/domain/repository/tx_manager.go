package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager hands out database handles bound to a request context.
// Transaction commits when fn returns nil and rolls back otherwise.
type TxManager interface {
	DB(ctx context.Context) *gorm.DB
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
