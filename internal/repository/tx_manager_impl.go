package repository

import (
	"context"

	domainRepo "go-medical-appointment/internal/domain/repository"

	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

func (m *txManager) DB(ctx context.Context) *gorm.DB {
	return m.db.WithContext(ctx)
}

func (m *txManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
