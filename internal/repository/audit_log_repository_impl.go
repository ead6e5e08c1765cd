package repository

import (
	"errors"

	"go-medical-appointment/internal/domain/entity"
	domainRepo "go-medical-appointment/internal/domain/repository"

	"gorm.io/gorm"
)

const auditSavePoint = "audit_log"

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

// Create must run inside a transaction. The insert is guarded by a savepoint
// so a failed audit row leaves the surrounding transaction usable.
func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	if err := db.SavePoint(auditSavePoint).Error; err != nil {
		return err
	}
	if err := db.Omit("User").Create(log).Error; err != nil {
		db.RollbackTo(auditSavePoint)
		return err
	}
	return nil
}

func (r *auditLogRepository) FindAll(db *gorm.DB) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.Preload("User.Role").Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := db.Preload("User.Role").Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
