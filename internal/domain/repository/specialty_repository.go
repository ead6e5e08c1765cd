package repository

import (
	"go-medical-appointment/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	Create(db *gorm.DB, specialty *entity.Specialty) error
	Update(db *gorm.DB, specialty *entity.Specialty) error
	Delete(db *gorm.DB, id int64) error
	FindByID(db *gorm.DB, id int64) (*entity.Specialty, error)
	FindByIDs(db *gorm.DB, ids []int64) ([]entity.Specialty, error)
	FindAll(db *gorm.DB) ([]entity.Specialty, error)
	ExistsByName(db *gorm.DB, name string, excludeID int64) (bool, error)
}
