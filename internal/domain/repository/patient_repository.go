package repository

import (
	"go-medical-appointment/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	Update(db *gorm.DB, patient *entity.Patient) error
	Delete(db *gorm.DB, id int64) error
	FindByID(db *gorm.DB, id int64) (*entity.Patient, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
	Search(db *gorm.DB, term string) ([]entity.Patient, error)
	ExistsByEmail(db *gorm.DB, email string, excludeID int64) (bool, error)
}
