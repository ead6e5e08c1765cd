package repository

import (
	"go-medical-appointment/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorSpecialtyRepository interface {
	Create(db *gorm.DB, assignment *entity.DoctorSpecialty) error
	// Delete removes the pair and returns the affected row count.
	Delete(db *gorm.DB, doctorID, specialtyID int64) (int64, error)
	DeleteByDoctor(db *gorm.DB, doctorID int64) error
	Exists(db *gorm.DB, doctorID, specialtyID int64) (bool, error)
	FindByDoctor(db *gorm.DB, doctorID int64) ([]entity.DoctorSpecialty, error)
	CountBySpecialty(db *gorm.DB, specialtyID int64) (int64, error)
	CountGroupedBySpecialty(db *gorm.DB) (map[int64]int64, error)
}
