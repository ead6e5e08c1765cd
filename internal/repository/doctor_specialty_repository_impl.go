package repository

import (
	"go-medical-appointment/internal/domain/entity"
	domainRepo "go-medical-appointment/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorSpecialtyRepository struct{}

func NewDoctorSpecialtyRepository() domainRepo.DoctorSpecialtyRepository {
	return &doctorSpecialtyRepository{}
}

func (r *doctorSpecialtyRepository) Create(db *gorm.DB, assignment *entity.DoctorSpecialty) error {
	return db.Omit(clause.Associations).Create(assignment).Error
}

func (r *doctorSpecialtyRepository) Delete(db *gorm.DB, doctorID, specialtyID int64) (int64, error) {
	result := db.Where("doctor_id = ? AND specialty_id = ?", doctorID, specialtyID).
		Delete(&entity.DoctorSpecialty{})
	return result.RowsAffected, result.Error
}

func (r *doctorSpecialtyRepository) DeleteByDoctor(db *gorm.DB, doctorID int64) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorSpecialty{}).Error
}

func (r *doctorSpecialtyRepository) Exists(db *gorm.DB, doctorID, specialtyID int64) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorSpecialty{}).
		Where("doctor_id = ? AND specialty_id = ?", doctorID, specialtyID).
		Count(&count).Error
	return count > 0, err
}

func (r *doctorSpecialtyRepository) FindByDoctor(db *gorm.DB, doctorID int64) ([]entity.DoctorSpecialty, error) {
	var assignments []entity.DoctorSpecialty
	err := db.Preload("Specialty").
		Where("doctor_id = ?", doctorID).
		Order("assigned_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *doctorSpecialtyRepository) CountBySpecialty(db *gorm.DB, specialtyID int64) (int64, error) {
	var count int64
	err := db.Model(&entity.DoctorSpecialty{}).
		Where("specialty_id = ?", specialtyID).
		Count(&count).Error
	return count, err
}

func (r *doctorSpecialtyRepository) CountGroupedBySpecialty(db *gorm.DB) (map[int64]int64, error) {
	var rows []struct {
		SpecialtyID int64
		Total       int64
	}
	err := db.Model(&entity.DoctorSpecialty{}).
		Select("specialty_id, COUNT(*) AS total").
		Group("specialty_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.SpecialtyID] = row.Total
	}
	return counts, nil
}
