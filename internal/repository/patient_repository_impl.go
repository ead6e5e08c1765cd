package repository

import (
	"errors"
	"strings"

	"go-medical-appointment/internal/domain/entity"
	domainRepo "go-medical-appointment/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit(clause.Associations).Create(patient).Error
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit(clause.Associations).Save(patient).Error
}

func (r *patientRepository) Delete(db *gorm.DB, id int64) error {
	return db.Delete(&entity.Patient{}, id).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Order("last_name ASC, first_name ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// Search matches the term against first or last name, ignoring case.
func (r *patientRepository) Search(db *gorm.DB, term string) ([]entity.Patient, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"

	var patients []entity.Patient
	err := db.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern).
		Order("last_name ASC, first_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) ExistsByEmail(db *gorm.DB, email string, excludeID int64) (bool, error) {
	var count int64
	err := db.Model(&entity.Patient{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}
