package repository

import (
	"errors"
	"time"

	"go-medical-appointment/internal/domain/entity"
	domainRepo "go-medical-appointment/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id int64) error {
	return db.Delete(&entity.Appointment{}, id).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.withDetails(db).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	return r.find(db)
}

func (r *appointmentRepository) FindByDoctor(db *gorm.DB, doctorID int64) ([]entity.Appointment, error) {
	return r.find(db, "doctor_id = ?", doctorID)
}

func (r *appointmentRepository) FindByPatient(db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	return r.find(db, "patient_id = ?", patientID)
}

func (r *appointmentRepository) FindByStatus(db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	return r.find(db, "status = ?", status)
}

func (r *appointmentRepository) FindConflicting(db *gorm.DB, doctorID int64, date time.Time, slot string, excludeID int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where(
		"doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ? AND id <> ?",
		doctorID, date.Format(entity.DateLayout), slot, entity.AppointmentStatusCancelled, excludeID,
	).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) CountByDoctor(db *gorm.DB, doctorID int64) (int64, error) {
	return r.count(db, "doctor_id = ?", doctorID)
}

func (r *appointmentRepository) CountByPatient(db *gorm.DB, patientID int64) (int64, error) {
	return r.count(db, "patient_id = ?", patientID)
}

func (r *appointmentRepository) CountBySpecialty(db *gorm.DB, specialtyID int64) (int64, error) {
	return r.count(db, "specialty_id = ?", specialtyID)
}

func (r *appointmentRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient").Preload("Doctor").Preload("Specialty")
}

func (r *appointmentRepository) find(db *gorm.DB, conds ...interface{}) ([]entity.Appointment, error) {
	query := r.withDetails(db)
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}

	var appointments []entity.Appointment
	err := query.Order("appointment_date ASC, appointment_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) count(db *gorm.DB, query string, args ...interface{}) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where(query, args...).Count(&count).Error
	return count, err
}
