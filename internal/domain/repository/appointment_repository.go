package repository

import (
	"time"

	"go-medical-appointment/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id int64) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByDoctor(db *gorm.DB, doctorID int64) ([]entity.Appointment, error)
	FindByPatient(db *gorm.DB, patientID int64) ([]entity.Appointment, error)
	FindByStatus(db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error)
	// FindConflicting returns the non-cancelled appointment holding the
	// doctor's slot, ignoring excludeID. It returns nil when the slot is free.
	FindConflicting(db *gorm.DB, doctorID int64, date time.Time, slot string, excludeID int64) (*entity.Appointment, error)
	CountByDoctor(db *gorm.DB, doctorID int64) (int64, error)
	CountByPatient(db *gorm.DB, patientID int64) (int64, error)
	CountBySpecialty(db *gorm.DB, specialtyID int64) (int64, error)
}
