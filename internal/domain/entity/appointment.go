package entity

import (
	"strings"
	"time"

	"go-medical-appointment/pkg/apperror"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// ErrInvalidAppointmentStatus is returned when a status string names none of
// the four known statuses.
var ErrInvalidAppointmentStatus = apperror.InvalidRequest("invalid appointment status")

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// ParseAppointmentStatus accepts any casing and surrounding whitespace.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", apperror.Wrap(ErrInvalidAppointmentStatus, "%q", s)
	}
	return status, nil
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Same-state moves are never allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) String() string {
	return string(s)
}

// Appointment represents a patient visit booked with a doctor in one of
// the doctor's specialties
type Appointment struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       int64             `gorm:"not null;index" json:"patient_id"`
	DoctorID        int64             `gorm:"not null;index" json:"doctor_id"`
	SpecialtyID     int64             `gorm:"not null;index" json:"specialty_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:varchar(5);not null" json:"appointment_time"`
	Reason          string            `gorm:"type:varchar(500)" json:"reason,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if appointment is completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// DateString renders the appointment day as YYYY-MM-DD.
func (a *Appointment) DateString() string {
	return a.AppointmentDate.Format(DateLayout)
}

// Snapshot is the audit representation of an appointment.
func (a *Appointment) Snapshot() JSON {
	return JSON{
		"id":               a.ID,
		"patient_id":       a.PatientID,
		"doctor_id":        a.DoctorID,
		"specialty_id":     a.SpecialtyID,
		"appointment_date": a.DateString(),
		"appointment_time": a.AppointmentTime,
		"reason":           a.Reason,
		"status":           a.Status.String(),
	}
}
