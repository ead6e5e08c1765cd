package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       int64  `json:"patient_id" validate:"required,gt=0"`
	DoctorID        int64  `json:"doctor_id" validate:"required,gt=0"`
	SpecialtyID     int64  `json:"specialty_id" validate:"required,gt=0"`
	AppointmentDate string `json:"appointment_date" validate:"required,date,notpast"` // Format: YYYY-MM-DD
	AppointmentTime string `json:"appointment_time" validate:"required,clock"`         // Format: HH:MM
	Reason          string `json:"reason" validate:"required,notblank,max=500"`
}

// UpdateAppointmentRequest is a patch. Nil fields keep their stored value.
// Patient, doctor and specialty cannot be changed.
type UpdateAppointmentRequest struct {
	AppointmentDate *string `json:"appointment_date" validate:"omitempty,date,notpast"`
	AppointmentTime *string `json:"appointment_time" validate:"omitempty,clock"`
	Reason          *string `json:"reason" validate:"omitempty,max=500"`
}

type ChangeAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AvailabilityRequest struct {
	DoctorID int64
	Date     string
	Time     string
}

// AppointmentFilterRequest carries the raw list filters. Status is parsed
// by the usecase.
type AppointmentFilterRequest struct {
	DoctorID  *int64
	PatientID *int64
	Status    *string
}

// Response DTOs

type AppointmentResponse struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorID        int64     `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	SpecialtyID     int64     `json:"specialty_id"`
	SpecialtyName   string    `json:"specialty_name,omitempty"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Reason          string    `json:"reason,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AvailabilityResponse struct {
	DoctorID  int64  `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type SlotListResponse struct {
	Slots []string `json:"slots"`
}
