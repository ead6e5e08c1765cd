package dto

import "time"

// Request DTOs

type AssignSpecialtyRequest struct {
	DoctorID    int64 `json:"doctor_id" validate:"required,gt=0"`
	SpecialtyID int64 `json:"specialty_id" validate:"required,gt=0"`
}

// Response DTOs

type DoctorSpecialtyResponse struct {
	ID            int64     `json:"id"`
	DoctorID      int64     `json:"doctor_id"`
	SpecialtyID   int64     `json:"specialty_id"`
	SpecialtyName string    `json:"specialty_name,omitempty"`
	AssignedAt    time.Time `json:"assigned_at"`
}

type DoctorSpecialtyListResponse struct {
	Assignments []DoctorSpecialtyResponse `json:"assignments"`
	Total       int                       `json:"total"`
}
