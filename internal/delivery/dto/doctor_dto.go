package dto

import "time"

// Request DTOs

type CreateDoctorRequest struct {
	FirstName    string  `json:"first_name" validate:"required,max=100"`
	LastName     string  `json:"last_name" validate:"required,max=100"`
	PhoneNumber  string  `json:"phone_number" validate:"required,min=7,max=15"`
	Email        string  `json:"email" validate:"required,email,max=100"`
	SpecialtyIDs []int64 `json:"specialty_ids" validate:"required,min=1,dive,gt=0"`
}

// UpdateDoctorRequest is a patch. A non-empty SpecialtyIDs replaces the
// doctor's assignments.
type UpdateDoctorRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,min=7,max=15"`
	Email        *string `json:"email" validate:"omitempty,email,max=100"`
	SpecialtyIDs []int64 `json:"specialty_ids" validate:"omitempty,dive,gt=0"`
}

// Response DTOs

type SpecialtySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DoctorResponse struct {
	ID          int64              `json:"id"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	DisplayName string             `json:"display_name"`
	PhoneNumber string             `json:"phone_number"`
	Email       string             `json:"email"`
	Specialties []SpecialtySummary `json:"specialties"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
