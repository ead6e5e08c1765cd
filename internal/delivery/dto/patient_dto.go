package dto

import "time"

// Request DTOs

type CreatePatientRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	BirthDate   string `json:"birth_date" validate:"required,date"` // Format: YYYY-MM-DD
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=15"`
	Email       string `json:"email" validate:"required,email,max=100"`
}

type UpdatePatientRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,date"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=7,max=15"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
}

// Response DTOs

type PatientResponse struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	BirthDate   string    `json:"birth_date"`
	Age         int       `json:"age"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
