package converter

import (
	"time"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO, with
// the age computed at now
func PatientToResponse(patient *entity.Patient, now time.Time) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:          patient.ID,
		FirstName:   patient.FirstName,
		LastName:    patient.LastName,
		FullName:    patient.FullName(),
		BirthDate:   patient.BirthDate.Format(entity.DateLayout),
		Age:         patient.AgeAt(now),
		PhoneNumber: patient.PhoneNumber,
		Email:       patient.Email,
		CreatedAt:   patient.CreatedAt,
		UpdatedAt:   patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient, now time.Time) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i], now)
	}
	return responses
}
