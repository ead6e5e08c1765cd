package converter

import (
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	specialties := make([]dto.SpecialtySummary, 0, len(doctor.Assignments))
	for _, a := range doctor.Assignments {
		specialties = append(specialties, dto.SpecialtySummary{
			ID:   a.SpecialtyID,
			Name: a.Specialty.Name,
		})
	}

	return &dto.DoctorResponse{
		ID:          doctor.ID,
		FirstName:   doctor.FirstName,
		LastName:    doctor.LastName,
		DisplayName: doctor.DisplayName(),
		PhoneNumber: doctor.PhoneNumber,
		Email:       doctor.Email,
		Specialties: specialties,
		CreatedAt:   doctor.CreatedAt,
		UpdatedAt:   doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
