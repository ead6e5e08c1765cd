package converter

import (
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

func DoctorSpecialtyToResponse(assignment *entity.DoctorSpecialty) *dto.DoctorSpecialtyResponse {
	if assignment == nil {
		return nil
	}

	return &dto.DoctorSpecialtyResponse{
		ID:            assignment.ID,
		DoctorID:      assignment.DoctorID,
		SpecialtyID:   assignment.SpecialtyID,
		SpecialtyName: assignment.Specialty.Name,
		AssignedAt:    assignment.AssignedAt,
	}
}

func DoctorSpecialtiesToResponses(assignments []entity.DoctorSpecialty) []dto.DoctorSpecialtyResponse {
	responses := make([]dto.DoctorSpecialtyResponse, len(assignments))
	for i := range assignments {
		responses[i] = *DoctorSpecialtyToResponse(&assignments[i])
	}
	return responses
}
