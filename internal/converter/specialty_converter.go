package converter

import (
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

func SpecialtyToResponse(specialty *entity.Specialty, doctorCount int64) *dto.SpecialtyResponse {
	if specialty == nil {
		return nil
	}

	return &dto.SpecialtyResponse{
		ID:          specialty.ID,
		Name:        specialty.Name,
		Description: specialty.Description,
		DoctorCount: doctorCount,
		CreatedAt:   specialty.CreatedAt,
		UpdatedAt:   specialty.UpdatedAt,
	}
}

// SpecialtiesToResponses looks up each doctor count by specialty id; a
// missing entry counts as zero.
func SpecialtiesToResponses(specialties []entity.Specialty, doctorCounts map[int64]int64) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i := range specialties {
		responses[i] = *SpecialtyToResponse(&specialties[i], doctorCounts[specialties[i].ID])
	}
	return responses
}
