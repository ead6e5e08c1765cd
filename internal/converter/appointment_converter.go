package converter

import (
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Names are filled only when the associations are preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		SpecialtyID:     appointment.SpecialtyID,
		AppointmentDate: appointment.DateString(),
		AppointmentTime: appointment.AppointmentTime,
		Reason:          appointment.Reason,
		Status:          appointment.Status.String(),
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Patient.ID != 0 {
		response.PatientName = appointment.Patient.FullName()
	}
	if appointment.Doctor.ID != 0 {
		response.DoctorName = appointment.Doctor.DisplayName()
	}
	if appointment.Specialty.ID != 0 {
		response.SpecialtyName = appointment.Specialty.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
