package handler

import (
	"net/http"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/usecase"
	"go-medical-appointment/pkg/response"
	"go-medical-appointment/pkg/validator"
)

type DoctorSpecialtyHandler struct {
	doctorSpecialtyUsecase usecase.DoctorSpecialtyUsecase
	validator              *validator.CustomValidator
}

func NewDoctorSpecialtyHandler(doctorSpecialtyUsecase usecase.DoctorSpecialtyUsecase, validator *validator.CustomValidator) *DoctorSpecialtyHandler {
	return &DoctorSpecialtyHandler{
		doctorSpecialtyUsecase: doctorSpecialtyUsecase,
		validator:              validator,
	}
}

func (h *DoctorSpecialtyHandler) AssignSpecialty(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignSpecialtyRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	assignment, err := h.doctorSpecialtyUsecase.Assign(r.Context(), &req)
	if err != nil {
		response.AppError(w, err, "Failed to assign specialty")
		return
	}

	response.Success(w, http.StatusCreated, "Specialty assigned successfully", assignment)
}

// UnassignSpecialty handles DELETE /doctor-specialties?doctor_id=&specialty_id=
func (h *DoctorSpecialtyHandler) UnassignSpecialty(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := queryID(w, r, "doctor_id")
	if !ok {
		return
	}
	specialtyID, ok := queryID(w, r, "specialty_id")
	if !ok {
		return
	}
	if doctorID == nil || specialtyID == nil {
		response.Error(w, http.StatusBadRequest, "doctor_id and specialty_id are required", nil)
		return
	}

	if err := h.doctorSpecialtyUsecase.Unassign(r.Context(), *doctorID, *specialtyID); err != nil {
		response.AppError(w, err, "Failed to unassign specialty")
		return
	}

	response.Success(w, http.StatusOK, "Specialty unassigned successfully", nil)
}
