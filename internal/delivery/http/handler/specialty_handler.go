package handler

import (
	"net/http"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/usecase"
	"go-medical-appointment/pkg/response"
	"go-medical-appointment/pkg/validator"
)

type SpecialtyHandler struct {
	specialtyUsecase usecase.SpecialtyUsecase
	validator        *validator.CustomValidator
}

func NewSpecialtyHandler(specialtyUsecase usecase.SpecialtyUsecase, validator *validator.CustomValidator) *SpecialtyHandler {
	return &SpecialtyHandler{
		specialtyUsecase: specialtyUsecase,
		validator:        validator,
	}
}

func (h *SpecialtyHandler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecialtyRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	specialty, err := h.specialtyUsecase.CreateSpecialty(r.Context(), &req)
	if err != nil {
		response.AppError(w, err, "Failed to create specialty")
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

func (h *SpecialtyHandler) GetSpecialty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "specialty")
	if !ok {
		return
	}

	specialty, err := h.specialtyUsecase.GetSpecialty(r.Context(), id)
	if err != nil {
		response.AppError(w, err, "Failed to get specialty")
		return
	}

	response.Success(w, http.StatusOK, "Specialty retrieved successfully", specialty)
}

func (h *SpecialtyHandler) GetAllSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.specialtyUsecase.ListSpecialties(r.Context())
	if err != nil {
		response.AppError(w, err, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *SpecialtyHandler) UpdateSpecialty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "specialty")
	if !ok {
		return
	}

	var req dto.UpdateSpecialtyRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	specialty, err := h.specialtyUsecase.UpdateSpecialty(r.Context(), id, &req)
	if err != nil {
		response.AppError(w, err, "Failed to update specialty")
		return
	}

	response.Success(w, http.StatusOK, "Specialty updated successfully", specialty)
}

func (h *SpecialtyHandler) DeleteSpecialty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "specialty")
	if !ok {
		return
	}

	if err := h.specialtyUsecase.DeleteSpecialty(r.Context(), id); err != nil {
		response.AppError(w, err, "Failed to delete specialty")
		return
	}

	response.Success(w, http.StatusOK, "Specialty deleted successfully", nil)
}
