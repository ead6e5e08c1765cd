package handler

import (
	"net/http"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/usecase"
	"go-medical-appointment/pkg/response"
	"go-medical-appointment/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// CreateAppointment books a new appointment
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		response.AppError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), id)
	if err != nil {
		response.AppError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// ListAppointments filters by doctor_id, patient_id or status. Only the
// first one present applies, in that order.
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param doctor_id query int false "Doctor ID"
// @Param patient_id query int false "Patient ID"
// @Param status query string false "PENDING, CONFIRMED, CANCELLED or COMPLETED"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentFilterRequest
	var ok bool
	if req.DoctorID, ok = queryID(w, r, "doctor_id"); !ok {
		return
	}
	if req.PatientID, ok = queryID(w, r, "patient_id"); !ok {
		return
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	appointments, err := h.appointmentUsecase.FilterAppointments(r.Context(), &req)
	if err != nil {
		response.AppError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), id, &req)
	if err != nil {
		response.AppError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

// ChangeStatus moves an appointment through its lifecycle
// @Summary Change appointment status
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.ChangeAppointmentStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.ChangeAppointmentStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		response.AppError(w, err, "Failed to change appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.CancelAppointment(r.Context(), id)
	if err != nil {
		response.AppError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "appointment")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), id); err != nil {
		response.AppError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

// CheckAvailability reports whether a doctor can take the slot
// @Summary Check doctor availability
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param doctor_id query int true "Doctor ID"
// @Param date query string true "YYYY-MM-DD"
// @Param time query string true "HH:MM"
// @Success 200 {object} response.Response
// @Router /appointments/availability [get]
func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := queryID(w, r, "doctor_id")
	if !ok {
		return
	}
	if doctorID == nil {
		response.Error(w, http.StatusBadRequest, "doctor_id is required", nil)
		return
	}

	query := r.URL.Query()
	availability, err := h.appointmentUsecase.CheckAvailability(r.Context(), &dto.AvailabilityRequest{
		DoctorID: *doctorID,
		Date:     query.Get("date"),
		Time:     query.Get("time"),
	})
	if err != nil {
		response.AppError(w, err, "Failed to check availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability checked successfully", availability)
}

func (h *AppointmentHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Slots retrieved successfully", h.appointmentUsecase.ListSlots())
}
