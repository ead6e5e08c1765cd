package usecase

import (
	"context"
	"strings"
	"time"

	"go-medical-appointment/internal/converter"
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/internal/domain/repository"
	"go-medical-appointment/internal/service"
	"go-medical-appointment/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = apperror.NotFound("appointment not found")
	ErrDoctorLacksSpecialty    = apperror.InvalidRequest("doctor does not practice the requested specialty")
	ErrWeekendAppointment      = apperror.InvalidRequest("appointments cannot be scheduled on weekends")
	ErrInvalidTimeSlot         = apperror.InvalidRequest("invalid time slot: appointments start on the hour from 08:00 to 11:00 and from 13:00 to 16:00, 12:00-13:00 is the lunch break")
	ErrDoctorAlreadyBooked     = apperror.Conflict("doctor already has an appointment at that date and time")
	ErrAppointmentNotEditable  = apperror.InvalidState("completed or cancelled appointments cannot be modified")
	ErrInvalidStatusTransition = apperror.InvalidState("invalid status transition")
	ErrCancelCompleted         = apperror.InvalidState("a completed appointment cannot be cancelled")
	ErrDeleteCompleted         = apperror.InvalidState("completed appointments cannot be deleted")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id int64) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	ChangeStatus(ctx context.Context, id int64, status string) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id int64) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id int64) error
	CheckAvailability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
	FilterAppointments(ctx context.Context, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error)
	ListSlots() *dto.SlotListResponse
}

type appointmentUsecase struct {
	txm                 repository.TxManager
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	patientRepo         repository.PatientRepository
	doctorRepo          repository.DoctorRepository
	specialtyRepo       repository.SpecialtyRepository
	registry            DoctorSpecialtyUsecase
	auditService        service.AuditService
}

func NewAppointmentUsecase(
	txm repository.TxManager,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	registry DoctorSpecialtyUsecase,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		txm:                 txm,
		log:                 log,
		appointmentRepo:     appointmentRepo,
		patientRepo:         patientRepo,
		doctorRepo:          doctorRepo,
		specialtyRepo:       specialtyRepo,
		registry:            registry,
		auditService:        auditService,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := entity.ParseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	slot, err := entity.ParseSlot(req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	var appointment *entity.Appointment
	err = u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(tx, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		doctor, err := u.doctorRepo.FindByID(tx, req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		specialty, err := u.specialtyRepo.FindByID(tx, req.SpecialtyID)
		if err != nil {
			u.log.Warnf("Failed to find specialty: %+v", err)
			return err
		}
		if specialty == nil {
			return ErrSpecialtyNotFound
		}

		assigned, err := u.registry.HasSpecialty(ctx, doctor.ID, specialty.ID)
		if err != nil {
			return err
		}
		if !assigned {
			return apperror.Wrap(ErrDoctorLacksSpecialty, "%s does not practice %s", doctor.DisplayName(), specialty.Name)
		}

		if err := checkBusinessDay(date); err != nil {
			return err
		}
		if err := checkSlot(slot); err != nil {
			return err
		}
		if err := u.checkDoctorFree(tx, doctor.ID, date, slot, 0); err != nil {
			return err
		}

		appointment = &entity.Appointment{
			PatientID:       patient.ID,
			DoctorID:        doctor.ID,
			SpecialtyID:     specialty.ID,
			AppointmentDate: date,
			AppointmentTime: slot,
			Reason:          strings.TrimSpace(req.Reason),
			Status:          entity.AppointmentStatusPending,
		}
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			if isDuplicateKeyError(err, constraintAppointmentSlot) {
				return ErrDoctorAlreadyBooked
			}
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}

		appointment.Patient = *patient
		appointment.Doctor = *doctor
		appointment.Specialty = *specialty

		u.auditService.LogCreate(ctx, tx, ActorFrom(ctx), entity.AuditActionAppointmentCreate,
			entity.AuditEntityAppointment, idString(appointment.ID), appointment.Snapshot())
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"doctor_id":      appointment.DoctorID,
		"date":           appointment.DateString(),
		"time":           appointment.AppointmentTime,
	}).Info("Appointment created")

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.txm.DB(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateAppointment reschedules an open appointment or edits its reason.
// Any date or time change re-checks the doctor's availability, ignoring the
// appointment itself.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	var appointment *entity.Appointment
	err := u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		appointment, err = u.findAppointment(tx, id)
		if err != nil {
			return err
		}
		if appointment.Status.IsTerminal() {
			return apperror.Wrap(ErrAppointmentNotEditable, "appointment is %s", appointment.Status)
		}

		oldValue := appointment.Snapshot()

		if req.AppointmentDate != nil {
			date, err := entity.ParseDate(*req.AppointmentDate)
			if err != nil {
				return err
			}
			if err := checkBusinessDay(date); err != nil {
				return err
			}
			appointment.AppointmentDate = date
		}

		if req.AppointmentTime != nil {
			slot, err := entity.ParseSlot(*req.AppointmentTime)
			if err != nil {
				return err
			}
			if err := checkSlot(slot); err != nil {
				return err
			}
			appointment.AppointmentTime = slot
		}

		if req.AppointmentDate != nil || req.AppointmentTime != nil {
			err := u.checkDoctorFree(tx, appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime, appointment.ID)
			if err != nil {
				return err
			}
		}

		if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
			appointment.Reason = strings.TrimSpace(*req.Reason)
		}

		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			if isDuplicateKeyError(err, constraintAppointmentSlot) {
				return ErrDoctorAlreadyBooked
			}
			u.log.Warnf("Failed to update appointment: %+v", err)
			return err
		}

		u.auditService.LogUpdate(ctx, tx, ActorFrom(ctx), entity.AuditActionAppointmentUpdate,
			entity.AuditEntityAppointment, idString(appointment.ID), oldValue, appointment.Snapshot())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// ChangeStatus looks the appointment up before parsing status, so an
// unknown id is NotFound whatever status was sent.
func (u *appointmentUsecase) ChangeStatus(ctx context.Context, id int64, status string) (*dto.AppointmentResponse, error) {
	if _, err := u.findAppointment(u.txm.DB(ctx), id); err != nil {
		return nil, err
	}
	next, err := entity.ParseAppointmentStatus(status)
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, id, next, entity.AuditActionAppointmentStatus)
}

// CancelAppointment moves the appointment to CANCELLED. Completed
// appointments get their own error instead of the generic transition one.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, entity.AppointmentStatusCancelled, entity.AuditActionAppointmentCancel)
}

func (u *appointmentUsecase) transition(ctx context.Context, id int64, next entity.AppointmentStatus, action string) (*dto.AppointmentResponse, error) {
	var appointment *entity.Appointment
	err := u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		appointment, err = u.findAppointment(tx, id)
		if err != nil {
			return err
		}

		current := appointment.Status
		if action == entity.AuditActionAppointmentCancel && appointment.IsCompleted() {
			return ErrCancelCompleted
		}
		if !current.CanTransitionTo(next) {
			return apperror.Wrap(ErrInvalidStatusTransition, "%s to %s", current, next)
		}

		appointment.Status = next
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			if isDuplicateKeyError(err, constraintAppointmentSlot) {
				return ErrDoctorAlreadyBooked
			}
			u.log.Warnf("Failed to update appointment status: %+v", err)
			return err
		}

		u.auditService.LogUpdate(ctx, tx, ActorFrom(ctx), action, entity.AuditEntityAppointment, idString(appointment.ID),
			entity.JSON{"status": current.String()}, entity.JSON{"status": next.String()})

		u.log.WithFields(logrus.Fields{
			"appointment_id": appointment.ID,
			"from":           current.String(),
			"to":             next.String(),
		}).Info("Appointment status changed")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// DeleteAppointment removes pending, confirmed or cancelled appointments.
// Completed appointments are permanent.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id int64) error {
	return u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		appointment, err := u.findAppointment(tx, id)
		if err != nil {
			return err
		}
		if appointment.IsCompleted() {
			return ErrDeleteCompleted
		}

		if err := u.appointmentRepo.Delete(tx, appointment.ID); err != nil {
			u.log.Warnf("Failed to delete appointment: %+v", err)
			return err
		}

		u.auditService.LogDelete(ctx, tx, ActorFrom(ctx), entity.AuditActionAppointmentDelete,
			entity.AuditEntityAppointment, idString(appointment.ID), appointment.Snapshot())
		return nil
	})
}

// CheckAvailability only errors on malformed input, an unknown doctor or a
// store failure. Rule violations come back as Available=false with a reason.
func (u *appointmentUsecase) CheckAvailability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	slot, err := entity.ParseSlot(req.Time)
	if err != nil {
		return nil, err
	}

	db := u.txm.DB(ctx)
	doctor, err := u.doctorRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	resp := &dto.AvailabilityResponse{
		DoctorID:  doctor.ID,
		Date:      date.Format(entity.DateLayout),
		Time:      slot,
		Available: true,
	}

	if err := checkBusinessDay(date); err != nil {
		resp.Available, resp.Reason = false, err.Error()
		return resp, nil
	}
	if err := checkSlot(slot); err != nil {
		resp.Available, resp.Reason = false, err.Error()
		return resp, nil
	}
	if err := u.checkDoctorFree(db, doctor.ID, date, slot, 0); err != nil {
		if !apperror.Is(err, apperror.KindConflict) {
			return nil, err
		}
		resp.Available, resp.Reason = false, err.Error()
	}

	return resp, nil
}

// FilterAppointments honors a single filter. Doctor beats patient, patient
// beats status, and no filter lists everything.
func (u *appointmentUsecase) FilterAppointments(ctx context.Context, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error) {
	db := u.txm.DB(ctx)

	var (
		appointments []entity.Appointment
		err          error
	)
	switch {
	case req.DoctorID != nil:
		appointments, err = u.appointmentRepo.FindByDoctor(db, *req.DoctorID)
	case req.PatientID != nil:
		appointments, err = u.appointmentRepo.FindByPatient(db, *req.PatientID)
	case req.Status != nil:
		status, parseErr := entity.ParseAppointmentStatus(*req.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		appointments, err = u.appointmentRepo.FindByStatus(db, status)
	default:
		appointments, err = u.appointmentRepo.FindAll(db)
	}
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListSlots() *dto.SlotListResponse {
	slots := make([]string, len(entity.AppointmentSlots))
	copy(slots, entity.AppointmentSlots)
	return &dto.SlotListResponse{Slots: slots}
}

func (u *appointmentUsecase) findAppointment(tx *gorm.DB, id int64) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

func (u *appointmentUsecase) checkDoctorFree(db *gorm.DB, doctorID int64, date time.Time, slot string, excludeID int64) error {
	conflict, err := u.appointmentRepo.FindConflicting(db, doctorID, date, slot, excludeID)
	if err != nil {
		u.log.Warnf("Failed to check doctor availability: %+v", err)
		return err
	}
	if conflict != nil {
		return apperror.Wrap(ErrDoctorAlreadyBooked, "%s at %s is taken", date.Format(entity.DateLayout), slot)
	}
	return nil
}

func checkBusinessDay(date time.Time) error {
	if !entity.IsBusinessDay(date) {
		return apperror.Wrap(ErrWeekendAppointment, "%s is a %s", date.Format(entity.DateLayout), date.Weekday())
	}
	return nil
}

func checkSlot(slot string) error {
	if !entity.IsValidSlot(slot) {
		return apperror.Wrap(ErrInvalidTimeSlot, "%s", slot)
	}
	return nil
}
