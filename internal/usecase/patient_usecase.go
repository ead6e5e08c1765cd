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

const maxPatientAge = 150

var (
	ErrPatientNotFound        = apperror.NotFound("patient not found")
	ErrPatientEmailExists     = apperror.Conflict("a patient with this email already exists")
	ErrBirthDateNotInPast     = apperror.InvalidRequest("birth date must be in the past")
	ErrBirthDateTooOld        = apperror.InvalidRequest("age cannot exceed 150 years")
	ErrPatientHasAppointments = apperror.Conflict("patient has appointments and cannot be deleted")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
	SearchPatients(ctx context.Context, term string) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id int64) error
}

type patientUsecase struct {
	txm             repository.TxManager
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewPatientUsecase(
	txm repository.TxManager,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		txm:             txm,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		now:             time.Now,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	birthDate, err := u.parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		BirthDate:   birthDate,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       strings.TrimSpace(req.Email),
	}

	err = u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := u.patientRepo.ExistsByEmail(tx, patient.Email, 0)
		if err != nil {
			u.log.Warnf("Failed to check patient email: %+v", err)
			return err
		}
		if exists {
			return ErrPatientEmailExists
		}

		if err := u.patientRepo.Create(tx, patient); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrPatientEmailExists
			}
			u.log.Warnf("Failed to create patient: %+v", err)
			return err
		}

		u.auditService.LogCreate(ctx, tx, ActorFrom(ctx), entity.AuditActionPatientCreate,
			entity.AuditEntityPatient, idString(patient.ID), patient)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient, u.now()), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.txm.DB(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient, u.now()), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.txm.DB(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients, u.now()),
		Total:    len(patients),
	}, nil
}

// SearchPatients matches first or last name ignoring case. A blank term
// lists every patient.
func (u *patientUsecase) SearchPatients(ctx context.Context, term string) (*dto.PatientListResponse, error) {
	if strings.TrimSpace(term) == "" {
		return u.ListPatients(ctx)
	}

	patients, err := u.patientRepo.Search(u.txm.DB(ctx), term)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients, u.now()),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	var patient *entity.Patient
	err := u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		patient, err = u.patientRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		oldValue := *patient

		if req.FirstName != nil {
			patient.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			patient.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.PhoneNumber != nil {
			patient.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
		}
		if req.BirthDate != nil {
			birthDate, err := u.parseBirthDate(*req.BirthDate)
			if err != nil {
				return err
			}
			patient.BirthDate = birthDate
		}
		if req.Email != nil && !strings.EqualFold(strings.TrimSpace(*req.Email), patient.Email) {
			email := strings.TrimSpace(*req.Email)
			exists, err := u.patientRepo.ExistsByEmail(tx, email, patient.ID)
			if err != nil {
				u.log.Warnf("Failed to check patient email: %+v", err)
				return err
			}
			if exists {
				return ErrPatientEmailExists
			}
			patient.Email = email
		}

		if err := u.patientRepo.Update(tx, patient); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrPatientEmailExists
			}
			u.log.Warnf("Failed to update patient: %+v", err)
			return err
		}

		u.auditService.LogUpdate(ctx, tx, ActorFrom(ctx), entity.AuditActionPatientUpdate,
			entity.AuditEntityPatient, idString(patient.ID), oldValue, patient)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient, u.now()), nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, id int64) error {
	return u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		count, err := u.appointmentRepo.CountByPatient(tx, patient.ID)
		if err != nil {
			u.log.Warnf("Failed to count patient appointments: %+v", err)
			return err
		}
		if count > 0 {
			return apperror.Wrap(ErrPatientHasAppointments, "%d appointment(s)", count)
		}

		if err := u.patientRepo.Delete(tx, patient.ID); err != nil {
			u.log.Warnf("Failed to delete patient: %+v", err)
			return err
		}

		u.auditService.LogDelete(ctx, tx, ActorFrom(ctx), entity.AuditActionPatientDelete,
			entity.AuditEntityPatient, idString(patient.ID), patient)
		return nil
	})
}

func (u *patientUsecase) parseBirthDate(value string) (time.Time, error) {
	birthDate, err := entity.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}

	now := u.now()
	if !birthDate.Before(entity.DateOnly(now)) {
		return time.Time{}, ErrBirthDateNotInPast
	}
	if (&entity.Patient{BirthDate: birthDate}).AgeAt(now) > maxPatientAge {
		return time.Time{}, ErrBirthDateTooOld
	}
	return birthDate, nil
}
