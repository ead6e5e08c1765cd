package usecase

import (
	"context"

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
	ErrSpecialtyAlreadyAssigned = apperror.Conflict("doctor already has this specialty assigned")
	ErrSpecialtyNotAssigned     = apperror.NotFound("doctor does not have this specialty assigned")
)

// DoctorSpecialtyUsecase is the registry of which doctor practices which
// specialty. A pair is assigned at most once.
type DoctorSpecialtyUsecase interface {
	Assign(ctx context.Context, req *dto.AssignSpecialtyRequest) (*dto.DoctorSpecialtyResponse, error)
	Unassign(ctx context.Context, doctorID, specialtyID int64) error
	HasSpecialty(ctx context.Context, doctorID, specialtyID int64) (bool, error)
	ListByDoctor(ctx context.Context, doctorID int64) (*dto.DoctorSpecialtyListResponse, error)
}

type doctorSpecialtyUsecase struct {
	txm                 repository.TxManager
	log                 *logrus.Logger
	doctorRepo          repository.DoctorRepository
	specialtyRepo       repository.SpecialtyRepository
	doctorSpecialtyRepo repository.DoctorSpecialtyRepository
	auditService        service.AuditService
}

func NewDoctorSpecialtyUsecase(
	txm repository.TxManager,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	doctorSpecialtyRepo repository.DoctorSpecialtyRepository,
	auditService service.AuditService,
) DoctorSpecialtyUsecase {
	return &doctorSpecialtyUsecase{
		txm:                 txm,
		log:                 log,
		doctorRepo:          doctorRepo,
		specialtyRepo:       specialtyRepo,
		doctorSpecialtyRepo: doctorSpecialtyRepo,
		auditService:        auditService,
	}
}

func (u *doctorSpecialtyUsecase) Assign(ctx context.Context, req *dto.AssignSpecialtyRequest) (*dto.DoctorSpecialtyResponse, error) {
	var assignment *entity.DoctorSpecialty
	err := u.txm.Transaction(ctx, func(tx *gorm.DB) error {
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

		assigned, err := u.doctorSpecialtyRepo.Exists(tx, doctor.ID, specialty.ID)
		if err != nil {
			u.log.Warnf("Failed to check doctor specialty: %+v", err)
			return err
		}
		if assigned {
			return ErrSpecialtyAlreadyAssigned
		}

		assignment = &entity.DoctorSpecialty{DoctorID: doctor.ID, SpecialtyID: specialty.ID}
		if err := u.doctorSpecialtyRepo.Create(tx, assignment); err != nil {
			if isDuplicateKeyError(err, constraintDoctorSpecialty) {
				return ErrSpecialtyAlreadyAssigned
			}
			u.log.Warnf("Failed to assign specialty: %+v", err)
			return err
		}
		assignment.Specialty = *specialty

		u.auditService.LogCreate(ctx, tx, ActorFrom(ctx), entity.AuditActionSpecialtyAssign,
			entity.AuditEntityAssignment, idString(assignment.ID),
			entity.JSON{"doctor_id": doctor.ID, "specialty_id": specialty.ID})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.DoctorSpecialtyToResponse(assignment), nil
}

func (u *doctorSpecialtyUsecase) Unassign(ctx context.Context, doctorID, specialtyID int64) error {
	return u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		affected, err := u.doctorSpecialtyRepo.Delete(tx, doctorID, specialtyID)
		if err != nil {
			u.log.Warnf("Failed to unassign specialty: %+v", err)
			return err
		}
		if affected == 0 {
			return ErrSpecialtyNotAssigned
		}

		u.auditService.LogDelete(ctx, tx, ActorFrom(ctx), entity.AuditActionSpecialtyUnassign,
			entity.AuditEntityAssignment, idString(doctorID)+":"+idString(specialtyID),
			entity.JSON{"doctor_id": doctorID, "specialty_id": specialtyID})
		return nil
	})
}

func (u *doctorSpecialtyUsecase) HasSpecialty(ctx context.Context, doctorID, specialtyID int64) (bool, error) {
	assigned, err := u.doctorSpecialtyRepo.Exists(u.txm.DB(ctx), doctorID, specialtyID)
	if err != nil {
		u.log.Warnf("Failed to check doctor specialty: %+v", err)
		return false, err
	}
	return assigned, nil
}

func (u *doctorSpecialtyUsecase) ListByDoctor(ctx context.Context, doctorID int64) (*dto.DoctorSpecialtyListResponse, error) {
	db := u.txm.DB(ctx)
	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	assignments, err := u.doctorSpecialtyRepo.FindByDoctor(db, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor specialties: %+v", err)
		return nil, err
	}

	return &dto.DoctorSpecialtyListResponse{
		Assignments: converter.DoctorSpecialtiesToResponses(assignments),
		Total:       len(assignments),
	}, nil
}
