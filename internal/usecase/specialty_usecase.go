package usecase

import (
	"context"
	"strings"

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
	ErrSpecialtyNotFound   = apperror.NotFound("specialty not found")
	ErrSpecialtyNameExists = apperror.Conflict("a specialty with this name already exists")
	ErrSpecialtyInUse      = apperror.Conflict("specialty is still in use and cannot be deleted")
)

type SpecialtyUsecase interface {
	CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetSpecialty(ctx context.Context, id int64) (*dto.SpecialtyResponse, error)
	ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	UpdateSpecialty(ctx context.Context, id int64, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	DeleteSpecialty(ctx context.Context, id int64) error
}

type specialtyUsecase struct {
	txm                 repository.TxManager
	log                 *logrus.Logger
	specialtyRepo       repository.SpecialtyRepository
	doctorSpecialtyRepo repository.DoctorSpecialtyRepository
	appointmentRepo     repository.AppointmentRepository
	auditService        service.AuditService
}

func NewSpecialtyUsecase(
	txm repository.TxManager,
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
	doctorSpecialtyRepo repository.DoctorSpecialtyRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) SpecialtyUsecase {
	return &specialtyUsecase{
		txm:                 txm,
		log:                 log,
		specialtyRepo:       specialtyRepo,
		doctorSpecialtyRepo: doctorSpecialtyRepo,
		appointmentRepo:     appointmentRepo,
		auditService:        auditService,
	}
}

func (u *specialtyUsecase) CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty := &entity.Specialty{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}

	err := u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := u.specialtyRepo.ExistsByName(tx, specialty.Name, 0)
		if err != nil {
			u.log.Warnf("Failed to check specialty name: %+v", err)
			return err
		}
		if exists {
			return apperror.Wrap(ErrSpecialtyNameExists, "%s", specialty.Name)
		}

		if err := u.specialtyRepo.Create(tx, specialty); err != nil {
			if isDuplicateKeyError(err, "name") {
				return apperror.Wrap(ErrSpecialtyNameExists, "%s", specialty.Name)
			}
			u.log.Warnf("Failed to create specialty: %+v", err)
			return err
		}

		u.auditService.LogCreate(ctx, tx, ActorFrom(ctx), entity.AuditActionSpecialtyCreate,
			entity.AuditEntitySpecialty, idString(specialty.ID), specialty)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty, 0), nil
}

func (u *specialtyUsecase) GetSpecialty(ctx context.Context, id int64) (*dto.SpecialtyResponse, error) {
	db := u.txm.DB(ctx)
	specialty, err := u.specialtyRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	doctorCount, err := u.doctorSpecialtyRepo.CountBySpecialty(db, specialty.ID)
	if err != nil {
		u.log.Warnf("Failed to count specialty doctors: %+v", err)
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty, doctorCount), nil
}

func (u *specialtyUsecase) ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	db := u.txm.DB(ctx)
	specialties, err := u.specialtyRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to find all specialties: %+v", err)
		return nil, err
	}

	counts, err := u.doctorSpecialtyRepo.CountGroupedBySpecialty(db)
	if err != nil {
		u.log.Warnf("Failed to count specialty doctors: %+v", err)
		return nil, err
	}

	return &dto.SpecialtyListResponse{
		Specialties: converter.SpecialtiesToResponses(specialties, counts),
		Total:       len(specialties),
	}, nil
}

func (u *specialtyUsecase) UpdateSpecialty(ctx context.Context, id int64, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	var (
		specialty   *entity.Specialty
		doctorCount int64
	)
	err := u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		specialty, err = u.specialtyRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find specialty: %+v", err)
			return err
		}
		if specialty == nil {
			return ErrSpecialtyNotFound
		}

		oldValue := *specialty

		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			name := strings.TrimSpace(*req.Name)
			exists, err := u.specialtyRepo.ExistsByName(tx, name, specialty.ID)
			if err != nil {
				u.log.Warnf("Failed to check specialty name: %+v", err)
				return err
			}
			if exists {
				return apperror.Wrap(ErrSpecialtyNameExists, "%s", name)
			}
			specialty.Name = name
		}
		if req.Description != nil {
			specialty.Description = strings.TrimSpace(*req.Description)
		}

		if err := u.specialtyRepo.Update(tx, specialty); err != nil {
			if isDuplicateKeyError(err, "name") {
				return apperror.Wrap(ErrSpecialtyNameExists, "%s", specialty.Name)
			}
			u.log.Warnf("Failed to update specialty: %+v", err)
			return err
		}

		doctorCount, err = u.doctorSpecialtyRepo.CountBySpecialty(tx, specialty.ID)
		if err != nil {
			u.log.Warnf("Failed to count specialty doctors: %+v", err)
			return err
		}

		u.auditService.LogUpdate(ctx, tx, ActorFrom(ctx), entity.AuditActionSpecialtyUpdate,
			entity.AuditEntitySpecialty, idString(specialty.ID), oldValue, specialty)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty, doctorCount), nil
}

// DeleteSpecialty is refused while any doctor practices the specialty or
// any appointment references it.
func (u *specialtyUsecase) DeleteSpecialty(ctx context.Context, id int64) error {
	return u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		specialty, err := u.specialtyRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find specialty: %+v", err)
			return err
		}
		if specialty == nil {
			return ErrSpecialtyNotFound
		}

		doctorCount, err := u.doctorSpecialtyRepo.CountBySpecialty(tx, specialty.ID)
		if err != nil {
			u.log.Warnf("Failed to count specialty doctors: %+v", err)
			return err
		}
		if doctorCount > 0 {
			return apperror.Wrap(ErrSpecialtyInUse, "%d doctor(s) assigned", doctorCount)
		}

		appointmentCount, err := u.appointmentRepo.CountBySpecialty(tx, specialty.ID)
		if err != nil {
			u.log.Warnf("Failed to count specialty appointments: %+v", err)
			return err
		}
		if appointmentCount > 0 {
			return apperror.Wrap(ErrSpecialtyInUse, "%d appointment(s) reference it", appointmentCount)
		}

		if err := u.specialtyRepo.Delete(tx, specialty.ID); err != nil {
			u.log.Warnf("Failed to delete specialty: %+v", err)
			return err
		}

		u.auditService.LogDelete(ctx, tx, ActorFrom(ctx), entity.AuditActionSpecialtyDelete,
			entity.AuditEntitySpecialty, idString(specialty.ID), specialty)
		return nil
	})
}
