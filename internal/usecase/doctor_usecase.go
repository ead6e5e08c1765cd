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
	ErrDoctorNotFound        = apperror.NotFound("doctor not found")
	ErrDoctorEmailExists     = apperror.Conflict("a doctor with this email already exists")
	ErrNoValidSpecialties    = apperror.InvalidRequest("at least one existing specialty is required")
	ErrDoctorHasAppointments = apperror.Conflict("doctor has appointments and cannot be deleted")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, id int64) error
}

type doctorUsecase struct {
	txm                 repository.TxManager
	log                 *logrus.Logger
	doctorRepo          repository.DoctorRepository
	specialtyRepo       repository.SpecialtyRepository
	doctorSpecialtyRepo repository.DoctorSpecialtyRepository
	appointmentRepo     repository.AppointmentRepository
	auditService        service.AuditService
}

func NewDoctorUsecase(
	txm repository.TxManager,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	doctorSpecialtyRepo repository.DoctorSpecialtyRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		txm:                 txm,
		log:                 log,
		doctorRepo:          doctorRepo,
		specialtyRepo:       specialtyRepo,
		doctorSpecialtyRepo: doctorSpecialtyRepo,
		appointmentRepo:     appointmentRepo,
		auditService:        auditService,
	}
}

// CreateDoctor registers the doctor together with its specialties. Unknown
// specialty ids are skipped; at least one must exist.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	var doctor *entity.Doctor
	err := u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		email := strings.TrimSpace(req.Email)
		exists, err := u.doctorRepo.ExistsByEmail(tx, email, 0)
		if err != nil {
			u.log.Warnf("Failed to check doctor email: %+v", err)
			return err
		}
		if exists {
			return ErrDoctorEmailExists
		}

		specialties, err := u.resolveSpecialties(tx, req.SpecialtyIDs)
		if err != nil {
			return err
		}

		created := &entity.Doctor{
			FirstName:   strings.TrimSpace(req.FirstName),
			LastName:    strings.TrimSpace(req.LastName),
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
			Email:       email,
		}
		if err := u.doctorRepo.Create(tx, created); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrDoctorEmailExists
			}
			u.log.Warnf("Failed to create doctor: %+v", err)
			return err
		}

		if err := u.assign(tx, created.ID, specialties); err != nil {
			return err
		}

		doctor, err = u.reload(tx, created.ID)
		if err != nil {
			return err
		}

		u.auditService.LogCreate(ctx, tx, ActorFrom(ctx), entity.AuditActionDoctorCreate,
			entity.AuditEntityDoctor, idString(doctor.ID), converter.DoctorToResponse(doctor))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.txm.DB(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.txm.DB(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// UpdateDoctor applies the supplied fields. A non-empty SpecialtyIDs
// replaces the whole assignment set.
func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	var doctor *entity.Doctor
	err := u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		current, err := u.doctorRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return err
		}
		if current == nil {
			return ErrDoctorNotFound
		}

		oldValue := converter.DoctorToResponse(current)

		if req.FirstName != nil {
			current.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			current.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.PhoneNumber != nil {
			current.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
		}
		if req.Email != nil && !strings.EqualFold(strings.TrimSpace(*req.Email), current.Email) {
			email := strings.TrimSpace(*req.Email)
			exists, err := u.doctorRepo.ExistsByEmail(tx, email, current.ID)
			if err != nil {
				u.log.Warnf("Failed to check doctor email: %+v", err)
				return err
			}
			if exists {
				return ErrDoctorEmailExists
			}
			current.Email = email
		}

		if err := u.doctorRepo.Update(tx, current); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrDoctorEmailExists
			}
			u.log.Warnf("Failed to update doctor: %+v", err)
			return err
		}

		if len(req.SpecialtyIDs) > 0 {
			specialties, err := u.resolveSpecialties(tx, req.SpecialtyIDs)
			if err != nil {
				return err
			}
			if err := u.doctorSpecialtyRepo.DeleteByDoctor(tx, current.ID); err != nil {
				u.log.Warnf("Failed to clear doctor specialties: %+v", err)
				return err
			}
			if err := u.assign(tx, current.ID, specialties); err != nil {
				return err
			}
		}

		doctor, err = u.reload(tx, current.ID)
		if err != nil {
			return err
		}

		u.auditService.LogUpdate(ctx, tx, ActorFrom(ctx), entity.AuditActionDoctorUpdate,
			entity.AuditEntityDoctor, idString(doctor.ID), oldValue, converter.DoctorToResponse(doctor))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// DeleteDoctor is refused while appointments reference the doctor. The
// doctor's specialty assignments go with it.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id int64) error {
	return u.txm.Transaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		count, err := u.appointmentRepo.CountByDoctor(tx, doctor.ID)
		if err != nil {
			u.log.Warnf("Failed to count doctor appointments: %+v", err)
			return err
		}
		if count > 0 {
			return apperror.Wrap(ErrDoctorHasAppointments, "%d appointment(s)", count)
		}

		if err := u.doctorSpecialtyRepo.DeleteByDoctor(tx, doctor.ID); err != nil {
			u.log.Warnf("Failed to clear doctor specialties: %+v", err)
			return err
		}
		if err := u.doctorRepo.Delete(tx, doctor.ID); err != nil {
			u.log.Warnf("Failed to delete doctor: %+v", err)
			return err
		}

		u.auditService.LogDelete(ctx, tx, ActorFrom(ctx), entity.AuditActionDoctorDelete,
			entity.AuditEntityDoctor, idString(doctor.ID), converter.DoctorToResponse(doctor))
		return nil
	})
}

func (u *doctorUsecase) resolveSpecialties(tx *gorm.DB, ids []int64) ([]entity.Specialty, error) {
	seen := make(map[int64]bool, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 && !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	specialties, err := u.specialtyRepo.FindByIDs(tx, unique)
	if err != nil {
		u.log.Warnf("Failed to find specialties: %+v", err)
		return nil, err
	}
	if len(specialties) == 0 {
		return nil, ErrNoValidSpecialties
	}
	return specialties, nil
}

func (u *doctorUsecase) assign(tx *gorm.DB, doctorID int64, specialties []entity.Specialty) error {
	for _, specialty := range specialties {
		assignment := &entity.DoctorSpecialty{DoctorID: doctorID, SpecialtyID: specialty.ID}
		if err := u.doctorSpecialtyRepo.Create(tx, assignment); err != nil {
			u.log.Warnf("Failed to assign specialty: %+v", err)
			return err
		}
	}
	return nil
}

func (u *doctorUsecase) reload(tx *gorm.DB, id int64) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
