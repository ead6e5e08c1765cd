package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-medical-appointment/config"
	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultSpecialties = []entity.Specialty{
	{Name: "General Practice", Description: "Primary care and routine check-ups"},
	{Name: "Cardiology", Description: "Heart and blood vessels"},
	{Name: "Dermatology", Description: "Skin, hair and nails"},
	{Name: "Neurology", Description: "Brain and nervous system"},
	{Name: "Pediatrics", Description: "Children and adolescents"},
	{Name: "Orthopedics", Description: "Bones, joints and muscles"},
	{Name: "Ophthalmology", Description: "Eyes and vision"},
	{Name: "Psychiatry", Description: "Mental health"},
}

// SeedOptions controls how many fake records are generated.
type SeedOptions struct {
	Doctors  int
	Patients int
}

// Seeder fills an empty database with the staff roles, the bootstrap
// administrator, the specialty catalog and demo doctors and patients.
// Running it twice does not duplicate roles, the admin or specialties.
type Seeder struct {
	db  *gorm.DB
	cfg config.AdminConfig
	log *logrus.Logger
}

func NewSeeder(db *gorm.DB, cfg config.AdminConfig, log *logrus.Logger) *Seeder {
	return &Seeder{db: db, cfg: cfg, log: log}
}

func (s *Seeder) Run(opts SeedOptions) error {
	gofakeit.Seed(time.Now().UnixNano())

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.seedRoles(tx); err != nil {
			return fmt.Errorf("seed roles: %w", err)
		}
		if err := s.seedAdmin(tx); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		specialties, err := s.seedSpecialties(tx)
		if err != nil {
			return fmt.Errorf("seed specialties: %w", err)
		}
		if err := s.seedDoctors(tx, opts.Doctors, specialties); err != nil {
			return fmt.Errorf("seed doctors: %w", err)
		}
		if err := s.seedPatients(tx, opts.Patients); err != nil {
			return fmt.Errorf("seed patients: %w", err)
		}
		return nil
	})
}

func (s *Seeder) seedRoles(tx *gorm.DB) error {
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "Clinic administrator"},
		{ID: entity.RoleIDStaff, RoleName: entity.RoleStaff, Description: "Front desk staff"},
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit("Users").Create(&roles).Error; err != nil {
		return err
	}
	// Explicit ids leave the serial sequence behind.
	return tx.Exec("SELECT setval(pg_get_serial_sequence('roles', 'id'), (SELECT MAX(id) FROM roles))").Error
}

func (s *Seeder) seedAdmin(tx *gorm.DB) error {
	if s.cfg.Email == "" || s.cfg.Password == "" {
		s.log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	userRepo := repository.NewUserRepository()
	existing, err := userRepo.FindByEmail(tx, s.cfg.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		s.log.WithField("email", existing.Email).Info("Admin user already exists")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		RoleID:   entity.RoleIDAdmin,
		Email:    strings.ToLower(strings.TrimSpace(s.cfg.Email)),
		Password: string(hashed),
		FullName: s.cfg.FullName,
	}
	if err := userRepo.Create(tx, admin); err != nil {
		return err
	}

	s.log.WithField("email", admin.Email).Info("Admin user created")
	return nil
}

func (s *Seeder) seedSpecialties(tx *gorm.DB) ([]entity.Specialty, error) {
	specialtyRepo := repository.NewSpecialtyRepository()

	for _, sp := range defaultSpecialties {
		exists, err := specialtyRepo.ExistsByName(tx, sp.Name, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		specialty := sp
		if err := specialtyRepo.Create(tx, &specialty); err != nil {
			return nil, err
		}
	}

	specialties, err := specialtyRepo.FindAll(tx)
	if err != nil {
		return nil, err
	}
	if len(specialties) == 0 {
		return nil, errors.New("specialty catalog is empty")
	}

	s.log.Infof("Specialties seeded: %d", len(specialties))
	return specialties, nil
}

func (s *Seeder) seedDoctors(tx *gorm.DB, count int, specialties []entity.Specialty) error {
	doctorRepo := repository.NewDoctorRepository()
	doctorSpecialtyRepo := repository.NewDoctorSpecialtyRepository()

	created := 0
	for i := 0; i < count; i++ {
		doctor := &entity.Doctor{
			FirstName:   gofakeit.FirstName(),
			LastName:    gofakeit.LastName(),
			PhoneNumber: gofakeit.Phone(),
			Email:       fakeEmail("dr", i),
		}

		exists, err := doctorRepo.ExistsByEmail(tx, doctor.Email, 0)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := doctorRepo.Create(tx, doctor); err != nil {
			return err
		}

		// One or two distinct specialties per doctor.
		first := gofakeit.Number(0, len(specialties)-1)
		picked := []int{first}
		if len(specialties) > 1 && gofakeit.Bool() {
			picked = append(picked, (first+gofakeit.Number(1, len(specialties)-1))%len(specialties))
		}
		for _, idx := range picked {
			assignment := &entity.DoctorSpecialty{DoctorID: doctor.ID, SpecialtyID: specialties[idx].ID}
			if err := doctorSpecialtyRepo.Create(tx, assignment); err != nil {
				return err
			}
		}
		created++
	}

	s.log.Infof("Doctors seeded: %d/%d", created, count)
	return nil
}

func (s *Seeder) seedPatients(tx *gorm.DB, count int) error {
	patientRepo := repository.NewPatientRepository()
	now := time.Now().UTC()

	created := 0
	for i := 0; i < count; i++ {
		birth := gofakeit.DateRange(now.AddDate(-90, 0, 0), now.AddDate(-1, 0, 0))
		patient := &entity.Patient{
			FirstName:   gofakeit.FirstName(),
			LastName:    gofakeit.LastName(),
			BirthDate:   time.Date(birth.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC),
			PhoneNumber: gofakeit.Phone(),
			Email:       fakeEmail("patient", i),
		}

		exists, err := patientRepo.ExistsByEmail(tx, patient.Email, 0)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := patientRepo.Create(tx, patient); err != nil {
			return err
		}
		created++
	}

	s.log.Infof("Patients seeded: %d/%d", created, count)
	return nil
}

// fakeEmail builds a unique-per-run address from a fake username.
func fakeEmail(prefix string, i int) string {
	local := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.ToLower(gofakeit.Username()))
	return fmt.Sprintf("%s.%s.%d@%s", prefix, local, i, gofakeit.DomainName())
}
