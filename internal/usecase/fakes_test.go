package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/internal/service"
	"go-medical-appointment/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// memStore backs every fake repository. Transactions are not simulated:
// writes made before a failing step stay visible.
type memStore struct {
	nextID       int64
	patients     map[int64]entity.Patient
	doctors      map[int64]entity.Doctor
	specialties  map[int64]entity.Specialty
	assignments  map[int64]entity.DoctorSpecialty
	appointments map[int64]entity.Appointment
	users        map[uuid.UUID]entity.User
	roles        map[int]entity.Role

	// hideConflicts makes FindConflicting miss so the unique index is hit.
	hideConflicts bool
}

func newMemStore() *memStore {
	return &memStore{
		patients:     map[int64]entity.Patient{},
		doctors:      map[int64]entity.Doctor{},
		specialties:  map[int64]entity.Specialty{},
		assignments:  map[int64]entity.DoctorSpecialty{},
		appointments: map[int64]entity.Appointment{},
		users:        map[uuid.UUID]entity.User{},
		roles: map[int]entity.Role{
			entity.RoleIDAdmin: {ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
			entity.RoleIDStaff: {ID: entity.RoleIDStaff, RoleName: entity.RoleStaff},
		},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeTxManager struct{}

func (fakeTxManager) DB(ctx context.Context) *gorm.DB { return nil }

func (fakeTxManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// Patients

type fakePatientRepo struct{ s *memStore }

func (r fakePatientRepo) Create(db *gorm.DB, p *entity.Patient) error {
	p.ID = r.s.id()
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	r.s.patients[p.ID] = *p
	return nil
}

func (r fakePatientRepo) Update(db *gorm.DB, p *entity.Patient) error {
	p.UpdatedAt = time.Now()
	r.s.patients[p.ID] = *p
	return nil
}

func (r fakePatientRepo) Delete(db *gorm.DB, id int64) error {
	delete(r.s.patients, id)
	return nil
}

func (r fakePatientRepo) FindByID(db *gorm.DB, id int64) (*entity.Patient, error) {
	p, ok := r.s.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r fakePatientRepo) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var out []entity.Patient
	for _, p := range r.s.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakePatientRepo) Search(db *gorm.DB, term string) ([]entity.Patient, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	all, _ := r.FindAll(db)
	var out []entity.Patient
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.FirstName), term) || strings.Contains(strings.ToLower(p.LastName), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePatientRepo) ExistsByEmail(db *gorm.DB, email string, excludeID int64) (bool, error) {
	for _, p := range r.s.patients {
		if p.ID != excludeID && strings.EqualFold(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// Doctors

type fakeDoctorRepo struct{ s *memStore }

func (r fakeDoctorRepo) Create(db *gorm.DB, d *entity.Doctor) error {
	d.ID = r.s.id()
	d.Assignments = nil
	r.s.doctors[d.ID] = *d
	return nil
}

func (r fakeDoctorRepo) Update(db *gorm.DB, d *entity.Doctor) error {
	stored := *d
	stored.Assignments = nil
	r.s.doctors[d.ID] = stored
	return nil
}

func (r fakeDoctorRepo) Delete(db *gorm.DB, id int64) error {
	delete(r.s.doctors, id)
	return nil
}

func (r fakeDoctorRepo) FindByID(db *gorm.DB, id int64) (*entity.Doctor, error) {
	d, ok := r.s.doctors[id]
	if !ok {
		return nil, nil
	}
	d.Assignments, _ = fakeDoctorSpecialtyRepo{r.s}.FindByDoctor(db, id)
	return &d, nil
}

func (r fakeDoctorRepo) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for id := range r.s.doctors {
		d, _ := r.FindByID(db, id)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeDoctorRepo) ExistsByEmail(db *gorm.DB, email string, excludeID int64) (bool, error) {
	for _, d := range r.s.doctors {
		if d.ID != excludeID && strings.EqualFold(d.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// Specialties

type fakeSpecialtyRepo struct{ s *memStore }

func (r fakeSpecialtyRepo) Create(db *gorm.DB, sp *entity.Specialty) error {
	sp.ID = r.s.id()
	r.s.specialties[sp.ID] = *sp
	return nil
}

func (r fakeSpecialtyRepo) Update(db *gorm.DB, sp *entity.Specialty) error {
	r.s.specialties[sp.ID] = *sp
	return nil
}

func (r fakeSpecialtyRepo) Delete(db *gorm.DB, id int64) error {
	delete(r.s.specialties, id)
	return nil
}

func (r fakeSpecialtyRepo) FindByID(db *gorm.DB, id int64) (*entity.Specialty, error) {
	sp, ok := r.s.specialties[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r fakeSpecialtyRepo) FindByIDs(db *gorm.DB, ids []int64) ([]entity.Specialty, error) {
	var out []entity.Specialty
	for _, id := range ids {
		if sp, ok := r.s.specialties[id]; ok {
			out = append(out, sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeSpecialtyRepo) FindAll(db *gorm.DB) ([]entity.Specialty, error) {
	var out []entity.Specialty
	for _, sp := range r.s.specialties {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r fakeSpecialtyRepo) ExistsByName(db *gorm.DB, name string, excludeID int64) (bool, error) {
	for _, sp := range r.s.specialties {
		if sp.ID != excludeID && strings.EqualFold(sp.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// Doctor-specialty assignments

type fakeDoctorSpecialtyRepo struct{ s *memStore }

func (r fakeDoctorSpecialtyRepo) Create(db *gorm.DB, a *entity.DoctorSpecialty) error {
	if ok, _ := r.Exists(db, a.DoctorID, a.SpecialtyID); ok {
		return uniqueViolation(constraintDoctorSpecialty)
	}
	a.ID = r.s.id()
	a.AssignedAt = time.Now()
	stored := *a
	stored.Specialty = entity.Specialty{}
	r.s.assignments[a.ID] = stored
	return nil
}

func (r fakeDoctorSpecialtyRepo) Delete(db *gorm.DB, doctorID, specialtyID int64) (int64, error) {
	var affected int64
	for id, a := range r.s.assignments {
		if a.DoctorID == doctorID && a.SpecialtyID == specialtyID {
			delete(r.s.assignments, id)
			affected++
		}
	}
	return affected, nil
}

func (r fakeDoctorSpecialtyRepo) DeleteByDoctor(db *gorm.DB, doctorID int64) error {
	for id, a := range r.s.assignments {
		if a.DoctorID == doctorID {
			delete(r.s.assignments, id)
		}
	}
	return nil
}

func (r fakeDoctorSpecialtyRepo) Exists(db *gorm.DB, doctorID, specialtyID int64) (bool, error) {
	for _, a := range r.s.assignments {
		if a.DoctorID == doctorID && a.SpecialtyID == specialtyID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeDoctorSpecialtyRepo) FindByDoctor(db *gorm.DB, doctorID int64) ([]entity.DoctorSpecialty, error) {
	var out []entity.DoctorSpecialty
	for _, a := range r.s.assignments {
		if a.DoctorID == doctorID {
			a.Specialty = r.s.specialties[a.SpecialtyID]
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeDoctorSpecialtyRepo) CountBySpecialty(db *gorm.DB, specialtyID int64) (int64, error) {
	var n int64
	for _, a := range r.s.assignments {
		if a.SpecialtyID == specialtyID {
			n++
		}
	}
	return n, nil
}

func (r fakeDoctorSpecialtyRepo) CountGroupedBySpecialty(db *gorm.DB) (map[int64]int64, error) {
	counts := map[int64]int64{}
	for _, a := range r.s.assignments {
		counts[a.SpecialtyID]++
	}
	return counts, nil
}

// Appointments

type fakeAppointmentRepo struct{ s *memStore }

func (r fakeAppointmentRepo) slotTaken(a *entity.Appointment) bool {
	if a.IsCancelled() {
		return false
	}
	for _, other := range r.s.appointments {
		if other.ID != a.ID && !other.IsCancelled() && other.DoctorID == a.DoctorID &&
			other.DateString() == a.DateString() && other.AppointmentTime == a.AppointmentTime {
			return true
		}
	}
	return false
}

func (r fakeAppointmentRepo) store(a *entity.Appointment) {
	stored := *a
	stored.Patient, stored.Doctor, stored.Specialty = entity.Patient{}, entity.Doctor{}, entity.Specialty{}
	r.s.appointments[a.ID] = stored
}

func (r fakeAppointmentRepo) Create(db *gorm.DB, a *entity.Appointment) error {
	if r.slotTaken(a) {
		return uniqueViolation(constraintAppointmentSlot)
	}
	a.ID = r.s.id()
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	r.store(a)
	return nil
}

func (r fakeAppointmentRepo) Update(db *gorm.DB, a *entity.Appointment) error {
	if r.slotTaken(a) {
		return uniqueViolation(constraintAppointmentSlot)
	}
	a.UpdatedAt = time.Now()
	r.store(a)
	return nil
}

func (r fakeAppointmentRepo) Delete(db *gorm.DB, id int64) error {
	delete(r.s.appointments, id)
	return nil
}

func (r fakeAppointmentRepo) withDetails(a entity.Appointment) entity.Appointment {
	a.Patient = r.s.patients[a.PatientID]
	a.Doctor = r.s.doctors[a.DoctorID]
	a.Specialty = r.s.specialties[a.SpecialtyID]
	return a
}

func (r fakeAppointmentRepo) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, nil
	}
	a = r.withDetails(a)
	return &a, nil
}

func (r fakeAppointmentRepo) where(keep func(entity.Appointment) bool) []entity.Appointment {
	var out []entity.Appointment
	for _, a := range r.s.appointments {
		if keep(a) {
			out = append(out, r.withDetails(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakeAppointmentRepo) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	return r.where(func(entity.Appointment) bool { return true }), nil
}

func (r fakeAppointmentRepo) FindByDoctor(db *gorm.DB, doctorID int64) ([]entity.Appointment, error) {
	return r.where(func(a entity.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r fakeAppointmentRepo) FindByPatient(db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	return r.where(func(a entity.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r fakeAppointmentRepo) FindByStatus(db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	return r.where(func(a entity.Appointment) bool { return a.Status == status }), nil
}

func (r fakeAppointmentRepo) FindConflicting(db *gorm.DB, doctorID int64, date time.Time, slot string, excludeID int64) (*entity.Appointment, error) {
	if r.s.hideConflicts {
		return nil, nil
	}
	day := date.Format(entity.DateLayout)
	for _, a := range r.s.appointments {
		if a.ID != excludeID && a.DoctorID == doctorID && !a.IsCancelled() &&
			a.DateString() == day && a.AppointmentTime == slot {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r fakeAppointmentRepo) count(keep func(entity.Appointment) bool) int64 {
	var n int64
	for _, a := range r.s.appointments {
		if keep(a) {
			n++
		}
	}
	return n
}

func (r fakeAppointmentRepo) CountByDoctor(db *gorm.DB, doctorID int64) (int64, error) {
	return r.count(func(a entity.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r fakeAppointmentRepo) CountByPatient(db *gorm.DB, patientID int64) (int64, error) {
	return r.count(func(a entity.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r fakeAppointmentRepo) CountBySpecialty(db *gorm.DB, specialtyID int64) (int64, error) {
	return r.count(func(a entity.Appointment) bool { return a.SpecialtyID == specialtyID }), nil
}

// Users and roles

type fakeUserRepo struct{ s *memStore }

func (r fakeUserRepo) Create(db *gorm.DB, u *entity.User) error {
	u.ID = uuid.New()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	stored := *u
	stored.Role = entity.Role{}
	r.s.users[u.ID] = stored
	return nil
}

func (r fakeUserRepo) withRole(u entity.User) *entity.User {
	u.Role = r.s.roles[u.RoleID]
	return &u
}

func (r fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return r.withRole(u), nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return r.withRole(u), nil
}

type fakeRoleRepo struct{ s *memStore }

func (r fakeRoleRepo) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	role, ok := r.s.roles[id]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r fakeRoleRepo) FindByName(db *gorm.DB, name string) (*entity.Role, error) {
	for _, role := range r.s.roles {
		if role.RoleName == name {
			found := role
			return &found, nil
		}
	}
	return nil, nil
}

// Audit and tokens

type auditEntry struct {
	action   string
	userID   *uuid.UUID
	entityID string
}

type fakeAuditService struct {
	entries []auditEntry
}

func (f *fakeAuditService) record(userID *uuid.UUID, action, entityID string) {
	f.entries = append(f.entries, auditEntry{action: action, userID: userID, entityID: entityID})
}

func (f *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) {
	f.record(userID, action, entityID)
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	f.record(userID, action, entityID)
}

func (f *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) {
	f.record(userID, action, entityID)
}

func (f *fakeAuditService) actions() []string {
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.action
	}
	return out
}

type fakeTokenStore struct {
	keys map[string]time.Duration
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{keys: map[string]time.Duration{}}
}

func (f *fakeTokenStore) Store(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	f.keys[service.TokenKey(tokenType, userID, tokenID)] = ttl
	return nil
}

func (f *fakeTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	_, ok := f.keys[service.TokenKey(tokenType, userID, tokenID)]
	return ok, nil
}

func (f *fakeTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	delete(f.keys, service.TokenKey(tokenType, userID, tokenID))
	return nil
}

func (f *fakeTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for key := range f.keys {
		if strings.Contains(key, userID.String()) {
			delete(f.keys, key)
		}
	}
	return nil
}

// Fixtures

func (s *memStore) addPatient(first, last, email string) entity.Patient {
	p := entity.Patient{
		FirstName:   first,
		LastName:    last,
		Email:       email,
		PhoneNumber: "5550100",
		BirthDate:   time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
	}
	_ = fakePatientRepo{s}.Create(nil, &p)
	return p
}

func (s *memStore) addSpecialty(name string) entity.Specialty {
	sp := entity.Specialty{Name: name}
	_ = fakeSpecialtyRepo{s}.Create(nil, &sp)
	return sp
}

func (s *memStore) addDoctor(first, last, email string, specialtyIDs ...int64) entity.Doctor {
	d := entity.Doctor{FirstName: first, LastName: last, Email: email, PhoneNumber: "5550199"}
	_ = fakeDoctorRepo{s}.Create(nil, &d)
	for _, id := range specialtyIDs {
		_ = fakeDoctorSpecialtyRepo{s}.Create(nil, &entity.DoctorSpecialty{DoctorID: d.ID, SpecialtyID: id})
	}
	return d
}

func (s *memStore) addAppointment(patientID, doctorID, specialtyID int64, date, slot string, status entity.AppointmentStatus) entity.Appointment {
	day, _ := entity.ParseDate(date)
	a := entity.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		SpecialtyID:     specialtyID,
		AppointmentDate: day,
		AppointmentTime: slot,
		Status:          status,
	}
	a.ID = s.id()
	s.appointments[a.ID] = a
	return a
}
