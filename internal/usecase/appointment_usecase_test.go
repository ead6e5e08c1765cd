package usecase

import (
	"context"
	"testing"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	monday   = "2026-03-02"
	tuesday  = "2026-03-03"
	saturday = "2026-03-07"
	sunday   = "2026-03-08"
)

type appointmentFixture struct {
	store       *memStore
	audit       *fakeAuditService
	uc          AppointmentUsecase
	registry    DoctorSpecialtyUsecase
	patient     entity.Patient
	other       entity.Patient
	doctor      entity.Doctor
	cardiology  entity.Specialty
	dermatology entity.Specialty
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	store := newMemStore()
	audit := &fakeAuditService{}

	f := &appointmentFixture{store: store, audit: audit}
	f.cardiology = store.addSpecialty("Cardiology")
	f.dermatology = store.addSpecialty("Dermatology")
	f.patient = store.addPatient("Lucia", "Gomez", "lucia@example.com")
	f.other = store.addPatient("Pedro", "Soto", "pedro@example.com")
	f.doctor = store.addDoctor("Ana", "Ruiz", "ana@clinic.test", f.cardiology.ID)

	f.registry = NewDoctorSpecialtyUsecase(
		fakeTxManager{},
		quietLogger(),
		fakeDoctorRepo{store},
		fakeSpecialtyRepo{store},
		fakeDoctorSpecialtyRepo{store},
		audit,
	)
	f.uc = NewAppointmentUsecase(
		fakeTxManager{},
		quietLogger(),
		fakeAppointmentRepo{store},
		fakePatientRepo{store},
		fakeDoctorRepo{store},
		fakeSpecialtyRepo{store},
		f.registry,
		audit,
	)
	return f
}

func (f *appointmentFixture) request(date, slot string) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		PatientID:       f.patient.ID,
		DoctorID:        f.doctor.ID,
		SpecialtyID:     f.cardiology.ID,
		AppointmentDate: date,
		AppointmentTime: slot,
		Reason:          "  Chest pain  ",
	}
}

func (f *appointmentFixture) create(t *testing.T, date, slot string) *dto.AppointmentResponse {
	t.Helper()
	resp, err := f.uc.CreateAppointment(context.Background(), f.request(date, slot))
	require.NoError(t, err)
	return resp
}

func TestCreateAppointment_Success(t *testing.T) {
	f := newAppointmentFixture(t)
	actor := uuid.New()
	ctx := WithActor(context.Background(), actor)

	resp, err := f.uc.CreateAppointment(ctx, f.request(monday, "09:00"))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, monday, resp.AppointmentDate)
	assert.Equal(t, "09:00", resp.AppointmentTime)
	assert.Equal(t, "Chest pain", resp.Reason)
	assert.Equal(t, "Lucia Gomez", resp.PatientName)
	assert.Equal(t, "Dr. Ana Ruiz", resp.DoctorName)
	assert.Equal(t, "Cardiology", resp.SpecialtyName)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, entity.AuditActionAppointmentCreate, f.audit.entries[0].action)
	assert.Equal(t, &actor, f.audit.entries[0].userID)
}

func TestCreateAppointment_NormalizesSeconds(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.create(t, monday, "13:00:00")

	assert.Equal(t, "13:00", resp.AppointmentTime)
}

func TestCreateAppointment_SameTripleConflicts(t *testing.T) {
	f := newAppointmentFixture(t)
	first := f.create(t, monday, "09:00")

	req := f.request(monday, "09:00")
	req.PatientID = f.other.ID
	_, err := f.uc.CreateAppointment(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDoctorAlreadyBooked)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	got, err := f.uc.GetAppointment(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status)
	assert.Len(t, f.store.appointments, 1)
}

func TestCreateAppointment_CancelledSlotCanBeRebooked(t *testing.T) {
	f := newAppointmentFixture(t)
	first := f.create(t, monday, "10:00")
	_, err := f.uc.CancelAppointment(context.Background(), first.ID)
	require.NoError(t, err)

	second := f.create(t, monday, "10:00")

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateAppointment_UniqueIndexBackstop(t *testing.T) {
	f := newAppointmentFixture(t)
	f.create(t, monday, "11:00")
	f.store.hideConflicts = true

	_, err := f.uc.CreateAppointment(context.Background(), f.request(monday, "11:00"))

	assert.ErrorIs(t, err, ErrDoctorAlreadyBooked)
}

func TestCreateAppointment_Weekend(t *testing.T) {
	f := newAppointmentFixture(t)

	for _, day := range []string{saturday, sunday} {
		_, err := f.uc.CreateAppointment(context.Background(), f.request(day, "09:00"))
		require.Error(t, err, day)
		assert.ErrorIs(t, err, ErrWeekendAppointment)
		assert.Equal(t, apperror.KindInvalidRequest, apperror.KindOf(err))
	}
}

func TestCreateAppointment_InvalidSlots(t *testing.T) {
	f := newAppointmentFixture(t)

	for _, slot := range []string{"07:00", "08:30", "12:00", "17:00", "18:00", "08:00:30", "09:59:59"} {
		_, err := f.uc.CreateAppointment(context.Background(), f.request(monday, slot))
		require.Error(t, err, slot)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		assert.Equal(t, apperror.KindInvalidRequest, apperror.KindOf(err))
	}
}

func TestCreateAppointment_LunchGapMentioned(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.uc.CreateAppointment(context.Background(), f.request(monday, "12:00"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lunch")
}

func TestCreateAppointment_MissingReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *dto.CreateAppointmentRequest)
		want   error
	}{
		{"patient", func(req *dto.CreateAppointmentRequest) { req.PatientID = 999 }, ErrPatientNotFound},
		{"doctor", func(req *dto.CreateAppointmentRequest) { req.DoctorID = 999 }, ErrDoctorNotFound},
		{"specialty", func(req *dto.CreateAppointmentRequest) { req.SpecialtyID = 999 }, ErrSpecialtyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t)
			req := f.request(monday, "09:00")
			tt.mutate(req)

			_, err := f.uc.CreateAppointment(context.Background(), req)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		})
	}
}

func TestCreateAppointment_PatientCheckedBeforeDoctor(t *testing.T) {
	f := newAppointmentFixture(t)
	req := f.request(monday, "09:00")
	req.PatientID = 999
	req.DoctorID = 999

	_, err := f.uc.CreateAppointment(context.Background(), req)

	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestCreateAppointment_DoctorLacksSpecialtyBeforeAvailability(t *testing.T) {
	f := newAppointmentFixture(t)
	f.create(t, monday, "09:00")

	// The slot is taken, but the specialty check runs first.
	req := f.request(monday, "09:00")
	req.SpecialtyID = f.dermatology.ID
	_, err := f.uc.CreateAppointment(context.Background(), req)

	assert.ErrorIs(t, err, ErrDoctorLacksSpecialty)
	assert.Equal(t, apperror.KindInvalidRequest, apperror.KindOf(err))

	// Weekend and lunch rules come after it too.
	req = f.request(saturday, "12:00")
	req.SpecialtyID = f.dermatology.ID
	_, err = f.uc.CreateAppointment(context.Background(), req)
	assert.ErrorIs(t, err, ErrDoctorLacksSpecialty)
}

func TestCreateAppointment_FollowsRegistry(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	_, err := f.registry.Assign(ctx, &dto.AssignSpecialtyRequest{DoctorID: f.doctor.ID, SpecialtyID: f.dermatology.ID})
	require.NoError(t, err)
	req := f.request(monday, "10:00")
	req.SpecialtyID = f.dermatology.ID
	_, err = f.uc.CreateAppointment(ctx, req)
	require.NoError(t, err)

	require.NoError(t, f.registry.Unassign(ctx, f.doctor.ID, f.cardiology.ID))
	_, err = f.uc.CreateAppointment(ctx, f.request(monday, "11:00"))
	assert.ErrorIs(t, err, ErrDoctorLacksSpecialty)
}

func TestCreateAppointment_MalformedInput(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.uc.CreateAppointment(context.Background(), f.request("02/03/2026", "09:00"))
	assert.ErrorIs(t, err, entity.ErrInvalidDate)

	_, err = f.uc.CreateAppointment(context.Background(), f.request(monday, "nine"))
	assert.ErrorIs(t, err, entity.ErrInvalidTime)
}

func TestChangeStatus_ConfirmThenComplete(t *testing.T) {
	f := newAppointmentFixture(t)
	apt := f.create(t, monday, "09:00")
	ctx := context.Background()

	resp, err := f.uc.ChangeStatus(ctx, apt.ID, "CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)

	resp, err = f.uc.ChangeStatus(ctx, apt.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)

	_, err = f.uc.ChangeStatus(ctx, apt.ID, "PENDING")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))

	assert.Equal(t, []string{
		entity.AuditActionAppointmentCreate,
		entity.AuditActionAppointmentStatus,
		entity.AuditActionAppointmentStatus,
	}, f.audit.actions())
}

func TestChangeStatus_Transitions(t *testing.T) {
	tests := []struct {
		from entity.AppointmentStatus
		to   string
		ok   bool
	}{
		{entity.AppointmentStatusPending, "CONFIRMED", true},
		{entity.AppointmentStatusPending, "CANCELLED", true},
		{entity.AppointmentStatusPending, "COMPLETED", false},
		{entity.AppointmentStatusPending, "PENDING", false},
		{entity.AppointmentStatusConfirmed, "COMPLETED", true},
		{entity.AppointmentStatusConfirmed, "CANCELLED", true},
		{entity.AppointmentStatusConfirmed, "PENDING", false},
		{entity.AppointmentStatusConfirmed, "CONFIRMED", false},
		{entity.AppointmentStatusCompleted, "CANCELLED", false},
		{entity.AppointmentStatusCompleted, "PENDING", false},
		{entity.AppointmentStatusCancelled, "PENDING", false},
		{entity.AppointmentStatusCancelled, "CONFIRMED", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+tt.to, func(t *testing.T) {
			f := newAppointmentFixture(t)
			apt := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "09:00", tt.from)

			resp, err := f.uc.ChangeStatus(context.Background(), apt.ID, tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, resp.Status)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			assert.Equal(t, tt.from, f.store.appointments[apt.ID].Status)
		})
	}
}

func TestChangeStatus_UnknownStatus(t *testing.T) {
	f := newAppointmentFixture(t)
	apt := f.create(t, monday, "09:00")

	_, err := f.uc.ChangeStatus(context.Background(), apt.ID, "ARCHIVED")

	assert.ErrorIs(t, err, entity.ErrInvalidAppointmentStatus)
	assert.Equal(t, apperror.KindInvalidRequest, apperror.KindOf(err))
}

func TestChangeStatus_NotFound(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.uc.ChangeStatus(context.Background(), 404, "CONFIRMED")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	// The id is resolved before the status, so a bad status on a missing
	// appointment is still NotFound.
	_, err = f.uc.ChangeStatus(context.Background(), 404, "ARCHIVED")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCancelAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	pending := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "08:00", entity.AppointmentStatusPending)
	confirmed := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "09:00", entity.AppointmentStatusConfirmed)
	completed := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "10:00", entity.AppointmentStatusCompleted)
	cancelled := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "11:00", entity.AppointmentStatusCancelled)
	ctx := context.Background()

	for _, id := range []int64{pending.ID, confirmed.ID} {
		resp, err := f.uc.CancelAppointment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
	}

	_, err := f.uc.CancelAppointment(ctx, completed.ID)
	assert.ErrorIs(t, err, ErrCancelCompleted)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))

	_, err = f.uc.CancelAppointment(ctx, cancelled.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestDeleteAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	pending := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "08:00", entity.AppointmentStatusPending)
	cancelled := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "09:00", entity.AppointmentStatusCancelled)
	completed := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "10:00", entity.AppointmentStatusCompleted)
	ctx := context.Background()

	require.NoError(t, f.uc.DeleteAppointment(ctx, pending.ID))
	require.NoError(t, f.uc.DeleteAppointment(ctx, cancelled.ID))

	err := f.uc.DeleteAppointment(ctx, completed.ID)
	assert.ErrorIs(t, err, ErrDeleteCompleted)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
	assert.Contains(t, f.store.appointments, completed.ID)

	assert.ErrorIs(t, f.uc.DeleteAppointment(ctx, pending.ID), ErrAppointmentNotFound)
	assert.Len(t, f.store.appointments, 1)
}

func TestUpdateAppointment_Reschedule(t *testing.T) {
	f := newAppointmentFixture(t)
	apt := f.create(t, monday, "09:00")
	newDate, newTime := tuesday, "14:00"

	resp, err := f.uc.UpdateAppointment(context.Background(), apt.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate: &newDate,
		AppointmentTime: &newTime,
	})
	require.NoError(t, err)

	assert.Equal(t, tuesday, resp.AppointmentDate)
	assert.Equal(t, "14:00", resp.AppointmentTime)
	assert.Equal(t, "Chest pain", resp.Reason)
	assert.Equal(t, f.patient.ID, resp.PatientID)
}

func TestUpdateAppointment_SameSlotExcludesItself(t *testing.T) {
	f := newAppointmentFixture(t)
	apt := f.create(t, monday, "09:00")
	sameTime := "09:00"

	_, err := f.uc.UpdateAppointment(context.Background(), apt.ID, &dto.UpdateAppointmentRequest{AppointmentTime: &sameTime})

	assert.NoError(t, err)
}

func TestUpdateAppointment_TimeConflict(t *testing.T) {
	f := newAppointmentFixture(t)
	f.create(t, monday, "09:00")
	second := f.create(t, monday, "10:00")
	taken := "09:00"

	_, err := f.uc.UpdateAppointment(context.Background(), second.ID, &dto.UpdateAppointmentRequest{AppointmentTime: &taken})

	assert.ErrorIs(t, err, ErrDoctorAlreadyBooked)
	assert.Equal(t, "10:00", f.store.appointments[second.ID].AppointmentTime)
}

func TestUpdateAppointment_DateOnlyConflict(t *testing.T) {
	f := newAppointmentFixture(t)
	f.create(t, tuesday, "09:00")
	apt := f.create(t, monday, "09:00")
	moveTo := tuesday

	_, err := f.uc.UpdateAppointment(context.Background(), apt.ID, &dto.UpdateAppointmentRequest{AppointmentDate: &moveTo})

	assert.ErrorIs(t, err, ErrDoctorAlreadyBooked)
}

func TestUpdateAppointment_RuleViolations(t *testing.T) {
	f := newAppointmentFixture(t)
	apt := f.create(t, monday, "09:00")
	weekend, lunch := saturday, "12:00"

	_, err := f.uc.UpdateAppointment(context.Background(), apt.ID, &dto.UpdateAppointmentRequest{AppointmentDate: &weekend})
	assert.ErrorIs(t, err, ErrWeekendAppointment)

	_, err = f.uc.UpdateAppointment(context.Background(), apt.ID, &dto.UpdateAppointmentRequest{AppointmentTime: &lunch})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	offSlot := "09:00:30"
	_, err = f.uc.UpdateAppointment(context.Background(), apt.ID, &dto.UpdateAppointmentRequest{AppointmentTime: &offSlot})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestUpdateAppointment_ReasonPatch(t *testing.T) {
	f := newAppointmentFixture(t)
	apt := f.create(t, monday, "09:00")
	blank, reason := "   ", "Follow-up"

	resp, err := f.uc.UpdateAppointment(context.Background(), apt.ID, &dto.UpdateAppointmentRequest{Reason: &blank})
	require.NoError(t, err)
	assert.Equal(t, "Chest pain", resp.Reason)

	resp, err = f.uc.UpdateAppointment(context.Background(), apt.ID, &dto.UpdateAppointmentRequest{Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, "Follow-up", resp.Reason)
	assert.Equal(t, monday, resp.AppointmentDate)
	assert.Equal(t, "09:00", resp.AppointmentTime)
}

func TestUpdateAppointment_TerminalStatusRejected(t *testing.T) {
	f := newAppointmentFixture(t)
	reason := "late change"

	for _, status := range []entity.AppointmentStatus{entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled} {
		apt := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, tuesday, "15:00", status)

		_, err := f.uc.UpdateAppointment(context.Background(), apt.ID, &dto.UpdateAppointmentRequest{Reason: &reason})

		assert.ErrorIs(t, err, ErrAppointmentNotEditable, string(status))
		assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
	}
}

func TestCheckAvailability(t *testing.T) {
	f := newAppointmentFixture(t)
	f.create(t, monday, "09:00")
	ctx := context.Background()

	check := func(date, slot string) *dto.AvailabilityResponse {
		resp, err := f.uc.CheckAvailability(ctx, &dto.AvailabilityRequest{DoctorID: f.doctor.ID, Date: date, Time: slot})
		require.NoError(t, err)
		return resp
	}

	assert.True(t, check(monday, "10:00").Available)

	taken := check(monday, "09:00")
	assert.False(t, taken.Available)
	assert.Contains(t, taken.Reason, ErrDoctorAlreadyBooked.Message)

	weekend := check(saturday, "10:00")
	assert.False(t, weekend.Available)
	assert.Contains(t, weekend.Reason, ErrWeekendAppointment.Message)

	lunch := check(monday, "12:00")
	assert.False(t, lunch.Available)
	assert.Contains(t, lunch.Reason, "lunch")

	assert.True(t, check(monday, "10:00:00").Available)
	offSlot := check(monday, "10:00:30")
	assert.False(t, offSlot.Available)
	assert.Equal(t, "10:00:30", offSlot.Time)
	assert.Contains(t, offSlot.Reason, ErrInvalidTimeSlot.Message)
}

func TestCheckAvailability_CancelledSlotIsFree(t *testing.T) {
	f := newAppointmentFixture(t)
	f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "09:00", entity.AppointmentStatusCancelled)

	resp, err := f.uc.CheckAvailability(context.Background(), &dto.AvailabilityRequest{DoctorID: f.doctor.ID, Date: monday, Time: "09:00"})

	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestCheckAvailability_Errors(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	_, err := f.uc.CheckAvailability(ctx, &dto.AvailabilityRequest{DoctorID: f.doctor.ID, Date: "tomorrow", Time: "09:00"})
	assert.Equal(t, apperror.KindInvalidRequest, apperror.KindOf(err))

	_, err = f.uc.CheckAvailability(ctx, &dto.AvailabilityRequest{DoctorID: f.doctor.ID, Date: monday, Time: "9"})
	assert.Equal(t, apperror.KindInvalidRequest, apperror.KindOf(err))

	_, err = f.uc.CheckAvailability(ctx, &dto.AvailabilityRequest{DoctorID: 999, Date: monday, Time: "09:00"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestFilterAppointments_Precedence(t *testing.T) {
	f := newAppointmentFixture(t)
	otherDoctor := f.store.addDoctor("Luis", "Vega", "luis@clinic.test", f.cardiology.ID)

	a1 := f.store.addAppointment(f.patient.ID, f.doctor.ID, f.cardiology.ID, monday, "08:00", entity.AppointmentStatusPending)
	a2 := f.store.addAppointment(f.other.ID, f.doctor.ID, f.cardiology.ID, monday, "09:00", entity.AppointmentStatusConfirmed)
	a3 := f.store.addAppointment(f.patient.ID, otherDoctor.ID, f.cardiology.ID, monday, "09:00", entity.AppointmentStatusConfirmed)
	a4 := f.store.addAppointment(f.other.ID, otherDoctor.ID, f.cardiology.ID, tuesday, "09:00", entity.AppointmentStatusCancelled)

	ids := func(resp *dto.AppointmentListResponse) []int64 {
		out := make([]int64, len(resp.Appointments))
		for i, a := range resp.Appointments {
			out[i] = a.ID
		}
		return out
	}
	filter := func(req dto.AppointmentFilterRequest) []int64 {
		resp, err := f.uc.FilterAppointments(context.Background(), &req)
		require.NoError(t, err)
		assert.Equal(t, len(resp.Appointments), resp.Total)
		return ids(resp)
	}

	doctorID, patientID := f.doctor.ID, f.other.ID
	confirmed, bogus := "confirmed", "bogus"

	assert.Equal(t, []int64{a1.ID, a2.ID, a3.ID, a4.ID}, filter(dto.AppointmentFilterRequest{}))
	assert.Equal(t, []int64{a1.ID, a2.ID}, filter(dto.AppointmentFilterRequest{DoctorID: &doctorID}))
	assert.Equal(t, []int64{a2.ID, a4.ID}, filter(dto.AppointmentFilterRequest{PatientID: &patientID}))
	assert.Equal(t, []int64{a2.ID, a3.ID}, filter(dto.AppointmentFilterRequest{Status: &confirmed}))

	// Doctor wins over patient and status; patient wins over status.
	assert.Equal(t, []int64{a1.ID, a2.ID}, filter(dto.AppointmentFilterRequest{DoctorID: &doctorID, PatientID: &patientID, Status: &confirmed}))
	assert.Equal(t, []int64{a2.ID, a4.ID}, filter(dto.AppointmentFilterRequest{PatientID: &patientID, Status: &confirmed}))

	// An ignored status is never parsed.
	assert.Equal(t, []int64{a1.ID, a2.ID}, filter(dto.AppointmentFilterRequest{DoctorID: &doctorID, Status: &bogus}))

	_, err := f.uc.FilterAppointments(context.Background(), &dto.AppointmentFilterRequest{Status: &bogus})
	assert.ErrorIs(t, err, entity.ErrInvalidAppointmentStatus)
}

func TestListSlots(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.uc.ListSlots()
	resp.Slots[0] = "changed"

	assert.Equal(t, "08:00", entity.AppointmentSlots[0])
	assert.Len(t, f.uc.ListSlots().Slots, 8)
}
