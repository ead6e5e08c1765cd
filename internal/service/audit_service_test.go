package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"go-medical-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingAuditRepo struct {
	logs []entity.AuditLog
	err  error
}

func (r *recordingAuditRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *recordingAuditRepo) FindAll(db *gorm.DB) ([]entity.AuditLog, error) {
	return r.logs, nil
}

func (r *recordingAuditRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	return nil, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAuditService_LogUpdate(t *testing.T) {
	repo := &recordingAuditRepo{}
	svc := NewAuditService(quietLogger(), repo)
	userID := uuid.New()

	svc.LogUpdate(context.Background(), nil, &userID, entity.AuditActionAppointmentStatus,
		entity.AuditEntityAppointment, "12", entity.JSON{"status": "PENDING"}, entity.JSON{"status": "CONFIRMED"})

	require.Len(t, repo.logs, 1)
	got := repo.logs[0]
	assert.Equal(t, &userID, got.UserID)
	assert.Equal(t, "appointment.status", got.Action)
	assert.Equal(t, "appointment", got.Metadata["entity"])
	assert.Equal(t, "12", got.Metadata["entity_id"])
	assert.Equal(t, entity.JSON{"status": "PENDING"}, got.Metadata["old_value"])
	assert.Equal(t, entity.JSON{"status": "CONFIRMED"}, got.Metadata["new_value"])
}

func TestAuditService_LogCreateAndDelete(t *testing.T) {
	repo := &recordingAuditRepo{}
	svc := NewAuditService(quietLogger(), repo)

	svc.LogCreate(context.Background(), nil, nil, entity.AuditActionPatientCreate, entity.AuditEntityPatient, "1", "new")
	svc.LogDelete(context.Background(), nil, nil, entity.AuditActionPatientDelete, entity.AuditEntityPatient, "1", "old")

	require.Len(t, repo.logs, 2)
	assert.Nil(t, repo.logs[0].Metadata["old_value"])
	assert.Equal(t, "new", repo.logs[0].Metadata["new_value"])
	assert.Equal(t, "old", repo.logs[1].Metadata["old_value"])
	assert.Nil(t, repo.logs[1].Metadata["new_value"])
}

func TestAuditService_SwallowsRepositoryErrors(t *testing.T) {
	repo := &recordingAuditRepo{err: errors.New("insert failed")}
	svc := NewAuditService(quietLogger(), repo)

	assert.NotPanics(t, func() {
		svc.LogCreate(context.Background(), nil, nil, entity.AuditActionDoctorCreate, entity.AuditEntityDoctor, "5", nil)
	})
	assert.Empty(t, repo.logs)
}

func TestTokenKey(t *testing.T) {
	userID := uuid.MustParse("6f1c0b7e-9d0a-4a4f-8a55-3d2b1c0e9f11")

	assert.Equal(t, "access_token:6f1c0b7e-9d0a-4a4f-8a55-3d2b1c0e9f11:abc", TokenKey("access", userID, "abc"))
	assert.Equal(t, "refresh_token:6f1c0b7e-9d0a-4a4f-8a55-3d2b1c0e9f11:*", TokenKey("refresh", userID, "*"))
}
