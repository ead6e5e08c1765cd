package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKeyError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_doctor_slot"})

	assert.True(t, isDuplicateKeyError(err, constraintAppointmentSlot))
	assert.False(t, isDuplicateKeyError(err, "patients_email_key"))
	assert.False(t, isForeignKeyError(err, constraintAppointmentSlot))
	assert.False(t, isDuplicateKeyError(errors.New("boom"), constraintAppointmentSlot))
}

func TestIsForeignKeyError(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "fk_users_role"}

	assert.True(t, isForeignKeyError(err, "role"))
	assert.False(t, isDuplicateKeyError(err, "role"))
}

func TestActorFrom(t *testing.T) {
	assert.Nil(t, ActorFrom(context.Background()))

	userID := uuid.New()
	got := ActorFrom(WithActor(context.Background(), userID))
	if assert.NotNil(t, got) {
		assert.Equal(t, userID, *got)
	}
}
