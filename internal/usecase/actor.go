package usecase

import (
	"context"
	"strconv"

	"github.com/google/uuid"
)

type actorKey struct{}

// WithActor records the staff user performing the request. Audit entries
// written during the request are attributed to that user.
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns nil for unauthenticated or system calls.
func ActorFrom(ctx context.Context) *uuid.UUID {
	userID, ok := ctx.Value(actorKey{}).(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
