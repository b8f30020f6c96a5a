package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/pkg/constants"
)

var ErrNoWorkspaceID = errors.New("no workspace id found in context")

func WithWorkspaceID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.WorkspaceIDKey, id)
}

func UseWorkspaceID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(constants.WorkspaceIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNoWorkspaceID
	}
	return id, nil
}
