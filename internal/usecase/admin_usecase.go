package usecase

import (
	"context"

	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/policy"

	"github.com/google/uuid"
)

// AdminUsecase exposes platform-wide reporting and account management.
type AdminUsecase interface {
	Stats(ctx context.Context, actor *policy.Actor) (*entity.PlatformStats, error)
	ListUsers(ctx context.Context, actor *policy.Actor, role *entity.Role) ([]*entity.User, error)

	// AssignRole changes another user's role. Admins cannot change their own.
	AssignRole(ctx context.Context, actor *policy.Actor, userID uuid.UUID, role string) (*entity.User, error)
}
