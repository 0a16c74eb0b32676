package auth

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for role data access
type Repository interface {
	GetRoleNames(ctx context.Context, participantID uuid.UUID) ([]string, error)
	GrantRole(ctx context.Context, participantID uuid.UUID, roleName string) error
}

// Service defines the interface for authorization lookups
type Service interface {
	GetPermissions(ctx context.Context, participantID uuid.UUID) ([]string, error)
	HasRole(ctx context.Context, participantID uuid.UUID, roleName string) (bool, error)
	GrantRole(ctx context.Context, participantID uuid.UUID, roleName string) error
}
