package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/0xBased-lang/kektech/models"
)

// rolePermissions maps a role name to the operations it unlocks.
var rolePermissions = map[string][]string{
	models.RoleResolver:     {PermResolutionPropose},
	models.RoleAggregator:   {PermResolutionSignal, PermResolutionDispute, PermResolutionFinalize},
	models.RoleInvestigator: {PermResolutionRule},
	models.RoleAdmin: {
		PermMarketCreate, PermMarketActivate,
		PermResolutionPropose, PermResolutionRule, PermResolutionAdmin,
		PermRoleGrant,
	},
}

// Permission names gating privileged routes.
const (
	PermMarketCreate       = "market:create"
	PermMarketActivate     = "market:activate"
	PermResolutionPropose  = "resolution:propose"
	PermResolutionSignal   = "resolution:signal"
	PermResolutionDispute  = "resolution:dispute"
	PermResolutionFinalize = "resolution:finalize"
	PermResolutionRule     = "resolution:rule"
	PermResolutionAdmin    = "resolution:admin"
	PermRoleGrant          = "roles:grant"
)

type service struct {
	repo Repository
}

// NewService creates a new authorization service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetPermissions resolves a participant's roles into a flat permission list.
func (s *service) GetPermissions(ctx context.Context, participantID uuid.UUID) ([]string, error) {
	roles, err := s.repo.GetRoleNames(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("roles for %s: %w", participantID, err)
	}

	seen := make(map[string]struct{})
	var permissions []string
	for _, role := range roles {
		for _, p := range rolePermissions[role] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			permissions = append(permissions, p)
		}
	}
	return permissions, nil
}

// GrantRole assigns the named role to a participant.
func (s *service) GrantRole(ctx context.Context, participantID uuid.UUID, roleName string) error {
	return s.repo.GrantRole(ctx, participantID, roleName)
}

// HasRole reports whether the participant holds the named role.
func (s *service) HasRole(ctx context.Context, participantID uuid.UUID, roleName string) (bool, error) {
	roles, err := s.repo.GetRoleNames(ctx, participantID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == roleName {
			return true, nil
		}
	}
	return false, nil
}
