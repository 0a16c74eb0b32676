package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new role repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetRoleNames(ctx context.Context, participantID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.ParticipantRole{}).
		Joins("JOIN roles ON roles.id = participant_roles.role_id").
		Where("participant_roles.participant_id = ?", participantID).
		Pluck("roles.name", &names).Error
	return names, err
}

func (r *repository) GrantRole(ctx context.Context, participantID uuid.UUID, roleName string) error {
	var role models.Role
	err := r.db.WithContext(ctx).First(&role, "name = ?", roleName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return err
	}

	grant := &models.ParticipantRole{
		ParticipantID: participantID,
		RoleID:        role.ID,
	}
	return r.db.WithContext(ctx).Create(grant).Error
}
