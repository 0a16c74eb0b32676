package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Privileged role names checked by the resolution and settlement surfaces.
const (
	RoleResolver     = "resolver"
	RoleAggregator   = "aggregator"
	RoleInvestigator = "investigator"
	RoleAdmin        = "admin"
)

// Role represents a privileged capability in the system
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string    `gorm:"type:varchar(50);not null;unique"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate sets a UUID for the role before creation.
func (r *Role) BeforeCreate(_ *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// ParticipantRole grants a role to a participant
type ParticipantRole struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_roles"`
	RoleID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_roles"`
	CreatedAt     time.Time

	Role *Role `gorm:"foreignKey:RoleID"`
}

// TableName specifies the table name for ParticipantRole model
func (*ParticipantRole) TableName() string {
	return "participant_roles"
}

// BeforeCreate sets a UUID for the grant before creation.
func (pr *ParticipantRole) BeforeCreate(_ *gorm.DB) (err error) {
	if pr.ID == uuid.Nil {
		pr.ID = uuid.New()
	}
	return
}
