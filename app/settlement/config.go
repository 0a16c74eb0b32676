package settlement

import (
	"github.com/google/uuid"

	"github.com/0xBased-lang/kektech/models"
)

// Config represents the configuration for the settlement module
type Config struct {
	// TreasuryParticipantID is the participant whose wallet receives
	// forwarded platform fees. Leaving it empty disables the fee sink and
	// fees accrue on the market instead.
	TreasuryParticipantID string `env:"SETTLEMENT_TREASURY_PARTICIPANT_ID"`
}

func (c *Config) Validate() error {
	if c.TreasuryParticipantID != "" {
		if _, err := uuid.Parse(c.TreasuryParticipantID); err != nil {
			return models.ErrInvalidParticipantID
		}
	}
	return nil
}

// TreasuryID returns the parsed treasury participant ID, or uuid.Nil when
// the sink is disabled.
func (c *Config) TreasuryID() uuid.UUID {
	if c.TreasuryParticipantID == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(c.TreasuryParticipantID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetDefaultConfig returns the default settlement configuration
func GetDefaultConfig() *Config {
	return &Config{}
}
