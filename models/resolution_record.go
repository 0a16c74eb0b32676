package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResolutionStatus represents the status of a resolution record
type ResolutionStatus string

const (
	ResolutionStatusProposed    ResolutionStatus = "proposed"
	ResolutionStatusBondDispute ResolutionStatus = "disputed_bond"
	ResolutionStatusFinalized   ResolutionStatus = "finalized"
)

// SignalVerdict is the decision produced by one signal submission.
type SignalVerdict int

const (
	VerdictPending SignalVerdict = iota
	VerdictFinalize
	VerdictDispute
)

// CommunityDispute is the community-signal window attached to a proposal.
// Counts are cumulative totals sourced from off-chain voting.
type CommunityDispute struct {
	ProposedOutcome Outcome   `json:"proposed_outcome"`
	AgreeCount      int64     `json:"agree_count"`
	DisagreeCount   int64     `json:"disagree_count"`
	WindowEndsAt    time.Time `json:"window_ends_at"`
	Active          bool      `json:"active"`
	AutoFinalized   bool      `json:"auto_finalized"`
}

// Value implements driver.Valuer interface
func (cd *CommunityDispute) Value() (driver.Value, error) {
	return json.Marshal(cd)
}

// Scan implements sql.Scanner interface
func (cd *CommunityDispute) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, cd)
	case string:
		return json.Unmarshal([]byte(v), cd)
	}
	return nil
}

// BondDisputeStatus represents the status of a bond-backed challenge
type BondDisputeStatus string

const (
	BondDisputeOpen     BondDisputeStatus = "open"
	BondDisputeUpheld   BondDisputeStatus = "upheld"
	BondDisputeRejected BondDisputeStatus = "rejected"
)

// BondDispute records a bond-backed challenge against a direct resolution.
type BondDispute struct {
	ChallengerID uuid.UUID         `json:"challenger_id"`
	Reason       string            `json:"reason"`
	BondAmount   decimal.Decimal   `json:"bond_amount"`
	Status       BondDisputeStatus `json:"status"`
	ChallengedAt time.Time         `json:"challenged_at"`
}

// Value implements driver.Valuer interface
func (bd *BondDispute) Value() (driver.Value, error) {
	return json.Marshal(bd)
}

// Scan implements sql.Scanner interface
func (bd *BondDispute) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, bd)
	case string:
		return json.Unmarshal([]byte(v), bd)
	}
	return nil
}

// ResolutionRecord is created when an outcome is first proposed for a market
// and is immutable once finalized. It references its market by ID only.
type ResolutionRecord struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MarketID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"market_id"`
	ProposedOutcome Outcome          `gorm:"type:smallint;not null" json:"proposed_outcome"`
	ProposerID      uuid.UUID        `gorm:"type:uuid;not null" json:"proposer_id"`
	Evidence        string           `gorm:"type:text" json:"evidence"`
	Status          ResolutionStatus `gorm:"type:varchar(20);default:'proposed';index" json:"status"`
	OpenedAt        time.Time        `gorm:"type:timestamptz;not null" json:"opened_at"`
	Community       CommunityDispute `gorm:"type:jsonb;default:'{}'" json:"community"`
	Bond            *BondDispute     `gorm:"type:jsonb" json:"bond,omitempty"`
	FinalOutcome    Outcome          `gorm:"type:smallint;default:0" json:"final_outcome"`
	FinalizedBy     *uuid.UUID       `gorm:"type:uuid" json:"finalized_by"`
	FinalizeReason  string           `gorm:"type:text" json:"finalize_reason"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for ResolutionRecord model
func (*ResolutionRecord) TableName() string {
	return "resolution_records"
}

// BeforeCreate sets up the model before creation
func (r *ResolutionRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsFinalized checks if the record has reached its immutable state
func (r *ResolutionRecord) IsFinalized() bool {
	return r.Status == ResolutionStatusFinalized
}

// WindowOpen reports whether the community dispute window accepts signals.
func (r *ResolutionRecord) WindowOpen(now time.Time) bool {
	return r.Community.Active && now.Before(r.Community.WindowEndsAt)
}

// RecordSignals replaces the running totals with new cumulative counts and
// returns the verdict under the given percentage thresholds. Zero total votes
// change nothing. Counts may never shrink between submissions.
func (r *ResolutionRecord) RecordSignals(agree, disagree int64, agreementThreshold, disagreementThreshold int64) (SignalVerdict, error) {
	if r.IsFinalized() {
		return VerdictPending, ErrResolutionFinalized
	}
	if !r.Community.Active {
		return VerdictPending, ErrDisputeWindowClosed
	}
	if agree < 0 || disagree < 0 || agree < r.Community.AgreeCount || disagree < r.Community.DisagreeCount {
		return VerdictPending, ErrInvalidSignalCounts
	}

	r.Community.AgreeCount = agree
	r.Community.DisagreeCount = disagree

	total := agree + disagree
	if total == 0 {
		return VerdictPending, nil
	}

	// Integer arithmetic keeps the threshold comparison exact: the 75/25
	// boundary case must finalize and 74/26 must not.
	if agree*100 >= agreementThreshold*total {
		r.Community.Active = false
		r.Community.AutoFinalized = true
		return VerdictFinalize, nil
	}
	if disagree*100 >= disagreementThreshold*total {
		r.Community.Active = false
		return VerdictDispute, nil
	}
	return VerdictPending, nil
}

// Challenge records a bond-backed challenge. Only one challenge may exist.
func (r *ResolutionRecord) Challenge(challengerID uuid.UUID, reason string, bond, minimumBond decimal.Decimal, now time.Time) error {
	if r.IsFinalized() {
		return ErrResolutionFinalized
	}
	if r.Bond != nil {
		return ErrChallengeExists
	}
	if reason == "" {
		return ErrInvalidDisputeReason
	}
	if bond.LessThan(minimumBond) {
		return ErrBondTooSmall
	}
	r.Bond = &BondDispute{
		ChallengerID: challengerID,
		Reason:       reason,
		BondAmount:   bond,
		Status:       BondDisputeOpen,
		ChallengedAt: now,
	}
	r.Status = ResolutionStatusBondDispute
	return nil
}

// RuleOnChallenge settles an open bond dispute. Upheld challenges may change
// the outcome and refund the bond; rejected challenges forfeit it.
func (r *ResolutionRecord) RuleOnChallenge(upheld bool, newOutcome Outcome) error {
	if r.IsFinalized() {
		return ErrResolutionFinalized
	}
	if r.Bond == nil || r.Bond.Status != BondDisputeOpen {
		return ErrNoOpenChallenge
	}
	if upheld {
		if !newOutcome.Valid() {
			return ErrInvalidOutcome
		}
		r.Bond.Status = BondDisputeUpheld
		r.ProposedOutcome = newOutcome
	} else {
		r.Bond.Status = BondDisputeRejected
	}
	r.Status = ResolutionStatusProposed
	return nil
}

// FinalizeWith seals the record with its final outcome.
func (r *ResolutionRecord) FinalizeWith(outcome Outcome, by uuid.UUID, reason string) error {
	if r.IsFinalized() {
		return ErrResolutionFinalized
	}
	if !outcome.Valid() {
		return ErrInvalidOutcome
	}
	if r.Bond != nil && r.Bond.Status == BondDisputeOpen {
		return ErrDisputeWindowOpen
	}
	r.Status = ResolutionStatusFinalized
	r.FinalOutcome = outcome
	r.FinalizedBy = &by
	r.FinalizeReason = reason
	r.Community.Active = false
	return nil
}

// Validate performs validation on the resolution record
func (r *ResolutionRecord) Validate() error {
	if r.MarketID == uuid.Nil {
		return ErrInvalidMarketID
	}
	if !r.ProposedOutcome.Valid() {
		return ErrInvalidOutcome
	}
	if r.ProposerID == uuid.Nil {
		return ErrInvalidParticipantID
	}
	if r.OpenedAt.IsZero() {
		return ErrInvalidDeadline
	}
	return nil
}
