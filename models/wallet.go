package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a participant's balance. Stakes debit it, claims credit it;
// both always inside the same database transaction as the market mutation.
type Wallet struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ParticipantID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_participant" json:"participant_id"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,2);default:0.00;check:balance >= 0" json:"balance"`
	IsLocked      bool            `gorm:"default:false" json:"is_locked"`
	LockReason    string          `gorm:"type:text" json:"lock_reason,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:WalletID" json:"-"`
}

// TableName specifies the table name for Wallet model
func (*Wallet) TableName() string {
	return "wallets"
}

// BeforeCreate sets up the model before creation
func (w *Wallet) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// CanDebit checks if the wallet has sufficient balance for a debit
func (w *Wallet) CanDebit(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// Credit adds funds to the wallet
func (w *Wallet) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransactionAmount
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Debit removes funds from the wallet
func (w *Wallet) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransactionAmount
	}
	if !w.CanDebit(amount) {
		return ErrInsufficientBalance
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

// IsOperationAllowed checks if wallet operations are allowed
func (w *Wallet) IsOperationAllowed() bool {
	return !w.IsLocked
}

// Lock locks the wallet with a reason
func (w *Wallet) Lock(reason string) {
	w.IsLocked = true
	w.LockReason = reason
}

// Unlock unlocks the wallet
func (w *Wallet) Unlock() {
	w.IsLocked = false
	w.LockReason = ""
}

// Validate performs validation on the wallet model
func (w *Wallet) Validate() error {
	if w.ParticipantID == uuid.Nil {
		return ErrInvalidParticipantID
	}
	if w.Balance.LessThan(decimal.Zero) {
		return ErrNegativeBalance
	}
	return nil
}
