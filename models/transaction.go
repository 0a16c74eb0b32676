package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeStake       TransactionType = "stake"
	TransactionTypeStakeRefund TransactionType = "stake_refund"
	TransactionTypePayout      TransactionType = "payout"
	TransactionTypeBond        TransactionType = "bond"
	TransactionTypeBondRefund  TransactionType = "bond_refund"
	TransactionTypeFeeForward  TransactionType = "fee_forward"
)

// TransactionMetadata represents additional transaction metadata
type TransactionMetadata struct {
	Outcome   Outcome         `json:"outcome,omitempty"`
	Shares    decimal.Decimal `json:"shares,omitempty"`
	OddsBps   int64           `json:"odds_bps,omitempty"`
	FeeAmount decimal.Decimal `json:"fee_amount,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// Value implements driver.Valuer interface
func (tm *TransactionMetadata) Value() (driver.Value, error) {
	return json.Marshal(tm)
}

// Scan implements sql.Scanner interface
func (tm *TransactionMetadata) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, tm)
	case string:
		return json.Unmarshal([]byte(v), tm)
	}
	return nil
}

// Transaction represents one wallet movement (immutable ledger)
type Transaction struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ParticipantID   uuid.UUID           `gorm:"type:uuid;not null;index:idx_transactions_participant" json:"participant_id"`
	WalletID        uuid.UUID           `gorm:"type:uuid;not null" json:"wallet_id"`
	TransactionType TransactionType     `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount          decimal.Decimal     `gorm:"type:decimal(20,2);not null" json:"amount"`
	BalanceBefore   decimal.Decimal     `gorm:"type:decimal(20,2);not null" json:"balance_before"`
	BalanceAfter    decimal.Decimal     `gorm:"type:decimal(20,2);not null" json:"balance_after"`
	MarketID        *uuid.UUID          `gorm:"type:uuid;index" json:"market_id"`
	ReferenceID     *uuid.UUID          `gorm:"type:uuid" json:"reference_id"`
	Description     string              `gorm:"type:text" json:"description"`
	Metadata        TransactionMetadata `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt       time.Time           `gorm:"autoCreateTime;index:idx_transactions_created_at" json:"created_at"`

	Wallet *Wallet `gorm:"foreignKey:WalletID" json:"wallet,omitempty"`
}

// TableName specifies the table name for Transaction model
func (*Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate sets up the model before creation
func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsCredit checks if this is a credit transaction (positive amount)
func (t *Transaction) IsCredit() bool {
	return t.Amount.GreaterThan(decimal.Zero)
}

// IsDebit checks if this is a debit transaction (negative amount)
func (t *Transaction) IsDebit() bool {
	return t.Amount.LessThan(decimal.Zero)
}

// IsBalanceConsistent checks if the balance calculation is consistent
func (t *Transaction) IsBalanceConsistent() bool {
	return t.BalanceBefore.Add(t.Amount).Equal(t.BalanceAfter)
}

// Validate performs validation on the transaction model
func (t *Transaction) Validate() error {
	if t.ParticipantID == uuid.Nil {
		return ErrInvalidParticipantID
	}
	if t.WalletID == uuid.Nil {
		return ErrInvalidWalletBalance
	}
	if t.Amount.IsZero() {
		return ErrInvalidTransactionAmount
	}
	if !t.IsBalanceConsistent() {
		return ErrInvalidTransactionAmount
	}
	if t.BalanceAfter.LessThan(decimal.Zero) {
		return ErrNegativeBalance
	}
	return nil
}

// CreateStakeTransaction debits a wallet for a stake placement.
func CreateStakeTransaction(participantID, walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	marketID uuid.UUID, meta TransactionMetadata) *Transaction {
	return &Transaction{
		ParticipantID:   participantID,
		WalletID:        walletID,
		TransactionType: TransactionTypeStake,
		Amount:          amount.Neg(),
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Sub(amount),
		MarketID:        &marketID,
		Description:     "Stake placement",
		Metadata:        meta,
	}
}

// CreatePayoutTransaction credits a wallet with claimed winnings.
func CreatePayoutTransaction(participantID, walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	marketID, positionID uuid.UUID) *Transaction {
	return &Transaction{
		ParticipantID:   participantID,
		WalletID:        walletID,
		TransactionType: TransactionTypePayout,
		Amount:          amount,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Add(amount),
		MarketID:        &marketID,
		ReferenceID:     &positionID,
		Description:     "Winnings payout",
	}
}

// CreateStakeRefundTransaction credits a wallet with a voided-market refund.
func CreateStakeRefundTransaction(participantID, walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	marketID, positionID uuid.UUID) *Transaction {
	return &Transaction{
		ParticipantID:   participantID,
		WalletID:        walletID,
		TransactionType: TransactionTypeStakeRefund,
		Amount:          amount,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Add(amount),
		MarketID:        &marketID,
		ReferenceID:     &positionID,
		Description:     "Refund for voided market",
	}
}

// CreateFeeForwardTransaction credits the treasury wallet with the platform
// fee collected at market finalization.
func CreateFeeForwardTransaction(participantID, walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	marketID uuid.UUID) *Transaction {
	return &Transaction{
		ParticipantID:   participantID,
		WalletID:        walletID,
		TransactionType: TransactionTypeFeeForward,
		Amount:          amount,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Add(amount),
		MarketID:        &marketID,
		Description:     "Platform fee forwarded",
		Metadata:        TransactionMetadata{FeeAmount: amount},
	}
}

// CreateBondTransaction debits a wallet for a challenge bond.
func CreateBondTransaction(participantID, walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	marketID uuid.UUID) *Transaction {
	return &Transaction{
		ParticipantID:   participantID,
		WalletID:        walletID,
		TransactionType: TransactionTypeBond,
		Amount:          amount.Neg(),
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Sub(amount),
		MarketID:        &marketID,
		Description:     "Challenge bond posted",
	}
}

// CreateBondRefundTransaction credits a wallet with a refunded bond.
func CreateBondRefundTransaction(participantID, walletID uuid.UUID,
	amount, balanceBefore decimal.Decimal,
	marketID uuid.UUID) *Transaction {
	return &Transaction{
		ParticipantID:   participantID,
		WalletID:        walletID,
		TransactionType: TransactionTypeBondRefund,
		Amount:          amount,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore.Add(amount),
		MarketID:        &marketID,
		Description:     "Challenge bond refunded",
	}
}
