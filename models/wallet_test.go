package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWallet(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		w := Wallet{}
		assert.Equal(t, "wallets", w.TableName())
	})

	t.Run("BeforeCreate", func(t *testing.T) {
		w := Wallet{}
		err := w.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, w.ID)
	})

	t.Run("Credit", func(t *testing.T) {
		w := Wallet{Balance: decimal.NewFromInt(100)}

		err := w.Credit(decimal.NewFromInt(50))
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(150).Equal(w.Balance))

		err = w.Credit(decimal.Zero)
		assert.Equal(t, ErrInvalidTransactionAmount, err)

		err = w.Credit(decimal.NewFromInt(-10))
		assert.Equal(t, ErrInvalidTransactionAmount, err)
	})

	t.Run("Debit", func(t *testing.T) {
		w := Wallet{Balance: decimal.NewFromInt(100)}

		assert.True(t, w.CanDebit(decimal.NewFromInt(100)))
		assert.False(t, w.CanDebit(decimal.NewFromInt(101)))

		err := w.Debit(decimal.NewFromInt(60))
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(40).Equal(w.Balance))

		err = w.Debit(decimal.NewFromInt(50))
		assert.Equal(t, ErrInsufficientBalance, err)
		assert.True(t, decimal.NewFromInt(40).Equal(w.Balance))

		err = w.Debit(decimal.Zero)
		assert.Equal(t, ErrInvalidTransactionAmount, err)
	})

	t.Run("Lock and Unlock", func(t *testing.T) {
		w := Wallet{}
		assert.True(t, w.IsOperationAllowed())

		w.Lock("fraud review")
		assert.False(t, w.IsOperationAllowed())
		assert.Equal(t, "fraud review", w.LockReason)

		w.Unlock()
		assert.True(t, w.IsOperationAllowed())
		assert.Equal(t, "", w.LockReason)
	})

	t.Run("Validate", func(t *testing.T) {
		w := Wallet{ParticipantID: uuid.New(), Balance: decimal.NewFromInt(10)}
		assert.NoError(t, w.Validate())

		w.ParticipantID = uuid.Nil
		assert.Equal(t, ErrInvalidParticipantID, w.Validate())

		w.ParticipantID = uuid.New()
		w.Balance = decimal.NewFromInt(-1)
		assert.Equal(t, ErrNegativeBalance, w.Validate())
	})
}
