package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/models"
)

// TreasurySink credits forwarded platform fees to the treasury wallet. It
// runs inside the market finalization transaction; the nested transaction
// gives it a savepoint so a failed forward rolls back cleanly and leaves the
// outer finalization intact.
type TreasurySink struct {
	repo       Repository
	treasuryID uuid.UUID
}

// NewTreasurySink creates a fee sink targeting the configured treasury
// participant. A nil UUID disables forwarding.
func NewTreasurySink(repo Repository, treasuryID uuid.UUID) *TreasurySink {
	return &TreasurySink{
		repo:       repo,
		treasuryID: treasuryID,
	}
}

func (t *TreasurySink) Forward(ctx context.Context, tx *gorm.DB, marketID uuid.UUID, amount decimal.Decimal) error {
	if t.treasuryID == uuid.Nil {
		return errors.New("treasury participant not configured")
	}
	if tx == nil {
		return errors.New("fee forward requires an open transaction")
	}

	return tx.Transaction(func(inner *gorm.DB) error {
		repo := t.repo.WithTx(inner)

		wallet, err := repo.GetWalletForUpdate(ctx, t.treasuryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRecordNotFound
			}
			return fmt.Errorf("lock treasury wallet: %w", err)
		}
		balanceBefore := wallet.Balance
		if err = wallet.Credit(amount); err != nil {
			return err
		}
		if err = repo.UpdateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("credit treasury: %w", err)
		}

		txn := models.CreateFeeForwardTransaction(t.treasuryID, wallet.ID, amount, balanceBefore, marketID)
		if err = repo.CreateTransaction(ctx, txn); err != nil {
			return fmt.Errorf("record fee forward: %w", err)
		}
		return nil
	})
}
