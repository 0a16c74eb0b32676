package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/internal/logger"
	"github.com/0xBased-lang/kektech/models"
)

// service implements the Service interface
type service struct {
	repo  Repository
	guard EntryGuard
	log   logger.Logger
}

// NewService creates a new settlement service
func NewService(repo Repository, guard EntryGuard, log logger.Logger) Service {
	return &service{
		repo:  repo,
		guard: guard,
		log:   log,
	}
}

// CalculatePayout computes a winner's pro-rata share of the prize pool. Only
// real share inventories participate; display liquidity never does.
func CalculatePayout(position *models.Position, market *models.Market) (decimal.Decimal, error) {
	if !position.IsWinner(market.Result) {
		return decimal.Zero, models.ErrNothingToClaim
	}
	winningShares := market.WinningShares()
	if winningShares.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, models.ErrNoWinningShares
	}
	// RoundDown keeps the sum of all payouts at or under the prize pool.
	return position.Shares.Div(winningShares).Mul(market.PrizePool()).RoundDown(2), nil
}

func (s *service) PreviewClaim(ctx context.Context, marketID, participantID uuid.UUID) (*ClaimPreviewResponse, error) {
	market, err := s.repo.GetMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get market: %w", err)
	}
	position, err := s.repo.GetPosition(ctx, marketID, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNoPosition
		}
		return nil, fmt.Errorf("get position: %w", err)
	}

	resp := &ClaimPreviewResponse{
		MarketID:     marketID,
		MarketStatus: string(market.Status),
		Claimed:      position.Claimed,
		ClaimedAt:    position.ClaimedAt,
	}

	switch market.Status {
	case models.MarketStatusFinalized:
		payout, perr := CalculatePayout(position, market)
		if perr != nil {
			return nil, perr
		}
		resp.Kind = ClaimKindPayout
		resp.Amount = payout
	case models.MarketStatusVoided:
		resp.Kind = ClaimKindRefund
		resp.Amount = position.Amount
	default:
		return nil, models.ErrMarketNotFinalized
	}
	if position.Claimed && position.PayoutAmount != nil {
		resp.Amount = *position.PayoutAmount
	}
	return resp, nil
}

// Claim pays out a winning position on a FINALIZED market or refunds the
// original stake on a VOIDED one. The claimed flag is persisted before the
// wallet credit so a concurrent retry can never pay twice.
func (s *service) Claim(ctx context.Context, marketID, participantID uuid.UUID) (*ClaimResponse, error) {
	if !s.guard.TryAcquire(marketID) {
		return nil, models.ErrOperationInProgress
	}
	defer s.guard.Release(marketID)

	var resp *ClaimResponse
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		market, err := repo.GetMarketForUpdate(ctx, marketID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRecordNotFound
			}
			return fmt.Errorf("lock market: %w", err)
		}
		position, err := repo.GetPositionForUpdate(ctx, marketID, participantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNoPosition
			}
			return fmt.Errorf("lock position: %w", err)
		}

		var amount decimal.Decimal
		var kind string
		switch market.Status {
		case models.MarketStatusFinalized:
			amount, err = CalculatePayout(position, market)
			if err != nil {
				return err
			}
			kind = ClaimKindPayout
		case models.MarketStatusVoided:
			amount = position.Amount
			kind = ClaimKindRefund
		default:
			return models.ErrMarketNotFinalized
		}

		if err = position.MarkClaimed(amount); err != nil {
			return err
		}
		if err = repo.UpdatePosition(ctx, position); err != nil {
			return fmt.Errorf("mark claimed: %w", err)
		}

		wallet, err := repo.GetWalletForUpdate(ctx, participantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRecordNotFound
			}
			return fmt.Errorf("lock wallet: %w", err)
		}
		balanceBefore := wallet.Balance
		if err = wallet.Credit(amount); err != nil {
			return err
		}
		if err = repo.UpdateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}

		var txn *models.Transaction
		if kind == ClaimKindPayout {
			txn = models.CreatePayoutTransaction(participantID, wallet.ID, amount, balanceBefore, marketID, position.ID)
		} else {
			txn = models.CreateStakeRefundTransaction(participantID, wallet.ID, amount, balanceBefore, marketID, position.ID)
		}
		if err = repo.CreateTransaction(ctx, txn); err != nil {
			return fmt.Errorf("record claim: %w", err)
		}

		resp = &ClaimResponse{
			MarketID:      marketID,
			PositionID:    position.ID,
			Kind:          kind,
			Amount:        amount,
			WalletBalance: wallet.Balance,
			ClaimedAt:     time.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("claim settled", map[string]interface{}{
		"market_id":      marketID.String(),
		"participant_id": participantID.String(),
		"kind":           resp.Kind,
		"amount":         resp.Amount.String(),
	})
	return resp, nil
}
