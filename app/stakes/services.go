package stakes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/app/markets"
	"github.com/0xBased-lang/kektech/internal/cache"
	"github.com/0xBased-lang/kektech/internal/logger"
	"github.com/0xBased-lang/kektech/models"
)

// service implements the Service interface
type service struct {
	repo       Repository
	config     *Config
	pricing    markets.PricingEngine
	safeguards SafeguardEngine
	guard      EntryGuard
	oddsCache  cache.Cache[markets.OddsQuote]
	log        logger.Logger
}

// NewService creates a new stake placement service
func NewService(
	repo Repository,
	config *Config,
	pricing markets.PricingEngine,
	safeguards SafeguardEngine,
	guard EntryGuard,
	oddsCache cache.Cache[markets.OddsQuote],
	log logger.Logger,
) Service {
	return &service{
		repo:       repo,
		config:     config,
		pricing:    pricing,
		safeguards: safeguards,
		guard:      guard,
		oddsCache:  oddsCache,
		log:        log,
	}
}

// PlaceStake buys shares of an outcome with the given payment. The request
// runs through every protection check before any state changes, then debits
// the wallet, accumulates the position and moves the market inventories in a
// single database transaction.
func (s *service) PlaceStake(ctx context.Context, marketID, participantID uuid.UUID, req *PlaceStakeRequest) (*StakeResponse, error) {
	now := time.Now()

	if err := s.safeguards.CheckExpiry(req.ExpiresAt, now); err != nil {
		return nil, err
	}
	if err := s.safeguards.CheckStakeBounds(req.Amount); err != nil {
		return nil, err
	}
	if !req.Outcome.Valid() {
		return nil, models.ErrInvalidOutcome
	}

	if !s.guard.TryAcquire(marketID) {
		return nil, models.ErrOperationInProgress
	}
	defer s.guard.Release(marketID)

	var resp *StakeResponse
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		market, err := repo.GetMarketForUpdate(ctx, marketID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRecordNotFound
			}
			return fmt.Errorf("lock market: %w", err)
		}
		if !market.CanStake(now) {
			if market.Status == models.MarketStatusActive {
				return models.ErrBettingClosed
			}
			return models.ErrMarketNotActive
		}

		if err = s.safeguards.CheckWhaleLimit(market, req.Amount); err != nil {
			return err
		}

		shares, actualCost, err := s.pricing.QuoteShares(market, req.Outcome, req.Amount)
		if err != nil {
			return err
		}
		if err = s.safeguards.CheckSlippage(shares, actualCost, req.MinOddsBps); err != nil {
			return err
		}

		wallet, err := repo.GetWalletForUpdate(ctx, participantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRecordNotFound
			}
			return fmt.Errorf("lock wallet: %w", err)
		}
		if !wallet.IsOperationAllowed() {
			return models.ErrForbidden
		}

		balanceBefore := wallet.Balance
		if err = wallet.Debit(actualCost); err != nil {
			return err
		}
		if err = repo.UpdateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("debit wallet: %w", err)
		}

		position, err := repo.GetPosition(ctx, marketID, participantID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load position: %w", err)
			}
			position = &models.Position{
				MarketID:      marketID,
				ParticipantID: participantID,
				Outcome:       req.Outcome,
			}
		}
		if err = position.Accumulate(req.Outcome, actualCost, shares); err != nil {
			return err
		}
		if err = repo.SavePosition(ctx, position); err != nil {
			return fmt.Errorf("save position: %w", err)
		}

		if err = market.ApplyStake(req.Outcome, shares, actualCost); err != nil {
			return err
		}
		if err = repo.UpdateMarket(ctx, market); err != nil {
			return fmt.Errorf("update market: %w", err)
		}

		effectiveBps := effectiveOdds(shares, actualCost)
		txn := models.CreateStakeTransaction(participantID, wallet.ID, actualCost, balanceBefore, marketID,
			models.TransactionMetadata{
				Outcome: req.Outcome,
				Shares:  shares,
				OddsBps: effectiveBps,
			})
		if err = repo.CreateTransaction(ctx, txn); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}

		resp = &StakeResponse{
			MarketID:      marketID,
			ParticipantID: participantID,
			Outcome:       req.Outcome,
			OutcomeLabel:  market.OutcomeLabel(req.Outcome),
			Amount:        actualCost,
			SharesIssued:  shares,
			EffectiveBps:  effectiveBps,
			TotalShares:   position.Shares,
			TotalAmount:   position.Amount,
			PlacedAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cerr := s.oddsCache.Delete(ctx, markets.OddsCacheKey(marketID)); cerr != nil {
		s.log.Debug("odds cache invalidation failed", map[string]interface{}{
			"market_id": marketID.String(),
			"error":     cerr.Error(),
		})
	}

	s.log.Info("stake placed", map[string]interface{}{
		"market_id":      marketID.String(),
		"participant_id": participantID.String(),
		"amount":         resp.Amount.String(),
		"shares":         resp.SharesIssued.String(),
	})
	return resp, nil
}

// Quote prices a stake without committing anything. The numbers are
// advisory; another stake can move the curve before placement.
func (s *service) Quote(ctx context.Context, marketID uuid.UUID, req *QuoteRequest) (*QuoteResponse, error) {
	market, err := s.repo.GetMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get market: %w", err)
	}
	if !market.CanStake(time.Now()) {
		return nil, models.ErrMarketNotActive
	}

	shares, actualCost, err := s.pricing.QuoteShares(market, req.Outcome, req.Amount)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		MarketID:     marketID,
		Outcome:      req.Outcome,
		Amount:       req.Amount,
		Shares:       shares,
		ActualCost:   actualCost,
		EffectiveBps: effectiveOdds(shares, actualCost),
	}, nil
}

// GetPosition returns the participant's position in a market.
func (s *service) GetPosition(ctx context.Context, marketID, participantID uuid.UUID) (*PositionResponse, error) {
	position, err := s.repo.GetPosition(ctx, marketID, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNoPosition
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return ToPositionResponse(position), nil
}

// GetPortfolio returns every position held by the participant.
func (s *service) GetPortfolio(ctx context.Context, participantID uuid.UUID) (*PortfolioResponse, error) {
	positions, err := s.repo.GetPositionsByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	resp := &PortfolioResponse{
		ParticipantID: participantID,
		Positions:     make([]PositionResponse, 0, len(positions)),
		TotalStaked:   decimal.Zero,
	}
	for i := range positions {
		resp.Positions = append(resp.Positions, *ToPositionResponse(&positions[i]))
		resp.TotalStaked = resp.TotalStaked.Add(positions[i].Amount)
	}
	return resp, nil
}

// effectiveOdds is the realized payout multiple of a fill in basis points.
func effectiveOdds(shares, cost decimal.Decimal) int64 {
	if cost.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return shares.Div(cost).Mul(oddsScale).RoundDown(0).IntPart()
}
