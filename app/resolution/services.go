package resolution

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
	repo    Repository
	config  *Config
	feeSink FeeSink
	log     logger.Logger
}

// NewService creates a new resolution service
func NewService(repo Repository, config *Config, feeSink FeeSink, log logger.Logger) Service {
	return &service{
		repo:    repo,
		config:  config,
		feeSink: feeSink,
		log:     log,
	}
}

// ProposeOutcome moves an ACTIVE market past its deadline into RESOLVING and
// opens the community dispute window on the new resolution record.
func (s *service) ProposeOutcome(ctx context.Context, marketID, proposerID uuid.UUID, req *ProposeOutcomeRequest) (*ResolutionResponse, error) {
	if !req.Outcome.Valid() {
		return nil, models.ErrInvalidOutcome
	}
	now := time.Now()

	var resp *ResolutionResponse
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		market, err := s.lockMarket(ctx, repo, marketID)
		if err != nil {
			return err
		}
		if _, err = repo.GetResolutionByMarket(ctx, marketID); err == nil {
			return models.ErrResolutionExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check resolution: %w", err)
		}

		if err = market.BeginResolving(now); err != nil {
			return err
		}

		record := &models.ResolutionRecord{
			MarketID:        marketID,
			ProposedOutcome: req.Outcome,
			ProposerID:      proposerID,
			Evidence:        req.Evidence,
			Status:          models.ResolutionStatusProposed,
			OpenedAt:        now,
			Community: models.CommunityDispute{
				ProposedOutcome: req.Outcome,
				WindowEndsAt:    now.Add(s.config.DisputeWindow),
				Active:          true,
			},
		}
		if err = record.Validate(); err != nil {
			return err
		}

		if err = repo.CreateResolution(ctx, record); err != nil {
			return fmt.Errorf("create resolution: %w", err)
		}
		if err = repo.UpdateMarket(ctx, market); err != nil {
			return fmt.Errorf("update market: %w", err)
		}

		resp = ToResolutionResponse(market, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("outcome proposed", map[string]interface{}{
		"market_id":   marketID.String(),
		"proposer_id": proposerID.String(),
		"outcome":     int(req.Outcome),
	})
	return resp, nil
}

// SubmitDisputeSignals records updated cumulative community totals. Hitting
// the agreement threshold finalizes the market with the proposed outcome;
// hitting the disagreement threshold flags it DISPUTED for admin action.
func (s *service) SubmitDisputeSignals(ctx context.Context, marketID, aggregatorID uuid.UUID, req *SignalRequest) (*SignalResponse, error) {
	now := time.Now()

	var resp *SignalResponse
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		market, err := s.lockMarket(ctx, repo, marketID)
		if err != nil {
			return err
		}
		record, err := s.lockResolution(ctx, repo, marketID)
		if err != nil {
			return err
		}
		if !record.WindowOpen(now) {
			return models.ErrDisputeWindowClosed
		}

		verdict, err := record.RecordSignals(req.AgreeCount, req.DisagreeCount,
			s.config.AgreementThreshold, s.config.DisagreementThreshold)
		if err != nil {
			return err
		}

		switch verdict {
		case models.VerdictFinalize:
			if err = s.finalize(ctx, repo, tx, market, record, record.ProposedOutcome, aggregatorID, "community agreement threshold met"); err != nil {
				return err
			}
		case models.VerdictDispute:
			if err = market.MarkDisputed(); err != nil {
				return err
			}
			if err = repo.UpdateMarket(ctx, market); err != nil {
				return fmt.Errorf("update market: %w", err)
			}
		}

		if err = repo.UpdateResolution(ctx, record); err != nil {
			return fmt.Errorf("update resolution: %w", err)
		}

		resp = &SignalResponse{
			MarketID:      marketID,
			MarketStatus:  string(market.Status),
			AgreeCount:    record.Community.AgreeCount,
			DisagreeCount: record.Community.DisagreeCount,
			Verdict:       verdictLabel(verdict),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DisputeResolution posts a bond-backed challenge against the proposed
// outcome. The bond is debited immediately and held until an investigator
// rules on the challenge.
func (s *service) DisputeResolution(ctx context.Context, marketID, challengerID uuid.UUID, req *ChallengeRequest) (*ResolutionResponse, error) {
	now := time.Now()

	var resp *ResolutionResponse
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		market, err := s.lockMarket(ctx, repo, marketID)
		if err != nil {
			return err
		}
		record, err := s.lockResolution(ctx, repo, marketID)
		if err != nil {
			return err
		}
		if now.After(record.Community.WindowEndsAt) {
			return models.ErrDisputeWindowClosed
		}

		if err = record.Challenge(challengerID, req.Reason, req.Bond, s.config.MinimumBond, now); err != nil {
			return err
		}

		wallet, err := repo.GetWalletForUpdate(ctx, challengerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRecordNotFound
			}
			return fmt.Errorf("lock wallet: %w", err)
		}
		balanceBefore := wallet.Balance
		if err = wallet.Debit(req.Bond); err != nil {
			return err
		}
		if err = repo.UpdateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("debit bond: %w", err)
		}
		txn := models.CreateBondTransaction(challengerID, wallet.ID, req.Bond, balanceBefore, marketID)
		if err = repo.CreateTransaction(ctx, txn); err != nil {
			return fmt.Errorf("record bond: %w", err)
		}

		if err = repo.UpdateResolution(ctx, record); err != nil {
			return fmt.Errorf("update resolution: %w", err)
		}

		resp = ToResolutionResponse(market, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("resolution challenged", map[string]interface{}{
		"market_id":     marketID.String(),
		"challenger_id": challengerID.String(),
		"bond":          req.Bond.String(),
	})
	return resp, nil
}

// RuleOnChallenge settles an open bond dispute. An upheld challenge may
// change the proposed outcome and refunds the bond; a rejected challenge
// forfeits the bond into the market's accrued fees.
func (s *service) RuleOnChallenge(ctx context.Context, marketID, investigatorID uuid.UUID, req *RulingRequest) (*ResolutionResponse, error) {
	var resp *ResolutionResponse
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		market, err := s.lockMarket(ctx, repo, marketID)
		if err != nil {
			return err
		}
		record, err := s.lockResolution(ctx, repo, marketID)
		if err != nil {
			return err
		}

		bond := record.Bond
		if bond == nil || bond.Status != models.BondDisputeOpen {
			return models.ErrNoOpenChallenge
		}
		challengerID := bond.ChallengerID
		bondAmount := bond.BondAmount

		if err = record.RuleOnChallenge(req.Upheld, req.NewOutcome); err != nil {
			return err
		}

		if req.Upheld {
			wallet, werr := repo.GetWalletForUpdate(ctx, challengerID)
			if werr != nil {
				return fmt.Errorf("lock challenger wallet: %w", werr)
			}
			balanceBefore := wallet.Balance
			if werr = wallet.Credit(bondAmount); werr != nil {
				return werr
			}
			if werr = repo.UpdateWallet(ctx, wallet); werr != nil {
				return fmt.Errorf("refund bond: %w", werr)
			}
			txn := models.CreateBondRefundTransaction(challengerID, wallet.ID, bondAmount, balanceBefore, marketID)
			if werr = repo.CreateTransaction(ctx, txn); werr != nil {
				return fmt.Errorf("record bond refund: %w", werr)
			}
		} else {
			market.AccruedFees = market.AccruedFees.Add(bondAmount)
			if err = repo.UpdateMarket(ctx, market); err != nil {
				return fmt.Errorf("forfeit bond: %w", err)
			}
		}

		entry := models.CreateActorAuditLog(investigatorID, models.AuditActionBondRuling, "resolution", &record.ID,
			models.AuditValues{"bond_status": string(models.BondDisputeOpen)},
			models.AuditValues{"bond_status": string(record.Bond.Status), "upheld": req.Upheld},
			req.Reason)
		if err = repo.CreateAuditLog(ctx, entry); err != nil {
			return fmt.Errorf("audit ruling: %w", err)
		}

		if err = repo.UpdateResolution(ctx, record); err != nil {
			return fmt.Errorf("update resolution: %w", err)
		}

		resp = ToResolutionResponse(market, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// FinalizeAfterWindow seals a resolution once its dispute window has elapsed
// with no threshold hit and no open challenge.
func (s *service) FinalizeAfterWindow(ctx context.Context, marketID, callerID uuid.UUID) (*ResolutionResponse, error) {
	now := time.Now()

	var resp *ResolutionResponse
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		market, err := s.lockMarket(ctx, repo, marketID)
		if err != nil {
			return err
		}
		record, err := s.lockResolution(ctx, repo, marketID)
		if err != nil {
			return err
		}
		if now.Before(record.Community.WindowEndsAt) {
			return models.ErrDisputeWindowOpen
		}

		if err = s.finalize(ctx, repo, tx, market, record, record.ProposedOutcome, callerID, "dispute window elapsed"); err != nil {
			return err
		}
		if err = repo.UpdateResolution(ctx, record); err != nil {
			return fmt.Errorf("update resolution: %w", err)
		}

		resp = ToResolutionResponse(market, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AdminResolveMarket is the unconditional administrator override for
// DISPUTED markets. The chosen outcome and reason are recorded in the audit
// trail.
func (s *service) AdminResolveMarket(ctx context.Context, marketID, adminID uuid.UUID, req *AdminResolveRequest) (*ResolutionResponse, error) {
	if !req.Outcome.Valid() {
		return nil, models.ErrInvalidOutcome
	}

	var resp *ResolutionResponse
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		market, err := s.lockMarket(ctx, repo, marketID)
		if err != nil {
			return err
		}
		if market.Status != models.MarketStatusDisputed {
			return models.ErrMarketNotDisputed
		}
		record, err := s.lockResolution(ctx, repo, marketID)
		if err != nil {
			return err
		}

		if err = s.finalize(ctx, repo, tx, market, record, req.Outcome, adminID, req.Reason); err != nil {
			return err
		}

		entry := models.CreateActorAuditLog(adminID, models.AuditActionAdminOverride, "market", &marketID,
			models.AuditValues{"status": string(models.MarketStatusDisputed)},
			models.AuditValues{"status": string(models.MarketStatusFinalized), "outcome": int(req.Outcome)},
			req.Reason)
		if err = repo.CreateAuditLog(ctx, entry); err != nil {
			return fmt.Errorf("audit override: %w", err)
		}

		if err = repo.UpdateResolution(ctx, record); err != nil {
			return fmt.Errorf("update resolution: %w", err)
		}

		resp = ToResolutionResponse(market, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("admin override applied", map[string]interface{}{
		"market_id": marketID.String(),
		"admin_id":  adminID.String(),
		"outcome":   int(req.Outcome),
	})
	return resp, nil
}

// GetResolution returns the resolution state of a market.
func (s *service) GetResolution(ctx context.Context, marketID uuid.UUID) (*ResolutionResponse, error) {
	record, err := s.repo.GetResolutionByMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNoOpenResolution
		}
		return nil, fmt.Errorf("get resolution: %w", err)
	}
	market, err := s.repo.GetMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get market: %w", err)
	}
	return ToResolutionResponse(market, record), nil
}

// finalize seals both the record and the market and forwards the platform
// fee. A fee sink failure never blocks finalization: the amount stays in the
// market's accrued fees instead.
func (s *service) finalize(ctx context.Context, repo Repository, tx *gorm.DB, market *models.Market, record *models.ResolutionRecord, outcome models.Outcome, by uuid.UUID, reason string) error {
	if err := record.FinalizeWith(outcome, by, reason); err != nil {
		return err
	}
	if err := market.Finalize(outcome, reason); err != nil {
		return err
	}

	fee := market.PlatformFee()
	if fee.IsPositive() {
		if err := s.forwardFee(ctx, tx, market.ID, fee); err != nil {
			market.AccruedFees = market.AccruedFees.Add(fee)
			s.log.Error(err, map[string]interface{}{
				"market_id": market.ID.String(),
				"fee":       fee.String(),
			})
		}
	}

	if err := repo.UpdateMarket(ctx, market); err != nil {
		return fmt.Errorf("finalize market: %w", err)
	}
	return nil
}

func (s *service) forwardFee(ctx context.Context, tx *gorm.DB, marketID uuid.UUID, fee decimal.Decimal) error {
	if s.feeSink == nil {
		return errors.New("fee sink not configured")
	}
	return s.feeSink.Forward(ctx, tx, marketID, fee)
}

func (s *service) lockMarket(ctx context.Context, repo Repository, marketID uuid.UUID) (*models.Market, error) {
	market, err := repo.GetMarketForUpdate(ctx, marketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("lock market: %w", err)
	}
	return market, nil
}

func (s *service) lockResolution(ctx context.Context, repo Repository, marketID uuid.UUID) (*models.ResolutionRecord, error) {
	record, err := repo.GetResolutionForUpdate(ctx, marketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNoOpenResolution
		}
		return nil, fmt.Errorf("lock resolution: %w", err)
	}
	return record, nil
}
