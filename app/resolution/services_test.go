package resolution

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/internal/logger"
	"github.com/0xBased-lang/kektech/models"
)

type MockResolutionRepo struct {
	mock.Mock
}

func (m *MockResolutionRepo) WithTx(_ *gorm.DB) Repository {
	return m
}

func (m *MockResolutionRepo) GetMarket(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Market), args.Error(1)
}

func (m *MockResolutionRepo) GetMarketForUpdate(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Market), args.Error(1)
}

func (m *MockResolutionRepo) UpdateMarket(ctx context.Context, market *models.Market) error {
	return m.Called(ctx, market).Error(0)
}

func (m *MockResolutionRepo) GetResolutionByMarket(ctx context.Context, marketID uuid.UUID) (*models.ResolutionRecord, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResolutionRecord), args.Error(1)
}

func (m *MockResolutionRepo) GetResolutionForUpdate(ctx context.Context, marketID uuid.UUID) (*models.ResolutionRecord, error) {
	args := m.Called(ctx, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResolutionRecord), args.Error(1)
}

func (m *MockResolutionRepo) CreateResolution(ctx context.Context, record *models.ResolutionRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockResolutionRepo) UpdateResolution(ctx context.Context, record *models.ResolutionRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockResolutionRepo) GetWalletForUpdate(ctx context.Context, participantID uuid.UUID) (*models.Wallet, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockResolutionRepo) UpdateWallet(ctx context.Context, wallet *models.Wallet) error {
	return m.Called(ctx, wallet).Error(0)
}

func (m *MockResolutionRepo) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockResolutionRepo) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockResolutionRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type MockFeeSink struct {
	mock.Mock
}

func (m *MockFeeSink) Forward(ctx context.Context, tx *gorm.DB, marketID uuid.UUID, amount decimal.Decimal) error {
	return m.Called(ctx, tx, marketID, amount).Error(0)
}

// matchAmount matches a decimal argument by value rather than representation.
func matchAmount(n int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(n))
	})
}

type ResolutionServiceTestSuite struct {
	suite.Suite
	repo    *MockResolutionRepo
	feeSink *MockFeeSink
	service Service
	ctx     context.Context

	marketID   uuid.UUID
	proposerID uuid.UUID
	actorID    uuid.UUID
}

func (s *ResolutionServiceTestSuite) SetupTest() {
	s.repo = new(MockResolutionRepo)
	s.feeSink = new(MockFeeSink)
	s.service = NewService(s.repo, GetDefaultConfig(), s.feeSink, logger.NewNullLogger())
	s.ctx = context.Background()
	s.marketID = uuid.New()
	s.proposerID = uuid.New()
	s.actorID = uuid.New()
}

// expiredMarket is ACTIVE with a deadline in the past, eligible for an
// outcome proposal.
func (s *ResolutionServiceTestSuite) expiredMarket() *models.Market {
	return &models.Market{
		ID:                 s.marketID,
		Question:           "Will the bridge launch before October?",
		Outcome1Label:      "Yes",
		Outcome2Label:      "No",
		Status:             models.MarketStatusActive,
		ResolutionDeadline: time.Now().Add(-time.Hour),
		Liquidity:          decimal.NewFromInt(100),
		PoolAmount:         decimal.NewFromInt(1000),
		FeePercentage:      decimal.NewFromFloat(0.02),
	}
}

func (s *ResolutionServiceTestSuite) resolvingMarket() *models.Market {
	m := s.expiredMarket()
	m.Status = models.MarketStatusResolving
	return m
}

func (s *ResolutionServiceTestSuite) openRecord() *models.ResolutionRecord {
	return &models.ResolutionRecord{
		ID:              uuid.New(),
		MarketID:        s.marketID,
		ProposedOutcome: models.Outcome1,
		ProposerID:      s.proposerID,
		Status:          models.ResolutionStatusProposed,
		OpenedAt:        time.Now().Add(-time.Hour),
		Community: models.CommunityDispute{
			ProposedOutcome: models.Outcome1,
			WindowEndsAt:    time.Now().Add(47 * time.Hour),
			Active:          true,
		},
	}
}

func (s *ResolutionServiceTestSuite) TestProposeOutcome() {
	market := s.expiredMarket()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionByMarket", s.ctx, s.marketID).Return(nil, gorm.ErrRecordNotFound)
	s.repo.On("CreateResolution", s.ctx, mock.AnythingOfType("*models.ResolutionRecord")).Return(nil)
	s.repo.On("UpdateMarket", s.ctx, market).Return(nil)

	resp, err := s.service.ProposeOutcome(s.ctx, s.marketID, s.proposerID, &ProposeOutcomeRequest{
		Outcome:  models.Outcome1,
		Evidence: "official announcement",
	})
	s.Require().NoError(err)

	s.Equal(models.MarketStatusResolving, market.Status)
	s.Equal(models.Outcome1, resp.ProposedOutcome)
	s.True(resp.WindowOpen)
	s.WithinDuration(time.Now().Add(48*time.Hour), resp.WindowEndsAt, time.Minute)
	s.repo.AssertExpectations(s.T())
}

func (s *ResolutionServiceTestSuite) TestProposeOutcomeRejectsDuplicate() {
	market := s.expiredMarket()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionByMarket", s.ctx, s.marketID).Return(s.openRecord(), nil)

	_, err := s.service.ProposeOutcome(s.ctx, s.marketID, s.proposerID, &ProposeOutcomeRequest{Outcome: models.Outcome2})
	s.ErrorIs(err, models.ErrResolutionExists)
}

func (s *ResolutionServiceTestSuite) TestProposeOutcomeRejectsBeforeDeadline() {
	market := s.expiredMarket()
	market.ResolutionDeadline = time.Now().Add(time.Hour)

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionByMarket", s.ctx, s.marketID).Return(nil, gorm.ErrRecordNotFound)

	_, err := s.service.ProposeOutcome(s.ctx, s.marketID, s.proposerID, &ProposeOutcomeRequest{Outcome: models.Outcome1})
	s.ErrorIs(err, models.ErrBettingClosed)
}

func (s *ResolutionServiceTestSuite) TestSignalsAgreementFinalizes() {
	market := s.resolvingMarket()
	record := s.openRecord()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("UpdateMarket", s.ctx, market).Return(nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)
	s.feeSink.On("Forward", s.ctx, (*gorm.DB)(nil), s.marketID, matchAmount(20)).Return(nil)

	resp, err := s.service.SubmitDisputeSignals(s.ctx, s.marketID, s.actorID, &SignalRequest{
		AgreeCount:    80,
		DisagreeCount: 20,
	})
	s.Require().NoError(err)

	s.Equal("finalized", resp.Verdict)
	s.Equal(string(models.MarketStatusFinalized), resp.MarketStatus)
	s.Equal(models.Outcome1, market.Result)
	s.True(record.IsFinalized())
	s.feeSink.AssertExpectations(s.T())
}

func (s *ResolutionServiceTestSuite) TestSignalsExactAgreementBoundary() {
	market := s.resolvingMarket()
	record := s.openRecord()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("UpdateMarket", s.ctx, market).Return(nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)
	s.feeSink.On("Forward", s.ctx, (*gorm.DB)(nil), s.marketID, mock.Anything).Return(nil)

	resp, err := s.service.SubmitDisputeSignals(s.ctx, s.marketID, s.actorID, &SignalRequest{
		AgreeCount:    75,
		DisagreeCount: 25,
	})
	s.Require().NoError(err)
	s.Equal("finalized", resp.Verdict)
}

func (s *ResolutionServiceTestSuite) TestSignalsBelowBothThresholds() {
	market := s.resolvingMarket()
	record := s.openRecord()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)

	resp, err := s.service.SubmitDisputeSignals(s.ctx, s.marketID, s.actorID, &SignalRequest{
		AgreeCount:    74,
		DisagreeCount: 26,
	})
	s.Require().NoError(err)

	s.Equal("pending", resp.Verdict)
	s.Equal(models.MarketStatusResolving, market.Status)
	s.True(record.WindowOpen(time.Now()))
	s.feeSink.AssertNotCalled(s.T(), "Forward", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ResolutionServiceTestSuite) TestSignalsDisagreementDisputes() {
	market := s.resolvingMarket()
	record := s.openRecord()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("UpdateMarket", s.ctx, market).Return(nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)

	resp, err := s.service.SubmitDisputeSignals(s.ctx, s.marketID, s.actorID, &SignalRequest{
		AgreeCount:    40,
		DisagreeCount: 60,
	})
	s.Require().NoError(err)

	s.Equal("disputed", resp.Verdict)
	s.Equal(models.MarketStatusDisputed, market.Status)
	s.False(record.IsFinalized())
}

func (s *ResolutionServiceTestSuite) TestSignalsRejectedAfterWindow() {
	market := s.resolvingMarket()
	record := s.openRecord()
	record.Community.WindowEndsAt = time.Now().Add(-time.Minute)

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)

	_, err := s.service.SubmitDisputeSignals(s.ctx, s.marketID, s.actorID, &SignalRequest{AgreeCount: 10, DisagreeCount: 0})
	s.ErrorIs(err, models.ErrDisputeWindowClosed)
}

func (s *ResolutionServiceTestSuite) TestSignalsRejectShrinkingCounts() {
	market := s.resolvingMarket()
	record := s.openRecord()
	record.Community.AgreeCount = 50
	record.Community.DisagreeCount = 10

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)

	_, err := s.service.SubmitDisputeSignals(s.ctx, s.marketID, s.actorID, &SignalRequest{AgreeCount: 40, DisagreeCount: 10})
	s.ErrorIs(err, models.ErrInvalidSignalCounts)
}

func (s *ResolutionServiceTestSuite) TestChallengeDebitsBond() {
	market := s.resolvingMarket()
	record := s.openRecord()
	wallet := &models.Wallet{ID: uuid.New(), ParticipantID: s.actorID, Balance: decimal.NewFromInt(500)}

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("GetWalletForUpdate", s.ctx, s.actorID).Return(wallet, nil)
	s.repo.On("UpdateWallet", s.ctx, wallet).Return(nil)
	s.repo.On("CreateTransaction", s.ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)

	resp, err := s.service.DisputeResolution(s.ctx, s.marketID, s.actorID, &ChallengeRequest{
		Reason: "outcome contradicts the source data",
		Bond:   decimal.NewFromInt(150),
	})
	s.Require().NoError(err)

	s.True(wallet.Balance.Equal(decimal.NewFromInt(350)))
	s.Require().NotNil(resp.Bond)
	s.Equal(string(models.BondDisputeOpen), resp.Bond.Status)
	s.repo.AssertExpectations(s.T())
}

func (s *ResolutionServiceTestSuite) TestChallengeRejectsSmallBond() {
	market := s.resolvingMarket()
	record := s.openRecord()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)

	_, err := s.service.DisputeResolution(s.ctx, s.marketID, s.actorID, &ChallengeRequest{
		Reason: "too cheap",
		Bond:   decimal.NewFromInt(50),
	})
	s.ErrorIs(err, models.ErrBondTooSmall)
	s.repo.AssertNotCalled(s.T(), "GetWalletForUpdate", mock.Anything, mock.Anything)
}

func (s *ResolutionServiceTestSuite) TestChallengeRejectsInsufficientBalance() {
	market := s.resolvingMarket()
	record := s.openRecord()
	wallet := &models.Wallet{ID: uuid.New(), ParticipantID: s.actorID, Balance: decimal.NewFromInt(50)}

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("GetWalletForUpdate", s.ctx, s.actorID).Return(wallet, nil)

	_, err := s.service.DisputeResolution(s.ctx, s.marketID, s.actorID, &ChallengeRequest{
		Reason: "outcome contradicts the source data",
		Bond:   decimal.NewFromInt(150),
	})
	s.ErrorIs(err, models.ErrInsufficientBalance)
}

func (s *ResolutionServiceTestSuite) TestRulingUpheldRefundsBondAndSwapsOutcome() {
	market := s.resolvingMarket()
	record := s.openRecord()
	challengerID := uuid.New()
	s.Require().NoError(record.Challenge(challengerID, "wrong call", decimal.NewFromInt(150), decimal.NewFromInt(100), time.Now()))
	wallet := &models.Wallet{ID: uuid.New(), ParticipantID: challengerID, Balance: decimal.NewFromInt(350)}

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("GetWalletForUpdate", s.ctx, challengerID).Return(wallet, nil)
	s.repo.On("UpdateWallet", s.ctx, wallet).Return(nil)
	s.repo.On("CreateTransaction", s.ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)
	s.repo.On("CreateAuditLog", s.ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)

	resp, err := s.service.RuleOnChallenge(s.ctx, s.marketID, s.actorID, &RulingRequest{
		Upheld:     true,
		NewOutcome: models.Outcome2,
		Reason:     "challenger evidence verified",
	})
	s.Require().NoError(err)

	s.True(wallet.Balance.Equal(decimal.NewFromInt(500)))
	s.Equal(models.Outcome2, resp.ProposedOutcome)
	s.Equal(string(models.BondDisputeUpheld), resp.Bond.Status)
}

func (s *ResolutionServiceTestSuite) TestRulingRejectedForfeitsBond() {
	market := s.resolvingMarket()
	record := s.openRecord()
	s.Require().NoError(record.Challenge(uuid.New(), "wrong call", decimal.NewFromInt(150), decimal.NewFromInt(100), time.Now()))

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("UpdateMarket", s.ctx, market).Return(nil)
	s.repo.On("CreateAuditLog", s.ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)

	resp, err := s.service.RuleOnChallenge(s.ctx, s.marketID, s.actorID, &RulingRequest{
		Upheld: false,
		Reason: "challenge unsubstantiated",
	})
	s.Require().NoError(err)

	s.True(market.AccruedFees.Equal(decimal.NewFromInt(150)))
	s.Equal(string(models.BondDisputeRejected), resp.Bond.Status)
	s.repo.AssertNotCalled(s.T(), "GetWalletForUpdate", mock.Anything, mock.Anything)
}

func (s *ResolutionServiceTestSuite) TestRulingWithoutChallenge() {
	market := s.resolvingMarket()
	record := s.openRecord()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)

	_, err := s.service.RuleOnChallenge(s.ctx, s.marketID, s.actorID, &RulingRequest{Upheld: false, Reason: "nothing open"})
	s.ErrorIs(err, models.ErrNoOpenChallenge)
}

func (s *ResolutionServiceTestSuite) TestFinalizeAfterWindow() {
	market := s.resolvingMarket()
	record := s.openRecord()
	record.Community.WindowEndsAt = time.Now().Add(-time.Minute)

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("UpdateMarket", s.ctx, market).Return(nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)
	s.feeSink.On("Forward", s.ctx, (*gorm.DB)(nil), s.marketID, matchAmount(20)).Return(nil)

	resp, err := s.service.FinalizeAfterWindow(s.ctx, s.marketID, s.actorID)
	s.Require().NoError(err)

	s.Equal(string(models.MarketStatusFinalized), resp.MarketStatus)
	s.Equal(models.Outcome1, resp.FinalOutcome)
}

func (s *ResolutionServiceTestSuite) TestFinalizeRejectedWhileWindowOpen() {
	market := s.resolvingMarket()
	record := s.openRecord()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)

	_, err := s.service.FinalizeAfterWindow(s.ctx, s.marketID, s.actorID)
	s.ErrorIs(err, models.ErrDisputeWindowOpen)
}

func (s *ResolutionServiceTestSuite) TestAdminResolveDisputedMarket() {
	market := s.resolvingMarket()
	market.Status = models.MarketStatusDisputed
	record := s.openRecord()
	record.Community.Active = false

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("UpdateMarket", s.ctx, market).Return(nil)
	s.repo.On("CreateAuditLog", s.ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)
	s.feeSink.On("Forward", s.ctx, (*gorm.DB)(nil), s.marketID, matchAmount(20)).Return(nil)

	resp, err := s.service.AdminResolveMarket(s.ctx, s.marketID, s.actorID, &AdminResolveRequest{
		Outcome: models.Outcome2,
		Reason:  "manual review of source data",
	})
	s.Require().NoError(err)

	s.Equal(string(models.MarketStatusFinalized), resp.MarketStatus)
	s.Equal(models.Outcome2, resp.FinalOutcome)
	s.Equal(models.Outcome2, market.Result)
	s.repo.AssertExpectations(s.T())
}

func (s *ResolutionServiceTestSuite) TestAdminResolveRejectsUndisputedMarket() {
	market := s.resolvingMarket()

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)

	_, err := s.service.AdminResolveMarket(s.ctx, s.marketID, s.actorID, &AdminResolveRequest{
		Outcome: models.Outcome1,
		Reason:  "not disputed",
	})
	s.ErrorIs(err, models.ErrMarketNotDisputed)
}

// A fee sink failure leaves the fee accrued on the market and never blocks
// finalization.
func (s *ResolutionServiceTestSuite) TestFeeSinkFailureAccruesFee() {
	market := s.resolvingMarket()
	record := s.openRecord()
	record.Community.WindowEndsAt = time.Now().Add(-time.Minute)

	s.repo.On("GetMarketForUpdate", s.ctx, s.marketID).Return(market, nil)
	s.repo.On("GetResolutionForUpdate", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("UpdateMarket", s.ctx, market).Return(nil)
	s.repo.On("UpdateResolution", s.ctx, record).Return(nil)
	s.feeSink.On("Forward", s.ctx, (*gorm.DB)(nil), s.marketID, matchAmount(20)).
		Return(errors.New("treasury wallet unavailable"))

	resp, err := s.service.FinalizeAfterWindow(s.ctx, s.marketID, s.actorID)
	s.Require().NoError(err)

	s.Equal(string(models.MarketStatusFinalized), resp.MarketStatus)
	s.True(market.AccruedFees.Equal(decimal.NewFromInt(20)))
}

func (s *ResolutionServiceTestSuite) TestGetResolution() {
	market := s.resolvingMarket()
	record := s.openRecord()

	s.repo.On("GetResolutionByMarket", s.ctx, s.marketID).Return(record, nil)
	s.repo.On("GetMarket", s.ctx, s.marketID).Return(market, nil)

	resp, err := s.service.GetResolution(s.ctx, s.marketID)
	s.Require().NoError(err)
	s.Equal(s.marketID, resp.MarketID)
	s.True(resp.WindowOpen)
}

func (s *ResolutionServiceTestSuite) TestGetResolutionNotFound() {
	s.repo.On("GetResolutionByMarket", s.ctx, s.marketID).Return(nil, gorm.ErrRecordNotFound)

	_, err := s.service.GetResolution(s.ctx, s.marketID)
	s.ErrorIs(err, models.ErrNoOpenResolution)
}

func TestResolutionServiceSuite(t *testing.T) {
	suite.Run(t, new(ResolutionServiceTestSuite))
}
