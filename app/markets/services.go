package markets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/0xBased-lang/kektech/internal/cache"
	"github.com/0xBased-lang/kektech/internal/logger"
	"github.com/0xBased-lang/kektech/models"
)

// service implements the Service interface
type service struct {
	repo    Repository
	config  *Config
	pricing PricingEngine
	cache   cache.Cache[OddsQuote]
	log     logger.Logger
}

// NewService creates a new market lifecycle service
func NewService(repo Repository, config *Config, pricing PricingEngine, oddsCache cache.Cache[OddsQuote], log logger.Logger) Service {
	return &service{
		repo:    repo,
		config:  config,
		pricing: pricing,
		cache:   oddsCache,
		log:     log,
	}
}

// CreateMarket creates a market in the unbettable PENDING state. Stakes are
// only accepted after activation.
func (s *service) CreateMarket(ctx context.Context, req *CreateMarketRequest) (*MarketResponse, error) {
	if time.Until(req.ResolutionDeadline) < s.config.MinMarketDuration {
		return nil, models.ErrInvalidDeadline
	}

	liquidity := s.config.DefaultLiquidity
	if req.Liquidity != nil {
		liquidity = *req.Liquidity
	}
	fee := s.config.FeePercentage
	if req.FeePercentage != nil {
		fee = *req.FeePercentage
	}

	market := &models.Market{
		Question:           req.Question,
		Outcome1Label:      req.Outcome1Label,
		Outcome2Label:      req.Outcome2Label,
		Status:             models.MarketStatusPending,
		ResolutionDeadline: req.ResolutionDeadline,
		Liquidity:          liquidity,
		FeePercentage:      fee,
	}
	if err := market.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, market); err != nil {
		return nil, fmt.Errorf("create market: %w", err)
	}

	s.log.Info("market created", map[string]interface{}{
		"market_id": market.ID.String(),
		"deadline":  market.ResolutionDeadline,
	})
	return ToMarketResponse(market), nil
}

// ActivateMarket opens a PENDING market for betting
func (s *service) ActivateMarket(ctx context.Context, id uuid.UUID) (*MarketResponse, error) {
	market, err := s.getMarket(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := market.Activate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, market); err != nil {
		return nil, fmt.Errorf("activate market: %w", err)
	}

	s.log.Info("market activated", map[string]interface{}{"market_id": id.String()})
	return ToMarketResponse(market), nil
}

// GetMarketByID returns a market by ID
func (s *service) GetMarketByID(ctx context.Context, id uuid.UUID) (*MarketResponse, error) {
	market, err := s.getMarket(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMarketResponse(market), nil
}

// GetMarkets returns a filtered, paginated market list
func (s *service) GetMarkets(ctx context.Context, filters *MarketFilters) (*MarketListResponse, error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}

	resp := &MarketListResponse{
		Markets: make([]MarketResponse, 0, len(items)),
		Total:   total,
		Page:    filters.Page,
		PerPage: filters.PerPage,
	}
	for i := range items {
		resp.Markets = append(resp.Markets, *ToMarketResponse(&items[i]))
	}
	return resp, nil
}

// GetMarketState returns the read-only lifecycle state and result
func (s *service) GetMarketState(ctx context.Context, id uuid.UUID) (*MarketStateResponse, error) {
	market, err := s.getMarket(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMarketStateResponse(market), nil
}

// GetOdds returns the clamped display odds, served from a short-TTL cache
// that every stake invalidates.
func (s *service) GetOdds(ctx context.Context, id uuid.UUID) (*OddsResponse, error) {
	key := OddsCacheKey(id)
	if quote, err := s.cache.Get(ctx, key); err == nil {
		return &OddsResponse{
			MarketID:    id,
			Outcome1Bps: quote.Outcome1Bps,
			Outcome2Bps: quote.Outcome2Bps,
			GeneratedAt: time.Now(),
		}, nil
	}

	market, err := s.getMarket(ctx, id)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.Odds(market)
	if err != nil {
		return nil, fmt.Errorf("price market %s: %w", id, err)
	}

	if err := s.cache.Set(ctx, key, quote, s.config.OddsCacheTTL); err != nil {
		s.log.Debug("odds cache set failed", map[string]interface{}{"market_id": id.String(), "error": err.Error()})
	}

	return &OddsResponse{
		MarketID:    id,
		Outcome1Bps: quote.Outcome1Bps,
		Outcome2Bps: quote.Outcome2Bps,
		GeneratedAt: time.Now(),
	}, nil
}

// VoidTimedOutMarket moves an abandoned ACTIVE market to VOIDED so its
// participants can reclaim their stakes. Callable by anyone once the resolver
// grace period has elapsed.
func (s *service) VoidTimedOutMarket(ctx context.Context, id uuid.UUID) (*MarketResponse, error) {
	market, err := s.getMarket(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := market.Void(time.Now(), s.config.ResolverGracePeriod); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, market); err != nil {
		return nil, fmt.Errorf("void market: %w", err)
	}

	entry := models.CreateSystemAuditLog(models.AuditActionMarketVoided, "market", &market.ID,
		models.AuditValues{"status": string(models.MarketStatusActive)},
		models.AuditValues{"status": string(models.MarketStatusVoided)})
	if err := s.repo.CreateAuditLog(ctx, entry); err != nil {
		s.log.Error(err, map[string]interface{}{"market_id": id.String()})
	}

	s.log.Info("market voided after resolver timeout", map[string]interface{}{"market_id": id.String()})
	return ToMarketResponse(market), nil
}

// ProcessTimedOutMarkets sweeps ACTIVE markets whose grace period has elapsed
// and voids them. Returns the number of markets voided.
func (s *service) ProcessTimedOutMarkets(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.config.ResolverGracePeriod)
	candidates, err := s.repo.ListVoidCandidates(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list void candidates: %w", err)
	}

	voided := 0
	for i := range candidates {
		if _, err := s.VoidTimedOutMarket(ctx, candidates[i].ID); err != nil {
			s.log.Error(err, map[string]interface{}{"market_id": candidates[i].ID.String()})
			continue
		}
		voided++
	}
	return voided, nil
}

func (s *service) getMarket(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	market, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get market %s: %w", id, err)
	}
	return market, nil
}

// OddsCacheKey is the cache key for a market's display odds. Writers that
// change inventories delete it so the next read reprices.
func OddsCacheKey(id uuid.UUID) string {
	return "odds:" + id.String()
}
