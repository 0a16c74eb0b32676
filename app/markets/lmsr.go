package markets

import (
	"github.com/0xBased-lang/kektech/models"
	"github.com/shopspring/decimal"
)

// lmsrPrecision is the decimal precision used for the series-approximated
// exponential and logarithm. The approximations are deterministic across
// platforms, unlike the float64 transcendentals.
const lmsrPrecision int32 = 16

// oddsScale is the basis-point representation of 1.0x odds.
var oddsScale = decimal.NewFromInt(10000)

// pricingEngine implements the PricingEngine interface
type pricingEngine struct {
	config *Config
}

// NewPricingEngine creates a new LMSR pricing engine
func NewPricingEngine(config *Config) PricingEngine {
	return &pricingEngine{
		config: config,
	}
}

// Cost evaluates the LMSR cost function C(q1, q2) = b*ln(exp(q1/b)+exp(q2/b)).
// The max term is factored out first so the exponent arguments are never
// positive and the series stays well conditioned.
func (pe *pricingEngine) Cost(b, q1, q2 decimal.Decimal) (decimal.Decimal, error) {
	m := q1
	if q2.GreaterThan(m) {
		m = q2
	}

	e1, err := q1.Sub(m).Div(b).ExpTaylor(lmsrPrecision)
	if err != nil {
		return decimal.Zero, err
	}
	e2, err := q2.Sub(m).Div(b).ExpTaylor(lmsrPrecision)
	if err != nil {
		return decimal.Zero, err
	}

	// The sum is always >= 1 because one exponent is exactly zero.
	ln, err := e1.Add(e2).Ln(lmsrPrecision)
	if err != nil {
		return decimal.Zero, err
	}

	return m.Add(b.Mul(ln)), nil
}

// CostToBuy returns the incremental cost of buying shares of an outcome at
// the current real inventories.
func (pe *pricingEngine) CostToBuy(market *models.Market, outcome models.Outcome, shares decimal.Decimal) (decimal.Decimal, error) {
	current, err := pe.Cost(market.Liquidity, market.Q1, market.Q2)
	if err != nil {
		return decimal.Zero, err
	}

	q1, q2 := market.Q1, market.Q2
	if outcome == models.Outcome1 {
		q1 = q1.Add(shares)
	} else {
		q2 = q2.Add(shares)
	}

	next, err := pe.Cost(market.Liquidity, q1, q2)
	if err != nil {
		return decimal.Zero, err
	}
	return next.Sub(current), nil
}

// QuoteShares inverts the cost function: given a payment, it finds the share
// quantity whose incremental cost best approaches the payment from below.
// There is no closed form, so it bisects over [0, payment*ceiling] with a
// hard iteration cap; the search is rejected outright if the bracket has not
// collapsed below the configured tolerance by then. The returned actual cost
// never exceeds the payment; any residual stays with the caller.
func (pe *pricingEngine) QuoteShares(market *models.Market, outcome models.Outcome, payment decimal.Decimal) (shares, actualCost decimal.Decimal, err error) {
	if !outcome.Valid() {
		return decimal.Zero, decimal.Zero, models.ErrInvalidOutcome
	}
	if payment.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, models.ErrInvalidStakeAmount
	}

	// No fill can return more than the odds ceiling per unit paid, so the
	// ceiling bounds the share bracket.
	ceiling := decimal.NewFromInt(pe.config.OddsCeilingBps).Div(oddsScale)
	lo := decimal.Zero
	hi := payment.Mul(ceiling)
	tolerance := hi.Mul(pe.config.QuoteTolerance)

	converged := false
	for i := 0; i < pe.config.MaxQuoteIterations; i++ {
		if hi.Sub(lo).LessThan(tolerance) {
			converged = true
			break
		}
		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		cost, cerr := pe.CostToBuy(market, outcome, mid)
		if cerr != nil {
			return decimal.Zero, decimal.Zero, cerr
		}
		if cost.GreaterThan(payment) {
			hi = mid
		} else {
			lo = mid
		}
	}
	if !converged {
		return decimal.Zero, decimal.Zero, models.ErrQuoteNotConverged
	}

	shares = lo.Round(8)
	if shares.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, models.ErrQuoteNotConverged
	}

	cost, err := pe.CostToBuy(market, outcome, shares)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	actualCost = cost.RoundDown(2)
	if actualCost.GreaterThan(payment) {
		// Rounding of the share quantity can only move the cost by less than
		// a cent; clamp rather than overcharge.
		actualCost = payment
	}
	if actualCost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, models.ErrQuoteNotConverged
	}
	return shares, actualCost, nil
}

// Odds returns the display odds for both outcomes in basis points. Display
// pricing uses inventories inflated by the virtual liquidity constant so an
// empty market quotes an even 2.00x on each side and a single lopsided stake
// cannot produce a degenerate ratio. Settlement never sees these numbers.
func (pe *pricingEngine) Odds(market *models.Market) (OddsQuote, error) {
	v := pe.config.VirtualLiquidity
	p1, p2, err := pe.prices(market.Liquidity, market.Q1.Add(v), market.Q2.Add(v))
	if err != nil {
		return OddsQuote{}, err
	}
	return OddsQuote{
		Outcome1Bps: pe.clampOdds(p1),
		Outcome2Bps: pe.clampOdds(p2),
	}, nil
}

// prices computes the softmax price of each outcome.
func (pe *pricingEngine) prices(b, q1, q2 decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	m := q1
	if q2.GreaterThan(m) {
		m = q2
	}
	e1, err := q1.Sub(m).Div(b).ExpTaylor(lmsrPrecision)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	e2, err := q2.Sub(m).Div(b).ExpTaylor(lmsrPrecision)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	sum := e1.Add(e2)
	return e1.Div(sum), e2.Div(sum), nil
}

// clampOdds converts a price to basis-point odds and applies the floor and
// ceiling so callers never see a mathematically degenerate quote.
func (pe *pricingEngine) clampOdds(price decimal.Decimal) int64 {
	if price.LessThanOrEqual(decimal.Zero) {
		return pe.config.OddsCeilingBps
	}
	bps := oddsScale.Div(price).Round(0).IntPart()
	if bps < pe.config.OddsFloorBps {
		return pe.config.OddsFloorBps
	}
	if bps > pe.config.OddsCeilingBps {
		return pe.config.OddsCeilingBps
	}
	return bps
}
