package models

import "errors"

var (
	ErrInvalidMarketQuestion = errors.New("invalid market question")
	ErrInvalidOutcomeLabel   = errors.New("invalid outcome label")
	ErrInvalidOutcome        = errors.New("invalid outcome value")
	ErrInvalidLiquidity      = errors.New("invalid liquidity parameter")
	ErrInvalidMarketID       = errors.New("invalid market ID")
	ErrInvalidDeadline       = errors.New("invalid resolution deadline")
	ErrInvalidTransition     = errors.New("invalid market state transition")
	ErrMarketNotActive       = errors.New("market is not accepting stakes")
	ErrMarketFinalized       = errors.New("market is already finalized")
	ErrMarketNotFinalized    = errors.New("market is not finalized")
	ErrBettingClosed         = errors.New("betting deadline has passed")
	ErrGracePeriodNotOver    = errors.New("resolver grace period has not elapsed")

	ErrInvalidStakeAmount   = errors.New("invalid stake amount")
	ErrStakeTooSmall        = errors.New("stake amount below minimum")
	ErrStakeTooLarge        = errors.New("stake amount exceeds maximum")
	ErrStakeExpired         = errors.New("stake request expired")
	ErrWhaleLimitExceeded   = errors.New("stake exceeds pool percentage cap")
	ErrSlippageExceeded     = errors.New("effective odds below acceptable minimum")
	ErrOppositePosition     = errors.New("participant already holds the opposite outcome")
	ErrOperationInProgress  = errors.New("another operation on this market is in progress")
	ErrQuoteNotConverged    = errors.New("share quote did not converge")
	ErrInvalidParticipantID = errors.New("invalid participant ID")

	ErrNoOpenResolution     = errors.New("no open resolution for market")
	ErrResolutionExists     = errors.New("resolution already proposed for market")
	ErrDisputeWindowClosed  = errors.New("dispute window is closed")
	ErrDisputeWindowOpen    = errors.New("dispute window is still open")
	ErrBondTooSmall         = errors.New("challenge bond below minimum")
	ErrChallengeExists      = errors.New("resolution already challenged")
	ErrNoOpenChallenge      = errors.New("no open challenge to rule on")
	ErrResolutionFinalized  = errors.New("resolution is already finalized")
	ErrInvalidDisputeReason = errors.New("invalid dispute reason")
	ErrInvalidSignalCounts  = errors.New("invalid signal counts")
	ErrMarketNotDisputed    = errors.New("market is not disputed")

	ErrNoPosition      = errors.New("participant has no position in market")
	ErrNothingToClaim  = errors.New("no payout available for participant")
	ErrAlreadyClaimed  = errors.New("winnings already claimed")
	ErrNoWinningShares = errors.New("winning outcome has no shares")

	ErrInvalidWalletBalance = errors.New("invalid wallet balance")
	ErrNegativeBalance      = errors.New("balance cannot be negative")
	ErrInsufficientBalance  = errors.New("insufficient wallet balance")

	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	ErrInvalidAuditAction  = errors.New("invalid audit action")
	ErrInvalidResourceType = errors.New("invalid resource type")

	ErrInvalidStakeLimits              = errors.New("invalid stake amount limits")
	ErrInvalidFeePercentage            = errors.New("invalid platform fee percentage")
	ErrInvalidWhalePercentage          = errors.New("invalid whale cap percentage")
	ErrInvalidOddsBounds               = errors.New("invalid odds floor or ceiling")
	ErrInvalidVirtualLiquidity         = errors.New("invalid virtual liquidity")
	ErrInvalidIterationCap             = errors.New("invalid bisection iteration cap")
	ErrInvalidDisputeWindow            = errors.New("invalid dispute window duration")
	ErrInvalidAgreementThreshold       = errors.New("agreement threshold must be in (50, 100]")
	ErrInvalidDisagreementThreshold    = errors.New("disagreement threshold must be in (0, 50)")
	ErrInvalidGracePeriod              = errors.New("invalid resolver grace period")
	ErrInvalidMinimumBond              = errors.New("invalid minimum challenge bond")
	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")

	ErrInvalidSymmetricKey  = errors.New("symmetric key must be 32 bytes")
	ErrInvalidTokenDuration = errors.New("invalid token duration")

	ErrInvalidUUID    = errors.New("invalid UUID")
	ErrRecordNotFound = errors.New("record not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
)
