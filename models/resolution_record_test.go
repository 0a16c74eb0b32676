package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommunityDispute(t *testing.T) {
	t.Run("Value and Scan", func(t *testing.T) {
		cd := CommunityDispute{
			ProposedOutcome: Outcome1,
			AgreeCount:      80,
			DisagreeCount:   20,
			WindowEndsAt:    time.Now().Add(48 * time.Hour),
			Active:          true,
		}

		value, err := cd.Value()
		assert.NoError(t, err)

		var result CommunityDispute
		err = result.Scan(value)
		assert.NoError(t, err)
		assert.Equal(t, cd.ProposedOutcome, result.ProposedOutcome)
		assert.Equal(t, cd.AgreeCount, result.AgreeCount)
		assert.Equal(t, cd.Active, result.Active)

		bs, err := json.Marshal(cd)
		assert.NoError(t, err)
		err = result.Scan(string(bs))
		assert.NoError(t, err)

		err = result.Scan(nil)
		assert.NoError(t, err)

		err = result.Scan(func() {})
		assert.NoError(t, err)
	})
}

func TestBondDispute(t *testing.T) {
	t.Run("Value and Scan", func(t *testing.T) {
		bd := BondDispute{
			ChallengerID: uuid.New(),
			Reason:       "outcome is wrong",
			BondAmount:   decimal.NewFromInt(150),
			Status:       BondDisputeOpen,
			ChallengedAt: time.Now(),
		}

		value, err := bd.Value()
		assert.NoError(t, err)

		var result BondDispute
		err = result.Scan(value)
		assert.NoError(t, err)
		assert.Equal(t, bd.ChallengerID, result.ChallengerID)
		assert.True(t, bd.BondAmount.Equal(result.BondAmount))
		assert.Equal(t, BondDisputeOpen, result.Status)

		err = result.Scan(nil)
		assert.NoError(t, err)

		err = result.Scan(func() {})
		assert.NoError(t, err)
	})
}

func openResolutionRecord() *ResolutionRecord {
	return &ResolutionRecord{
		ID:              uuid.New(),
		MarketID:        uuid.New(),
		ProposedOutcome: Outcome1,
		ProposerID:      uuid.New(),
		Status:          ResolutionStatusProposed,
		OpenedAt:        time.Now(),
		Community: CommunityDispute{
			ProposedOutcome: Outcome1,
			WindowEndsAt:    time.Now().Add(48 * time.Hour),
			Active:          true,
		},
	}
}

func TestResolutionRecord(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		r := ResolutionRecord{}
		assert.Equal(t, "resolution_records", r.TableName())
	})

	t.Run("BeforeCreate", func(t *testing.T) {
		r := ResolutionRecord{}
		err := r.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, r.ID)
	})

	t.Run("WindowOpen", func(t *testing.T) {
		r := openResolutionRecord()
		assert.True(t, r.WindowOpen(time.Now()))
		assert.False(t, r.WindowOpen(time.Now().Add(49*time.Hour)))

		r.Community.Active = false
		assert.False(t, r.WindowOpen(time.Now()))
	})

	t.Run("RecordSignals finalize at exact threshold", func(t *testing.T) {
		r := openResolutionRecord()

		verdict, err := r.RecordSignals(75, 25, 75, 40)
		assert.NoError(t, err)
		assert.Equal(t, VerdictFinalize, verdict)
		assert.False(t, r.Community.Active)
		assert.True(t, r.Community.AutoFinalized)
	})

	t.Run("RecordSignals below threshold stays pending", func(t *testing.T) {
		r := openResolutionRecord()

		verdict, err := r.RecordSignals(74, 26, 75, 40)
		assert.NoError(t, err)
		assert.Equal(t, VerdictPending, verdict)
		assert.True(t, r.Community.Active)
		assert.Equal(t, int64(74), r.Community.AgreeCount)
		assert.Equal(t, int64(26), r.Community.DisagreeCount)
	})

	t.Run("RecordSignals dispute threshold", func(t *testing.T) {
		r := openResolutionRecord()

		verdict, err := r.RecordSignals(60, 40, 75, 40)
		assert.NoError(t, err)
		assert.Equal(t, VerdictDispute, verdict)
		assert.False(t, r.Community.Active)
		assert.False(t, r.Community.AutoFinalized)
	})

	t.Run("RecordSignals zero total", func(t *testing.T) {
		r := openResolutionRecord()

		verdict, err := r.RecordSignals(0, 0, 75, 40)
		assert.NoError(t, err)
		assert.Equal(t, VerdictPending, verdict)
		assert.True(t, r.Community.Active)
	})

	t.Run("RecordSignals counts may not shrink", func(t *testing.T) {
		r := openResolutionRecord()

		_, err := r.RecordSignals(10, 5, 75, 40)
		assert.NoError(t, err)

		_, err = r.RecordSignals(8, 5, 75, 40)
		assert.Equal(t, ErrInvalidSignalCounts, err)

		_, err = r.RecordSignals(10, 4, 75, 40)
		assert.Equal(t, ErrInvalidSignalCounts, err)

		_, err = r.RecordSignals(-1, 0, 75, 40)
		assert.Equal(t, ErrInvalidSignalCounts, err)
	})

	t.Run("RecordSignals closed window", func(t *testing.T) {
		r := openResolutionRecord()
		r.Community.Active = false

		_, err := r.RecordSignals(10, 0, 75, 40)
		assert.Equal(t, ErrDisputeWindowClosed, err)
	})

	t.Run("RecordSignals finalized record", func(t *testing.T) {
		r := openResolutionRecord()
		r.Status = ResolutionStatusFinalized

		_, err := r.RecordSignals(10, 0, 75, 40)
		assert.Equal(t, ErrResolutionFinalized, err)
	})

	t.Run("Challenge", func(t *testing.T) {
		r := openResolutionRecord()
		challenger := uuid.New()
		minBond := decimal.NewFromInt(100)

		err := r.Challenge(challenger, "", decimal.NewFromInt(150), minBond, time.Now())
		assert.Equal(t, ErrInvalidDisputeReason, err)

		err = r.Challenge(challenger, "bad source", decimal.NewFromInt(50), minBond, time.Now())
		assert.Equal(t, ErrBondTooSmall, err)

		err = r.Challenge(challenger, "bad source", decimal.NewFromInt(150), minBond, time.Now())
		assert.NoError(t, err)
		assert.Equal(t, ResolutionStatusBondDispute, r.Status)
		assert.NotNil(t, r.Bond)
		assert.Equal(t, challenger, r.Bond.ChallengerID)
		assert.Equal(t, BondDisputeOpen, r.Bond.Status)
		assert.True(t, decimal.NewFromInt(150).Equal(r.Bond.BondAmount))

		err = r.Challenge(uuid.New(), "me too", decimal.NewFromInt(200), minBond, time.Now())
		assert.Equal(t, ErrChallengeExists, err)
	})

	t.Run("RuleOnChallenge upheld", func(t *testing.T) {
		r := openResolutionRecord()
		err := r.Challenge(uuid.New(), "wrong side won", decimal.NewFromInt(150), decimal.NewFromInt(100), time.Now())
		assert.NoError(t, err)

		err = r.RuleOnChallenge(true, OutcomeUnset)
		assert.Equal(t, ErrInvalidOutcome, err)

		err = r.RuleOnChallenge(true, Outcome2)
		assert.NoError(t, err)
		assert.Equal(t, BondDisputeUpheld, r.Bond.Status)
		assert.Equal(t, Outcome2, r.ProposedOutcome)
		assert.Equal(t, ResolutionStatusProposed, r.Status)

		err = r.RuleOnChallenge(false, OutcomeUnset)
		assert.Equal(t, ErrNoOpenChallenge, err)
	})

	t.Run("RuleOnChallenge rejected", func(t *testing.T) {
		r := openResolutionRecord()
		err := r.Challenge(uuid.New(), "wrong side won", decimal.NewFromInt(150), decimal.NewFromInt(100), time.Now())
		assert.NoError(t, err)

		err = r.RuleOnChallenge(false, OutcomeUnset)
		assert.NoError(t, err)
		assert.Equal(t, BondDisputeRejected, r.Bond.Status)
		assert.Equal(t, Outcome1, r.ProposedOutcome)
	})

	t.Run("RuleOnChallenge without challenge", func(t *testing.T) {
		r := openResolutionRecord()
		err := r.RuleOnChallenge(true, Outcome2)
		assert.Equal(t, ErrNoOpenChallenge, err)
	})

	t.Run("FinalizeWith", func(t *testing.T) {
		r := openResolutionRecord()
		by := uuid.New()

		err := r.FinalizeWith(OutcomeUnset, by, "")
		assert.Equal(t, ErrInvalidOutcome, err)

		err = r.FinalizeWith(Outcome1, by, "community agreement")
		assert.NoError(t, err)
		assert.Equal(t, ResolutionStatusFinalized, r.Status)
		assert.Equal(t, Outcome1, r.FinalOutcome)
		assert.Equal(t, by, *r.FinalizedBy)
		assert.Equal(t, "community agreement", r.FinalizeReason)
		assert.False(t, r.Community.Active)

		err = r.FinalizeWith(Outcome2, by, "again")
		assert.Equal(t, ErrResolutionFinalized, err)
	})

	t.Run("FinalizeWith blocks on open bond", func(t *testing.T) {
		r := openResolutionRecord()
		err := r.Challenge(uuid.New(), "hold on", decimal.NewFromInt(150), decimal.NewFromInt(100), time.Now())
		assert.NoError(t, err)

		err = r.FinalizeWith(Outcome1, uuid.New(), "")
		assert.Equal(t, ErrDisputeWindowOpen, err)

		err = r.RuleOnChallenge(false, OutcomeUnset)
		assert.NoError(t, err)

		err = r.FinalizeWith(Outcome1, uuid.New(), "challenge rejected")
		assert.NoError(t, err)
		assert.True(t, r.IsFinalized())
	})

	t.Run("Validate", func(t *testing.T) {
		valid := openResolutionRecord()
		assert.NoError(t, valid.Validate())

		r := *valid
		r.MarketID = uuid.Nil
		assert.Equal(t, ErrInvalidMarketID, r.Validate())

		r = *valid
		r.ProposedOutcome = OutcomeUnset
		assert.Equal(t, ErrInvalidOutcome, r.Validate())

		r = *valid
		r.ProposerID = uuid.Nil
		assert.Equal(t, ErrInvalidParticipantID, r.Validate())

		r = *valid
		r.OpenedAt = time.Time{}
		assert.Equal(t, ErrInvalidDeadline, r.Validate())
	})
}
