package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedCard(id string, rank Rank, gender Gender) Scorecard {
	return Scorecard{
		Candidate: Candidate{PersonnelID: id, Rank: rank, Gender: gender},
		Strong:    true,
	}
}

type commitRecorder struct {
	commits []string
}

func (r *commitRecorder) commit(c Candidate, s Session, role Role) error {
	r.commits = append(r.commits, c.PersonnelID)
	return nil
}

func TestAllocate_FillsTiersInPriorityOrder(t *testing.T) {
	pool := NewPool([]Scorecard{
		rankedCard("s1a", RankS1, GenderMale),
		rankedCard("s2a", RankS2, GenderMale),
		rankedCard("s3a", RankS3, GenderMale),
	})
	rec := &commitRecorder{}

	outcome, err := Allocate(AllocationParams{
		Session: ictSession("m1", "2025-03-10"),
		Role:    RoleDCO,
		Tiers: []Tier{
			{Ranks: []Rank{RankS1}, Required: 1},
			{Ranks: []Rank{RankS2}, Required: 1},
			{Ranks: []Rank{RankS3}, Required: 1},
		},
		Pool:      pool,
		DutyLimit: 10,
		Cursor:    NewCursor(),
		Ledger:    NewLedger(nil),
		Commit:    rec.commit,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.Assigned)
	assert.Equal(t, []string{"s1a", "s2a", "s3a"}, rec.commits)
}

func TestAllocate_CarryOverFlowsDownToFallback(t *testing.T) {
	// Quotas S1=0, S2=0, S3=1, A1=2 against a pool holding only A1 and
	// A2 candidates: all three slots fill from A1 then A2.
	pool := NewPool([]Scorecard{
		rankedCard("a1a", RankA1, GenderMale),
		rankedCard("a1b", RankA1, GenderMale),
		rankedCard("a2a", RankA2, GenderMale),
		rankedCard("a2b", RankA2, GenderMale),
	})
	rec := &commitRecorder{}

	outcome, err := Allocate(AllocationParams{
		Session: ictSession("m1", "2025-03-10"),
		Role:    RoleDCO,
		Tiers: []Tier{
			{Ranks: []Rank{RankS1}, Required: 0},
			{Ranks: []Rank{RankS2}, Required: 0},
			{Ranks: []Rank{RankS3}, Required: 1},
			{Ranks: []Rank{RankA1}, Required: 2},
			{Ranks: []Rank{RankA2}},
		},
		Pool:      pool,
		DutyLimit: 10,
		Cursor:    NewCursor(),
		Ledger:    NewLedger(nil),
		Commit:    rec.commit,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.Assigned)
	assert.Equal(t, []string{"a1a", "a1b", "a2a"}, rec.commits)

	// The S3 shortfall carried into A1 (quota 3, filled 2) and the
	// remainder into the A2 fallback.
	require.Len(t, outcome.Tiers, 5)
	assert.Equal(t, 1, outcome.Tiers[2].Required)
	assert.Equal(t, 0, outcome.Tiers[2].Assigned)
	assert.Equal(t, 3, outcome.Tiers[3].Required)
	assert.Equal(t, 2, outcome.Tiers[3].Assigned)
	assert.Equal(t, 1, outcome.Tiers[4].Required)
	assert.Equal(t, 1, outcome.Tiers[4].Assigned)
}

func TestAllocate_GenderFilterSwitchesWhenQuotaMet(t *testing.T) {
	// requiredMale=2, requiredFemale=1 with males at the front of the
	// list: after the male quota is met the third draw must be female.
	pool := NewPool([]Scorecard{
		rankedCard("m1", RankS1, GenderMale),
		rankedCard("m2", RankS1, GenderMale),
		rankedCard("m3", RankS1, GenderMale),
		rankedCard("f1", RankS1, GenderFemale),
	})
	rec := &commitRecorder{}

	outcome, err := Allocate(AllocationParams{
		Session:        ictSession("m1", "2025-03-10"),
		Role:           RoleDCO,
		Tiers:          []Tier{{Ranks: []Rank{RankS1}, Required: 3}},
		Pool:           pool,
		RequiredMale:   2,
		RequiredFemale: 1,
		DutyLimit:      10,
		Cursor:         NewCursor(),
		Ledger:         NewLedger(nil),
		Commit:         rec.commit,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"m1", "m2", "f1"}, rec.commits)
	assert.Equal(t, 2, outcome.AssignedMale)
	assert.Equal(t, 1, outcome.AssignedFemale)
}

func TestAllocate_RejectedCandidateIsNotRetried(t *testing.T) {
	// p1 is double-booked; the draw discards them and moves on.
	ledger := NewLedger([]LedgerEntry{
		{PersonnelID: "p1", MissionID: "m0", TestingType: InCompetition, Date: day("2025-03-10")},
	})
	pool := NewPool([]Scorecard{
		rankedCard("p1", RankS1, GenderMale),
		rankedCard("p2", RankS1, GenderMale),
	})
	rec := &commitRecorder{}

	outcome, err := Allocate(AllocationParams{
		Session:   ictSession("m1", "2025-03-10"),
		Role:      RoleDCO,
		Tiers:     []Tier{{Ranks: []Rank{RankS1}, Required: 2}},
		Pool:      pool,
		DutyLimit: 10,
		Cursor:    NewCursor(),
		Ledger:    ledger,
		Commit:    rec.commit,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p2"}, rec.commits)
	assert.Equal(t, 1, outcome.Assigned)
	assert.Equal(t, 0, pool.Len())
}

func TestAllocate_UnderFillIsNotAnError(t *testing.T) {
	pool := NewPool([]Scorecard{rankedCard("p1", RankS1, GenderMale)})
	rec := &commitRecorder{}

	outcome, err := Allocate(AllocationParams{
		Session:   ictSession("m1", "2025-03-10"),
		Role:      RoleDCO,
		Tiers:     []Tier{{Ranks: []Rank{RankS1}, Required: 5}},
		Pool:      pool,
		DutyLimit: 10,
		Cursor:    NewCursor(),
		Ledger:    NewLedger(nil),
		Commit:    rec.commit,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Assigned)
}

func TestAllocate_CrossMissionUniqueness(t *testing.T) {
	// Two missions share a candidate on the same date; only the first
	// commit succeeds, enforced by the shared ledger.
	ledger := NewLedger(nil)
	cursor := NewCursor()
	rec := &commitRecorder{}

	params := func(missionID string) AllocationParams {
		return AllocationParams{
			Session:   ictSession(missionID, "2025-03-10"),
			Role:      RoleDCO,
			Tiers:     []Tier{{Ranks: []Rank{RankS1}, Required: 1}},
			Pool:      NewPool([]Scorecard{rankedCard("p1", RankS1, GenderMale)}),
			DutyLimit: 10,
			Cursor:    cursor,
			Ledger:    ledger,
			Commit:    rec.commit,
		}
	}

	first, err := Allocate(params("m1"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Assigned)

	second, err := Allocate(params("m2"))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Assigned)
	assert.Equal(t, []string{"p1"}, rec.commits)
}

func TestAllocate_RotationAlternatesBetweenMissions(t *testing.T) {
	// Identical pools for two consecutive missions on different dates:
	// the first pick must come from opposite ends of the list.
	cursor := NewCursor()
	ledger := NewLedger(nil)
	cards := func() []Scorecard {
		return []Scorecard{
			rankedCard("first", RankS1, GenderMale),
			rankedCard("middle", RankS1, GenderMale),
			rankedCard("last", RankS1, GenderMale),
		}
	}

	rec1 := &commitRecorder{}
	_, err := Allocate(AllocationParams{
		Session:   ictSession("m1", "2025-03-10"),
		Role:      RoleDCO,
		Tiers:     []Tier{{Ranks: []Rank{RankS1}, Required: 1}},
		Pool:      NewPool(cards()),
		DutyLimit: 10,
		Cursor:    cursor,
		Ledger:    ledger,
		Commit:    rec1.commit,
	})
	require.NoError(t, err)

	cursor.Advance()

	rec2 := &commitRecorder{}
	_, err = Allocate(AllocationParams{
		Session:   ictSession("m2", "2025-04-10"),
		Role:      RoleDCO,
		Tiers:     []Tier{{Ranks: []Rank{RankS1}, Required: 1}},
		Pool:      NewPool(cards()),
		DutyLimit: 10,
		Cursor:    cursor,
		Ledger:    ledger,
		Commit:    rec2.commit,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"first"}, rec1.commits)
	assert.Equal(t, []string{"last"}, rec2.commits)
}

func TestAllocateSingle_FillsFixedCount(t *testing.T) {
	pool := NewPool([]Scorecard{
		rankedCard("p1", RankNone, GenderFemale),
		rankedCard("p2", RankNone, GenderMale),
	})
	rec := &commitRecorder{}

	outcome, err := AllocateSingle(AllocationParams{
		Session:   ictSession("m1", "2025-03-10"),
		Role:      RoleBCO,
		Pool:      pool,
		DutyLimit: 10,
		Cursor:    NewCursor(),
		Ledger:    NewLedger(nil),
		Commit:    rec.commit,
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Assigned)
	assert.Equal(t, []string{"p1"}, rec.commits)
}
