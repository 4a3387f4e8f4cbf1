package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfectCandidate() Candidate {
	return Candidate{
		PersonnelID:   "p1",
		Gender:        GenderMale,
		Rank:          RankS1,
		Languages:     []string{"French"},
		Region:        "east",
		Disciplines:   []string{"athletics"},
		AvailableDays: 5,
	}
}

func scoreInput() ScoreInput {
	return ScoreInput{
		Mission: Mission{
			ID:              "m1",
			Discipline:      "athletics",
			ForeignLanguage: "French",
			Region:          "east",
		},
		RequiredDays: 3,
		Calendar:     openCalendar(),
	}
}

func TestScore_FullScoreIsStrong(t *testing.T) {
	card := Score(RoleDCO, perfectCandidate(), ictSession("m1", "2025-03-10"), scoreInput())

	assert.Equal(t, 6, card.Set.Max())
	assert.Equal(t, 6, card.Set.Score())
	assert.True(t, card.Strong)
}

func TestScore_PartialScoreIsNotStrong(t *testing.T) {
	c := perfectCandidate()
	c.Region = "west" // distance condition fails

	card := Score(RoleDCO, c, ictSession("m1", "2025-03-10"), scoreInput())
	assert.Equal(t, 5, card.Set.Score())
	assert.False(t, card.Strong)
}

func TestScore_InsufficientDaysBlocksStrong(t *testing.T) {
	c := perfectCandidate()
	c.AvailableDays = 2

	card := Score(RoleDCO, c, ictSession("m1", "2025-03-10"), scoreInput())
	assert.False(t, card.Strong)
}

func TestScore_GenderExclusiveDay(t *testing.T) {
	in := scoreInput()
	in.ExclusiveGender = GenderFemale

	card := Score(RoleDCO, perfectCandidate(), ictSession("m1", "2025-03-10"), in)
	assert.False(t, card.Strong)

	female := perfectCandidate()
	female.Gender = GenderFemale
	card = Score(RoleDCO, female, ictSession("m1", "2025-03-10"), in)
	assert.True(t, card.Strong)
}

func TestScore_LockForcesStrongRegardlessOfScore(t *testing.T) {
	c := perfectCandidate()
	c.Region = "west"
	c.AvailableDays = 0

	in := scoreInput()
	in.Locked = func(id string) bool { return id == "p1" }

	card := Score(RoleDCO, c, ictSession("m1", "2025-03-10"), in)
	assert.True(t, card.Strong)
}

func TestScore_RoleSetSizes(t *testing.T) {
	c := perfectCandidate()
	s := ictSession("m1", "2025-03-10")
	in := scoreInput()

	assert.Equal(t, 6, Score(RoleDCO, c, s, in).Set.Max())
	assert.Equal(t, 5, Score(RoleLeadDCO, c, s, in).Set.Max())
	assert.Equal(t, 3, Score(RoleBCO, c, s, in).Set.Max())
	assert.Equal(t, 3, Score(RoleBCOAdmin, c, s, in).Set.Max())
}

func TestScoreAll_PreservesOrder(t *testing.T) {
	a := perfectCandidate()
	b := perfectCandidate()
	b.PersonnelID = "p2"

	cards := ScoreAll(RoleDCO, []Candidate{a, b}, ictSession("m1", "2025-03-10"), scoreInput())
	require.Len(t, cards, 2)
	assert.Equal(t, "p1", cards[0].Candidate.PersonnelID)
	assert.Equal(t, "p2", cards[1].Candidate.PersonnelID)
}

func TestStrongOnly(t *testing.T) {
	cards := []Scorecard{
		{Candidate: Candidate{PersonnelID: "a"}, Strong: true},
		{Candidate: Candidate{PersonnelID: "b"}, Strong: false},
		{Candidate: Candidate{PersonnelID: "c"}, Strong: true},
	}

	strong := StrongOnly(cards)
	require.Len(t, strong, 2)
	assert.Equal(t, "a", strong[0].Candidate.PersonnelID)
	assert.Equal(t, "c", strong[1].Candidate.PersonnelID)
}
