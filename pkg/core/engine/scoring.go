package engine

import (
	"github.com/larsmoen/dcproster/pkg/core/engine/conditions"
)

// Scorecard is the scored result for one eligible candidate
type Scorecard struct {
	Candidate Candidate
	Set       conditions.Set
	Strong    bool
}

// ScoreInput bundles the session-level facts common to every candidate
// scored for one session/role
type ScoreInput struct {
	Mission         Mission
	RequiredDays    int
	ExclusiveGender Gender // GenderAny when the day's competitors are mixed
	Calendar        CalendarLookup
	// Locked reports a pre-existing provisional assignment for the
	// candidate at this session/role. Locked candidates are strong
	// regardless of score so later passes never exclude them.
	Locked func(personnelID string) bool
}

// Score evaluates the role's condition set for one candidate and
// derives the strong-candidate flag.
func Score(role Role, c Candidate, s Session, in ScoreInput) Scorecard {
	cal := in.Calendar(c.PersonnelID, s.Date)

	input := conditions.Input{
		CandidateRegion:      c.Region,
		MissionRegion:        in.Mission.Region,
		CalendarKnown:        cal.Known,
		Remark:               cal.Remark,
		CandidateLanguages:   c.Languages,
		MissionLanguage:      in.Mission.ForeignLanguage,
		CandidateDisciplines: c.Disciplines,
		MissionDiscipline:    in.Mission.Discipline,
		AvailableDays:        c.AvailableDays,
		RequiredDays:         in.RequiredDays,
		ExclusiveGender:      string(in.ExclusiveGender),
		CandidateGender:      string(c.Gender),
	}

	var set conditions.Set
	switch role {
	case RoleLeadDCO:
		set = conditions.ForLeadDCO(input)
	case RoleBCO, RoleBCOAdmin:
		set = conditions.ForBCO(input)
	default:
		set = conditions.ForDCO(input)
	}

	strong := set.Score() == set.Max() &&
		c.AvailableDays >= in.RequiredDays &&
		(in.ExclusiveGender == GenderAny || c.Gender == in.ExclusiveGender)

	// An already-committed person must stay in the strong list no
	// matter what they score today.
	if in.Locked != nil && in.Locked(c.PersonnelID) {
		strong = true
	}

	return Scorecard{Candidate: c, Set: set, Strong: strong}
}

// ScoreAll scores every candidate in order and returns the scorecards
func ScoreAll(role Role, cands []Candidate, s Session, in ScoreInput) []Scorecard {
	cards := make([]Scorecard, 0, len(cands))
	for _, c := range cands {
		cards = append(cards, Score(role, c, s, in))
	}
	return cards
}

// StrongOnly filters scorecards down to strong candidates, preserving order
func StrongOnly(cards []Scorecard) []Scorecard {
	strong := make([]Scorecard, 0, len(cards))
	for _, card := range cards {
		if card.Strong {
			strong = append(strong, card)
		}
	}
	return strong
}
