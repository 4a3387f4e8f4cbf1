package engine

import "slices"

// CommitFunc persists one provisional assignment. Commits are immediate
// per draw; a later failure leaves earlier commits intact.
type CommitFunc func(c Candidate, s Session, role Role) error

// AllocationParams configures one allocation run for a session/role
type AllocationParams struct {
	Session        Session
	Role           Role
	Tiers          []Tier
	Pool           *Pool
	RequiredMale   int
	RequiredFemale int
	DutyLimit      int
	Cursor         *Cursor
	Ledger         *Ledger
	Commit         CommitFunc
}

// TierOutcome reports one tier's quota after carry-over and the count
// actually assigned
type TierOutcome struct {
	Ranks    []Rank
	Required int
	Assigned int
}

// AllocationOutcome summarizes an allocation run. Under-fill is a
// normal outcome, not an error.
type AllocationOutcome struct {
	Assigned       int
	AssignedMale   int
	AssignedFemale int
	Tiers          []TierOutcome
}

// Allocate processes the rank tiers in priority order, drawing strong
// candidates through the rotation cursor, validating hard constraints
// and committing on success. Unmet quota carries over into the next
// tier; the final tier absorbs any remainder best-effort. Drawn
// candidates leave the pool whether or not they validate.
func Allocate(p AllocationParams) (*AllocationOutcome, error) {
	outcome := &AllocationOutcome{}

	carry := 0
	for _, tier := range p.Tiers {
		required := tier.Required + carry
		assigned := 0

		for assigned < required {
			need := genderNeed(p, outcome)
			card, ok, err := p.Cursor.Draw(p.Pool, func(sc Scorecard) bool {
				if !slices.Contains(tier.Ranks, sc.Candidate.Rank) {
					return false
				}
				return need == GenderAny || sc.Candidate.Gender == need
			})
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}

			// Rejected candidates are not retried.
			if !p.Ledger.IsAssignable(card.Candidate.PersonnelID, p.Session, p.DutyLimit) {
				continue
			}

			if err := p.Commit(card.Candidate, p.Session, p.Role); err != nil {
				return nil, err
			}
			p.Ledger.Add(LedgerEntry{
				PersonnelID: card.Candidate.PersonnelID,
				MissionID:   p.Session.MissionID,
				TestingType: p.Session.TestingType,
				Date:        p.Session.Date,
				Slot:        p.Session.Slot,
				RoleGroup:   p.Role.Group(),
			})

			assigned++
			outcome.Assigned++
			switch card.Candidate.Gender {
			case GenderMale:
				outcome.AssignedMale++
			case GenderFemale:
				outcome.AssignedFemale++
			}
		}

		carry = required - assigned
		outcome.Tiers = append(outcome.Tiers, TierOutcome{
			Ranks:    tier.Ranks,
			Required: required,
			Assigned: assigned,
		})
	}

	return outcome, nil
}

// genderNeed chooses the gender filter for the next draw by comparing
// running counts against the male/female targets. With no targets, or
// once both targets are met, any gender will do.
func genderNeed(p AllocationParams, o *AllocationOutcome) Gender {
	if p.RequiredMale == 0 && p.RequiredFemale == 0 {
		return GenderAny
	}
	maleOpen := o.AssignedMale < p.RequiredMale
	femaleOpen := o.AssignedFemale < p.RequiredFemale
	switch {
	case maleOpen && femaleOpen:
		return GenderAny
	case maleOpen:
		return GenderMale
	case femaleOpen:
		return GenderFemale
	default:
		return GenderAny
	}
}

// AllocateSingle fills a fixed headcount with no rank tiers or gender
// targets. Used by the lead DCO and BCO pipelines.
func AllocateSingle(p AllocationParams, required int) (*AllocationOutcome, error) {
	p.Tiers = []Tier{{Ranks: allRanks(), Required: required}}
	p.RequiredMale = 0
	p.RequiredFemale = 0
	return Allocate(p)
}

func allRanks() []Rank {
	return []Rank{RankS1, RankS2, RankS3, RankA1, RankA2, RankNone}
}
