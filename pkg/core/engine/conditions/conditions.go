// Package conditions evaluates the role-specific suitability condition
// sets. Each role has its own fixed set of boolean conditions; the
// score is the count of conditions met and the maximum attainable score
// differs per role.
package conditions

// Condition names shared across role sets
const (
	Distance      = "distance"
	NoRemark      = "no_remark"
	Language      = "language"
	Experience    = "experience"
	AvailableDays = "available_days"
	GenderMatch   = "gender_match"
)

// Condition is one evaluated suitability condition
type Condition struct {
	Name string
	Met  bool
}

// Set is the evaluated condition set for one candidate and role
type Set struct {
	Conditions []Condition
}

// Score returns the number of conditions met
func (s Set) Score() int {
	score := 0
	for _, c := range s.Conditions {
		if c.Met {
			score++
		}
	}
	return score
}

// Max returns the maximum attainable score for this set
func (s Set) Max() int {
	return len(s.Conditions)
}

// Flags returns the per-condition booleans keyed by condition name
func (s Set) Flags() map[string]bool {
	flags := make(map[string]bool, len(s.Conditions))
	for _, c := range s.Conditions {
		flags[c.Name] = c.Met
	}
	return flags
}

// Input carries the raw facts the condition sets are evaluated against
type Input struct {
	CandidateRegion      string
	MissionRegion        string
	CalendarKnown        bool
	Remark               string
	CandidateLanguages   []string
	MissionLanguage      string // empty when the mission requires none
	CandidateDisciplines []string
	MissionDiscipline    string
	AvailableDays        int
	RequiredDays         int
	ExclusiveGender      string // empty when competitors are mixed
	CandidateGender      string
}

func (in Input) distanceSuitable() bool {
	return in.CandidateRegion != "" && in.CandidateRegion == in.MissionRegion
}

// A written remark on the day's calendar entry counts against the
// candidate. A missing entry has no remark but is not a clean day
// either; treat unknown as not met.
func (in Input) noRemark() bool {
	return in.CalendarKnown && in.Remark == ""
}

func (in Input) languageMatch() bool {
	if in.MissionLanguage == "" {
		return true
	}
	for _, lang := range in.CandidateLanguages {
		if lang == in.MissionLanguage {
			return true
		}
	}
	return false
}

func (in Input) disciplineExperience() bool {
	for _, d := range in.CandidateDisciplines {
		if d == in.MissionDiscipline {
			return true
		}
	}
	return false
}

func (in Input) enoughDays() bool {
	return in.AvailableDays >= in.RequiredDays
}

func (in Input) genderMatch() bool {
	return in.ExclusiveGender == "" || in.CandidateGender == in.ExclusiveGender
}
