package db

import "errors"

// ErrNotFound is returned by lookups that found no matching row.
// Callers translate this into a fatal missing-reference condition;
// reference data is never optional.
var ErrNotFound = errors.New("record not found")

// Mission represents a testing mission requiring personnel
type Mission struct {
	ID               string
	Name             string
	TestingType      string // "ict", "ooct" or "pre_ooct"
	StartDate        string // "2006-01-02"
	EndDate          string
	Discipline       string
	HighRisk         bool
	ForeignLanguage  string // empty when no language requirement
	Region           string
	SupportHospital  bool
	AssignmentFixed  bool
	NotificationHour int // hour of day athlete notifications go out (OOCT slot derivation)
}

// TestingDate is a single testing day of an in-competition mission
type TestingDate struct {
	ID        string
	MissionID string
	Date      string
}

// Personnel represents a doping control person and their profile
type Personnel struct {
	ID          string
	FirstName   string
	LastName    string
	Gender      string
	Languages   []string
	Region      string
	Disciplines []string // disciplines with past mission participation
	Conflicts   []string // mission IDs with a declared conflict of interest
	Trainee     bool
	Senior      bool
	Mentor      bool
}

// Qualification holds the rank of a person
type Qualification struct {
	PersonnelID string
	Rank        string // S1, S2, S3, A1, A2
}

// CalendarEntry is one person-day of the availability calendar.
// A missing entry for a date means the person is not available and
// no overnight stay is allowed on that date.
type CalendarEntry struct {
	PersonnelID string
	Date        string
	Available   bool
	StayBefore  bool
	StayAfter   bool
	Remark      string
}

// SampleCount holds planned sample and competitor counts for a mission date
type SampleCount struct {
	MissionID         string
	Date              string
	UrineMale         int
	UrineFemale       int
	Blood             int
	CompetitorsMale   int
	CompetitorsFemale int
}

// SystemDefaults is the global assignment policy row
type SystemDefaults struct {
	ID                  int
	StayBeforeRequired  bool
	StayAfterRequired   bool
	ContinuousDutyLimit int
	LeadRanks           []string // ranks that may serve as lead DCO
	DcoBorder           int
	DcoMax              int
	BcoBorder           int
	ParticipationRatio  float64
}

// SelectionRecord is an ephemeral per-candidate scoring record for a
// mission date, time slot and role. Regenerated on every run unless the
// session/role is locked.
type SelectionRecord struct {
	ID              string
	MissionID       string
	Date            string
	TimeSlot        string
	PersonnelID     string
	Role            string
	Score           int
	Conditions      map[string]bool
	StrongCandidate bool
	Assignable      bool
}

// ProvisionalAssignment is a committed but not yet human-confirmed
// allocation of a person to a mission date/slot and role. Insert-only:
// once written it is never altered by the engine.
type ProvisionalAssignment struct {
	ID          string
	MissionID   string
	Date        string
	TimeSlot    string
	PersonnelID string
	Role        string
	RoleGroup   string
}

// ManualAssignment is a human-entered assignment that locks its
// session/role against regeneration
type ManualAssignment struct {
	MissionID   string
	Date        string
	TimeSlot    string
	PersonnelID string
	Role        string
}

// AssignmentStatus tracks required vs assigned headcounts per session/role
type AssignmentStatus struct {
	MissionID string
	Date      string
	TimeSlot  string
	Role      string
	Required  int
	Assigned  int
}
