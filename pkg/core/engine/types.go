package engine

import (
	"slices"
	"time"
)

// TestingType distinguishes the three mission kinds
type TestingType string

const (
	InCompetition       TestingType = "ict"
	OutOfCompetition    TestingType = "ooct"
	PreOutOfCompetition TestingType = "pre_ooct"
)

// SlotBased reports whether sessions of this mission kind are subdivided
// into time slots rather than discrete testing dates
func (t TestingType) SlotBased() bool {
	return t == OutOfCompetition || t == PreOutOfCompetition
}

// TimeSlot partitions a calendar day for out-of-competition testing
type TimeSlot string

const (
	SlotNone      TimeSlot = ""
	SlotEarly     TimeSlot = "early"
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// AllSlots returns the four time slots in day order
func AllSlots() []TimeSlot {
	return []TimeSlot{SlotEarly, SlotMorning, SlotAfternoon, SlotEvening}
}

// SlotForHour derives the time slot from an athlete notification hour
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour < 9:
		return SlotEarly
	case hour < 12:
		return SlotMorning
	case hour < 17:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

// Previous returns the slot immediately before this one within the same
// day. The early slot has no predecessor.
func (s TimeSlot) Previous() (TimeSlot, bool) {
	switch s {
	case SlotMorning:
		return SlotEarly, true
	case SlotAfternoon:
		return SlotMorning, true
	case SlotEvening:
		return SlotAfternoon, true
	default:
		return SlotNone, false
	}
}

// Rank is a personnel qualification level
type Rank string

const (
	RankS1   Rank = "S1"
	RankS2   Rank = "S2"
	RankS3   Rank = "S3"
	RankA1   Rank = "A1"
	RankA2   Rank = "A2"
	RankNone Rank = ""
)

// OfficerRanks are the ranks qualified to serve as DCO or lead DCO
func OfficerRanks() []Rank {
	return []Rank{RankS1, RankS2, RankS3, RankA1, RankA2}
}

// Gender constants. GenderAny means no gender filter.
type Gender string

const (
	GenderAny    Gender = ""
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Role is a personnel role on a mission date
type Role string

const (
	RoleLeadDCO    Role = "lead_dco"
	RoleDCO        Role = "dco"
	RoleInspection Role = "inspection"
	RoleBCO        Role = "bco"
	RoleBCOAdmin   Role = "bco_admin"
	RoleTrainee    Role = "trainee"
	RoleSenior     Role = "senior"
	RoleMentor     Role = "mentor"
)

// RoleGroup buckets roles that are mutually exclusive on a given date
type RoleGroup string

const (
	GroupDCO    RoleGroup = "dco"
	GroupBCO    RoleGroup = "bco"
	GroupManual RoleGroup = "manual"
)

// Group returns the role group a role belongs to
func (r Role) Group() RoleGroup {
	switch r {
	case RoleBCO, RoleBCOAdmin:
		return GroupBCO
	case RoleTrainee, RoleSenior, RoleMentor:
		return GroupManual
	default:
		return GroupDCO
	}
}

/// Session identifies one unit of assignment work: a mission date for
// in-competition missions, or a mission day plus time slot for
// out-of-competition missions.
type Session struct {
	MissionID   string
	TestingType TestingType
	Date        time.Time
	Slot        TimeSlot // SlotNone for in-competition sessions
}

// PersistSlots returns the time-slot partitions a session write applies
// to. In-competition decisions fan out identically to all four slots.
func (s Session) PersistSlots() []TimeSlot {
	if s.TestingType.SlotBased() {
		return []TimeSlot{s.Slot}
	}
	return AllSlots()
}

// Mission carries the mission attributes the engine needs
type Mission struct {
	ID              string
	TestingType     TestingType
	Discipline      string
	HighRisk        bool
	ForeignLanguage string // empty when no requirement
	Region          string
	SupportHospital bool
	AssignmentFixed bool
	Days            int // calendar day span of the mission
}

// Candidate is one person considered for assignment
type Candidate struct {
	PersonnelID      string
	Gender           Gender
	Rank             Rank
	Languages        []string
	Region           string
	Disciplines      []string
	ConflictMissions []string // missions with a declared conflict of interest
	AvailableDays    int      // available calendar days within the mission span
	Trainee          bool
	Senior           bool
	Mentor           bool
}

// HasConflict reports a declared conflict of interest with the mission
func (c Candidate) HasConflict(missionID string) bool {
	return slices.Contains(c.ConflictMissions, missionID)
}

// HasCategory reports whether the candidate carries the personnel
// category required by a manual role
func (c Candidate) HasCategory(role Role) bool {
	switch role {
	case RoleTrainee:
		return c.Trainee
	case RoleSenior:
		return c.Senior
	case RoleMentor:
		return c.Mentor
	default:
		return false
	}
}

// CalendarDay is one person-day of availability data. Known is false
// when no calendar entry exists for the date; all permissions are then
// treated as denied (fail-closed).
type CalendarDay struct {
	Known      bool
	Available  bool
	StayBefore bool
	StayAfter  bool
	Remark     string
}

// Policy is the engine's view of the global system defaults
type Policy struct {
	StayBeforeRequired  bool
	StayAfterRequired   bool
	ContinuousDutyLimit int
	LeadRanks           []Rank
	DcoBorder           int
	DcoMax              int
	BcoBorder           int
	ParticipationRatio  float64
}

// CalendarLookup resolves the calendar day for a person and date
type CalendarLookup func(personnelID string, date time.Time) CalendarDay
