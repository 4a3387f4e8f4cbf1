package engine

import "time"

// LedgerEntry is one existing provisional assignment as seen by the
// hard-constraint validator. In-competition assignments are recorded
// with SlotNone: they occupy the whole day.
type LedgerEntry struct {
	PersonnelID string
	MissionID   string
	TestingType TestingType
	Date        time.Time
	Slot        TimeSlot
	RoleGroup   RoleGroup
}

// Ledger indexes all provisional assignments across all missions. The
// allocator consults it before every commit and records successful
// commits back into it, so the cross-mission uniqueness invariant holds
// within a run, not just at the database.
type Ledger struct {
	byPersonnel map[string][]LedgerEntry
}

// NewLedger builds a ledger from existing provisional assignments
func NewLedger(entries []LedgerEntry) *Ledger {
	l := &Ledger{byPersonnel: make(map[string][]LedgerEntry)}
	for _, e := range entries {
		l.Add(e)
	}
	return l
}

// Add records a committed assignment
func (l *Ledger) Add(e LedgerEntry) {
	l.byPersonnel[e.PersonnelID] = append(l.byPersonnel[e.PersonnelID], e)
}

// IsAssignable checks the three hard constraints for assigning the
// person to the session: no same-day double booking, the continuous
// duty ceiling, and the adjacent-mission rule. Constraint failures are
// silent; the caller simply draws the next candidate.
func (l *Ledger) IsAssignable(personnelID string, s Session, dutyLimit int) bool {
	entries := l.byPersonnel[personnelID]

	if l.hasDateConflict(entries, s) {
		return false
	}
	if dutyLimit > 0 && l.continuousRun(entries, s.Date) >= dutyLimit {
		return false
	}
	if l.hasAdjacentConflict(entries, s) {
		return false
	}
	return true
}

// hasDateConflict checks the double-booking rule. An in-competition
// session conflicts with any assignment on the date; an
// out-of-competition session conflicts with an assignment in the same
// slot or with a whole-day (in-competition) assignment.
func (l *Ledger) hasDateConflict(entries []LedgerEntry, s Session) bool {
	for _, e := range entries {
		if !sameDay(e.Date, s.Date) {
			continue
		}
		if !s.TestingType.SlotBased() {
			return true
		}
		if e.Slot == s.Slot || e.Slot == SlotNone {
			return true
		}
	}
	return false
}

// continuousRun returns the length of the consecutive-day run the
// candidate date would complete, counting assigned days both before
// and after it (a date bridging two runs joins them).
func (l *Ledger) continuousRun(entries []LedgerEntry, date time.Time) int {
	assigned := make(map[string]bool, len(entries))
	for _, e := range entries {
		assigned[dayKey(e.Date)] = true
	}

	run := 1
	for d := date.AddDate(0, 0, -1); assigned[dayKey(d)]; d = d.AddDate(0, 0, -1) {
		run++
	}
	for d := date.AddDate(0, 0, 1); assigned[dayKey(d)]; d = d.AddDate(0, 0, 1) {
		run++
	}
	return run
}

// hasAdjacentConflict checks the adjacency rule. In-competition
// sessions conflict with a different mission's assignment on the day
// before or after. Out-of-competition sessions conflict only with a
// different out-of-competition mission's assignment in the immediately
// preceding slot of the same day.
func (l *Ledger) hasAdjacentConflict(entries []LedgerEntry, s Session) bool {
	if s.TestingType.SlotBased() {
		prev, ok := s.Slot.Previous()
		if !ok {
			return false
		}
		for _, e := range entries {
			if e.MissionID != s.MissionID &&
				e.TestingType.SlotBased() &&
				sameDay(e.Date, s.Date) &&
				e.Slot == prev {
				return true
			}
		}
		return false
	}

	before := s.Date.AddDate(0, 0, -1)
	after := s.Date.AddDate(0, 0, 1)
	for _, e := range entries {
		if e.MissionID == s.MissionID {
			continue
		}
		if sameDay(e.Date, before) || sameDay(e.Date, after) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return dayKey(a) == dayKey(b)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
