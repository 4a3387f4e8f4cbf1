package services

import (
	"github.com/larsmoen/dcproster/pkg/core/engine"
	"github.com/larsmoen/dcproster/pkg/db"
)

// lockIndex answers two questions during a run: is a session/role
// locked against re-allocation, and is a specific person already
// committed there. Provisional and manual assignments both lock a
// session/role; only provisional ones lock a candidate into the strong
// list.
type lockIndex struct {
	sessions   map[string]bool     // missionID|date|slot|role
	candidates map[string]bool     // missionID|date|slot|role|personnelID
	holders    map[string][]string // missionID|date|slot|role -> personnel holding a provisional
}

func newLockIndex(
	assignments []db.ProvisionalAssignment,
	manuals []db.ManualAssignment,
	missionTypes map[string]engine.TestingType,
) *lockIndex {
	idx := &lockIndex{
		sessions:   make(map[string]bool),
		candidates: make(map[string]bool),
		holders:    make(map[string][]string),
	}
	for _, pa := range assignments {
		slot := normalizeSlot(missionTypes[pa.MissionID], pa.TimeSlot)
		key := sessionKey(pa.MissionID, pa.Date, slot, pa.Role)
		ck := candidateKey(pa.MissionID, pa.Date, slot, pa.Role, pa.PersonnelID)
		idx.sessions[key] = true
		if !idx.candidates[ck] {
			idx.holders[key] = append(idx.holders[key], pa.PersonnelID)
		}
		idx.candidates[ck] = true
	}
	for _, ma := range manuals {
		slot := normalizeSlot(missionTypes[ma.MissionID], ma.TimeSlot)
		idx.sessions[sessionKey(ma.MissionID, ma.Date, slot, ma.Role)] = true
	}
	return idx
}

// normalizeSlot collapses the per-slot fan-out of in-competition writes
// back to a single whole-day key
func normalizeSlot(tt engine.TestingType, slot string) string {
	if !tt.SlotBased() {
		return string(engine.SlotNone)
	}
	return slot
}

func (idx *lockIndex) sessionLocked(s engine.Session, role engine.Role) bool {
	return idx.sessions[sessionKey(s.MissionID, dateStr(s.Date), string(s.Slot), string(role))]
}

// assignee returns the person a pre-existing provisional assignment
// locks into the session/role, or "" when none exists. Used for seats
// filled one person deep, where the lock is the committed pick.
func (idx *lockIndex) assignee(s engine.Session, role engine.Role) string {
	holders := idx.holders[sessionKey(s.MissionID, dateStr(s.Date), string(s.Slot), string(role))]
	if len(holders) == 0 {
		return ""
	}
	return holders[0]
}

// lockedFunc returns the per-candidate lock predicate the engine's
// scoring and eligibility passes take
func (idx *lockIndex) lockedFunc(s engine.Session, role engine.Role) func(string) bool {
	prefix := candidateKey(s.MissionID, dateStr(s.Date), string(s.Slot), string(role), "")
	return func(personnelID string) bool {
		return idx.candidates[prefix+personnelID]
	}
}

func sessionKey(missionID, date, slot, role string) string {
	return missionID + "|" + date + "|" + slot + "|" + role
}

func candidateKey(missionID, date, slot, role, personnelID string) string {
	return sessionKey(missionID, date, slot, role) + "|" + personnelID
}
