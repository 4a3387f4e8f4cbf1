package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/larsmoen/dcproster/internal/config"
	"github.com/larsmoen/dcproster/pkg/core/engine"
	"github.com/larsmoen/dcproster/pkg/db"
)

// AssignmentStore defines the database operations needed to run the
// assignment engine
type AssignmentStore interface {
	GetSystemDefaults(ctx context.Context) (*db.SystemDefaults, error)
	GetMissions(ctx context.Context) ([]db.Mission, error)
	GetTestingDates(ctx context.Context, missionID string) ([]db.TestingDate, error)
	GetSampleCount(ctx context.Context, missionID, date string) (*db.SampleCount, error)
	GetPersonnel(ctx context.Context) ([]db.Personnel, error)
	GetQualifications(ctx context.Context) ([]db.Qualification, error)
	GetCalendarEntries(ctx context.Context, from, to string) ([]db.CalendarEntry, error)
	GetProvisionalAssignments(ctx context.Context) ([]db.ProvisionalAssignment, error)
	InsertProvisionalAssignment(ctx context.Context, pa db.ProvisionalAssignment) error
	GetManualAssignments(ctx context.Context) ([]db.ManualAssignment, error)
	DeleteSelectionRecords(ctx context.Context, missionID, date, slot, role string) error
	InsertSelectionRecords(ctx context.Context, records []db.SelectionRecord) error
	UpdateSelectionRecords(ctx context.Context, records []db.SelectionRecord) error
	SetSelectionStrong(ctx context.Context, missionID, date, slot, role, personnelID string, strong bool) error
	ReclassifySelection(ctx context.Context, missionID, date, slot, personnelID, fromRole, toRole string) error
	UpsertAssignmentStatus(ctx context.Context, status db.AssignmentStatus) error
}

// SessionReport is the outcome for one session/role
type SessionReport struct {
	Date     string
	Slot     string
	Role     string
	Required int
	Assigned int
	Locked   bool
}

// MissionReport collects the session reports of one mission
type MissionReport struct {
	MissionID string
	Name      string
	Sessions  []SessionReport
}

// RunResult is the overall report of one assignment run
type RunResult struct {
	Missions []MissionReport
}

// RunAssignment processes every mission sequentially: per mission, per
// date and role it filters, scores and allocates personnel, committing
// provisional assignments as it goes. Missing reference data aborts the
// whole run; under-allocation does not.
func RunAssignment(ctx context.Context, database AssignmentStore, cfg *config.Config, logger *zap.Logger) (*RunResult, error) {
	logger.Info("Starting assignment run")

	defaults, err := database.GetSystemDefaults(ctx)
	if errors.Is(err, db.ErrNotFound) {
		return nil, engine.MissingReference("system_defaults", "")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch system defaults: %w", err)
	}
	policy := policyFromDefaults(defaults)

	missions, err := database.GetMissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch missions: %w", err)
	}
	if len(missions) == 0 {
		logger.Info("No missions to process")
		return &RunResult{}, nil
	}
	sort.Slice(missions, func(i, j int) bool {
		return missions[i].StartDate < missions[j].StartDate
	})
	logger.Debug("Found missions", zap.Int("count", len(missions)))

	rc, err := buildRunContext(ctx, database, cfg, policy, missions, logger)
	if err != nil {
		return nil, err
	}

	result := &RunResult{}
	for _, m := range missions {
		report, err := runMission(ctx, rc, m)
		if err != nil {
			return nil, err
		}
		result.Missions = append(result.Missions, *report)

		// One advance per mission fully processed, not per date.
		rc.cursor.Advance()
	}

	logger.Info("Assignment run completed", zap.Int("missions", len(result.Missions)))
	return result, nil
}

func runMission(ctx context.Context, rc *runContext, m db.Mission) (*MissionReport, error) {
	rc.logger.Info("Processing mission",
		zap.String("mission_id", m.ID),
		zap.String("name", m.Name),
		zap.String("testing_type", m.TestingType))

	days, err := missionDaySpan(m)
	if err != nil {
		return nil, err
	}
	em := engineMission(m, days)

	var dates []db.TestingDate
	if !em.TestingType.SlotBased() {
		dates, err = rc.store.GetTestingDates(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch testing dates for mission %s: %w", m.ID, err)
		}
	}
	sessions, err := missionSessions(m, dates)
	if err != nil {
		return nil, err
	}

	candidates, err := rc.candidatesFor(m)
	if err != nil {
		return nil, err
	}
	rc.logger.Debug("Mission candidates",
		zap.String("mission_id", m.ID),
		zap.Int("count", len(candidates)),
		zap.Int("sessions", len(sessions)))

	report := &MissionReport{MissionID: m.ID, Name: m.Name}

	leadReports, err := runLeadPipeline(ctx, rc, em, sessions, candidates)
	if err != nil {
		return nil, err
	}
	report.Sessions = append(report.Sessions, leadReports...)

	dcoReports, err := runDCOPipeline(ctx, rc, em, sessions, candidates)
	if err != nil {
		return nil, err
	}
	report.Sessions = append(report.Sessions, dcoReports...)

	bcoReports, err := runBCOPipeline(ctx, rc, em, sessions, candidates)
	if err != nil {
		return nil, err
	}
	report.Sessions = append(report.Sessions, bcoReports...)

	if err := runManualPipeline(ctx, rc, em, sessions, candidates); err != nil {
		return nil, err
	}

	return report, nil
}

// runContext carries the shared per-run state: policy, calendars, the
// assignment ledger, lock detection and the rotation cursor. All
// mutation is single-writer within one synchronous run.
type runContext struct {
	store     AssignmentStore
	logger    *zap.Logger
	policy    engine.Policy
	personnel []db.Personnel
	ranks     map[string]engine.Rank
	calendar  map[string]engine.CalendarDay // personnelID|date
	ledger    *engine.Ledger
	locks     *lockIndex
	cursor    *engine.Cursor
	blackout  map[string]bool // dates excluded from new provisional writes
}

func buildRunContext(
	ctx context.Context,
	database AssignmentStore,
	cfg *config.Config,
	policy engine.Policy,
	missions []db.Mission,
	logger *zap.Logger,
) (*runContext, error) {
	personnel, err := database.GetPersonnel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personnel: %w", err)
	}

	qualifications, err := database.GetQualifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch qualifications: %w", err)
	}
	ranks := make(map[string]engine.Rank, len(qualifications))
	for _, q := range qualifications {
		ranks[q.PersonnelID] = engine.Rank(q.Rank)
	}
	for _, p := range personnel {
		if _, ok := ranks[p.ID]; !ok {
			return nil, engine.MissingReference("qualification", p.ID)
		}
	}

	from, to := runWindow(missions)
	entries, err := database.GetCalendarEntries(ctx, dateStr(from), dateStr(to))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar entries: %w", err)
	}
	calendar := make(map[string]engine.CalendarDay, len(entries))
	for _, e := range entries {
		calendar[e.PersonnelID+"|"+e.Date] = engine.CalendarDay{
			Known:      true,
			Available:  e.Available,
			StayBefore: e.StayBefore,
			StayAfter:  e.StayAfter,
			Remark:     e.Remark,
		}
	}

	assignments, err := database.GetProvisionalAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provisional assignments: %w", err)
	}
	manuals, err := database.GetManualAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manual assignments: %w", err)
	}

	missionTypes := make(map[string]engine.TestingType, len(missions))
	for _, m := range missions {
		missionTypes[m.ID] = engine.TestingType(m.TestingType)
	}

	ledger, err := buildLedger(assignments, missionTypes)
	if err != nil {
		return nil, err
	}
	locks := newLockIndex(assignments, manuals, missionTypes)

	blackout := map[string]bool{}
	if cfg != nil {
		blackout, err = cfg.BlackoutDates(from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to expand blackout rules: %w", err)
		}
	}

	logger.Debug("Run context ready",
		zap.Int("personnel", len(personnel)),
		zap.Int("calendar_entries", len(entries)),
		zap.Int("existing_assignments", len(assignments)),
		zap.Int("blackout_dates", len(blackout)))

	return &runContext{
		store:     database,
		logger:    logger,
		policy:    policy,
		personnel: personnel,
		ranks:     ranks,
		calendar:  calendar,
		ledger:    ledger,
		locks:     locks,
		cursor:    engine.NewCursor(),
		blackout:  blackout,
	}, nil
}

func policyFromDefaults(d *db.SystemDefaults) engine.Policy {
	leadRanks := make([]engine.Rank, 0, len(d.LeadRanks))
	for _, r := range d.LeadRanks {
		leadRanks = append(leadRanks, engine.Rank(r))
	}
	return engine.Policy{
		StayBeforeRequired:  d.StayBeforeRequired,
		StayAfterRequired:   d.StayAfterRequired,
		ContinuousDutyLimit: d.ContinuousDutyLimit,
		LeadRanks:           leadRanks,
		DcoBorder:           d.DcoBorder,
		DcoMax:              d.DcoMax,
		BcoBorder:           d.BcoBorder,
		ParticipationRatio:  d.ParticipationRatio,
	}
}

// runWindow spans all mission dates plus one day on each side for the
// stay-before and adjacency checks
func runWindow(missions []db.Mission) (time.Time, time.Time) {
	var from, to time.Time
	for _, m := range missions {
		start, err := parseDate(m.StartDate)
		if err != nil {
			continue
		}
		end, err := parseDate(m.EndDate)
		if err != nil {
			continue
		}
		if from.IsZero() || start.Before(from) {
			from = start
		}
		if to.IsZero() || end.After(to) {
			to = end
		}
	}
	return from.AddDate(0, 0, -1), to.AddDate(0, 0, 1)
}

// buildLedger converts existing provisional assignments to ledger
// entries. In-competition assignments are persisted once per time slot;
// the ledger keeps a single whole-day entry for them.
func buildLedger(assignments []db.ProvisionalAssignment, missionTypes map[string]engine.TestingType) (*engine.Ledger, error) {
	ledger := engine.NewLedger(nil)
	seen := make(map[string]bool, len(assignments))

	for _, pa := range assignments {
		tt, ok := missionTypes[pa.MissionID]
		if !ok {
			return nil, engine.MissingReference("mission", pa.MissionID)
		}
		date, err := parseDate(pa.Date)
		if err != nil {
			return nil, err
		}

		slot := engine.TimeSlot(pa.TimeSlot)
		if !tt.SlotBased() {
			slot = engine.SlotNone
		}
		key := pa.PersonnelID + "|" + pa.MissionID + "|" + pa.Date + "|" + string(slot) + "|" + pa.RoleGroup
		if seen[key] {
			continue
		}
		seen[key] = true

		ledger.Add(engine.LedgerEntry{
			PersonnelID: pa.PersonnelID,
			MissionID:   pa.MissionID,
			TestingType: tt,
			Date:        date,
			Slot:        slot,
			RoleGroup:   engine.RoleGroup(pa.RoleGroup),
		})
	}
	return ledger, nil
}

// candidatesFor builds the engine candidates for one mission, deriving
// each person's available-day count from the calendar within the
// mission span
func (rc *runContext) candidatesFor(m db.Mission) ([]engine.Candidate, error) {
	start, err := parseDate(m.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(m.EndDate)
	if err != nil {
		return nil, err
	}

	candidates := make([]engine.Candidate, 0, len(rc.personnel))
	for _, p := range rc.personnel {
		available := 0
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if day, ok := rc.calendar[p.ID+"|"+dateStr(d)]; ok && day.Available {
				available++
			}
		}
		candidates = append(candidates, engine.Candidate{
			PersonnelID:      p.ID,
			Gender:           engine.Gender(p.Gender),
			Rank:             rc.ranks[p.ID],
			Languages:        p.Languages,
			Region:           p.Region,
			Disciplines:      p.Disciplines,
			ConflictMissions: p.Conflicts,
			AvailableDays:    available,
			Trainee:          p.Trainee,
			Senior:           p.Senior,
			Mentor:           p.Mentor,
		})
	}
	return candidates, nil
}

// calendarLookup adapts the in-memory calendar map to the engine's
// lookup signature. Missing entries fail closed.
func (rc *runContext) calendarLookup() engine.CalendarLookup {
	return func(personnelID string, date time.Time) engine.CalendarDay {
		return rc.calendar[personnelID+"|"+dateStr(date)]
	}
}

// commitFunc persists one provisional assignment immediately, fanning
// an in-competition decision out to all four time slots
func (rc *runContext) commitFunc(ctx context.Context) engine.CommitFunc {
	return func(c engine.Candidate, s engine.Session, role engine.Role) error {
		for _, slot := range s.PersistSlots() {
			pa := db.ProvisionalAssignment{
				ID:          uuid.New().String(),
				MissionID:   s.MissionID,
				Date:        dateStr(s.Date),
				TimeSlot:    string(slot),
				PersonnelID: c.PersonnelID,
				Role:        string(role),
				RoleGroup:   string(role.Group()),
			}
			if err := rc.store.InsertProvisionalAssignment(ctx, pa); err != nil {
				return fmt.Errorf("failed to insert provisional assignment: %w", err)
			}
		}
		rc.logger.Debug("Committed provisional assignment",
			zap.String("personnel_id", c.PersonnelID),
			zap.String("mission_id", s.MissionID),
			zap.String("date", dateStr(s.Date)),
			zap.String("role", string(role)))
		return nil
	}
}

// persistSelections regenerates the selection records for a session and
// role. Fixed missions get an update-in-place scoring pass instead of
// delete-then-insert.
func (rc *runContext) persistSelections(
	ctx context.Context,
	s engine.Session,
	role engine.Role,
	cards []engine.Scorecard,
	updateInPlace bool,
) error {
	records := make([]db.SelectionRecord, 0, len(cards)*len(s.PersistSlots()))
	for _, slot := range s.PersistSlots() {
		for _, card := range cards {
			records = append(records, db.SelectionRecord{
				ID:              uuid.New().String(),
				MissionID:       s.MissionID,
				Date:            dateStr(s.Date),
				TimeSlot:        string(slot),
				PersonnelID:     card.Candidate.PersonnelID,
				Role:            string(role),
				Score:           card.Set.Score(),
				Conditions:      card.Set.Flags(),
				StrongCandidate: card.Strong,
				Assignable:      true,
			})
		}
	}

	if updateInPlace {
		if err := rc.store.UpdateSelectionRecords(ctx, records); err != nil {
			return fmt.Errorf("failed to update selection records: %w", err)
		}
		return nil
	}

	for _, slot := range s.PersistSlots() {
		if err := rc.store.DeleteSelectionRecords(ctx, s.MissionID, dateStr(s.Date), string(slot), string(role)); err != nil {
			return fmt.Errorf("failed to delete selection records: %w", err)
		}
	}
	if err := rc.store.InsertSelectionRecords(ctx, records); err != nil {
		return fmt.Errorf("failed to insert selection records: %w", err)
	}
	return nil
}

// upsertStatus writes the required/assigned counters for a session and
// role across its slot partitions
func (rc *runContext) upsertStatus(ctx context.Context, s engine.Session, role engine.Role, required, assigned int) error {
	for _, slot := range s.PersistSlots() {
		status := db.AssignmentStatus{
			MissionID: s.MissionID,
			Date:      dateStr(s.Date),
			TimeSlot:  string(slot),
			Role:      string(role),
			Required:  required,
			Assigned:  assigned,
		}
		if err := rc.store.UpsertAssignmentStatus(ctx, status); err != nil {
			return fmt.Errorf("failed to upsert assignment status: %w", err)
		}
	}
	return nil
}

// allocationSkipped reports whether new provisional writes are barred
// for the session: fixed mission, blackout date, or an existing
// provisional/manual lock on the session/role
func (rc *runContext) allocationSkipped(s engine.Session, role engine.Role, m engine.Mission) bool {
	return m.AssignmentFixed ||
		rc.blackout[dateStr(s.Date)] ||
		rc.locks.sessionLocked(s, role)
}
