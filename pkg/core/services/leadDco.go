package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/larsmoen/dcproster/pkg/core/engine"
)

// leadPick is the lead DCO selected for one session: either committed
// (a provisional assignment exists, pre-existing or written this run)
// or merely the top strong selection when allocation was skipped
type leadPick struct {
	id        string
	committed bool
}

// runLeadPipeline fills the single lead DCO seat per session and then
// applies the two-day inspection merge over the mission's first two
// sessions
func runLeadPipeline(
	ctx context.Context,
	rc *runContext,
	m engine.Mission,
	sessions []engine.Session,
	candidates []engine.Candidate,
) ([]SessionReport, error) {
	requiredDays := engine.RequiredDays(m.Days, rc.policy.ParticipationRatio)
	required := engine.LeadDemand()

	var reports []SessionReport
	picks := make([]leadPick, len(sessions))

	for i, s := range sessions {
		run := newPipelineRun(engine.RoleLeadDCO, s, rc.logger)

		if rc.locks.sessionLocked(s, engine.RoleLeadDCO) {
			picks[i] = leadPick{id: rc.locks.assignee(s, engine.RoleLeadDCO), committed: true}
			reports = append(reports, SessionReport{
				Date:     dateStr(s.Date),
				Slot:     string(s.Slot),
				Role:     string(engine.RoleLeadDCO),
				Required: required,
				Locked:   true,
			})
			continue
		}

		cards, err := rc.filterAndScore(run, m, s, engine.RoleLeadDCO, candidates, requiredDays, engine.GenderAny)
		if err != nil {
			return nil, err
		}
		if err := rc.persistSelections(ctx, s, engine.RoleLeadDCO, cards, m.AssignmentFixed); err != nil {
			return nil, err
		}

		if rc.allocationSkipped(s, engine.RoleLeadDCO, m) {
			picks[i] = leadPick{id: topStrongID(cards, rc.cursor.Position())}
			if err := run.advance(stageLocked); err != nil {
				return nil, err
			}
			if err := run.advance(stageDone); err != nil {
				return nil, err
			}
			reports = append(reports, SessionReport{
				Date:     dateStr(s.Date),
				Slot:     string(s.Slot),
				Role:     string(engine.RoleLeadDCO),
				Required: required,
				Locked:   true,
			})
			continue
		}

		commit := rc.commitFunc(ctx)
		outcome, err := engine.AllocateSingle(engine.AllocationParams{
			Session:   s,
			Role:      engine.RoleLeadDCO,
			Pool:      engine.NewPool(engine.StrongOnly(cards)),
			DutyLimit: rc.policy.ContinuousDutyLimit,
			Cursor:    rc.cursor,
			Ledger:    rc.ledger,
			Commit: func(c engine.Candidate, cs engine.Session, role engine.Role) error {
				picks[i] = leadPick{id: c.PersonnelID, committed: true}
				return commit(c, cs, role)
			},
		}, required)
		if err != nil {
			return nil, err
		}
		if err := run.advance(stageAllocated); err != nil {
			return nil, err
		}
		if err := run.advance(stageDone); err != nil {
			return nil, err
		}

		if err := rc.upsertStatus(ctx, s, engine.RoleLeadDCO, required, outcome.Assigned); err != nil {
			return nil, err
		}
		reports = append(reports, SessionReport{
			Date:     dateStr(s.Date),
			Slot:     string(s.Slot),
			Role:     string(engine.RoleLeadDCO),
			Required: required,
			Assigned: outcome.Assigned,
		})
	}

	if err := rc.mergeLeadInspection(ctx, sessions, picks); err != nil {
		return nil, err
	}
	return reports, nil
}

// topStrongID is the strong candidate the cursor would draw first, used
// as the session's lead pick when allocation itself is skipped
func topStrongID(cards []engine.Scorecard, pos engine.CursorPosition) string {
	strong := engine.StrongOnly(cards)
	if len(strong) == 0 {
		return ""
	}
	if pos == engine.Back {
		return strong[len(strong)-1].Candidate.PersonnelID
	}
	return strong[0].Candidate.PersonnelID
}

// mergeLeadInspection applies the two-day rule over the mission's first
// two sessions: the same person leading both days serves day one as an
// inspection visit, so that day's selection is reclassified. A person
// selected only for the second day loses the strong flag there, but
// never when a provisional assignment backs the pick. Provisional
// assignments themselves are never rewritten.
func (rc *runContext) mergeLeadInspection(ctx context.Context, sessions []engine.Session, picks []leadPick) error {
	if len(sessions) < 2 {
		return nil
	}
	first, second := sessions[0], sessions[1]
	p1, p2 := picks[0], picks[1]
	if p2.id == "" {
		return nil
	}

	if p1.id == p2.id {
		for _, slot := range first.PersistSlots() {
			err := rc.store.ReclassifySelection(ctx, first.MissionID, dateStr(first.Date),
				string(slot), p1.id, string(engine.RoleLeadDCO), string(engine.RoleInspection))
			if err != nil {
				return err
			}
		}
		rc.logger.Debug("Reclassified first lead day to inspection",
			zap.String("mission_id", first.MissionID),
			zap.String("personnel_id", p1.id))
		return nil
	}

	if p2.committed {
		return nil
	}
	for _, slot := range second.PersistSlots() {
		err := rc.store.SetSelectionStrong(ctx, second.MissionID, dateStr(second.Date),
			string(slot), string(engine.RoleLeadDCO), p2.id, false)
		if err != nil {
			return err
		}
	}
	return nil
}
