package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/larsmoen/dcproster/pkg/core/engine"
	"github.com/larsmoen/dcproster/pkg/db"
)

// runDCOPipeline fills the DCO headcount for every session of the
// mission: demand from the day's urine samples, tiered allocation by
// rank with gender targets from the sample split.
func runDCOPipeline(
	ctx context.Context,
	rc *runContext,
	m engine.Mission,
	sessions []engine.Session,
	candidates []engine.Candidate,
) ([]SessionReport, error) {
	requiredDays := engine.RequiredDays(m.Days, rc.policy.ParticipationRatio)

	var reports []SessionReport
	for _, s := range sessions {
		run := newPipelineRun(engine.RoleDCO, s, rc.logger)

		samples, err := rc.sampleCount(ctx, s)
		if err != nil {
			return nil, err
		}
		demand := engine.DCODemand(samples.UrineMale, samples.UrineFemale, rc.policy)
		if demand.Required == 0 {
			if err := rc.clearSelections(ctx, s, engine.RoleDCO, m); err != nil {
				return nil, err
			}
			continue
		}

		if rc.locks.sessionLocked(s, engine.RoleDCO) {
			reports = append(reports, SessionReport{
				Date:     dateStr(s.Date),
				Slot:     string(s.Slot),
				Role:     string(engine.RoleDCO),
				Required: demand.Required,
				Locked:   true,
			})
			continue
		}

		cards, err := rc.filterAndScore(run, m, s, engine.RoleDCO, candidates, requiredDays, exclusiveGender(samples))
		if err != nil {
			return nil, err
		}
		if err := rc.persistSelections(ctx, s, engine.RoleDCO, cards, m.AssignmentFixed); err != nil {
			return nil, err
		}

		if rc.allocationSkipped(s, engine.RoleDCO, m) {
			if err := run.advance(stageLocked); err != nil {
				return nil, err
			}
			if err := run.advance(stageDone); err != nil {
				return nil, err
			}
			reports = append(reports, SessionReport{
				Date:     dateStr(s.Date),
				Slot:     string(s.Slot),
				Role:     string(engine.RoleDCO),
				Required: demand.Required,
				Locked:   true,
			})
			continue
		}

		outcome, err := engine.Allocate(engine.AllocationParams{
			Session:        s,
			Role:           engine.RoleDCO,
			Tiers:          dcoTiers(m, demand.Required),
			Pool:           engine.NewPool(engine.StrongOnly(cards)),
			RequiredMale:   demand.RequiredMale,
			RequiredFemale: demand.RequiredFemale,
			DutyLimit:      rc.policy.ContinuousDutyLimit,
			Cursor:         rc.cursor,
			Ledger:         rc.ledger,
			Commit:         rc.commitFunc(ctx),
		})
		if err != nil {
			return nil, err
		}
		if err := run.advance(stageAllocated); err != nil {
			return nil, err
		}
		if err := run.advance(stageDone); err != nil {
			return nil, err
		}

		if outcome.Assigned < demand.Required {
			rc.logger.Warn("DCO session under-filled",
				zap.String("mission_id", s.MissionID),
				zap.String("date", dateStr(s.Date)),
				zap.Int("required", demand.Required),
				zap.Int("assigned", outcome.Assigned))
		}
		if err := rc.upsertStatus(ctx, s, engine.RoleDCO, demand.Required, outcome.Assigned); err != nil {
			return nil, err
		}

		reports = append(reports, SessionReport{
			Date:     dateStr(s.Date),
			Slot:     string(s.Slot),
			Role:     string(engine.RoleDCO),
			Required: demand.Required,
			Assigned: outcome.Assigned,
		})
	}
	return reports, nil
}

// dcoTiers picks the quota shape for a session: out-of-competition
// missions use the merged two-tier shape, in-competition missions the
// risk-dependent five-tier shapes
func dcoTiers(m engine.Mission, required int) []engine.Tier {
	switch {
	case m.TestingType.SlotBased():
		return engine.OOCTTiers(required)
	case m.HighRisk:
		return engine.HighRiskTiers(required)
	default:
		return engine.LowRiskTiers(required)
	}
}

// clearSelections drops the selection records of a session/role whose
// demand fell to zero, so a sample count lowered between runs does not
// leave stale candidates behind. Locked sessions and fixed missions
// keep their records.
func (rc *runContext) clearSelections(ctx context.Context, s engine.Session, role engine.Role, m engine.Mission) error {
	if m.AssignmentFixed || rc.locks.sessionLocked(s, role) {
		return nil
	}
	for _, slot := range s.PersistSlots() {
		if err := rc.store.DeleteSelectionRecords(ctx, s.MissionID, dateStr(s.Date), string(slot), string(role)); err != nil {
			return fmt.Errorf("failed to delete selection records: %w", err)
		}
	}
	return nil
}

// sampleCount fetches the planned samples for the session date. A
// missing row is a broken reference and aborts the run.
func (rc *runContext) sampleCount(ctx context.Context, s engine.Session) (*db.SampleCount, error) {
	samples, err := rc.store.GetSampleCount(ctx, s.MissionID, dateStr(s.Date))
	if errors.Is(err, db.ErrNotFound) {
		return nil, engine.MissingReference("sample_count", s.MissionID+"/"+dateStr(s.Date))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sample count: %w", err)
	}
	return samples, nil
}

// filterAndScore runs the eligibility filter and the suitability scorer
// for one session/role, advancing the pipeline stages
func (rc *runContext) filterAndScore(
	run *pipelineRun,
	m engine.Mission,
	s engine.Session,
	role engine.Role,
	candidates []engine.Candidate,
	requiredDays int,
	exclusive engine.Gender,
) ([]engine.Scorecard, error) {
	locked := rc.locks.lockedFunc(s, role)

	eligible := engine.FilterEligible(engine.EligibilityInput{
		Session:  s,
		Role:     role,
		Policy:   rc.policy,
		Mission:  m,
		Calendar: rc.calendarLookup(),
		Locked:   locked,
	}, candidates)
	if err := run.advance(stageFiltered); err != nil {
		return nil, err
	}

	cards := engine.ScoreAll(role, eligible, s, engine.ScoreInput{
		Mission:         m,
		RequiredDays:    requiredDays,
		ExclusiveGender: exclusive,
		Calendar:        rc.calendarLookup(),
		Locked:          locked,
	})
	if err := run.advance(stageScored); err != nil {
		return nil, err
	}
	return cards, nil
}
