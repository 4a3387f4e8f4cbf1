package services

import (
	"context"

	"github.com/larsmoen/dcproster/pkg/core/engine"
)

// runBCOPipeline fills the blood collection roles per session: BCOs
// keyed off the day's blood sample count, plus one BCO admin when blood
// is collected without a support hospital
func runBCOPipeline(
	ctx context.Context,
	rc *runContext,
	m engine.Mission,
	sessions []engine.Session,
	candidates []engine.Candidate,
) ([]SessionReport, error) {
	requiredDays := engine.RequiredDays(m.Days, rc.policy.ParticipationRatio)

	var reports []SessionReport
	for _, s := range sessions {
		samples, err := rc.sampleCount(ctx, s)
		if err != nil {
			return nil, err
		}

		bcoRequired := engine.BCODemand(samples.Blood, m.TestingType, rc.policy)
		adminRequired := engine.BCOAdminDemand(samples.Blood, m.SupportHospital)

		for _, seat := range []struct {
			role     engine.Role
			required int
		}{
			{engine.RoleBCO, bcoRequired},
			{engine.RoleBCOAdmin, adminRequired},
		} {
			if seat.required == 0 {
				if err := rc.clearSelections(ctx, s, seat.role, m); err != nil {
					return nil, err
				}
				continue
			}
			report, err := rc.runFixedCount(ctx, m, s, seat.role, candidates, requiredDays, seat.required)
			if err != nil {
				return nil, err
			}
			reports = append(reports, *report)
		}
	}
	return reports, nil
}

// runFixedCount runs the filter/score/allocate sequence for a role with
// a flat headcount and no rank tiers or gender targets
func (rc *runContext) runFixedCount(
	ctx context.Context,
	m engine.Mission,
	s engine.Session,
	role engine.Role,
	candidates []engine.Candidate,
	requiredDays, required int,
) (*SessionReport, error) {
	run := newPipelineRun(role, s, rc.logger)

	if rc.locks.sessionLocked(s, role) {
		return &SessionReport{
			Date:     dateStr(s.Date),
			Slot:     string(s.Slot),
			Role:     string(role),
			Required: required,
			Locked:   true,
		}, nil
	}

	cards, err := rc.filterAndScore(run, m, s, role, candidates, requiredDays, engine.GenderAny)
	if err != nil {
		return nil, err
	}
	if err := rc.persistSelections(ctx, s, role, cards, m.AssignmentFixed); err != nil {
		return nil, err
	}

	if rc.allocationSkipped(s, role, m) {
		if err := run.advance(stageLocked); err != nil {
			return nil, err
		}
		if err := run.advance(stageDone); err != nil {
			return nil, err
		}
		return &SessionReport{
			Date:     dateStr(s.Date),
			Slot:     string(s.Slot),
			Role:     string(role),
			Required: required,
			Locked:   true,
		}, nil
	}

	outcome, err := engine.AllocateSingle(engine.AllocationParams{
		Session:   s,
		Role:      role,
		Pool:      engine.NewPool(engine.StrongOnly(cards)),
		DutyLimit: rc.policy.ContinuousDutyLimit,
		Cursor:    rc.cursor,
		Ledger:    rc.ledger,
		Commit:    rc.commitFunc(ctx),
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

	if err := rc.upsertStatus(ctx, s, role, required, outcome.Assigned); err != nil {
		return nil, err
	}
	return &SessionReport{
		Date:     dateStr(s.Date),
		Slot:     string(s.Slot),
		Role:     string(role),
		Required: required,
		Assigned: outcome.Assigned,
	}, nil
}
