package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/larsmoen/dcproster/pkg/core/engine"
	"github.com/larsmoen/dcproster/pkg/db"
)

// manualRoles are filled by human confirmation only
func manualRoles() []engine.Role {
	return []engine.Role{engine.RoleTrainee, engine.RoleSenior, engine.RoleMentor}
}

// runManualPipeline writes selection records for the human-confirmed
// roles. No scoring and no allocation happen here: every eligible
// person with the matching category is recorded as assignable, and the
// strong flag only reflects an existing provisional commitment. These
// records regenerate even when the session/role carries a lock, since
// the human confirming the role needs a current candidate list.
func runManualPipeline(
	ctx context.Context,
	rc *runContext,
	m engine.Mission,
	sessions []engine.Session,
	candidates []engine.Candidate,
) error {
	for _, s := range sessions {
		for _, role := range manualRoles() {
			eligible := engine.FilterEligible(engine.EligibilityInput{
				Session:  s,
				Role:     role,
				Policy:   rc.policy,
				Mission:  m,
				Calendar: rc.calendarLookup(),
			}, candidates)
			if len(eligible) == 0 {
				continue
			}

			locked := rc.locks.lockedFunc(s, role)
			records := make([]db.SelectionRecord, 0, len(eligible)*len(s.PersistSlots()))
			for _, slot := range s.PersistSlots() {
				for _, c := range eligible {
					records = append(records, db.SelectionRecord{
						ID:              uuid.New().String(),
						MissionID:       s.MissionID,
						Date:            dateStr(s.Date),
						TimeSlot:        string(slot),
						PersonnelID:     c.PersonnelID,
						Role:            string(role),
						StrongCandidate: locked(c.PersonnelID),
						Assignable:      true,
					})
				}
			}

			if m.AssignmentFixed {
				if err := rc.store.UpdateSelectionRecords(ctx, records); err != nil {
					return fmt.Errorf("failed to update selection records: %w", err)
				}
				continue
			}
			for _, slot := range s.PersistSlots() {
				if err := rc.store.DeleteSelectionRecords(ctx, s.MissionID, dateStr(s.Date), string(slot), string(role)); err != nil {
					return fmt.Errorf("failed to delete selection records: %w", err)
				}
			}
			if err := rc.store.InsertSelectionRecords(ctx, records); err != nil {
				return fmt.Errorf("failed to insert selection records: %w", err)
			}
		}
	}
	return nil
}
