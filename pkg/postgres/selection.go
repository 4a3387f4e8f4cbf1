package postgres

import (
	"context"
	"fmt"

	"github.com/larsmoen/dcproster/pkg/db"
)

// DeleteSelectionRecords removes all selection records for a session/role
func (d *DB) DeleteSelectionRecords(ctx context.Context, missionID, date, slot, role string) error {
	_, err := d.pool.Exec(ctx, `
		DELETE FROM selection_record
		WHERE mission_id = $1 AND date = $2 AND time_slot = $3 AND role = $4
	`, missionID, date, slot, role)
	if err != nil {
		return fmt.Errorf("failed to delete selection records: %w", err)
	}
	return nil
}

// InsertSelectionRecords inserts selection records in one transaction
func (d *DB) InsertSelectionRecords(ctx context.Context, records []db.SelectionRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO selection_record
				(id, mission_id, date, time_slot, personnel_id, role,
				 score, conditions, strong_candidate, assignable)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, r.ID, r.MissionID, r.Date, r.TimeSlot, r.PersonnelID, r.Role,
			r.Score, r.Conditions, r.StrongCandidate, r.Assignable)
		if err != nil {
			return fmt.Errorf("failed to insert selection record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateSelectionRecords refreshes the scoring fields of existing
// selection records in place, keyed by session, role and person.
// Used for missions whose assignments are fixed.
func (d *DB) UpdateSelectionRecords(ctx context.Context, records []db.SelectionRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		_, err := tx.Exec(ctx, `
			UPDATE selection_record
			SET score = $1, conditions = $2, strong_candidate = $3, assignable = $4
			WHERE mission_id = $5 AND date = $6 AND time_slot = $7
			  AND role = $8 AND personnel_id = $9
		`, r.Score, r.Conditions, r.StrongCandidate, r.Assignable,
			r.MissionID, r.Date, r.TimeSlot, r.Role, r.PersonnelID)
		if err != nil {
			return fmt.Errorf("failed to update selection record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetSelectionStrong sets the strong-candidate flag of one selection record
func (d *DB) SetSelectionStrong(ctx context.Context, missionID, date, slot, role, personnelID string, strong bool) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE selection_record
		SET strong_candidate = $1
		WHERE mission_id = $2 AND date = $3 AND time_slot = $4
		  AND role = $5 AND personnel_id = $6
	`, strong, missionID, date, slot, role, personnelID)
	if err != nil {
		return fmt.Errorf("failed to set strong candidate flag: %w", err)
	}
	return nil
}

// ReclassifySelection moves one person's selection record from one role
// to another within the same session
func (d *DB) ReclassifySelection(ctx context.Context, missionID, date, slot, personnelID, fromRole, toRole string) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE selection_record
		SET role = $1
		WHERE mission_id = $2 AND date = $3 AND time_slot = $4
		  AND personnel_id = $5 AND role = $6
	`, toRole, missionID, date, slot, personnelID, fromRole)
	if err != nil {
		return fmt.Errorf("failed to reclassify selection record: %w", err)
	}
	return nil
}
