package postgres

import (
	"context"
	"fmt"

	"github.com/larsmoen/dcproster/pkg/db"
)

// GetProvisionalAssignments retrieves all provisional assignments
func (d *DB) GetProvisionalAssignments(ctx context.Context) ([]db.ProvisionalAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, mission_id, date, time_slot, personnel_id, role, role_group
		FROM provisional_assignment
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query provisional assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.ProvisionalAssignment
	for rows.Next() {
		var pa db.ProvisionalAssignment
		if err := rows.Scan(&pa.ID, &pa.MissionID, &pa.Date, &pa.TimeSlot,
			&pa.PersonnelID, &pa.Role, &pa.RoleGroup); err != nil {
			return nil, fmt.Errorf("failed to scan provisional assignment: %w", err)
		}
		assignments = append(assignments, pa)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provisional assignments: %w", err)
	}

	return assignments, nil
}

// InsertProvisionalAssignment inserts one provisional assignment.
// The table is insert-only from the engine's point of view.
func (d *DB) InsertProvisionalAssignment(ctx context.Context, pa db.ProvisionalAssignment) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO provisional_assignment
			(id, mission_id, date, time_slot, personnel_id, role, role_group)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, pa.ID, pa.MissionID, pa.Date, pa.TimeSlot, pa.PersonnelID, pa.Role, pa.RoleGroup)
	if err != nil {
		return fmt.Errorf("failed to insert provisional assignment: %w", err)
	}
	return nil
}

// GetManualAssignments retrieves all human-entered assignments
func (d *DB) GetManualAssignments(ctx context.Context) ([]db.ManualAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT mission_id, date, time_slot, personnel_id, role
		FROM manual_assignment
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query manual assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.ManualAssignment
	for rows.Next() {
		var ma db.ManualAssignment
		if err := rows.Scan(&ma.MissionID, &ma.Date, &ma.TimeSlot,
			&ma.PersonnelID, &ma.Role); err != nil {
			return nil, fmt.Errorf("failed to scan manual assignment: %w", err)
		}
		assignments = append(assignments, ma)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manual assignments: %w", err)
	}

	return assignments, nil
}

// UpsertAssignmentStatus writes the required/assigned counters for one
// session/role, replacing any previous counters
func (d *DB) UpsertAssignmentStatus(ctx context.Context, status db.AssignmentStatus) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO assignment_status (mission_id, date, time_slot, role, required, assigned)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (mission_id, date, time_slot, role)
		DO UPDATE SET required = EXCLUDED.required, assigned = EXCLUDED.assigned
	`, status.MissionID, status.Date, status.TimeSlot, status.Role,
		status.Required, status.Assigned)
	if err != nil {
		return fmt.Errorf("failed to upsert assignment status: %w", err)
	}
	return nil
}

// GetAssignmentStatuses retrieves all assignment status counters
func (d *DB) GetAssignmentStatuses(ctx context.Context) ([]db.AssignmentStatus, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT mission_id, date, time_slot, role, required, assigned
		FROM assignment_status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment statuses: %w", err)
	}
	defer rows.Close()

	var statuses []db.AssignmentStatus
	for rows.Next() {
		var s db.AssignmentStatus
		if err := rows.Scan(&s.MissionID, &s.Date, &s.TimeSlot, &s.Role,
			&s.Required, &s.Assigned); err != nil {
			return nil, fmt.Errorf("failed to scan assignment status: %w", err)
		}
		statuses = append(statuses, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment statuses: %w", err)
	}

	return statuses, nil
}
