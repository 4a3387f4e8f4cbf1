package postgres

import (
	"context"
	"fmt"

	"github.com/larsmoen/dcproster/pkg/db"
)

// GetPersonnel retrieves all personnel with their profile data
func (d *DB) GetPersonnel(ctx context.Context) ([]db.Personnel, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, gender, languages, region,
		       disciplines, conflicts, trainee, senior, mentor
		FROM personnel
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query personnel: %w", err)
	}
	defer rows.Close()

	var personnel []db.Personnel
	for rows.Next() {
		var p db.Personnel
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Gender,
			&p.Languages, &p.Region, &p.Disciplines, &p.Conflicts,
			&p.Trainee, &p.Senior, &p.Mentor); err != nil {
			return nil, fmt.Errorf("failed to scan personnel: %w", err)
		}
		personnel = append(personnel, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating personnel: %w", err)
	}

	return personnel, nil
}

// GetQualifications retrieves the rank of every person
func (d *DB) GetQualifications(ctx context.Context) ([]db.Qualification, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT personnel_id, rank
		FROM qualification
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualifications: %w", err)
	}
	defer rows.Close()

	var qualifications []db.Qualification
	for rows.Next() {
		var q db.Qualification
		if err := rows.Scan(&q.PersonnelID, &q.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan qualification: %w", err)
		}
		qualifications = append(qualifications, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating qualifications: %w", err)
	}

	return qualifications, nil
}

// GetCalendarEntries retrieves all calendar entries in the date range
// [from, to] inclusive
func (d *DB) GetCalendarEntries(ctx context.Context, from, to string) ([]db.CalendarEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT personnel_id, date, available, stay_before, stay_after, remark
		FROM calendar_entry
		WHERE date >= $1 AND date <= $2
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar entries: %w", err)
	}
	defer rows.Close()

	var entries []db.CalendarEntry
	for rows.Next() {
		var e db.CalendarEntry
		var remark *string
		if err := rows.Scan(&e.PersonnelID, &e.Date, &e.Available,
			&e.StayBefore, &e.StayAfter, &remark); err != nil {
			return nil, fmt.Errorf("failed to scan calendar entry: %w", err)
		}
		if remark != nil {
			e.Remark = *remark
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar entries: %w", err)
	}

	return entries, nil
}
