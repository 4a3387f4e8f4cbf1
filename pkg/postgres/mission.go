package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/larsmoen/dcproster/pkg/db"
)

// GetMissions retrieves all missions
func (d *DB) GetMissions(ctx context.Context) ([]db.Mission, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, testing_type, start_date, end_date, discipline,
		       high_risk, foreign_language, region, support_hospital,
		       assignment_fixed, notification_hour
		FROM mission
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query missions: %w", err)
	}
	defer rows.Close()

	var missions []db.Mission
	for rows.Next() {
		var m db.Mission
		var foreignLanguage *string
		if err := rows.Scan(&m.ID, &m.Name, &m.TestingType, &m.StartDate, &m.EndDate,
			&m.Discipline, &m.HighRisk, &foreignLanguage, &m.Region,
			&m.SupportHospital, &m.AssignmentFixed, &m.NotificationHour); err != nil {
			return nil, fmt.Errorf("failed to scan mission: %w", err)
		}
		if foreignLanguage != nil {
			m.ForeignLanguage = *foreignLanguage
		}
		missions = append(missions, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating missions: %w", err)
	}

	return missions, nil
}

// GetTestingDates retrieves the testing dates of an in-competition mission
func (d *DB) GetTestingDates(ctx context.Context, missionID string) ([]db.TestingDate, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, mission_id, date
		FROM testing_date
		WHERE mission_id = $1
		ORDER BY date
	`, missionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query testing dates: %w", err)
	}
	defer rows.Close()

	var dates []db.TestingDate
	for rows.Next() {
		var td db.TestingDate
		if err := rows.Scan(&td.ID, &td.MissionID, &td.Date); err != nil {
			return nil, fmt.Errorf("failed to scan testing date: %w", err)
		}
		dates = append(dates, td)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating testing dates: %w", err)
	}

	return dates, nil
}

// GetSampleCount retrieves the planned sample counts for a mission date.
// Returns db.ErrNotFound when no row exists.
func (d *DB) GetSampleCount(ctx context.Context, missionID, date string) (*db.SampleCount, error) {
	var sc db.SampleCount
	err := d.pool.QueryRow(ctx, `
		SELECT mission_id, date, urine_male, urine_female, blood,
		       competitors_male, competitors_female
		FROM sample_count
		WHERE mission_id = $1 AND date = $2
	`, missionID, date).Scan(&sc.MissionID, &sc.Date, &sc.UrineMale, &sc.UrineFemale,
		&sc.Blood, &sc.CompetitorsMale, &sc.CompetitorsFemale)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sample count: %w", err)
	}
	return &sc, nil
}

// GetSystemDefaults retrieves the global assignment policy row.
// Returns db.ErrNotFound when the table is empty.
func (d *DB) GetSystemDefaults(ctx context.Context) (*db.SystemDefaults, error) {
	var sd db.SystemDefaults
	err := d.pool.QueryRow(ctx, `
		SELECT id, stay_before_required, stay_after_required,
		       continuous_duty_limit, lead_ranks, dco_border, dco_max,
		       bco_border, participation_ratio
		FROM system_defaults
		ORDER BY id
		LIMIT 1
	`).Scan(&sd.ID, &sd.StayBeforeRequired, &sd.StayAfterRequired,
		&sd.ContinuousDutyLimit, &sd.LeadRanks, &sd.DcoBorder, &sd.DcoMax,
		&sd.BcoBorder, &sd.ParticipationRatio)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query system defaults: %w", err)
	}
	return &sd, nil
}
