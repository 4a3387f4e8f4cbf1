package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/larsmoen/dcproster/pkg/db"
)

// MissionStore defines the database operations needed to list missions
type MissionStore interface {
	GetMissions(ctx context.Context) ([]db.Mission, error)
}

// ListMissions returns all missions sorted by start date
func ListMissions(ctx context.Context, database MissionStore, logger *zap.Logger) ([]db.Mission, error) {
	missions, err := database.GetMissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch missions: %w", err)
	}
	sort.Slice(missions, func(i, j int) bool {
		return missions[i].StartDate < missions[j].StartDate
	})
	logger.Debug("Listed missions", zap.Int("count", len(missions)))
	return missions, nil
}

// StatusStore defines the database operations needed to report
// assignment coverage
type StatusStore interface {
	GetAssignmentStatuses(ctx context.Context) ([]db.AssignmentStatus, error)
}

// ShowStatus returns the required/assigned counters, optionally
// filtered to one mission, ordered by mission, date, slot and role
func ShowStatus(ctx context.Context, database StatusStore, missionID string, logger *zap.Logger) ([]db.AssignmentStatus, error) {
	statuses, err := database.GetAssignmentStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment statuses: %w", err)
	}

	if missionID != "" {
		filtered := statuses[:0]
		for _, s := range statuses {
			if s.MissionID == missionID {
				filtered = append(filtered, s)
			}
		}
		statuses = filtered
	}

	sort.Slice(statuses, func(i, j int) bool {
		a, b := statuses[i], statuses[j]
		if a.MissionID != b.MissionID {
			return a.MissionID < b.MissionID
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.TimeSlot != b.TimeSlot {
			return a.TimeSlot < b.TimeSlot
		}
		return a.Role < b.Role
	})

	logger.Debug("Status rows", zap.Int("count", len(statuses)))
	return statuses, nil
}
