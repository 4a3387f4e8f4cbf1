package db

import "context"

// Database defines the interface for all database operations.
// The postgres.DB store implements this interface.
type Database interface {
	GetSystemDefaults(ctx context.Context) (*SystemDefaults, error)
	GetMissions(ctx context.Context) ([]Mission, error)
	GetTestingDates(ctx context.Context, missionID string) ([]TestingDate, error)
	GetSampleCount(ctx context.Context, missionID, date string) (*SampleCount, error)
	GetPersonnel(ctx context.Context) ([]Personnel, error)
	GetQualifications(ctx context.Context) ([]Qualification, error)
	GetCalendarEntries(ctx context.Context, from, to string) ([]CalendarEntry, error)
	GetProvisionalAssignments(ctx context.Context) ([]ProvisionalAssignment, error)
	InsertProvisionalAssignment(ctx context.Context, pa ProvisionalAssignment) error
	GetManualAssignments(ctx context.Context) ([]ManualAssignment, error)
	DeleteSelectionRecords(ctx context.Context, missionID, date, slot, role string) error
	InsertSelectionRecords(ctx context.Context, records []SelectionRecord) error
	UpdateSelectionRecords(ctx context.Context, records []SelectionRecord) error
	SetSelectionStrong(ctx context.Context, missionID, date, slot, role, personnelID string, strong bool) error
	ReclassifySelection(ctx context.Context, missionID, date, slot, personnelID, fromRole, toRole string) error
	UpsertAssignmentStatus(ctx context.Context, status AssignmentStatus) error
	GetAssignmentStatuses(ctx context.Context) ([]AssignmentStatus, error)
}
