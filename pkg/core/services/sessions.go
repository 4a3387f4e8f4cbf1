package services

import (
	"fmt"
	"time"

	"github.com/larsmoen/dcproster/pkg/core/engine"
	"github.com/larsmoen/dcproster/pkg/db"
)

const dateLayout = "2006-01-02"

func dateStr(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return t, nil
}

// missionDaySpan returns the inclusive calendar day count of a mission
func missionDaySpan(m db.Mission) (int, error) {
	start, err := parseDate(m.StartDate)
	if err != nil {
		return 0, err
	}
	end, err := parseDate(m.EndDate)
	if err != nil {
		return 0, err
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 0, fmt.Errorf("mission %s has invalid date range %s..%s", m.ID, m.StartDate, m.EndDate)
	}
	return days, nil
}

func engineMission(m db.Mission, days int) engine.Mission {
	return engine.Mission{
		ID:              m.ID,
		TestingType:     engine.TestingType(m.TestingType),
		Discipline:      m.Discipline,
		HighRisk:        m.HighRisk,
		ForeignLanguage: m.ForeignLanguage,
		Region:          m.Region,
		SupportHospital: m.SupportHospital,
		AssignmentFixed: m.AssignmentFixed,
		Days:            days,
	}
}

// missionSessions derives the sessions of a mission. In-competition
// missions have one session per testing-date record; slot-based
// missions have one session per calendar day in their range, in the
// time slot derived once from the notification hour.
func missionSessions(m db.Mission, dates []db.TestingDate) ([]engine.Session, error) {
	tt := engine.TestingType(m.TestingType)

	if !tt.SlotBased() {
		if len(dates) == 0 {
			return nil, engine.MissingReference("testing_dates", m.ID)
		}
		sessions := make([]engine.Session, 0, len(dates))
		for _, td := range dates {
			d, err := parseDate(td.Date)
			if err != nil {
				return nil, err
			}
			sessions = append(sessions, engine.Session{
				MissionID:   m.ID,
				TestingType: tt,
				Date:        d,
				Slot:        engine.SlotNone,
			})
		}
		return sessions, nil
	}

	start, err := parseDate(m.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(m.EndDate)
	if err != nil {
		return nil, err
	}

	slot := engine.SlotForHour(m.NotificationHour)
	var sessions []engine.Session
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		sessions = append(sessions, engine.Session{
			MissionID:   m.ID,
			TestingType: tt,
			Date:        d,
			Slot:        slot,
		})
	}
	return sessions, nil
}

// exclusiveGender returns the single competitor gender of the day, or
// GenderAny when the field is mixed or empty
func exclusiveGender(sc *db.SampleCount) engine.Gender {
	switch {
	case sc.CompetitorsMale > 0 && sc.CompetitorsFemale == 0:
		return engine.GenderMale
	case sc.CompetitorsFemale > 0 && sc.CompetitorsMale == 0:
		return engine.GenderFemale
	default:
		return engine.GenderAny
	}
}
