package engine

// Demand is the required headcount for a session/role, split by gender.
// A zero gender split means no gender targets apply.
type Demand struct {
	Required       int
	RequiredMale   int
	RequiredFemale int
}

// DCODemand computes the required DCO headcount from planned urine
// sample counts. The count tracks the sample count up to the border
// value; beyond the border it is capped at the configured maximum.
// The gender split follows the sample gender proportions.
func DCODemand(urineMale, urineFemale int, p Policy) Demand {
	total := urineMale + urineFemale
	if total == 0 {
		return Demand{}
	}

	required := total
	if required > p.DcoBorder {
		required = p.DcoMax
	}

	male := ceilDiv(urineMale*required, total)
	if male > required {
		male = required
	}
	return Demand{
		Required:       required,
		RequiredMale:   male,
		RequiredFemale: required - male,
	}
}

// BCODemand computes the required BCO headcount: none without blood
// samples, two beyond the border value or for pre-out-of-competition
// missions (mobile units travel in pairs), otherwise one.
func BCODemand(blood int, tt TestingType, p Policy) int {
	switch {
	case blood == 0:
		return 0
	case blood > p.BcoBorder || tt == PreOutOfCompetition:
		return 2
	default:
		return 1
	}
}

// BCOAdminDemand computes the BCO-admin headcount: one whenever blood
// samples are collected without a support hospital.
func BCOAdminDemand(blood int, supportHospital bool) int {
	if blood > 0 && !supportHospital {
		return 1
	}
	return 0
}

// LeadDemand returns the lead DCO headcount per session
func LeadDemand() int {
	return 1
}

// RequiredDays derives the number of days a candidate should be
// available for the mission from its day span and the configured
// participation ratio, rounded up.
func RequiredDays(missionDays int, ratio float64) int {
	if missionDays <= 0 {
		return 0
	}
	required := int(float64(missionDays) * ratio)
	if float64(required) < float64(missionDays)*ratio {
		required++
	}
	return required
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
