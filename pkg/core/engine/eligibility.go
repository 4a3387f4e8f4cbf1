package engine

import "slices"

// EligibilityInput bundles the session-level facts the filter needs
type EligibilityInput struct {
	Session  Session
	Role     Role
	Policy   Policy
	Mission  Mission
	Calendar CalendarLookup
	// Locked reports a pre-existing provisional assignment for the
	// candidate at this exact session/role; such candidates are not
	// re-added to the eligible list.
	Locked func(personnelID string) bool
}

// FilterEligible returns the subset of candidates that are calendar
// available, free of conflict of interest, satisfy the stay
// requirements and pass the role-specific filters. Order is preserved.
// An empty result is a normal outcome, not an error.
func FilterEligible(in EligibilityInput, candidates []Candidate) []Candidate {
	// BCO-admin is not staffed on missions using a support hospital
	if in.Role == RoleBCOAdmin && in.Mission.SupportHospital {
		return nil
	}

	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if in.Locked != nil && in.Locked(c.PersonnelID) {
			continue
		}
		if c.HasConflict(in.Mission.ID) {
			continue
		}

		day := in.Calendar(c.PersonnelID, in.Session.Date)
		if !day.Known || !day.Available {
			continue
		}

		// Overnight stay after the session is recorded on the
		// session date itself; the stay before on the prior day.
		// Missing calendar data means not allowed.
		if in.Policy.StayAfterRequired && !day.StayAfter {
			continue
		}
		if in.Policy.StayBeforeRequired {
			prior := in.Calendar(c.PersonnelID, in.Session.Date.AddDate(0, 0, -1))
			if !prior.Known || !prior.StayBefore {
				continue
			}
		}

		if !roleEligible(in.Role, in.Policy, c) {
			continue
		}

		eligible = append(eligible, c)
	}
	return eligible
}

func roleEligible(role Role, policy Policy, c Candidate) bool {
	switch role {
	case RoleDCO:
		return slices.Contains(OfficerRanks(), c.Rank)
	case RoleLeadDCO:
		return slices.Contains(policy.LeadRanks, c.Rank)
	case RoleTrainee, RoleSenior, RoleMentor:
		return c.HasCategory(role)
	default:
		return true
	}
}
