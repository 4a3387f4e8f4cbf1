package conditions

// ForBCO evaluates the three-condition set shared by the BCO and
// BCO-admin roles. Blood collection has no language or discipline
// requirement.
func ForBCO(in Input) Set {
	return Set{Conditions: []Condition{
		{Name: Distance, Met: in.distanceSuitable()},
		{Name: NoRemark, Met: in.noRemark()},
		{Name: AvailableDays, Met: in.enoughDays()},
	}}
}
