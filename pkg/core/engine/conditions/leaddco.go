package conditions

// ForLeadDCO evaluates the five-condition lead DCO set. Leads
// coordinate the station rather than chaperone competitors, so
// gender exclusivity does not apply.
func ForLeadDCO(in Input) Set {
	return Set{Conditions: []Condition{
		{Name: Distance, Met: in.distanceSuitable()},
		{Name: NoRemark, Met: in.noRemark()},
		{Name: Language, Met: in.languageMatch()},
		{Name: Experience, Met: in.disciplineExperience()},
		{Name: AvailableDays, Met: in.enoughDays()},
	}}
}
