package conditions

// ForDCO evaluates the six-condition DCO set. The gender-exclusivity
// condition only bites on days where all competitors share one gender.
func ForDCO(in Input) Set {
	return Set{Conditions: []Condition{
		{Name: Distance, Met: in.distanceSuitable()},
		{Name: NoRemark, Met: in.noRemark()},
		{Name: Language, Met: in.languageMatch()},
		{Name: Experience, Met: in.disciplineExperience()},
		{Name: AvailableDays, Met: in.enoughDays()},
		{Name: GenderMatch, Met: in.genderMatch()},
	}}
}
