package engine

// Tier is one rank tier of a quota shape. Fallback tiers carry a zero
// requirement of their own and absorb carry-over from earlier tiers.
type Tier struct {
	Ranks    []Rank
	Required int
}

// HighRiskTiers builds the quota shape for high-risk disciplines:
// S1 through A1 in priority order with A2 as the fallback tier.
func HighRiskTiers(required int) []Tier {
	tiers := rankTiers(required, []Rank{RankS1, RankS2, RankS3, RankA1})
	return append(tiers, Tier{Ranks: []Rank{RankA2}})
}

// LowRiskTiers builds the quota shape for low-risk disciplines:
// A2 up through S1, with no fallback beyond the last tier.
func LowRiskTiers(required int) []Tier {
	return rankTiers(required, []Rank{RankA2, RankA1, RankS3, RankS2, RankS1})
}

// OOCTTiers builds the simplified two-tier shape for out-of-competition
// missions: the upper ranks merged, A2 as fallback.
func OOCTTiers(required int) []Tier {
	return []Tier{
		{Ranks: []Rank{RankS1, RankS2, RankS3, RankA1}, Required: required},
		{Ranks: []Rank{RankA2}},
	}
}

// rankTiers spreads the required count evenly over the given ranks,
// remainder to the highest-priority tiers first.
func rankTiers(required int, ranks []Rank) []Tier {
	tiers := make([]Tier, len(ranks))
	base := required / len(ranks)
	extra := required % len(ranks)
	for i, r := range ranks {
		tiers[i] = Tier{Ranks: []Rank{r}, Required: base}
		if i < extra {
			tiers[i].Required++
		}
	}
	return tiers
}
