package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighRiskTiers_DistributesWithFallback(t *testing.T) {
	tiers := HighRiskTiers(10)
	require.Len(t, tiers, 5)

	assert.Equal(t, []Rank{RankS1}, tiers[0].Ranks)
	assert.Equal(t, 3, tiers[0].Required)
	assert.Equal(t, 3, tiers[1].Required)
	assert.Equal(t, 2, tiers[2].Required)
	assert.Equal(t, 2, tiers[3].Required)

	// A2 fallback carries no quota of its own
	assert.Equal(t, []Rank{RankA2}, tiers[4].Ranks)
	assert.Equal(t, 0, tiers[4].Required)
}

func TestLowRiskTiers_ReversedNoExtraFallback(t *testing.T) {
	tiers := LowRiskTiers(5)
	require.Len(t, tiers, 5)

	assert.Equal(t, []Rank{RankA2}, tiers[0].Ranks)
	assert.Equal(t, []Rank{RankS1}, tiers[4].Ranks)

	total := 0
	for _, tier := range tiers {
		total += tier.Required
	}
	assert.Equal(t, 5, total)
}

func TestOOCTTiers_MergedUpperRanks(t *testing.T) {
	tiers := OOCTTiers(4)
	require.Len(t, tiers, 2)

	assert.Equal(t, []Rank{RankS1, RankS2, RankS3, RankA1}, tiers[0].Ranks)
	assert.Equal(t, 4, tiers[0].Required)
	assert.Equal(t, []Rank{RankA2}, tiers[1].Ranks)
	assert.Equal(t, 0, tiers[1].Required)
}
