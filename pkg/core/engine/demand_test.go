package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPolicy() Policy {
	return Policy{
		ContinuousDutyLimit: 5,
		DcoBorder:           10,
		DcoMax:              10,
		BcoBorder:           6,
		ParticipationRatio:  0.5,
	}
}

func TestDCODemand_TracksSampleCount(t *testing.T) {
	d := DCODemand(6, 4, testPolicy())
	assert.Equal(t, 10, d.Required)
	assert.Equal(t, 6, d.RequiredMale)
	assert.Equal(t, 4, d.RequiredFemale)
}

func TestDCODemand_CapsBeyondBorder(t *testing.T) {
	d := DCODemand(12, 8, testPolicy())
	assert.Equal(t, 10, d.Required)
	assert.Equal(t, 6, d.RequiredMale)
	assert.Equal(t, 4, d.RequiredFemale)
}

func TestDCODemand_ZeroSamples(t *testing.T) {
	d := DCODemand(0, 0, testPolicy())
	assert.Equal(t, Demand{}, d)
}

func TestDCODemand_GenderSplitRoundsUpMale(t *testing.T) {
	d := DCODemand(1, 2, testPolicy())
	assert.Equal(t, 3, d.Required)
	assert.Equal(t, 1, d.RequiredMale)
	assert.Equal(t, 2, d.RequiredFemale)
}

func TestBCODemand(t *testing.T) {
	p := testPolicy()
	assert.Equal(t, 0, BCODemand(0, InCompetition, p))
	assert.Equal(t, 1, BCODemand(4, InCompetition, p))
	assert.Equal(t, 2, BCODemand(7, InCompetition, p))
	// Pre-OOCT mobile units travel in pairs
	assert.Equal(t, 2, BCODemand(1, PreOutOfCompetition, p))
}

func TestBCOAdminDemand(t *testing.T) {
	assert.Equal(t, 1, BCOAdminDemand(3, false))
	assert.Equal(t, 0, BCOAdminDemand(3, true))
	assert.Equal(t, 0, BCOAdminDemand(0, false))
}

func TestRequiredDays_RoundsUp(t *testing.T) {
	assert.Equal(t, 3, RequiredDays(5, 0.5))
	assert.Equal(t, 5, RequiredDays(5, 1.0))
	assert.Equal(t, 0, RequiredDays(0, 0.5))
}
