package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForScoreBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskMinimal},
		{19, RiskMinimal},
		{20, RiskLow},
		{39, RiskLow},
		{40, RiskModerate},
		{59, RiskModerate},
		{60, RiskHigh},
		{79, RiskHigh},
		{80, RiskCritical},
		{100, RiskCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LevelForScore(tc.score), "score %d", tc.score)
	}
}

func TestLevelTableComplete(t *testing.T) {
	for _, level := range []RiskLevel{RiskCritical, RiskHigh, RiskModerate, RiskLow, RiskMinimal} {
		info, ok := Levels[level]
		assert.True(t, ok, "level %s missing from table", level)
		assert.NotEmpty(t, info.Color)
		assert.NotEmpty(t, info.Description)
	}
}

func TestMissDistanceKmDefaults(t *testing.T) {
	var n NeoRecord
	_, ok := n.MissDistanceKm()
	assert.False(t, ok, "empty approach data has no miss distance")

	n.CloseApproachData = []CloseApproach{{MissDistance: MissDistance{Kilometers: "not-a-number"}}}
	_, ok = n.MissDistanceKm()
	assert.False(t, ok, "unparseable miss distance treated as absent")

	n.CloseApproachData = []CloseApproach{{MissDistance: MissDistance{Kilometers: "384400.5"}}}
	km, ok := n.MissDistanceKm()
	assert.True(t, ok)
	assert.Equal(t, 384400.5, km)
}

func TestVelocityKmhDefaults(t *testing.T) {
	var n NeoRecord
	assert.Zero(t, n.VelocityKmh())

	n.CloseApproachData = []CloseApproach{{RelativeVelocity: RelativeVelocity{KilometersPerHour: "54321.9"}}}
	assert.Equal(t, 54321.9, n.VelocityKmh())
}

func TestApproachCountDefaultsToOne(t *testing.T) {
	var n NeoRecord
	assert.Equal(t, 1, n.ApproachCount())

	n.CloseApproachData = make([]CloseApproach, 4)
	assert.Equal(t, 4, n.ApproachCount())
}

func TestApproachDateFallback(t *testing.T) {
	var n NeoRecord
	assert.Equal(t, "2025-06-15", n.ApproachDate("2025-06-15"))

	n.CloseApproachData = []CloseApproach{{Date: "2025-06-20"}}
	assert.Equal(t, "2025-06-20", n.ApproachDate("2025-06-15"))
}
