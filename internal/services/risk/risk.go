// Package risk scores a single NEO record on a 0-100 scale from five
// additive factors. Scoring is pure: same record in, same assessment out.
package risk

import (
	"fmt"
	"math"

	"neowatch/internal/domain"
)

// Factor caps. The bands below are constructed so the total never leaves
// 0-100; no clamping is applied.
const (
	maxSizePoints      = 40
	maxDistancePoints  = 25
	maxVelocityPoints  = 20
	hazardPoints       = 10
	maxFrequencyPoints = 5
)

// Score assesses one record. Factors are evaluated in a fixed order; the
// risk_factors list preserves that order for display.
func Score(neo domain.NeoRecord) domain.RiskAssessment {
	var total int
	var factors []string

	diameter := neo.DiameterMaxKm()
	sizePts := sizePoints(diameter)
	total += sizePts
	factors = append(factors, fmt.Sprintf("Size: %.3f km (+%d)", diameter, sizePts))

	missKm, hasApproach := neo.MissDistanceKm()
	if !hasApproach {
		missKm = math.Inf(1)
	}
	distPts := distancePoints(missKm)
	total += distPts
	if hasApproach {
		factors = append(factors, fmt.Sprintf("Miss distance: %.2f LD (+%d)", missKm/domain.LunarDistanceKm, distPts))
	} else {
		factors = append(factors, fmt.Sprintf("Miss distance: no approach data (+%d)", distPts))
	}

	velocity := neo.VelocityKmh()
	velPts := velocityPoints(velocity)
	total += velPts
	factors = append(factors, fmt.Sprintf("Velocity: %.0f km/h (+%d)", velocity, velPts))

	if neo.IsHazardous {
		total += hazardPoints
		factors = append(factors, fmt.Sprintf("NASA hazardous classification (+%d)", hazardPoints))
	}

	freqPts := frequencyPoints(neo.ApproachCount())
	if freqPts > 0 {
		total += freqPts
		factors = append(factors, fmt.Sprintf("Frequent approacher: %d approaches (+%d)", neo.ApproachCount(), freqPts))
	}

	level := domain.LevelForScore(total)
	info := domain.Levels[level]

	var lunar *float64
	if hasApproach {
		ld := math.Round(missKm/domain.LunarDistanceKm*100) / 100
		lunar = &ld
	}

	return domain.RiskAssessment{
		ID:                neo.ID,
		Name:              neo.Name,
		RiskScore:         total,
		RiskLevel:         level,
		RiskColor:         info.Color,
		RiskDescription:   info.Description,
		RiskFactors:       factors,
		SizeKm:            diameter,
		MissDistanceLunar: lunar,
		VelocityKmh:       velocity,
		IsNasaHazardous:   neo.IsHazardous,
	}
}

func sizePoints(diameterKm float64) int {
	switch {
	case diameterKm > 10:
		return maxSizePoints
	case diameterKm > 1:
		return 30
	case diameterKm > 0.5:
		return 20
	case diameterKm > 0.1:
		return 15
	case diameterKm > 0.05:
		return 8
	default:
		return 2
	}
}

func distancePoints(missKm float64) int {
	ld := missKm / domain.LunarDistanceKm
	switch {
	case ld < 0.1:
		return maxDistancePoints
	case ld < 0.25:
		return 20
	case ld < 0.5:
		return 15
	case ld < 1:
		return 10
	case ld < 2:
		return 5
	default:
		return 1
	}
}

func velocityPoints(kmh float64) int {
	switch {
	case kmh > 100000:
		return maxVelocityPoints
	case kmh > 75000:
		return 15
	case kmh > 50000:
		return 10
	case kmh > 25000:
		return 6
	default:
		return 2
	}
}

func frequencyPoints(approaches int) int {
	switch {
	case approaches > 3:
		return maxFrequencyPoints
	case approaches > 1:
		return 2
	default:
		return 0
	}
}
