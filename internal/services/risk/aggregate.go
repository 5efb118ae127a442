package risk

import (
	"math"
	"sort"

	"neowatch/internal/domain"
)

// Assess scores every record and sorts descending by score. The sort is
// stable so equal scores keep their feed order, which makes output ordering
// deterministic. fallbackDate annotates records with no approach data.
func Assess(neos []domain.NeoRecord, fallbackDate string) []domain.RiskAssessment {
	out := make([]domain.RiskAssessment, 0, len(neos))
	for _, neo := range neos {
		a := Score(neo)
		a.ApproachDate = neo.ApproachDate(fallbackDate)
		a.NasaURL = neo.NasaJplURL
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})
	return out
}

// Summarize reduces a collection of assessments to per-level counts and
// score statistics. Both the highest and the average score are 0 for an
// empty collection.
func Summarize(assessments []domain.RiskAssessment) domain.RiskSummary {
	s := domain.RiskSummary{TotalObjects: len(assessments)}
	sum := 0
	for _, a := range assessments {
		switch a.RiskLevel {
		case domain.RiskCritical:
			s.CriticalRisk++
		case domain.RiskHigh:
			s.HighRisk++
		case domain.RiskModerate:
			s.ModerateRisk++
		case domain.RiskLow:
			s.LowRisk++
		case domain.RiskMinimal:
			s.MinimalRisk++
		}
		if a.RiskScore > s.HighestRiskScore {
			s.HighestRiskScore = a.RiskScore
		}
		sum += a.RiskScore
	}
	if len(assessments) > 0 {
		s.AverageRiskScore = math.Round(float64(sum)/float64(len(assessments))*10) / 10
	}
	return s
}
