package domain

// RiskLevel is one of five ordered bands derived from the total risk score.
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskModerate RiskLevel = "MODERATE"
	RiskLow      RiskLevel = "LOW"
	RiskMinimal  RiskLevel = "MINIMAL"
)

// LevelInfo carries the display attributes tied 1:1 to a level.
type LevelInfo struct {
	Color       string
	Description string
}

// Levels is the static banding table, highest threshold first.
var Levels = map[RiskLevel]LevelInfo{
	RiskCritical: {Color: "red", Description: "Extremely dangerous - requires immediate attention"},
	RiskHigh:     {Color: "orange", Description: "High threat potential - monitor closely"},
	RiskModerate: {Color: "yellow", Description: "Moderate risk - worth tracking"},
	RiskLow:      {Color: "blue", Description: "Low risk - routine monitoring"},
	RiskMinimal:  {Color: "green", Description: "Minimal threat - no concern"},
}

// LevelForScore maps a total score onto its band; first match wins.
func LevelForScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskModerate
	case score >= 20:
		return RiskLow
	default:
		return RiskMinimal
	}
}

// RiskAssessment is the derived, immutable scoring result for one record.
// MissDistanceLunar is nil when the record has no approach data: the distance
// is effectively infinite and JSON has no representation for that.
type RiskAssessment struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	RiskScore         int       `json:"risk_score"`
	RiskLevel         RiskLevel `json:"risk_level"`
	RiskColor         string    `json:"risk_color"`
	RiskDescription   string    `json:"risk_description"`
	RiskFactors       []string  `json:"risk_factors"`
	SizeKm            float64   `json:"size_km"`
	MissDistanceLunar *float64  `json:"miss_distance_lunar"`
	VelocityKmh       float64   `json:"velocity_kmh"`
	IsNasaHazardous   bool      `json:"is_nasa_hazardous"`
	ApproachDate      string    `json:"approach_date,omitempty"`
	NasaURL           string    `json:"nasa_url,omitempty"`
}

// RiskSummary aggregates a collection of assessments. HighestRiskScore and
// AverageRiskScore are both 0 for an empty collection.
type RiskSummary struct {
	TotalObjects     int     `json:"total_objects"`
	CriticalRisk     int     `json:"critical_risk"`
	HighRisk         int     `json:"high_risk"`
	ModerateRisk     int     `json:"moderate_risk"`
	LowRisk          int     `json:"low_risk"`
	MinimalRisk      int     `json:"minimal_risk"`
	HighestRiskScore int     `json:"highest_risk_score"`
	AverageRiskScore float64 `json:"average_risk_score"`
}
