package domain

// JSON-serializable payloads for the read-only dashboard views. Field names
// are part of the API contract consumed by the frontend charts.

type FeedResult struct {
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	ElementCount int         `json:"element_count"`
	Neos         []NeoRecord `json:"neos"`
}

type HazardousResult struct {
	StartDate      string      `json:"start_date"`
	EndDate        string      `json:"end_date"`
	HazardousCount int         `json:"hazardous_count"`
	Neos           []NeoRecord `json:"neos"`
}

type DaySummary struct {
	Date              string   `json:"date"`
	TotalCount        int      `json:"total_count"`
	HazardousCount    int      `json:"hazardous_count"`
	ClosestDistanceKm *float64 `json:"closest_distance_km"`
	LargestDiameterKm float64  `json:"largest_diameter_km"`
	FastestVelocity   float64  `json:"fastest_velocity_kmh"`
}

// SimpleNeo is the trimmed listing used by tables and cards.
type SimpleNeo struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	DiameterKm     float64  `json:"diameter_km"`
	MissDistanceKm *float64 `json:"miss_distance_km"`
	VelocityKmh    float64  `json:"velocity_kmh"`
	IsHazardous    bool     `json:"is_hazardous"`
	ApproachDate   string   `json:"approach_date"`
	NasaURL        string   `json:"nasa_url"`
}

type SimpleResult struct {
	Date  string      `json:"date"`
	Count int         `json:"count"`
	Neos  []SimpleNeo `json:"neos"`
}

type SizeBucket struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type SizeDistributionResult struct {
	Date             string       `json:"date"`
	SizeDistribution []SizeBucket `json:"size_distribution"`
}

// ScatterPoint feeds the distance-vs-size chart: X is the miss distance in
// km, Y the max diameter in km.
type ScatterPoint struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Name        string  `json:"name"`
	IsHazardous bool    `json:"is_hazardous"`
	VelocityKmh float64 `json:"velocity_kmh"`
}

type ScatterResult struct {
	Date        string         `json:"date"`
	ScatterData []ScatterPoint `json:"scatter_data"`
}

type TimelinePoint struct {
	Date            string   `json:"date"`
	TotalCount      int      `json:"total_count"`
	HazardousCount  int      `json:"hazardous_count"`
	ClosestDistance *float64 `json:"closest_distance"`
	LargestDiameter float64  `json:"largest_diameter"`
}

type TimelineResult struct {
	Days         int             `json:"days"`
	TimelineData []TimelinePoint `json:"timeline_data"`
}

type RiskAssessmentResult struct {
	Date            string           `json:"date"`
	RiskSummary     RiskSummary      `json:"risk_summary"`
	RiskAssessments []RiskAssessment `json:"risk_assessments"`
}

type HighestRiskResult struct {
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
	Limit           int              `json:"limit"`
	HighestRiskNeos []RiskAssessment `json:"highest_risk_neos"`
}
