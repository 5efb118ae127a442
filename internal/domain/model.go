package domain

// Core domain models. The Neo* types mirror the NeoWs JSON wire format; the
// feed delivers its numeric sub-fields as strings, so accessors on NeoRecord
// do the parsing and defaulting in one place rather than at every call site.

import "strconv"

// LunarDistanceKm is the Earth-Moon reference distance used for
// miss-distance banding.
const LunarDistanceKm = 384400.0

type NeoRecord struct {
	ID                 string            `json:"id"`
	NeoReferenceID     string            `json:"neo_reference_id"`
	Name               string            `json:"name"`
	NasaJplURL         string            `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH float64           `json:"absolute_magnitude_h"`
	EstimatedDiameter  EstimatedDiameter `json:"estimated_diameter"`
	IsHazardous        bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData  []CloseApproach   `json:"close_approach_data"`
}

type EstimatedDiameter struct {
	Kilometers DiameterRange `json:"kilometers"`
}

type DiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

type CloseApproach struct {
	Date             string           `json:"close_approach_date"`
	DateFull         string           `json:"close_approach_date_full,omitempty"`
	RelativeVelocity RelativeVelocity `json:"relative_velocity"`
	MissDistance     MissDistance     `json:"miss_distance"`
	OrbitingBody     string           `json:"orbiting_body"`
}

type RelativeVelocity struct {
	KilometersPerHour string `json:"kilometers_per_hour"`
}

type MissDistance struct {
	Kilometers string `json:"kilometers"`
	Lunar      string `json:"lunar"`
}

// DiameterMaxKm returns the upper diameter estimate, 0 if absent.
func (n NeoRecord) DiameterMaxKm() float64 {
	return n.EstimatedDiameter.Kilometers.Max
}

// firstApproach guards the "first element" access on close_approach_data,
// which may legitimately be empty.
func (n NeoRecord) firstApproach() (CloseApproach, bool) {
	if len(n.CloseApproachData) == 0 {
		return CloseApproach{}, false
	}
	return n.CloseApproachData[0], true
}

// MissDistanceKm returns the first close approach's miss distance in km.
// The second return is false when the record has no usable approach data;
// callers treat that as infinitely far away.
func (n NeoRecord) MissDistanceKm() (float64, bool) {
	ca, ok := n.firstApproach()
	if !ok {
		return 0, false
	}
	km, err := strconv.ParseFloat(ca.MissDistance.Kilometers, 64)
	if err != nil {
		return 0, false
	}
	return km, true
}

// VelocityKmh returns the first close approach's relative velocity in km/h,
// 0 if absent.
func (n NeoRecord) VelocityKmh() float64 {
	ca, ok := n.firstApproach()
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(ca.RelativeVelocity.KilometersPerHour, 64)
	if err != nil {
		return 0
	}
	return v
}

// ApproachDate returns the first close approach date, or fallback when the
// record carries no approach data.
func (n NeoRecord) ApproachDate(fallback string) string {
	ca, ok := n.firstApproach()
	if !ok || ca.Date == "" {
		return fallback
	}
	return ca.Date
}

// ApproachCount defaults to 1: a record surfaced by the daily feed approached
// at least once even if the sequence was stripped.
func (n NeoRecord) ApproachCount() int {
	if len(n.CloseApproachData) == 0 {
		return 1
	}
	return len(n.CloseApproachData)
}
