package neo

import (
	"math"
	"time"

	"neowatch/internal/domain"
)

// normalizeDate validates a YYYY-MM-DD parameter, substituting fallback for
// an empty one. Validation happens before any cache or upstream access.
func normalizeDate(date, fallback string) (string, error) {
	if date == "" {
		return fallback, nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", domain.Validationf("date %q is not YYYY-MM-DD", date)
	}
	return date, nil
}

// normalizeRange validates a date range. Empty start defaults to fallback,
// empty end to start, matching the original API's behavior. The window is
// capped because the feed rejects ranges beyond a week.
func normalizeRange(start, end, fallback string) (string, string, error) {
	start, err := normalizeDate(start, fallback)
	if err != nil {
		return "", "", err
	}
	end, err = normalizeDate(end, start)
	if err != nil {
		return "", "", err
	}
	st, _ := time.Parse(dateLayout, start)
	en, _ := time.Parse(dateLayout, end)
	if en.Before(st) {
		return "", "", domain.Validationf("end_date %s before start_date %s", end, start)
	}
	if en.Sub(st) > time.Duration(maxRangeDays)*24*time.Hour {
		return "", "", domain.Validationf("date range exceeds %d days", maxRangeDays)
	}
	return start, end, nil
}

func normalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return defaultLimit, nil
	}
	if limit < 1 || limit > maxLimit {
		return 0, domain.Validationf("limit must be between 1 and %d", maxLimit)
	}
	return limit, nil
}

func (s *Service) normalizeDayQuery(date string, limit int) (string, int, error) {
	date, err := normalizeDate(date, s.today())
	if err != nil {
		return "", 0, err
	}
	limit, err = normalizeLimit(limit)
	if err != nil {
		return "", 0, err
	}
	return date, limit, nil
}

// missOrInf orders records with no approach data after every real distance.
func missOrInf(n domain.NeoRecord) float64 {
	km, ok := n.MissDistanceKm()
	if !ok {
		return math.Inf(1)
	}
	return km
}

func simplify(neos []domain.NeoRecord, fallbackDate string) []domain.SimpleNeo {
	out := make([]domain.SimpleNeo, 0, len(neos))
	for _, n := range neos {
		var miss *float64
		if km, ok := n.MissDistanceKm(); ok {
			miss = &km
		}
		out = append(out, domain.SimpleNeo{
			ID:             n.ID,
			Name:           n.Name,
			DiameterKm:     n.DiameterMaxKm(),
			MissDistanceKm: miss,
			VelocityKmh:    n.VelocityKmh(),
			IsHazardous:    n.IsHazardous,
			ApproachDate:   n.ApproachDate(fallbackDate),
			NasaURL:        n.NasaJplURL,
		})
	}
	return out
}

// summarizeDay computes the per-day extremes shared by the summary and
// timeline views. ClosestDistanceKm is nil when no record has approach data.
func summarizeDay(date string, neos []domain.NeoRecord) domain.DaySummary {
	ds := domain.DaySummary{Date: date, TotalCount: len(neos)}
	closest := math.Inf(1)
	for _, n := range neos {
		if n.IsHazardous {
			ds.HazardousCount++
		}
		if km, ok := n.MissDistanceKm(); ok && km < closest {
			closest = km
		}
		if d := n.DiameterMaxKm(); d > ds.LargestDiameterKm {
			ds.LargestDiameterKm = d
		}
		if v := n.VelocityKmh(); v > ds.FastestVelocity {
			ds.FastestVelocity = v
		}
	}
	if !math.IsInf(closest, 1) {
		ds.ClosestDistanceKm = &closest
	}
	return ds
}
