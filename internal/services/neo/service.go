// Package neo implements the dashboard's read-only views over the upstream
// feed: flattening, aggregation and per-endpoint caching. Scoring itself
// lives in services/risk; this package orchestrates it.
package neo

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"neowatch/internal/cache"
	"neowatch/internal/domain"
	"neowatch/internal/ports"
	"neowatch/internal/services/risk"
)

const (
	dateLayout        = "2006-01-02"
	defaultLimit      = 10
	maxLimit          = 100
	maxRangeDays      = 7  // NeoWs feed window cap
	maxTimelineDays   = 30 // one upstream call per day, keep it bounded
	defaultDayTimeout = 10 * time.Second
)

type Service struct {
	feed       ports.Feed
	cache      ports.Cache
	clock      clockwork.Clock
	dayTimeout time.Duration
}

// New wires the service. A nil clock means the real one; tests inject a fake
// to pin "today".
func New(feed ports.Feed, c ports.Cache, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{feed: feed, cache: c, clock: clock, dayTimeout: defaultDayTimeout}
}

func (s *Service) today() string {
	return s.clock.Now().UTC().Format(dateLayout)
}

// records returns the flattened, date-ordered record collection for a range,
// fetching from upstream at most once per range per TTL window.
func (s *Service) records(ctx context.Context, start, end string) ([]domain.NeoRecord, error) {
	key := cache.Key("feed", start, end)
	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		byDay, err := s.feed.Range(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return flatten(byDay), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.NeoRecord), nil
}

// flatten merges per-day collections in ascending date order so output
// ordering is deterministic regardless of map iteration.
func flatten(byDay map[string][]domain.NeoRecord) []domain.NeoRecord {
	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	var out []domain.NeoRecord
	for _, d := range dates {
		out = append(out, byDay[d]...)
	}
	if out == nil {
		out = []domain.NeoRecord{}
	}
	return out
}

// Today lists all objects approaching today.
func (s *Service) Today(ctx context.Context) (domain.FeedResult, error) {
	d := s.today()
	return s.Feed(ctx, d, d)
}

// Feed lists all objects for an inclusive date range.
func (s *Service) Feed(ctx context.Context, start, end string) (domain.FeedResult, error) {
	start, end, err := normalizeRange(start, end, s.today())
	if err != nil {
		return domain.FeedResult{}, err
	}
	neos, err := s.records(ctx, start, end)
	if err != nil {
		return domain.FeedResult{}, err
	}
	return domain.FeedResult{
		StartDate:    start,
		EndDate:      end,
		ElementCount: len(neos),
		Neos:         neos,
	}, nil
}

// Hazardous filters a range down to NASA-flagged objects.
func (s *Service) Hazardous(ctx context.Context, start, end string) (domain.HazardousResult, error) {
	start, end, err := normalizeRange(start, end, s.today())
	if err != nil {
		return domain.HazardousResult{}, err
	}
	key := cache.Key("hazardous", start, end)
	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		neos, err := s.records(ctx, start, end)
		if err != nil {
			return nil, err
		}
		hazardous := []domain.NeoRecord{}
		for _, n := range neos {
			if n.IsHazardous {
				hazardous = append(hazardous, n)
			}
		}
		return domain.HazardousResult{
			StartDate:      start,
			EndDate:        end,
			HazardousCount: len(hazardous),
			Neos:           hazardous,
		}, nil
	})
	if err != nil {
		return domain.HazardousResult{}, err
	}
	return v.(domain.HazardousResult), nil
}

// Stats passes through the feed's own aggregate statistics document.
func (s *Service) Stats(ctx context.Context) (json.RawMessage, error) {
	v, err := s.cache.GetOrCompute(ctx, cache.Key("stats"), func(ctx context.Context) (any, error) {
		return s.feed.Stats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

// ByID fetches a single record; unknown ids surface domain.ErrNotFound.
func (s *Service) ByID(ctx context.Context, id string) (domain.NeoRecord, error) {
	if id == "" {
		return domain.NeoRecord{}, domain.Validationf("missing neo id")
	}
	v, err := s.cache.GetOrCompute(ctx, cache.Key("neo", id), func(ctx context.Context) (any, error) {
		return s.feed.Lookup(ctx, id)
	})
	if err != nil {
		return domain.NeoRecord{}, err
	}
	return v.(domain.NeoRecord), nil
}

// Closest lists the date's objects by ascending first-approach miss
// distance. Records with no approach data sort last.
func (s *Service) Closest(ctx context.Context, date string, limit int) (domain.SimpleResult, error) {
	date, limit, err := s.normalizeDayQuery(date, limit)
	if err != nil {
		return domain.SimpleResult{}, err
	}
	key := cache.Key("closest", date, strconv.Itoa(limit))
	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		neos, err := s.records(ctx, date, date)
		if err != nil {
			return nil, err
		}
		sorted := make([]domain.NeoRecord, len(neos))
		copy(sorted, neos)
		sort.SliceStable(sorted, func(i, j int) bool {
			return missOrInf(sorted[i]) < missOrInf(sorted[j])
		})
		return domain.SimpleResult{
			Date:  date,
			Count: min(limit, len(sorted)),
			Neos:  simplify(sorted[:min(limit, len(sorted))], date),
		}, nil
	})
	if err != nil {
		return domain.SimpleResult{}, err
	}
	return v.(domain.SimpleResult), nil
}

// Largest lists the date's objects by descending max diameter.
func (s *Service) Largest(ctx context.Context, date string, limit int) (domain.SimpleResult, error) {
	date, limit, err := s.normalizeDayQuery(date, limit)
	if err != nil {
		return domain.SimpleResult{}, err
	}
	key := cache.Key("largest", date, strconv.Itoa(limit))
	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		neos, err := s.records(ctx, date, date)
		if err != nil {
			return nil, err
		}
		sorted := make([]domain.NeoRecord, len(neos))
		copy(sorted, neos)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DiameterMaxKm() > sorted[j].DiameterMaxKm()
		})
		return domain.SimpleResult{
			Date:  date,
			Count: min(limit, len(sorted)),
			Neos:  simplify(sorted[:min(limit, len(sorted))], date),
		}, nil
	})
	if err != nil {
		return domain.SimpleResult{}, err
	}
	return v.(domain.SimpleResult), nil
}

// Summary reports the date's key metrics for the dashboard header.
func (s *Service) Summary(ctx context.Context, date string) (domain.DaySummary, error) {
	date, err := normalizeDate(date, s.today())
	if err != nil {
		return domain.DaySummary{}, err
	}
	v, err := s.cache.GetOrCompute(ctx, cache.Key("summary", date), func(ctx context.Context) (any, error) {
		neos, err := s.records(ctx, date, date)
		if err != nil {
			return nil, err
		}
		return summarizeDay(date, neos), nil
	})
	if err != nil {
		return domain.DaySummary{}, err
	}
	return v.(domain.DaySummary), nil
}

// Simple is the trimmed per-day listing for tables and cards.
func (s *Service) Simple(ctx context.Context, date string) (domain.SimpleResult, error) {
	date, err := normalizeDate(date, s.today())
	if err != nil {
		return domain.SimpleResult{}, err
	}
	v, err := s.cache.GetOrCompute(ctx, cache.Key("simple", date), func(ctx context.Context) (any, error) {
		neos, err := s.records(ctx, date, date)
		if err != nil {
			return nil, err
		}
		return domain.SimpleResult{
			Date:  date,
			Count: len(neos),
			Neos:  simplify(neos, date),
		}, nil
	})
	if err != nil {
		return domain.SimpleResult{}, err
	}
	return v.(domain.SimpleResult), nil
}

// RiskAssessment scores every object approaching on the date, sorted by
// descending risk.
func (s *Service) RiskAssessment(ctx context.Context, date string) (domain.RiskAssessmentResult, error) {
	date, err := normalizeDate(date, s.today())
	if err != nil {
		return domain.RiskAssessmentResult{}, err
	}
	key := cache.Key("risk-assessment", date)
	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		neos, err := s.records(ctx, date, date)
		if err != nil {
			return nil, err
		}
		assessments := risk.Assess(neos, date)
		return domain.RiskAssessmentResult{
			Date:            date,
			RiskSummary:     risk.Summarize(assessments),
			RiskAssessments: assessments,
		}, nil
	})
	if err != nil {
		return domain.RiskAssessmentResult{}, err
	}
	return v.(domain.RiskAssessmentResult), nil
}

// HighestRisk returns the top-limit assessments over a range.
func (s *Service) HighestRisk(ctx context.Context, start, end string, limit int) (domain.HighestRiskResult, error) {
	start, end, err := normalizeRange(start, end, s.today())
	if err != nil {
		return domain.HighestRiskResult{}, err
	}
	limit, err = normalizeLimit(limit)
	if err != nil {
		return domain.HighestRiskResult{}, err
	}
	key := cache.Key("highest-risk", start, end, strconv.Itoa(limit))
	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		neos, err := s.records(ctx, start, end)
		if err != nil {
			return nil, err
		}
		assessments := risk.Assess(neos, start)
		if len(assessments) > limit {
			assessments = assessments[:limit]
		}
		return domain.HighestRiskResult{
			StartDate:       start,
			EndDate:         end,
			Limit:           limit,
			HighestRiskNeos: assessments,
		}, nil
	})
	if err != nil {
		return domain.HighestRiskResult{}, err
	}
	return v.(domain.HighestRiskResult), nil
}

// Timeline builds per-day counts and extremes for the last days days,
// ending today. Each day is fetched under its own timeout; a failed day is
// logged and omitted rather than failing the whole view.
func (s *Service) Timeline(ctx context.Context, days int) (domain.TimelineResult, error) {
	if days == 0 {
		days = 7
	}
	if days < 1 || days > maxTimelineDays {
		return domain.TimelineResult{}, domain.Validationf("days must be between 1 and %d", maxTimelineDays)
	}
	key := cache.Key("timeline", strconv.Itoa(days), s.today())
	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		end := s.clock.Now().UTC()
		points := []domain.TimelinePoint{}
		for i := days - 1; i >= 0; i-- {
			date := end.AddDate(0, 0, -i).Format(dateLayout)
			dayCtx, cancel := context.WithTimeout(ctx, s.dayTimeout)
			neos, err := s.records(dayCtx, date, date)
			cancel()
			if err != nil {
				slog.Warn("timeline day skipped", "date", date, "error", err)
				continue
			}
			ds := summarizeDay(date, neos)
			points = append(points, domain.TimelinePoint{
				Date:            date,
				TotalCount:      ds.TotalCount,
				HazardousCount:  ds.HazardousCount,
				ClosestDistance: ds.ClosestDistanceKm,
				LargestDiameter: ds.LargestDiameterKm,
			})
		}
		return domain.TimelineResult{Days: days, TimelineData: points}, nil
	})
	if err != nil {
		return domain.TimelineResult{}, err
	}
	return v.(domain.TimelineResult), nil
}

// SizeDistribution bins the date's objects into the four dashboard size
// categories.
func (s *Service) SizeDistribution(ctx context.Context, date string) (domain.SizeDistributionResult, error) {
	date, err := normalizeDate(date, s.today())
	if err != nil {
		return domain.SizeDistributionResult{}, err
	}
	key := cache.Key("size-distribution", date)
	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		neos, err := s.records(ctx, date, date)
		if err != nil {
			return nil, err
		}
		buckets := []domain.SizeBucket{
			{Category: "Small (<0.1 km)"},
			{Category: "Medium (0.1-1 km)"},
			{Category: "Large (1-10 km)"},
			{Category: "Very Large (>10 km)"},
		}
		for _, n := range neos {
			d := n.DiameterMaxKm()
			switch {
			case d < 0.1:
				buckets[0].Count++
			case d < 1:
				buckets[1].Count++
			case d < 10:
				buckets[2].Count++
			default:
				buckets[3].Count++
			}
		}
		return domain.SizeDistributionResult{Date: date, SizeDistribution: buckets}, nil
	})
	if err != nil {
		return domain.SizeDistributionResult{}, err
	}
	return v.(domain.SizeDistributionResult), nil
}

// DistanceSize produces the scatter-plot tuples for the date.
func (s *Service) DistanceSize(ctx context.Context, date string) (domain.ScatterResult, error) {
	date, err := normalizeDate(date, s.today())
	if err != nil {
		return domain.ScatterResult{}, err
	}
	key := cache.Key("distance-size", date)
	v, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		neos, err := s.records(ctx, date, date)
		if err != nil {
			return nil, err
		}
		points := []domain.ScatterPoint{}
		for _, n := range neos {
			km, ok := n.MissDistanceKm()
			if !ok {
				// No approach data means no X coordinate to plot.
				continue
			}
			points = append(points, domain.ScatterPoint{
				X:           km,
				Y:           n.DiameterMaxKm(),
				Name:        n.Name,
				IsHazardous: n.IsHazardous,
				VelocityKmh: n.VelocityKmh(),
			})
		}
		return domain.ScatterResult{Date: date, ScatterData: points}, nil
	})
	if err != nil {
		return domain.ScatterResult{}, err
	}
	return v.(domain.ScatterResult), nil
}
