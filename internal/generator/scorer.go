package generator

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	baseScore                  = 100.0
	dayDurationPenalty         = 20.0
	gapPenalty                 = 10.0
	dailyLoadWeight            = 5.0
	minimizeDaysWeight         = 20.0
	balanceWorkloadCeiling     = 30.0
	balanceWorkloadVarianceMul = 10.0
	consecutiveDaysBonus       = 50.0
	// ConsecutiveDaysPenalty pushes non-contiguous weeks to the bottom of the
	// ranking without removing them.
	ConsecutiveDaysPenalty = 10000.0
)

type timedSession struct {
	start int
	end   int
}

// dayGroups buckets timed sessions by weekday code, each bucket sorted by start.
// Sessions with unparseable times still mark their day as used.
func dayGroups(classes []ClassSession) map[string][]timedSession {
	groups := make(map[string][]timedSession)
	for _, cls := range classes {
		day := strings.ToUpper(strings.TrimSpace(cls.Day))
		start, startOK := ParseMinutes(cls.StartTime)
		end, endOK := ParseMinutes(cls.EndTime)
		if _, ok := groups[day]; !ok {
			groups[day] = []timedSession{}
		}
		if startOK && endOK {
			groups[day] = append(groups[day], timedSession{start: start, end: end})
		}
	}
	for day := range groups {
		sessions := groups[day]
		sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].start < sessions[j].start })
	}
	return groups
}

// ComputeStats derives the display summary of a schedule.
func ComputeStats(classes []ClassSession) Stats {
	groups := dayGroups(classes)
	stats := Stats{TotalDays: len(groups), EarliestStart: "0000", LatestEnd: "0000"}

	var totalMinutes, gapMinutes, gapCount int
	earliest, latest := math.MaxInt, math.MinInt
	for _, sessions := range groups {
		for i, s := range sessions {
			totalMinutes += s.end - s.start
			earliest = min(earliest, s.start)
			latest = max(latest, s.end)
			if i == 0 {
				continue
			}
			if prev := sessions[i-1]; s.start > prev.end {
				gapMinutes += s.start - prev.end
				gapCount++
			}
		}
	}

	stats.TotalHours = math.Round(float64(totalMinutes)/60*10) / 10
	if gapCount > 0 {
		stats.AverageGapDuration = int(math.Round(float64(gapMinutes) / float64(gapCount)))
	}
	if earliest != math.MaxInt {
		stats.EarliestStart = FormatMinutes(earliest)
		stats.LatestEnd = FormatMinutes(latest)
	}
	return stats
}

// Score rates a schedule against the profile. Only sessions whose class type
// is enabled in ClassesToConsider contribute.
func Score(classes []ClassSession, filters Filters) float64 {
	groups := dayGroups(filters.ClassesToConsider.filter(classes))
	daysUsed := len(groups)
	score := baseScore

	if filters.DayDuration.Enabled {
		for _, sessions := range groups {
			if len(sessions) == 0 {
				continue
			}
			span := float64(sessions[len(sessions)-1].end-sessions[0].start) / 60
			if !filters.DayDuration.contains(span) {
				score -= dayDurationPenalty
			}
		}
	}

	if filters.GapsBetweenClasses.Enabled {
		for _, sessions := range groups {
			for i := 1; i < len(sessions); i++ {
				gap := float64(sessions[i].start-sessions[i-1].end) / 60
				if !filters.GapsBetweenClasses.contains(gap) {
					score -= gapPenalty
				}
			}
		}
	}

	if filters.DailyLoad.Enabled {
		if filters.DailyLoad.Preference == DailyLoadBalanced {
			score += float64(daysUsed) * dailyLoadWeight
		} else {
			score -= float64(daysUsed) * dailyLoadWeight
		}
	}

	goals := filters.GenerationGoals
	if goals.MinimizeDays {
		score += float64(7-daysUsed) * minimizeDaysWeight
	}

	if goals.BalanceWorkload && daysUsed > 0 {
		counts := make([]float64, 0, daysUsed)
		for _, sessions := range groups {
			counts = append(counts, float64(len(sessions)))
		}
		score += math.Max(0, balanceWorkloadCeiling-variance(counts)*balanceWorkloadVarianceMul)
	}

	if goals.ConsecutiveDays {
		if daysUsed <= 1 || contiguousDays(lo.Keys(groups)) {
			score += consecutiveDaysBonus
		} else {
			score -= ConsecutiveDaysPenalty
		}
	}

	return score
}

func (r Range) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := lo.Sum(values) / float64(len(values))
	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return sum / float64(len(values))
}

// contiguousDays reports whether the days form an unbroken Mon..Sun run.
// An unrecognised day code breaks the run.
func contiguousDays(days []string) bool {
	indices := lo.Map(days, func(day string, _ int) int { return WeekdayIndex(day) })
	if lo.Contains(indices, -1) {
		return false
	}
	sort.Ints(indices)
	for i := 1; i < len(indices); i++ {
		if indices[i] != indices[i-1]+1 {
			return false
		}
	}
	return true
}

// Enrich turns a candidate into a scored combination with stats and a fresh id.
func Enrich(candidate Candidate, filters Filters) Combination {
	return Combination{
		ID:      uuid.NewString(),
		Picks:   candidate.Picks,
		Classes: candidate.Classes,
		Stats:   ComputeStats(candidate.Classes),
		Score:   Score(candidate.Classes, filters),
	}
}

// ScoreAndSort enriches every candidate and orders them by descending score.
// Ties keep their input order. The caller applies the result cap.
func ScoreAndSort(candidates []Candidate, filters Filters) []Combination {
	combinations := lo.Map(candidates, func(c Candidate, _ int) Combination {
		return Enrich(c, filters)
	})
	Rank(combinations)
	return combinations
}

// Rank sorts combinations by descending score, keeping ties stable.
func Rank(combinations []Combination) {
	sort.SliceStable(combinations, func(i, j int) bool {
		return combinations[i].Score > combinations[j].Score
	})
}
