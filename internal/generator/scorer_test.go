package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleWeek() []ClassSession {
	return []ClassSession{
		session("MON", "0900", "1000"),
		session("MON", "1300", "1500"),
		{Type: "TUT", Day: "TUE", StartTime: "0800", EndTime: "0930", Venue: "TR+5"},
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sampleWeek())

	assert.Equal(t, Stats{
		TotalDays:          2,
		TotalHours:         4.5,
		AverageGapDuration: 180,
		EarliestStart:      "0800",
		LatestEnd:          "1500",
	}, stats)
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, Stats{EarliestStart: "0000", LatestEnd: "0000"}, ComputeStats(nil))
}

func TestComputeStatsIgnoresOverlapAsGap(t *testing.T) {
	stats := ComputeStats([]ClassSession{
		session("FRI", "0900", "1100"),
		session("FRI", "1100", "1200"),
		session("FRI", "1230", "1330"),
	})
	assert.Equal(t, 30, stats.AverageGapDuration)
	assert.Equal(t, 4.0, stats.TotalHours)
}

func TestScoreBaseline(t *testing.T) {
	assert.Equal(t, 100.0, Score(sampleWeek(), DefaultFilters()))
}

func TestScoreTerms(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Filters)
		want   float64
	}{
		{"day duration", func(f *Filters) { f.DayDuration = Range{Min: 0, Max: 2, Enabled: true} }, 80},
		{"gaps", func(f *Filters) { f.GapsBetweenClasses = Range{Min: 0, Max: 1, Enabled: true} }, 90},
		{"daily load balanced", func(f *Filters) { f.DailyLoad = DailyLoad{Preference: DailyLoadBalanced, Enabled: true} }, 110},
		{"daily load skewed", func(f *Filters) { f.DailyLoad = DailyLoad{Preference: DailyLoadSkewed, Enabled: true} }, 90},
		{"minimize days", func(f *Filters) { f.GenerationGoals.MinimizeDays = true }, 200},
		{"balance workload", func(f *Filters) { f.GenerationGoals.BalanceWorkload = true }, 127.5},
		{"consecutive days", func(f *Filters) { f.GenerationGoals.ConsecutiveDays = true }, 150},
		{"consecutive classes is inert", func(f *Filters) { f.ConsecutiveClasses = Range{Min: 5, Max: 6, Enabled: true} }, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filters := DefaultFilters()
			tc.mutate(&filters)
			assert.InDelta(t, tc.want, Score(sampleWeek(), filters), 1e-9)
		})
	}
}

func TestScoreOnlyUsesConsideredClasses(t *testing.T) {
	filters := DefaultFilters()
	filters.ClassesToConsider.Tutorial = false
	filters.GenerationGoals.MinimizeDays = true

	// the Tuesday tutorial is ignored, leaving one day
	assert.Equal(t, 220.0, Score(sampleWeek(), filters))
}

func TestScoreConsecutiveDaysPenalty(t *testing.T) {
	filters := DefaultFilters()
	filters.GenerationGoals.ConsecutiveDays = true
	filters.GenerationGoals.MinimizeDays = true

	split := []ClassSession{session("MON", "0900", "1000"), session("WED", "0900", "1000")}
	score := Score(split, filters)

	assert.LessOrEqual(t, score, 100.0+5*20-ConsecutiveDaysPenalty)
	assert.Equal(t, 100.0+100-10000, score)

	wrap := []ClassSession{session("SAT", "0900", "1000"), session("SUN", "0900", "1000"), session("FRI", "0900", "1000")}
	assert.Equal(t, 100.0+80+50, Score(wrap, filters))

	single := []ClassSession{session("THU", "0900", "1000")}
	assert.Equal(t, 100.0+120+50, Score(single, filters))
}

func TestScoreAndSortOrdersDescending(t *testing.T) {
	filters := DefaultFilters()
	filters.GenerationGoals.MinimizeDays = true

	candidates := []Candidate{
		{Picks: []Pick{{ModuleCode: "A", IndexNumber: "spread"}}, Classes: []ClassSession{session("MON", "0900", "1000"), session("TUE", "0900", "1000")}},
		{Picks: []Pick{{ModuleCode: "A", IndexNumber: "packed"}}, Classes: []ClassSession{session("MON", "0900", "1000"), session("MON", "1000", "1100")}},
		{Picks: []Pick{{ModuleCode: "A", IndexNumber: "packed-too"}}, Classes: []ClassSession{session("FRI", "0900", "1000")}},
	}

	got := ScoreAndSort(candidates, filters)

	assert.Equal(t, "packed", got[0].Picks[0].IndexNumber)
	assert.Equal(t, "packed-too", got[1].Picks[0].IndexNumber)
	assert.Equal(t, "spread", got[2].Picks[0].IndexNumber)
	assert.NotEmpty(t, got[0].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Equal(t, 1, got[0].Stats.TotalDays)
}
