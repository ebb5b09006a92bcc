package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC) }

func scenarioModules(cs1231Day string) []Module {
	return []Module{
		{Code: "CS1010", Indexes: []Index{
			index("10101", session("MON", "0900", "1100")),
			index("10102", session("MON", "0900", "1100")),
		}},
		{Code: "CS1231", Indexes: []Index{
			index("20201", session(cs1231Day, "1000", "1200")),
		}},
	}
}

func TestGenerateAllBranchesConflict(t *testing.T) {
	result := Generate(context.Background(), scenarioModules("MON"), DefaultFilters(), Options{Now: fixedNow})

	assert.Equal(t, 0, result.TotalCombinations)
	assert.Equal(t, 0, result.ReturnedCount)
	assert.False(t, result.HasMore)
	assert.NotNil(t, result.Combinations)
	assert.Empty(t, result.Combinations)
}

func TestGenerateOnePerIndex(t *testing.T) {
	result := Generate(context.Background(), scenarioModules("TUE"), DefaultFilters(), Options{Now: fixedNow})

	require.Equal(t, 2, result.TotalCombinations)
	require.Equal(t, 2, result.ReturnedCount)
	assert.False(t, result.HasMore)
	assert.Equal(t, fixedNow(), result.GeneratedAt)
	for _, c := range result.Combinations {
		assert.Equal(t, 2, c.Stats.TotalDays)
		assert.Equal(t, 4.0, c.Stats.TotalHours)
		assert.Equal(t, "0900", c.Stats.EarliestStart)
		assert.Equal(t, "1200", c.Stats.LatestEnd)
		assert.Len(t, c.Picks, 2)
	}
	assert.Equal(t, "10101", result.Combinations[0].Picks[0].IndexNumber)
	assert.Equal(t, "10102", result.Combinations[1].Picks[0].IndexNumber)
}

func TestGenerateBackToBack(t *testing.T) {
	modules := []Module{
		{Code: "A", Indexes: []Index{index("1", session("MON", "0900", "1100"))}},
		{Code: "B", Indexes: []Index{index("2", session("MON", "1100", "1200"))}},
	}
	result := Generate(context.Background(), modules, DefaultFilters(), Options{})
	assert.Equal(t, 1, result.TotalCombinations)
}

func TestGenerateEmptyInput(t *testing.T) {
	result := Generate(context.Background(), nil, DefaultFilters(), Options{Now: fixedNow})
	assert.Equal(t, Result{Combinations: []Combination{}, GeneratedAt: fixedNow()}, result)
}

func TestGenerateModuleFilteredAway(t *testing.T) {
	filters := DefaultFilters()
	filters.DaysOfWeek.Tuesday = false
	require.Len(t, FilterModules(scenarioModules("TUE"), filters), 1, "CS1010 survives on its own")

	result := Generate(context.Background(), scenarioModules("TUE"), filters, Options{Now: fixedNow})

	assert.Equal(t, 0, result.TotalCombinations)
	assert.Empty(t, result.Combinations)
}

func TestGenerateNormalizesWindow(t *testing.T) {
	filters := DefaultFilters()
	filters.DayStartEnd = DayStartEnd{StartAfter: "9:30", StartEnabled: true}

	result := Generate(context.Background(), scenarioModules("TUE"), filters, Options{})

	// both CS1010 indexes start at 0900
	assert.Equal(t, 0, result.TotalCombinations)
}

func TestGenerateCap(t *testing.T) {
	modules := wideModules(3, 5) // 125 legal combinations

	result := Generate(context.Background(), modules, DefaultFilters(), Options{})

	assert.Equal(t, 125, result.TotalCombinations)
	assert.Equal(t, ResultCap, result.ReturnedCount)
	assert.Len(t, result.Combinations, ResultCap)
	assert.True(t, result.HasMore)
	assert.False(t, result.Truncated)
}

func TestGenerateCapKeepsBestScores(t *testing.T) {
	modules := wideModules(2, 12) // 144 combinations
	filters := DefaultFilters()
	filters.DayStartEnd = DayStartEnd{}
	filters.DayDuration = Range{Min: 0, Max: 3, Enabled: true}
	// one one-hour session per day in every combination, so all scores tie
	result := Generate(context.Background(), modules, filters, Options{Cap: 10})

	require.Len(t, result.Combinations, 10)
	assert.Equal(t, 144, result.TotalCombinations)
	for i, c := range result.Combinations {
		assert.Equal(t, 100.0, c.Score)
		// stable order follows enumeration: W00-00 paired with W01-00..W01-09
		assert.Equal(t, "W00-00", c.Picks[0].IndexNumber)
		assert.Equal(t, wideModules(2, 12)[1].Indexes[i].IndexNumber, c.Picks[1].IndexNumber)
	}
}

func TestGenerateRanksByScore(t *testing.T) {
	modules := []Module{
		{Code: "A", Indexes: []Index{
			index("A-wed", session("WED", "0900", "1000")),
			index("A-mon", session("MON", "1200", "1300")),
		}},
		{Code: "B", Indexes: []Index{index("B-mon", session("MON", "0900", "1000"))}},
	}
	filters := DefaultFilters()
	filters.GenerationGoals.ConsecutiveDays = true

	result := Generate(context.Background(), modules, filters, Options{})

	require.Len(t, result.Combinations, 2)
	assert.Equal(t, "A-mon", result.Combinations[0].Picks[0].IndexNumber)
	assert.Equal(t, 150.0, result.Combinations[0].Score)
	assert.Equal(t, "A-wed", result.Combinations[1].Picks[0].IndexNumber)
	assert.Equal(t, 100.0-ConsecutiveDaysPenalty, result.Combinations[1].Score)
}

func TestGenerateIdempotent(t *testing.T) {
	modules := wideModules(3, 4)
	filters := DefaultFilters()
	filters.GenerationGoals.BalanceWorkload = true
	filters.GenerationGoals.MinimizeDays = true

	first := Generate(context.Background(), modules, filters, Options{})
	second := Generate(context.Background(), modules, filters, Options{})

	require.Equal(t, first.TotalCombinations, second.TotalCombinations)
	require.Equal(t, len(first.Combinations), len(second.Combinations))
	for i := range first.Combinations {
		assert.Equal(t, first.Combinations[i].Picks, second.Combinations[i].Picks)
		assert.Equal(t, first.Combinations[i].Score, second.Combinations[i].Score)
	}
}

func TestGenerateBudgetFailsClosed(t *testing.T) {
	result := Generate(context.Background(), wideModules(4, 6), DefaultFilters(), Options{Budget: Budget{MaxSteps: 20}})

	assert.True(t, result.Truncated)
	assert.Less(t, result.TotalCombinations, 6*6*6*6)
	assert.Equal(t, len(result.Combinations), result.ReturnedCount)
}

func TestGenerateMatchesEagerPipeline(t *testing.T) {
	modules := wideModules(3, 3)
	filters := DefaultFilters()
	filters.GenerationGoals.ConsecutiveDays = true
	filters.DailyLoad = DailyLoad{Preference: DailyLoadSkewed, Enabled: true}

	eager := ScoreAndSort(BuildCombinations(FilterModules(modules, filters)), filters)
	lazy := Generate(context.Background(), modules, filters, Options{})

	require.Len(t, lazy.Combinations, len(eager))
	for i := range eager {
		assert.Equal(t, eager[i].Picks, lazy.Combinations[i].Picks)
		assert.Equal(t, eager[i].Score, lazy.Combinations[i].Score)
		assert.Equal(t, eager[i].Stats, lazy.Combinations[i].Stats)
	}
}
