package generator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(day, start, end string, weeks ...int) ClassSession {
	return ClassSession{Type: "LEC", Day: day, StartTime: start, EndTime: end, Venue: "LT1", Weeks: weeks}
}

func index(number string, classes ...ClassSession) Index {
	return Index{IndexNumber: number, Classes: classes}
}

func picksOf(candidates []Candidate) [][]Pick {
	out := make([][]Pick, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Picks)
	}
	return out
}

func TestConflictsBackToBack(t *testing.T) {
	assert.False(t, Conflicts(session("MON", "0900", "1100"), session("MON", "1100", "1200")))
	assert.True(t, Conflicts(session("MON", "0900", "1100"), session("MON", "1059", "1200")))
	assert.False(t, Conflicts(session("MON", "0900", "1100"), session("TUE", "0900", "1100")))
}

func TestConflictsWeeks(t *testing.T) {
	odd := session("WED", "1000", "1200", 1, 3, 5)
	even := session("WED", "1000", "1200", 2, 4, 6)
	every := session("WED", "1100", "1300")

	assert.False(t, Conflicts(odd, even))
	assert.True(t, Conflicts(odd, every))
	assert.True(t, Conflicts(every, even))
	assert.True(t, Conflicts(odd, session("WED", "1130", "1230", 5, 9)))
}

func TestConflictsIgnoresUnparseableTimes(t *testing.T) {
	assert.False(t, Conflicts(session("MON", "TBA", "TBA"), session("MON", "0900", "1100")))
}

func TestBuildCombinationsFullEnumeration(t *testing.T) {
	modules := []Module{
		{Code: "A", Indexes: []Index{
			index("A1", session("MON", "0900", "1000")),
			index("A2", session("TUE", "0900", "1000")),
		}},
		{Code: "B", Indexes: []Index{
			index("B1", session("MON", "0930", "1030")),
			index("B2", session("WED", "0900", "1000")),
		}},
	}

	got := BuildCombinations(modules)

	assert.Equal(t, [][]Pick{
		{{ModuleCode: "A", IndexNumber: "A1"}, {ModuleCode: "B", IndexNumber: "B2"}},
		{{ModuleCode: "A", IndexNumber: "A2"}, {ModuleCode: "B", IndexNumber: "B1"}},
		{{ModuleCode: "A", IndexNumber: "A2"}, {ModuleCode: "B", IndexNumber: "B2"}},
	}, picksOf(got))
	for _, c := range got {
		assert.Len(t, c.Classes, 2)
	}
}

func TestBuildCombinationsCarriesEveryClass(t *testing.T) {
	tut := ClassSession{Type: "TUT", Day: "THU", StartTime: "1400", EndTime: "1500", Venue: "TR+1"}
	modules := []Module{{Code: "A", Indexes: []Index{index("A1", session("MON", "0900", "1000"), tut)}}}

	got := BuildCombinations(modules)

	require.Len(t, got, 1)
	assert.Equal(t, []ClassSession{session("MON", "0900", "1000"), tut}, got[0].Classes)
}

func TestBuildCombinationsDeadBranch(t *testing.T) {
	modules := []Module{
		{Code: "CS1010", Indexes: []Index{
			index("10101", session("MON", "0900", "1100")),
			index("10102", session("MON", "0900", "1100")),
		}},
		{Code: "CS1231", Indexes: []Index{index("20201", session("MON", "1000", "1200"))}},
	}
	assert.Empty(t, BuildCombinations(modules))
}

func TestBuildCombinationsNoConflictInvariant(t *testing.T) {
	days := []string{"MON", "TUE", "WED"}
	var modules []Module
	for m := 0; m < 4; m++ {
		module := Module{Code: fmt.Sprintf("M%d", m)}
		for i := 0; i < 4; i++ {
			start := 800 + 100*((m+i)%5)
			module.Indexes = append(module.Indexes, index(
				fmt.Sprintf("M%d-%d", m, i),
				session(days[(m*i)%3], fmt.Sprintf("%04d", start), fmt.Sprintf("%04d", start+200)),
			))
		}
		modules = append(modules, module)
	}

	got := BuildCombinations(modules)
	require.NotEmpty(t, got)
	for _, c := range got {
		require.Len(t, c.Picks, len(modules))
		for i := range c.Classes {
			for j := i + 1; j < len(c.Classes); j++ {
				assert.False(t, Conflicts(c.Classes[i], c.Classes[j]), "picks %v", c.Picks)
			}
		}
	}
}

func TestBuilderStopsWhenConsumerStops(t *testing.T) {
	modules := []Module{
		{Code: "A", Indexes: []Index{index("A1", session("MON", "0900", "1000")), index("A2", session("TUE", "0900", "1000"))}},
		{Code: "B", Indexes: []Index{index("B1", session("WED", "0900", "1000")), index("B2", session("THU", "0900", "1000"))}},
	}
	builder := NewBuilder(modules, Budget{})

	count := 0
	for range builder.Combinations(context.Background()) {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(t, 2, count)
	assert.False(t, builder.Truncated())
}

func TestBuilderBudget(t *testing.T) {
	modules := wideModules(3, 5)
	builder := NewBuilder(modules, Budget{MaxSteps: 10})

	var got []Candidate
	for c := range builder.Combinations(context.Background()) {
		got = append(got, c)
	}

	assert.True(t, builder.Truncated())
	assert.Less(t, len(got), 125)
	assert.LessOrEqual(t, builder.Steps(), 11)
}

func TestBuilderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	builder := NewBuilder(wideModules(2, 2), Budget{})

	count := 0
	for range builder.Combinations(ctx) {
		count++
	}

	assert.Zero(t, count)
	assert.True(t, builder.Truncated())
}

func TestBuilderEmptyModuleYieldsNothing(t *testing.T) {
	modules := []Module{
		{Code: "A", Indexes: []Index{index("A1", session("MON", "0900", "1000"))}},
		{Code: "B"},
	}
	assert.Empty(t, BuildCombinations(modules))
	assert.Empty(t, BuildCombinations(nil))
}

// wideModules builds modules whose indexes never clash with each other.
func wideModules(modules, indexes int) []Module {
	days := []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}
	out := make([]Module, 0, modules)
	for m := 0; m < modules; m++ {
		module := Module{Code: fmt.Sprintf("W%02d", m)}
		for i := 0; i < indexes; i++ {
			start := 800 + 100*i
			module.Indexes = append(module.Indexes, index(
				fmt.Sprintf("W%02d-%02d", m, i),
				session(days[m%len(days)], fmt.Sprintf("%04d", start), fmt.Sprintf("%04d", start+100), m+1),
			))
		}
		out = append(out, module)
	}
	return out
}
