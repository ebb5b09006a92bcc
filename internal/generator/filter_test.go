package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexNumbers(modules []Module) map[string][]string {
	out := make(map[string][]string, len(modules))
	for _, m := range modules {
		for _, idx := range m.Indexes {
			out[m.Code] = append(out[m.Code], idx.IndexNumber)
		}
	}
	return out
}

func TestFilterModulesPermissiveKeepsInput(t *testing.T) {
	modules := []Module{
		{Code: "CS2040", Indexes: []Index{
			index("1", session("MON", "0830", "1030")),
			index("2", ClassSession{Type: "TUT", Day: "SAT", StartTime: "1900", EndTime: "2100", Venue: "ONLINE"}),
		}},
	}

	got := FilterModules(modules, DefaultFilters())

	assert.Equal(t, modules, got)
}

func TestFilterModulesClassTypeSubset(t *testing.T) {
	filters := DefaultFilters()
	filters.ClassesToConsider.Tutorial = false
	filters.DaysOfWeek.Monday = false

	modules := []Module{{Code: "MH1100", Indexes: []Index{
		index("tut-only", ClassSession{Type: "TUT", Day: "MON", StartTime: "0900", EndTime: "1000"}),
		index("mixed", session("TUE", "0900", "1000"), ClassSession{Type: "TUT", Day: "MON", StartTime: "1000", EndTime: "1100"}),
		index("other", ClassSession{Type: "EXAM", Day: "WED", StartTime: "0900", EndTime: "1000"}),
	}}}

	got := FilterModules(modules, filters)

	// the Monday tutorial is not considered, so only the empty subset drops
	assert.Equal(t, map[string][]string{"MH1100": {"mixed", "other"}}, indexNumbers(got))
	require.Len(t, got[0].Indexes[0].Classes, 2)
}

func TestFilterModulesVenue(t *testing.T) {
	modules := []Module{{Code: "HE9091", Indexes: []Index{
		index("online", ClassSession{Type: "LEC", Day: "MON", StartTime: "0900", EndTime: "1000", Venue: "E-Learn Zoom"}),
		index("inperson", ClassSession{Type: "LEC", Day: "MON", StartTime: "0900", EndTime: "1000", Venue: "LT2A"}),
		index("hybrid",
			ClassSession{Type: "LEC", Day: "MON", StartTime: "0900", EndTime: "1000", Venue: "Virtual"},
			ClassSession{Type: "TUT", Day: "TUE", StartTime: "0900", EndTime: "1000", Venue: "TR+12"},
		),
	}}}

	onlineOnly := DefaultFilters()
	onlineOnly.VenuePreference = VenuePreference{IncludeOnline: true}
	assert.Equal(t, []string{"online"}, indexNumbers(FilterModules(modules, onlineOnly))["HE9091"])

	inPersonOnly := DefaultFilters()
	inPersonOnly.VenuePreference = VenuePreference{IncludeInPerson: true}
	assert.Equal(t, []string{"inperson"}, indexNumbers(FilterModules(modules, inPersonOnly))["HE9091"])

	neither := DefaultFilters()
	neither.VenuePreference = VenuePreference{}
	assert.Len(t, FilterModules(modules, neither)[0].Indexes, 3)
}

func TestFilterModulesTimeWindow(t *testing.T) {
	modules := []Module{{Code: "EE2001", Indexes: []Index{
		index("early", session("MON", "0830", "0930")),
		index("late", session("MON", "1730", "1930")),
		index("core", session("MON", "1000", "1200")),
		index("tba", session("MON", "TBA", "TBA")),
	}}}

	filters := DefaultFilters()
	filters.DayStartEnd = DayStartEnd{StartAfter: "09:00", EndBefore: "1800", StartEnabled: true, EndEnabled: true}
	filters = NormalizeFilters(filters)

	got := FilterModules(modules, filters)

	assert.Equal(t, []string{"core", "tba"}, indexNumbers(got)["EE2001"])
}

func TestFilterModulesTimeWindowIgnoresBadBounds(t *testing.T) {
	modules := []Module{{Code: "EE2001", Indexes: []Index{index("early", session("MON", "0700", "0800"))}}}
	filters := DefaultFilters()
	filters.DayStartEnd = DayStartEnd{StartAfter: "morning", StartEnabled: true}

	assert.Len(t, FilterModules(modules, filters), 1)
}

func TestFilterModulesDays(t *testing.T) {
	modules := []Module{
		{Code: "A", Indexes: []Index{index("fri", session("FRI", "0900", "1000")), index("mon", session("MON", "0900", "1000"))}},
		{Code: "B", Indexes: []Index{index("fri", session("FRI", "1000", "1100"))}},
	}
	filters := DefaultFilters()
	filters.DaysOfWeek.Friday = false

	got := FilterModules(modules, filters)

	assert.Equal(t, map[string][]string{"A": {"mon"}}, indexNumbers(got))
}

func TestFilterModulesDoesNotMutateInput(t *testing.T) {
	modules := []Module{{Code: "A", Indexes: []Index{index("fri", session("FRI", "0900", "1000")), index("mon", session("MON", "0900", "1000"))}}}
	filters := DefaultFilters()
	filters.DaysOfWeek.Friday = false

	_ = FilterModules(modules, filters)

	assert.Len(t, modules[0].Indexes, 2)
	assert.Equal(t, "fri", modules[0].Indexes[0].IndexNumber)
}

func TestFilterModulesSubsetProperty(t *testing.T) {
	modules := wideModules(4, 6)
	filters := DefaultFilters()
	filters.DaysOfWeek.Tuesday = false
	filters.DayStartEnd = DayStartEnd{StartAfter: "1000", EndBefore: "1200", StartEnabled: true, EndEnabled: true}

	before := indexNumbers(modules)
	for code, numbers := range indexNumbers(FilterModules(modules, filters)) {
		assert.Subset(t, before[code], numbers)
	}
}
