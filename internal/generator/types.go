// Package generator builds conflict-free timetable combinations from module
// indexes and ranks them against a student's preference profile.
//
// Every exported entry point is a pure function of its inputs: no I/O, no
// shared state. Callers resolve modules from the catalogue and validate the
// request shape before calling in.
package generator

import "time"

// ResultCap bounds the number of combinations returned by Generate.
const ResultCap = 100

// ClassSession is one weekly recurring meeting of an index.
type ClassSession struct {
	Type      string `json:"type"`
	Group     string `json:"group,omitempty"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Venue     string `json:"venue"`
	Weeks     []int  `json:"weeks,omitempty"`
}

// Index is a named section of a module and the unit of choice.
type Index struct {
	IndexNumber string         `json:"indexNumber"`
	Classes     []ClassSession `json:"classes"`
}

// Module groups the indexes a student may choose from.
type Module struct {
	Code    string  `json:"code"`
	Indexes []Index `json:"indexes"`
}

// Range is an inclusive [Min, Max] window that only applies when Enabled.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Enabled bool    `json:"enabled"`
}

// DayStartEnd restricts classes to a clock-time window.
type DayStartEnd struct {
	StartAfter   string `json:"startAfter"`
	EndBefore    string `json:"endBefore"`
	StartEnabled bool   `json:"startEnabled"`
	EndEnabled   bool   `json:"endEnabled"`
}

// DaysOfWeek is a per-day allow list.
type DaysOfWeek struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// DailyLoadPreference values.
const (
	DailyLoadBalanced = "balanced"
	DailyLoadSkewed   = "skewed"
)

// DailyLoad nudges the score towards more or fewer teaching days.
type DailyLoad struct {
	Preference string `json:"preference"`
	Enabled    bool   `json:"enabled"`
}

// ClassesToConsider toggles class categories in and out of filtering and scoring.
type ClassesToConsider struct {
	Tutorial bool `json:"tutorial"`
	Lab      bool `json:"lab"`
	Seminar  bool `json:"seminar"`
	Lecture  bool `json:"lecture"`
	Project  bool `json:"project"`
	Design   bool `json:"design"`
}

// VenuePreference selects online and/or in-person classes.
type VenuePreference struct {
	IncludeOnline   bool `json:"includeOnline"`
	IncludeInPerson bool `json:"includeInPerson"`
}

// GenerationGoals are soft scoring bonuses.
type GenerationGoals struct {
	BalanceWorkload bool `json:"balanceWorkload"`
	MinimizeDays    bool `json:"minimizeDays"`
	ConsecutiveDays bool `json:"consecutiveDays"`
}

// Filters is the full preference profile. Every field is always present;
// DefaultFilters supplies the permissive baseline.
//
// ConsecutiveClasses is accepted for API compatibility but is not read by
// the filter or the scorer.
type Filters struct {
	DayDuration        Range             `json:"dayDuration"`
	ConsecutiveClasses Range             `json:"consecutiveClasses"`
	GapsBetweenClasses Range             `json:"gapsBetweenClasses"`
	DayStartEnd        DayStartEnd       `json:"dayStartEnd"`
	DaysOfWeek         DaysOfWeek        `json:"daysOfWeek"`
	DailyLoad          DailyLoad         `json:"dailyLoad"`
	ClassesToConsider  ClassesToConsider `json:"classesToConsider"`
	VenuePreference    VenuePreference   `json:"venuePreference"`
	GenerationGoals    GenerationGoals   `json:"generationGoals"`
}

// DefaultFilters returns a profile that filters nothing and adds no scoring terms.
func DefaultFilters() Filters {
	return Filters{
		DayDuration:        Range{Min: 0, Max: 24},
		ConsecutiveClasses: Range{Min: 0, Max: 24},
		GapsBetweenClasses: Range{Min: 0, Max: 24},
		DayStartEnd:        DayStartEnd{StartAfter: "0800", EndBefore: "2200"},
		DaysOfWeek: DaysOfWeek{
			Monday: true, Tuesday: true, Wednesday: true, Thursday: true,
			Friday: true, Saturday: true, Sunday: true,
		},
		DailyLoad: DailyLoad{Preference: DailyLoadBalanced},
		ClassesToConsider: ClassesToConsider{
			Tutorial: true, Lab: true, Seminar: true, Lecture: true, Project: true, Design: true,
		},
		VenuePreference: VenuePreference{IncludeOnline: true, IncludeInPerson: true},
	}
}

// Pick records which index was chosen for a module.
type Pick struct {
	ModuleCode  string `json:"moduleCode"`
	IndexNumber string `json:"indexNumber"`
}

// Stats summarises a combination for display.
type Stats struct {
	TotalDays          int     `json:"totalDays"`
	TotalHours         float64 `json:"totalHours"`
	AverageGapDuration int     `json:"averageGapDuration"`
	EarliestStart      string  `json:"earliestStart"`
	LatestEnd          string  `json:"latestEnd"`
}

// Combination is one legal assignment of exactly one index per module.
type Combination struct {
	ID      string         `json:"id"`
	Picks   []Pick         `json:"modules"`
	Classes []ClassSession `json:"classes"`
	Stats   Stats          `json:"stats"`
	Score   float64        `json:"score"`
}

// Result is the bounded, ranked output of Generate.
type Result struct {
	Combinations      []Combination `json:"combinations"`
	GeneratedAt       time.Time     `json:"generatedAt"`
	TotalCombinations int           `json:"totalCombinations"`
	ReturnedCount     int           `json:"returnedCount"`
	HasMore           bool          `json:"hasMore"`
	// Truncated reports that the search stopped on a budget or cancellation,
	// so TotalCombinations is a lower bound.
	Truncated bool `json:"truncated"`
}

func emptyResult(now time.Time) Result {
	return Result{Combinations: []Combination{}, GeneratedAt: now}
}
