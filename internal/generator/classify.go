package generator

import (
	"strings"

	"github.com/samber/lo"
)

// ClassCategory is the keyword bucket a free-text class type falls into.
type ClassCategory string

const (
	CategoryTutorial ClassCategory = "tutorial"
	CategoryLab      ClassCategory = "lab"
	CategorySeminar  ClassCategory = "seminar"
	CategoryLecture  ClassCategory = "lecture"
	CategoryProject  ClassCategory = "project"
	CategoryDesign   ClassCategory = "design"
	CategoryOther    ClassCategory = ""
)

var categoryKeywords = []struct {
	keyword  string
	category ClassCategory
}{
	{"tut", CategoryTutorial},
	{"lab", CategoryLab},
	{"sem", CategorySeminar},
	{"lec", CategoryLecture},
	{"prj", CategoryProject},
	{"des", CategoryDesign},
}

var onlineKeywords = []string{"online", "e-learn", "elearn", "virtual", "zoom", "teams"}

var weekdays = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// Classify maps a class type such as "LEC/STUDIO" or "TUT" to its category.
func Classify(classType string) ClassCategory {
	lower := strings.ToLower(classType)
	for _, entry := range categoryKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.category
		}
	}
	return CategoryOther
}

// Considered reports whether sessions of this type take part in filtering and scoring.
func (c ClassesToConsider) Considered(classType string) bool {
	switch Classify(classType) {
	case CategoryTutorial:
		return c.Tutorial
	case CategoryLab:
		return c.Lab
	case CategorySeminar:
		return c.Seminar
	case CategoryLecture:
		return c.Lecture
	case CategoryProject:
		return c.Project
	case CategoryDesign:
		return c.Design
	default:
		return true
	}
}

func (c ClassesToConsider) filter(classes []ClassSession) []ClassSession {
	return lo.Filter(classes, func(cls ClassSession, _ int) bool {
		return c.Considered(cls.Type)
	})
}

// IsOnline reports whether a venue denotes an online class.
func IsOnline(venue string) bool {
	lower := strings.ToLower(venue)
	return lo.SomeBy(onlineKeywords, func(keyword string) bool {
		return strings.Contains(lower, keyword)
	})
}

// WeekdayIndex returns 0 for MON through 6 for SUN, or -1 for an unknown day.
func WeekdayIndex(day string) int {
	return lo.IndexOf(weekdays, strings.ToUpper(strings.TrimSpace(day)))
}

// Allows reports whether classes may fall on the given day.
func (d DaysOfWeek) Allows(day string) bool {
	switch WeekdayIndex(day) {
	case 0:
		return d.Monday
	case 1:
		return d.Tuesday
	case 2:
		return d.Wednesday
	case 3:
		return d.Thursday
	case 4:
		return d.Friday
	case 5:
		return d.Saturday
	case 6:
		return d.Sunday
	default:
		return false
	}
}

// AllEnabled reports whether no day is restricted.
func (d DaysOfWeek) AllEnabled() bool {
	return d.Monday && d.Tuesday && d.Wednesday && d.Thursday && d.Friday && d.Saturday && d.Sunday
}
