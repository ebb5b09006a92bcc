package generator

import "github.com/samber/lo"

// FilterModules drops indexes that break a hard constraint in the profile and
// then drops modules left without indexes. Order is preserved and the input
// is not modified.
//
// Only sessions whose class type is enabled in ClassesToConsider are checked.
// An index with no considered session is dropped outright.
func FilterModules(modules []Module, filters Filters) []Module {
	result := make([]Module, 0, len(modules))
	for _, module := range modules {
		indexes := lo.Filter(module.Indexes, func(index Index, _ int) bool {
			return indexAllowed(index, filters)
		})
		if len(indexes) == 0 {
			continue
		}
		result = append(result, Module{Code: module.Code, Indexes: indexes})
	}
	return result
}

func indexAllowed(index Index, filters Filters) bool {
	considered := filters.ClassesToConsider.filter(index.Classes)
	if len(considered) == 0 {
		return false
	}
	if !venueAllowed(considered, filters.VenuePreference) {
		return false
	}
	if !timeWindowAllowed(considered, filters.DayStartEnd) {
		return false
	}
	return daysAllowed(considered, filters.DaysOfWeek)
}

func venueAllowed(classes []ClassSession, pref VenuePreference) bool {
	if pref.IncludeOnline && pref.IncludeInPerson {
		return true
	}
	for _, cls := range classes {
		online := IsOnline(cls.Venue)
		if pref.IncludeOnline && !pref.IncludeInPerson && !online {
			return false
		}
		if pref.IncludeInPerson && !pref.IncludeOnline && online {
			return false
		}
	}
	return true
}

// timeWindowAllowed never rejects on a time it cannot parse.
func timeWindowAllowed(classes []ClassSession, window DayStartEnd) bool {
	if !window.StartEnabled && !window.EndEnabled {
		return true
	}
	startAfter, startOK := ParseMinutes(window.StartAfter)
	endBefore, endOK := ParseMinutes(window.EndBefore)
	for _, cls := range classes {
		if window.StartEnabled && startOK {
			if start, ok := ParseMinutes(cls.StartTime); ok && start < startAfter {
				return false
			}
		}
		if window.EndEnabled && endOK {
			if end, ok := ParseMinutes(cls.EndTime); ok && end > endBefore {
				return false
			}
		}
	}
	return true
}

func daysAllowed(classes []ClassSession, days DaysOfWeek) bool {
	if days.AllEnabled() {
		return true
	}
	return lo.EveryBy(classes, func(cls ClassSession) bool {
		return days.Allows(cls.Day)
	})
}
