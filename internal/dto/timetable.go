package dto

import (
	"github.com/starsplanner/planner-api/internal/generator"
)

// ClassSessionInput is one weekly class of an inline index.
type ClassSessionInput struct {
	Type      string `json:"type" validate:"required"`
	Group     string `json:"group"`
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Venue     string `json:"venue"`
	Weeks     []int  `json:"weeks" validate:"omitempty,dive,min=1,max=53"`
}

// IndexInput is an inline index supplied by the client.
type IndexInput struct {
	IndexNumber string              `json:"indexNumber" validate:"required"`
	Classes     []ClassSessionInput `json:"classes" validate:"dive"`
}

// ModuleInput is an inline module supplied by the client instead of a catalogue code.
type ModuleInput struct {
	Code    string       `json:"code" validate:"required"`
	Indexes []IndexInput `json:"indexes" validate:"dive"`
}

// GenerateTimetableRequest asks for ranked, conflict-free combinations.
// Modules are either inline or resolved from the catalogue via Semester and ModuleCodes.
type GenerateTimetableRequest struct {
	Semester    string            `json:"semester" validate:"required_with=ModuleCodes"`
	ModuleCodes []string          `json:"moduleCodes" validate:"omitempty,dive,required"`
	Modules     []ModuleInput     `json:"modules" validate:"omitempty,dive"`
	Filters     generator.Filters `json:"filters"`
}

// NewGenerateTimetableRequest returns a request pre-populated with the permissive
// filter profile, so binding JSON on top of it only overrides fields the client sent.
func NewGenerateTimetableRequest() GenerateTimetableRequest {
	return GenerateTimetableRequest{Filters: generator.DefaultFilters()}
}

// ExportTimetableRequest renders one chosen combination as a file.
type ExportTimetableRequest struct {
	Format   string        `json:"format" validate:"required,oneof=csv pdf"`
	Title    string        `json:"title" validate:"omitempty,max=120"`
	Semester string        `json:"semester"`
	Picks    []PickInput   `json:"picks" validate:"required,min=1,dive"`
	Modules  []ModuleInput `json:"modules" validate:"omitempty,dive"`
}

// PickInput names the chosen index of one module.
type PickInput struct {
	ModuleCode  string `json:"moduleCode" validate:"required"`
	IndexNumber string `json:"indexNumber" validate:"required"`
}

// ModuleIndexesResponse is the catalogue view of one module.
type ModuleIndexesResponse struct {
	Code     string            `json:"code"`
	Title    string            `json:"title"`
	Credits  float64           `json:"credits"`
	Semester string            `json:"semester"`
	Indexes  []generator.Index `json:"indexes"`
}

// ToGenerator converts inline modules into generator input.
func ToGenerator(modules []ModuleInput) []generator.Module {
	out := make([]generator.Module, 0, len(modules))
	for _, m := range modules {
		module := generator.Module{Code: m.Code, Indexes: make([]generator.Index, 0, len(m.Indexes))}
		for _, idx := range m.Indexes {
			index := generator.Index{IndexNumber: idx.IndexNumber, Classes: make([]generator.ClassSession, 0, len(idx.Classes))}
			for _, cls := range idx.Classes {
				index.Classes = append(index.Classes, generator.ClassSession{
					Type:      cls.Type,
					Group:     cls.Group,
					Day:       cls.Day,
					StartTime: cls.StartTime,
					EndTime:   cls.EndTime,
					Venue:     cls.Venue,
					Weeks:     cls.Weeks,
				})
			}
			module.Indexes = append(module.Indexes, index)
		}
		out = append(out, module)
	}
	return out
}
