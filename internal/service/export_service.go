package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/starsplanner/planner-api/internal/dto"
	"github.com/starsplanner/planner-api/internal/generator"
	appErrors "github.com/starsplanner/planner-api/pkg/errors"
	"github.com/starsplanner/planner-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"Day", "Start", "End", "Module", "Index", "Type", "Group", "Venue", "Weeks"}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportedFile is a rendered timetable ready for download.
type ExportedFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders one chosen combination as a printable timetable.
type ExportService struct {
	catalogue moduleResolver
	csv       datasetRenderer
	pdf       datasetRenderer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the stock exporters.
func NewExportService(catalogue moduleResolver, validate *validator.Validate, logger *zap.Logger, csv, pdf datasetRenderer) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{catalogue: catalogue, csv: csv, pdf: pdf, validator: validate, logger: logger, now: time.Now}
}

type exportRow struct {
	module string
	index  string
	class  generator.ClassSession
}

// Render resolves the picked indexes and renders them in the requested format.
func (s *ExportService) Render(ctx context.Context, req dto.ExportTimetableRequest) (*ExportedFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	codes := lo.Map(req.Picks, func(p dto.PickInput, _ int) string { return normaliseCode(p.ModuleCode) })
	if dupes := lo.FindDuplicates(codes); len(dupes) > 0 {
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "only one index per module can be exported: "+strings.Join(dupes, ", ")),
			map[string]any{"codes": dupes},
		)
	}

	rows, err := s.resolvePicks(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := ensureNoClash(rows); err != nil {
		return nil, err
	}

	dataset := s.buildDataset(req, rows)
	var (
		body        []byte
		contentType string
	)
	switch req.Format {
	case ExportFormatCSV:
		body, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	case ExportFormatPDF:
		body, err = s.pdf.Render(dataset)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %s", req.Format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable")
	}

	s.logger.Info("timetable exported",
		zap.String("format", req.Format),
		zap.Int("modules", len(req.Picks)),
		zap.Int("bytes", len(body)),
	)
	return &ExportedFile{Filename: s.filename(req), ContentType: contentType, Body: body}, nil
}

func (s *ExportService) resolvePicks(ctx context.Context, req dto.ExportTimetableRequest) ([]exportRow, error) {
	var modules []generator.Module
	switch {
	case len(req.Modules) > 0:
		modules = dto.ToGenerator(req.Modules)
	case strings.TrimSpace(req.Semester) == "":
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester is required when modules are not supplied")
	case s.catalogue == nil:
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "module catalogue is not configured")
	default:
		codes := lo.Map(req.Picks, func(p dto.PickInput, _ int) string { return p.ModuleCode })
		var err error
		if modules, err = s.catalogue.ModulesForGeneration(ctx, req.Semester, codes); err != nil {
			return nil, err
		}
	}

	byCode := lo.KeyBy(modules, func(m generator.Module) string { return normaliseCode(m.Code) })
	var rows []exportRow
	for _, pick := range req.Picks {
		module, ok := byCode[normaliseCode(pick.ModuleCode)]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("module %s not found", pick.ModuleCode))
		}
		index, ok := lo.Find(module.Indexes, func(idx generator.Index) bool { return idx.IndexNumber == pick.IndexNumber })
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("index %s not found for module %s", pick.IndexNumber, pick.ModuleCode))
		}
		for _, cls := range index.Classes {
			rows = append(rows, exportRow{module: module.Code, index: index.IndexNumber, class: cls})
		}
	}
	return rows, nil
}

// ensureNoClash rejects hand-assembled picks whose classes overlap. Classes of
// the same index are never compared with each other.
func ensureNoClash(rows []exportRow) error {
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			if rows[i].module == rows[j].module && rows[i].index == rows[j].index {
				continue
			}
			if generator.Conflicts(rows[i].class, rows[j].class) {
				return appErrors.WithDetails(
					appErrors.Clone(appErrors.ErrUnprocessable, fmt.Sprintf("%s %s clashes with %s %s", rows[i].module, rows[i].index, rows[j].module, rows[j].index)),
					map[string]any{"day": rows[i].class.Day},
				)
			}
		}
	}
	return nil
}

func (s *ExportService) buildDataset(req dto.ExportTimetableRequest, rows []exportRow) export.Dataset {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := weekdayOrder(rows[i].class.Day), weekdayOrder(rows[j].class.Day)
		if di != dj {
			return di < dj
		}
		si, _ := generator.ParseMinutes(rows[i].class.StartTime)
		sj, _ := generator.ParseMinutes(rows[j].class.StartTime)
		return si < sj
	})

	classes := lo.Map(rows, func(r exportRow, _ int) generator.ClassSession { return r.class })
	stats := generator.ComputeStats(classes)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Timetable"
	}
	semester := req.Semester
	if semester == "" {
		semester = "-"
	}

	return export.Dataset{
		Title: title,
		Notes: [][2]string{
			{"Semester", semester},
			{"Modules", strings.Join(lo.Map(req.Picks, func(p dto.PickInput, _ int) string { return p.ModuleCode + " " + p.IndexNumber }), ", ")},
			{"Teaching days", strconv.Itoa(stats.TotalDays)},
			{"Weekly hours", strconv.FormatFloat(stats.TotalHours, 'f', 1, 64)},
			{"Earliest start", stats.EarliestStart},
			{"Latest end", stats.LatestEnd},
			{"Average gap (min)", strconv.Itoa(stats.AverageGapDuration)},
		},
		Headers: exportHeaders,
		Rows: lo.Map(rows, func(r exportRow, _ int) []string {
			return []string{
				strings.ToUpper(r.class.Day),
				generator.NormalizeTime(r.class.StartTime),
				generator.NormalizeTime(r.class.EndTime),
				r.module,
				r.index,
				r.class.Type,
				r.class.Group,
				r.class.Venue,
				formatWeeks(r.class.Weeks),
			}
		}),
	}
}

func (s *ExportService) filename(req dto.ExportTimetableRequest) string {
	semester := req.Semester
	if semester == "" {
		semester = "custom"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	return fmt.Sprintf("timetable_%s_%s.%s", replacer.Replace(semester), s.now().UTC().Format("20060102_150405"), req.Format)
}

// weekdayOrder sorts unknown days after Sunday.
func weekdayOrder(day string) int {
	if idx := generator.WeekdayIndex(day); idx >= 0 {
		return idx
	}
	return 7
}

// formatWeeks collapses sorted week numbers back into "1-6,8" form.
func formatWeeks(weeks []int) string {
	if len(weeks) == 0 {
		return "All"
	}
	var parts []string
	for i := 0; i < len(weeks); {
		j := i
		for j+1 < len(weeks) && weeks[j+1] == weeks[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(weeks[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", weeks[i], weeks[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
