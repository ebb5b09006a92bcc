package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/starsplanner/planner-api/internal/dto"
	"github.com/starsplanner/planner-api/internal/generator"
	appErrors "github.com/starsplanner/planner-api/pkg/errors"
)

type moduleResolver interface {
	ModulesForGeneration(ctx context.Context, semester string, codes []string) ([]generator.Module, error)
}

// TimetableGeneratorConfig bounds a single generation request.
type TimetableGeneratorConfig struct {
	MaxModules int
	MaxSteps   int
	Timeout    time.Duration
	ResultCap  int
}

// TimetableGeneratorService validates generation requests and runs the combination search.
type TimetableGeneratorService struct {
	catalogue moduleResolver
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       TimetableGeneratorConfig
	now       func() time.Time
}

// NewTimetableGeneratorService wires generator dependencies.
func NewTimetableGeneratorService(
	catalogue moduleResolver,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableGeneratorConfig,
) *TimetableGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxModules <= 0 {
		cfg.MaxModules = 15
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.ResultCap <= 0 {
		cfg.ResultCap = generator.ResultCap
	}
	return &TimetableGeneratorService{
		catalogue: catalogue,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Generate returns the ranked combinations for the requested modules and filters.
func (s *TimetableGeneratorService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*generator.Result, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable generation payload")
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	modules, err := s.resolveModules(ctx, req)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	result := generator.Generate(runCtx, modules, req.Filters, generator.Options{
		Budget: generator.Budget{MaxSteps: s.cfg.MaxSteps},
		Cap:    s.cfg.ResultCap,
		Now:    s.now,
	})
	elapsed := time.Since(start)

	s.metrics.ObserveGeneration(len(modules), result.TotalCombinations, result.Truncated, elapsed)
	fields := []zap.Field{
		zap.Strings("modules", lo.Map(modules, func(m generator.Module, _ int) string { return m.Code })),
		zap.Int("total_combinations", result.TotalCombinations),
		zap.Int("returned", result.ReturnedCount),
		zap.Bool("truncated", result.Truncated),
		zap.Duration("duration", elapsed),
	}
	if result.Truncated {
		s.logger.Warn("timetable generation truncated", fields...)
	} else {
		s.logger.Info("timetable generated", fields...)
	}

	return &result, nil
}

func (s *TimetableGeneratorService) validateRequest(req dto.GenerateTimetableRequest) error {
	hasInline := len(req.Modules) > 0
	hasCodes := len(req.ModuleCodes) > 0
	switch {
	case hasInline && hasCodes:
		return appErrors.Clone(appErrors.ErrValidation, "provide either modules or moduleCodes, not both")
	case !hasInline && !hasCodes:
		return appErrors.Clone(appErrors.ErrValidation, "at least one module is required")
	}

	codes := req.ModuleCodes
	if hasInline {
		codes = lo.Map(req.Modules, func(m dto.ModuleInput, _ int) string { return m.Code })
	}
	if len(codes) > s.cfg.MaxModules {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("at most %d modules can be planned together", s.cfg.MaxModules))
	}
	if dupes := lo.FindDuplicates(lo.Map(codes, func(code string, _ int) string { return normaliseCode(code) })); len(dupes) > 0 {
		return appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "duplicate module codes: "+strings.Join(dupes, ", ")),
			map[string]any{"codes": dupes},
		)
	}

	window := req.Filters.DayStartEnd
	if window.StartEnabled && !generator.ValidClock(window.StartAfter) {
		return appErrors.Clone(appErrors.ErrValidation, "dayStartEnd.startAfter must be HHMM or HH:MM")
	}
	if window.EndEnabled && !generator.ValidClock(window.EndBefore) {
		return appErrors.Clone(appErrors.ErrValidation, "dayStartEnd.endBefore must be HHMM or HH:MM")
	}
	if pref := req.Filters.DailyLoad.Preference; pref != "" && pref != generator.DailyLoadBalanced && pref != generator.DailyLoadSkewed {
		return appErrors.Clone(appErrors.ErrValidation, "dailyLoad.preference must be balanced or skewed")
	}
	return nil
}

func (s *TimetableGeneratorService) resolveModules(ctx context.Context, req dto.GenerateTimetableRequest) ([]generator.Module, error) {
	if len(req.Modules) > 0 {
		return dto.ToGenerator(req.Modules), nil
	}
	if s.catalogue == nil {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "module catalogue is not configured")
	}
	return s.catalogue.ModulesForGeneration(ctx, req.Semester, req.ModuleCodes)
}
