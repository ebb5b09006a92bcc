package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/starsplanner/planner-api/internal/dto"
	"github.com/starsplanner/planner-api/internal/generator"
	"github.com/starsplanner/planner-api/internal/models"
	appErrors "github.com/starsplanner/planner-api/pkg/errors"
)

// CatalogueRepository describes the read model the catalogue service depends on.
type CatalogueRepository interface {
	FindModule(ctx context.Context, semester, code string) (*models.CatalogueModule, error)
	ListSessions(ctx context.Context, semester string, codes []string) ([]models.ClassSessionRow, error)
}

// CatalogueService turns catalogue rows into generator modules, caching per module.
type CatalogueService struct {
	repo     CatalogueRepository
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewCatalogueService constructs the catalogue service.
func NewCatalogueService(repo CatalogueRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *CatalogueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogueService{repo: repo, cache: cache, metrics: metrics, logger: logger, cacheTTL: cacheTTL}
}

// ModulesForGeneration resolves module codes into generator input, keeping the requested order.
// Codes with no indexes in the semester are reported together as a not-found error.
func (s *CatalogueService) ModulesForGeneration(ctx context.Context, semester string, codes []string) ([]generator.Module, error) {
	codes = lo.Map(codes, func(code string, _ int) string { return normaliseCode(code) })

	resolved := make(map[string]generator.Module, len(codes))
	var misses []string
	for _, code := range lo.Uniq(codes) {
		var cached generator.Module
		if s.cache.Get(ctx, catalogueCacheKey(semester, code), &cached) {
			resolved[code] = cached
			continue
		}
		misses = append(misses, code)
	}

	if len(misses) > 0 {
		start := time.Now()
		rows, err := s.repo.ListSessions(ctx, semester, misses)
		s.metrics.ObserveDBQuery("catalogue_sessions", time.Since(start))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load module catalogue")
		}
		for _, module := range groupSessions(rows) {
			resolved[module.Code] = module
			s.cache.Set(ctx, catalogueCacheKey(semester, module.Code), module, s.cacheTTL)
		}
	}

	unknown := lo.Filter(codes, func(code string, _ int) bool {
		_, ok := resolved[code]
		return !ok
	})
	if len(unknown) > 0 {
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("modules not offered in semester %s: %s", semester, strings.Join(unknown, ", "))),
			map[string]any{"semester": semester, "codes": unknown},
		)
	}

	return lo.Map(codes, func(code string, _ int) generator.Module { return resolved[code] }), nil
}

// Module returns the catalogue view of one module. The boolean reports a cache hit.
func (s *CatalogueService) Module(ctx context.Context, semester, code string) (*dto.ModuleIndexesResponse, bool, error) {
	code = normaliseCode(code)
	if strings.TrimSpace(semester) == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "semester is required")
	}

	key := catalogueCacheKey(semester, code) + ":view"
	var cached dto.ModuleIndexesResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	start := time.Now()
	module, err := s.repo.FindModule(ctx, semester, code)
	s.metrics.ObserveDBQuery("catalogue_module", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("module %s not offered in semester %s", code, semester))
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load module")
	}

	resp := &dto.ModuleIndexesResponse{
		Code:     module.Code,
		Title:    module.Title,
		Credits:  module.Credits,
		Semester: module.Semester,
		Indexes:  []generator.Index{},
	}
	modules, err := s.ModulesForGeneration(ctx, semester, []string{code})
	if err != nil && !errors.Is(err, appErrors.ErrNotFound) {
		return nil, false, err
	}
	if len(modules) == 1 {
		resp.Indexes = modules[0].Indexes
	}

	s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, false, nil
}

// Invalidate drops every cached module of a semester.
func (s *CatalogueService) Invalidate(ctx context.Context, semester string) error {
	if strings.TrimSpace(semester) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "semester is required")
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("catalogue:%s:*", semester)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to invalidate catalogue cache")
	}
	s.logger.Info("catalogue cache invalidated", zap.String("semester", semester))
	return nil
}

func catalogueCacheKey(semester, code string) string {
	return fmt.Sprintf("catalogue:%s:%s", semester, code)
}

func normaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// groupSessions folds rows ordered by module and index into modules. Rows for the
// same index must be adjacent.
func groupSessions(rows []models.ClassSessionRow) []generator.Module {
	var modules []generator.Module
	for _, row := range rows {
		code := normaliseCode(row.ModuleCode)
		if len(modules) == 0 || modules[len(modules)-1].Code != code {
			modules = append(modules, generator.Module{Code: code})
		}
		module := &modules[len(modules)-1]
		if len(module.Indexes) == 0 || module.Indexes[len(module.Indexes)-1].IndexNumber != row.IndexNumber {
			module.Indexes = append(module.Indexes, generator.Index{IndexNumber: row.IndexNumber})
		}
		index := &module.Indexes[len(module.Indexes)-1]
		index.Classes = append(index.Classes, generator.ClassSession{
			Type:      strings.ToUpper(strings.TrimSpace(row.ClassType)),
			Group:     strings.TrimSpace(row.ClassGroup),
			Day:       strings.ToUpper(strings.TrimSpace(row.Day)),
			StartTime: generator.NormalizeTime(row.StartTime),
			EndTime:   generator.NormalizeTime(row.EndTime),
			Venue:     strings.TrimSpace(row.Venue),
			Weeks:     parseWeeks(row.Weeks),
		})
	}
	return modules
}

// maxTeachingWeek matches the week bound accepted for inline classes.
const maxTeachingWeek = 53

// parseWeeks reads published week lists such as "1-6,8,10-13" or "Teaching Wk2-13".
// Unreadable parts are skipped and ranges are clamped to maxTeachingWeek.
// A nil result means every week.
func parseWeeks(raw string) []int {
	start := strings.IndexFunc(raw, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return nil
	}

	var weeks []int
	for _, part := range strings.Split(raw[start:], ",") {
		part = strings.TrimSpace(part)
		from, to, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil || first <= 0 || first > maxTeachingWeek {
			continue
		}
		last := first
		if isRange {
			if last, err = strconv.Atoi(strings.TrimSpace(to)); err != nil || last < first {
				continue
			}
			last = min(last, maxTeachingWeek)
		}
		for w := first; w <= last; w++ {
			weeks = append(weeks, w)
		}
	}
	if len(weeks) == 0 {
		return nil
	}
	slices.Sort(weeks)
	return slices.Compact(weeks)
}
