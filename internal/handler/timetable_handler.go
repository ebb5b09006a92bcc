package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/starsplanner/planner-api/internal/dto"
	"github.com/starsplanner/planner-api/internal/generator"
	internalmiddleware "github.com/starsplanner/planner-api/internal/middleware"
	"github.com/starsplanner/planner-api/internal/service"
	appErrors "github.com/starsplanner/planner-api/pkg/errors"
	"github.com/starsplanner/planner-api/pkg/response"
)

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*generator.Result, error)
}

type timetableExporter interface {
	Render(ctx context.Context, req dto.ExportTimetableRequest) (*service.ExportedFile, error)
}

type moduleCatalogue interface {
	Module(ctx context.Context, semester, code string) (*dto.ModuleIndexesResponse, bool, error)
	Invalidate(ctx context.Context, semester string) error
}

// TimetableHandler exposes timetable generation, export and catalogue lookups.
type TimetableHandler struct {
	generator timetableGenerator
	exporter  timetableExporter
	catalogue moduleCatalogue
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(gen *service.TimetableGeneratorService, exporter *service.ExportService, catalogue *service.CatalogueService) *TimetableHandler {
	return &TimetableHandler{generator: gen, exporter: exporter, catalogue: catalogue}
}

// Generate godoc
// @Summary Generate ranked timetable combinations
// @Description Filters indexes by the preference profile, enumerates every clash-free combination and returns the best-scoring ones. Omitted filter fields keep their permissive defaults.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	req := dto.NewGenerateTimetableRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	internalmiddleware.SetMeta(c, "truncated", result.Truncated)
	response.JSON(c, http.StatusOK, result, internalmiddleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download one combination as CSV or PDF
// @Tags Timetables
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param payload body dto.ExportTimetableRequest true "Export payload"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /timetables/export [post]
func (h *TimetableHandler) Export(c *gin.Context) {
	var req dto.ExportTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	file, err := h.exporter.Render(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.ContentType, file.Filename, file.Body)
}

// ModuleIndexes godoc
// @Summary List the indexes of a module
// @Tags Catalogue
// @Produce json
// @Param code path string true "Module code"
// @Param semester query string true "Semester"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /modules/{code}/indexes [get]
func (h *TimetableHandler) ModuleIndexes(c *gin.Context) {
	semester := strings.TrimSpace(c.Query("semester"))
	if semester == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester query parameter is required"))
		return
	}
	module, cached, err := h.catalogue.Module(c.Request.Context(), semester, c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	internalmiddleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, module, internalmiddleware.ExtractMeta(c))
}

// InvalidateCatalogue godoc
// @Summary Drop cached catalogue entries for a semester
// @Tags Catalogue
// @Param semester path string true "Semester"
// @Success 204
// @Router /catalogue/{semester}/invalidate [post]
func (h *TimetableHandler) InvalidateCatalogue(c *gin.Context) {
	if err := h.catalogue.Invalidate(c.Request.Context(), c.Param("semester")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
