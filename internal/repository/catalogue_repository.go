package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/starsplanner/planner-api/internal/models"
)

// CatalogueRepository reads module, index and class session data.
type CatalogueRepository struct {
	db *sqlx.DB
}

// NewCatalogueRepository builds the repository.
func NewCatalogueRepository(db *sqlx.DB) *CatalogueRepository {
	return &CatalogueRepository{db: db}
}

// FindModule returns a module offered in the semester. sql.ErrNoRows is returned untouched.
func (r *CatalogueRepository) FindModule(ctx context.Context, semester, code string) (*models.CatalogueModule, error) {
	const query = `SELECT code, title, credits, semester FROM modules WHERE semester = $1 AND code = $2`
	var module models.CatalogueModule
	if err := r.db.GetContext(ctx, &module, query, semester, code); err != nil {
		return nil, err
	}
	return &module, nil
}

// ListSessions returns every class session of every index of the given modules,
// ordered by module, index and weekday so callers can group rows in one pass.
func (r *CatalogueRepository) ListSessions(ctx context.Context, semester string, codes []string) ([]models.ClassSessionRow, error) {
	if len(codes) == 0 {
		return []models.ClassSessionRow{}, nil
	}
	const query = `SELECT i.module_code, i.index_number, c.class_type, c.class_group, c.day, c.start_time, c.end_time, c.venue, c.weeks
FROM module_indexes i
JOIN class_sessions c ON c.index_id = i.id
WHERE i.semester = $1 AND i.module_code = ANY($2)
ORDER BY i.module_code ASC, i.index_number ASC, c.day_order ASC, c.start_time ASC`
	var rows []models.ClassSessionRow
	if err := r.db.SelectContext(ctx, &rows, query, semester, pq.Array(codes)); err != nil {
		return nil, fmt.Errorf("list class sessions: %w", err)
	}
	return rows, nil
}
