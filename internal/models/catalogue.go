package models

// CatalogueModule is a module offered in a semester.
type CatalogueModule struct {
	Code     string  `db:"code" json:"code"`
	Title    string  `db:"title" json:"title"`
	Credits  float64 `db:"credits" json:"credits"`
	Semester string  `db:"semester" json:"semester"`
}

// ClassSessionRow is one class session joined with its index and module.
type ClassSessionRow struct {
	ModuleCode  string `db:"module_code" json:"module_code"`
	IndexNumber string `db:"index_number" json:"index_number"`
	ClassType   string `db:"class_type" json:"class_type"`
	ClassGroup  string `db:"class_group" json:"class_group"`
	Day         string `db:"day" json:"day"`
	StartTime   string `db:"start_time" json:"start_time"`
	EndTime     string `db:"end_time" json:"end_time"`
	Venue       string `db:"venue" json:"venue"`
	// Weeks holds the teaching weeks as published, e.g. "1-6,8,10-13" or
	// "Teaching Wk2,4,6". Empty means every week.
	Weeks string `db:"weeks" json:"weeks"`
}

// SystemMetrics is a lightweight runtime snapshot for the metrics summary endpoint.
type SystemMetrics struct {
	CacheHitRatio            float64 `json:"cache_hit_ratio"`
	CacheHits                uint64  `json:"cache_hits"`
	CacheMisses              uint64  `json:"cache_misses"`
	RequestsTotal            uint64  `json:"requests_total"`
	AverageRequestDurationMs float64 `json:"average_request_duration_ms"`
	DBQueryCount             uint64  `json:"db_query_count"`
	AverageDBQueryDurationMs float64 `json:"average_db_query_duration_ms"`
	GenerationsTotal         uint64  `json:"generations_total"`
	GenerationsTruncated     uint64  `json:"generations_truncated"`
	Goroutines               int     `json:"goroutines"`
	GeneratedAt              string  `json:"generated_at"`
}
