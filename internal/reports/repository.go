package reports

import (
	"context"
	"net/url"
	"time"

	"github.com/craftlink/artisan-registry-backend/database"
	"github.com/craftlink/artisan-registry-backend/internal/charts"
)

// directorySelect resolves every lookup id to its display name so the
// export is readable without the reference tables.
const directorySelect = `SELECT a.id AS id, a.name AS name, a.cnic AS cnic, a.gender AS gender,
 a.contact_no AS contact_no,
 COALESCE(cr.name, '') AS craft, COALESCE(c.name, '') AS category, COALESCE(t.name, '') AS skill,
 COALESCE(e.name, '') AS education, COALESCE(emp.name, '') AS employment_type,
 COALESCE(g.name, '') AS tehsil,
 a.avg_monthly_income AS avg_monthly_income, a.experience_years AS experience,
 a.created_at AS created_at
 FROM artisans a
 LEFT JOIN techniques t ON a.skill_id = t.id
 LEFT JOIN categories c ON t.category_id = c.id
 LEFT JOIN crafts cr ON c.craft_id = cr.id
 LEFT JOIN education_levels e ON a.education_id = e.id
 LEFT JOIN employment_types emp ON a.employment_type_id = emp.id
 LEFT JOIN geo_levels g ON a.tehsil_code = g.code
 WHERE a.is_active = true`

type Repository struct {
	store *database.Store
}

func NewRepository(store *database.Store) *Repository {
	return &Repository{store: store}
}

// ArtisanDirectory runs the directory query with the same filter whitelist
// the chart endpoints honor, plus an optional created_at range.
func (r *Repository) ArtisanDirectory(ctx context.Context, filters url.Values, from, to *time.Time) ([]ArtisanDirectoryRow, error) {
	query := directorySelect
	var args []interface{}
	query, args = charts.ApplyFilters(query, args, charts.ArtisanFilterDefs(), filters)

	if from != nil {
		query += " AND a.created_at >= ?"
		args = append(args, *from)
	}
	if to != nil {
		query += " AND a.created_at <= ?"
		args = append(args, *to)
	}
	query += " ORDER BY a.name"

	var rows []ArtisanDirectoryRow
	err := r.store.QueryAll(ctx, &rows, query, args...)
	return rows, err
}
