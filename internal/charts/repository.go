package charts

import (
	"context"
	"net/url"

	"github.com/craftlink/artisan-registry-backend/database"
)

// baseFrom is the join spine every chart query runs over. Soft-deleted
// artisans never reach a chart; dangling skill references survive the LEFT
// JOINs as NULL groups and surface as "Unknown" after reshaping.
const baseFrom = ` FROM artisans a
 LEFT JOIN techniques t ON a.skill_id = t.id
 LEFT JOIN categories c ON t.category_id = c.id
 LEFT JOIN crafts cr ON c.craft_id = cr.id
 LEFT JOIN education_levels e ON a.education_id = e.id
 LEFT JOIN employment_types emp ON a.employment_type_id = emp.id
 LEFT JOIN geo_levels g ON a.tehsil_code = g.code
 WHERE a.is_active = true`

// artisanFilters is the whitelist of request-facing filter keys. The order
// is fixed so identical requests always produce identical SQL.
var artisanFilters = []FilterDef{
	{Key: "division", Column: "left(a.tehsil_code, 3)", Kind: Categorical},
	{Key: "district", Column: "left(a.tehsil_code, 6)", Kind: Categorical},
	{Key: "tehsil", Column: "a.tehsil_code", Kind: Categorical},
	{Key: "gender", Column: "a.gender", Kind: Categorical},
	{Key: "craft", Column: "cr.name", Kind: Categorical},
	{Key: "category", Column: "c.name", Kind: Categorical},
	{Key: "skill", Column: "t.name", Kind: Categorical},
	{Key: "education", Column: "e.name", Kind: Categorical},
	{Key: "employment_type", Column: "emp.name", Kind: Categorical},
	{Key: "loan_status", Column: "a.loan_status", Kind: Categorical},
	{Key: "has_machinery", Column: "a.has_machinery", Kind: Categorical},
	{Key: "has_training", Column: "a.has_training", Kind: Categorical},
	{Key: "inherited_skills", Column: "a.inherited_skills", Kind: Categorical},
	{Key: "raw_material", Column: "a.raw_material", Kind: Categorical},
	{Key: "income", Column: "a.avg_monthly_income", Kind: Numerical},
	{Key: "experience", Column: "a.experience_years", Kind: Numerical},
	{Key: "age", Column: "date_part('year', age(a.date_of_birth))", Kind: Numerical},
	{Key: "dependents", Column: "a.dependents_count", Kind: Numerical},
}

// ArtisanFilterDefs exposes the shared whitelist to other read-only query
// paths, such as the directory export.
func ArtisanFilterDefs() []FilterDef {
	return artisanFilters
}

type Repository interface {
	GroupedCount(ctx context.Context, groupExpr string, filters url.Values, limit int) ([]labelCountRow, error)
	StackedCount(ctx context.Context, primaryExpr, secondaryExpr string, filters url.Values) ([]stackedCountRow, error)
	MonthlyRegistrations(ctx context.Context, filters url.Values) ([]periodCountRow, error)
	ExperienceVsIncome(ctx context.Context, filters url.Values) ([]scatterRow, error)
	GeoPoints(ctx context.Context, filters url.Values) ([]geoPointRow, error)
}

type repository struct {
	store *database.Store
}

func NewRepository(store *database.Store) Repository {
	return &repository{store: store}
}

// GroupedCount counts artisans per bucket of groupExpr. A limit of 0 means
// no LIMIT clause.
func (r *repository) GroupedCount(ctx context.Context, groupExpr string, filters url.Values, limit int) ([]labelCountRow, error) {
	query := "SELECT " + groupExpr + " AS label, COUNT(*) AS total" + baseFrom
	var args []interface{}
	query, args = ApplyFilters(query, args, artisanFilters, filters)
	query += " GROUP BY 1 ORDER BY total DESC, label ASC"

	var rows []labelCountRow
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	err := r.store.QueryAll(ctx, &rows, query, args...)
	return rows, err
}

func (r *repository) StackedCount(ctx context.Context, primaryExpr, secondaryExpr string, filters url.Values) ([]stackedCountRow, error) {
	query := "SELECT " + primaryExpr + " AS primary_label, " + secondaryExpr + " AS secondary_label, COUNT(*) AS total" + baseFrom
	var args []interface{}
	query, args = ApplyFilters(query, args, artisanFilters, filters)
	query += " GROUP BY 1, 2 ORDER BY 1, 2"

	var rows []stackedCountRow
	err := r.store.QueryAll(ctx, &rows, query, args...)
	return rows, err
}

func (r *repository) MonthlyRegistrations(ctx context.Context, filters url.Values) ([]periodCountRow, error) {
	query := "SELECT to_char(a.created_at, 'YYYY-MM') AS period, COUNT(*) AS total" + baseFrom
	var args []interface{}
	query, args = ApplyFilters(query, args, artisanFilters, filters)
	query += " GROUP BY 1 ORDER BY 1"

	var rows []periodCountRow
	err := r.store.QueryAll(ctx, &rows, query, args...)
	return rows, err
}

func (r *repository) ExperienceVsIncome(ctx context.Context, filters url.Values) ([]scatterRow, error) {
	query := "SELECT a.name AS name, a.experience_years AS experience, a.avg_monthly_income AS income" + baseFrom
	var args []interface{}
	query, args = ApplyFilters(query, args, artisanFilters, filters)

	var rows []scatterRow
	err := r.store.QueryAll(ctx, &rows, query, args...)
	return rows, err
}

func (r *repository) GeoPoints(ctx context.Context, filters url.Values) ([]geoPointRow, error) {
	query := "SELECT a.name AS name, a.latitude AS latitude, a.longitude AS longitude" + baseFrom +
		" AND a.latitude IS NOT NULL AND a.longitude IS NOT NULL"
	var args []interface{}
	query, args = ApplyFilters(query, args, artisanFilters, filters)

	var rows []geoPointRow
	err := r.store.QueryAll(ctx, &rows, query, args...)
	return rows, err
}
