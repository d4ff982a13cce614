package charts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnknownChart means the requested report name is not registered.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrUnknownField means a yes/no distribution was requested for a field
	// outside the whitelist. Raised before any query executes.
	ErrUnknownField = errors.New("unknown yes/no field")
	// ErrUnknownGroupBy means the dynamic stacked chart got a groupBy outside
	// the skill|craft|category enum.
	ErrUnknownGroupBy = errors.New("groupBy must be one of skill, craft, category")
)

// Group expressions for the simple distributions. Keys double as chart names.
var groupExprs = map[string]string{
	"gender":       "a.gender",
	"education":    "e.name",
	"skill":        "t.name",
	"craft":        "cr.name",
	"category":     "c.name",
	"employment":   "emp.name",
	"tehsil":       "g.name",
	"district":     "(SELECT gd.name FROM geo_levels gd WHERE gd.code = left(a.tehsil_code, 6))",
	"division":     "(SELECT gd.name FROM geo_levels gd WHERE gd.code = left(a.tehsil_code, 3))",
	"raw-material": "a.raw_material",
}

// stackedGroupExprs constrains the dynamic /charts/stacked/:groupBy segment.
var stackedGroupExprs = map[string]string{
	"skill":    "t.name",
	"craft":    "cr.name",
	"category": "c.name",
}

// yesNoFields is the whitelist for YesNoDistribution. The flag columns store
// the literal strings "Yes"/"No".
var yesNoFields = map[string]string{
	"loan_status":          "a.loan_status",
	"has_machinery":        "a.has_machinery",
	"has_training":         "a.has_training",
	"inherited_skills":     "a.inherited_skills",
	"financial_assistance": "a.financial_assistance",
	"technical_assistance": "a.technical_assistance",
}

// Fixed binned distributions. A NULL source value fails every WHEN
// comparison and lands in the final ELSE bucket; that fallback is uniform
// across all four binned reports.
var binnedCharts = map[string]struct {
	caseExpr string
	order    []string
}{
	"age": {
		caseExpr: "CASE" +
			" WHEN date_part('year', age(a.date_of_birth)) <= 12 THEN '0-12'" +
			" WHEN date_part('year', age(a.date_of_birth)) <= 18 THEN '13-18'" +
			" WHEN date_part('year', age(a.date_of_birth)) <= 24 THEN '19-24'" +
			" WHEN date_part('year', age(a.date_of_birth)) <= 30 THEN '25-30'" +
			" WHEN date_part('year', age(a.date_of_birth)) <= 40 THEN '31-40'" +
			" WHEN date_part('year', age(a.date_of_birth)) <= 50 THEN '41-50'" +
			" WHEN date_part('year', age(a.date_of_birth)) <= 60 THEN '51-60'" +
			" ELSE '60+' END",
		order: []string{"0-12", "13-18", "19-24", "25-30", "31-40", "41-50", "51-60", "60+"},
	},
	"income": {
		caseExpr: "CASE" +
			" WHEN a.avg_monthly_income <= 10000 THEN '0-10000'" +
			" WHEN a.avg_monthly_income <= 20000 THEN '10001-20000'" +
			" WHEN a.avg_monthly_income <= 30000 THEN '20001-30000'" +
			" WHEN a.avg_monthly_income <= 50000 THEN '30001-50000'" +
			" ELSE '50000+' END",
		order: []string{"0-10000", "10001-20000", "20001-30000", "30001-50000", "50000+"},
	},
	// Experience bins are deliberately explicit: 0-2, 3-4 (>2 and <=4),
	// 5-10, 11-20, 20+.
	"experience": {
		caseExpr: "CASE" +
			" WHEN a.experience_years <= 2 THEN '0-2'" +
			" WHEN a.experience_years <= 4 THEN '3-4'" +
			" WHEN a.experience_years <= 10 THEN '5-10'" +
			" WHEN a.experience_years <= 20 THEN '11-20'" +
			" ELSE '20+' END",
		order: []string{"0-2", "3-4", "5-10", "11-20", "20+"},
	},
	"dependents": {
		caseExpr: "CASE" +
			" WHEN a.dependents_count <= 0 THEN '0'" +
			" WHEN a.dependents_count <= 3 THEN '1-3'" +
			" WHEN a.dependents_count <= 6 THEN '4-6'" +
			" ELSE '7+' END",
		order: []string{"0", "1-3", "4-6", "7+"},
	},
}

// yes/no chart names to their whitelisted field.
var yesNoCharts = map[string]string{
	"loan-status":          "loan_status",
	"machinery":            "has_machinery",
	"training":             "has_training",
	"inherited-skills":     "inherited_skills",
	"financial-assistance": "financial_assistance",
	"technical-assistance": "technical_assistance",
}

type Service interface {
	Chart(ctx context.Context, name string, filters url.Values) (interface{}, error)
	Stacked(ctx context.Context, groupBy string, filters url.Values) ([]StackedRow, error)
	YesNoDistribution(ctx context.Context, field string, filters url.Values) ([]NameValue, error)
	All(ctx context.Context, filters url.Values) (map[string]interface{}, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Chart dispatches a report by name through the registry.
func (s *service) Chart(ctx context.Context, name string, filters url.Values) (interface{}, error) {
	if expr, ok := groupExprs[name]; ok {
		limit := 0
		if name == "raw-material" {
			limit = 10
		}
		rows, err := s.repo.GroupedCount(ctx, expr, filters, limit)
		if err != nil {
			return nil, err
		}
		return toNameValues(rows, nil), nil
	}

	if def, ok := binnedCharts[name]; ok {
		rows, err := s.repo.GroupedCount(ctx, def.caseExpr, filters, 0)
		if err != nil {
			return nil, err
		}
		return toNameValues(rows, def.order), nil
	}

	if field, ok := yesNoCharts[name]; ok {
		return s.YesNoDistribution(ctx, field, filters)
	}

	switch name {
	case "gender-by-division":
		return s.stackedByExprs(ctx, groupExprs["division"], "a.gender", filters)
	case "monthly-registrations", "cumulative-registrations":
		rows, err := s.repo.MonthlyRegistrations(ctx, filters)
		if err != nil {
			return nil, err
		}
		return toCumulativeSeries(rows), nil
	case "experience-vs-income":
		rows, err := s.repo.ExperienceVsIncome(ctx, filters)
		if err != nil {
			return nil, err
		}
		return toScatterPoints(rows), nil
	case "geo-points":
		rows, err := s.repo.GeoPoints(ctx, filters)
		if err != nil {
			return nil, err
		}
		return toGeoPoints(rows), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownChart, name)
}

// Stacked is the dynamic cross-tab: groupBy (skill|craft|category) by gender.
func (s *service) Stacked(ctx context.Context, groupBy string, filters url.Values) ([]StackedRow, error) {
	expr, ok := stackedGroupExprs[groupBy]
	if !ok {
		return nil, ErrUnknownGroupBy
	}
	return s.stackedByExprs(ctx, expr, "a.gender", filters)
}

// YesNoDistribution validates the field against the whitelist before any
// query executes.
func (s *service) YesNoDistribution(ctx context.Context, field string, filters url.Values) ([]NameValue, error) {
	column, ok := yesNoFields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	rows, err := s.repo.GroupedCount(ctx, column, filters, 0)
	if err != nil {
		return nil, err
	}
	return toNameValues(rows, []string{"Yes", "No"}), nil
}

// All fans out to every registered report concurrently and merges the
// results keyed by report name. One failing sub-query fails the whole
// request; no partial results.
func (s *service) All(ctx context.Context, filters url.Values) (map[string]interface{}, error) {
	names := make([]string, 0, len(groupExprs)+len(binnedCharts)+len(yesNoCharts)+4)
	for name := range groupExprs {
		names = append(names, name)
	}
	for name := range binnedCharts {
		names = append(names, name)
	}
	for name := range yesNoCharts {
		names = append(names, name)
	}
	names = append(names, "gender-by-division", "cumulative-registrations", "experience-vs-income", "geo-points")

	results := make(map[string]interface{}, len(names))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			data, err := s.Chart(gctx, name, filters)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			mu.Lock()
			results[name] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *service) stackedByExprs(ctx context.Context, primaryExpr, secondaryExpr string, filters url.Values) ([]StackedRow, error) {
	rows, err := s.repo.StackedCount(ctx, primaryExpr, secondaryExpr, filters)
	if err != nil {
		return nil, err
	}
	return toStackedRows(rows), nil
}

// ======================
// Reshapers
// ======================

// toNameValues title-cases bucket labels, maps NULL/empty labels to
// "Unknown" and NULL counts to 0. When order is given, buckets come back in
// that sequence with stragglers appended.
func toNameValues(rows []labelCountRow, order []string) []NameValue {
	out := make([]NameValue, 0, len(rows))
	for _, row := range rows {
		out = append(out, NameValue{
			Name:  cleanLabel(row.Label),
			Value: coalesceCount(row.Total),
		})
	}
	if len(order) == 0 {
		return out
	}

	rank := make(map[string]int, len(order))
	for i, label := range order {
		rank[titleCase(label)] = i
	}
	ordered := make([]NameValue, 0, len(out))
	for _, label := range order {
		for _, nv := range out {
			if nv.Name == titleCase(label) {
				ordered = append(ordered, nv)
			}
		}
	}
	for _, nv := range out {
		if _, ok := rank[nv.Name]; !ok {
			ordered = append(ordered, nv)
		}
	}
	return ordered
}

// toStackedRows pivots flat (primary, secondary, count) rows into one object
// per primary bucket. The secondary key set is whatever the filtered result
// set actually contains, not a fixed enum; missing cells are 0.
func toStackedRows(rows []stackedCountRow) []StackedRow {
	var primaries []string
	var secondaries []string
	seenPrimary := map[string]bool{}
	seenSecondary := map[string]bool{}
	cells := map[string]map[string]int64{}

	for _, row := range rows {
		p := cleanLabel(row.Primary)
		sec := cleanLabel(row.Secondary)
		if !seenPrimary[p] {
			seenPrimary[p] = true
			primaries = append(primaries, p)
			cells[p] = map[string]int64{}
		}
		if !seenSecondary[sec] {
			seenSecondary[sec] = true
			secondaries = append(secondaries, sec)
		}
		cells[p][sec] += coalesceCount(row.Total)
	}

	out := make([]StackedRow, 0, len(primaries))
	for _, p := range primaries {
		row := StackedRow{"name": p}
		for _, sec := range secondaries {
			row[sec] = cells[p][sec]
		}
		out = append(out, row)
	}
	return out
}

// toCumulativeSeries carries a running total forward in period order.
func toCumulativeSeries(rows []periodCountRow) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(rows))
	var running int64
	for _, row := range rows {
		running += row.Total
		out = append(out, SeriesPoint{Period: row.Period, Count: row.Total, Total: running})
	}
	return out
}

func toScatterPoints(rows []scatterRow) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, ScatterPoint{
			Name:       cleanLabel(row.Name),
			Experience: coalesceFloat(row.Experience),
			Income:     coalesceFloat(row.Income),
		})
	}
	return out
}

func toGeoPoints(rows []geoPointRow) []GeoPoint {
	out := make([]GeoPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, GeoPoint{
			Name:      cleanLabel(row.Name),
			Latitude:  coalesceFloat(row.Latitude),
			Longitude: coalesceFloat(row.Longitude),
		})
	}
	return out
}

func cleanLabel(label *string) string {
	if label == nil || strings.TrimSpace(*label) == "" {
		return "Unknown"
	}
	return titleCase(strings.TrimSpace(*label))
}

// titleCase uppercases the first letter of each space-separated word and
// leaves the rest of the word untouched (so "60+" and "NGO" survive).
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func coalesceCount(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}

func coalesceFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
