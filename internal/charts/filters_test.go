package charts

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyFilterCategorical(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantQuery string
		wantArgs  []interface{}
	}{
		{
			name:      "single value",
			raw:       "Lahore",
			wantQuery: "SELECT 1 AND g.name = ?",
			wantArgs:  []interface{}{"Lahore"},
		},
		{
			name:      "comma list builds IN with one placeholder per token",
			raw:       "Lahore, Multan,Sialkot",
			wantQuery: "SELECT 1 AND g.name IN (?, ?, ?)",
			wantArgs:  []interface{}{"Lahore", "Multan", "Sialkot"},
		},
		{
			name:      "empty tokens dropped",
			raw:       "Lahore,, ,Multan",
			wantQuery: "SELECT 1 AND g.name IN (?, ?)",
			wantArgs:  []interface{}{"Lahore", "Multan"},
		},
		{
			name:      "empty string is a no-op",
			raw:       "",
			wantQuery: "SELECT 1",
		},
		{
			name:      "Select sentinel is a no-op",
			raw:       "Select",
			wantQuery: "SELECT 1",
		},
		{
			name:      "Select token inside a list is dropped",
			raw:       "Select,Lahore",
			wantQuery: "SELECT 1 AND g.name = ?",
			wantArgs:  []interface{}{"Lahore"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := ApplyFilter("SELECT 1", nil, "g.name", tt.raw, Categorical)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestApplyFilterLowercasesColumn(t *testing.T) {
	query, args := ApplyFilter("SELECT 1", nil, "A.Gender", "Female", Categorical)
	assert.Equal(t, "SELECT 1 AND a.gender = ?", query)
	assert.Equal(t, []interface{}{"Female"}, args)
}

func TestApplyFilterNumerical(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantQuery string
		wantArgs  []interface{}
	}{
		{
			name:      "range becomes BETWEEN",
			raw:       "10-20",
			wantQuery: "SELECT 1 AND a.age BETWEEN ? AND ?",
			wantArgs:  []interface{}{10.0, 20.0},
		},
		{
			name:      "open-ended max",
			raw:       "10-",
			wantQuery: "SELECT 1 AND a.age >= ?",
			wantArgs:  []interface{}{10.0},
		},
		{
			name:      "open-ended min",
			raw:       "-20",
			wantQuery: "SELECT 1 AND a.age <= ?",
			wantArgs:  []interface{}{20.0},
		},
		{
			name:      "greater-than prefix",
			raw:       ">30",
			wantQuery: "SELECT 1 AND a.age > ?",
			wantArgs:  []interface{}{30.0},
		},
		{
			name:      "less-than prefix",
			raw:       "<5",
			wantQuery: "SELECT 1 AND a.age < ?",
			wantArgs:  []interface{}{5.0},
		},
		{
			name:      "exact value",
			raw:       "42",
			wantQuery: "SELECT 1 AND a.age = ?",
			wantArgs:  []interface{}{42.0},
		},
		{
			name:      "garbage range is a no-op",
			raw:       "abc-def",
			wantQuery: "SELECT 1",
		},
		{
			name:      "garbage prefix is a no-op",
			raw:       ">abc",
			wantQuery: "SELECT 1",
		},
		{
			name:      "plain garbage is a no-op",
			raw:       "abc",
			wantQuery: "SELECT 1",
		},
		{
			name:      "Select sentinel is a no-op",
			raw:       "Select",
			wantQuery: "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := ApplyFilter("SELECT 1", nil, "a.age", tt.raw, Numerical)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestApplyFiltersWhitelistOrder(t *testing.T) {
	defs := []FilterDef{
		{Key: "gender", Column: "a.gender", Kind: Categorical},
		{Key: "income", Column: "a.avg_monthly_income", Kind: Numerical},
	}

	values := url.Values{}
	values.Set("income", "10000-20000")
	values.Set("gender", "Female")
	values.Set("evil", "1; DROP TABLE artisans")

	query, args := ApplyFilters("SELECT 1", nil, defs, values)

	// Predicates follow whitelist order regardless of request order, and the
	// unlisted key never reaches the SQL.
	assert.Equal(t, "SELECT 1 AND a.gender = ? AND a.avg_monthly_income BETWEEN ? AND ?", query)
	assert.Equal(t, []interface{}{"Female", 10000.0, 20000.0}, args)
}

func TestApplyFiltersSkipsAbsentKeys(t *testing.T) {
	defs := []FilterDef{
		{Key: "gender", Column: "a.gender", Kind: Categorical},
	}
	query, args := ApplyFilters("SELECT 1", nil, defs, url.Values{})
	assert.Equal(t, "SELECT 1", query)
	assert.Nil(t, args)
}
