package charts

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func intPtr(n int64) *int64     { return &n }
func fltPtr(f float64) *float64 { return &f }

type fakeRepo struct {
	grouped     []labelCountRow
	groupedExpr string
	stacked     []stackedCountRow
	monthly     []periodCountRow
	scatter     []scatterRow
	geo         []geoPointRow
	err         error
}

func (f *fakeRepo) GroupedCount(ctx context.Context, groupExpr string, filters url.Values, limit int) ([]labelCountRow, error) {
	f.groupedExpr = groupExpr
	return f.grouped, f.err
}

func (f *fakeRepo) StackedCount(ctx context.Context, primaryExpr, secondaryExpr string, filters url.Values) ([]stackedCountRow, error) {
	return f.stacked, f.err
}

func (f *fakeRepo) MonthlyRegistrations(ctx context.Context, filters url.Values) ([]periodCountRow, error) {
	return f.monthly, f.err
}

func (f *fakeRepo) ExperienceVsIncome(ctx context.Context, filters url.Values) ([]scatterRow, error) {
	return f.scatter, f.err
}

func (f *fakeRepo) GeoPoints(ctx context.Context, filters url.Values) ([]geoPointRow, error) {
	return f.geo, f.err
}

func TestChartUnknownName(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.Chart(context.Background(), "nope", url.Values{})
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestChartGenderDistribution(t *testing.T) {
	repo := &fakeRepo{grouped: []labelCountRow{
		{Label: strPtr("female"), Total: intPtr(12)},
		{Label: nil, Total: intPtr(3)},
		{Label: strPtr("male"), Total: nil},
	}}
	svc := NewService(repo)

	data, err := svc.Chart(context.Background(), "gender", url.Values{})
	require.NoError(t, err)

	assert.Equal(t, []NameValue{
		{Name: "Female", Value: 12},
		{Name: "Unknown", Value: 3},
		{Name: "Male", Value: 0},
	}, data)
	assert.Equal(t, "a.gender", repo.groupedExpr)
}

func TestChartBinnedOrderPreserved(t *testing.T) {
	// Rows arrive count-sorted; the reshaped output must follow bucket order.
	repo := &fakeRepo{grouped: []labelCountRow{
		{Label: strPtr("5-10"), Total: intPtr(40)},
		{Label: strPtr("0-2"), Total: intPtr(25)},
		{Label: strPtr("20+"), Total: intPtr(5)},
	}}
	svc := NewService(repo)

	data, err := svc.Chart(context.Background(), "experience", url.Values{})
	require.NoError(t, err)

	assert.Equal(t, []NameValue{
		{Name: "0-2", Value: 25},
		{Name: "5-10", Value: 40},
		{Name: "20+", Value: 5},
	}, data)
}

func TestYesNoDistributionRejectsUnknownField(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.YesNoDistribution(context.Background(), "password_hash", url.Values{})
	assert.ErrorIs(t, err, ErrUnknownField)
	// The whitelist check fires before any query.
	assert.Empty(t, repo.groupedExpr)
}

func TestStackedRejectsUnknownGroupBy(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.Stacked(context.Background(), "gender", url.Values{})
	assert.ErrorIs(t, err, ErrUnknownGroupBy)
}

func TestStackedPivot(t *testing.T) {
	repo := &fakeRepo{stacked: []stackedCountRow{
		{Primary: strPtr("weaving"), Secondary: strPtr("Female"), Total: intPtr(7)},
		{Primary: strPtr("weaving"), Secondary: strPtr("Male"), Total: intPtr(2)},
		{Primary: strPtr("pottery"), Secondary: strPtr("Female"), Total: intPtr(4)},
	}}
	svc := NewService(repo)

	rows, err := svc.Stacked(context.Background(), "skill", url.Values{})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, StackedRow{"name": "Weaving", "Female": int64(7), "Male": int64(2)}, rows[0])
	// Missing cells are zero-filled, not absent.
	assert.Equal(t, StackedRow{"name": "Pottery", "Female": int64(4), "Male": int64(0)}, rows[1])
}

func TestCumulativeSeries(t *testing.T) {
	repo := &fakeRepo{monthly: []periodCountRow{
		{Period: "2024-01", Total: 2},
		{Period: "2024-02", Total: 3},
		{Period: "2024-03", Total: 1},
	}}
	svc := NewService(repo)

	data, err := svc.Chart(context.Background(), "cumulative-registrations", url.Values{})
	require.NoError(t, err)

	assert.Equal(t, []SeriesPoint{
		{Period: "2024-01", Count: 2, Total: 2},
		{Period: "2024-02", Count: 3, Total: 5},
		{Period: "2024-03", Count: 1, Total: 6},
	}, data)
}

func TestScatterCoalescesNulls(t *testing.T) {
	repo := &fakeRepo{scatter: []scatterRow{
		{Name: strPtr("Amina"), Experience: fltPtr(4), Income: nil},
	}}
	svc := NewService(repo)

	data, err := svc.Chart(context.Background(), "experience-vs-income", url.Values{})
	require.NoError(t, err)

	assert.Equal(t, []ScatterPoint{{Name: "Amina", Experience: 4, Income: 0}}, data)
}

func TestAllIsAllOrNothing(t *testing.T) {
	repo := &fakeRepo{err: assert.AnError}
	svc := NewService(repo)

	results, err := svc.All(context.Background(), url.Values{})
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestAllMergesEveryChart(t *testing.T) {
	repo := &fakeRepo{
		grouped: []labelCountRow{{Label: strPtr("x"), Total: intPtr(1)}},
		stacked: []stackedCountRow{},
		monthly: []periodCountRow{},
		scatter: []scatterRow{},
		geo:     []geoPointRow{},
	}
	svc := NewService(repo)

	results, err := svc.All(context.Background(), url.Values{})
	require.NoError(t, err)

	want := len(groupExprs) + len(binnedCharts) + len(yesNoCharts) + 4
	assert.Len(t, results, want)
	assert.Contains(t, results, "gender")
	assert.Contains(t, results, "geo-points")
	assert.Contains(t, results, "cumulative-registrations")
}

func TestTitleCaseKeepsNonLetters(t *testing.T) {
	assert.Equal(t, "60+", titleCase("60+"))
	assert.Equal(t, "Hand Loom", titleCase("hand loom"))
	assert.Equal(t, "NGO", titleCase("NGO"))
}
