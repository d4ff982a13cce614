package charts

// NameValue is the shape simple distribution charts consume.
type NameValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// SeriesPoint is one period of the registration time series.
type SeriesPoint struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
	Total  int64  `json:"total"` // running total, monotonically non-decreasing
}

// ScatterPoint is one experience-vs-income tuple.
type ScatterPoint struct {
	Name       string  `json:"name"`
	Experience float64 `json:"experience"`
	Income     float64 `json:"income"`
}

// GeoPoint is one artisan location for the map view.
type GeoPoint struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StackedRow is a pivoted cross-tab row: "name" carries the primary bucket,
// every other key is one observed secondary value.
type StackedRow map[string]interface{}

// Flat scan targets. Labels and measures are pointers because LEFT JOINs
// produce NULL groups for dangling references.
type labelCountRow struct {
	Label *string `gorm:"column:label"`
	Total *int64  `gorm:"column:total"`
}

type stackedCountRow struct {
	Primary   *string `gorm:"column:primary_label"`
	Secondary *string `gorm:"column:secondary_label"`
	Total     *int64  `gorm:"column:total"`
}

type periodCountRow struct {
	Period string `gorm:"column:period"`
	Total  int64  `gorm:"column:total"`
}

type scatterRow struct {
	Name       *string  `gorm:"column:name"`
	Experience *float64 `gorm:"column:experience"`
	Income     *float64 `gorm:"column:income"`
}

type geoPointRow struct {
	Name      *string  `gorm:"column:name"`
	Latitude  *float64 `gorm:"column:latitude"`
	Longitude *float64 `gorm:"column:longitude"`
}
