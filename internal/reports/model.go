package reports

import "time"

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ArtisanDirectoryRow is one line of the exported artisan directory,
// with the lookup ids already resolved to names.
type ArtisanDirectoryRow struct {
	ID               uint      `gorm:"column:id"`
	Name             string    `gorm:"column:name"`
	CNIC             string    `gorm:"column:cnic"`
	Gender           string    `gorm:"column:gender"`
	ContactNo        string    `gorm:"column:contact_no"`
	Craft            string    `gorm:"column:craft"`
	Category         string    `gorm:"column:category"`
	Skill            string    `gorm:"column:skill"`
	Education        string    `gorm:"column:education"`
	EmploymentType   string    `gorm:"column:employment_type"`
	Tehsil           string    `gorm:"column:tehsil"`
	AvgMonthlyIncome float64   `gorm:"column:avg_monthly_income"`
	Experience       float64   `gorm:"column:experience"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}
