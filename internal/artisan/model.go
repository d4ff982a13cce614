package artisan

import (
	"time"
)

// Artisan is the primary registry record: one craftsperson profile.
// Child collections are omitted from the JSON entirely when empty, so
// callers must tolerate the keys being absent.
type Artisan struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name"`
	FatherName       string     `gorm:"type:varchar(255)" json:"father_name"`
	CNIC             string     `gorm:"type:varchar(20);index" json:"cnic"`
	Gender           string     `gorm:"type:varchar(20);index" json:"gender"` // Male / Female / Transgender
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	ContactNo        string     `gorm:"type:varchar(20)" json:"contact_no"`
	Address          string     `gorm:"type:text" json:"address"`
	TehsilCode       string     `gorm:"type:varchar(12);index" json:"tehsil_code"`
	SkillID          *uint      `gorm:"index" json:"skill_id"`
	EducationID      *uint      `json:"education_id"`
	EmploymentTypeID *uint      `json:"employment_type_id"`
	RawMaterial      string     `gorm:"type:varchar(255)" json:"raw_material"`
	AvgMonthlyIncome *float64   `json:"avg_monthly_income"`
	ExperienceYears  *int       `json:"experience_years"`
	DependentsCount  *int       `json:"dependents_count"`

	// Flag columns store literal "Yes"/"No" so chart group-bys read naturally.
	LoanStatus          string `gorm:"type:varchar(5);default:No" json:"loan_status"`
	HasMachinery        string `gorm:"type:varchar(5);default:No" json:"has_machinery"`
	HasTraining         string `gorm:"type:varchar(5);default:No" json:"has_training"`
	InheritedSkills     string `gorm:"type:varchar(5);default:No" json:"inherited_skills"`
	FinancialAssistance string `gorm:"type:varchar(5);default:No" json:"financial_assistance"`
	TechnicalAssistance string `gorm:"type:varchar(5);default:No" json:"technical_assistance"`

	Comments  string   `gorm:"type:text" json:"comments"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Trainings     []Training     `gorm:"foreignKey:ArtisanID" json:"trainings,omitempty"`
	Loans         []Loan         `gorm:"foreignKey:ArtisanID" json:"loans,omitempty"`
	Machines      []Machine      `gorm:"foreignKey:ArtisanID" json:"machines,omitempty"`
	ProductImages []ProductImage `gorm:"foreignKey:ArtisanID" json:"product_images,omitempty"`
	ShopImages    []ShopImage    `gorm:"foreignKey:ArtisanID" json:"shop_images,omitempty"`
}

type Training struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ArtisanID    uint   `gorm:"not null;index" json:"artisan_id"`
	Title        string `gorm:"type:varchar(255);not null" json:"title"`
	Duration     string `gorm:"type:varchar(100)" json:"duration"`
	Organization string `gorm:"type:varchar(255)" json:"organization"`
}

type Loan struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ArtisanID uint       `gorm:"not null;index" json:"artisan_id"`
	Amount    float64    `json:"amount"`
	Date      *time.Time `json:"date,omitempty"`
	LoanType  string     `gorm:"type:varchar(100)" json:"loan_type"`
	Lender    string     `gorm:"type:varchar(255)" json:"lender"`
}

type Machine struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ArtisanID uint   `gorm:"not null;index" json:"artisan_id"`
	Title     string `gorm:"type:varchar(255);not null" json:"title"`
	Size      string `gorm:"type:varchar(100)" json:"size"`
	Count     int    `gorm:"default:1" json:"count"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ArtisanID uint   `gorm:"not null;index" json:"artisan_id"`
	Path      string `gorm:"type:varchar(500);not null" json:"path"`
}

type ShopImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ArtisanID uint   `gorm:"not null;index" json:"artisan_id"`
	Path      string `gorm:"type:varchar(500);not null" json:"path"`
}

// ======================
// Request payloads
// ======================

type TrainingPayload struct {
	Title        string `json:"title" binding:"required"`
	Duration     string `json:"duration"`
	Organization string `json:"organization"`
}

type LoanPayload struct {
	Amount   float64 `json:"amount" binding:"required"`
	Date     string  `json:"date"` // "2006-01-02"
	LoanType string  `json:"loan_type"`
	Lender   string  `json:"lender"`
}

type MachinePayload struct {
	Title string `json:"title" binding:"required"`
	Size  string `json:"size"`
	Count int    `json:"count"`
}

// ArtisanPayload is the top-level create/update body. On update the provided
// sections overwrite the whole record and child lists are fully replaced.
type ArtisanPayload struct {
	Name             string   `json:"name" binding:"required"`
	FatherName       string   `json:"father_name"`
	CNIC             string   `json:"cnic" binding:"required"`
	Gender           string   `json:"gender" binding:"required,oneof=Male Female Transgender"`
	DateOfBirth      string   `json:"date_of_birth"` // "2006-01-02"
	ContactNo        string   `json:"contact_no"`
	Address          string   `json:"address"`
	TehsilCode       string   `json:"tehsil_code"`
	SkillID          *uint    `json:"skill_id"`
	EducationID      *uint    `json:"education_id"`
	EmploymentTypeID *uint    `json:"employment_type_id"`
	RawMaterial      string   `json:"raw_material"`
	AvgMonthlyIncome *float64 `json:"avg_monthly_income"`
	ExperienceYears  *int     `json:"experience_years"`
	DependentsCount  *int     `json:"dependents_count"`

	LoanStatus          string `json:"loan_status"`
	HasMachinery        string `json:"has_machinery"`
	HasTraining         string `json:"has_training"`
	InheritedSkills     string `json:"inherited_skills"`
	FinancialAssistance string `json:"financial_assistance"`
	TechnicalAssistance string `json:"technical_assistance"`

	Comments  string   `json:"comments"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Trainings []TrainingPayload `json:"trainings"`
	Loans     []LoanPayload     `json:"loans"`
	Machines  []MachinePayload  `json:"machines"`
}
