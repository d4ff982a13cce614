package lookup

// Craft -> Category -> Technique is the three-level skill hierarchy an
// artisan's skill_id resolves through.
type Craft struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
}

type Category struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	CraftID uint   `gorm:"not null;index" json:"craft_id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
}

type Technique struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CategoryID uint   `gorm:"not null;index" json:"category_id"`
	Name       string `gorm:"type:varchar(255);not null" json:"name"`
}

type EducationLevel struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
}

type EmploymentType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
}

// GeoLevel encodes the division/district/tehsil hierarchy through shared
// code prefixes: a district code starts with its division's code, a tehsil
// code with its district's.
type GeoLevel struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Code  string `gorm:"type:varchar(12);not null;uniqueIndex" json:"code"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Level string `gorm:"type:varchar(20);not null;index" json:"level"` // division / district / tehsil
}
