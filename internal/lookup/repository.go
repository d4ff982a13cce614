package lookup

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ======================
// Skill hierarchy
// ======================

func (r *Repository) ListCrafts(ctx context.Context) ([]Craft, error) {
	var out []Craft
	err := r.DB.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *Repository) CreateCraft(ctx context.Context, row *Craft) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

func (r *Repository) UpdateCraft(ctx context.Context, row *Craft) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&Craft{}).Where("id = ?", row.ID).Update("name", row.Name)
	return res.RowsAffected, res.Error
}

func (r *Repository) DeleteCraft(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&Craft{}, id)
	return res.RowsAffected, res.Error
}

// ListCategories optionally scopes to one craft.
func (r *Repository) ListCategories(ctx context.Context, craftID uint) ([]Category, error) {
	query := r.DB.WithContext(ctx).Order("name")
	if craftID > 0 {
		query = query.Where("craft_id = ?", craftID)
	}
	var out []Category
	err := query.Find(&out).Error
	return out, err
}

func (r *Repository) CreateCategory(ctx context.Context, row *Category) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

func (r *Repository) UpdateCategory(ctx context.Context, row *Category) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&Category{}).Where("id = ?", row.ID).
		Updates(map[string]interface{}{"name": row.Name, "craft_id": row.CraftID})
	return res.RowsAffected, res.Error
}

func (r *Repository) DeleteCategory(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&Category{}, id)
	return res.RowsAffected, res.Error
}

// ListTechniques optionally scopes to one category.
func (r *Repository) ListTechniques(ctx context.Context, categoryID uint) ([]Technique, error) {
	query := r.DB.WithContext(ctx).Order("name")
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	var out []Technique
	err := query.Find(&out).Error
	return out, err
}

func (r *Repository) CreateTechnique(ctx context.Context, row *Technique) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

func (r *Repository) UpdateTechnique(ctx context.Context, row *Technique) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&Technique{}).Where("id = ?", row.ID).
		Updates(map[string]interface{}{"name": row.Name, "category_id": row.CategoryID})
	return res.RowsAffected, res.Error
}

func (r *Repository) DeleteTechnique(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&Technique{}, id)
	return res.RowsAffected, res.Error
}

// ======================
// Flat lookups
// ======================

func (r *Repository) ListEducationLevels(ctx context.Context) ([]EducationLevel, error) {
	var out []EducationLevel
	err := r.DB.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *Repository) CreateEducationLevel(ctx context.Context, row *EducationLevel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

func (r *Repository) ListEmploymentTypes(ctx context.Context) ([]EmploymentType, error) {
	var out []EmploymentType
	err := r.DB.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *Repository) CreateEmploymentType(ctx context.Context, row *EmploymentType) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

// ======================
// Geo hierarchy
// ======================

// ListGeoLevels filters by level and/or parent code prefix, so
// ?level=tehsil&parent=012003 returns the tehsils of one district.
func (r *Repository) ListGeoLevels(ctx context.Context, level, parentCode string) ([]GeoLevel, error) {
	query := r.DB.WithContext(ctx).Order("code")
	if level != "" {
		query = query.Where("level = ?", strings.ToLower(level))
	}
	if parentCode != "" {
		query = query.Where("code LIKE ?", parentCode+"%")
	}
	var out []GeoLevel
	err := query.Find(&out).Error
	return out, err
}

func (r *Repository) CreateGeoLevel(ctx context.Context, row *GeoLevel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}
