package artisan

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/craftlink/artisan-registry-backend/database"
)

// ErrNotFound marks a mutation or lookup that targeted a missing or
// soft-deleted artisan.
var ErrNotFound = errors.New("artisan not found")

type Repository struct {
	store *database.Store
}

func NewRepository(store *database.Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) db(ctx context.Context) *gorm.DB {
	return r.store.DB().WithContext(ctx)
}

// Create inserts the artisan row only; child batches are inserted separately
// so the creation endpoint can report per-step progress.
func (r *Repository) Create(ctx context.Context, a *Artisan) error {
	return r.db(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *Repository) CreateTrainings(ctx context.Context, rows []Training) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db(ctx).Create(&rows).Error
}

func (r *Repository) CreateLoans(ctx context.Context, rows []Loan) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db(ctx).Create(&rows).Error
}

func (r *Repository) CreateMachines(ctx context.Context, rows []Machine) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db(ctx).Create(&rows).Error
}

func (r *Repository) CreateProductImages(ctx context.Context, rows []ProductImage) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db(ctx).Create(&rows).Error
}

func (r *Repository) CreateShopImages(ctx context.Context, rows []ShopImage) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db(ctx).Create(&rows).Error
}

// GetByID eagerly loads all child collections. Soft-deleted records are
// hidden unless includeInactive is set.
func (r *Repository) GetByID(ctx context.Context, id uint, includeInactive bool) (*Artisan, error) {
	query := r.db(ctx).
		Preload("Trainings").
		Preload("Loans").
		Preload("Machines").
		Preload("ProductImages").
		Preload("ShopImages")
	if !includeInactive {
		query = query.Where("is_active = true")
	}

	var a Artisan
	err := query.First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns active artisans with pagination and an optional name/CNIC
// search.
func (r *Repository) List(ctx context.Context, limit, offset int, search string) ([]Artisan, int64, error) {
	query := r.db(ctx).Model(&Artisan{}).Where("is_active = true")
	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("name ILIKE ? OR cnic ILIKE ?", ilike, ilike)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var artisans []Artisan
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&artisans).Error
	if err != nil {
		return nil, 0, err
	}
	return artisans, total, nil
}

// Replace overwrites the artisan row and fully replaces the child lists
// inside one transaction. The artisan row not matching (missing or
// soft-deleted) aborts everything as not-found; any already-issued child
// deletes roll back. onStep fires before each logical step.
func (r *Repository) Replace(ctx context.Context, id uint, fields map[string]interface{}, trainings []Training, loans []Loan, machines []Machine, onStep func(string)) error {
	if onStep == nil {
		onStep = func(string) {}
	}
	return r.store.WithTransaction(ctx, func(tx *gorm.DB) error {
		onStep("Replacing trainings")
		if err := tx.Where("artisan_id = ?", id).Delete(&Training{}).Error; err != nil {
			return err
		}
		if len(trainings) > 0 {
			if err := tx.Create(&trainings).Error; err != nil {
				return err
			}
		}

		onStep("Replacing loans")
		if err := tx.Where("artisan_id = ?", id).Delete(&Loan{}).Error; err != nil {
			return err
		}
		if len(loans) > 0 {
			if err := tx.Create(&loans).Error; err != nil {
				return err
			}
		}

		onStep("Replacing machines")
		if err := tx.Where("artisan_id = ?", id).Delete(&Machine{}).Error; err != nil {
			return err
		}
		if len(machines) > 0 {
			if err := tx.Create(&machines).Error; err != nil {
				return err
			}
		}

		onStep("Updating artisan record")
		res := tx.Model(&Artisan{}).Where("id = ? AND is_active = true", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// SoftDelete flips is_active; the row is never removed.
func (r *Repository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db(ctx).Model(&Artisan{}).
		Where("id = ? AND is_active = true", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
