package subscription

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("subscription not found")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert re-activates the row when the address was seen before.
func (r *Repository) Upsert(ctx context.Context, email string) (*EmailSubscription, error) {
	row := EmailSubscription{Email: email, IsSubscribed: true}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"is_subscribed": true}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Unsubscribe(ctx context.Context, email string) error {
	res := r.DB.WithContext(ctx).Model(&EmailSubscription{}).
		Where("email = ?", email).Update("is_subscribed", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, activeOnly bool) ([]EmailSubscription, error) {
	query := r.DB.WithContext(ctx).Order("id")
	if activeOnly {
		query = query.Where("is_subscribed = true")
	}
	var out []EmailSubscription
	err := query.Find(&out).Error
	return out, err
}

// ActiveEmails returns the broadcast recipient list.
func (r *Repository) ActiveEmails(ctx context.Context) ([]string, error) {
	var out []string
	err := r.DB.WithContext(ctx).Model(&EmailSubscription{}).
		Where("is_subscribed = true").Order("id").Pluck("email", &out).Error
	return out, err
}
