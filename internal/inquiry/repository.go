package inquiry

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("inquiry not found")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(ctx context.Context, row *InquiryRequest) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]InquiryRequest, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&InquiryRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []InquiryRequest
	err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*InquiryRequest, error) {
	var row InquiryRequest
	err := r.DB.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&InquiryRequest{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
