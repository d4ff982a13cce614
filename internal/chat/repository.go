package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("chat session not found")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) CreateSession(ctx context.Context, row *ChatSession) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

func (r *Repository) GetSession(ctx context.Context, sessionID string) (*ChatSession, error) {
	var row ChatSession
	err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListSessions(ctx context.Context, limit, offset int) ([]ChatSession, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&ChatSession{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []ChatSession
	err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

func (r *Repository) CreateConversation(ctx context.Context, row *ChatConversation) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

// ListConversations returns a session's transcript in insertion order.
func (r *Repository) ListConversations(ctx context.Context, sessionID string) ([]ChatConversation, error) {
	var out []ChatConversation
	err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("id").Find(&out).Error
	return out, err
}
