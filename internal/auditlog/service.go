package auditlog

import (
	"context"
	"encoding/json"
	"math"

	"go.uber.org/zap"

	"github.com/craftlink/artisan-registry-backend/utils"
)

type Service interface {
	LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip string, status string)
	GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error)
}

type service struct {
	repo      Repository
	publisher *utils.AuditPublisher
	log       *zap.Logger
}

// NewService wires the audit trail. When publisher is nil (no Kafka brokers
// configured) entries are written straight to the database.
func NewService(repo Repository, publisher *utils.AuditPublisher, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, publisher: publisher, log: log}
}

type auditEvent struct {
	UserID    *uint                  `json:"user_id"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details"`
	IPAddress string                 `json:"ip_address"`
	Status    string                 `json:"status"`
}

// LogAction records a mutating operation. Audit failures are logged and
// swallowed: the audit trail must never fail the request it describes.
func (s *service) LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip string, status string) {
	if details == nil {
		details = map[string]interface{}{}
	}

	if s.publisher != nil {
		payload, err := json.Marshal(auditEvent{
			UserID:    userID,
			Action:    action,
			Details:   details,
			IPAddress: ip,
			Status:    status,
		})
		if err == nil {
			if err := s.publisher.Publish(ctx, action, payload); err == nil {
				return
			}
			s.log.Warn("audit publish failed, falling back to direct write", zap.String("action", action))
		}
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}
	entry := &AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   string(detailsJSON),
		IPAddress: ip,
		Status:    status,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *service) GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error) {
	logs, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	return &PaginatedAuditLogs{
		Data:       logs,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}
