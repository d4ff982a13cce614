package auditlog

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/craftlink/artisan-registry-backend/config"
	"github.com/craftlink/artisan-registry-backend/utils"
)

// StartKafkaConsumer drains the audit topic into the audit_logs table.
// Runs until ctx is cancelled; does nothing when brokers are not configured.
func StartKafkaConsumer(ctx context.Context, cfg *config.Config, repo Repository, log *zap.Logger) {
	if cfg.KafkaBrokers == "" {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}

	reader := utils.NewAuditReader(cfg.KafkaBrokers, cfg.KafkaAuditTopic)

	go func() {
		defer reader.Close()
		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Error("audit consumer read failed", zap.Error(err))
				continue
			}

			var ev auditEvent
			if err := json.Unmarshal(msg.Value, &ev); err != nil {
				log.Warn("dropping malformed audit event", zap.Error(err))
				continue
			}

			detailsJSON, err := json.Marshal(ev.Details)
			if err != nil {
				detailsJSON = []byte("{}")
			}
			entry := &AuditLog{
				UserID:    ev.UserID,
				Action:    ev.Action,
				Details:   string(detailsJSON),
				IPAddress: ev.IPAddress,
				Status:    ev.Status,
			}
			if err := repo.Create(ctx, entry); err != nil {
				log.Error("audit consumer write failed", zap.String("action", ev.Action), zap.Error(err))
			}
		}
	}()
}
