package queue

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"NodeDashboard/config"
	"NodeDashboard/internal/model"
	"NodeDashboard/pkg/logger"
	"NodeDashboard/storage/mq"
)

// AlertPublisher 把对账告警发布到 RabbitMQ
type AlertPublisher struct {
	exchange   string
	routingKey string
}

func NewAlertPublisher() *AlertPublisher {
	return &AlertPublisher{
		exchange:   config.Cfg.AlertExchange,
		routingKey: config.Cfg.AlertRoutingKey,
	}
}

// PublishReconciliationAlert 发布一条告警，MessageID 为空时生成 UUID
func (p *AlertPublisher) PublishReconciliationAlert(ctx context.Context, msg model.ReconciliationAlertMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}

	if err := mq.PublishMessage(ctx, p.exchange, p.routingKey, msg.MessageID, msg); err != nil {
		logger.Logger.Error("Failed to publish reconciliation alert",
			zap.String("date", msg.Date),
			zap.Int64("run_id", msg.RunID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published reconciliation alert",
		zap.String("message_id", msg.MessageID),
		zap.String("date", msg.Date),
		zap.Int("total_missing", msg.TotalMissing),
		zap.Float64("missing_ratio_percent", msg.MissingRatioPercent),
	)
	return nil
}
