package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"NodeDashboard/config"
	"NodeDashboard/internal/cache"
	"NodeDashboard/internal/model"
	"NodeDashboard/pkg/errors"
	"NodeDashboard/pkg/logger"
	"NodeDashboard/pkg/snowflake"
	"NodeDashboard/storage/mq"
)

// AlertStore 告警落库
type AlertStore interface {
	Save(ctx context.Context, alert *model.ReconciliationAlert) (bool, error)
}

// Deduper 消息幂等标记
type Deduper interface {
	TryMark(ctx context.Context, messageID string) (bool, error)
	MarkDone(ctx context.Context, messageID string) error
	Unmark(ctx context.Context, messageID string) error
}

type redisDeduper struct{}

func (redisDeduper) TryMark(ctx context.Context, messageID string) (bool, error) {
	return cache.TryMarkMessageProcessing(ctx, messageID)
}

func (redisDeduper) MarkDone(ctx context.Context, messageID string) error {
	return cache.MarkMessageProcessed(ctx, messageID)
}

func (redisDeduper) Unmark(ctx context.Context, messageID string) error {
	return cache.UnmarkMessageProcessing(ctx, messageID)
}

var (
	alertStore AlertStore
	deduper    Deduper = redisDeduper{}
)

// SetAlertStore 设置告警存储（在 worker 启动时调用）
func SetAlertStore(s AlertStore) {
	alertStore = s
}

// SetDeduper 替换消息去重实现
func SetDeduper(d Deduper) {
	deduper = d
}

// HandleReconciliationAlert 处理一条对账告警：去重、落库、记录日志
func HandleReconciliationAlert(ctx context.Context, body []byte) error {
	var msg model.ReconciliationAlertMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return &errors.SkipMessageError{Reason: fmt.Sprintf("invalid reconciliation alert: %v", err)}
	}
	if msg.MessageID == "" || msg.Date == "" {
		return &errors.SkipMessageError{Reason: "reconciliation alert without message id or date"}
	}
	if alertStore == nil {
		return fmt.Errorf("alert store is not configured")
	}

	acquired, err := deduper.TryMark(ctx, msg.MessageID)
	if err != nil {
		// 去重失败时继续处理，落库的唯一索引兜底
		logger.Logger.Warn("Failed to check message processed status",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
	} else if !acquired {
		return &errors.SkipMessageError{Reason: fmt.Sprintf("message %s already processed", msg.MessageID)}
	}

	id, err := snowflake.NextID()
	if err != nil {
		_ = deduper.Unmark(ctx, msg.MessageID)
		return fmt.Errorf("failed to generate alert id: %w", err)
	}

	created, err := alertStore.Save(ctx, &model.ReconciliationAlert{
		BaseModel:           model.BaseModel{ID: id},
		Date:                msg.Date,
		MessageID:           msg.MessageID,
		RunID:               msg.RunID,
		MissingWallets:      strings.Join(msg.MissingWallets, ","),
		TotalSubmitted:      msg.TotalSubmitted,
		TotalMissing:        msg.TotalMissing,
		MissingRatioPercent: msg.MissingRatioPercent,
		Threshold:           msg.Threshold,
	})
	if err != nil {
		_ = deduper.Unmark(ctx, msg.MessageID)
		return fmt.Errorf("failed to save reconciliation alert: %w", err)
	}

	logger.Logger.Warn("Reconciliation alert",
		zap.String("message_id", msg.MessageID),
		zap.String("date", msg.Date),
		zap.Int64("run_id", msg.RunID),
		zap.Int("total_submitted", msg.TotalSubmitted),
		zap.Int("total_missing", msg.TotalMissing),
		zap.Float64("missing_ratio_percent", msg.MissingRatioPercent),
		zap.Float64("threshold", msg.Threshold),
		zap.Bool("stored", created),
	)

	if err := deduper.MarkDone(ctx, msg.MessageID); err != nil {
		logger.Logger.Warn("Failed to mark message as processed",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
	}
	return nil
}

// StartReconciliationAlertConsumer 启动对账告警消费者，阻塞直到 ctx 取消
func StartReconciliationAlertConsumer(ctx context.Context) error {
	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         config.Cfg.AlertQueue,
		ConsumerTag:   "reconciliation_alert_consumer",
		PrefetchCount: 10,
		Handler:       HandleReconciliationAlert,
	})
}

// StartAllConsumers 启动全部消费者，任一退出时记录错误
func StartAllConsumers(ctx context.Context) *sync.WaitGroup {
	consumers := map[string]func(context.Context) error{
		"reconciliation_alert": StartReconciliationAlertConsumer,
	}

	var wg sync.WaitGroup
	for name, start := range consumers {
		wg.Add(1)
		go func(name string, start func(context.Context) error) {
			defer wg.Done()
			if err := start(ctx); err != nil && ctx.Err() == nil {
				logger.Logger.Error("Consumer stopped",
					zap.String("consumer", name),
					zap.Error(err),
				)
			}
		}(name, start)
	}
	return &wg
}
