package mq

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"NodeDashboard/pkg/errors"
	"NodeDashboard/pkg/logger"
	mqotel "NodeDashboard/pkg/mq"
)

type MessageHandler func(ctx context.Context, body []byte) error

type ConsumeOptions struct {
	Handler       MessageHandler
	Queue         string
	ConsumerTag   string
	PrefetchCount int
}

// Consume 阻塞消费队列直到 ctx 取消或通道关闭，处理失败的消息重新入队，SkipMessageError 直接确认
func Consume(ctx context.Context, opts ConsumeOptions) error {
	conn := Connection()
	if conn == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if opts.PrefetchCount > 0 {
		if err := ch.Qos(opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	msgs, err := ch.Consume(
		opts.Queue,
		opts.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Logger.Info("Started consuming messages",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
		zap.Int("prefetch_count", opts.PrefetchCount),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			msgCtx, span := mqotel.StartConsumeSpan(opts.Queue, msg)
			err := opts.Handler(msgCtx, msg.Body)
			mqotel.RecordMessage(msgCtx, "consume", err)

			var skip *errors.SkipMessageError
			if stderrors.As(err, &skip) {
				span.End()
				logger.Logger.Info("Skipping message",
					zap.String("queue", opts.Queue),
					zap.String("message_id", msg.MessageId),
					zap.String("reason", skip.Reason),
				)
				_ = msg.Ack(false)
				continue
			}

			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				span.End()
				logger.Logger.Error("Failed to process message",
					zap.String("queue", opts.Queue),
					zap.String("message_id", msg.MessageId),
					zap.Error(err),
				)
				_ = msg.Nack(false, true)
				continue
			}

			span.End()
			_ = msg.Ack(false)
		}
	}
}
