package mq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	mqMessagesTotal metric.Int64Counter
	mqPublishErrors metric.Int64Counter
	mqConsumeErrors metric.Int64Counter
)

// InitMQMetrics 初始化 RabbitMQ 指标
func InitMQMetrics(meter metric.Meter) error {
	var err error

	mqMessagesTotal, err = meter.Int64Counter(
		"mq.messages.total",
		metric.WithDescription("Total number of RabbitMQ messages"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	mqPublishErrors, err = meter.Int64Counter(
		"mq.publish.errors",
		metric.WithDescription("Number of RabbitMQ publish errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	mqConsumeErrors, err = meter.Int64Counter(
		"mq.consume.errors",
		metric.WithDescription("Number of RabbitMQ consume errors"),
		metric.WithUnit("{error}"),
	)
	return err
}

// MessageHeaderCarrier 实现 propagation.TextMapCarrier 接口
type MessageHeaderCarrier struct {
	Headers amqp.Table
}

func (m *MessageHeaderCarrier) Get(key string) string {
	if val, ok := m.Headers[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func (m *MessageHeaderCarrier) Set(key, value string) {
	if m.Headers == nil {
		m.Headers = make(amqp.Table)
	}
	m.Headers[key] = value
}

func (m *MessageHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(m.Headers))
	for k := range m.Headers {
		keys = append(keys, k)
	}
	return keys
}

func propagator() propagation.TextMapPropagator {
	return otel.GetTextMapPropagator()
}

// StartPublishSpan 创建发布 span 并把追踪上下文写入消息头
func StartPublishSpan(ctx context.Context, exchange, routingKey string, headers amqp.Table) (context.Context, trace.Span, amqp.Table) {
	ctx, span := otel.Tracer("nodedash.rabbitmq").Start(ctx, "rabbitmq.publish."+exchange,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystem("rabbitmq"),
			semconv.MessagingDestinationName(exchange),
			attribute.String("messaging.rabbitmq.routing_key", routingKey),
		),
	)

	carrier := &MessageHeaderCarrier{Headers: amqp.Table{}}
	for k, v := range headers {
		carrier.Headers[k] = v
	}
	propagator().Inject(ctx, carrier)

	return ctx, span, carrier.Headers
}

// StartConsumeSpan 从消息头恢复上游追踪上下文并创建处理 span
func StartConsumeSpan(queue string, msg amqp.Delivery) (context.Context, trace.Span) {
	ctx := propagator().Extract(context.Background(), &MessageHeaderCarrier{Headers: msg.Headers})
	return otel.Tracer("nodedash.rabbitmq").Start(ctx, "rabbitmq.process."+queue,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystem("rabbitmq"),
			semconv.MessagingDestinationName(queue),
			semconv.MessagingMessageID(msg.MessageId),
		),
	)
}

// RecordMessage 记录一条消息的发布或消费结果
func RecordMessage(ctx context.Context, operation string, err error) {
	if mqMessagesTotal == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
		switch operation {
		case "publish":
			mqPublishErrors.Add(ctx, 1)
		case "consume":
			mqConsumeErrors.Add(ctx, 1)
		}
	}

	mqMessagesTotal.Add(ctx, 1, metric.WithAttributes(
		semconv.MessagingSystem("rabbitmq"),
		attribute.String("messaging.operation", operation),
		attribute.String("messaging.status", status),
	))
}
