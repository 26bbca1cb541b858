package mongo

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/event"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"NodeDashboard/pkg/logger"
)

type commandTracer struct {
	tracer trace.Tracer
	spans  sync.Map // requestID -> trace.Span
}

// NewCommandMonitor 为每条 Mongo 命令创建 span，失败命令记录日志
func NewCommandMonitor(serviceName string) *event.CommandMonitor {
	ct := &commandTracer{tracer: otel.Tracer(serviceName + ".mongo")}

	return &event.CommandMonitor{
		Started:   ct.started,
		Succeeded: ct.succeeded,
		Failed:    ct.failed,
	}
}

func (ct *commandTracer) started(ctx context.Context, evt *event.CommandStartedEvent) {
	_, span := ct.tracer.Start(ctx, "mongo."+evt.CommandName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBSystemMongoDB,
			semconv.DBName(evt.DatabaseName),
			semconv.DBOperation(evt.CommandName),
			attribute.String("net.peer.name", evt.ConnectionID),
		),
	)
	ct.spans.Store(evt.RequestID, span)
}

func (ct *commandTracer) succeeded(_ context.Context, evt *event.CommandSucceededEvent) {
	if value, ok := ct.spans.LoadAndDelete(evt.RequestID); ok {
		span := value.(trace.Span)
		span.SetStatus(codes.Ok, "")
		span.End()
	}
}

func (ct *commandTracer) failed(_ context.Context, evt *event.CommandFailedEvent) {
	if value, ok := ct.spans.LoadAndDelete(evt.RequestID); ok {
		span := value.(trace.Span)
		span.SetStatus(codes.Error, evt.Failure)
		span.End()
	}

	logger.Logger.Warn("MongoDB command failed",
		zap.String("command", evt.CommandName),
		zap.String("database", evt.DatabaseName),
		zap.Duration("duration", evt.Duration),
		zap.String("failure", evt.Failure),
	)
}
