package request

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"guildledger"
)

// InstrumentedLifecycle decorates a Lifecycle with tracing and metrics. Every
// operation gets a span, a started/failed counter pair tagged with the
// error kind, and a duration histogram.
type InstrumentedLifecycle struct {
	inner  guildledger.Lifecycle
	tracer trace.Tracer
	meter  metric.Meter

	opsCounter    metric.Int64Counter
	failedCounter metric.Int64Counter
	durationHist  metric.Float64Histogram
}

// NewInstrumentedLifecycle initializes the decorator and its instruments.
func NewInstrumentedLifecycle(inner guildledger.Lifecycle, tracer trace.Tracer, meter metric.Meter) *InstrumentedLifecycle {
	opsCounter, _ := meter.Int64Counter("lifecycle_operations_total",
		metric.WithDescription("Total number of lifecycle operations started"))
	failedCounter, _ := meter.Int64Counter("lifecycle_operations_failed_total",
		metric.WithDescription("Total number of lifecycle operations that failed"))
	durationHist, _ := meter.Float64Histogram("lifecycle_operation_duration_seconds",
		metric.WithDescription("Duration of lifecycle operations in seconds"))

	return &InstrumentedLifecycle{
		inner:         inner,
		tracer:        tracer,
		meter:         meter,
		opsCounter:    opsCounter,
		failedCounter: failedCounter,
		durationHist:  durationHist,
	}
}

func (l *InstrumentedLifecycle) Start(ctx context.Context, userID, channelID, product string) error {
	return l.observe(ctx, "Start", func(ctx context.Context) error {
		return l.inner.Start(ctx, userID, channelID, product)
	})
}

func (l *InstrumentedLifecycle) BulkAdd(ctx context.Context, userID, channelID, rawList string) error {
	return l.observe(ctx, "BulkAdd", func(ctx context.Context) error {
		return l.inner.BulkAdd(ctx, userID, channelID, rawList)
	})
}

func (l *InstrumentedLifecycle) Update(ctx context.Context, userID, channelID string) error {
	return l.observe(ctx, "Update", func(ctx context.Context) error {
		return l.inner.Update(ctx, userID, channelID)
	})
}

func (l *InstrumentedLifecycle) Finish(ctx context.Context, userID, channelID string) error {
	return l.observe(ctx, "Finish", func(ctx context.Context) error {
		return l.inner.Finish(ctx, userID, channelID)
	})
}

func (l *InstrumentedLifecycle) Settle(ctx context.Context, channelID, requestID string) error {
	return l.observe(ctx, "Settle", func(ctx context.Context) error {
		return l.inner.Settle(ctx, channelID, requestID)
	})
}

func (l *InstrumentedLifecycle) Refresh(ctx context.Context, channelID, requestID string) error {
	return l.observe(ctx, "Refresh", func(ctx context.Context) error {
		return l.inner.Refresh(ctx, channelID, requestID)
	})
}

func (l *InstrumentedLifecycle) observe(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span := l.tracer.Start(ctx, "Lifecycle."+op)
	defer span.End()

	opAttr := attribute.String("operation", op)
	l.opsCounter.Add(ctx, 1, metric.WithAttributes(opAttr))

	start := time.Now()
	err := fn(ctx)
	l.durationHist.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(opAttr))

	if err != nil {
		kind := string(guildledger.KindOf(err))
		l.failedCounter.Add(ctx, 1, metric.WithAttributes(
			opAttr,
			attribute.String("error_kind", kind),
		))
		span.SetStatus(codes.Error, op+" failed")
		span.RecordError(err)
		return err
	}
	return nil
}
