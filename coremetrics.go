package tallybot

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/metric"
)

const (
	okResult        = "ok"
	failedResult    = "failed"
	unhandledResult = "unhandled"
)

// instrumenter holds data for core dispatch instrumentation
type instrumenter struct {
	appName string
	metrics coreMetrics
}

// coreMetrics holds the core tallybot metrics
type coreMetrics struct {
	eventsSeen            map[EventType]metric.BoundInt64Counter
	eventsByResult        map[string]metric.BoundInt64Counter
	dispatchLatencyMillis metric.BoundInt64ValueRecorder
}

var instrumentedEventTypes = []EventType{EventTypeMessage, EventTypeAppMention, EventTypeReactionAdded, EventTypeReactionRemoved, EventTypeUnrecognized}

// newInstrumenter creates a new core instrumenter
func newInstrumenter(appName string, meter metric.Meter) (ins *instrumenter) {
	ins = new(instrumenter)
	ins.appName = appName

	mt := metric.Must(meter)

	seen := mt.NewInt64Counter("eventSeen")
	eventsSeen := make(map[EventType]metric.BoundInt64Counter)
	for _, et := range instrumentedEventTypes {
		eventsSeen[et] = seen.Bind(label.String("name", appName), label.String("eventType", et.String()))
	}

	handled := mt.NewInt64Counter("eventDispatched")
	eventsByResult := make(map[string]metric.BoundInt64Counter)
	for _, result := range []string{okResult, failedResult, unhandledResult} {
		eventsByResult[result] = handled.Bind(label.String("name", appName), label.String("result", result))
	}

	latency := mt.NewInt64ValueRecorder("eventDispatchLatencyMillis")

	ins.metrics = coreMetrics{eventsSeen: eventsSeen,
		eventsByResult:        eventsByResult,
		dispatchLatencyMillis: latency.Bind(label.String("name", appName))}

	return ins
}

func (ins *instrumenter) eventSeen(et EventType) {
	if c, ok := ins.metrics.eventsSeen[et]; ok {
		c.Add(context.Background(), 1)
	}
}

func (ins *instrumenter) eventUnhandled(et EventType) {
	ins.metrics.eventsByResult[unhandledResult].Add(context.Background(), 1)
}

func (ins *instrumenter) eventDispatched(et EventType, d time.Duration, err error) {
	result := okResult
	if err != nil {
		result = failedResult
	}

	ins.metrics.eventsByResult[result].Add(context.Background(), 1)
	ins.metrics.dispatchLatencyMillis.Record(context.Background(), d.Milliseconds())
}

type timed func()

// measure runs the operation and returns its wall-clock duration
func measure(operation timed) (d time.Duration) {
	before := time.Now()

	operation()

	return time.Since(before)
}
