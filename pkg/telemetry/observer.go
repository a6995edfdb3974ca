package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rtpro256/workflow-engine-core/pkg/eventbus"
)

// EventBusObserver turns an eventbus.Bus's ExecutionEvent stream into
// OpenTelemetry spans and metrics. Subscribe its Handle method on the bus
// that the engine emits to.
type EventBusObserver struct {
	provider *Provider

	mu                sync.Mutex
	workflowSpans     map[string]trace.Span
	nodeSpans         map[string]trace.Span
	workflowStartTime map[string]time.Time
	nodeStartTimes    map[string]time.Time
	nodesExecuted     map[string]int
}

// NewEventBusObserver creates an observer that records telemetry for
// events published on an eventbus.Bus.
func NewEventBusObserver(provider *Provider) *EventBusObserver {
	return &EventBusObserver{
		provider:          provider,
		workflowSpans:     make(map[string]trace.Span),
		nodeSpans:         make(map[string]trace.Span),
		workflowStartTime: make(map[string]time.Time),
		nodeStartTimes:    make(map[string]time.Time),
		nodesExecuted:     make(map[string]int),
	}
}

// Handle is an eventbus.Handler. Register it with bus.Subscribe(o.Handle).
func (o *EventBusObserver) Handle(event eventbus.ExecutionEvent) {
	ctx := context.Background()
	switch event.Type {
	case eventbus.EventWorkflowStarted:
		o.handleWorkflowStarted(ctx, event)
	case eventbus.EventNodeStarted:
		o.handleNodeStarted(ctx, event)
	case eventbus.EventNodeCompleted:
		o.handleNodeEnd(ctx, event, true)
	case eventbus.EventNodeError, eventbus.EventNodeTimeout:
		o.handleNodeEnd(ctx, event, false)
	case eventbus.EventWorkflowCompleted:
		o.handleWorkflowEnd(ctx, event, true)
	case eventbus.EventWorkflowFailed, eventbus.EventWorkflowError:
		o.handleWorkflowEnd(ctx, event, false)
	}
}

func (o *EventBusObserver) handleWorkflowStarted(ctx context.Context, event eventbus.ExecutionEvent) {
	_, span := o.provider.Tracer().Start(ctx, "workflow.execute",
		trace.WithAttributes(
			attribute.String("workflow.id", event.WorkflowID),
			attribute.String("execution.id", event.ExecutionID),
		),
	)

	o.mu.Lock()
	o.workflowSpans[event.ExecutionID] = span
	o.workflowStartTime[event.ExecutionID] = event.Timestamp
	o.mu.Unlock()
}

func (o *EventBusObserver) handleWorkflowEnd(ctx context.Context, event eventbus.ExecutionEvent, success bool) {
	o.mu.Lock()
	startTime := o.workflowStartTime[event.ExecutionID]
	delete(o.workflowStartTime, event.ExecutionID)
	span := o.workflowSpans[event.ExecutionID]
	delete(o.workflowSpans, event.ExecutionID)
	nodesExecuted := o.nodesExecuted[event.ExecutionID]
	delete(o.nodesExecuted, event.ExecutionID)
	o.mu.Unlock()

	var duration time.Duration
	if !startTime.IsZero() {
		duration = event.Timestamp.Sub(startTime)
	}
	o.provider.RecordWorkflowExecution(ctx, event.WorkflowID, duration, success, nodesExecuted)

	if span != nil {
		if event.Error != "" {
			span.SetStatus(codes.Error, event.Error)
		} else {
			span.SetStatus(codes.Ok, "workflow completed successfully")
		}
		span.End()
	}
}

func (o *EventBusObserver) handleNodeStarted(ctx context.Context, event eventbus.ExecutionEvent) {
	o.mu.Lock()
	parent := o.workflowSpans[event.ExecutionID]
	o.mu.Unlock()

	spanCtx := ctx
	if parent != nil {
		spanCtx = trace.ContextWithSpan(ctx, parent)
	}

	_, span := o.provider.Tracer().Start(spanCtx, "node.execute",
		trace.WithAttributes(
			attribute.String("node.id", event.NodeID),
			attribute.String("execution.id", event.ExecutionID),
			attribute.Int("layer", event.Layer),
		),
	)

	key := event.ExecutionID + "/" + event.NodeID
	o.mu.Lock()
	o.nodeSpans[key] = span
	o.nodeStartTimes[key] = event.Timestamp
	o.mu.Unlock()
}

func (o *EventBusObserver) handleNodeEnd(ctx context.Context, event eventbus.ExecutionEvent, success bool) {
	key := event.ExecutionID + "/" + event.NodeID

	o.mu.Lock()
	startTime := o.nodeStartTimes[key]
	delete(o.nodeStartTimes, key)
	span := o.nodeSpans[key]
	delete(o.nodeSpans, key)
	o.nodesExecuted[event.ExecutionID]++
	o.mu.Unlock()

	var duration time.Duration
	if !startTime.IsZero() {
		duration = event.Timestamp.Sub(startTime)
	}

	nodeType, _ := event.Data["node_type"].(string)
	o.provider.RecordNodeExecution(ctx, event.NodeID, nodeType, duration, success)

	if span != nil {
		if event.Error != "" {
			span.SetStatus(codes.Error, event.Error)
		} else {
			span.SetStatus(codes.Ok, "node completed successfully")
		}
		span.End()
	}
}
