package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"energyskill/backend/services/energy-skill/internal/models"
)

// Intent names handled by the skill.
const (
	IntentBattery         = "BatteryIntent"
	IntentGridVoltage     = "GridVoltageIntent"
	IntentSolarGeneration = "SolarGenerationIntent"
	IntentConsumption     = "ConsumptionIntent"
	IntentStatus          = "StatusIntent"
	IntentHelp            = "AMAZON.HelpIntent"
	IntentCancel          = "AMAZON.CancelIntent"
	IntentStop            = "AMAZON.StopIntent"
)

// Result labels reported to the IntentObserver.
const (
	ResultNotLinked = "not_linked"
	ResultHelp      = "help"
	ResultAnswered  = "answered"
	ResultFailed    = "failed"
	ResultAcked     = "acknowledged"
	ResultRejected  = "rejected"
)

var (
	// ErrUnknownIntent is returned for intent names outside the dispatch table.
	ErrUnknownIntent = errors.New("service: unknown intent")
	// ErrUnsupportedRequest is returned for request types other than launch and intent.
	ErrUnsupportedRequest = errors.New("service: unsupported request type")
)

// LatestSource yields the latest telemetry outcome for the caller.
type LatestSource interface {
	Latest(ctx context.Context, creds Credentials, inverterID string) models.Outcome
}

// IntentObserver records how each invocation was answered.
type IntentObserver interface {
	ObserveIntent(intent, result string)
}

type intentHandler func(ctx context.Context, creds Credentials) (models.Envelope, string)

// IntentRouter turns one platform event into one response envelope.
type IntentRouter struct {
	handlers map[string]intentHandler
	source   LatestSource
	observer IntentObserver
	logger   *zap.Logger
	now      func() time.Time
}

// NewIntentRouter builds the router and its dispatch table.
func NewIntentRouter(source LatestSource, observer IntentObserver, logger *zap.Logger) *IntentRouter {
	r := &IntentRouter{
		source:   source,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
	r.handlers = map[string]intentHandler{
		IntentBattery:         r.metric(BatteryMetric),
		IntentGridVoltage:     r.metric(GridVoltageMetric),
		IntentSolarGeneration: r.metric(SolarPowerMetric),
		IntentConsumption:     r.metric(ConsumptionMetric),
		IntentStatus:          r.metric(StatusMetric),
		IntentHelp:            staticReply(Help, ResultHelp),
		IntentCancel:          staticReply(Acknowledge, ResultAcked),
		IntentStop:            staticReply(Acknowledge, ResultAcked),
	}
	return r
}

// Handle classifies the event and dispatches it. A session-ended notice is acknowledged with a
// bare envelope. Unknown intents and other request types are returned as errors and produce no
// envelope.
func (r *IntentRouter) Handle(ctx context.Context, event models.Event) (models.Envelope, error) {
	label := r.label(event)

	creds, err := ExtractCredentials(event)
	if err != nil {
		r.logger.Info("request from unlinked account", zap.String("request", label))
		r.observe(label, ResultNotLinked)
		return NotLinked(), nil
	}

	account := creds.Describe()
	logger := r.logger.With(zap.String("account", account.ID), zap.String("request", label))
	if account.Expired(r.now()) {
		logger.Warn("linked api key has expired", zap.Time("expired_at", account.ExpiresAt))
	}

	switch event.Request.Type {
	case models.RequestTypeLaunch:
		r.observe(label, ResultHelp)
		return Help(), nil
	case models.RequestTypeIntent:
		handler, ok := r.handlers[event.IntentName()]
		if !ok {
			r.observe(label, ResultRejected)
			return models.Envelope{}, fmt.Errorf("%w: %q", ErrUnknownIntent, event.IntentName())
		}
		envelope, result := handler(ctx, creds)
		logger.Info("intent handled", zap.String("result", result))
		r.observe(label, result)
		return envelope, nil
	case models.RequestTypeSessionEnded:
		r.observe(label, ResultAcked)
		return Acknowledge(), nil
	default:
		r.observe(label, ResultRejected)
		return models.Envelope{}, fmt.Errorf("%w: %q", ErrUnsupportedRequest, event.Request.Type)
	}
}

func (r *IntentRouter) metric(m Metric) intentHandler {
	return func(ctx context.Context, creds Credentials) (models.Envelope, string) {
		outcome := r.source.Latest(ctx, creds, "")
		result := ResultAnswered
		if _, failed := outcome.Failure(); failed {
			result = ResultFailed
		}
		return Speech(m.Speak(outcome), true), result
	}
}

func staticReply(build func() models.Envelope, result string) intentHandler {
	return func(context.Context, Credentials) (models.Envelope, string) {
		return build(), result
	}
}

func (r *IntentRouter) observe(label, result string) {
	if r.observer != nil {
		r.observer.ObserveIntent(label, result)
	}
}

// label names the request for logs and metrics using only known values.
func (r *IntentRouter) label(event models.Event) string {
	switch event.Request.Type {
	case models.RequestTypeLaunch, models.RequestTypeSessionEnded:
		return event.Request.Type
	case models.RequestTypeIntent:
		if _, ok := r.handlers[event.IntentName()]; ok {
			return event.IntentName()
		}
		return "unknown_intent"
	default:
		return "unsupported"
	}
}
