package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"energyskill/backend/services/energy-skill/internal/clients"
	"energyskill/backend/services/energy-skill/internal/models"
)

const (
	MessageRelink      = "I wasn't able to get device data from your system. Please try re-linking the skill."
	MessageUnavailable = "I wasn't able to reach your system right now. Please try again later."
)

var (
	// ErrNoDevice is returned when no inverter can be selected for the account.
	ErrNoDevice = errors.New("service: no device on account")
	// ErrTelemetryUnavailable is returned when the device list could not be requested at all.
	ErrTelemetryUnavailable = errors.New("service: telemetry unavailable")
)

// DeviceLister lists the account's communication devices.
type DeviceLister interface {
	ListDevices(ctx context.Context, token string) ([]models.CommunicationDevice, error)
}

// Telemetry is the upstream API the resolver reads from.
type Telemetry interface {
	DeviceLister
	FetchLatest(ctx context.Context, token, inverterID string) (models.Outcome, error)
}

// Resolver picks the inverter to query and fetches its latest snapshot.
type Resolver struct {
	telemetry Telemetry
	logger    *zap.Logger
}

// NewResolver returns resolver.
func NewResolver(telemetry Telemetry, logger *zap.Logger) *Resolver {
	return &Resolver{telemetry: telemetry, logger: logger}
}

// InverterID returns inverterID unchanged when set, otherwise the inverter behind the first
// device listed for the account.
func (r *Resolver) InverterID(ctx context.Context, creds Credentials, inverterID string) (string, error) {
	if inverterID != "" {
		return inverterID, nil
	}

	devices, err := r.telemetry.ListDevices(ctx, creds.Token)
	if errors.Is(err, clients.ErrUpstreamUnavailable) {
		return "", fmt.Errorf("%w: %w", ErrTelemetryUnavailable, err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	if len(devices) == 0 {
		return "", ErrNoDevice
	}
	if len(devices) > 1 {
		r.logger.Debug("account has several devices, using the first", zap.Int("count", len(devices)))
	}

	serial := strings.TrimSpace(devices[0].Inverter.Serial)
	if serial == "" {
		return "", fmt.Errorf("%w: device %s has no inverter serial", ErrNoDevice, devices[0].SerialNumber)
	}
	return serial, nil
}

// Latest resolves the inverter and returns its latest snapshot. Every failure is folded into a
// failed Outcome; when the inverter cannot be resolved no telemetry request is made.
func (r *Resolver) Latest(ctx context.Context, creds Credentials, inverterID string) models.Outcome {
	id, err := r.InverterID(ctx, creds, inverterID)
	if errors.Is(err, ErrTelemetryUnavailable) {
		r.logger.Warn("device listing refused", zap.Error(err))
		return models.Failed(MessageUnavailable)
	}
	if err != nil {
		r.logger.Warn("device resolution failed", zap.Error(err))
		return models.Failed(MessageRelink)
	}

	outcome, err := r.telemetry.FetchLatest(ctx, creds.Token, id)
	if err != nil {
		r.logger.Warn("telemetry fetch failed", zap.String("inverter", id), zap.Error(err))
		return models.Failed(MessageUnavailable)
	}
	return outcome
}
