package service

import (
	"context"

	"go.uber.org/zap"
)

// InverterRestarter issues the restart command upstream.
type InverterRestarter interface {
	RestartInverter(ctx context.Context, token, inverterID string) error
}

// Restarter restarts the caller's inverter. It is not reachable from any intent.
type Restarter struct {
	resolver *Resolver
	control  InverterRestarter
	logger   *zap.Logger
}

// NewRestarter returns restarter.
func NewRestarter(resolver *Resolver, control InverterRestarter, logger *zap.Logger) *Restarter {
	return &Restarter{resolver: resolver, control: control, logger: logger}
}

// Restart restarts inverterID, or the first inverter on the account when it is empty, and
// returns the inverter that was restarted.
func (r *Restarter) Restart(ctx context.Context, creds Credentials, inverterID string) (string, error) {
	id, err := r.resolver.InverterID(ctx, creds, inverterID)
	if err != nil {
		return "", err
	}
	if err := r.control.RestartInverter(ctx, creds.Token, id); err != nil {
		return "", err
	}
	r.logger.Info("inverter restart requested", zap.String("inverter", id))
	return id, nil
}
