package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRestartFirstInverter(t *testing.T) {
	telemetry := newFakeTelemetry("")
	logger := zaptest.NewLogger(t)
	restarter := NewRestarter(NewResolver(telemetry, logger), telemetry, logger)

	id, err := restarter.Restart(context.Background(), Credentials{Token: "tok"}, "")
	require.NoError(t, err)
	assert.Equal(t, "CE0001", id)
	assert.Equal(t, []string{"CE0001"}, telemetry.restarted)
}

func TestRestartSuppliedInverter(t *testing.T) {
	telemetry := newFakeTelemetry("")
	logger := zaptest.NewLogger(t)
	restarter := NewRestarter(NewResolver(telemetry, logger), telemetry, logger)

	id, err := restarter.Restart(context.Background(), Credentials{Token: "tok"}, "CE7")
	require.NoError(t, err)
	assert.Equal(t, "CE7", id)
	assert.Equal(t, 0, telemetry.listCalls)
}

func TestRestartFailures(t *testing.T) {
	telemetry := newFakeTelemetry("")
	telemetry.devices = nil
	logger := zaptest.NewLogger(t)
	restarter := NewRestarter(NewResolver(telemetry, logger), telemetry, logger)

	_, err := restarter.Restart(context.Background(), Credentials{Token: "tok"}, "")
	require.ErrorIs(t, err, ErrNoDevice)
	assert.Empty(t, telemetry.restarted)

	telemetry.restartErr = errors.New("status 403")
	_, err = restarter.Restart(context.Background(), Credentials{Token: "tok"}, "CE1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
