package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"energyskill/backend/services/energy-skill/internal/models"
)

const (
	DefaultAPIBaseURL     = "https://api.givenergy.cloud"
	DefaultControlBaseURL = "https://givenergy.cloud"

	OpListDevices     = "list_devices"
	OpFetchLatest     = "fetch_latest"
	OpRestartInverter = "restart_inverter"
)

var (
	// ErrNoDeviceData is returned when the device listing has no usable data field.
	ErrNoDeviceData = errors.New("clients: no device data in response")
	// ErrNoSystemData is returned when the latest-data response has neither data nor error.
	ErrNoSystemData = errors.New("clients: no system data in response")
)

// Observer records upstream call latency.
type Observer interface {
	ObserveUpstream(operation string, elapsed time.Duration, err error)
}

// GivEnergyClient talks to the GivEnergy cloud on behalf of one linked user per call.
type GivEnergyClient struct {
	api      *BaseClient
	control  *BaseClient
	observer Observer
	logger   *zap.Logger
}

// NewGivEnergyClient returns client. Empty base URLs fall back to the public endpoints.
func NewGivEnergyClient(apiURL, controlURL string, httpClient HTTPDoer, observer Observer, logger *zap.Logger) *GivEnergyClient {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = DefaultAPIBaseURL
	}
	if strings.TrimSpace(controlURL) == "" {
		controlURL = DefaultControlBaseURL
	}
	return &GivEnergyClient{
		api:      NewBaseClient(apiURL, httpClient),
		control:  NewBaseClient(controlURL, httpClient),
		observer: observer,
		logger:   logger,
	}
}

func authHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
		"Accept":        "application/json",
	}
}

func (c *GivEnergyClient) observe(op string, started time.Time, err error) {
	if c.observer != nil {
		c.observer.ObserveUpstream(op, time.Since(started), err)
	}
}

// ListDevices handles GET /v1/communication-device?page=1.
func (c *GivEnergyClient) ListDevices(ctx context.Context, token string) (devices []models.CommunicationDevice, err error) {
	started := time.Now()
	defer func() { c.observe(OpListDevices, started, err) }()

	status, body, err := c.api.Do(ctx, http.MethodGet, "/v1/communication-device?page=1", nil, authHeaders(token))
	if err != nil {
		return nil, fmt.Errorf("clients: list devices: %w", err)
	}

	var payload struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w (status %d): %v", ErrNoDeviceData, status, err)
	}
	raw := bytes.TrimSpace(payload.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w (status %d)", ErrNoDeviceData, status)
	}
	if err := json.Unmarshal(raw, &devices); err != nil {
		return nil, fmt.Errorf("%w (status %d): %v", ErrNoDeviceData, status, err)
	}

	c.logger.Debug("listed communication devices", zap.Int("count", len(devices)))
	return devices, nil
}

// FetchLatest handles GET /v1/inverter/{id}/system-data/latest. An error reported by the API
// becomes a failed Outcome; transport and decoding problems are returned as errors.
func (c *GivEnergyClient) FetchLatest(ctx context.Context, token, inverterID string) (outcome models.Outcome, err error) {
	started := time.Now()
	defer func() { c.observe(OpFetchLatest, started, err) }()

	path := "/v1/inverter/" + url.PathEscape(inverterID) + "/system-data/latest"
	status, body, err := c.api.Do(ctx, http.MethodGet, path, nil, authHeaders(token))
	if err != nil {
		return models.Outcome{}, fmt.Errorf("clients: fetch latest: %w", err)
	}

	var payload struct {
		Data  *models.SystemData `json:"data"`
		Error json.RawMessage    `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.Outcome{}, fmt.Errorf("clients: decode system data (status %d): %w", status, err)
	}
	if msg, ok := errorText(payload.Error); ok {
		c.logger.Info("telemetry api reported error", zap.Int("status", status), zap.String("inverter", inverterID))
		return models.Failed(msg), nil
	}
	if payload.Data == nil {
		return models.Outcome{}, fmt.Errorf("%w (status %d)", ErrNoSystemData, status)
	}
	return models.Succeeded(payload.Data), nil
}

// RestartInverter handles POST /internal-api/inverter/actions/{id}/restart on the control host.
func (c *GivEnergyClient) RestartInverter(ctx context.Context, token, inverterID string) (err error) {
	started := time.Now()
	defer func() { c.observe(OpRestartInverter, started, err) }()

	path := "/internal-api/inverter/actions/" + url.PathEscape(inverterID) + "/restart"
	status, body, err := c.control.Do(ctx, http.MethodPost, path, nil, authHeaders(token))
	if err != nil {
		return fmt.Errorf("clients: restart inverter: %w", err)
	}
	if status >= http.StatusMultipleChoices {
		var payload struct {
			Error json.RawMessage `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			if msg, ok := errorText(payload.Error); ok {
				return fmt.Errorf("clients: restart inverter: status %d: %s", status, msg)
			}
		}
		return fmt.Errorf("clients: restart inverter: status %d", status)
	}
	return nil
}

// errorText renders the error field: strings are unquoted, anything else is kept as JSON text.
func errorText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, true
	}
	return string(raw), true
}
