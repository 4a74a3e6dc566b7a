package service

import (
	"context"
	"encoding/json"
	"sync"

	"energyskill/backend/services/energy-skill/internal/models"
)

type fakeTelemetry struct {
	mu sync.Mutex

	devices  []models.CommunicationDevice
	listErr  error
	body     string
	fetchErr error

	restartErr error

	tokens     []string
	listCalls  int
	fetchCalls int
	fetchedIDs []string
	restarted  []string
}

func newFakeTelemetry(body string) *fakeTelemetry {
	return &fakeTelemetry{
		devices: []models.CommunicationDevice{{SerialNumber: "WF0001", Inverter: models.InverterSummary{Serial: "CE0001"}}},
		body:    body,
	}
}

func (f *fakeTelemetry) ListDevices(_ context.Context, token string) ([]models.CommunicationDevice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.tokens = append(f.tokens, token)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.devices, nil
}

// FetchLatest decodes body the same way the HTTP client does.
func (f *fakeTelemetry) FetchLatest(_ context.Context, token, inverterID string) (models.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	f.tokens = append(f.tokens, token)
	f.fetchedIDs = append(f.fetchedIDs, inverterID)
	if f.fetchErr != nil {
		return models.Outcome{}, f.fetchErr
	}

	var payload struct {
		Data  *models.SystemData `json:"data"`
		Error *string            `json:"error"`
	}
	if err := json.Unmarshal([]byte(f.body), &payload); err != nil {
		return models.Outcome{}, err
	}
	if payload.Error != nil {
		return models.Failed(*payload.Error), nil
	}
	return models.Succeeded(payload.Data), nil
}

func (f *fakeTelemetry) RestartInverter(_ context.Context, token, inverterID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if f.restartErr != nil {
		return f.restartErr
	}
	f.restarted = append(f.restarted, inverterID)
	return nil
}

func (f *fakeTelemetry) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls + f.fetchCalls
}

type observation struct {
	intent string
	result string
}

type fakeObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (f *fakeObserver) ObserveIntent(intent, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, observation{intent: intent, result: result})
}

func (f *fakeObserver) last() observation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.seen) == 0 {
		return observation{}
	}
	return f.seen[len(f.seen)-1]
}

func intentEvent(token, name string) models.Event {
	event := models.Event{Request: models.EventRequest{Type: models.RequestTypeIntent, Intent: &models.Intent{Name: name}}}
	event.Context.System.User.AccessToken = token
	return event
}

func launchEvent(token string) models.Event {
	event := models.Event{Request: models.EventRequest{Type: models.RequestTypeLaunch}}
	event.Context.System.User.AccessToken = token
	return event
}
