package clients

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type scriptedDoer struct {
	status int
	err    error
	calls  int
}

func (s *scriptedDoer) Do(*http.Request) (*http.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader(`{"error":"upstream"}`)),
	}, nil
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://api.example/v1/communication-device", nil)
	require.NoError(t, err)
	return req
}

func TestBreakerPassesServerErrorsThrough(t *testing.T) {
	next := &scriptedDoer{status: http.StatusServiceUnavailable}
	doer := NewBreakerDoer("test", next, BreakerSettings{MaxFailures: 3, OpenTimeout: time.Minute}, zaptest.NewLogger(t))

	resp, err := doer.Do(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "closed", doer.State())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	next := &scriptedDoer{err: errors.New("timeout")}
	doer := NewBreakerDoer("test", next, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute}, zaptest.NewLogger(t))

	for i := 0; i < 2; i++ {
		_, err := doer.Do(newRequest(t))
		require.Error(t, err)
	}
	assert.Equal(t, "open", doer.State())

	_, err := doer.Do(newRequest(t))
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, 2, next.calls)
}

func TestBreakerSuccess(t *testing.T) {
	next := &scriptedDoer{status: http.StatusOK}
	doer := NewBreakerDoer("test", next, BreakerSettings{}, zaptest.NewLogger(t))

	resp, err := doer.Do(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
