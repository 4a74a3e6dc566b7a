package clients

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerSettings configures the upstream circuit breaker.
type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
	Interval    time.Duration
}

// ErrUpstreamUnavailable wraps requests the breaker refused without contacting the upstream.
var ErrUpstreamUnavailable = errors.New("clients: upstream unavailable")

type serverStatusError struct {
	status int
}

func (e *serverStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.status)
}

// BreakerDoer guards an HTTPDoer with a circuit breaker. Transport errors and 5xx responses
// count as failures; a 5xx response is still handed back to the caller.
type BreakerDoer struct {
	next    HTTPDoer
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewBreakerDoer wraps next.
func NewBreakerDoer(name string, next HTTPDoer, settings BreakerSettings, logger *zap.Logger) *BreakerDoer {
	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	return &BreakerDoer{
		next:   next,
		logger: logger,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     name,
			Interval: settings.Interval,
			Timeout:  settings.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("upstream breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

// Do implements HTTPDoer.
func (d *BreakerDoer) Do(req *http.Request) (*http.Response, error) {
	result, err := d.breaker.Execute(func() (interface{}, error) {
		resp, err := d.next.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, &serverStatusError{status: resp.StatusCode}
		}
		return resp, nil
	})

	var statusErr *serverStatusError
	if errors.As(err, &statusErr) {
		return result.(*http.Response), nil
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			d.logger.Warn("upstream breaker rejected request",
				zap.String("breaker", d.breaker.Name()),
				zap.String("path", req.URL.Path),
			)
			return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
		}
		return nil, err
	}
	return result.(*http.Response), nil
}

// State reports the breaker state name.
func (d *BreakerDoer) State() string {
	return d.breaker.State().String()
}
