package httpserver

import (
	"net/http"
)

// Routes collects handler dependencies.
type Routes struct {
	Skill   http.Handler
	Health  http.HandlerFunc
	Metrics http.Handler
}

// NewRouter wires HTTP routes. Metrics is optional.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", method(http.MethodGet, routes.Health))
	mux.Handle("/skill", method(http.MethodPost, routes.Skill))
	if routes.Metrics != nil {
		mux.Handle("/metrics", method(http.MethodGet, routes.Metrics))
	}

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
