package api

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"innkeep/internal/config"

	"golang.org/x/time/rate"
)

const apiKeyHeaderDefault = "x-api-key"

// HTTPAuth provides API-key auth and per-key rate limiting.
type HTTPAuth struct {
	cfg      config.APIConfig
	clients  map[string]config.APIClientKey
	limiters sync.Map // map[string]*rate.Limiter
}

func NewHTTPAuth(cfg config.APIConfig) *HTTPAuth {
	m := make(map[string]config.APIClientKey, len(cfg.Auth.APIKeys))
	for _, k := range cfg.Auth.APIKeys {
		m[k.Key] = k
	}
	return &HTTPAuth{cfg: cfg, clients: m}
}

func (a *HTTPAuth) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.cfg.Auth.Enabled {
			if err := a.checkAuth(r); err != "" {
				writeError(w, http.StatusUnauthorized, err)
				return
			}
		}

		if !a.allowRate(r) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *HTTPAuth) checkAuth(r *http.Request) string {
	header := strings.TrimSpace(strings.ToLower(a.cfg.Auth.HeaderAPIKey))
	if header == "" {
		header = apiKeyHeaderDefault
	}

	apiKey := strings.TrimSpace(r.Header.Get(header))
	if apiKey == "" {
		return "missing api key header"
	}

	if _, ok := a.clients[apiKey]; !ok {
		return "invalid api key"
	}
	return ""
}

func (a *HTTPAuth) allowRate(r *http.Request) bool {
	if a.cfg.RateLimit.RPS <= 0 {
		return true
	}
	return a.getLimiter(a.clientKey(r)).Allow()
}

func (a *HTTPAuth) clientKey(r *http.Request) string {
	header := strings.TrimSpace(strings.ToLower(a.cfg.Auth.HeaderAPIKey))
	if header == "" {
		header = apiKeyHeaderDefault
	}

	if apiKey := strings.TrimSpace(r.Header.Get(header)); apiKey != "" {
		return apiKey
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}

func (a *HTTPAuth) getLimiter(key string) *rate.Limiter {
	if v, ok := a.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := a.cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(a.cfg.RateLimit.RPS), burst)
	actual, loaded := a.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}
