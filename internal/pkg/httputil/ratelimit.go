package httputil

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/bissquit/course-garden/internal/pkg/ctxlog"
	"github.com/bissquit/course-garden/internal/pkg/metrics"
)

// Limiter decides whether a request identified by key may proceed.
// retryAfter is meaningful only when allowed is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimitMiddleware limits requests per client IP.
// scope distinguishes independent budgets (e.g. "login", "signup").
// Limiter errors fail open.
func RateLimitMiddleware(limiter Limiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientIP(r)

			allowed, retryAfter, err := limiter.Allow(r.Context(), key)
			if err != nil {
				ctxlog.FromContext(r.Context()).Warn("rate limiter unavailable, allowing request",
					"scope", scope,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				metrics.RateLimitRejections.WithLabelValues(scope).Inc()
				secs := int(retryAfter.Round(time.Second).Seconds())
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				Error(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type peerKey struct{}

type peer struct {
	ip      string
	trusted bool
}

// PeerMiddleware records the socket peer before middleware.RealIP rewrites RemoteAddr.
// It must run ahead of RealIP. Forwarded headers then identify the client for rate
// limiting only when the peer falls inside one of the trusted prefixes.
func PeerMiddleware(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := hostOf(r.RemoteAddr)
			p := peer{ip: ip, trusted: isTrusted(ip, trusted)}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), peerKey{}, p)))
		})
	}
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	if len(trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP returns the socket peer recorded by PeerMiddleware, or the possibly
// rewritten RemoteAddr when the peer is a trusted proxy or was not recorded.
func clientIP(r *http.Request) string {
	if p, ok := r.Context().Value(peerKey{}).(peer); ok && !p.trusted {
		return p.ip
	}
	return hostOf(r.RemoteAddr)
}

func hostOf(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		if remoteAddr == "" {
			return "unknown"
		}
		return remoteAddr
	}
	return host
}
