package api

import (
	"net"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimiter builds an in-memory limiter from a formatted rate such as "10-M".
func NewRateLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit rejects a client with 429 once it exceeds the limiter's rate.
// Clients are keyed by remote IP.
func RateLimit(l *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			lctx, err := l.Get(r.Context(), ip)
			if err != nil {
				logrus.WithError(err).WithField("ip", ip).Error("Failed to get rate limit context")
				writeJSONError(w, http.StatusInternalServerError, `{"error":"internal server error during rate limit check"}`)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			if lctx.Reached {
				logrus.WithFields(logrus.Fields{"ip": ip, "limit": lctx.Limit}).Warn("Rate limit exceeded")
				writeJSONError(w, http.StatusTooManyRequests, `{"error":"too many requests, please try again later"}`)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
