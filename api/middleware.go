package api

import (
	"bytes"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/joinhub/join-backend/errs"
	"github.com/joinhub/join-backend/pagecache"
	"github.com/joinhub/join-backend/policy"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authMiddleware struct {
	responder Responder
	tokens    tokenManager
}

func newAuthMiddleware(tokens tokenManager) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		tokens:    tokens,
	}
}

// authenticate requires a valid bearer token and attaches the caller
// identity to the request context.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := m.callerFromRequest(r)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}
		if !caller.Authenticated {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithCaller(r.Context(), caller)))
	})
}

// identify attaches the caller identity when a valid token is present but
// lets anonymous requests through. Read endpoints use it so the feed can
// still report follow state for signed-in viewers.
func (m authMiddleware) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := m.callerFromRequest(r)
		if err != nil {
			caller = policy.Anonymous
		}
		next.ServeHTTP(w, r.WithContext(ctxWithCaller(r.Context(), caller)))
	})
}

func (m authMiddleware) callerFromRequest(r *http.Request) (policy.Caller, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return policy.Anonymous, nil
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return policy.Anonymous, errs.NewInvalidTokenError()
	}

	userID, err := m.tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return policy.Anonymous, err
	}
	return policy.Caller{ID: userID, Authenticated: true}, nil
}

// throttleMiddleware applies the lunch-break window to a route subtree.
func throttleMiddleware(throttle *policy.LunchBreakThrottle) func(http.Handler) http.Handler {
	responder := NewResponder(log.With().Str("handlerName", "throttle").Logger())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !throttle.Allow() {
				responder.WriteError(w, errs.NewThrottledError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// cacheMiddleware serves GET responses from the page cache, keyed by route
// path plus query string. Only successful responses are stored.
func cacheMiddleware(cache pagecache.Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cache == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := pagecache.Key(r.URL.Path, r.URL.RawQuery)
			if body, ok := cache.Get(key); ok {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Write(body)
				return
			}

			rec := &recordingResponseWriter{
				statusResponseWriter: statusResponseWriter{ResponseWriter: w, status: 200},
			}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK {
				cache.Set(key, rec.body.Bytes())
			}
		})
	}
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

type recordingResponseWriter struct {
	statusResponseWriter
	body bytes.Buffer
}

func (w *recordingResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.statusResponseWriter.ResponseWriter.Write(b)
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Optionally log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
