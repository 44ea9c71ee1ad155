// Package httpmw records one spool line per HTTP request.
package httpmw

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/constants"
)

const (
	randomIDLength = 8
	defaultTag     = "HTTP"

	// Source location reported on lines whose format includes file or func.
	sourceFile = "httpmw"
	sourceFunc = "Middleware"
)

type requestIDKey struct{}

// RequestID returns the request id stored by the middleware, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)

	return id
}

// Option configures the behaviour of the Middleware.
type Option func(*options)

type options struct {
	tag            string
	requestHeader  string
	idGenerator    func() string
	generateIfMiss bool
	now            func() time.Time
}

// WithTag sets the tag lines are logged under. The default is "HTTP".
func WithTag(tag string) Option {
	return func(o *options) {
		if tag != "" {
			o.tag = tag
		}
	}
}

// WithRequestHeader configures the header used to read and echo the request id.
func WithRequestHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.requestHeader = name
		}
	}
}

// WithIDGenerator provides a custom generator used when the header is missing.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.idGenerator = fn
		}
	}
}

// WithGenerateMissingIDs instructs the middleware to create ids when the header is absent.
func WithGenerateMissingIDs(enable bool) Option {
	return func(o *options) {
		o.generateIfMiss = enable
	}
}

// Middleware logs every request after it completes. 5xx responses are logged at
// Error, 4xx at Warn and everything else at Info, so the engine's level filter
// decides how chatty the access log is.
func Middleware(logger spoollog.Logger, opts ...Option) func(http.Handler) http.Handler {
	cfg := options{
		tag:            defaultTag,
		requestHeader:  constants.RequestHeader,
		idGenerator:    randomID,
		generateIfMiss: true,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := cfg.now()

			requestID := r.Header.Get(cfg.requestHeader)
			if requestID == "" && cfg.generateIfMiss {
				requestID = cfg.idGenerator()
			}

			if requestID != "" {
				w.Header().Set(cfg.requestHeader, requestID)
				r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.Log(levelFor(recorder.status), cfg.tag, sourceFile, sourceFunc, 0,
				"%s %s %d %dB %s rid=%s",
				r.Method, r.URL.Path, recorder.status, recorder.written,
				cfg.now().Sub(start).Round(time.Microsecond), requestID)
		})
	}
}

func levelFor(status int) spoollog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return spoollog.ErrorLevel
	case status >= http.StatusBadRequest:
		return spoollog.WarnLevel
	default:
		return spoollog.InfoLevel
	}
}

type statusRecorder struct {
	http.ResponseWriter

	status      int
	written     int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(status int) {
	if !s.wroteHeader {
		s.status = status
		s.wroteHeader = true
	}

	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	s.wroteHeader = true

	n, err := s.ResponseWriter.Write(p)
	s.written += n

	return n, err //nolint:wrapcheck // pass-through writer
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func randomID() string {
	bytes := make([]byte, randomIDLength)

	_, err := rand.Read(bytes)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(bytes)
}
