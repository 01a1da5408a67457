package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/atmledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// DefaultIdempotencyTTL is used when no TTL is configured.
	DefaultIdempotencyTTL = usecase.IdempotencyKeyTTL

	processingMarker = "processing"
)

// IdempotencyMiddleware replays the stored response of a repeated deposit,
// withdrawal or reset carrying the same Idempotency-Key.
type IdempotencyMiddleware struct {
	store  usecase.IdempotencyStore
	ttl    time.Duration
	logger zerolog.Logger
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration, logger zerolog.Logger) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}

	return &IdempotencyMiddleware{store: store, ttl: ttl, logger: logger}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only apply to mutating requests
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(IdempotencyKeyHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		// The same key on deposit and withdraw are different operations.
		key := r.Method + " " + r.URL.Path + " " + header

		exists, cached, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			m.logger.Error().Err(err).Str("key", header).Msg("idempotency check failed")
			writeJSONError(w, http.StatusInternalServerError, "idempotency_unavailable", "idempotency check failed")
			return
		}

		if exists {
			if cached == nil || string(cached) == processingMarker {
				writeJSONError(w, http.StatusConflict, "request_in_progress", "a request with this idempotency key is still being processed")
				return
			}

			var stored storedResponse
			if err := json.Unmarshal(cached, &stored); err != nil || stored.Status == 0 {
				m.logger.Error().Err(err).Str("key", header).Msg("unreadable idempotent response")
				writeJSONError(w, http.StatusInternalServerError, "idempotency_unavailable", "stored response is unreadable")
				return
			}

			if stored.ContentType != "" {
				w.Header().Set("Content-Type", stored.ContentType)
			}
			w.Header().Set("X-Idempotency-Replay", "true")
			w.WriteHeader(stored.Status)
			w.Write(stored.Body)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// Server failures may be retried with the same key.
		if recorder.statusCode >= http.StatusInternalServerError {
			if err := m.store.Release(r.Context(), key); err != nil {
				m.logger.Warn().Err(err).Str("key", header).Msg("failed to release idempotency key")
			}
			return
		}

		payload, err := json.Marshal(storedResponse{
			Status:      recorder.statusCode,
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		})
		if err == nil {
			err = m.store.Update(r.Context(), key, payload, m.ttl)
		}
		if err != nil {
			m.logger.Warn().Err(err).Str("key", header).Msg("failed to store idempotent response")
		}
	})
}

// storedResponse is what a key holds once its first request finished.
// Rejections are replayed with their original status.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body"`
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
