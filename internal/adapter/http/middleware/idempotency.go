package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/onul/clinicdesk/internal/usecase"
)

// IdempotencyKeyHeader lets clients retry a mutation safely: the first
// successful response under a key is replayed to later calls.
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyMiddleware caches successful mutation responses per key.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// Wrap short-circuits keyed POST and PUT requests that already have a
// cached response. Requests without a key pass through untouched.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		seen, cached, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		// A "processing" marker means a concurrent request holds the key
		// but has not finished; let this one run rather than block.
		if seen && cached != nil && string(cached) != "processing" {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			w.Write(cached)
			return
		}

		buf := &replayBuffer{ResponseWriter: w, body: &bytes.Buffer{}, status: http.StatusOK}
		next.ServeHTTP(buf, r)

		// Cache 2xx only; a failed mutation should be retryable.
		if buf.status >= 200 && buf.status < 300 {
			m.store.Update(r.Context(), key, buf.body.Bytes(), m.ttl)
		}
	})
}

type replayBuffer struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (b *replayBuffer) Write(p []byte) (int, error) {
	b.body.Write(p)
	return b.ResponseWriter.Write(p)
}

func (b *replayBuffer) WriteHeader(status int) {
	b.status = status
	b.ResponseWriter.WriteHeader(status)
}
