package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/onul/clinicdesk/internal/usecase"
)

type idempotencyStoreStub struct {
	checkAndSetFn func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (s *idempotencyStoreStub) CheckAndSet(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
	if s.checkAndSetFn != nil {
		return s.checkAndSetFn(ctx, key, value, ttl)
	}
	return false, nil, nil
}

func (s *idempotencyStoreStub) Update(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, key, value, ttl)
	}
	return nil
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	store := &idempotencyStoreStub{
		checkAndSetFn: func(_ context.Context, _ string, _ []byte, _ time.Duration) (bool, []byte, error) {
			return true, []byte(`{"id":"d1"}`), nil
		},
	}

	called := false
	handler := NewIdempotencyMiddleware(store, 0).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cash", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatal("handler ran despite cached response")
	}
	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Error("expected replay header")
	}
	if rec.Body.String() != `{"id":"d1"}` {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestIdempotencyMiddleware_TTL(t *testing.T) {
	var gotTTL time.Duration
	store := &idempotencyStoreStub{
		checkAndSetFn: func(_ context.Context, _ string, _ []byte, ttl time.Duration) (bool, []byte, error) {
			gotTTL = ttl
			return false, nil, nil
		},
	}

	send := func(m *IdempotencyMiddleware) {
		handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cash", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	send(NewIdempotencyMiddleware(store, time.Hour))
	if gotTTL != time.Hour {
		t.Errorf("ttl = %v, want %v", gotTTL, time.Hour)
	}

	// Zero falls back to the shared default.
	send(NewIdempotencyMiddleware(store, 0))
	if gotTTL != usecase.IdempotencyKeyTTL {
		t.Errorf("ttl = %v, want %v", gotTTL, usecase.IdempotencyKeyTTL)
	}
}

func TestIdempotencyMiddleware_PassesThroughWithoutKey(t *testing.T) {
	store := &idempotencyStoreStub{
		checkAndSetFn: func(_ context.Context, _ string, _ []byte, _ time.Duration) (bool, []byte, error) {
			t.Fatal("store consulted without a key")
			return false, nil, nil
		},
	}

	called := false
	handler := NewIdempotencyMiddleware(store, 0).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cash", strings.NewReader(`{}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Fatal("handler not invoked")
	}
}
