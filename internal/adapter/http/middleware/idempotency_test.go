package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bcsbank/restbank/internal/adapter/repository/memory"
)

func TestIdempotencyMiddleware_ReplaysResponse(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"transactionId":1}`))
	})

	m := NewIdempotencyMiddleware(memory.NewIdempotencyStore(), 0)
	wrapped := m.Wrap(handler)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	wrapped.ServeHTTP(first, req)

	if first.Code != http.StatusCreated {
		t.Errorf("first status = %d, want 201", first.Code)
	}
	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	wrapped.ServeHTTP(second, req)

	if calls != 1 {
		t.Errorf("handler re-ran for a replayed key, calls = %d", calls)
	}
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Error("replay header missing")
	}
	if second.Body.String() != `{"transactionId":1}` {
		t.Errorf("replayed body = %q", second.Body.String())
	}
}

func TestIdempotencyMiddleware_DistinctKeysRunSeparately(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("ok"))
	})

	m := NewIdempotencyMiddleware(memory.NewIdempotencyStore(), 0)
	wrapped := m.Wrap(handler)

	for _, key := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, key)
		wrapped.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("handler called %d times, want 2", calls)
	}
}

func TestIdempotencyMiddleware_SkipsReadsAndMissingKeys(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("ok"))
	})

	m := NewIdempotencyMiddleware(memory.NewIdempotencyStore(), 0)
	wrapped := m.Wrap(handler)

	// GET passes through even with a key.
	req := httptest.NewRequest(http.MethodGet, "/accounts/1", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)
	wrapped.ServeHTTP(httptest.NewRecorder(), req.Clone(req.Context()))

	// POST without a key passes through every time.
	post := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("{}"))
	wrapped.ServeHTTP(httptest.NewRecorder(), post)

	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
}

func TestIdempotencyMiddleware_HonorsConfiguredTTL(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	})

	m := NewIdempotencyMiddleware(memory.NewIdempotencyStore(), time.Nanosecond)
	wrapped := m.Wrap(handler)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		time.Sleep(time.Millisecond)
		wrapped.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("handler called %d times, want 2 after the key expired", calls)
	}
}

func TestIdempotencyMiddleware_DoesNotCacheFailures(t *testing.T) {
	status := http.StatusPaymentRequired
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"not enough money"}`))
	})

	m := NewIdempotencyMiddleware(memory.NewIdempotencyStore(), 0)
	wrapped := m.Wrap(handler)

	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}

	// A retry after a failure must reach the handler again.
	status = http.StatusCreated
	retry := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("{}"))
	retry.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, retry)

	if calls != 2 {
		t.Errorf("handler called %d times, want 2", calls)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("retry status = %d, want 201", rec.Code)
	}
}
