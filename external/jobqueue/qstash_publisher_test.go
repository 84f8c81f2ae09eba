package jobqueue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
	"github.com/riskibarqy/league-scheduler/internal/platform/resilience"
)

func TestQStashPublisher_Enqueue(t *testing.T) {
	var mu sync.Mutex
	var gotPath string
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://scheduler.example.com",
		Retries:          3,
		InternalJobToken: "internal-token",
	}, logging.NewNop())

	err := publisher.Enqueue(
		context.Background(),
		"/v1/internal/jobs/regenerate",
		map[string]string{"season_id": "rec-basketball-2026-regular"},
		0,
		"regenerate-rec-basketball-2026-regular",
	)
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.HasPrefix(gotPath, "/v2/publish/") {
		t.Fatalf("expected publish path, got %q", gotPath)
	}
	if !strings.HasSuffix(gotPath, "/v1/internal/jobs/regenerate") {
		t.Fatalf("expected target path in publish URL, got %q", gotPath)
	}
	if got := gotHeaders.Get("Authorization"); got != "Bearer qstash-token" {
		t.Fatalf("unexpected authorization header: %q", got)
	}
	if got := gotHeaders.Get("Upstash-Deduplication-Id"); got != "regenerate-rec-basketball-2026-regular" {
		t.Fatalf("unexpected deduplication id: %q", got)
	}
	if got := gotHeaders.Get("Upstash-Retries"); got != "3" {
		t.Fatalf("unexpected retries header: %q", got)
	}
	if got := gotHeaders.Get("Upstash-Forward-X-Internal-Job-Token"); got != "internal-token" {
		t.Fatalf("unexpected forwarded token: %q", got)
	}
}

func TestQStashPublisher_CircuitOpensAfterFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       server.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://scheduler.example.com",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		if err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/regenerate", nil, 0, ""); err == nil {
			t.Fatalf("expected failure on attempt %d", i+1)
		}
	}

	err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/regenerate", nil, 0, "")
	if err == nil || !strings.Contains(err.Error(), "temporarily unavailable") {
		t.Fatalf("expected circuit breaker rejection, got %v", err)
	}
}

func TestNormalizeDelay(t *testing.T) {
	if got := normalizeDelay(0); got != "0s" {
		t.Fatalf("expected 0s, got %s", got)
	}
	if got := normalizeDelay(90 * time.Second); got != "90s" {
		t.Fatalf("expected 90s, got %s", got)
	}
}

func TestValidateHTTPBaseURL(t *testing.T) {
	if _, err := validateHTTPBaseURL("ftp://example.com"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
	got, err := validateHTTPBaseURL("https://qstash.upstash.io/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://qstash.upstash.io" {
		t.Fatalf("expected trailing slash trimmed, got %q", got)
	}
}
