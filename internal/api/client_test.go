package api

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rickgao/kalshi-ladders/internal/auth"
)

func testCredentials(t *testing.T) *auth.Credentials {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate test key: %v", err)
	}
	return &auth.Credentials{KeyID: "test-key", PrivateKey: key}
}

func TestGetOpenEvents(t *testing.T) {
	var gotQuery atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query().Encode())

		// Signed headers must be present on every request.
		for _, h := range []string{"KALSHI-ACCESS-KEY", "KALSHI-ACCESS-TIMESTAMP", "KALSHI-ACCESS-SIGNATURE"} {
			if r.Header.Get(h) == "" {
				t.Errorf("missing header %s", h)
			}
		}

		resp := map[string]any{
			"events": []map[string]any{
				{"event_ticker": "KXHIGHNY-25AUG28", "series_ticker": "KXHIGHNY", "status": "open"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials(t), WithTimeout(5*time.Second))

	events, err := client.GetOpenEvents(context.Background(), "KXHIGHNY")
	if err != nil {
		t.Fatalf("GetOpenEvents failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Key() != "KXHIGHNY-25AUG28" {
		t.Errorf("event key = %q, want %q", events[0].Key(), "KXHIGHNY-25AUG28")
	}

	want := "limit=100&series_ticker=KXHIGHNY&status=open"
	if got := gotQuery.Load(); got != want {
		t.Errorf("query = %q, want %q", got, want)
	}
}

func TestGetOpenEvents_AbsentField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No events field at all: nothing open right now.
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials(t))

	events, err := client.GetOpenEvents(context.Background(), "KXHIGHNY")
	if err != nil {
		t.Fatalf("GetOpenEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("len(events) = %d, want 0", len(events))
	}
}

func TestGetOpenMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("event_ticker"); got != "KXHIGHNY-25AUG28" {
			t.Errorf("event_ticker = %q", got)
		}
		resp := map[string]any{
			"markets": []map[string]any{
				{"ticker": "KXHIGHNY-25AUG28-B85", "event_ticker": "KXHIGHNY-25AUG28"},
				{"ticker": "KXHIGHNY-25AUG28-T90", "event_ticker": "KXHIGHNY-25AUG28"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials(t))

	markets, err := client.GetOpenMarkets(context.Background(), "KXHIGHNY-25AUG28")
	if err != nil {
		t.Fatalf("GetOpenMarkets failed: %v", err)
	}
	if len(markets) != 2 {
		t.Fatalf("len(markets) = %d, want 2", len(markets))
	}
	if markets[0].Ticker != "KXHIGHNY-25AUG28-B85" {
		t.Errorf("ticker = %q", markets[0].Ticker)
	}
}

func TestGetOrderbook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets/KXHIGHNY-25AUG28-B85/orderbook" {
			t.Errorf("path = %q", r.URL.Path)
		}
		resp := map[string]any{
			"orderbook": map[string]any{
				"yes": [][]int{{20, 100}, {21, 50}},
				"no":  [][]int{{70, 30}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials(t))

	ob, err := client.GetOrderbook(context.Background(), "KXHIGHNY-25AUG28-B85")
	if err != nil {
		t.Fatalf("GetOrderbook failed: %v", err)
	}
	if len(ob.Yes) != 2 || len(ob.No) != 1 {
		t.Errorf("yes=%d no=%d, want 2 and 1", len(ob.Yes), len(ob.No))
	}
}

func TestGetOrderbook_AbsentField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials(t))

	ob, err := client.GetOrderbook(context.Background(), "ANY")
	if err != nil {
		t.Fatalf("GetOrderbook failed: %v", err)
	}
	if len(ob.Yes) != 0 || len(ob.No) != 0 {
		t.Errorf("expected empty book, got yes=%d no=%d", len(ob.Yes), len(ob.No))
	}
}

func TestClient_RetriesOn500(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"events":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials(t), WithRetries(3, 10*time.Millisecond))

	if _, err := client.GetOpenEvents(context.Background(), "KXHIGHNY"); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestClient_NoRetryOn404(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials(t), WithRetries(3, 10*time.Millisecond))

	_, err := client.GetOrderbook(context.Background(), "GONE")
	if err == nil {
		t.Fatal("expected error for 404")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", got)
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": [`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials(t))

	if _, err := client.GetOpenEvents(context.Background(), "KXHIGHNY"); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
