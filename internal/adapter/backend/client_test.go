package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Query != "How many events?" {
			t.Errorf("unexpected query %q", req.Query)
		}
		json.NewEncoder(w).Encode(queryResponse{
			Success:  true,
			Response: "There are 42 events.",
		})
	}))
	defer srv.Close()

	c := NewClient("sql", srv.URL, []string{"events"}, 5*time.Second)
	res := c.Run(context.Background(), "How many events?")

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Response != "There are 42 events." {
		t.Fatalf("unexpected response %q", res.Response)
	}
}

func TestClientRunBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(queryResponse{
			Success: false,
			Error:   "query planning failed",
		})
	}))
	defer srv.Close()

	c := NewClient("sql", srv.URL, nil, 5*time.Second)
	res := c.Run(context.Background(), "q")

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "query planning failed" {
		t.Fatalf("unexpected error %q", res.Error)
	}
}

func TestClientRunTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("rag", srv.URL, nil, 5*time.Second)
	res := c.Run(context.Background(), "q")

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error == "" || res.Response == "" {
		t.Fatalf("expected error folded into result, got %+v", res)
	}

	// Unreachable endpoint folds the same way.
	srv.Close()
	res = c.Run(context.Background(), "q")
	if res.Success || res.Error == "" {
		t.Fatalf("expected transport failure, got %+v", res)
	}
}

func TestClientCanHandle(t *testing.T) {
	c := NewClient("sql", "http://localhost:0", []string{"events", "how many"}, time.Second)

	if !c.CanHandle("How MANY registrations?") {
		t.Fatal("expected case-insensitive keyword match")
	}
	if c.CanHandle("tell me a story") {
		t.Fatal("expected no match")
	}
}
