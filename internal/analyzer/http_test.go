package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPAnalyzerSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["text"] != "O produto chegou quebrado" {
			t.Errorf("unexpected text: %q", body["text"])
		}
		json.NewEncoder(w).Encode(map[string]string{"sentiment": "Frustração!"})
	}))
	defer srv.Close()

	a := NewHTTPAnalyzer(srv.URL, 0)
	label, err := a.Analyze(context.Background(), "O produto chegou quebrado")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "Frustração!" {
		t.Fatalf("unexpected label: %q", label)
	}
}

func TestHTTPAnalyzerMissingSentimentField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"feeling": "raiva"})
	}))
	defer srv.Close()

	a := NewHTTPAnalyzer(srv.URL, 0)
	_, err := a.Analyze(context.Background(), "texto")
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
}

func TestHTTPAnalyzerNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	a := NewHTTPAnalyzer(srv.URL, 0)
	_, err := a.Analyze(context.Background(), "texto")
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
}

func TestHTTPAnalyzerUnreachable(t *testing.T) {
	a := NewHTTPAnalyzer("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := a.Analyze(context.Background(), "texto")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestHTTPAnalyzerTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"sentiment": "raiva"})
	}))
	defer srv.Close()

	a := NewHTTPAnalyzer(srv.URL, 50*time.Millisecond)
	_, err := a.Analyze(context.Background(), "texto")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on timeout, got %v", err)
	}
}

func TestHTTPAnalyzerReusesClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"sentiment": "neutro"})
	}))
	defer srv.Close()

	a := NewHTTPAnalyzer(srv.URL, 0)
	first := a.client
	if first == nil {
		t.Fatal("expected client built by constructor")
	}
	if _, err := a.Analyze(context.Background(), "um"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Analyze(context.Background(), "dois"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.client != first {
		t.Fatal("expected the same client across calls")
	}
}

func TestMockAnalyzerDeterministic(t *testing.T) {
	m := MockAnalyzer{}
	a, _ := m.Analyze(context.Background(), "mesmo texto")
	b, _ := m.Analyze(context.Background(), "mesmo texto")
	if a != b {
		t.Fatalf("expected deterministic label, got %q and %q", a, b)
	}
}
