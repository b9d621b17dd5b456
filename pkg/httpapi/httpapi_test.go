package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRouter_Health(t *testing.T) {
	r := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "message is required")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["error"] != "message is required" {
		t.Errorf("error field = %q", body["error"])
	}
}

func TestDecodeJSON_UnknownField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"mesage": "typo"}`))

	var body struct {
		Message string `json:"message"`
	}
	if err := DecodeJSON(req, &body); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestSSEWriter(t *testing.T) {
	rec := httptest.NewRecorder()

	sse, err := NewSSEWriter(rec)
	if err != nil {
		t.Fatalf("NewSSEWriter failed: %v", err)
	}
	if err := sse.Send("hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if err := sse.Done(); err != nil {
		t.Fatalf("Done failed: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	out := rec.Body.String()
	if !strings.Contains(out, "data: hello\n\n") {
		t.Errorf("missing data event in %q", out)
	}
	if !strings.Contains(out, "data: [DONE]\n\n") {
		t.Errorf("missing done marker in %q", out)
	}
	if !rec.Flushed {
		t.Error("response was never flushed")
	}
}
