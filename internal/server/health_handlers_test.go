package server

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	app, _ := setupHandlerTest(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/health/live", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("live: expected 200, got %d", resp.StatusCode)
	}
	var live map[string]interface{}
	if err := json.Unmarshal(raw, &live); err != nil {
		t.Fatalf("decode live: %v", err)
	}
	if live["status"] != "ok" {
		t.Fatalf("expected ok, got %v", live["status"])
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/health/ready", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", resp.StatusCode)
	}
}
