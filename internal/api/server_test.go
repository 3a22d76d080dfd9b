package api

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/fedwatch/fedwatch/internal/config"
	"github.com/fedwatch/fedwatch/internal/macro"
	"github.com/fedwatch/fedwatch/internal/models"
	"github.com/fedwatch/fedwatch/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Storage) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.ListenAddr = ":0"
	cfg.Server.CORSOrigins = "*"

	provider := macro.NewProvider(filepath.Join(t.TempDir(), "missing.json"))

	srv := New(cfg)
	srv.RegisterRoutes(store, provider)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("failed to decode response %q: %v", body, err)
	}
	return decoded
}

func sampleRecord(score float64) storage.Record {
	ts := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	return storage.Record{
		ID:        "rec-1",
		Timestamp: ts,
		Trends: map[string]models.RawCountResult{
			"tech": {
				Category:  "tech",
				Keywords:  "software engineer OR developer",
				Location:  "United States",
				Count:     models.NewCount(1532),
				Timestamp: ts,
			},
			"retail": {
				Category:  "retail",
				Keywords:  "retail OR cashier",
				Location:  "United States",
				Count:     models.NewCount(890),
				Timestamp: ts,
			},
		},
		Categories:  []string{"tech", "retail"},
		HealthScore: score,
		Rating:      models.RatingFromScore(score),
	}
}

func TestRootBanner(t *testing.T) {
	srv := newTestServer(t, storage.New(10, filepath.Join(t.TempDir(), "trends.json")))

	req, _ := http.NewRequest("GET", "/", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	decoded := decodeBody(t, resp)
	if decoded["name"] != "FedWatch API" {
		t.Errorf("expected service name in banner, got %v", decoded["name"])
	}
	endpoints, ok := decoded["endpoints"].(map[string]any)
	if !ok {
		t.Fatal("expected endpoint index in banner")
	}
	if endpoints["trends"] != "/api/v1/trends" {
		t.Errorf("expected trends endpoint in index, got %v", endpoints["trends"])
	}
}

func TestTrendsInsufficientData(t *testing.T) {
	srv := newTestServer(t, storage.New(10, filepath.Join(t.TempDir(), "trends.json")))

	req, _ := http.NewRequest("GET", "/api/v1/trends", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for missing data, got %d", resp.StatusCode)
	}

	decoded := decodeBody(t, resp)
	if decoded["status"] != "insufficient_data" {
		t.Errorf("expected insufficient_data status, got %v", decoded["status"])
	}
}

func TestTrendsReturnsLatestRecord(t *testing.T) {
	store := storage.New(10, filepath.Join(t.TempDir(), "trends.json"))
	if err := store.Append(sampleRecord(80.0)); err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	srv := newTestServer(t, store)

	req, _ := http.NewRequest("GET", "/api/v1/trends", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	decoded := decodeBody(t, resp)
	if decoded["status"] != "ok" {
		t.Fatalf("expected ok status, got %v", decoded["status"])
	}

	data, ok := decoded["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data envelope")
	}
	if data["health_score"] != 80.0 {
		t.Errorf("expected health score 80.0, got %v", data["health_score"])
	}
	if data["rating"] != models.RatingHealthy {
		t.Errorf("expected healthy rating, got %v", data["rating"])
	}
}

func TestSignalsListsCategoriesInOrder(t *testing.T) {
	store := storage.New(10, filepath.Join(t.TempDir(), "trends.json"))
	if err := store.Append(sampleRecord(66.7)); err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	srv := newTestServer(t, store)

	req, _ := http.NewRequest("GET", "/api/v1/signals", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	decoded := decodeBody(t, resp)
	data, ok := decoded["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data envelope")
	}
	signals, ok := data["indeed"].([]any)
	if !ok {
		t.Fatal("expected indeed signal list")
	}
	if len(signals) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(signals))
	}

	first, _ := signals[0].(map[string]any)
	if first["category"] != "tech" {
		t.Errorf("expected tech first (configured order), got %v", first["category"])
	}
	if first["job_count"] != 1532.0 {
		t.Errorf("expected job count 1532, got %v", first["job_count"])
	}
}

func TestMacroHealthUsesBaseline(t *testing.T) {
	srv := newTestServer(t, storage.New(10, filepath.Join(t.TempDir(), "trends.json")))

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	decoded := decodeBody(t, resp)
	if decoded["status"] != "ok" {
		t.Fatalf("expected ok status, got %v", decoded["status"])
	}

	data, ok := decoded["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data envelope")
	}
	// Baseline: unemployment 4.3%, CPI 2.4% => 100 - 0.4*10 = 96.0
	if data["score"] != 96.0 {
		t.Errorf("expected baseline macro score 96.0, got %v", data["score"])
	}
	if data["rating"] != models.RatingHealthy {
		t.Errorf("expected healthy rating, got %v", data["rating"])
	}
}

func TestMacroMetricsReturnsAllGroups(t *testing.T) {
	srv := newTestServer(t, storage.New(10, filepath.Join(t.TempDir(), "trends.json")))

	req, _ := http.NewRequest("GET", "/api/v1/metrics", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	decoded := decodeBody(t, resp)
	data, ok := decoded["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data envelope")
	}
	for _, group := range []string{"employment", "inflation", "monetary", "gdp"} {
		if _, present := data[group]; !present {
			t.Errorf("expected indicator group %q in metrics payload", group)
		}
	}
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	srv := newTestServer(t, storage.New(10, filepath.Join(t.TempDir(), "trends.json")))

	req, _ := http.NewRequest("GET", "/api/v1/history?limit=-1", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative limit, got %d", resp.StatusCode)
	}

	decoded := decodeBody(t, resp)
	if decoded["status"] != "error" {
		t.Errorf("expected error status, got %v", decoded["status"])
	}
}
