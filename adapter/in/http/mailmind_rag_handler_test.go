package http

import (
	"bytes"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"mailmind_server/core/agent/rag"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	embedder := rag.NewHashEmbedder(0)
	store := rag.NewStore(embedder, 0)
	retriever := rag.NewRetriever(embedder, store)

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	NewRAGHandler(store, retriever).Register(app.Group("/api/v1"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(nethttp.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return resp.StatusCode, decoded
}

func TestRAGInitializeAndSimilar(t *testing.T) {
	app := newTestApp()

	status, body := postJSON(t, app, "/api/v1/rag/initialize", map[string]any{
		"emails": []map[string]string{
			{"id": "1", "subject": "invoice payment", "body": "invoice payment due", "from": "alice@corp.com"},
			{"id": "2", "subject": "lunch plans", "body": "lunch tomorrow", "from": "bob@corp.com"},
		},
	})
	if status != 200 {
		t.Fatalf("initialize status = %d, body = %v", status, body)
	}
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	if body["succeeded"].(float64) != 2 {
		t.Errorf("succeeded = %v, want 2", body["succeeded"])
	}

	status, body = postJSON(t, app, "/api/v1/rag/similar", map[string]any{
		"query_text": "invoice payment due",
	})
	if status != 200 {
		t.Fatalf("similar status = %d, body = %v", status, body)
	}
	results := body["similar_emails"].([]any)
	if len(results) == 0 {
		t.Fatal("expected at least one similar email")
	}
	first := results[0].(map[string]any)
	if first["email_id"] != "1" {
		t.Errorf("top result = %v, want email 1", first["email_id"])
	}
	if body["filtered_by_sender"] != false {
		t.Errorf("filtered_by_sender = %v, want false", body["filtered_by_sender"])
	}
}

func TestRAGSimilarRequiresQueryText(t *testing.T) {
	app := newTestApp()

	status, body := postJSON(t, app, "/api/v1/rag/similar", map[string]any{"top_k": 3})
	if status != 400 {
		t.Fatalf("status = %d, want 400, body = %v", status, body)
	}
}

func TestRAGInitializeRequiresEmails(t *testing.T) {
	app := newTestApp()

	status, _ := postJSON(t, app, "/api/v1/rag/initialize", map[string]any{})
	if status != 400 {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestRAGStats(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/rag/stats", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("stats request: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["rag_enabled"] != true {
		t.Errorf("rag_enabled = %v", body["rag_enabled"])
	}
	stats := body["stats"].(map[string]any)
	if stats["total_emails"].(float64) != 0 {
		t.Errorf("total_emails = %v, want 0", stats["total_emails"])
	}
}
