package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/manasmitra/backend/internal/analysis/crisis"
	"github.com/manasmitra/backend/internal/config"
	chatmodel "github.com/manasmitra/backend/internal/model/chat"
	"github.com/manasmitra/backend/internal/service/ai"
	chatservice "github.com/manasmitra/backend/internal/service/chat"
	"github.com/manasmitra/backend/internal/service/mentalhealth"
)

type stubOrchestrator struct {
	result chatmodel.Result
	gotSID string
	gotMsg string
}

func (s *stubOrchestrator) ProcessMessage(_ context.Context, sessionID, language, message string) chatmodel.Result {
	s.gotSID = sessionID
	s.gotMsg = message
	s.result.SessionID = sessionID
	s.result.Language = language
	return s.result
}

func setupRouter(orch Orchestrator, llamaReady, mhReady bool) *chi.Mux {
	handler := New(orch, func() bool { return llamaReady }, func() bool { return mhReady })
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postChat(t *testing.T, r http.Handler, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatValidRequest(t *testing.T) {
	orch := &stubOrchestrator{result: chatmodel.Result{Response: "hello"}}
	r := setupRouter(orch, true, true)

	resp := postChat(t, r, map[string]string{"message": "hi", "sessionId": "s1", "language": "hi-IN"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result chatmodel.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Response != "hello" || result.SessionID != "s1" || result.Language != "hi-IN" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if orch.gotSID != "s1" || orch.gotMsg != "hi" {
		t.Fatalf("orchestrator saw sessionID=%q message=%q", orch.gotSID, orch.gotMsg)
	}
}

func TestChatDefaultLanguage(t *testing.T) {
	orch := &stubOrchestrator{}
	r := setupRouter(orch, true, true)

	resp := postChat(t, r, map[string]string{"message": "hi", "sessionId": "s1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result chatmodel.Result
	json.Unmarshal(resp.Body.Bytes(), &result)
	if result.Language != "en" {
		t.Fatalf("expected default language en, got %q", result.Language)
	}
}

func TestChatMissingFields(t *testing.T) {
	r := setupRouter(&stubOrchestrator{}, true, true)

	if resp := postChat(t, r, map[string]string{"sessionId": "s1"}); resp.Code != http.StatusBadRequest {
		t.Fatalf("missing message: expected 400, got %d", resp.Code)
	}
	if resp := postChat(t, r, map[string]string{"message": "hi"}); resp.Code != http.StatusBadRequest {
		t.Fatalf("missing sessionId: expected 400, got %d", resp.Code)
	}
}

func TestChatMalformedBody(t *testing.T) {
	r := setupRouter(&stubOrchestrator{}, true, true)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("not json"))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHealthReportsRecordedReadiness(t *testing.T) {
	r := setupRouter(&stubOrchestrator{}, true, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Status   string          `json:"status"`
		Services map[string]bool `json:"services"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "healthy" {
		t.Fatalf("expected healthy status, got %q", payload.Status)
	}
	if !payload.Services["llamaReady"] || payload.Services["mentalHealthReady"] {
		t.Fatalf("unexpected readiness payload: %+v", payload.Services)
	}
}

// Gateway failure transparency: with the inference endpoint down, the chat
// endpoint still answers with HTTP success and the classifier verdict.
func TestChatEndToEndWithGatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	aiSvc := ai.NewService(config.AIConfig{Token: "t", ModelURL: srv.URL, MaxTokens: 150, Temperature: 0.7, Timeout: 2})
	classifier := crisis.NewClassifier(crisis.DefaultKeywords())
	mhSvc := mentalhealth.NewService(classifier, aiSvc)
	store := chatservice.NewSessionStore()
	orch := chatservice.NewService(store, mhSvc)
	r := setupRouter(orch, aiSvc.Ready(), mhSvc.Ready())

	resp := postChat(t, r, map[string]string{"message": "I want to end it all", "sessionId": "s9"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 despite gateway failure, got %d", resp.Code)
	}

	var result chatmodel.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.CrisisDetected {
		t.Fatal("classifier verdict must survive gateway failure")
	}
	if !strings.Contains(result.Response, "technical difficulties") {
		t.Fatalf("expected the fallback apology in the response, got %q", result.Response)
	}
	if !strings.Contains(result.Response, "Crisis Resources") {
		t.Fatalf("expected the hotline block, got %q", result.Response)
	}
	if turns := store.RecentContext("s9", 10); len(turns) != 2 {
		t.Fatalf("expected both turns stored, got %d", len(turns))
	}
}
