package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/mnemolabs/mnemo/internal/model/chat"
	chatservice "github.com/mnemolabs/mnemo/internal/service/chat"
)

func setupRouter() (*chi.Mux, *chatservice.Service) {
	chatSvc := chatservice.NewService()
	handler := New(chatSvc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, chatSvc
}

func createChat(t *testing.T, r *chi.Mux, sessionID string) chatmodel.Chat {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"sessionId": sessionID})

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var record chatmodel.Chat
	if err := json.Unmarshal(resp.Body.Bytes(), &record); err != nil {
		t.Fatalf("decoding chat: %v", err)
	}
	return record
}

func TestCreateChat(t *testing.T) {
	r, _ := setupRouter()

	record := createChat(t, r, "s1")
	if record.ID == "" {
		t.Fatal("expected a chat ID")
	}
	if record.SessionID != "s1" {
		t.Fatalf("unexpected session ID: %s", record.SessionID)
	}
}

func TestCreateChatMissingSessionID(t *testing.T) {
	r, _ := setupRouter()
	payload := []byte(`{}`)

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetChatNotFound(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/chats/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected an error message in the body")
	}
}

func TestListChats(t *testing.T) {
	r, _ := setupRouter()
	createChat(t, r, "s1")
	createChat(t, r, "s2")

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var records []chatmodel.Chat
	if err := json.Unmarshal(resp.Body.Bytes(), &records); err != nil {
		t.Fatalf("decoding chats: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 chats, got %d", len(records))
	}
}

func TestMessagesRoundTrip(t *testing.T) {
	r, _ := setupRouter()
	record := createChat(t, r, "s1")

	payload := []byte(`{"messages":[{"role":"user","content":"hi","isSync":false}]}`)
	req := httptest.NewRequest(http.MethodPut, "/chats/"+record.ID+"/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/chats/"+record.ID+"/messages", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var messages []chatmodel.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decoding messages: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Role != "user" || messages[0].Content != "hi" || messages[0].IsSync {
		t.Fatalf("message did not round-trip: %+v", messages[0])
	}
}

func TestAppendMessagesUnknownChat(t *testing.T) {
	r, _ := setupRouter()

	payload := []byte(`{"messages":[{"role":"user","content":"hi"}]}`)
	req := httptest.NewRequest(http.MethodPut, "/chats/missing/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSetSummary(t *testing.T) {
	r, svc := setupRouter()
	record := createChat(t, r, "s1")

	payload := []byte(`{"summary":"a short recap"}`)
	req := httptest.NewRequest(http.MethodPut, "/chats/"+record.ID+"/summary", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	stored, err := svc.GetChat(req.Context(), record.ID)
	if err != nil {
		t.Fatalf("GetChat err: %v", err)
	}
	if stored.Summary != "a short recap" {
		t.Fatalf("unexpected summary: %q", stored.Summary)
	}
}

func TestSetSummaryInvalidBody(t *testing.T) {
	r, _ := setupRouter()
	record := createChat(t, r, "s1")

	req := httptest.NewRequest(http.MethodPut, "/chats/"+record.ID+"/summary", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
