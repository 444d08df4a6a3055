package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Summarize(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "key-123" {
			t.Errorf("missing api key header")
		}
		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(req.Messages) != 1 {
			t.Fatalf("messages = %d, want 1", len(req.Messages))
		}
		gotPrompt = req.Messages[0].Content
		_ = json.NewEncoder(w).Encode(messagesResponse{Content: []contentBlock{{Type: "text", Text: "a summary"}}})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "key-123")
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	res, err := c.Summarize(context.Background(), "some long talk", "Meeting Minutes", "Professional", 200)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if res != "a summary" {
		t.Errorf("Summarize() = %q, want %q", res, "a summary")
	}
	for _, want := range []string{"some long talk", "Meeting Minutes", "professional", "200"} {
		if !strings.Contains(gotPrompt, want) {
			t.Errorf("prompt %q does not mention %q", gotPrompt, want)
		}
	}
}

func TestClient_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(messagesResponse{})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "key")
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	if _, err := c.Clean(context.Background(), "text"); err == nil {
		t.Error("Clean() succeeded unexpectedly")
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("", "key"); err == nil {
		t.Error("NewClient() with no url succeeded unexpectedly")
	}
	if _, err := NewClient("http://localhost", ""); err == nil {
		t.Error("NewClient() with no key succeeded unexpectedly")
	}
}

func TestPrompts(t *testing.T) {
	p := translatePrompt("labas", "Lithuanian", "Natural", true)
	for _, want := range []string{"labas", "Lithuanian", "natural", "Preserve"} {
		if !strings.Contains(p, want) {
			t.Errorf("translate prompt %q does not mention %q", p, want)
		}
	}
	p = summarizePrompt("text", "Standard", "", 0)
	if strings.Contains(p, "Standard") {
		t.Errorf("summarize prompt should not mention the default template: %q", p)
	}
	p = cleanPrompt("uh hello")
	if !strings.Contains(p, "uh hello") {
		t.Errorf("clean prompt %q does not carry the text", p)
	}
}
