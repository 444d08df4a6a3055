package transcriber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "base" {
			t.Errorf("model = %q, want base", got)
		}
		if got := r.FormValue("start"); got != "" {
			t.Errorf("start = %q, want empty for full audio", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"text":     "hello world",
			"language": "en",
			"duration": 2.5,
			"words": []map[string]interface{}{
				{"word": "hello", "start": 0.1, "end": 0.6},
				{"word": "world", "start": 0.8, "end": 1.3},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	res, err := c.Transcribe(context.Background(), Request{Name: "a.wav", Audio: []byte("xx"), Model: "base"})
	if err != nil {
		t.Fatalf("Transcribe() failed: %v", err)
	}
	if res.Text != "hello world" || res.Language != "en" || res.Duration != 2.5 {
		t.Errorf("Transcribe() = %+v, unexpected header fields", res)
	}
	if len(res.Words) != 2 || res.Words[0].Word != "hello" || res.Words[0].Start != 0.1 {
		t.Errorf("Transcribe() words = %+v", res.Words)
	}
}

func TestClient_TranscribeRangeOffsets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("start"); got != "3" {
			t.Errorf("start = %q, want 3", got)
		}
		if got := r.FormValue("end"); got != "9.3" {
			t.Errorf("end = %q, want 9.3", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"text":     "word",
			"duration": 6.3,
			"words": []map[string]interface{}{
				{"word": "word", "start": 0.5, "end": 1.0},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	res, err := c.Transcribe(context.Background(), Request{Name: "a.wav", Model: "base", Start: 3, End: 9.3, Explicit: true})
	if err != nil {
		t.Fatalf("Transcribe() failed: %v", err)
	}
	// clip-relative offsets are shifted to asset-relative
	if res.Words[0].Start != 3.5 || res.Words[0].End != 4.0 {
		t.Errorf("Transcribe() words = %+v, want start 3.5 end 4.0", res.Words)
	}
}

func TestClient_TranscribeBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "no model"})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	if _, err := c.Transcribe(context.Background(), Request{Name: "a.wav", Model: "base"}); err == nil {
		t.Error("Transcribe() succeeded unexpectedly")
	}
}

func TestClient_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/load" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req loadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Model != "small" {
			t.Errorf("model = %q, want small", req.Model)
		}
		_ = json.NewEncoder(w).Encode(loadResponse{Loaded: true})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	if err := c.Load(context.Background(), "small"); err != nil {
		t.Errorf("Load() failed: %v", err)
	}
}

func TestNewClient_NoURL(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("NewClient() succeeded unexpectedly")
	}
}
