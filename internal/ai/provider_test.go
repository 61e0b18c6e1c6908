package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ProviderConfig
		wantErr  bool
		wantType string
	}{
		{
			name: "anthropic provider",
			cfg: ProviderConfig{
				Provider: "anthropic",
				APIKey:   "test-key",
				Model:    "claude-haiku-4-5",
			},
			wantErr:  false,
			wantType: "*ai.AnthropicProvider",
		},
		{
			name: "openai provider",
			cfg: ProviderConfig{
				Provider: "openai",
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
			wantErr:  false,
			wantType: "*ai.OpenAIProvider",
		},
		{
			name: "unsupported provider",
			cfg: ProviderConfig{
				Provider: "invalid",
				APIKey:   "test-key",
				Model:    "some-model",
			},
			wantErr: true,
		},
		{
			name: "empty provider",
			cfg: ProviderConfig{
				Provider: "",
				APIKey:   "test-key",
				Model:    "some-model",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if provider != nil {
					t.Fatal("expected nil provider when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if provider == nil {
				t.Fatal("expected non-nil provider")
			}

			// Verify the concrete type via type assertion.
			switch tt.wantType {
			case "*ai.AnthropicProvider":
				if _, ok := provider.(*AnthropicProvider); !ok {
					t.Errorf("expected *AnthropicProvider, got %T", provider)
				}
			case "*ai.OpenAIProvider":
				if _, ok := provider.(*OpenAIProvider); !ok {
					t.Errorf("expected *OpenAIProvider, got %T", provider)
				}
			}
		})
	}
}

func TestAnthropicSummarize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotReq anthropicRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("x-api-key") != "test-key" {
				t.Errorf("x-api-key header = %q, want %q", r.Header.Get("x-api-key"), "test-key")
			}
			if r.Header.Get("anthropic-version") == "" {
				t.Error("missing anthropic-version header")
			}
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Fatalf("decoding request: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"content": []map[string]string{{"text": "Shares rose on strong earnings."}},
			})
		}))
		defer server.Close()

		p := NewAnthropicProvider("test-key", "claude-haiku-4-5")
		p.baseURL = server.URL

		got, err := p.Summarize(context.Background(), "Some article text.", 150, 60)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Shares rose on strong earnings." {
			t.Errorf("Summarize() = %q", got)
		}
		if gotReq.Model != "claude-haiku-4-5" {
			t.Errorf("request model = %q", gotReq.Model)
		}
		if !strings.Contains(gotReq.System, "60 to 150 words") {
			t.Errorf("system prompt missing length bounds: %q", gotReq.System)
		}
		if len(gotReq.Messages) != 1 || !strings.Contains(gotReq.Messages[0].Content, "Some article text.") {
			t.Errorf("user prompt missing article text: %+v", gotReq.Messages)
		}
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "rate limit exceeded"},
			})
		}))
		defer server.Close()

		p := NewAnthropicProvider("test-key", "claude-haiku-4-5")
		p.baseURL = server.URL

		_, err := p.Summarize(context.Background(), "Some article text.", 150, 60)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "rate limit exceeded") {
			t.Errorf("error = %v, want rate limit message", err)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{}})
		}))
		defer server.Close()

		p := NewAnthropicProvider("test-key", "claude-haiku-4-5")
		p.baseURL = server.URL

		_, err := p.Summarize(context.Background(), "Some article text.", 150, 60)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestOpenAISummarize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotReq openaiRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer test-key" {
				t.Errorf("Authorization header = %q", r.Header.Get("Authorization"))
			}
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Fatalf("decoding request: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"content": "Shares rose on strong earnings."}},
				},
			})
		}))
		defer server.Close()

		p := NewOpenAIProvider("test-key", "gpt-4o-mini")
		p.baseURL = server.URL

		got, err := p.Summarize(context.Background(), "Some article text.", 150, 60)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Shares rose on strong earnings." {
			t.Errorf("Summarize() = %q", got)
		}
		if len(gotReq.Messages) != 2 {
			t.Fatalf("got %d messages, want 2", len(gotReq.Messages))
		}
		if gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
			t.Errorf("message roles = %q, %q", gotReq.Messages[0].Role, gotReq.Messages[1].Role)
		}
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "invalid api key"},
			})
		}))
		defer server.Close()

		p := NewOpenAIProvider("bad-key", "gpt-4o-mini")
		p.baseURL = server.URL

		_, err := p.Summarize(context.Background(), "Some article text.", 150, 60)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "invalid api key") {
			t.Errorf("error = %v, want invalid key message", err)
		}
	})
}
