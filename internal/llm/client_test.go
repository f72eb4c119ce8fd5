package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/domain"
)

func newTestClient(upstream *httptest.Server) *Client {
	return NewClient(config.LLMConfig{
		BaseURL:        upstream.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		Temperature:    0.7,
		MaxTokens:      256,
		TimeoutSeconds: 5,
	})
}

func TestComplete(t *testing.T) {
	var gotBody map[string]any
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"choices": [{"message": {"content": "Hello from the model"}}]}`)
	}))
	defer upstream.Close()

	client := newTestClient(upstream)
	history := []domain.HistoryEntry{{Role: "user", Content: "earlier"}}
	result, err := client.Complete(context.Background(), "system prompt", history, "Hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello from the model", result)

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 3)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	last := messages[2].(map[string]any)
	assert.Equal(t, "user", last["role"])
	assert.Equal(t, "Hi", last["content"])
}

func TestCompleteEmptyChoices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer upstream.Close()

	_, err := newTestClient(upstream).Complete(context.Background(), "s", nil, "Hi")
	assert.ErrorContains(t, err, "empty response")
}

func TestCompleteUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "rate limited"}}`)
	}))
	defer upstream.Close()

	_, err := newTestClient(upstream).Complete(context.Background(), "s", nil, "Hi")
	assert.ErrorContains(t, err, "status 429")
}

func TestCompleteStructured(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
		fmt.Fprint(w, `{"choices": [{"message": {"content": "{\"type\": \"skill\", \"category\": \"Backend\", \"skills\": [\"Go\"]}"}}]}`)
	}))
	defer upstream.Close()

	raw, err := newTestClient(upstream).CompleteStructured(context.Background(), "s", nil, "skills", `{"type": "object"}`)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "skill", payload["type"])
}

func TestCompleteStructuredStripsMarkdownFence(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := "Here you go:\n```json\n{\"type\": \"info\", \"title\": \"x\", \"content\": \"y\"}\n```"
		resp := map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer upstream.Close()

	raw, err := newTestClient(upstream).CompleteStructured(context.Background(), "s", nil, "info", "{}")
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "info", payload["type"])
}

func TestStream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["stream"])

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\": [{\"delta\": {\"content\": \"I \"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\": [{\"delta\": {\"content\": \"love \"}}]}\n\n")
		fmt.Fprint(w, ": keepalive comment\n\n")
		fmt.Fprint(w, "data: {\"choices\": [{\"delta\": {\"content\": \"coding\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer upstream.Close()

	var got string
	err := newTestClient(upstream).Stream(context.Background(), "s", nil, "Hi", func(delta string) error {
		got += delta
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "I love coding", got)
}

func TestStreamStopsWhenCallbackFails(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\": [{\"delta\": {\"content\": \"a\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\": [{\"delta\": {\"content\": \"b\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer upstream.Close()

	calls := 0
	err := newTestClient(upstream).Stream(context.Background(), "s", nil, "Hi", func(string) error {
		calls++
		return context.Canceled
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestStreamUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "bad key"}}`)
	}))
	defer upstream.Close()

	err := newTestClient(upstream).Stream(context.Background(), "s", nil, "Hi", func(string) error { return nil })
	assert.ErrorContains(t, err, "status 401")
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"surrounded by prose", `Sure! {"a": 1} Hope that helps.`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no object", "no json here", ""},
		{"unbalanced", `{"a": `, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractJSON(tc.in)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}
