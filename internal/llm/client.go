// Package llm implements a thin client for an OpenAI-compatible chat
// completion API, covering plain, structured and streaming completions.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/domain"
)

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewClient creates a client from the LLM configuration. Upstream calls
// are bounded by the configured timeout (the HTTP client's deadline).
func NewClient(cfg config.LLMConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) buildMessages(system string, history []domain.HistoryEntry, input string) []chatMessage {
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: system})
	for _, entry := range history {
		role := entry.Role
		if role != "user" && role != "assistant" {
			role = "user"
		}
		messages = append(messages, chatMessage{Role: role, Content: entry.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: input})
	return messages
}

// Complete performs a non-streaming chat completion and returns the
// assistant message content.
func (c *Client) Complete(ctx context.Context, system string, history []domain.HistoryEntry, input string) (string, error) {
	payload := map[string]any{
		"model":       c.model,
		"messages":    c.buildMessages(system, history, input),
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
	}

	body, err := c.post(ctx, payload)
	if err != nil {
		return "", err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}

	return result.Choices[0].Message.Content, nil
}

// CompleteStructured performs a completion constrained to JSON output and
// returns the raw payload. The schema document is embedded into the system
// prompt; the caller validates the result before use.
func (c *Client) CompleteStructured(ctx context.Context, system string, history []domain.HistoryEntry, input, schemaDoc string) (json.RawMessage, error) {
	system = system + "\n\nReturn only valid JSON matching this schema, with no surrounding text:\n" + schemaDoc

	payload := map[string]any{
		"model":           c.model,
		"messages":        c.buildMessages(system, history, input),
		"max_tokens":      c.maxTokens,
		"temperature":     c.temperature,
		"response_format": map[string]string{"type": "json_object"},
	}

	body, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("llm: decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("llm: empty response")
	}

	raw := extractJSON(result.Choices[0].Message.Content)
	if raw == nil {
		return nil, fmt.Errorf("llm: no JSON object in structured response")
	}
	return raw, nil
}

// Stream performs a streaming chat completion, invoking onDelta for each
// content fragment in upstream order. Fragment boundaries are whatever the
// provider sends. Context cancellation ends the stream without error.
func (c *Client) Stream(ctx context.Context, system string, history []domain.HistoryEntry, input string, onDelta func(string) error) error {
	payload := map[string]any{
		"model":       c.model,
		"messages":    c.buildMessages(system, history, input),
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
		"stream":      true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("llm: read stream: %w", err)
		}

		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			return nil
		}

		var event struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			// Not a delta event, skip it
			continue
		}
		if len(event.Choices) == 0 {
			continue
		}
		if content := event.Choices[0].Delta.Content; content != "" {
			if err := onDelta(content); err != nil {
				return err
			}
		}
	}
}

func (c *Client) post(ctx context.Context, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, statusError(resp)
	}

	return io.ReadAll(resp.Body)
}

func statusError(resp *http.Response) error {
	var errorBody map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&errorBody)
	return fmt.Errorf("llm: status %d: %v", resp.StatusCode, errorBody)
}

var codeFence = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// extractJSON pulls a JSON object out of text that may wrap it in markdown
// fences or commentary. Returns nil when no parseable object is found.
func extractJSON(text string) json.RawMessage {
	if m := codeFence.FindStringSubmatch(text); len(m) > 1 {
		text = m[1]
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil
	}

	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil
	}
	return candidate
}
