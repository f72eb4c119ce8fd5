// Package client is a Go consumer for the portfolio chat backend: it
// sends chat turns, incrementally reconstructs assistant messages from the
// SSE stream, and fetches card endpoints.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-chat/internal/domain"
)

// State is the lifecycle of one send operation
type State string

const (
	StateIdle      State = "idle"
	StateSending   State = "sending"
	StateStreaming State = "streaming"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Client consumes the chat backend. It owns the ordered message list for
// one session and allows a single in-flight send at a time.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      *zap.Logger
	typingDelay time.Duration

	mu       sync.Mutex
	messages []domain.ChatMessage
	state    State
	lastErr  error
	cancel   context.CancelFunc
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTypingDelay inserts a pause between delta applications to keep the
// perceived typing speed readable. Zero (the default) applies deltas as
// they arrive.
func WithTypingDelay(d time.Duration) Option {
	return func(c *Client) { c.typingDelay = d }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the given backend base URL, e.g.
// "http://localhost:4000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Messages returns a snapshot of the session's ordered message list
func (c *Client) Messages() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// State returns the current send state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the failure reason of the last send, if any
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ClearMessages resets the message list and error state. It does not
// cancel an in-flight send; a running stream keeps appending to its own
// placeholder.
func (c *Client) ClearMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.lastErr = nil
}

// Stop aborts the in-flight send, if any. An aborted send is not a
// failure: partial content already applied is kept.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// AddCardMessage appends an assistant message carrying a card payload,
// used when presenting card endpoint results in the conversation.
func (c *Client) AddCardMessage(card domain.Card, message string, projects []domain.ProjectCard) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, domain.ChatMessage{
		ID:             uuid.New().String(),
		Role:           "assistant",
		Content:        message,
		StructuredData: card,
		Projects:       projects,
	})
}

// sseEnvelope mirrors the {"type","data"} frame payload
type sseEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// SendMessage sends one chat turn and blocks until the stream completes,
// fails, or ctx is cancelled. Whitespace-only messages are a no-op.
// Returns ErrBusy while another send is in flight.
func (c *Client) SendMessage(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return nil
	}

	c.mu.Lock()
	if c.state == StateSending || c.state == StateStreaming {
		c.mu.Unlock()
		return domain.ErrBusy
	}

	// History is everything before this turn's user message.
	history := make([]domain.HistoryEntry, len(c.messages))
	for i, msg := range c.messages {
		history[i] = domain.HistoryEntry{Role: msg.Role, Content: msg.Content}
	}

	// The user message is optimistic: it is never rolled back.
	c.messages = append(c.messages, domain.ChatMessage{
		ID:      uuid.New().String(),
		Role:    "user",
		Content: message,
	})
	c.state = StateSending
	c.lastErr = nil

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	err := c.stream(ctx, message, history)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel = nil

	if err != nil {
		if ctx.Err() != nil {
			// Aborted by the caller: no error state, partial content kept.
			c.state = StateIdle
			return nil
		}
		c.removePlaceholder()
		c.state = StateFailed
		c.lastErr = err
		return err
	}

	c.state = StateCompleted
	return nil
}

func (c *Client) stream(ctx context.Context, message string, history []domain.HistoryEntry) error {
	body, err := json.Marshal(domain.ChatRequest{
		Message:             message,
		ConversationHistory: history,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}

	// The assistant placeholder appears once the stream is live.
	c.mu.Lock()
	c.messages = append(c.messages, domain.ChatMessage{
		ID:   uuid.New().String(),
		Role: "assistant",
	})
	c.state = StateStreaming
	c.mu.Unlock()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return nil
		}

		var envelope sseEnvelope
		if err := json.Unmarshal([]byte(data), &envelope); err != nil {
			// Malformed frames are skipped, never fatal
			c.logger.Warn("Skipping malformed SSE frame", zap.Error(err))
			continue
		}

		switch envelope.Type {
		case domain.ChunkTypeStructured:
			card, err := domain.DecodeCard(envelope.Data)
			if err != nil {
				c.logger.Warn("Skipping invalid structured payload", zap.Error(err))
				continue
			}
			c.attachCard(card)
		case domain.ChunkTypeMessage:
			var delta string
			if err := json.Unmarshal(envelope.Data, &delta); err != nil {
				c.logger.Warn("Skipping invalid message delta", zap.Error(err))
				continue
			}
			if c.typingDelay > 0 {
				time.Sleep(c.typingDelay)
			}
			c.appendDelta(delta)
		case domain.ChunkTypeError:
			var payload struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(envelope.Data, &payload); err != nil || payload.Message == "" {
				payload.Message = "stream error"
			}
			return fmt.Errorf("server error: %s", payload.Message)
		}
	}

	return scanner.Err()
}

// attachCard attaches a structured payload to the streaming assistant
// message; later arrivals overwrite.
func (c *Client) attachCard(card domain.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if last := c.lastAssistant(); last != nil {
		last.StructuredData = card
	}
}

func (c *Client) appendDelta(delta string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if last := c.lastAssistant(); last != nil {
		last.Content += delta
	}
}

// lastAssistant returns the trailing assistant message, or nil. Callers
// hold c.mu.
func (c *Client) lastAssistant() *domain.ChatMessage {
	if len(c.messages) == 0 {
		return nil
	}
	last := &c.messages[len(c.messages)-1]
	if last.Role != "assistant" {
		return nil
	}
	return last
}

// removePlaceholder discards the partial assistant turn after a failed
// stream. Callers hold c.mu.
func (c *Client) removePlaceholder() {
	if len(c.messages) == 0 {
		return
	}
	if c.messages[len(c.messages)-1].Role == "assistant" {
		c.messages = c.messages[:len(c.messages)-1]
	}
}

// FetchCard retrieves one card category from the backend
func (c *Client) FetchCard(ctx context.Context, category string) (*domain.CardResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/cards/"+category, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error != "" {
			return nil, fmt.Errorf("card request failed: %s", payload.Error)
		}
		return nil, fmt.Errorf("card request failed with status %d", resp.StatusCode)
	}

	var envelope struct {
		StructuredData json.RawMessage      `json:"structuredData"`
		Message        string               `json:"message"`
		Projects       []domain.ProjectCard `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode card response: %w", err)
	}

	card, err := domain.DecodeCard(envelope.StructuredData)
	if err != nil {
		return nil, err
	}

	return &domain.CardResponse{
		StructuredData: card,
		Message:        envelope.Message,
		Projects:       envelope.Projects,
	}, nil
}
