package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/schema"
)

// Provider is the LLM surface the services consume. Implemented by
// llm.Client; stubbed in tests.
type Provider interface {
	Complete(ctx context.Context, system string, history []domain.HistoryEntry, input string) (string, error)
	CompleteStructured(ctx context.Context, system string, history []domain.HistoryEntry, input, schemaDoc string) (json.RawMessage, error)
	Stream(ctx context.Context, system string, history []domain.HistoryEntry, input string, onDelta func(string) error) error
}

// intentKeywords maps message keywords to card types. Order matters:
// the first match wins, and no match means no structured output.
var intentKeywords = []struct {
	keyword  string
	cardType string
}{
	{"project", domain.CardTypeProject},
	{"skill", domain.CardTypeSkill},
	{"contact", domain.CardTypeContact},
	{"resume", domain.CardTypeResume},
	{"cv", domain.CardTypeResume},
}

// classifyIntent decides whether a message warrants a structured payload
// by case-insensitive substring match. It is a heuristic, not a
// classifier: ambiguous messages resolve to at most one card type.
func classifyIntent(message string) string {
	lower := strings.ToLower(message)
	for _, entry := range intentKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.cardType
		}
	}
	return ""
}

// ChatService orchestrates one chat turn: an optional structured
// completion followed by a streamed text completion, multiplexed onto a
// single ordered chunk channel.
type ChatService struct {
	ctxService *ContextService
	provider   Provider
	logger     *zap.Logger
}

// NewChatService creates a new chat service. ctxService may be nil when
// the portfolio document failed to load; chat turns then fail with
// ErrDataUnavailable.
func NewChatService(ctxService *ContextService, provider Provider, logger *zap.Logger) *ChatService {
	return &ChatService{
		ctxService: ctxService,
		provider:   provider,
		logger:     logger,
	}
}

// StreamChat runs one turn and returns its ordered chunk sequence. A
// structuredData chunk, if any, always precedes the first message chunk.
// Channel close marks completion; a terminal error chunk is emitted when
// the text completion fails.
func (s *ChatService) StreamChat(ctx context.Context, message string, history []domain.HistoryEntry) (<-chan domain.StreamChunk, error) {
	if s.ctxService == nil {
		return nil, domain.ErrDataUnavailable
	}

	systemPrompt := s.ctxService.SystemPrompt()
	ch := make(chan domain.StreamChunk, 100)

	go func() {
		defer close(ch)

		send := func(chunk domain.StreamChunk) bool {
			select {
			case ch <- chunk:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// Structured output first, when the message asks for one.
		// Failure here must not abort the textual response.
		if cardType := classifyIntent(message); cardType != "" {
			card, err := s.generateStructured(ctx, systemPrompt, history, message, cardType)
			if err != nil {
				s.logger.Warn("Structured output generation failed",
					zap.String("card_type", cardType),
					zap.Error(err),
				)
			} else if !send(domain.StreamChunk{Type: domain.ChunkTypeStructured, Data: card}) {
				return
			}
		}

		err := s.provider.Stream(ctx, systemPrompt, history, message, func(delta string) error {
			if !send(domain.StreamChunk{Type: domain.ChunkTypeMessage, Data: delta}) {
				return context.Canceled
			}
			return nil
		})
		if err != nil && ctx.Err() == nil {
			s.logger.Error("Text streaming failed", zap.Error(err))
			send(domain.StreamChunk{
				Type: domain.ChunkTypeError,
				Data: map[string]string{"message": err.Error()},
			})
		}
	}()

	return ch, nil
}

// generateStructured issues one schema-constrained completion, validates
// the payload and decodes it into its concrete card variant.
func (s *ChatService) generateStructured(ctx context.Context, systemPrompt string, history []domain.HistoryEntry, message, cardType string) (domain.Card, error) {
	schemaDoc, ok := schema.Definition(cardType)
	if !ok {
		return nil, domain.ErrUnknownCategory
	}

	system := systemPrompt + "\n\nGenerate structured output for the user query. Return only valid JSON matching the schema."
	raw, err := s.provider.CompleteStructured(ctx, system, history, message, schemaDoc)
	if err != nil {
		return nil, err
	}

	if err := schema.Validate(raw); err != nil {
		return nil, err
	}
	return domain.DecodeCard(raw)
}
