// Package coach implements the sales-coach assistant: it serializes the
// current pipeline into a model-readable context and exchanges one
// role-tagged turn per request with an injected language model.
package coach

import (
	"context"
	"log/slog"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// FallbackReply is substituted for the model's answer when the generator
// fails or is not configured. The chat keeps working; only the content
// degrades.
const FallbackReply = "I'm having trouble connecting to my brain right now. Please check your internet connection or API key."

// Greeting opens a fresh transcript.
const Greeting = "Hi! I'm your automated Sales Coach. I've analyzed your pipeline. How can I help you close more deals today?"

// Generator is the capability interface for the language model. The service
// never learns the concrete provider.
type Generator interface {
	// Generate performs one suspend-until-response exchange: system prompt,
	// prior turns, and the new user message in, reply text out.
	Generate(ctx context.Context, system string, history []domain.ChatTurn, message string) (string, error)
}

// dealLister is the read-only slice of the deal store the coach needs.
type dealLister interface {
	List(ctx context.Context) ([]domain.Deal, error)
}

// Service answers coaching questions about the current pipeline.
type Service struct {
	deals      dealLister
	gen        Generator
	maxHistory int
	log        *slog.Logger
}

// NewService creates a coach service. gen may be nil (no API key configured);
// every Ask then degrades to the fallback reply.
func NewService(log *slog.Logger, deals dealLister, gen Generator, maxHistory int) *Service {
	return &Service{
		deals:      deals,
		gen:        gen,
		maxHistory: maxHistory,
		log:        log.With("service", "coach"),
	}
}

// Reply is one assistant answer, flagged when it is the degraded fallback.
type Reply struct {
	Turn     domain.ChatTurn
	Degraded bool
}

// Ask sends one user message to the model together with the pipeline context
// and the prior transcript. Model failures never fail the call: the reply
// degrades to the static fallback text and the error is only logged.
func (s *Service) Ask(ctx context.Context, history []domain.ChatTurn, message string) (Reply, error) {
	if message == "" {
		return Reply{}, domain.NewValidationError("message", "required")
	}

	deals, err := s.deals.List(ctx)
	if err != nil {
		return Reply{}, err
	}

	if s.gen == nil {
		return s.fallback(ctx, nil), nil
	}

	history = s.trimHistory(history)
	text, err := s.gen.Generate(ctx, systemPrompt(deals), history, message)
	if err != nil {
		return s.fallback(ctx, err), nil
	}

	return Reply{Turn: domain.ChatTurn{Role: domain.ChatRoleAssistant, Text: text}}, nil
}

func (s *Service) fallback(ctx context.Context, cause error) Reply {
	if cause != nil {
		s.log.ErrorContext(ctx, "coach generator failed", slog.String("error", cause.Error()))
	} else {
		s.log.WarnContext(ctx, "coach generator not configured")
	}
	return Reply{
		Turn:     domain.ChatTurn{Role: domain.ChatRoleAssistant, Text: FallbackReply},
		Degraded: true,
	}
}

// trimHistory keeps only the most recent turns so the prompt stays bounded.
func (s *Service) trimHistory(history []domain.ChatTurn) []domain.ChatTurn {
	if s.maxHistory <= 0 || len(history) <= s.maxHistory {
		return history
	}
	return history[len(history)-s.maxHistory:]
}
