// Package anthropic adapts the Anthropic Messages API to the coach's
// Generator interface.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// Client wraps one configured Anthropic model.
type Client struct {
	api       sdk.Client
	model     sdk.Model
	maxTokens int64
	timeout   time.Duration
	log       *slog.Logger
}

// NewClient creates a Messages API client. Parameters come from
// config.CoachConfig: APIKey, Model, MaxTokens, Timeout.
func NewClient(apiKey, model string, maxTokens int64, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		api:       sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     sdk.Model(model),
		maxTokens: maxTokens,
		timeout:   timeout,
		log:       logger.With("adapter", "anthropic"),
	}
}

// Generate performs one exchange: the system prompt, the prior turns, and the
// new user message go out, the assistant's reply text comes back.
func (c *Client) Generate(ctx context.Context, system string, history []domain.ChatTurn, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]sdk.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		switch turn.Role {
		case domain.ChatRoleAssistant:
			messages = append(messages, sdk.NewAssistantMessage(sdk.NewTextBlock(turn.Text)))
		default:
			messages = append(messages, sdk.NewUserMessage(sdk.NewTextBlock(turn.Text)))
		}
	}
	messages = append(messages, sdk.NewUserMessage(sdk.NewTextBlock(message)))

	started := time.Now()
	msg, err := c.api.Messages.New(ctx, sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []sdk.TextBlockParam{
			{Text: system},
		},
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: messages.new: %w", err)
	}

	var reply string
	for _, block := range msg.Content {
		if block.Type == "text" {
			reply += block.Text
		}
	}
	if reply == "" {
		return "", fmt.Errorf("anthropic: empty response")
	}

	c.log.DebugContext(ctx, "completion received",
		slog.String("model", string(c.model)),
		slog.Duration("took", time.Since(started)),
	)

	return reply, nil
}
