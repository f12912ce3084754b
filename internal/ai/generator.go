package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"memekit_server/config"
	"memekit_server/internal/ai/prompts"
	"memekit_server/internal/types"
)

const completionTimeout = 30 * time.Second

// Markers prepended to substituted content so a disabled or failed
// generation step stays visible in the rendered artifacts.
const (
	DisabledMarker = "# GENERATION_DISABLED"
	ErrorMarker    = "# GENERATION_ERROR"
)

// CompletionClient is the slice of the OpenAI-compatible client the
// generator needs. Satisfied by *openai.Client and by test fakes.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Result is the outcome of one generation call. Fallback marks substituted
// placeholder text so callers can log degraded runs; the text itself is
// always usable downstream.
type Result struct {
	Text     string
	Fallback bool
}

type Generator struct {
	client CompletionClient
	model  string
}

// NewGenerator builds a generator from process configuration. Without an
// API key the client stays nil and every call returns tagged placeholder
// content without touching the network.
func NewGenerator(cfg config.Config) *Generator {
	if cfg.GrokAPIKey == "" {
		return &Generator{model: cfg.ModelID}
	}
	clientCfg := openai.DefaultConfig(cfg.GrokAPIKey)
	if cfg.GrokAPIURL != "" {
		clientCfg.BaseURL = cfg.GrokAPIURL
	}
	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.ModelID,
	}
}

// NewGeneratorWithClient wires an explicit completion client. Used by tests
// and by callers that manage their own client configuration.
func NewGeneratorWithClient(client CompletionClient, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Generate issues one best-effort completion call for the given task. It
// never returns an error: configuration absence and upstream failures both
// degrade to tagged placeholder text.
func (g *Generator) Generate(ctx context.Context, narrative, task string) Result {
	if g.client == nil {
		return Result{
			Text:     fmt.Sprintf("%s\n%s\n\n%s", DisabledMarker, task, narrative),
			Fallback: true,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Task: %s\n\nNarrative:\n%s", task, narrative)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		log.Printf("Completion call failed for task %q: %v", task, err)
		return Result{
			Text:     fmt.Sprintf("%s\n%s\n\n%s\n\n%s", ErrorMarker, err.Error(), task, narrative),
			Fallback: true,
		}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		// Unexpected envelope shape: keep the raw response rather than
		// dropping information.
		raw, merr := json.Marshal(resp)
		if merr != nil {
			return Result{
				Text:     fmt.Sprintf("%s\n%s\n\n%s\n\n%s", ErrorMarker, merr.Error(), task, narrative),
				Fallback: true,
			}
		}
		log.Printf("Completion returned no usable choice for task %q, passing raw envelope through", task)
		return Result{Text: string(raw)}
	}

	return Result{Text: resp.Choices[0].Message.Content}
}

// SiteCopy generates the website free-text copy.
func (g *Generator) SiteCopy(ctx context.Context, narrative string) Result {
	return g.Generate(ctx, narrative, prompts.SiteCopyTask())
}

// BotReplies generates the structured reply-set text. The caller parses it
// with ParseBotReplies.
func (g *Generator) BotReplies(ctx context.Context, narrative string) Result {
	return g.Generate(ctx, narrative, prompts.BotRepliesTask())
}

// ParseBotReplies decodes the structured-reply text. It tolerates markdown
// code fences and a single {"replies": {...}} wrapper. On any failure it
// returns the fixed default set and false.
func ParseBotReplies(text string) (types.BotReplies, bool) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var replies types.BotReplies
	if err := json.Unmarshal([]byte(cleaned), &replies); err == nil && len(replies) > 0 {
		return replies, true
	}

	var wrapper map[string]types.BotReplies
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err == nil {
		for _, key := range []string{"replies", "responses", "bot_replies"} {
			if inner, ok := wrapper[key]; ok && len(inner) > 0 {
				return inner, true
			}
		}
	}

	return DefaultBotReplies(), false
}

// DefaultBotReplies is the hardcoded substitute reply set. Its content is
// part of the output contract: tests assert on its marshaled bytes.
func DefaultBotReplies() types.BotReplies {
	return types.BotReplies{
		"GREET_NEW_MEMBERS": {
			"Welcome aboard! Glad to have you in the community.",
			"A new legend joins the chat. Say hi!",
			"Welcome! Check the pinned message for links.",
		},
		"HYPE": {
			"We are still early. LFG!",
			"Charts only go up from here.",
			"Diamond hands win in the end.",
		},
		"WISDOM": {
			"Never invest more than you can afford to lose.",
			"Patience beats panic every single time.",
			"Zoom out before you freak out.",
		},
		"SCHEDULED_BUY": {
			"Reminder: community buy window opens at the top of the hour.",
			"Scheduled buy incoming. Stay tuned.",
		},
	}
}

// MarshalReplies encodes a reply set in the canonical on-disk form:
// two-space indent, sorted keys, trailing newline. Deterministic for a
// given set.
func MarshalReplies(replies types.BotReplies) ([]byte, error) {
	data, err := json.MarshalIndent(replies, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal bot replies: %w", err)
	}
	return append(data, '\n'), nil
}
