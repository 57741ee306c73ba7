package llmservice

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"persona-chat/internal/config"
)

// Generator is the single boundary to the external language model. Both the
// persona extractor and the chat responder depend on it, so tests can swap
// in a fake.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Client calls an OpenAI-compatible completion endpoint. It is built once at
// process start; the underlying connection is dialed lazily so a missing API
// key surfaces on first use rather than at startup.
type Client struct {
	cfg *config.LLMConfig

	once    sync.Once
	llm     *openai.LLM
	initErr error
}

func NewClient(cfg *config.LLMConfig) *Client {
	return &Client{cfg: cfg}
}

// GenerateText sends one non-streaming request and returns the raw text of
// the first choice. No retries.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	c.once.Do(func() {
		c.llm, c.initErr = openai.New(
			openai.WithBaseURL(c.cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(c.cfg.Key, "Bearer ")),
			openai.WithModel(c.cfg.Model),
		)
	})
	if c.initErr != nil {
		return "", c.initErr
	}

	log.Debug().Str("model", c.cfg.Model).Int("prompt_len", len(prompt)).Msg("Generating content")

	resp, err := c.llm.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(c.cfg.Temperature),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned by model %s", c.cfg.Model)
	}
	return resp.Choices[0].Content, nil
}
