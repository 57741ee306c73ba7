package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"persona-chat/internal/llmservice"
	"persona-chat/internal/models"
)

// Responder answers one user message in character. Each call is independent;
// there is no conversation memory.
type Responder struct {
	llm    llmservice.Generator
	prompt prompts.PromptTemplate
}

func NewResponder(llm llmservice.Generator) *Responder {
	return &Responder{
		llm:    llm,
		prompt: prompts.NewPromptTemplate(models.ChatPromptTemplate, []string{"persona", "message"}),
	}
}

// Reply builds the roleplay prompt from the persona's non-empty fields and
// the user message, and returns the model's text unmodified. Errors from the
// model call propagate to the caller.
func (r *Responder) Reply(ctx context.Context, persona map[string]string, message string) (string, error) {
	promptText, err := r.prompt.Format(map[string]any{
		"persona": personaContext(persona),
		"message": message,
	})
	if err != nil {
		return "", err
	}
	return r.llm.GenerateText(ctx, promptText)
}

// personaContext renders the persona as sorted "key: value" lines, skipping
// empty fields.
func personaContext(persona map[string]string) string {
	keys := make([]string, 0, len(persona))
	for key, value := range persona {
		if value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", key, persona[key]))
	}
	return strings.Join(lines, "\n")
}
