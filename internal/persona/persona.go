package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/outputparser"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/schema"

	"persona-chat/internal/config"
	"persona-chat/internal/documents"
	"persona-chat/internal/llmservice"
	"persona-chat/internal/models"
)

// traitSchemas drives the format instructions embedded in the extraction
// prompt. The names must match the PersonaTraits json tags.
var traitSchemas = []outputparser.ResponseSchema{
	{Name: "name", Description: "Likely first name based on content or 'Unknown'"},
	{Name: "occupation", Description: "Likely occupation or interests"},
	{Name: "status", Description: "Relationship or life status if mentioned"},
	{Name: "location", Description: "Location if mentioned or 'Unknown'"},
	{Name: "archetype", Description: "Personality archetype that best describes this person"},
	{Name: "personality", Description: "Key personality traits"},
	{Name: "behavior", Description: "Typical behaviors and interaction patterns"},
	{Name: "habits", Description: "Regular habits or routines mentioned"},
	{Name: "goals", Description: "Goals or aspirations mentioned"},
	{Name: "needs", Description: "Psychological or emotional needs"},
	{Name: "frustrations", Description: "Common frustrations or pain points"},
}

// Service turns a user's raw comments and posts into a PersonaTraits value.
type Service struct {
	llm       llmservice.Generator
	preparer  *documents.Preparer
	prompt    prompts.PromptTemplate
	maxChunks int
	maxChars  int
}

func NewService(llm llmservice.Generator, cfg *config.Config) *Service {
	maxChunks := cfg.Persona.MaxChunks
	maxChars := cfg.Persona.MaxChars
	if maxChunks == 0 || maxChars == 0 {
		maxChunks = models.DefaultMaxChunks
		maxChars = models.DefaultMaxChars
	}

	prompt := prompts.PromptTemplate{
		Template:       models.PersonaPromptTemplate,
		InputVariables: []string{"text_data"},
		TemplateFormat: prompts.TemplateFormatGoTemplate,
		PartialVariables: map[string]any{
			"format_instructions": outputparser.NewStructured(traitSchemas).GetFormatInstructions(),
		},
	}

	return &Service{
		llm:       llm,
		preparer:  documents.NewPreparer(cfg.Splitter.ChunkSize, cfg.Splitter.ChunkOverlap),
		prompt:    prompt,
		maxChunks: maxChunks,
		maxChars:  maxChars,
	}
}

// Generate runs the full chunk -> prompt -> parse pipeline. It never fails:
// when no traits can be extracted the fallback persona is returned instead.
func (s *Service) Generate(ctx context.Context, comments, posts []string) models.PersonaTraits {
	docs, err := s.preparer.Prepare(comments, posts)
	if err != nil {
		log.Error().Err(err).Msg("Error preparing documents")
		return models.FallbackPersona()
	}

	traits := s.analyze(ctx, docs)
	if len(traits) == 0 {
		return models.FallbackPersona()
	}
	return models.PersonaFromTraits(traits)
}

// analyze sends the bounded chunk text to the model and parses the reply.
// Model-call and parse failures are swallowed into an empty trait map.
func (s *Service) analyze(ctx context.Context, docs []schema.Document) map[string]string {
	promptText, err := s.prompt.Format(map[string]any{
		"text_data": boundText(docs, s.maxChunks, s.maxChars),
	})
	if err != nil {
		log.Error().Err(err).Msg("Error formatting persona prompt")
		return map[string]string{}
	}

	response, err := s.llm.GenerateText(ctx, promptText)
	if err != nil {
		log.Error().Err(err).Msg("Error calling model for persona extraction")
		return map[string]string{}
	}

	traits, err := parseTraits(response)
	if err != nil {
		log.Warn().Err(err).Msg("Error parsing persona JSON")
		return map[string]string{}
	}
	return traits
}

// boundText caps prompt size twice: only the first maxChunks chunks are
// joined, and the joined text is truncated to maxChars runes.
func boundText(docs []schema.Document, maxChunks, maxChars int) string {
	if len(docs) > maxChunks {
		docs = docs[:maxChunks]
	}
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.PageContent)
	}
	combined := strings.Join(parts, models.ChunkSeparator)
	if r := []rune(combined); len(r) > maxChars {
		combined = string(r[:maxChars])
	}
	return combined
}

// parseTraits strips markdown code fences and decodes the remainder as a
// JSON object, keeping string-valued fields only. The model's output shape
// is best-effort; this is a fallible boundary, not a structured API.
func parseTraits(raw string) (map[string]string, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON in model response: %w", err)
	}

	traits := make(map[string]string, len(parsed))
	for key, value := range parsed {
		if s, ok := value.(string); ok {
			traits[key] = s
		}
	}
	return traits, nil
}
